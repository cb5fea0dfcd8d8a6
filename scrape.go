package tomtejakt

import (
	"context"
	"time"
)

// ScrapeOutcome records the result of one municipality/category query
// within a run. Exactly one outcome is written per pair per run; failures
// carry the error text instead of counts.
type ScrapeOutcome struct {
	ID               string    `json:"id"`
	RunID            string    `json:"runId"`
	MunicipalityCode string    `json:"municipalityCode"`
	MunicipalityName string    `json:"municipalityName"`
	Category         Category  `json:"category"`
	Found            int       `json:"found"`
	Enriched         int       `json:"enriched"`
	Err              string    `json:"error"`
	StartedAt        time.Time `json:"startedAt"`
	FinishedAt       time.Time `json:"finishedAt"`
}

// ScrapeLogService persists per-municipality outcomes for later inspection.
type ScrapeLogService interface {
	// RecordOutcome stores one outcome, assigning its ID.
	RecordOutcome(ctx context.Context, outcome *ScrapeOutcome) error

	// FindOutcomes retrieves outcomes for a run, oldest first.
	FindOutcomes(ctx context.Context, runID string) ([]*ScrapeOutcome, error)
}

// ScrapeProgress reports progress as municipalities are processed.
// Index is monotonic within one run.
type ScrapeProgress struct {
	Municipality string
	Category     Category
	Index        int
	Total        int
	Found        int
	Err          error
}

// ScrapeProgressFunc is called after each municipality/category query.
type ScrapeProgressFunc func(ScrapeProgress)

// FilterTranslator converts a natural language query into a listing filter.
// Implementations call an external text-to-filter service.
type FilterTranslator interface {
	Translate(ctx context.Context, query string) (*ListingFilter, error)
}
