package sqlite

import (
	"context"
	"time"

	"github.com/fwojciec/tomtejakt"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ tomtejakt.ScrapeLogService = (*ScrapeLogService)(nil)

// ScrapeLogService implements tomtejakt.ScrapeLogService using SQLite.
type ScrapeLogService struct {
	db *DB
}

// NewScrapeLogService creates a new ScrapeLogService.
func NewScrapeLogService(db *DB) *ScrapeLogService {
	return &ScrapeLogService{db: db}
}

// RecordOutcome stores one outcome, assigning its ID.
func (s *ScrapeLogService) RecordOutcome(ctx context.Context, outcome *tomtejakt.ScrapeOutcome) error {
	outcome.ID = uuid.New().String()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scrape_log (
			id, run_id, municipality_code, municipality_name, category,
			found, enriched, error, started_at, finished_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, outcome.ID, outcome.RunID, outcome.MunicipalityCode, outcome.MunicipalityName,
		string(outcome.Category), outcome.Found, outcome.Enriched, outcome.Err,
		outcome.StartedAt.UTC().Format(time.RFC3339), outcome.FinishedAt.UTC().Format(time.RFC3339))

	return err
}

// FindOutcomes retrieves outcomes for a run, oldest first.
func (s *ScrapeLogService) FindOutcomes(ctx context.Context, runID string) ([]*tomtejakt.ScrapeOutcome, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, municipality_code, municipality_name, category,
			found, enriched, error, started_at, finished_at
		FROM scrape_log
		WHERE run_id = ?
		ORDER BY started_at, id
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outcomes []*tomtejakt.ScrapeOutcome
	for rows.Next() {
		var outcome tomtejakt.ScrapeOutcome
		var category, startedAt, finishedAt string

		if err := rows.Scan(&outcome.ID, &outcome.RunID, &outcome.MunicipalityCode,
			&outcome.MunicipalityName, &category, &outcome.Found, &outcome.Enriched,
			&outcome.Err, &startedAt, &finishedAt); err != nil {
			return nil, err
		}

		outcome.Category = tomtejakt.Category(category)
		outcome.StartedAt, err = parseRFC3339(startedAt, "started_at")
		if err != nil {
			return nil, err
		}
		outcome.FinishedAt, err = parseRFC3339(finishedAt, "finished_at")
		if err != nil {
			return nil, err
		}

		outcomes = append(outcomes, &outcome)
	}

	return outcomes, rows.Err()
}
