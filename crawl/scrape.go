package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/tomtejakt"
	"github.com/google/uuid"
)

// DefaultEvictionWindow is how long a listing may go unseen before it is
// evicted from storage.
const DefaultEvictionWindow = 7 * 24 * time.Hour

// Scraper runs the whole pipeline for a set of municipalities. Each
// municipality/category pair is one query: resolve the location code,
// paginate the search, enrich plots, and hand the batch to storage. One
// municipality's total failure never stops the run; its outcome is
// recorded and the scraper moves on.
type Scraper struct {
	Fetcher    tomtejakt.Fetcher
	Listings   tomtejakt.ListingService
	Log        tomtejakt.ScrapeLogService
	Locations  tomtejakt.LocationTable
	Categories []tomtejakt.Category

	// PagePacer throttles search pages, DetailPacer detail fetches
	// (typically slower), MunicipalityPacer the gap between
	// municipalities.
	PagePacer         tomtejakt.Pacer
	DetailPacer       tomtejakt.Pacer
	MunicipalityPacer tomtejakt.Pacer

	MaxPages       int
	EvictionWindow time.Duration

	// Now is the clock, overridable in tests.
	Now func() time.Time
}

// Result summarizes one run.
type Result struct {
	RunID    string
	Queries  int
	Listings int
	Failed   int
}

// Run processes all municipalities sequentially. The progress callback, if
// provided, is invoked once per municipality/category query with a
// monotonic index.
func (s *Scraper) Run(ctx context.Context, municipalities []*tomtejakt.Municipality, progress tomtejakt.ScrapeProgressFunc) (*Result, error) {
	now := s.Now
	if now == nil {
		now = time.Now
	}
	window := s.EvictionWindow
	if window <= 0 {
		window = DefaultEvictionWindow
	}
	categories := s.Categories
	if len(categories) == 0 {
		categories = []tomtejakt.Category{tomtejakt.CategoryHome, tomtejakt.CategoryPlot}
	}

	result := &Result{RunID: uuid.New().String()}
	total := len(municipalities) * len(categories)
	index := 0

	for _, m := range municipalities {
		for _, category := range categories {
			index++
			outcome := s.scrapeOne(ctx, result.RunID, m, category, window, now)

			result.Queries++
			result.Listings += outcome.Found
			if outcome.Err != "" {
				result.Failed++
			}
			if s.Log != nil {
				// Log failures must not abort the run either.
				_ = s.Log.RecordOutcome(ctx, outcome)
			}
			if progress != nil {
				var err error
				if outcome.Err != "" {
					err = tomtejakt.Errorf(tomtejakt.EINTERNAL, "%s", outcome.Err)
				}
				progress(tomtejakt.ScrapeProgress{
					Municipality: m.Name,
					Category:     category,
					Index:        index,
					Total:        total,
					Found:        outcome.Found,
					Err:          err,
				})
			}
		}
		if err := s.MunicipalityPacer.Pace(ctx); err != nil {
			return result, err
		}
	}

	return result, nil
}

// scrapeOne runs one municipality/category query end to end and returns
// its outcome. Errors are captured in the outcome, never propagated.
func (s *Scraper) scrapeOne(ctx context.Context, runID string, m *tomtejakt.Municipality, category tomtejakt.Category, window time.Duration, now func() time.Time) *tomtejakt.ScrapeOutcome {
	outcome := &tomtejakt.ScrapeOutcome{
		RunID:            runID,
		MunicipalityCode: m.Code,
		MunicipalityName: m.Name,
		Category:         category,
		StartedAt:        now(),
	}
	defer func() { outcome.FinishedAt = now() }()

	query := SearchQuery{Category: category, Keyword: tomtejakt.PrimaryName(m.Name)}
	if code, ok := s.Locations.Resolve(m.Name); ok {
		query.LocationCode = code
	} else {
		query.LocalityFilter = query.Keyword
	}

	pager := &SearchPager{Fetcher: s.Fetcher, Pacer: s.PagePacer, MaxPages: s.MaxPages}
	listings, err := pager.Run(ctx, query)
	if err != nil {
		outcome.Err = err.Error()
	}

	for _, l := range listings {
		l.MunicipalityCode = m.Code
	}

	if category == tomtejakt.CategoryPlot && len(listings) > 0 {
		enricher := &DetailEnricher{Fetcher: s.Fetcher, Pacer: s.DetailPacer}
		outcome.Enriched = enricher.Enrich(ctx, listings)
	}

	outcome.Found = len(listings)

	// An empty batch — including one caused by a transient failure —
	// must never trigger eviction; a flaky fetch must not wipe a
	// municipality's records.
	if len(listings) == 0 {
		return outcome
	}

	if err := s.Listings.UpsertListings(ctx, m.Code, listings); err != nil {
		outcome.Err = err.Error()
		return outcome
	}
	if _, err := s.Listings.EvictStale(ctx, m.Code, now().Add(-window)); err != nil {
		outcome.Err = err.Error()
	}

	return outcome
}
