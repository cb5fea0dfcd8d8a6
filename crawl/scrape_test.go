package crawl_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/tomtejakt"
	"github.com/fwojciec/tomtejakt/crawl"
	"github.com/fwojciec/tomtejakt/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScraper(fetcher *mock.Fetcher, listings *mock.ListingService, log *mock.ScrapeLogService) *crawl.Scraper {
	return &crawl.Scraper{
		Fetcher:           fetcher,
		Listings:          listings,
		Log:               log,
		Locations:         tomtejakt.LocationTable{"Alta": "0.20.20120"},
		Categories:        []tomtejakt.Category{tomtejakt.CategoryHome},
		PagePacer:         &mock.Pacer{},
		DetailPacer:       &mock.Pacer{},
		MunicipalityPacer: &mock.Pacer{},
	}
}

func TestScraper_Run(t *testing.T) {
	t.Parallel()

	alta := &tomtejakt.Municipality{Code: "5601", Name: "Alta"}
	tromso := &tomtejakt.Municipality{Code: "5501", Name: "Tromsø"}

	t.Run("upserts and evicts for a non-empty batch", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		var upserted []*tomtejakt.Listing
		var evictCode string
		var evictCutoff time.Time

		listings := &mock.ListingService{
			UpsertListingsFn: func(_ context.Context, code string, ls []*tomtejakt.Listing) error {
				upserted = ls
				return nil
			},
			EvictStaleFn: func(_ context.Context, code string, cutoff time.Time) (int, error) {
				evictCode = code
				evictCutoff = cutoff
				return 0, nil
			},
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return searchPageHTML(t, []map[string]any{doc(100, "Enebolig", "Alta")}, 1), nil
			},
		}
		s := testScraper(fetcher, listings, &mock.ScrapeLogService{})
		s.Now = func() time.Time { return now }

		result, err := s.Run(context.Background(), []*tomtejakt.Municipality{alta}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Queries)
		assert.Equal(t, 1, result.Listings)
		assert.Equal(t, 0, result.Failed)
		require.Len(t, upserted, 1)
		assert.Equal(t, "5601", upserted[0].MunicipalityCode)
		assert.Equal(t, "5601", evictCode)
		assert.Equal(t, now.Add(-7*24*time.Hour), evictCutoff)
	})

	t.Run("empty batch never triggers eviction", func(t *testing.T) {
		t.Parallel()

		listings := &mock.ListingService{
			UpsertListingsFn: func(_ context.Context, _ string, _ []*tomtejakt.Listing) error {
				t.Error("upsert must not be called for an empty batch")
				return nil
			},
			EvictStaleFn: func(_ context.Context, _ string, _ time.Time) (int, error) {
				t.Error("eviction must not be called for an empty batch")
				return 0, nil
			},
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return searchPageHTML(t, nil, 1), nil
			},
		}
		s := testScraper(fetcher, listings, &mock.ScrapeLogService{})

		result, err := s.Run(context.Background(), []*tomtejakt.Municipality{alta}, nil)

		require.NoError(t, err)
		assert.Equal(t, 0, result.Listings)
	})

	t.Run("failed fetch is an empty batch and never evicts", func(t *testing.T) {
		t.Parallel()

		evictCalled := false
		listings := &mock.ListingService{
			UpsertListingsFn: func(_ context.Context, _ string, _ []*tomtejakt.Listing) error { return nil },
			EvictStaleFn: func(_ context.Context, _ string, _ time.Time) (int, error) {
				evictCalled = true
				return 0, nil
			},
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", tomtejakt.Errorf(tomtejakt.EUNAVAILABLE, "HTTP 503")
			},
		}
		s := testScraper(fetcher, listings, &mock.ScrapeLogService{})

		result, err := s.Run(context.Background(), []*tomtejakt.Municipality{alta}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
		assert.False(t, evictCalled)
	})

	t.Run("one municipality failing never stops the run", func(t *testing.T) {
		t.Parallel()

		var outcomes []*tomtejakt.ScrapeOutcome
		log := &mock.ScrapeLogService{
			RecordOutcomeFn: func(_ context.Context, o *tomtejakt.ScrapeOutcome) error {
				outcomes = append(outcomes, o)
				return nil
			},
		}
		listings := &mock.ListingService{
			UpsertListingsFn: func(_ context.Context, _ string, _ []*tomtejakt.Listing) error { return nil },
			EvictStaleFn:     func(_ context.Context, _ string, _ time.Time) (int, error) { return 0, nil },
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if strings.Contains(url, "location=") {
					// Alta resolves to a location code and fails.
					return "", tomtejakt.Errorf(tomtejakt.EUNAVAILABLE, "HTTP 500")
				}
				return searchPageHTML(t, []map[string]any{doc(200, "Enebolig", "Storgata 1, 9008 Tromsø")}, 1), nil
			},
		}
		s := testScraper(fetcher, listings, log)

		result, err := s.Run(context.Background(), []*tomtejakt.Municipality{alta, tromso}, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Queries)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, outcomes, 2)
		assert.NotEmpty(t, outcomes[0].Err)
		assert.Empty(t, outcomes[1].Err)
		assert.Equal(t, 1, outcomes[1].Found)
	})

	t.Run("unresolved municipality falls back to keyword search", func(t *testing.T) {
		t.Parallel()

		var url string
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, u string) (string, error) {
				url = u
				return searchPageHTML(t, nil, 1), nil
			},
		}
		listings := &mock.ListingService{
			UpsertListingsFn: func(_ context.Context, _ string, _ []*tomtejakt.Listing) error { return nil },
			EvictStaleFn:     func(_ context.Context, _ string, _ time.Time) (int, error) { return 0, nil },
		}
		s := testScraper(fetcher, listings, &mock.ScrapeLogService{})

		_, err := s.Run(context.Background(), []*tomtejakt.Municipality{tromso}, nil)

		require.NoError(t, err)
		assert.Contains(t, url, "q=Troms")
		assert.NotContains(t, url, "location=")
	})

	t.Run("progress indexes are monotonic across the run", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return searchPageHTML(t, nil, 1), nil
			},
		}
		listings := &mock.ListingService{
			UpsertListingsFn: func(_ context.Context, _ string, _ []*tomtejakt.Listing) error { return nil },
			EvictStaleFn:     func(_ context.Context, _ string, _ time.Time) (int, error) { return 0, nil },
		}
		s := testScraper(fetcher, listings, &mock.ScrapeLogService{})
		s.Categories = []tomtejakt.Category{tomtejakt.CategoryHome, tomtejakt.CategoryPlot}

		var indexes []int
		var total int
		_, err := s.Run(context.Background(), []*tomtejakt.Municipality{alta, tromso}, func(p tomtejakt.ScrapeProgress) {
			indexes = append(indexes, p.Index)
			total = p.Total
		})

		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4}, indexes)
		assert.Equal(t, 4, total)
	})

	t.Run("plot batches are enriched before storage", func(t *testing.T) {
		t.Parallel()

		var upserted []*tomtejakt.Listing
		listings := &mock.ListingService{
			UpsertListingsFn: func(_ context.Context, _ string, ls []*tomtejakt.Listing) error {
				upserted = ls
				return nil
			},
			EvictStaleFn: func(_ context.Context, _ string, _ time.Time) (int, error) { return 0, nil },
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if strings.Contains(url, "search.html") {
					return searchPageHTML(t, []map[string]any{doc(300, "Tomt uten byggeplikt", "Alta")}, 1), nil
				}
				return detailPageHTML(t, map[string]any{
					"plot": map[string]any{"owned": true},
				}), nil
			},
		}
		s := testScraper(fetcher, listings, &mock.ScrapeLogService{})
		s.Categories = []tomtejakt.Category{tomtejakt.CategoryPlot}

		result, err := s.Run(context.Background(), []*tomtejakt.Municipality{alta}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Listings)
		require.Len(t, upserted, 1)
		assert.Equal(t, tomtejakt.OwnershipFreehold, upserted[0].PlotOwned)
		assert.Equal(t, tomtejakt.ObligationNone, upserted[0].BuildingObligation)
	})
}
