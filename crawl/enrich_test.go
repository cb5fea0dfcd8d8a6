package crawl_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fwojciec/tomtejakt"
	"github.com/fwojciec/tomtejakt/crawl"
	"github.com/fwojciec/tomtejakt/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// detailPageHTML renders an ad detail page in the nested-object embed
// encoding.
func detailPageHTML(t *testing.T, ad map[string]any) string {
	t.Helper()

	b, err := json.Marshal(map[string]any{"ad": ad})
	require.NoError(t, err)
	return "<html><script>window.__remixContext = " + string(b) + ";</script></html>"
}

func plotListing(id string) *tomtejakt.Listing {
	return &tomtejakt.Listing{
		ID:                 id,
		Title:              "Fin tomt",
		FinnURL:            "https://www.finn.no/realestate/plots/ad.html?finnkode=" + id,
		Category:           tomtejakt.CategoryPlot,
		BuildingObligation: tomtejakt.ObligationUnknown,
	}
}

func TestDetailEnricher_Enrich(t *testing.T) {
	t.Parallel()

	t.Run("attaches enrichment fields and verdicts", func(t *testing.T) {
		t.Parallel()

		ad := map[string]any{
			"plot":      map[string]any{"owned": true},
			"price":     map[string]any{"total": 1500000.0, "tax_value": 250000.0},
			"cadastres": []any{map[string]any{"land_number": 12.0, "title_number": 34.0}},
			"facilities": []any{
				map[string]any{"value": "Offentlig vann/kloakk"},
			},
			"general_text": []any{
				map[string]any{"heading": "Regulering", "text_unsafe": "Regulert til boligformål med byggeplikt."},
			},
		}
		enricher := &crawl.DetailEnricher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return detailPageHTML(t, ad), nil
				},
			},
			Pacer: &mock.Pacer{},
		}
		listing := plotListing("100")

		enriched := enricher.Enrich(context.Background(), []*tomtejakt.Listing{listing})

		assert.Equal(t, 1, enriched)
		assert.Equal(t, tomtejakt.OwnershipFreehold, listing.PlotOwned)
		require.NotNil(t, listing.TotalPrice)
		assert.Equal(t, 1500000, *listing.TotalPrice)
		assert.Equal(t, "gnr. 12 bnr. 34", listing.Cadastre)
		assert.Equal(t, "Offentlig vann/kloakk", listing.Facilities)
		assert.Equal(t, tomtejakt.ObligationClause, listing.BuildingObligation)
		assert.Contains(t, listing.BuildingObligationText, "byggeplikt")
		require.NotNil(t, listing.IsDeveloped)
		assert.Equal(t, 1, *listing.IsDeveloped)
	})

	t.Run("single listing failure never aborts the batch", func(t *testing.T) {
		t.Parallel()

		enricher := &crawl.DetailEnricher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if url == "https://www.finn.no/realestate/plots/ad.html?finnkode=100" {
						return "", tomtejakt.Errorf(tomtejakt.EUNAVAILABLE, "HTTP 500")
					}
					return detailPageHTML(t, map[string]any{
						"plot": map[string]any{"owned": false},
					}), nil
				},
			},
			Pacer: &mock.Pacer{},
		}
		failed := plotListing("100")
		ok := plotListing("200")

		enriched := enricher.Enrich(context.Background(), []*tomtejakt.Listing{failed, ok})

		assert.Equal(t, 1, enriched)
		assert.Empty(t, failed.PlotOwned)
		assert.Equal(t, tomtejakt.ObligationUnknown, failed.BuildingObligation)
		assert.Nil(t, failed.IsDeveloped)
		assert.Equal(t, tomtejakt.OwnershipLeasehold, ok.PlotOwned)
	})

	t.Run("decode failure degrades to unknown classification", func(t *testing.T) {
		t.Parallel()

		enricher := &crawl.DetailEnricher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html>not a state page</html>", nil
				},
			},
			Pacer: &mock.Pacer{},
		}
		listing := plotListing("100")

		enriched := enricher.Enrich(context.Background(), []*tomtejakt.Listing{listing})

		assert.Equal(t, 0, enriched)
		assert.Equal(t, tomtejakt.ObligationUnknown, listing.BuildingObligation)
		assert.Nil(t, listing.IsDeveloped)
	})

	t.Run("title alone can carry an obligation verdict", func(t *testing.T) {
		t.Parallel()

		enricher := &crawl.DetailEnricher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "", tomtejakt.Errorf(tomtejakt.EUNAVAILABLE, "HTTP 500")
				},
			},
			Pacer: &mock.Pacer{},
		}
		listing := plotListing("100")
		listing.Title = "Solrik tomt uten byggeplikt"

		enricher.Enrich(context.Background(), []*tomtejakt.Listing{listing})

		assert.Equal(t, tomtejakt.ObligationNone, listing.BuildingObligation)
	})
}
