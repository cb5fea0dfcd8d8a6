package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/tomtejakt"
	main "github.com/fwojciec/tomtejakt/cmd/tomtejakt"
	"github.com/fwojciec/tomtejakt/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints plot enrichment fields", func(t *testing.T) {
		t.Parallel()

		developed := 1
		totalPrice := 920000
		listings := &mock.ListingService{
			FindListingByIDFn: func(_ context.Context, id string) (*tomtejakt.Listing, error) {
				return &tomtejakt.Listing{
					ID:                     id,
					Title:                  "Solrik tomt med sjøutsikt",
					Address:                "Strandveien 12, 9510 Alta",
					PriceText:              "850 000 kr",
					Category:               tomtejakt.CategoryPlot,
					BuildingObligation:     tomtejakt.ObligationClause,
					BuildingObligationText: "tomten selges med byggeklausul",
					IsDeveloped:            &developed,
					PlotOwned:              tomtejakt.OwnershipFreehold,
					TotalPrice:             &totalPrice,
					Cadastre:               "gnr. 27 bnr. 114",
					FinnURL:                "https://www.finn.no/realestate/plots/ad.html?finnkode=412345678",
					FirstSeen:              time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
					LastSeen:               time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Listings: listings,
		}

		cmd := &main.ShowCmd{Finnkode: "412345678"}

		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "Solrik tomt med sjøutsikt")
		assert.Contains(t, output, "412345678")
		assert.Contains(t, output, "has_clause")
		assert.Contains(t, output, "byggeklausul")
		assert.Contains(t, output, "developed:   yes")
		assert.Contains(t, output, "selveier")
		assert.Contains(t, output, "gnr. 27 bnr. 114")
		assert.Contains(t, output, "920000")
		assert.Contains(t, output, "2026-08-01")
		assert.Contains(t, output, "2026-08-30")
	})

	t.Run("omits plot fields for home listings", func(t *testing.T) {
		t.Parallel()

		bedrooms := 4
		listings := &mock.ListingService{
			FindListingByIDFn: func(_ context.Context, id string) (*tomtejakt.Listing, error) {
				return &tomtejakt.Listing{
					ID:       id,
					Title:    "Enebolig med dobbeltgarasje",
					Category: tomtejakt.CategoryHome,
					Bedrooms: &bedrooms,
					FinnURL:  "https://www.finn.no/realestate/homes/ad.html?finnkode=498765432",
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Listings: listings,
		}

		cmd := &main.ShowCmd{Finnkode: "498765432"}

		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "bedrooms:    4")
		assert.NotContains(t, output, "obligation")
		assert.NotContains(t, output, "developed")
	})

	t.Run("returns ENOTFOUND error for unknown finnkode", func(t *testing.T) {
		t.Parallel()

		listings := &mock.ListingService{
			FindListingByIDFn: func(_ context.Context, id string) (*tomtejakt.Listing, error) {
				return nil, tomtejakt.Errorf(tomtejakt.ENOTFOUND, "listing not found")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Listings: listings,
		}

		cmd := &main.ShowCmd{Finnkode: "999"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, tomtejakt.ENOTFOUND, tomtejakt.ErrorCode(err))
		assert.Contains(t, stderr.String(), "listing not found")
	})
}
