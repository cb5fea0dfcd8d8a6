package crawl

import (
	"context"

	"github.com/fwojciec/tomtejakt"
	"github.com/fwojciec/tomtejakt/finn"
)

// DetailEnricher fetches plot detail pages sequentially and attaches
// enrichment fields and classification verdicts to listings in place.
// Detail fetches are paced separately from (and typically slower than)
// search pages.
type DetailEnricher struct {
	Fetcher tomtejakt.Fetcher
	Pacer   tomtejakt.Pacer
}

// Enrich processes each listing in order. A single listing's transport or
// decode failure leaves its enrichment fields at unknown/nil and never
// aborts the batch. Returns the number of listings enriched successfully.
func (e *DetailEnricher) Enrich(ctx context.Context, listings []*tomtejakt.Listing) int {
	enriched := 0
	for _, l := range listings {
		if err := e.Pacer.Pace(ctx); err != nil {
			return enriched
		}
		if e.enrichOne(ctx, l) {
			enriched++
		}
	}
	return enriched
}

func (e *DetailEnricher) enrichOne(ctx context.Context, l *tomtejakt.Listing) bool {
	html, err := e.Fetcher.Fetch(ctx, l.FinnURL)
	if err != nil {
		e.classify(l, "")
		return false
	}
	tree, err := finn.DecodePage(html)
	if err != nil {
		e.classify(l, "")
		return false
	}
	ad := finn.FindAdDetail(tree)
	if ad == nil {
		e.classify(l, "")
		return false
	}

	d := finn.ExtractDetail(ad)
	l.PlotOwned = d.PlotOwned
	l.TotalPrice = d.TotalPrice
	l.TaxValue = d.TaxValue
	l.Cadastre = d.Cadastre
	l.Facilities = d.Facilities
	l.Regulations = d.Regulations
	l.Utilities = d.Utilities
	l.YearlyCostsText = d.YearlyCostsText

	e.classify(l, d.SectionText)
	return true
}

// classify runs both text classifiers over whatever text is available.
// With no detail text the title alone usually classifies as unknown, which
// is the required degradation for missing or ambiguous detail data.
func (e *DetailEnricher) classify(l *tomtejakt.Listing, sectionText string) {
	full := l.Title
	if sectionText != "" {
		full += " " + sectionText
	}
	l.BuildingObligation, l.BuildingObligationText = tomtejakt.ClassifyObligation(full)
	l.IsDeveloped = tomtejakt.ClassifyDevelopment(l.Facilities, l.Utilities, full)
}
