// Package crawl orchestrates the scraping of finn.no listings: paginated
// category searches, detail-page enrichment for plots, and the
// per-municipality scrape loop that hands batches to storage.
package crawl

import (
	"context"
	"fmt"

	"github.com/fwojciec/tomtejakt"
	"github.com/fwojciec/tomtejakt/finn"
)

// DefaultMaxPages caps pagination per query. With 50 listings per page the
// ceiling bounds one query at 500 listings.
const DefaultMaxPages = 10

// SearchQuery describes one category search for one municipality.
type SearchQuery struct {
	Category     tomtejakt.Category
	LocationCode string // finn location code; empty means keyword search
	Keyword      string // primary municipality name, used when no code

	// LocalityFilter, when non-empty, drops raw listings that don't
	// match the municipality. Keyword search returns over-broad results;
	// the filter compensates client-side.
	LocalityFilter string
}

// SearchPager drives one query across result pages sequentially, decoding
// and normalizing each page. Fetches are paced; per-page failures are never
// retried.
type SearchPager struct {
	Fetcher  tomtejakt.Fetcher
	Pacer    tomtejakt.Pacer
	MaxPages int // defaults to DefaultMaxPages
}

// Run fetches page 1, reads the last-page value from pagination metadata,
// clamps it to the page ceiling, then walks the remaining pages in order
// with the pacer between fetches. A failure on page 1 fails the query; a
// failure on a later page aborts only that page and the rest of the walk,
// returning the listings accumulated so far together with the error. The
// caller logs the error and moves on to the next municipality.
func (p *SearchPager) Run(ctx context.Context, q SearchQuery) ([]*tomtejakt.Listing, error) {
	maxPages := p.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	tree, err := p.fetchPage(ctx, q, 1)
	if err != nil {
		return nil, err
	}

	listings := p.collect(nil, tree, q)

	last := finn.FindLastPage(tree)
	if last > maxPages {
		last = maxPages
	}

	for page := 2; page <= last; page++ {
		tree, err := p.fetchPage(ctx, q, page)
		if err != nil {
			return listings, fmt.Errorf("page %d: %w", page, err)
		}
		listings = p.collect(listings, tree, q)
	}

	return listings, nil
}

func (p *SearchPager) fetchPage(ctx context.Context, q SearchQuery, page int) (any, error) {
	if err := p.Pacer.Pace(ctx); err != nil {
		return nil, err
	}
	url := finn.SearchURL(q.Category, q.LocationCode, q.Keyword, page)
	html, err := p.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return finn.DecodePage(html)
}

func (p *SearchPager) collect(acc []*tomtejakt.Listing, tree any, q SearchQuery) []*tomtejakt.Listing {
	for _, raw := range finn.FindListings(tree) {
		if q.LocalityFilter != "" && !finn.MatchesLocality(raw, q.LocalityFilter) {
			continue
		}
		l := finn.Normalize(raw, q.Category)
		if l.ID == "" {
			continue
		}
		acc = append(acc, l)
	}
	return acc
}
