package mock

import (
	"context"
	"time"

	"github.com/fwojciec/tomtejakt"
)

var _ tomtejakt.ListingService = (*ListingService)(nil)

// ListingService is a mock implementation of tomtejakt.ListingService.
type ListingService struct {
	UpsertListingsFn  func(ctx context.Context, municipalityCode string, listings []*tomtejakt.Listing) error
	EvictStaleFn      func(ctx context.Context, municipalityCode string, cutoff time.Time) (int, error)
	FindListingsFn    func(ctx context.Context, filter tomtejakt.ListingFilter) ([]*tomtejakt.Listing, error)
	FindListingByIDFn func(ctx context.Context, id string) (*tomtejakt.Listing, error)
}

func (s *ListingService) UpsertListings(ctx context.Context, municipalityCode string, listings []*tomtejakt.Listing) error {
	return s.UpsertListingsFn(ctx, municipalityCode, listings)
}

func (s *ListingService) EvictStale(ctx context.Context, municipalityCode string, cutoff time.Time) (int, error) {
	return s.EvictStaleFn(ctx, municipalityCode, cutoff)
}

func (s *ListingService) FindListings(ctx context.Context, filter tomtejakt.ListingFilter) ([]*tomtejakt.Listing, error) {
	return s.FindListingsFn(ctx, filter)
}

func (s *ListingService) FindListingByID(ctx context.Context, id string) (*tomtejakt.Listing, error) {
	return s.FindListingByIDFn(ctx, id)
}

var _ tomtejakt.ScrapeLogService = (*ScrapeLogService)(nil)

// ScrapeLogService is a mock implementation of tomtejakt.ScrapeLogService.
type ScrapeLogService struct {
	RecordOutcomeFn func(ctx context.Context, outcome *tomtejakt.ScrapeOutcome) error
	FindOutcomesFn  func(ctx context.Context, runID string) ([]*tomtejakt.ScrapeOutcome, error)
}

func (s *ScrapeLogService) RecordOutcome(ctx context.Context, outcome *tomtejakt.ScrapeOutcome) error {
	if s.RecordOutcomeFn == nil {
		return nil
	}
	return s.RecordOutcomeFn(ctx, outcome)
}

func (s *ScrapeLogService) FindOutcomes(ctx context.Context, runID string) ([]*tomtejakt.ScrapeOutcome, error) {
	return s.FindOutcomesFn(ctx, runID)
}
