package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tomtejakt"
)

// Ensure LoggingListingService implements tomtejakt.ListingService.
var _ tomtejakt.ListingService = (*LoggingListingService)(nil)

// LoggingListingService wraps a ListingService with write-path logging.
// Reads are delegated without logging.
type LoggingListingService struct {
	next   tomtejakt.ListingService
	logger *slog.Logger
}

// NewLoggingListingService creates a new LoggingListingService.
func NewLoggingListingService(next tomtejakt.ListingService, logger *slog.Logger) *LoggingListingService {
	return &LoggingListingService{next: next, logger: logger}
}

// UpsertListings delegates to the wrapped service and logs the batch.
func (s *LoggingListingService) UpsertListings(ctx context.Context, municipalityCode string, listings []*tomtejakt.Listing) error {
	begin := time.Now()
	err := s.next.UpsertListings(ctx, municipalityCode, listings)
	if err != nil {
		s.logger.Error("upsert listings",
			"municipality", municipalityCode,
			"count", len(listings),
			"err", err,
		)
		return err
	}
	s.logger.Info("upsert listings",
		"municipality", municipalityCode,
		"count", len(listings),
		"duration", time.Since(begin),
	)
	return nil
}

// EvictStale delegates to the wrapped service and logs removals.
func (s *LoggingListingService) EvictStale(ctx context.Context, municipalityCode string, cutoff time.Time) (int, error) {
	removed, err := s.next.EvictStale(ctx, municipalityCode, cutoff)
	if err != nil {
		s.logger.Error("evict stale listings",
			"municipality", municipalityCode,
			"err", err,
		)
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("evict stale listings",
			"municipality", municipalityCode,
			"removed", removed,
		)
	}
	return removed, nil
}

// FindListings delegates to the wrapped service.
func (s *LoggingListingService) FindListings(ctx context.Context, filter tomtejakt.ListingFilter) ([]*tomtejakt.Listing, error) {
	return s.next.FindListings(ctx, filter)
}

// FindListingByID delegates to the wrapped service.
func (s *LoggingListingService) FindListingByID(ctx context.Context, id string) (*tomtejakt.Listing, error) {
	return s.next.FindListingByID(ctx, id)
}
