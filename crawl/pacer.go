package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/tomtejakt"
	"golang.org/x/time/rate"
)

var (
	_ tomtejakt.Pacer = (*IntervalPacer)(nil)
	_ tomtejakt.Pacer = (*NopPacer)(nil)
)

// IntervalPacer throttles to at most one request per interval using a token
// bucket with no bursting. The pipeline is strictly sequential, so the
// pacer models a rate-limited task queue of size 1: the first call passes
// immediately, subsequent calls block until the interval has elapsed.
type IntervalPacer struct {
	limiter *rate.Limiter
}

// NewIntervalPacer creates a pacer enforcing the given minimum interval
// between requests.
func NewIntervalPacer(interval time.Duration) *IntervalPacer {
	return &IntervalPacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Pace blocks until the next request is allowed or the context is canceled.
func (p *IntervalPacer) Pace(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// NopPacer never delays. Tests inject it to run the sequential pipeline at
// full speed.
type NopPacer struct{}

// NewNopPacer creates a pacer that never delays.
func NewNopPacer() *NopPacer { return &NopPacer{} }

// Pace returns immediately, honoring only context cancellation.
func (p *NopPacer) Pace(ctx context.Context) error {
	return ctx.Err()
}
