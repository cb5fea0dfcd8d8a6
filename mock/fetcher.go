// Package mock provides mock implementations of tomtejakt interfaces for
// testing.
package mock

import (
	"context"

	"github.com/fwojciec/tomtejakt"
)

var _ tomtejakt.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of tomtejakt.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ tomtejakt.Pacer = (*Pacer)(nil)

// Pacer is a mock implementation of tomtejakt.Pacer. The zero value never
// delays.
type Pacer struct {
	PaceFn func(ctx context.Context) error
}

func (p *Pacer) Pace(ctx context.Context) error {
	if p.PaceFn == nil {
		return nil
	}
	return p.PaceFn(ctx)
}
