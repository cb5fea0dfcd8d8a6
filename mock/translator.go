package mock

import (
	"context"

	"github.com/fwojciec/tomtejakt"
)

var _ tomtejakt.FilterTranslator = (*FilterTranslator)(nil)

// FilterTranslator is a mock implementation of tomtejakt.FilterTranslator.
type FilterTranslator struct {
	TranslateFn func(ctx context.Context, query string) (*tomtejakt.ListingFilter, error)
}

func (t *FilterTranslator) Translate(ctx context.Context, query string) (*tomtejakt.ListingFilter, error) {
	return t.TranslateFn(ctx, query)
}
