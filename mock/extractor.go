package mock

import (
	"context"

	"github.com/fwojciec/linkstat"
)

var _ linkstat.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of linkstat.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(ctx context.Context, sourceURL string) ([]linkstat.LinkRecord, error)
	CloseFn        func() error
}

func (e *LinkExtractor) ExtractLinks(ctx context.Context, sourceURL string) ([]linkstat.LinkRecord, error) {
	return e.ExtractLinksFn(ctx, sourceURL)
}

func (e *LinkExtractor) Close() error {
	if e.CloseFn == nil {
		return nil
	}
	return e.CloseFn()
}
