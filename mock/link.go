package mock

import (
	"context"

	"github.com/fwojciec/linkstat"
)

var _ linkstat.LinkService = (*LinkService)(nil)

// LinkService is a mock implementation of linkstat.LinkService.
type LinkService struct {
	PersistLinksFn func(ctx context.Context, sourceURL string, records []linkstat.LinkRecord) (int, error)
	AggregatesFn   func(ctx context.Context, filter linkstat.AggregateFilter) ([]linkstat.AggregateStat, error)
	ResetFn        func(ctx context.Context) error
}

func (s *LinkService) PersistLinks(ctx context.Context, sourceURL string, records []linkstat.LinkRecord) (int, error) {
	return s.PersistLinksFn(ctx, sourceURL, records)
}

func (s *LinkService) Aggregates(ctx context.Context, filter linkstat.AggregateFilter) ([]linkstat.AggregateStat, error) {
	return s.AggregatesFn(ctx, filter)
}

func (s *LinkService) Reset(ctx context.Context) error {
	return s.ResetFn(ctx)
}
