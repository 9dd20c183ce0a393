package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/linkstat"
)

// Ensure LoggingLinkService implements linkstat.LinkService.
var _ linkstat.LinkService = (*LoggingLinkService)(nil)

// LoggingLinkService wraps a LinkService with debug logging.
type LoggingLinkService struct {
	next   linkstat.LinkService
	logger *slog.Logger
}

// NewLoggingLinkService creates a new LoggingLinkService.
func NewLoggingLinkService(next linkstat.LinkService, logger *slog.Logger) *LoggingLinkService {
	return &LoggingLinkService{next: next, logger: logger}
}

// PersistLinks delegates to the wrapped service and logs the operation.
func (s *LoggingLinkService) PersistLinks(ctx context.Context, sourceURL string, records []linkstat.LinkRecord) (inserted int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("persist links",
			"url", sourceURL,
			"records", len(records),
			"inserted", inserted,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.PersistLinks(ctx, sourceURL, records)
}

// Aggregates delegates to the wrapped service and logs the operation.
func (s *LoggingLinkService) Aggregates(ctx context.Context, filter linkstat.AggregateFilter) (stats []linkstat.AggregateStat, err error) {
	defer func(begin time.Time) {
		s.logger.Info("aggregates",
			"url", filter.SourceURL,
			"groups", len(stats),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Aggregates(ctx, filter)
}

// Reset delegates to the wrapped service and logs the operation.
func (s *LoggingLinkService) Reset(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("reset",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Reset(ctx)
}
