// Package slog provides logging decorators for linkstat services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/linkstat"
)

// Ensure LoggingLinkExtractor implements linkstat.LinkExtractor.
var _ linkstat.LinkExtractor = (*LoggingLinkExtractor)(nil)

// LoggingLinkExtractor wraps a LinkExtractor with debug logging.
type LoggingLinkExtractor struct {
	next   linkstat.LinkExtractor
	logger *slog.Logger
}

// NewLoggingLinkExtractor creates a new LoggingLinkExtractor.
func NewLoggingLinkExtractor(next linkstat.LinkExtractor, logger *slog.Logger) *LoggingLinkExtractor {
	return &LoggingLinkExtractor{next: next, logger: logger}
}

// ExtractLinks delegates to the wrapped extractor and logs the operation.
func (e *LoggingLinkExtractor) ExtractLinks(ctx context.Context, sourceURL string) (records []linkstat.LinkRecord, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract links",
			"url", sourceURL,
			"links", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractLinks(ctx, sourceURL)
}

// Close delegates to the wrapped extractor.
func (e *LoggingLinkExtractor) Close() error {
	return e.next.Close()
}
