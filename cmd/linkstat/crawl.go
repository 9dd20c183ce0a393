package main

import (
	"fmt"

	"github.com/fwojciec/linkstat"
	"github.com/fwojciec/linkstat/crawl"
	linkhttp "github.com/fwojciec/linkstat/http"
	"github.com/fwojciec/linkstat/rod"
	linkslog "github.com/fwojciec/linkstat/slog"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	extractor := deps.Extractor
	if extractor == nil {
		probe := rod.Available
		if c.Static {
			probe = func() bool { return false }
		}

		sel, err := crawl.SelectExtractor(probe,
			func() (linkstat.LinkExtractor, error) {
				return rod.NewExtractor(rod.WithTimeout(c.Timeout), rod.WithSettleDelay(c.Settle))
			},
			func() (linkstat.LinkExtractor, error) {
				return linkhttp.NewExtractor(linkhttp.WithTimeout(c.Timeout)), nil
			},
		)
		if err != nil {
			return fmt.Errorf("selecting extraction backend: %w", err)
		}
		if sel.FallbackErr != nil {
			deps.Logger.Warn("dynamic backend unavailable, using static",
				"err", linkstat.ErrorMessage(sel.FallbackErr))
		}
		deps.Logger.Info("backend selected", "backend", string(sel.Backend))

		extractor = sel.Extractor
		defer extractor.Close()
	}

	if c.Fresh {
		if err := deps.Links.Reset(deps.Ctx); err != nil {
			return fmt.Errorf("resetting store: %w", err)
		}
	}

	crawler := &crawl.Crawler{
		Extractor: linkslog.NewLoggingLinkExtractor(extractor, deps.Logger),
		Links:     deps.Links,
		Limiter:   crawl.NewDomainLimiter(1.0),
		Logger:    deps.Logger,
	}

	result, err := crawler.Run(deps.Ctx, c.URLs)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Crawled %d source(s): %d link records persisted, %d failed\n",
		len(c.URLs), result.Persisted, result.Failed)
	return nil
}
