package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/linkstat"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Links  linkstat.LinkService

	// Extractor overrides backend selection when set. Used by tests.
	Extractor linkstat.LinkExtractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl CrawlCmd `cmd:"" help:"Crawl a page and persist its same-site link records"`
	Stats StatsCmd `cmd:"" help:"Show ranked anchor text counts for a crawled page"`

	Verbose bool `short:"v" help:"Enable operational logging"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URLs    []string      `arg:"" name:"url" help:"Source page URL(s)"`
	Fresh   bool          `help:"Discard previously persisted rows before crawling"`
	Static  bool          `help:"Force the static backend (skip the browser probe)"`
	Timeout time.Duration `default:"5m" help:"Page load timeout"`
	Settle  time.Duration `default:"10s" help:"Wait after load for deferred content (dynamic backend only)"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	URL    string `arg:"" help:"Source page URL"`
	Limit  int    `default:"10" help:"Max rows to show"`
	Anchor string `help:"Filter to an exact anchor text"`
}
