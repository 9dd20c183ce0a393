package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/linkstat"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	if c.Limit <= 0 {
		return linkstat.Errorf(linkstat.EINVALID, "limit must be a positive integer")
	}

	filter := linkstat.AggregateFilter{
		SourceURL: c.URL,
		Limit:     c.Limit,
	}
	if c.Anchor != "" {
		anchor := c.Anchor
		filter.AnchorText = &anchor
	}

	stats, err := deps.Links.Aggregates(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linkstat.ErrorMessage(err))
		return err
	}

	if len(stats) == 0 {
		fmt.Fprintln(deps.Stdout, "No data available yet. Try crawling first.")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ANCHOR TEXT\tHREF\tCOUNT")
	for _, s := range stats {
		fmt.Fprintf(w, "%s\t%s\t%d\n", s.AnchorText, s.Href, s.Count)
	}
	return w.Flush()
}
