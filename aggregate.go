package linkstat

import (
	"sort"
	"strings"
)

// AggregateOptions configures the in-memory aggregation pipeline.
type AggregateOptions struct {
	// AnchorText, when non-empty, retains only records whose trimmed
	// anchor text equals it exactly (case-sensitive).
	AnchorText string

	// Limit truncates the ranked output when > 0. Validation of the value
	// is the caller's responsibility.
	Limit int
}

// AggregateLinks filters, groups, counts, and ranks a batch of link
// records for one source URL.
//
// Records that are not visible, or whose trimmed anchor text is empty or
// the placeholder sentinel, are dropped. The remainder is grouped by
// (source URL, anchor text, href) and sorted by count descending, ties
// broken by href ascending so the ordering is deterministic regardless of
// which backend produced the records.
func AggregateLinks(records []LinkRecord, opts AggregateOptions) []AggregateStat {
	type key struct {
		sourceURL  string
		anchorText string
		href       string
	}

	counts := make(map[key]int)
	for _, r := range records {
		if !r.IsVisible {
			continue
		}
		text := strings.TrimSpace(r.AnchorText)
		if text == "" || text == NoTextPlaceholder {
			continue
		}
		if opts.AnchorText != "" && text != opts.AnchorText {
			continue
		}
		counts[key{r.SourceURL, text, r.Href}]++
	}

	stats := make([]AggregateStat, 0, len(counts))
	for k, n := range counts {
		stats = append(stats, AggregateStat{
			SourceURL:  k.sourceURL,
			AnchorText: k.anchorText,
			Href:       k.href,
			Count:      n,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Href < stats[j].Href
	})

	if opts.Limit > 0 && len(stats) > opts.Limit {
		stats = stats[:opts.Limit]
	}
	return stats
}
