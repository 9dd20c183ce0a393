package linkstat

import "context"

// NoTextPlaceholder is the sentinel anchor text used by upstream tooling
// for links without a label. Records carrying it are excluded from
// aggregation and query results.
const NoTextPlaceholder = "[No text]"

// LinkRecord represents one same-site link element discovered on a source
// page. Records are created during a single extraction pass and never
// mutated afterwards.
type LinkRecord struct {
	SourceURL  string `json:"sourceUrl"`
	AnchorText string `json:"anchorText"`
	Href       string `json:"href"` // normalized absolute URL
	IsVisible  bool   `json:"isVisible"`
	TagName    string `json:"tagName"`
	CSSClass   string `json:"cssClass"`
	ElementID  string `json:"elementId"`
	Title      string `json:"title"`
	Target     string `json:"target"`
}

// Validate returns an error if the record contains invalid fields.
func (r *LinkRecord) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "link record source URL required")
	}
	if r.Href == "" {
		return Errorf(EINVALID, "link record href required")
	}
	return nil
}

// LinkExtractor discovers same-site links on a source page.
// Implementations may use browser automation to read the rendered DOM, or
// fetch and parse raw HTML without script execution.
type LinkExtractor interface {
	// ExtractLinks navigates to the source URL and returns one record per
	// same-site link element found. A page-level load failure returns a
	// nil slice and an error; callers decide whether the run continues.
	// The context controls cancellation.
	ExtractLinks(ctx context.Context, sourceURL string) ([]LinkRecord, error)

	// Close releases any resources held by the extractor.
	// Must be called when the extractor is no longer needed.
	Close() error
}

// AggregateStat is a (source, anchor text, href) triple with its occurrence
// count. Derived from stored or in-memory records, never persisted itself.
type AggregateStat struct {
	SourceURL  string `json:"sourceUrl"`
	AnchorText string `json:"anchorText"`
	Href       string `json:"href"`
	Count      int    `json:"count"`
}

// AggregateFilter selects rows for the Aggregates read path.
type AggregateFilter struct {
	SourceURL  string  `json:"sourceUrl"`
	AnchorText *string `json:"anchorText"` // optional exact match

	Limit int `json:"limit"`
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// LinkService persists link record batches and serves ranked aggregate
// statistics.
type LinkService interface {
	// PersistLinks stores one extraction batch for a source URL and returns
	// the number of rows inserted. If a row already exists matching the
	// first record's (source, anchor text, href) triple, the entire batch
	// is skipped and zero is returned.
	PersistLinks(ctx context.Context, sourceURL string, records []LinkRecord) (int, error)

	// Aggregates returns ranked aggregate statistics for rows matching the
	// filter. Returns an empty slice, not an error, when nothing matches.
	Aggregates(ctx context.Context, filter AggregateFilter) ([]AggregateStat, error)

	// Reset discards all persisted rows, starting a fresh crawl run.
	Reset(ctx context.Context) error
}
