// Package rod provides a browser-based implementation of
// linkstat.LinkExtractor using Chrome automation. It discovers links in the
// rendered DOM, so JavaScript-injected content and real element visibility
// are observed.
package rod

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/linkstat"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultTimeout is the default page load timeout.
const DefaultTimeout = 5 * time.Minute

// DefaultSettleDelay is the default wait after the load event for deferred
// content to attach to the DOM.
const DefaultSettleDelay = 10 * time.Second

// networkIdleWindow is how long the network must stay quiet after the load
// event before the page counts as idle.
const networkIdleWindow = 500 * time.Millisecond

// userAgent is applied to every page so the crawl renders the same page a
// desktop browser would.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Ensure Extractor implements linkstat.LinkExtractor at compile time.
var _ linkstat.LinkExtractor = (*Extractor)(nil)

// Extractor discovers same-site links from the rendered DOM using a
// headless Chrome browser. The browser process is acquired once at
// construction and held for the whole run; pages are opened and closed per
// source URL. Close must be called on every exit path so the browser and
// its launcher are torn down.
type Extractor struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
	settle   time.Duration
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTimeout sets the page load timeout.
// Defaults to DefaultTimeout (5m) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(e *Extractor) {
		e.timeout = d
	}
}

// WithSettleDelay sets the wait after page load before elements are
// enumerated. Defaults to DefaultSettleDelay (10s) if not specified.
func WithSettleDelay(d time.Duration) Option {
	return func(e *Extractor) {
		e.settle = d
	}
}

// NewExtractor creates a new Extractor backed by a headless Chrome
// browser. Close must be called when the Extractor is no longer needed.
//
// Returns an EUNAVAILABLE error if Chrome/Chromium cannot be found or
// launched, which signals callers to fall back to static extraction.
func NewExtractor(opts ...Option) (*Extractor, error) {
	e := &Extractor{
		timeout: DefaultTimeout,
		settle:  DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(e)
	}

	l := launcher.New().Leakless(true).Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, linkstat.Errorf(linkstat.EUNAVAILABLE, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, linkstat.Errorf(linkstat.EUNAVAILABLE, "connecting to browser: %v", err)
	}

	e.browser = browser
	e.launcher = l
	return e, nil
}

// ExtractLinks navigates to the source URL, waits for the page to load and
// settle, and returns one record per same-site link element in the
// rendered DOM. Failures reading a single element skip that element only;
// a page-level failure returns a nil slice and the error.
func (e *Extractor) ExtractLinks(ctx context.Context, sourceURL string) ([]linkstat.LinkRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := linkstat.SiteBase(sourceURL)
	if err != nil {
		return nil, err
	}

	page, err := e.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	defer page.Close()

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	page = page.Context(ctx)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: userAgent}); err != nil {
		return nil, err
	}

	if err := page.Navigate(sourceURL); err != nil {
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}
	// The load event fires before in-flight XHR completes; wait for the
	// network to go quiet before the settle delay.
	page.WaitRequestIdle(networkIdleWindow, nil, nil, nil)()

	// Fixed settle delay for deferred content to attach.
	select {
	case <-time.After(e.settle):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	elements, err := page.Elements("[href]")
	if err != nil {
		return nil, err
	}

	var records []linkstat.LinkRecord
	for _, el := range elements {
		rec, ok := readRecord(el, sourceURL, base)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

// Close releases browser resources.
func (e *Extractor) Close() error {
	err := e.browser.Close()
	e.launcher.Kill()
	return err
}

// readRecord reads one element into a LinkRecord. The second return value
// is false when the element should be skipped, whether filtered out or
// because an attribute read failed.
func readRecord(el *rod.Element, sourceURL, base string) (linkstat.LinkRecord, bool) {
	href, err := el.Attribute("href")
	if err != nil || href == nil || *href == "" {
		return linkstat.LinkRecord{}, false
	}

	tag, err := tagName(el)
	if err != nil {
		return linkstat.LinkRecord{}, false
	}

	var text string
	if tag == "a" {
		text, err = el.Text()
		if err != nil {
			return linkstat.LinkRecord{}, false
		}
		text = strings.TrimSpace(text)
	} else {
		text = strings.TrimSpace(attrOr(el, "title"))
	}
	if text == "" {
		return linkstat.LinkRecord{}, false
	}

	// Same-site test on the raw href, before resolution.
	if !strings.Contains(*href, base) {
		return linkstat.LinkRecord{}, false
	}

	resolved, err := linkstat.ResolveURL(sourceURL, *href)
	if err != nil {
		return linkstat.LinkRecord{}, false
	}

	visible, err := el.Visible()
	if err != nil {
		return linkstat.LinkRecord{}, false
	}

	return linkstat.LinkRecord{
		SourceURL:  sourceURL,
		AnchorText: text,
		Href:       linkstat.NormalizeURL(resolved),
		IsVisible:  visible,
		TagName:    tag,
		CSSClass:   attrOr(el, "class"),
		ElementID:  attrOr(el, "id"),
		Title:      attrOr(el, "title"),
		Target:     attrOr(el, "target"),
	}, true
}

func tagName(el *rod.Element) (string, error) {
	obj, err := el.Eval(`() => this.tagName.toLowerCase()`)
	if err != nil {
		return "", err
	}
	return obj.Value.Str(), nil
}

func attrOr(el *rod.Element, name string) string {
	v, err := el.Attribute(name)
	if err != nil || v == nil {
		return ""
	}
	return *v
}
