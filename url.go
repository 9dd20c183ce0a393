package linkstat

import (
	"net/url"
	"strings"
)

// NormalizeURL reduces a URL to its canonical comparison form by removing
// trailing slashes, the fragment, and the query string. It is idempotent and
// never fails; empty input yields an empty string.
func NormalizeURL(raw string) string {
	if raw == "" {
		return ""
	}
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimRight(raw, "/")
}

// SiteBase derives the same-site comparison base for a source URL: the
// scheme plus the host with a single leading "www." stripped.
func SiteBase(sourceURL string) (string, error) {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid source URL: %v", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", Errorf(EINVALID, "source URL %q must be absolute", sourceURL)
	}
	host := strings.TrimPrefix(u.Host, "www.")
	return u.Scheme + "://" + host, nil
}

// ResolveURL resolves href against the source URL, returning an absolute
// URL.
func ResolveURL(sourceURL, href string) (string, error) {
	base, err := url.Parse(sourceURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid source URL: %v", err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", Errorf(EINVALID, "invalid href %q: %v", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}
