// Package goquery provides HTML link extraction built on PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/linkstat"
)

// ExtractLinks parses HTML and returns one record per same-site link
// element. Every element carrying an href attribute is considered,
// including <link> tags; display text comes from the trimmed inner text for
// anchors and from the title attribute for everything else.
//
// The same-site test runs on the raw href before resolution, so bare
// relative paths that don't contain the site base are filtered out. This
// matches the persisted data produced by earlier runs and is intentional.
func ExtractLinks(html string, sourceURL string) ([]linkstat.LinkRecord, error) {
	base, err := linkstat.SiteBase(sourceURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, linkstat.Errorf(linkstat.EINVALID, "failed to parse HTML: %v", err)
	}

	var records []linkstat.LinkRecord
	doc.Find("[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		tag := goquery.NodeName(sel)
		var text string
		if tag == "a" {
			text = strings.TrimSpace(sel.Text())
		} else {
			text = strings.TrimSpace(sel.AttrOr("title", ""))
		}
		if text == "" {
			return
		}

		if !strings.Contains(href, base) {
			return
		}

		resolved, err := linkstat.ResolveURL(sourceURL, href)
		if err != nil {
			return
		}

		records = append(records, linkstat.LinkRecord{
			SourceURL:  sourceURL,
			AnchorText: text,
			Href:       linkstat.NormalizeURL(resolved),
			IsVisible:  true, // visibility is not computable without a layout engine
			TagName:    tag,
			CSSClass:   sel.AttrOr("class", ""),
			ElementID:  sel.AttrOr("id", ""),
			Title:      sel.AttrOr("title", ""),
			Target:     sel.AttrOr("target", ""),
		})
	})

	return records, nil
}
