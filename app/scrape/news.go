package scrape

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// NewsExtractor is the per-site contract: discover article links from
// the site's index document (HTML page or feed), then turn one fetched
// article document into zero-or-one NewsRecord. Returning ok=false
// means the page held no usable data (minimum-viable predicate: a
// non-empty title), not an error. Extractors perform no I/O.
type NewsExtractor interface {
	Site() string
	DiscoverLinks(payload []byte, baseURL string) ([]DiscoveredLink, error)
	ExtractArticle(payload []byte, link DiscoveredLink) (*NewsRecord, bool)
}

func parseDocument(payload []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(payload))
}

// firstText returns the cleaned text of the first selector that
// matches anything. Site markup shifts often, so every field is read
// through an ordered selector list rather than a single selector.
func firstText(doc *goquery.Document, selectors ...string) string {
	for _, selector := range selectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			if text := cleanText(sel.Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

// firstAttr returns the named attribute of the first selector that
// matches and carries it.
func firstAttr(doc *goquery.Document, attr string, selectors ...string) string {
	for _, selector := range selectors {
		if value, ok := doc.Find(selector).First().Attr(attr); ok {
			if value = strings.TrimSpace(value); value != "" {
				return value
			}
		}
	}
	return ""
}

func metaContent(doc *goquery.Document, names ...string) string {
	for _, name := range names {
		selector := "meta[property='" + name + "'], meta[name='" + name + "']"
		if content, ok := doc.Find(selector).First().Attr("content"); ok {
			if content = cleanText(content); content != "" {
				return content
			}
		}
	}
	return ""
}

// cleanText collapses runs of whitespace into single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// stripBrandPrefix drops a leading site-name token from a byline or
// source string: "Yahoo Finance · Reuters" becomes "Reuters". The
// empty string comes back when nothing but the brand was present.
func stripBrandPrefix(brand, s string) string {
	s = cleanText(s)
	if s == "" {
		return ""
	}

	if rest, ok := strings.CutPrefix(s, brand); ok {
		rest = strings.TrimLeft(rest, " \t|:·•–—-")
		return strings.TrimSpace(rest)
	}
	return s
}

// resolveSource picks the stored source label: the byline provider
// when one survives brand stripping, the site label otherwise.
func resolveSource(site, byline string) string {
	if provider := stripBrandPrefix(site, byline); provider != "" {
		return provider
	}
	return site
}

// absoluteURL resolves href against base; relative index links come
// back absolute, garbage comes back empty.
func absoluteURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return ref.String()
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(ref).String()
}
