package scrape

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// YahooNewsExtractor scrapes finance.yahoo.com news pages.
type YahooNewsExtractor struct{}

func (YahooNewsExtractor) Site() string { return "Yahoo Finance" }

func (e YahooNewsExtractor) DiscoverLinks(payload []byte, baseURL string) ([]DiscoveredLink, error) {
	doc, err := parseDocument(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to parse index page: %w", err)
	}

	seen := make(map[string]bool)
	var links []DiscoveredLink

	doc.Find("a[href*='/news/']").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		link := absoluteURL(baseURL, href)
		if link == "" || !strings.HasSuffix(link, ".html") {
			return
		}
		if seen[link] {
			return
		}
		seen[link] = true

		links = append(links, DiscoveredLink{
			URL:   link,
			Title: cleanText(s.Text()),
		})
	})

	return links, nil
}

func (e YahooNewsExtractor) ExtractArticle(payload []byte, link DiscoveredLink) (*NewsRecord, bool) {
	doc, err := parseDocument(payload)
	if err != nil {
		return nil, false
	}

	title := firstText(doc, "h1[data-test-locator='headline']", "div.cover-title", "h1")
	if title == "" {
		title = metaContent(doc, "og:title")
	}
	if title == "" {
		title = link.Title
	}
	if title == "" {
		return nil, false
	}

	summary := metaContent(doc, "description", "og:description")
	if summary == "" {
		summary = link.Summary
	}

	byline := firstText(doc, "span.caas-attr-provider", "div.caas-attr-meta a", "a.subtle-link.fin-size-small")

	publishDate := firstAttr(doc, "datetime", "time[datetime]")
	if publishDate == "" {
		publishDate = firstText(doc, "time")
	}
	if publishDate == "" {
		publishDate = link.PublishDate
	}
	if publishDate == "" {
		publishDate = PublishDateUnknown
	}

	record := &NewsRecord{
		Title:       title,
		Link:        link.URL,
		Summary:     summary,
		Source:      resolveSource(e.Site(), byline),
		PublishDate: publishDate,
		ScrapedAt:   time.Now().UTC(),
	}

	return record, true
}
