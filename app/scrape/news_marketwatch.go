package scrape

import (
	"bytes"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
)

// MarketWatchNewsExtractor covers marketwatch.com. Discovery runs off
// the site's RSS feed instead of index-page markup, which also yields
// per-article summaries and publish dates up front; article pages are
// still scraped for the byline and a better summary.
type MarketWatchNewsExtractor struct {
	feedParser *gofeed.Parser
}

func NewMarketWatchNewsExtractor() *MarketWatchNewsExtractor {
	return &MarketWatchNewsExtractor{
		feedParser: gofeed.NewParser(),
	}
}

func (*MarketWatchNewsExtractor) Site() string { return "MarketWatch" }

func (e *MarketWatchNewsExtractor) DiscoverLinks(payload []byte, baseURL string) ([]DiscoveredLink, error) {
	feed, err := e.feedParser.Parse(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	seen := make(map[string]bool)
	var links []DiscoveredLink

	for _, item := range feed.Items {
		if item == nil || item.Link == "" {
			continue
		}
		link := absoluteURL(baseURL, item.Link)
		if link == "" || seen[link] {
			continue
		}
		seen[link] = true

		links = append(links, DiscoveredLink{
			URL:         link,
			Title:       cleanText(item.Title),
			Summary:     cleanText(item.Description),
			PublishDate: item.Published, // source-reported, kept verbatim
		})
	}

	return links, nil
}

func (e *MarketWatchNewsExtractor) ExtractArticle(payload []byte, link DiscoveredLink) (*NewsRecord, bool) {
	doc, err := parseDocument(payload)
	if err != nil {
		return nil, false
	}

	title := firstText(doc, "h1.article__headline", "h1")
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

	byline := firstText(doc, "h4.author__name", "div.author a", "span.author")

	publishDate := firstAttr(doc, "datetime", "time.timestamp--pub", "time[datetime]")
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
