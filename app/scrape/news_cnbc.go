package scrape

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// CNBCNewsExtractor scrapes cnbc.com finance pages.
type CNBCNewsExtractor struct{}

func (CNBCNewsExtractor) Site() string { return "CNBC" }

func (e CNBCNewsExtractor) DiscoverLinks(payload []byte, baseURL string) ([]DiscoveredLink, error) {
	doc, err := parseDocument(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to parse index page: %w", err)
	}

	seen := make(map[string]bool)
	var links []DiscoveredLink

	doc.Find("a.Card-title, div.LatestNews-headlineWrapper a, a.RiverHeadline-headline").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		link := absoluteURL(baseURL, href)
		if link == "" || !strings.Contains(link, "cnbc.com/2") {
			// Article URLs are date-pathed (/2026/08/28/...); everything
			// else on the card rails is section navigation.
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

func (e CNBCNewsExtractor) ExtractArticle(payload []byte, link DiscoveredLink) (*NewsRecord, bool) {
	doc, err := parseDocument(payload)
	if err != nil {
		return nil, false
	}

	title := firstText(doc, "h1.ArticleHeader-headline", "h1.LiveBlogHeader-headline", "h1")
	if title == "" {
		title = metaContent(doc, "og:title")
	}
	if title == "" {
		title = link.Title
	}
	if title == "" {
		return nil, false
	}

	summary := firstText(doc, "div.RenderKeyPoints-list li")
	if summary == "" {
		summary = metaContent(doc, "description", "og:description")
	}
	if summary == "" {
		summary = link.Summary
	}

	byline := firstText(doc, "a.Author-authorName", "div.Author-authorNameAndSocial")

	publishDate := firstAttr(doc, "datetime", "time[data-testid='published-timestamp']", "time[datetime]")
	if publishDate == "" {
		publishDate = firstText(doc, "time")
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
