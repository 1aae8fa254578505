package scrape

import "testing"

func TestMarketWatchNewsExtractor_DiscoverLinks(t *testing.T) {
	rss := `<?xml version="1.0" encoding="UTF-8"?>
	<rss version="2.0">
		<channel>
			<title>MarketWatch Top Stories</title>
			<item>
				<title>Dow jumps 300 points</title>
				<link>https://www.marketwatch.com/story/dow-jumps-300-points-1</link>
				<description>Blue chips rally into the close.</description>
				<pubDate>Fri, 28 Aug 2026 20:05:00 GMT</pubDate>
			</item>
			<item>
				<title>Oil slips below $70</title>
				<link>https://www.marketwatch.com/story/oil-slips-below-70-2</link>
				<description>Supply worries ease.</description>
				<pubDate>Fri, 28 Aug 2026 18:30:00 GMT</pubDate>
			</item>
			<item>
				<title>Duplicate</title>
				<link>https://www.marketwatch.com/story/dow-jumps-300-points-1</link>
			</item>
		</channel>
	</rss>`

	extractor := NewMarketWatchNewsExtractor()

	links, err := extractor.DiscoverLinks([]byte(rss), "https://www.marketwatch.com/")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(links) != 2 {
		t.Fatalf("Expected 2 links, got %d: %+v", len(links), links)
	}
	if links[0].URL != "https://www.marketwatch.com/story/dow-jumps-300-points-1" {
		t.Errorf("Unexpected first link: %s", links[0].URL)
	}
	if links[0].Title != "Dow jumps 300 points" {
		t.Errorf("Unexpected first title: '%s'", links[0].Title)
	}
	if links[0].Summary != "Blue chips rally into the close." {
		t.Errorf("Unexpected first summary: '%s'", links[0].Summary)
	}
	if links[0].PublishDate != "Fri, 28 Aug 2026 20:05:00 GMT" {
		t.Errorf("Expected verbatim pubDate, got '%s'", links[0].PublishDate)
	}
}

func TestMarketWatchNewsExtractor_DiscoverLinks_NotAFeed(t *testing.T) {
	extractor := NewMarketWatchNewsExtractor()

	if _, err := extractor.DiscoverLinks([]byte("<html><body>not a feed</body></html>"), "https://www.marketwatch.com/"); err == nil {
		t.Fatal("Expected an error for a non-feed payload")
	}
}

func TestMarketWatchNewsExtractor_ExtractArticle(t *testing.T) {
	page := `<html><head>
		<meta name="description" content="Blue chips rally into the close.">
	</head><body>
		<h1 class="article__headline">Dow jumps 300 points</h1>
		<h4 class="author__name">Sam Lee</h4>
		<time class="timestamp--pub" datetime="2026-08-28T20:05:00Z">Aug. 28, 2026</time>
	</body></html>`

	link := DiscoveredLink{
		URL:         "https://www.marketwatch.com/story/dow-jumps-300-points-1",
		Title:       "Dow jumps 300 points",
		Summary:     "Feed summary.",
		PublishDate: "Fri, 28 Aug 2026 20:05:00 GMT",
	}

	extractor := NewMarketWatchNewsExtractor()

	record, ok := extractor.ExtractArticle([]byte(page), link)
	if !ok {
		t.Fatal("Expected a record, got none")
	}

	if record.Title != "Dow jumps 300 points" {
		t.Errorf("Unexpected title: '%s'", record.Title)
	}
	if record.Summary != "Blue chips rally into the close." {
		t.Errorf("Expected page summary to beat the feed summary, got '%s'", record.Summary)
	}
	if record.Source != "Sam Lee" {
		t.Errorf("Expected byline source, got '%s'", record.Source)
	}
	if record.PublishDate != "2026-08-28T20:05:00Z" {
		t.Errorf("Unexpected publish date: '%s'", record.PublishDate)
	}
}

func TestMarketWatchNewsExtractor_FeedFieldsCarryThrough(t *testing.T) {
	// A paywalled or stripped page still yields a record from the feed
	// fields attached to the link.
	link := DiscoveredLink{
		URL:         "https://www.marketwatch.com/story/oil-slips-below-70-2",
		Title:       "Oil slips below $70",
		Summary:     "Supply worries ease.",
		PublishDate: "Fri, 28 Aug 2026 18:30:00 GMT",
	}

	extractor := NewMarketWatchNewsExtractor()

	record, ok := extractor.ExtractArticle([]byte("<html><body><div>Subscribe to continue</div></body></html>"), link)
	if !ok {
		t.Fatal("Expected a record, got none")
	}

	if record.Title != "Oil slips below $70" {
		t.Errorf("Expected feed title, got '%s'", record.Title)
	}
	if record.Summary != "Supply worries ease." {
		t.Errorf("Expected feed summary, got '%s'", record.Summary)
	}
	if record.Source != "MarketWatch" {
		t.Errorf("Expected site fallback source, got '%s'", record.Source)
	}
	if record.PublishDate != "Fri, 28 Aug 2026 18:30:00 GMT" {
		t.Errorf("Expected feed publish date, got '%s'", record.PublishDate)
	}
}
