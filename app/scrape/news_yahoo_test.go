package scrape

import "testing"

func TestYahooNewsExtractor_DiscoverLinks(t *testing.T) {
	index := `<html><body>
		<a href="/news/apple-earnings-beat-183046521.html">Apple beats estimates</a>
		<a href="https://finance.yahoo.com/news/fed-decision-120301844.html">Fed decision</a>
		<a href="/news/apple-earnings-beat-183046521.html">Apple beats estimates</a>
		<a href="/news/">News index</a>
		<a href="/videos/wrap">Video</a>
		<a href="#top">Back to top</a>
	</body></html>`

	links, err := YahooNewsExtractor{}.DiscoverLinks([]byte(index), "https://finance.yahoo.com/news/")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(links) != 2 {
		t.Fatalf("Expected 2 links, got %d: %+v", len(links), links)
	}
	if links[0].URL != "https://finance.yahoo.com/news/apple-earnings-beat-183046521.html" {
		t.Errorf("Unexpected first link: %s", links[0].URL)
	}
	if links[0].Title != "Apple beats estimates" {
		t.Errorf("Unexpected first title: '%s'", links[0].Title)
	}
	if links[1].URL != "https://finance.yahoo.com/news/fed-decision-120301844.html" {
		t.Errorf("Unexpected second link: %s", links[1].URL)
	}
}

func TestYahooNewsExtractor_ExtractArticle(t *testing.T) {
	page := `<html><head>
		<meta name="description" content="Quarterly results came in ahead of expectations.">
	</head><body>
		<h1 data-test-locator="headline">Apple beats earnings estimates</h1>
		<span class="caas-attr-provider">Reuters</span>
		<time datetime="2026-08-28T10:15:00.000Z">August 28, 2026</time>
	</body></html>`

	link := DiscoveredLink{URL: "https://finance.yahoo.com/news/apple-earnings-beat-183046521.html"}

	record, ok := YahooNewsExtractor{}.ExtractArticle([]byte(page), link)
	if !ok {
		t.Fatal("Expected a record, got none")
	}

	if record.Title != "Apple beats earnings estimates" {
		t.Errorf("Unexpected title: '%s'", record.Title)
	}
	if record.Link != link.URL {
		t.Errorf("Unexpected link: '%s'", record.Link)
	}
	if record.Summary != "Quarterly results came in ahead of expectations." {
		t.Errorf("Unexpected summary: '%s'", record.Summary)
	}
	if record.Source != "Reuters" {
		t.Errorf("Expected byline source Reuters, got '%s'", record.Source)
	}
	if record.PublishDate != "2026-08-28T10:15:00.000Z" {
		t.Errorf("Unexpected publish date: '%s'", record.PublishDate)
	}
}

func TestYahooNewsExtractor_FallbacksAndRejects(t *testing.T) {
	// Headline selector missing: og:title carries the headline, no
	// byline defaults the source to the site, no date marks it unknown.
	page := `<html><head>
		<meta property="og:title" content="Markets close higher">
	</head><body><div>Sparse page</div></body></html>`

	record, ok := YahooNewsExtractor{}.ExtractArticle([]byte(page), DiscoveredLink{URL: "https://finance.yahoo.com/news/x.html"})
	if !ok {
		t.Fatal("Expected a record, got none")
	}
	if record.Title != "Markets close higher" {
		t.Errorf("Expected og:title fallback, got '%s'", record.Title)
	}
	if record.Source != "Yahoo Finance" {
		t.Errorf("Expected site fallback source, got '%s'", record.Source)
	}
	if record.PublishDate != PublishDateUnknown {
		t.Errorf("Expected unknown publish date, got '%s'", record.PublishDate)
	}

	// No title anywhere: nothing to store.
	if record, ok := (YahooNewsExtractor{}).ExtractArticle([]byte("<html><body></body></html>"), DiscoveredLink{}); ok {
		t.Errorf("Expected no record for a titleless page, got %+v", record)
	}
}
