package scrape

import "testing"

func TestCleanText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  Fed holds\n\trates   steady ", "Fed holds rates steady"},
		{"already clean", "already clean"},
		{"", ""},
		{"\n\t  ", ""},
	}

	for _, tt := range tests {
		if got := cleanText(tt.input); got != tt.expected {
			t.Errorf("cleanText(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestStripBrandPrefix(t *testing.T) {
	tests := []struct {
		brand    string
		input    string
		expected string
	}{
		{"Yahoo Finance", "Yahoo Finance · Reuters", "Reuters"},
		{"Yahoo Finance", "Yahoo Finance - Bloomberg", "Bloomberg"},
		{"Yahoo Finance", "Yahoo Finance", ""},
		{"Yahoo Finance", "Reuters", "Reuters"},
		{"CNBC", "CNBC | Jane Smith", "Jane Smith"},
		{"CNBC", "", ""},
	}

	for _, tt := range tests {
		if got := stripBrandPrefix(tt.brand, tt.input); got != tt.expected {
			t.Errorf("stripBrandPrefix(%q, %q) = %q, expected %q", tt.brand, tt.input, got, tt.expected)
		}
	}
}

func TestResolveSource(t *testing.T) {
	tests := []struct {
		site     string
		byline   string
		expected string
	}{
		{"Yahoo Finance", "Reuters", "Reuters"},
		{"Yahoo Finance", "Yahoo Finance", "Yahoo Finance"},
		{"Yahoo Finance", "", "Yahoo Finance"},
		{"MarketWatch", "MarketWatch · Barron's", "Barron's"},
	}

	for _, tt := range tests {
		if got := resolveSource(tt.site, tt.byline); got != tt.expected {
			t.Errorf("resolveSource(%q, %q) = %q, expected %q", tt.site, tt.byline, got, tt.expected)
		}
	}
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		base     string
		href     string
		expected string
	}{
		{"https://finance.yahoo.com/news/", "/news/story.html", "https://finance.yahoo.com/news/story.html"},
		{"https://finance.yahoo.com/news/", "https://www.cnbc.com/2026/08/28/story.html", "https://www.cnbc.com/2026/08/28/story.html"},
		{"https://finance.yahoo.com/news/", "#top", ""},
		{"https://finance.yahoo.com/news/", "javascript:void(0)", ""},
		{"https://finance.yahoo.com/news/", "  ", ""},
	}

	for _, tt := range tests {
		if got := absoluteURL(tt.base, tt.href); got != tt.expected {
			t.Errorf("absoluteURL(%q, %q) = %q, expected %q", tt.base, tt.href, got, tt.expected)
		}
	}
}
