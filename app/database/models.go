package database

import (
	"time"
)

type Source struct {
	ID            int64
	Name          string // Configuration source identifier derived from filename
	Kind          string // "news" or "quotes"
	URL           string
	LastFetchedAt *time.Time
	NextFetchAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type NewsArticle struct {
	ID                      int64
	Link                    string
	Title                   string
	Summary                 string
	Content                 string
	Source                  string
	PublishDate             string // source-reported, format varies per origin
	Sentiment               float64
	ScrapedAt               time.Time
	CreatedAt               time.Time
	ContentExtractionStatus string // pending, success, failed
	ContentExtractedAt      *time.Time
	ContentExtractionError  string
}

type StockQuote struct {
	ID            int64
	Symbol        string
	QuoteDate     string // calendar date of the scrape, YYYY-MM-DD
	Price         float64
	ChangeAmount  float64
	ChangePercent float64
	Volume        int64
	MarketCap     int64
	Source        string
	ScrapedAt     time.Time
	CreatedAt     time.Time
}
