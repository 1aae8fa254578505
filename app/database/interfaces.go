package database

import (
	"time"

	"investorinfo/app/scrape"
)

// UpsertResult reports which branch an upsert took.
type UpsertResult string

const (
	UpsertInserted UpsertResult = "inserted"
	UpsertUpdated  UpsertResult = "updated"
)

type SourceRepository interface {
	GetSource(sourceName string) (*Source, error)
	GetSourceCount() (int, error)

	UpsertSource(sourceName, kind, url string) error
	UpdateFetchSchedule(sourceName string, nextFetch time.Time) error
}

type ArticleForExtraction struct {
	ID   int64
	Link string
}

type NewsRepository interface {
	GetRecentArticles(limit int) ([]NewsArticle, error)
	GetArticleCount() (int, error)

	UpsertArticle(record scrape.NewsRecord) (UpsertResult, error)

	GetArticlesForExtraction(limit int) ([]ArticleForExtraction, error)
	UpdateExtractedContent(articleID int64, content string, status string, extractedAt *time.Time, errorMsg string) error
}

type QuoteRepository interface {
	GetLatestQuotes(limit int) ([]StockQuote, error)
	GetQuotesBySymbol(symbol string, limit int) ([]StockQuote, error)
	GetQuoteCount() (int, error)

	UpsertQuote(record scrape.QuoteRecord) (UpsertResult, error)
}
