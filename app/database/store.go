package database

import (
	"fmt"

	"investorinfo/app/scrape"
)

// Store is the reconciliation entry point for extracted records.
// Dispatch over the record sum type happens here, at compile time;
// each upsert runs as its own implicit transaction, so one failed
// record never rolls back or aborts the rest of a batch.
type Store struct {
	news   NewsRepository
	quotes QuoteRepository
}

func NewStore(news NewsRepository, quotes QuoteRepository) *Store {
	return &Store{news: news, quotes: quotes}
}

func (s *Store) Upsert(record scrape.Record) (UpsertResult, error) {
	switch rec := record.(type) {
	case scrape.NewsRecord:
		return s.news.UpsertArticle(rec)
	case *scrape.NewsRecord:
		return s.news.UpsertArticle(*rec)
	case scrape.QuoteRecord:
		return s.quotes.UpsertQuote(rec)
	case *scrape.QuoteRecord:
		return s.quotes.UpsertQuote(*rec)
	default:
		return "", fmt.Errorf("unsupported record type %T", record)
	}
}
