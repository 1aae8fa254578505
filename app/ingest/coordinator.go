// Package ingest drives the scrape pipelines: it pairs the fetch layer
// with the extractors and reconciles whatever comes out into storage.
package ingest

import (
	"context"
	"log/slog"
	"sync"

	"investorinfo/app/database"
	"investorinfo/app/fetch"
	"investorinfo/app/scrape"
)

// Fetcher is the slice of the HTTP client the pipelines depend on.
// *fetch.Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL, token string, priority int) (*fetch.Response, error)
}

// RecordStore reconciles one extracted record into storage.
// *database.Store satisfies it.
type RecordStore interface {
	Upsert(record scrape.Record) (database.UpsertResult, error)
}

// Coordinator resolves one symbol against several quote endpoints.
// All endpoints are fetched concurrently; the winner is the first
// viable record in priority order, not in arrival order. Endpoint
// priority is the extractor's position in the slice, lowest first.
type Coordinator struct {
	fetcher    Fetcher
	extractors []scrape.QuoteExtractor
}

func NewCoordinator(fetcher Fetcher) *Coordinator {
	return &Coordinator{
		fetcher: fetcher,
		extractors: []scrape.QuoteExtractor{
			scrape.QuoteSummaryExtractor{},
			scrape.QuoteBasicExtractor{},
			scrape.QuoteChartExtractor{},
		},
	}
}

// FetchQuote returns the highest-priority viable quote for the symbol,
// or ok=false when every endpoint failed or produced nothing usable.
// Individual endpoint failures are expected and only logged; a symbol
// with no quote today is not a pipeline error.
func (c *Coordinator) FetchQuote(ctx context.Context, symbol string) (*scrape.QuoteRecord, bool) {
	results := make([]*scrape.QuoteRecord, len(c.extractors))

	var wg sync.WaitGroup
	for i, extractor := range c.extractors {
		wg.Add(1)
		go func(priority int, extractor scrape.QuoteExtractor) {
			defer wg.Done()

			resp, err := c.fetcher.Fetch(ctx, extractor.URL(symbol), symbol, priority)
			if err != nil {
				slog.Debug("Quote endpoint fetch failed", "symbol", symbol, "endpoint", extractor.Name(), "error", err)
				return
			}

			record, ok := extractor.Extract(resp.Body, resp.Token)
			if !ok {
				slog.Debug("Quote endpoint returned no usable data", "symbol", symbol, "endpoint", extractor.Name())
				return
			}

			results[resp.Priority] = record
		}(i, extractor)
	}
	wg.Wait()

	for i, record := range results {
		if record != nil && record.Viable() {
			slog.Debug("Quote resolved", "symbol", symbol, "endpoint", c.extractors[i].Name())
			return record, true
		}
	}

	slog.Warn("All quote endpoints failed for symbol", "symbol", symbol)
	return nil, false
}
