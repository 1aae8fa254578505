package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"investorinfo/app/database"
	"investorinfo/app/scrape"
	"investorinfo/app/sources"
)

// NewsStats summarizes one news cycle for a site.
type NewsStats struct {
	Discovered int
	Inserted   int
	Updated    int
	Skipped    int
	Errors     int
}

// NewsPipeline runs one full scrape cycle for a news site: fetch the
// index document, discover article links, fetch and extract each
// article, reconcile into storage. Per-article failures are logged and
// skipped so one broken page never sinks the cycle.
type NewsPipeline struct {
	fetcher Fetcher
	store   RecordStore
}

func NewNewsPipeline(fetcher Fetcher, store RecordStore) *NewsPipeline {
	return &NewsPipeline{fetcher: fetcher, store: store}
}

func (p *NewsPipeline) Run(ctx context.Context, extractor scrape.NewsExtractor, config *sources.Config) (NewsStats, error) {
	var stats NewsStats

	index, err := p.fetcher.Fetch(ctx, config.URL, config.Name, 0)
	if err != nil {
		return stats, fmt.Errorf("failed to fetch index: %w", err)
	}

	links, err := extractor.DiscoverLinks(index.Body, config.URL)
	if err != nil {
		return stats, fmt.Errorf("failed to discover links: %w", err)
	}

	if config.Settings.MaxArticles > 0 && len(links) > config.Settings.MaxArticles {
		links = links[:config.Settings.MaxArticles]
	}
	stats.Discovered = len(links)

	for _, link := range links {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		result, err := p.processLink(ctx, extractor, link)
		if err != nil {
			slog.Warn("Article skipped", "site", extractor.Site(), "url", link.URL, "error", err)
			stats.Errors++
			continue
		}

		switch result {
		case database.UpsertInserted:
			stats.Inserted++
		case database.UpsertUpdated:
			stats.Updated++
		default:
			stats.Skipped++
		}
	}

	return stats, nil
}

func (p *NewsPipeline) processLink(ctx context.Context, extractor scrape.NewsExtractor, link scrape.DiscoveredLink) (database.UpsertResult, error) {
	resp, err := p.fetcher.Fetch(ctx, link.URL, link.URL, 0)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article: %w", err)
	}

	record, ok := extractor.ExtractArticle(resp.Body, link)
	if !ok {
		return "", fmt.Errorf("no usable article data")
	}

	result, err := p.store.Upsert(*record)
	if err != nil {
		return "", fmt.Errorf("failed to store %s from %s: %w", record.NaturalKey(), record.Origin(), err)
	}
	return result, nil
}
