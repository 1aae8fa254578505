package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"investorinfo/app/database"
	"investorinfo/app/ingest"
	"investorinfo/app/scrape"
	"investorinfo/app/sources"
)

type ExtractContentTask struct {
	Task
	SourceConfig     *sources.Config
	fetcher          ingest.Fetcher
	contentExtractor *scrape.ArticleContentExtractor
	newsRepo         database.NewsRepository
}

func NewExtractContentTask(sourceName string, sourceConfig *sources.Config, fetcher ingest.Fetcher, contentExtractor *scrape.ArticleContentExtractor, newsRepo database.NewsRepository) *ExtractContentTask {
	return &ExtractContentTask{
		Task:             NewTask(TaskTypeExtractContent, sourceName),
		SourceConfig:     sourceConfig,
		fetcher:          fetcher,
		contentExtractor: contentExtractor,
		newsRepo:         newsRepo,
	}
}

func (t *ExtractContentTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.SourceConfig.Settings.ExtractContent {
		slog.Debug("Content extraction disabled for source", "source", t.SourceName)
		return nil
	}

	articles, err := t.newsRepo.GetArticlesForExtraction(t.SourceConfig.Settings.MaxArticles)
	if err != nil {
		return fmt.Errorf("failed to get articles for content extraction: %w", err)
	}

	if len(articles) == 0 {
		slog.Debug("No articles need content extraction", "source", t.SourceName)
		return nil
	}

	successCount := 0
	errorCount := 0

	for _, article := range articles {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		extractCtx, cancel := context.WithTimeout(ctx, time.Duration(t.SourceConfig.Settings.Timeout)*time.Second)

		err := t.extractContentForArticle(extractCtx, article)
		cancel()

		if err != nil {
			slog.Error("Failed to extract content for article", "article_id", article.ID, "url", article.Link, "error", err)
			errorCount++

			now := time.Now().UTC()
			err = t.newsRepo.UpdateExtractedContent(article.ID, "", "failed", &now, err.Error())
			if err != nil {
				slog.Error("Failed to update content extraction status", "article_id", article.ID, "error", err)
			}
		} else {
			successCount++
		}
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"source", t.SourceName,
		"duration", t.GetDuration(),
		"success", successCount,
		"errors", errorCount)

	return nil
}

func (t *ExtractContentTask) extractContentForArticle(ctx context.Context, article database.ArticleForExtraction) error {
	if article.Link == "" {
		return fmt.Errorf("article has no link")
	}

	resp, err := t.fetcher.Fetch(ctx, article.Link, article.Link, 0)
	if err != nil {
		return fmt.Errorf("failed to fetch article content: %w", err)
	}

	extractedContent, err := t.contentExtractor.Run(resp.Body, article.Link)
	if err != nil {
		return fmt.Errorf("failed to extract content: %w", err)
	}

	now := time.Now().UTC()
	err = t.newsRepo.UpdateExtractedContent(article.ID, extractedContent, "success", &now, "")
	if err != nil {
		return fmt.Errorf("failed to update extracted content and status: %w", err)
	}

	slog.Debug("Content extracted successfully", "article_id", article.ID, "url", article.Link, "content_length", len(extractedContent))
	return nil
}
