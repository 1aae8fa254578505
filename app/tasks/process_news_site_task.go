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

type ProcessNewsSiteTask struct {
	Task
	SourceConfig *sources.Config
	pipeline     *ingest.NewsPipeline
	sourceRepo   database.SourceRepository
}

func NewProcessNewsSiteTask(sourceName string, sourceConfig *sources.Config, pipeline *ingest.NewsPipeline, sourceRepo database.SourceRepository) *ProcessNewsSiteTask {
	return &ProcessNewsSiteTask{
		Task:         NewTask(TaskTypeProcessNewsSite, sourceName),
		SourceConfig: sourceConfig,
		pipeline:     pipeline,
		sourceRepo:   sourceRepo,
	}
}

func (t *ProcessNewsSiteTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.SourceConfig.Settings.Enabled {
		slog.Debug("Source disabled, skipping", "source", t.SourceName)
		return nil
	}

	extractor, ok := scrape.NewsExtractorFor(t.SourceConfig.Site)
	if !ok {
		return fmt.Errorf("unknown news site: %s", t.SourceConfig.Site)
	}

	stats, err := t.pipeline.Run(ctx, extractor, t.SourceConfig)
	if err != nil {
		return fmt.Errorf("failed to process news site: %w", err)
	}

	if err := t.updateFetchSchedule(); err != nil {
		return err
	}

	slog.Info("Task completed",
		"type", "ProcessNewsSite",
		"source", t.SourceName,
		"duration", t.GetDuration(),
		"discovered", stats.Discovered,
		"inserted", stats.Inserted,
		"updated", stats.Updated,
		"errors", stats.Errors)

	return nil
}

func (t *ProcessNewsSiteTask) updateFetchSchedule() error {
	nextFetch := time.Now().UTC().Add(time.Duration(t.SourceConfig.Settings.RefreshInterval) * time.Second)

	err := t.sourceRepo.UpdateFetchSchedule(t.SourceName, nextFetch)
	if err != nil {
		return fmt.Errorf("failed to update fetch schedule: %w", err)
	}

	return nil
}
