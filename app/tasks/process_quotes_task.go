package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"investorinfo/app/database"
	"investorinfo/app/ingest"
	"investorinfo/app/sources"
)

// ProcessQuotesTask refreshes every symbol on a watchlist source. Each
// symbol resolves through the endpoint fallback chain independently;
// symbols with no quote are logged and skipped, never failing the task.
type ProcessQuotesTask struct {
	Task
	SourceConfig *sources.Config
	coordinator  *ingest.Coordinator
	store        ingest.RecordStore
	sourceRepo   database.SourceRepository
}

func NewProcessQuotesTask(sourceName string, sourceConfig *sources.Config, coordinator *ingest.Coordinator, store ingest.RecordStore, sourceRepo database.SourceRepository) *ProcessQuotesTask {
	return &ProcessQuotesTask{
		Task:         NewTask(TaskTypeProcessQuote, sourceName),
		SourceConfig: sourceConfig,
		coordinator:  coordinator,
		store:        store,
		sourceRepo:   sourceRepo,
	}
}

func (t *ProcessQuotesTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.SourceConfig.Settings.Enabled {
		slog.Debug("Source disabled, skipping", "source", t.SourceName)
		return nil
	}

	resolvedCount := 0
	missedCount := 0

	for _, symbol := range t.SourceConfig.Symbols {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		quoteCtx, cancel := context.WithTimeout(ctx, time.Duration(t.SourceConfig.Settings.Timeout)*time.Second)
		record, ok := t.coordinator.FetchQuote(quoteCtx, symbol)
		cancel()

		if !ok {
			missedCount++
			continue
		}

		if _, err := t.store.Upsert(*record); err != nil {
			slog.Error("Failed to store quote", "key", record.NaturalKey(), "origin", record.Origin(), "error", err)
			missedCount++
			continue
		}
		resolvedCount++
	}

	nextFetch := time.Now().UTC().Add(time.Duration(t.SourceConfig.Settings.RefreshInterval) * time.Second)
	if err := t.sourceRepo.UpdateFetchSchedule(t.SourceName, nextFetch); err != nil {
		return fmt.Errorf("failed to update fetch schedule: %w", err)
	}

	slog.Info("Task completed",
		"type", "ProcessQuotes",
		"source", t.SourceName,
		"duration", t.GetDuration(),
		"symbols", len(t.SourceConfig.Symbols),
		"resolved", resolvedCount,
		"missed", missedCount)

	return nil
}
