package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"investorinfo/app/database"
	"investorinfo/app/sources"
)

const defaultListLimit = 50
const maxListLimit = 500

func NewHandler(configCache *sources.ConfigCache, sourceRepo database.SourceRepository,
	newsRepo database.NewsRepository, quoteRepo database.QuoteRepository) *Handler {
	return &Handler{
		sourceRepo:  sourceRepo,
		newsRepo:    newsRepo,
		quoteRepo:   quoteRepo,
		configCache: configCache,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if sourceCount, err := h.sourceRepo.GetSourceCount(); err == nil {
		health["sources"] = sourceCount
	}

	health["loaded_configurations"] = h.configCache.GetConfigCount()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if articleCount, err := h.newsRepo.GetArticleCount(); err == nil {
		stats["articles"] = articleCount
	}
	if quoteCount, err := h.quoteRepo.GetQuoteCount(); err == nil {
		stats["quotes"] = quoteCount
	}
	if sourceCount, err := h.sourceRepo.GetSourceCount(); err == nil {
		stats["sources"] = sourceCount
	}

	configs := h.configCache.GetConfigs()
	sourceInfos := make([]map[string]interface{}, 0, len(configs))
	for _, sourceConfig := range configs {
		sourceInfo := map[string]interface{}{
			"name":             sourceConfig.Name,
			"kind":             sourceConfig.Kind,
			"enabled":          sourceConfig.Settings.Enabled,
			"refresh_interval": (time.Duration(sourceConfig.Settings.RefreshInterval) * time.Second).String(),
		}

		if source, err := h.sourceRepo.GetSource(sourceConfig.Name); err == nil && source != nil {
			sourceInfo["last_fetched_at"] = source.LastFetchedAt
			sourceInfo["next_fetch_at"] = source.NextFetchAt
		}

		sourceInfos = append(sourceInfos, sourceInfo)
	}
	stats["source_details"] = sourceInfos

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) ListNews(c *gin.Context) {
	articles, err := h.newsRepo.GetRecentArticles(listLimit(c))
	if err != nil {
		slog.Error("Database error", "operation", "get_recent_articles", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles, "count": len(articles)})
}

func (h *Handler) ListQuotes(c *gin.Context) {
	quotes, err := h.quoteRepo.GetLatestQuotes(listLimit(c))
	if err != nil {
		slog.Error("Database error", "operation", "get_latest_quotes", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quotes": quotes, "count": len(quotes)})
}

func (h *Handler) GetQuotesBySymbol(c *gin.Context) {
	symbol := c.Param("symbol")
	if symbol == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	quotes, err := h.quoteRepo.GetQuotesBySymbol(symbol, listLimit(c))
	if err != nil {
		slog.Error("Database error", "operation", "get_quotes_by_symbol", "symbol", symbol, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	if len(quotes) == 0 {
		c.Status(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "quotes": quotes, "count": len(quotes)})
}

func listLimit(c *gin.Context) int {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return limit
}
