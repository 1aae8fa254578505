package sources

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestConfigCache_LoadNewsSource(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "yahoo_news.yml", `
kind: news
site: yahoo
url: https://finance.yahoo.com/news/
settings:
  enabled: true
  refresh_interval: 1800
  extract_content: true
`)

	cache := NewConfigCache(dir)
	if err := cache.Run(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	config, err := cache.GetConfig("yahoo_news")
	if err != nil {
		t.Fatalf("Expected config, got error: %v", err)
	}

	if config.Kind != KindNews {
		t.Errorf("Expected kind 'news', got '%s'", config.Kind)
	}
	if config.Site != "yahoo" {
		t.Errorf("Expected site 'yahoo', got '%s'", config.Site)
	}
	if config.URL != "https://finance.yahoo.com/news/" {
		t.Errorf("Unexpected URL: %s", config.URL)
	}
	if config.Settings.RefreshInterval != 1800 {
		t.Errorf("Expected refresh interval 1800, got %d", config.Settings.RefreshInterval)
	}
	if !config.Settings.ExtractContent {
		t.Error("Expected extract_content to be enabled")
	}

	// Defaults applied where the file is silent
	if config.Settings.Timeout != 30 {
		t.Errorf("Expected default timeout 30, got %d", config.Settings.Timeout)
	}
	if config.Settings.MaxArticles != 50 {
		t.Errorf("Expected default max articles 50, got %d", config.Settings.MaxArticles)
	}
}

func TestConfigCache_LoadQuotesSource(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "watchlist.yml", `
kind: quotes
symbols: [AAPL, MSFT, AMZN]
settings:
  enabled: true
  refresh_interval: 900
`)

	cache := NewConfigCache(dir)
	if err := cache.Run(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	config, err := cache.GetConfig("watchlist")
	if err != nil {
		t.Fatalf("Expected config, got error: %v", err)
	}

	if config.Kind != KindQuotes {
		t.Errorf("Expected kind 'quotes', got '%s'", config.Kind)
	}
	if len(config.Symbols) != 3 {
		t.Errorf("Expected 3 symbols, got %d", len(config.Symbols))
	}
	if config.Symbols[0] != "AAPL" {
		t.Errorf("Expected first symbol 'AAPL', got '%s'", config.Symbols[0])
	}
}

func TestConfigCache_InvalidKind(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "bad.yml", `
kind: widgets
url: https://example.com
`)

	cache := NewConfigCache(dir)
	if err := cache.Run(); err == nil {
		t.Error("Expected error for unknown source kind")
	}
}

func TestConfigCache_NewsRequiresURLAndSite(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "nourl.yml", `
kind: news
site: yahoo
`)

	cache := NewConfigCache(dir)
	if err := cache.Run(); err == nil {
		t.Error("Expected error for news source without URL")
	}
}

func TestConfigCache_QuotesRequireSymbols(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "empty.yml", `
kind: quotes
symbols: []
`)

	cache := NewConfigCache(dir)
	if err := cache.Run(); err == nil {
		t.Error("Expected error for quotes source without symbols")
	}
}

func TestConfigCache_GetEnabledConfigs(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "on.yml", `
kind: quotes
symbols: [AAPL]
settings:
  enabled: true
`)
	writeConfig(t, dir, "off.yml", `
kind: quotes
symbols: [MSFT]
settings:
  enabled: false
`)

	cache := NewConfigCache(dir)
	if err := cache.Run(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if count := cache.GetConfigCount(); count != 2 {
		t.Errorf("Expected 2 configs, got %d", count)
	}

	enabled := cache.GetEnabledConfigs()
	if len(enabled) != 1 {
		t.Fatalf("Expected 1 enabled config, got %d", len(enabled))
	}
	if _, ok := enabled["on"]; !ok {
		t.Error("Expected 'on' to be the enabled config")
	}
}

func TestConfigCache_MissingDirectoryIsNotAnError(t *testing.T) {
	cache := NewConfigCache(filepath.Join(t.TempDir(), "does-not-exist"))
	if err := cache.Run(); err != nil {
		t.Errorf("Expected no error for missing directory, got: %v", err)
	}
}
