package api

import (
	"investorinfo/app/database"
	"investorinfo/app/sources"
)

type Handler struct {
	sourceRepo  database.SourceRepository
	newsRepo    database.NewsRepository
	quoteRepo   database.QuoteRepository
	configCache *sources.ConfigCache
}
