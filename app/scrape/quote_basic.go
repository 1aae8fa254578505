package scrape

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

// QuoteBasicExtractor handles the flat quote API shape. Fields arrive
// as plain numbers and the change percent is already in percentage
// units, so no unit conversion is needed.
type QuoteBasicExtractor struct{}

func (QuoteBasicExtractor) Name() string { return "basic-quote" }

func (QuoteBasicExtractor) URL(symbol string) string {
	return fmt.Sprintf("https://query1.finance.yahoo.com/v7/finance/quote?symbols=%s",
		url.QueryEscape(symbol))
}

func (e QuoteBasicExtractor) Extract(payload []byte, symbol string) (*QuoteRecord, bool) {
	var resp basicQuoteResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		slog.Warn("Malformed basic-quote payload", "symbol", symbol, "error", err)
		return nil, false
	}

	if len(resp.QuoteResponse.Result) == 0 {
		slog.Warn("Empty basic-quote result", "symbol", symbol)
		return nil, false
	}
	result := resp.QuoteResponse.Result[0]

	if result.RegularMarketPrice == 0 {
		return nil, false
	}

	record := &QuoteRecord{
		Symbol:        symbol,
		Price:         result.RegularMarketPrice,
		ChangeAmount:  result.RegularMarketChange,
		ChangePercent: result.RegularMarketChangePercent,
		Volume:        result.RegularMarketVolume,
		MarketCap:     result.MarketCap,
		Source:        quoteSourceLabel,
		ScrapedAt:     time.Now().UTC(),
	}

	return record, true
}

type basicQuoteResponse struct {
	QuoteResponse struct {
		Result []basicQuoteResult `json:"result"`
		Error  *apiError          `json:"error"`
	} `json:"quoteResponse"`
}

type basicQuoteResult struct {
	Symbol                     string  `json:"symbol"`
	RegularMarketPrice         float64 `json:"regularMarketPrice"`
	RegularMarketChange        float64 `json:"regularMarketChange"`
	RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
	RegularMarketVolume        int64   `json:"regularMarketVolume"`
	MarketCap                  int64   `json:"marketCap"`
}
