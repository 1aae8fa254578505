package scrape

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

// QuoteChartExtractor handles the chart API shape, the last-resort
// endpoint. Its meta block only carries the current price, the
// previous close and the volume, so the change fields are derived
// here instead of read from the document.
type QuoteChartExtractor struct{}

func (QuoteChartExtractor) Name() string { return "chart" }

func (QuoteChartExtractor) URL(symbol string) string {
	return fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?range=1d&interval=1d",
		url.PathEscape(symbol))
}

func (e QuoteChartExtractor) Extract(payload []byte, symbol string) (*QuoteRecord, bool) {
	var resp chartResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		slog.Warn("Malformed chart payload", "symbol", symbol, "error", err)
		return nil, false
	}

	if len(resp.Chart.Result) == 0 {
		slog.Warn("Empty chart result", "symbol", symbol)
		return nil, false
	}
	meta := resp.Chart.Result[0].Meta

	if meta.RegularMarketPrice == 0 {
		return nil, false
	}

	// The endpoint reports no explicit delta. Derive it from the
	// previous close; a close of zero would divide by zero, so both
	// change fields stay at zero in that case.
	var changeAmount, changePercent float64
	if meta.ChartPreviousClose > 0 {
		changeAmount = meta.RegularMarketPrice - meta.ChartPreviousClose
		changePercent = changeAmount / meta.ChartPreviousClose * 100
	}

	record := &QuoteRecord{
		Symbol:        symbol,
		Price:         meta.RegularMarketPrice,
		ChangeAmount:  changeAmount,
		ChangePercent: changePercent,
		Volume:        meta.RegularMarketVolume,
		Source:        quoteSourceLabel,
		ScrapedAt:     time.Now().UTC(),
	}

	return record, true
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta chartMeta `json:"meta"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}

type chartMeta struct {
	Symbol              string  `json:"symbol"`
	RegularMarketPrice  float64 `json:"regularMarketPrice"`
	ChartPreviousClose  float64 `json:"chartPreviousClose"`
	RegularMarketVolume int64   `json:"regularMarketVolume"`
}
