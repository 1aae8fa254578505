package scrape

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"investorinfo/app/normalize"
)

// QuoteSummaryExtractor handles the quoteSummary API shape, the
// richest of the three quote endpoints. Every numeric arrives as a
// {raw, fmt} pair and either half may be missing, so all field access
// goes through fmtValue's best-effort accessors.
type QuoteSummaryExtractor struct{}

func (QuoteSummaryExtractor) Name() string { return "quote-summary" }

func (QuoteSummaryExtractor) URL(symbol string) string {
	return fmt.Sprintf("https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s?modules=price,defaultKeyStatistics,summaryDetail",
		url.PathEscape(symbol))
}

func (e QuoteSummaryExtractor) Extract(payload []byte, symbol string) (*QuoteRecord, bool) {
	var resp quoteSummaryResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		slog.Warn("Malformed quote-summary payload", "symbol", symbol, "error", err)
		return nil, false
	}

	if len(resp.QuoteSummary.Result) == 0 {
		slog.Warn("Empty quote-summary result", "symbol", symbol)
		return nil, false
	}
	result := resp.QuoteSummary.Result[0]

	if result.Price == nil {
		slog.Warn("Quote-summary result has no price section", "symbol", symbol)
		return nil, false
	}

	price := result.Price.RegularMarketPrice.floatValue()
	if price == 0 {
		return nil, false
	}

	marketCap, capSection := resolveMarketCap(result)
	if capSection != "" {
		slog.Debug("Market cap resolved", "symbol", symbol, "section", capSection)
	}

	record := &QuoteRecord{
		Symbol:        symbol,
		Price:         price,
		ChangeAmount:  result.Price.RegularMarketChange.floatValue(),
		ChangePercent: result.Price.RegularMarketChangePercent.percentValue(),
		Volume:        result.Price.RegularMarketVolume.intValue(),
		MarketCap:     marketCap,
		Source:        quoteSourceLabel,
		ScrapedAt:     time.Now().UTC(),
	}

	return record, true
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []*quoteSummaryResult `json:"result"`
		Error  *apiError             `json:"error"`
	} `json:"quoteSummary"`
}

type quoteSummaryResult struct {
	Price                *priceSection         `json:"price"`
	DefaultKeyStatistics *keyStatisticsSection `json:"defaultKeyStatistics"`
	SummaryDetail        *summaryDetailSection `json:"summaryDetail"`
}

type priceSection struct {
	RegularMarketPrice         *fmtValue `json:"regularMarketPrice"`
	RegularMarketChange        *fmtValue `json:"regularMarketChange"`
	RegularMarketChangePercent *fmtValue `json:"regularMarketChangePercent"`
	RegularMarketVolume        *fmtValue `json:"regularMarketVolume"`
	MarketCap                  *fmtValue `json:"marketCap"`
}

type keyStatisticsSection struct {
	MarketCap *fmtValue `json:"marketCap"`
}

type summaryDetailSection struct {
	MarketCap *fmtValue `json:"marketCap"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// fmtValue is the {raw, fmt} pair quoteSummary wraps every numeric in.
// raw is preferred; when only the display string is present the value
// is recovered through the normalizer.
type fmtValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

func (v *fmtValue) floatValue() float64 {
	if v == nil {
		return 0
	}
	if v.Raw != nil {
		return *v.Raw
	}
	return normalize.ParseFloat(v.Fmt)
}

func (v *fmtValue) intValue() int64 {
	if v == nil {
		return 0
	}
	if v.Raw != nil {
		return int64(*v.Raw)
	}
	return normalize.ParseInt(v.Fmt)
}

// percentValue converts the price section's change percent to
// percentage units. The raw value is a fraction (0.0139 for +1.39%);
// the display string already carries percent units.
func (v *fmtValue) percentValue() float64 {
	if v == nil {
		return 0
	}
	if v.Raw != nil {
		return *v.Raw * 100
	}
	return normalize.ParseFloat(v.Fmt)
}

// magnitudeValue expands a market-cap style value to absolute units.
// Display strings come as scaled magnitudes ("2.95T") or plain
// comma-grouped integers; both are handled.
func (v *fmtValue) magnitudeValue() int64 {
	if v == nil {
		return 0
	}
	if v.Raw != nil {
		return int64(*v.Raw)
	}
	if scaled := normalize.ParseScaledMagnitude(v.Fmt); scaled != 0 {
		return scaled
	}
	return normalize.ParseInt(v.Fmt)
}
