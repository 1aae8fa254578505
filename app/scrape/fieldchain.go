package scrape

// marketCapSource is one place inside a quote-summary document where
// the market cap may live. The chain below is evaluated in priority
// order and the first section with a usable value wins. This is
// fallback across fields within one document, unlike the cross-source
// fallback the coordinator does across endpoints.
type marketCapSource struct {
	section string
	get     func(r *quoteSummaryResult) *fmtValue
}

var marketCapChain = []marketCapSource{
	{"price", func(r *quoteSummaryResult) *fmtValue {
		if r.Price == nil {
			return nil
		}
		return r.Price.MarketCap
	}},
	{"defaultKeyStatistics", func(r *quoteSummaryResult) *fmtValue {
		if r.DefaultKeyStatistics == nil {
			return nil
		}
		return r.DefaultKeyStatistics.MarketCap
	}},
	{"summaryDetail", func(r *quoteSummaryResult) *fmtValue {
		if r.SummaryDetail == nil {
			return nil
		}
		return r.SummaryDetail.MarketCap
	}},
}

// resolveMarketCap walks the chain and returns the expanded market cap
// plus the name of the section that supplied it, or (0, "") when every
// section is absent or empty.
func resolveMarketCap(r *quoteSummaryResult) (int64, string) {
	for _, source := range marketCapChain {
		value := source.get(r)
		if value == nil {
			continue
		}
		if cap := value.magnitudeValue(); cap > 0 {
			return cap, source.section
		}
	}
	return 0, ""
}
