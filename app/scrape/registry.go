package scrape

// NewsExtractorFor maps a source config's site key to its extractor.
func NewsExtractorFor(site string) (NewsExtractor, bool) {
	switch site {
	case "yahoo":
		return YahooNewsExtractor{}, true
	case "cnbc":
		return CNBCNewsExtractor{}, true
	case "marketwatch":
		return NewMarketWatchNewsExtractor(), true
	default:
		return nil, false
	}
}
