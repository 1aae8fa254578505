package scrape

// QuoteExtractor turns one fetched JSON payload for a symbol into
// zero-or-one QuoteRecord. Returning ok=false is not an error; it
// means the document held no usable data (minimum-viable predicate:
// a non-zero price). Extractors perform no I/O.
type QuoteExtractor interface {
	Name() string
	URL(symbol string) string
	Extract(payload []byte, symbol string) (*QuoteRecord, bool)
}

// quoteSourceLabel is the provenance label stored with every quote,
// regardless of which endpoint produced it.
const quoteSourceLabel = "Yahoo Finance"
