package scrape

import (
	"time"
)

// PublishDateUnknown marks articles whose page carries no usable
// publish date. Dates are stored as source-reported strings and are
// never normalized to a single format, so the sentinel is explicit
// rather than an empty string.
const PublishDateUnknown = "unknown"

// Record is the closed set of shapes the reconciliation store accepts.
// Dispatch happens on the concrete type, not on runtime inspection.
type Record interface {
	// NaturalKey identifies the record for upsert matching.
	NaturalKey() string
	// Origin is the source label, used in logs alongside the key.
	Origin() string

	isRecord()
}

// NewsRecord is one extracted news article. Link is the natural key:
// re-extracting the same link updates the stored row instead of
// duplicating it.
type NewsRecord struct {
	Title       string
	Link        string
	Summary     string
	Content     string
	Source      string
	PublishDate string
	Sentiment   float64 // externally computed, stored opaquely
	ScrapedAt   time.Time
}

func (r NewsRecord) NaturalKey() string { return r.Link }
func (r NewsRecord) Origin() string     { return r.Source }
func (NewsRecord) isRecord()            {}

// Viable reports whether the record satisfies the minimum-viable
// predicate for news: a non-empty title.
func (r NewsRecord) Viable() bool { return r.Title != "" }

// QuoteRecord is one extracted stock quote. The natural key is the
// symbol together with the calendar date of ScrapedAt; intraday
// scrapes for the same symbol collapse into a single daily row.
type QuoteRecord struct {
	Symbol        string
	Price         float64
	ChangeAmount  float64
	ChangePercent float64 // percentage units, not a fraction
	Volume        int64
	MarketCap     int64 // absolute currency units after scale expansion
	Source        string
	ScrapedAt     time.Time
}

func (r QuoteRecord) NaturalKey() string {
	return r.Symbol + "@" + r.ScrapedAt.Format("2006-01-02")
}
func (r QuoteRecord) Origin() string { return r.Source }
func (QuoteRecord) isRecord()        {}

// Viable reports whether the record satisfies the minimum-viable
// predicate for quotes: a non-zero price.
func (r QuoteRecord) Viable() bool { return r.Price != 0 }

// DiscoveredLink is one article link found on a site's index page or
// in its feed. Title and Summary are prefills; the article extractor
// overrides them when the page itself has better data.
type DiscoveredLink struct {
	URL         string
	Title       string
	Summary     string
	PublishDate string // source-reported, empty when discovery has none
}
