package sources

const (
	KindNews   = "news"
	KindQuotes = "quotes"
)

// Config is one source definition loaded from a YAML file in the
// sources directory. News sources name a site and an index URL;
// quote sources carry the watchlist of symbols.
type Config struct {
	Name     string         // Derived from filename (without .yml extension)
	Kind     string         `yaml:"kind"`
	Site     string         `yaml:"site"` // news extractor key: yahoo, cnbc, marketwatch
	URL      string         `yaml:"url"`
	Symbols  []string       `yaml:"symbols"`
	Settings ConfigSettings `yaml:"settings"`
}

type ConfigSettings struct {
	Enabled         bool `yaml:"enabled"`
	RefreshInterval int  `yaml:"refresh_interval"` // seconds
	Timeout         int  `yaml:"timeout"`          // seconds
	MaxArticles     int  `yaml:"max_articles"`     // per news cycle
	ExtractContent  bool `yaml:"extract_content"`  // enable full-body extraction
}
