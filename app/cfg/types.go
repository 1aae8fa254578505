package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Application configuration
	SourcesDir        string
	Port              string
	WorkerCount       int
	SchedulerInterval int

	// Fetch politeness
	DomainConcurrency int
	DomainDelay       int // milliseconds between requests to the same domain

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
