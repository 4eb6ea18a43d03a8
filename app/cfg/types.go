package cfg

import "time"

type Cfg struct {
	// Server configuration
	Port string

	// Feed configuration
	SourcesFile    string
	FetchTimeout   int // seconds
	MaxConcurrency int
	MaxFeedBytes   int64
	UserAgent      string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}

func (c *Cfg) GetFetchTimeout() time.Duration {
	if c.FetchTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.FetchTimeout) * time.Second
}
