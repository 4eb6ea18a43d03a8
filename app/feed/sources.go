package feed

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	nytHomePageURL = "https://rss.nytimes.com/services/xml/rss/nyt/HomePage.xml"
	bbcNewsURL     = "https://feeds.bbci.co.uk/news/rss.xml"
)

// DefaultSources returns a fresh copy of the built-in feed list.
func DefaultSources() []string {
	return []string{nytHomePageURL, bbcNewsURL}
}

type Resolver struct {
	defaults []string
}

// NewResolver uses defaults when a request names no sources. A nil or
// empty defaults list falls back to DefaultSources.
func NewResolver(defaults []string) *Resolver {
	if len(defaults) == 0 {
		defaults = DefaultSources()
	}
	return &Resolver{defaults: append([]string(nil), defaults...)}
}

func (r *Resolver) Defaults() []string {
	return append([]string(nil), r.defaults...)
}

// Resolve turns the raw request values into a Query. Duplicate sources and
// duplicate keywords are kept.
func (r *Resolver) Resolve(feeds, keywords []string) Query {
	sources := make([]string, 0, len(feeds))
	for _, source := range feeds {
		if source == "" {
			continue
		}
		sources = append(sources, source)
	}
	if len(sources) == 0 {
		sources = r.Defaults()
	}

	return Query{
		Sources:  sources,
		Keywords: NormalizeKeywords(keywords),
	}
}

func NormalizeKeywords(keywords []string) []string {
	normalized := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}
		normalized = append(normalized, Lower(keyword))
	}
	return normalized
}

// Lower applies full Unicode lower-case mapping. Keywords and scored text
// must go through the same mapping for substring matches to hold.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

type SourcesFile struct {
	Sources []SourceEntry `yaml:"sources"`
}

type SourceEntry struct {
	URL     string `yaml:"url"`
	Name    string `yaml:"name"`
	Enabled *bool  `yaml:"enabled"`
}

func (e SourceEntry) IsEnabled() bool {
	return e.Enabled == nil || *e.Enabled
}

// LoadSourcesFile reads the YAML list of default sources and returns the
// enabled URLs in file order.
func LoadSourcesFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var file SourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	sources := make([]string, 0, len(file.Sources))
	for i, entry := range file.Sources {
		url := strings.TrimSpace(entry.URL)
		if url == "" {
			return nil, fmt.Errorf("source at index %d: url is required", i)
		}
		if !entry.IsEnabled() {
			continue
		}
		sources = append(sources, url)
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("invalid sources file %s: no enabled sources", path)
	}

	return sources, nil
}
