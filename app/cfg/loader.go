package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

// Only the listen port and TZ are read from the environment.
type rawCfg struct {
	// Server configuration
	Port string `long:"port" env:"PORT" default:"3000" description:"HTTP server port"`

	// Feed configuration
	SourcesFile    string `long:"sources-file" description:"YAML file overriding the built-in default feed sources"`
	FetchTimeout   int    `long:"fetch-timeout" default:"10" description:"Per-feed fetch timeout in seconds"`
	MaxConcurrency int    `long:"max-concurrency" default:"8" description:"Maximum simultaneous feed fetches per request"`
	MaxFeedBytes   int64  `long:"max-feed-bytes" default:"10485760" description:"Maximum accepted feed body size in bytes"`
	UserAgent      string `long:"user-agent" default:"RSS Top News/1.0" description:"User agent string for feed requests"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" description:"Timezone used to decide what \"today\" is (e.g., UTC, America/New_York); system local time when empty"`
	Debug    bool   `long:"debug" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	return LoadArgs(nil)
}

// LoadArgs parses the given arguments; nil means os.Args[1:].
// A nil config with a nil error means help was requested.
func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:           raw.Port,
		SourcesFile:    raw.SourcesFile,
		FetchTimeout:   raw.FetchTimeout,
		MaxConcurrency: raw.MaxConcurrency,
		MaxFeedBytes:   raw.MaxFeedBytes,
		UserAgent:      raw.UserAgent,
		Timezone:       raw.Timezone,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyTimezone sets time.Local, which decides the calendar day used for
// "today" filtering. An empty timezone keeps the system setting.
func ApplyTimezone(timezone string) error {
	if timezone == "" {
		return nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	time.Local = loc
	return nil
}

func validate(cfg *Cfg) error {
	if cfg.Port == "" {
		return fmt.Errorf("port is required")
	}

	positiveFields := map[string]int64{
		"fetch timeout":   int64(cfg.FetchTimeout),
		"max concurrency": int64(cfg.MaxConcurrency),
		"max feed bytes":  cfg.MaxFeedBytes,
	}

	for fieldName, fieldValue := range positiveFields {
		if fieldValue <= 0 {
			return fmt.Errorf("%s must be positive", fieldName)
		}
	}

	return nil
}
