// Package config loads the optional INI config file and supplies defaults
// for everything it leaves out.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/ini.v1"
)

const (
	DefaultAPIBaseURL = "https://api.github.com/"
	DefaultPerPage    = 30

	DefaultRateCapacity = 10
	DefaultRateRefill   = 10
	DefaultRateInterval = time.Second

	DefaultMaxRetries = 3
	DefaultRetryDelay = 30 * time.Second
)

// Config holds the tunables read from <appdata>/config.ini. The file is
// optional; a missing file yields the defaults.
type Config struct {
	// [github]
	Token      string
	APIBaseURL string
	PerPage    int

	// [ratelimit]
	RateCapacity int
	RateRefill   int
	RateInterval time.Duration
	MaxRetries   int
	RetryDelay   time.Duration
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBaseURL:   DefaultAPIBaseURL,
		PerPage:      DefaultPerPage,
		RateCapacity: DefaultRateCapacity,
		RateRefill:   DefaultRateRefill,
		RateInterval: DefaultRateInterval,
		MaxRetries:   DefaultMaxRetries,
		RetryDelay:   DefaultRetryDelay,
	}
}

// Load reads the config file at path, falling back to defaults for missing
// keys. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	gh := file.Section("github")
	cfg.Token = gh.Key("token").MustString(cfg.Token)
	cfg.APIBaseURL = gh.Key("api_base_url").MustString(cfg.APIBaseURL)
	cfg.PerPage = gh.Key("per_page").MustInt(cfg.PerPage)

	rl := file.Section("ratelimit")
	cfg.RateCapacity = rl.Key("capacity").MustInt(cfg.RateCapacity)
	cfg.RateRefill = rl.Key("refill").MustInt(cfg.RateRefill)
	cfg.RateInterval = time.Duration(rl.Key("interval_ms").MustInt(int(cfg.RateInterval/time.Millisecond))) * time.Millisecond
	cfg.MaxRetries = rl.Key("max_retries").MustInt(cfg.MaxRetries)
	cfg.RetryDelay = time.Duration(rl.Key("retry_delay_ms").MustInt(int(cfg.RetryDelay/time.Millisecond))) * time.Millisecond

	return cfg, nil
}
