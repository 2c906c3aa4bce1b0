package cli

import (
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/drupaltools/deprecaudit/pkg/audit"
	"github.com/drupaltools/deprecaudit/pkg/cache"
	"github.com/drupaltools/deprecaudit/pkg/errors"
	"github.com/drupaltools/deprecaudit/pkg/integrations"
)

// configFile is read from the working directory when --config is not given.
const configFile = "deprecaudit.toml"

// Config is the optional TOML configuration. Zero values are replaced by
// [defaultConfig] before use.
//
//	projects_dir = "_data/projects"
//	timeout = "12s"
//	stale_after = "730d"
//
//	[cache]
//	backend = "file"
//	ttl = "6h"
type Config struct {
	ProjectsDir       string      `toml:"projects_dir"`
	Pattern           string      `toml:"pattern"`
	UserAgent         string      `toml:"user_agent"`
	Timeout           Duration    `toml:"timeout"`
	Concurrency       int         `toml:"concurrency"`
	StaleAfter        Duration    `toml:"stale_after"`
	RequestsPerSecond float64     `toml:"requests_per_second"`
	MaxBodyBytes      int64       `toml:"max_body_bytes"`
	Cache             CacheConfig `toml:"cache"`
}

// CacheConfig configures the evidence cache.
type CacheConfig struct {
	Backend  string   `toml:"backend"`
	TTL      Duration `toml:"ttl"` // 0 disables caching
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
}

// Duration is a time.Duration read from a TOML string such as "12s". A
// whole number of days may be written as "730d".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidConfig, "invalid duration %q", s)
		}
		d.Duration = time.Duration(n) * 24 * time.Hour
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid duration %q", s)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// defaultConfig returns the settings used when nothing is configured.
func defaultConfig() Config {
	return Config{
		ProjectsDir:  audit.DefaultDir,
		Pattern:      audit.DefaultPattern,
		UserAgent:    integrations.DefaultUserAgent,
		Timeout:      Duration{integrations.DefaultTimeout},
		Concurrency:  audit.DefaultConcurrency,
		StaleAfter:   Duration{audit.DefaultStaleAfter},
		MaxBodyBytes: integrations.DefaultMaxBodyBytes,
		Cache:        CacheConfig{Backend: cache.BackendFile},
	}
}

// loadConfig reads the configuration at path over the defaults. An empty
// path reads ./deprecaudit.toml if it exists.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = configFile
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// validate checks the merged configuration.
func (c Config) validate() error {
	if err := errors.ValidatePath(c.ProjectsDir); err != nil {
		return err
	}
	if err := errors.ValidatePattern(c.Pattern); err != nil {
		return err
	}
	if c.Concurrency < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Timeout.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "timeout must be positive")
	}
	if c.StaleAfter.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "stale_after must be positive")
	}
	if c.RequestsPerSecond < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "requests_per_second cannot be negative")
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl cannot be negative")
	}
	switch c.Cache.Backend {
	case cache.BackendNone, cache.BackendFile, cache.BackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.RedisURL == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache backend redis requires redis_url")
	}
	return nil
}
