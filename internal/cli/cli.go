// Package cli implements the deprecaudit command-line interface.
//
// The root command audits a directory of project records and tags the
// abandoned ones as deprecated. Subcommands inspect a single URL and manage
// the optional evidence cache. The CLI is built on cobra and logs through
// charmbracelet/log.
//
// # Commands
//
//   - deprecaudit: audit the project records (default _data/projects)
//   - check: show the evidence gathered for one URL
//   - cache: clear the evidence cache or print its location
//   - completion: generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes the evidence for every fetched URL and repository.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/drupaltools/deprecaudit/pkg/buildinfo"
	"github.com/drupaltools/deprecaudit/pkg/cache"
	"github.com/drupaltools/deprecaudit/pkg/errors"
	"github.com/drupaltools/deprecaudit/pkg/integrations"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "deprecaudit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := c.auditCommand()
	root.Version = buildinfo.Version
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Client Factory
// =============================================================================

// newClient creates the shared HTTP client for the evidence fetchers.
func newClient(cfg Config, ca cache.Cache) *integrations.Client {
	return integrations.NewClient(integrations.Options{
		UserAgent:         cfg.UserAgent,
		Timeout:           cfg.Timeout.Duration,
		RequestsPerSecond: cfg.RequestsPerSecond,
		MaxBodyBytes:      cfg.MaxBodyBytes,
		Cache:             ca,
		CacheTTL:          cfg.Cache.TTL.Duration,
	})
}

// openCache opens the evidence cache for an audit. A zero TTL or noCache
// selects the null cache.
func openCache(cfg Config, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Cache.TTL.Duration <= 0 {
		return cache.NewNullCache(), nil
	}
	return openBackend(cfg.Cache)
}

// openBackend opens the configured backend regardless of TTL.
func openBackend(cc CacheConfig) (cache.Cache, error) {
	dir := cc.Dir
	if cc.Backend == cache.BackendFile && dir == "" {
		d, err := cacheDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCacheBackend, err, "locate cache directory")
		}
		dir = d
	}
	ca, err := cache.Open(cache.Config{Backend: cc.Backend, Dir: dir, RedisURL: cc.RedisURL})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCacheBackend, err, "open %s cache", cc.Backend)
	}
	return ca, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/deprecaudit/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
