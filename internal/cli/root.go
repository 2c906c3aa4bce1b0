package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/drupaltools/deprecaudit/pkg/audit"
	"github.com/drupaltools/deprecaudit/pkg/integrations/github"
	"github.com/drupaltools/deprecaudit/pkg/integrations/page"
)

// auditFlags holds the root command's flag values. Flags that were set
// explicitly override the configuration file.
type auditFlags struct {
	config      string
	dir         string
	pattern     string
	dryRun      bool
	concurrency int
	timeout     time.Duration
	metricsFile string
	noCache     bool
}

// auditCommand creates the root command, which runs the audit.
func (c *CLI) auditCommand() *cobra.Command {
	var flags auditFlags

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Flag abandoned projects in a directory of project records",
		Long: `deprecaudit checks every project record (one YAML file per project) for
signs that the project is abandoned and tags those records as deprecated.

A record is deprecated when a linked page announces the project is
deprecated or unmaintained, when none of its linked pages can be reached,
or when its GitHub repository has had no commits for two years.
Records whose projects recovered lose the deprecated tag again.`,
		Example: `  # Audit _data/projects and rewrite the affected records
  deprecaudit

  # Preview the changes for another directory
  deprecaudit --dir data/projects --dry-run`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runAudit(cmd, cfg, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.config, "config", "", "config file (default ./"+configFile+" if present)")
	f.StringVarP(&flags.dir, "dir", "d", audit.DefaultDir, "directory containing the project records")
	f.StringVar(&flags.pattern, "pattern", audit.DefaultPattern, "record file name pattern")
	f.BoolVarP(&flags.dryRun, "dry-run", "n", false, "report changes without writing records")
	f.IntVarP(&flags.concurrency, "concurrency", "j", audit.DefaultConcurrency, "maximum concurrent requests")
	f.DurationVar(&flags.timeout, "timeout", 0, "per-request timeout (default 12s)")
	f.StringVar(&flags.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")
	f.BoolVar(&flags.noCache, "no-cache", false, "disable the evidence cache")

	return cmd
}

// resolve loads the configuration file and applies explicitly set flags.
func (f auditFlags) resolve(cmd *cobra.Command) (Config, error) {
	cfg, err := loadConfig(f.config)
	if err != nil {
		return cfg, err
	}
	changed := cmd.Flags().Changed
	if changed("dir") {
		cfg.ProjectsDir = f.dir
	}
	if changed("pattern") {
		cfg.Pattern = f.pattern
	}
	if changed("concurrency") {
		cfg.Concurrency = f.concurrency
	}
	if changed("timeout") {
		cfg.Timeout.Duration = f.timeout
	}
	return cfg, cfg.validate()
}

// runAudit runs one audit with cfg and prints the summary.
func (c *CLI) runAudit(cmd *cobra.Command, cfg Config, flags auditFlags) error {
	ctx := cmd.Context()
	logger := runLogger(c.Logger)
	ctx = withLogger(ctx, logger)

	var m *metrics
	if flags.metricsFile != "" {
		m = newMetrics()
		m.register()
		defer m.unregister()
	}

	ca, err := openCache(cfg, flags.noCache)
	if err != nil {
		return err
	}
	defer ca.Close()

	client := newClient(cfg, ca)
	collector := &audit.Collector{
		Pages:       page.NewFetcher(client, logger),
		Activity:    github.NewClient(client, logger),
		Concurrency: cfg.Concurrency,
		Logger:      logger,
	}
	auditor := audit.New(collector, audit.Options{
		Dir:        cfg.ProjectsDir,
		Pattern:    cfg.Pattern,
		DryRun:     flags.dryRun,
		StaleAfter: cfg.StaleAfter.Duration,
		Logger:     logger,
	})

	prog := newProgress(logger)
	rep, err := auditor.Run(ctx)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Audited %d records (%d URLs, %d repositories)", rep.Scanned, rep.URLs, rep.Repos))

	if m != nil {
		m.observeRun(rep)
		if err := m.write(flags.metricsFile); err != nil {
			return err
		}
		logger.Debug("metrics written", "file", flags.metricsFile)
	}

	printSummary(cmd.OutOrStdout(), rep)
	return nil
}

// printSummary prints the final count line.
func printSummary(w io.Writer, rep *audit.Report) {
	if rep.DryRun {
		fmt.Fprintf(w, "Would update %d project files.\n", rep.Modified)
		return
	}
	fmt.Fprintf(w, "Updated %d project files.\n", rep.Modified)
}
