package audit

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/drupaltools/deprecaudit/pkg/errors"
	"github.com/drupaltools/deprecaudit/pkg/observability"
	"github.com/drupaltools/deprecaudit/pkg/record"
)

// Defaults for [Options].
const (
	DefaultDir     = "_data/projects"
	DefaultPattern = "*.yml"
)

// Options configures an [Auditor] run.
type Options struct {
	Dir        string // record directory, DefaultDir when empty
	Pattern    string // file glob, DefaultPattern when empty
	DryRun     bool   // decide and report without writing
	Now        func() time.Time
	StaleAfter time.Duration // DefaultStaleAfter when <= 0
	Logger     *log.Logger
}

// WithDefaults returns a copy of o with zero fields filled in.
func (o Options) WithDefaults() Options {
	if o.Dir == "" {
		o.Dir = DefaultDir
	}
	if o.Pattern == "" {
		o.Pattern = DefaultPattern
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.StaleAfter <= 0 {
		o.StaleAfter = DefaultStaleAfter
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Report summarises one run. Paths are listed in processing order.
type Report struct {
	Scanned    int
	Modified   int      // records written, or that would be in a dry run
	Deprecated []string // records that gained the deprecated category
	Restored   []string // records that lost it
	URLs       int      // unique URLs fetched
	Repos      int      // unique repositories fetched
	DryRun     bool
}

// Auditor runs the two audit phases over a directory of records.
type Auditor struct {
	collector *Collector
	opts      Options
}

// New creates an Auditor that collects evidence with c.
func New(c *Collector, opts Options) *Auditor {
	opts = opts.WithDefaults()
	if c.Logger == nil {
		c.Logger = opts.Logger
	}
	return &Auditor{collector: c, opts: opts}
}

// Run loads the records, collects evidence for all of them, then decides and
// updates each record. Only records that changed are written. If ctx is
// cancelled during collection, Run returns its error before writing anything.
func (a *Auditor) Run(ctx context.Context) (*Report, error) {
	logger := a.opts.Logger
	start := a.opts.Now()
	threshold := Threshold(start, a.opts.StaleAfter)

	records, err := record.LoadDir(a.opts.Dir, a.opts.Pattern)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded records", "dir", a.opts.Dir, "count", len(records))

	urls, repos := Targets(records)
	ev := a.collector.collect(ctx, urls, repos)
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "evidence collection interrupted")
	}

	rep := &Report{
		Scanned: len(records),
		URLs:    len(urls),
		Repos:   len(repos),
		DryRun:  a.opts.DryRun,
	}
	hooks := observability.Audit()
	for _, rec := range records {
		v := Decide(rec.URLs(), ev, threshold)
		hooks.OnVerdict(ctx, rec.Path, v.KeywordHit, v.Reachable, v.Stale)

		wasDeprecated := rec.HasCategory(CategoryDeprecated)
		if !Apply(rec, v) {
			continue
		}
		if !a.opts.DryRun {
			if err := rec.Save(); err != nil {
				return rep, err
			}
		}
		rep.Modified++

		var action string
		switch {
		case v.ShouldDeprecate() && !wasDeprecated:
			action = ActionDeprecated
			rep.Deprecated = append(rep.Deprecated, rec.Path)
			logger.Info("deprecated", "record", rec.Name(), "reason", v.Reason())
		case v.ShouldDeprecate():
			action = ActionUnrecommended
			logger.Info("dropped recommended", "record", rec.Name(), "reason", v.Reason())
		default:
			action = ActionRestored
			rep.Restored = append(rep.Restored, rec.Path)
			logger.Info("restored", "record", rec.Name())
		}
		hooks.OnRecordChanged(ctx, rec.Path, action)
	}
	return rep, nil
}
