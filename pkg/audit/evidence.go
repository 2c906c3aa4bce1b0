package audit

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/drupaltools/deprecaudit/pkg/integrations/github"
	"github.com/drupaltools/deprecaudit/pkg/integrations/page"
	"github.com/drupaltools/deprecaudit/pkg/observability"
	"github.com/drupaltools/deprecaudit/pkg/record"
)

// DefaultConcurrency bounds the number of requests in flight during collection.
const DefaultConcurrency = 12

// PageFetcher reports reachability and deprecation notices for a URL.
// Implementations absorb all failures into negative evidence.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) page.Evidence
}

// ActivityFetcher reports the latest commit activity of a repository.
type ActivityFetcher interface {
	LastActivity(ctx context.Context, repo github.RepoID) (time.Time, bool)
}

// Evidence holds the lookup tables produced by one collection pass.
type Evidence struct {
	Pages map[string]page.Evidence
	// Activity is nil for repositories whose activity could not be
	// determined.
	Activity map[github.RepoID]*time.Time
}

// Collector gathers evidence for a set of records.
type Collector struct {
	Pages       PageFetcher
	Activity    ActivityFetcher
	Concurrency int // DefaultConcurrency when <= 0
	Logger      *log.Logger
}

type jobKind int

const (
	pageJob jobKind = iota
	repoJob
)

type job struct {
	kind jobKind
	url  string
	repo github.RepoID
}

type result struct {
	job
	page     page.Evidence
	activity *time.Time
}

// Targets returns the unique URLs and repository IDs referenced by records,
// in first-seen order.
func Targets(records []*record.Record) (urls []string, repos []github.RepoID) {
	seenURL := make(map[string]bool)
	seenRepo := make(map[github.RepoID]bool)
	for _, r := range records {
		for _, u := range r.URLs() {
			if seenURL[u] {
				continue
			}
			seenURL[u] = true
			urls = append(urls, u)

			if id, ok := github.ParseRepoURL(u); ok && !seenRepo[id] {
				seenRepo[id] = true
				repos = append(repos, id)
			}
		}
	}
	return urls, repos
}

// Collect fetches evidence for every unique URL and repository referenced by
// records. It returns once every fetch has finished. Fetches still queued
// when ctx is cancelled are skipped and recorded as negative evidence.
func (c *Collector) Collect(ctx context.Context, records []*record.Record) *Evidence {
	urls, repos := Targets(records)
	return c.collect(ctx, urls, repos)
}

func (c *Collector) collect(ctx context.Context, urls []string, repos []github.RepoID) *Evidence {
	logger := c.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	workers := c.Concurrency
	if workers <= 0 {
		workers = DefaultConcurrency
	}

	hooks := observability.Audit()
	hooks.OnCollectStart(ctx, len(urls), len(repos))
	start := time.Now()

	total := len(urls) + len(repos)
	jobs := make(chan job, total)
	for _, u := range urls {
		jobs <- job{kind: pageJob, url: u}
	}
	for _, r := range repos {
		jobs <- job{kind: repoJob, repo: r}
	}
	close(jobs)

	results := make(chan result, workers*2)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- c.run(ctx, j)
			}
		}()
	}

	ev := &Evidence{
		Pages:    make(map[string]page.Evidence, len(urls)),
		Activity: make(map[github.RepoID]*time.Time, len(repos)),
	}
	for range total {
		r := <-results
		switch r.kind {
		case pageJob:
			ev.Pages[r.url] = r.page
			logger.Debug("page", "url", r.url, "reachable", r.page.Reachable, "keyword", r.page.KeywordHit)
		case repoJob:
			ev.Activity[r.repo] = r.activity
			if r.activity != nil {
				logger.Debug("activity", "repo", r.repo, "last", r.activity.Format(time.RFC3339))
			} else {
				logger.Debug("activity", "repo", r.repo, "last", "unknown")
			}
		}
	}
	wg.Wait()

	d := time.Since(start)
	hooks.OnCollectComplete(ctx, d)
	logger.Debug("evidence collected", "urls", len(urls), "repos", len(repos), "workers", workers, "elapsed", d.Round(time.Millisecond))
	return ev
}

func (c *Collector) run(ctx context.Context, j job) result {
	r := result{job: j}
	if ctx.Err() != nil {
		return r
	}
	switch j.kind {
	case pageJob:
		r.page = c.Pages.Fetch(ctx, j.url)
	case repoJob:
		if at, ok := c.Activity.LastActivity(ctx, j.repo); ok {
			r.activity = &at
		}
	}
	return r
}
