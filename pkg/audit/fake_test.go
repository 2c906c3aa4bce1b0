package audit

import (
	"context"
	"sync"
	"time"

	"github.com/drupaltools/deprecaudit/pkg/integrations/github"
	"github.com/drupaltools/deprecaudit/pkg/integrations/page"
)

// fakePages serves canned evidence and counts requests per URL.
type fakePages struct {
	mu       sync.Mutex
	evidence map[string]page.Evidence
	calls    map[string]int
	inFlight int
	peak     int
	delay    time.Duration
}

func newFakePages(ev map[string]page.Evidence) *fakePages {
	return &fakePages{evidence: ev, calls: make(map[string]int)}
}

func (f *fakePages) Fetch(_ context.Context, url string) page.Evidence {
	f.mu.Lock()
	f.calls[url]++
	f.inFlight++
	f.peak = max(f.peak, f.inFlight)
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight--
	return f.evidence[url]
}

func (f *fakePages) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// fakeActivity serves canned activity timestamps and counts requests per repo.
type fakeActivity struct {
	mu    sync.Mutex
	at    map[github.RepoID]time.Time
	calls map[github.RepoID]int
}

func newFakeActivity(at map[github.RepoID]time.Time) *fakeActivity {
	return &fakeActivity{at: at, calls: make(map[github.RepoID]int)}
}

func (f *fakeActivity) LastActivity(_ context.Context, repo github.RepoID) (time.Time, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[repo]++
	t, ok := f.at[repo]
	return t, ok
}

func (f *fakeActivity) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}
