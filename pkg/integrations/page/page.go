// Package page fetches project pages and looks for deprecation notices.
//
// [Fetcher.Fetch] never fails: transport errors and error statuses become an
// [Evidence] value with Reachable false.
package page

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/drupaltools/deprecaudit/pkg/cache"
	"github.com/drupaltools/deprecaudit/pkg/integrations"
)

// Evidence is the outcome of fetching one URL.
type Evidence struct {
	Reachable  bool `json:"reachable"`   // final status in 200-399
	KeywordHit bool `json:"keyword_hit"` // page text carries a deprecation notice
}

// Inspection is a detailed, uncached view of one fetch, for diagnostics.
type Inspection struct {
	Evidence
	URL        string
	FinalURL   string // after redirects
	StatusCode int    // 0 when the request failed
	Match      string // the deprecation phrase found, if any
	Err        error  // transport failure, if any
}

// Fetcher retrieves pages through a shared integrations client.
type Fetcher struct {
	client *integrations.Client
	logger *log.Logger
}

// NewFetcher creates a Fetcher. A nil logger discards debug output.
func NewFetcher(c *integrations.Client, logger *log.Logger) *Fetcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Fetcher{client: c, logger: logger}
}

// Fetch returns the evidence for url, consulting the evidence cache first.
func (f *Fetcher) Fetch(ctx context.Context, url string) Evidence {
	var ev Evidence
	f.client.Cached(ctx, "page", cache.PageKey(url), &ev, func() bool {
		in := f.Inspect(ctx, url)
		ev = in.Evidence
		return in.Err == nil
	})
	return ev
}

// Inspect performs the GET and keyword scan without the cache. Bodies of
// unreachable pages are not scanned.
func (f *Fetcher) Inspect(ctx context.Context, url string) Inspection {
	in := Inspection{URL: url}

	resp, err := f.client.Get(ctx, url)
	if err != nil {
		f.logger.Debug("page unreachable", "url", url, "err", err)
		in.Err = err
		return in
	}
	in.FinalURL = resp.URL
	in.StatusCode = resp.StatusCode
	in.Reachable = integrations.IsSuccess(resp.StatusCode)
	if !in.Reachable {
		f.logger.Debug("page returned error status", "url", url, "status", resp.StatusCode)
		return in
	}

	if m, ok := MatchDeprecationNotice(DocumentText(resp.Body, resp.ContentType)); ok {
		f.logger.Debug("deprecation notice found", "url", url, "phrase", m)
		in.KeywordHit = true
		in.Match = m
	}
	return in
}
