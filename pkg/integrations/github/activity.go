package github

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/drupaltools/deprecaudit/pkg/cache"
	"github.com/drupaltools/deprecaudit/pkg/integrations"
)

// Client reads public commit activity feeds. It needs no token: commits.atom
// is served to anonymous clients.
type Client struct {
	*integrations.Client
	baseURL string
	logger  *log.Logger
}

// NewClient creates a feed client on top of a shared integrations client.
// A nil logger discards debug output.
func NewClient(c *integrations.Client, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{
		Client:  c,
		baseURL: "https://" + Host,
		logger:  logger,
	}
}

// FeedURL returns the commit activity feed URL for repo.
func (c *Client) FeedURL(repo RepoID) string {
	return fmt.Sprintf("%s/%s/%s/commits.atom", c.baseURL, repo.Owner(), repo.Name())
}

// activity is the cached form of a LastActivity result.
type activity struct {
	At    time.Time `json:"at"`
	Found bool      `json:"found"`
}

// LastActivity returns the time of the most recent commit on repo's default
// branch. Transport failures, status codes >= 400, malformed feeds and
// unparsable timestamps all report false; they are never returned as errors.
func (c *Client) LastActivity(ctx context.Context, repo RepoID) (time.Time, bool) {
	var a activity
	c.Cached(ctx, "feed", cache.FeedKey(repo.String()), &a, func() bool {
		return c.fetch(ctx, repo, &a)
	})
	return a.At, a.Found
}

// fetch fills a and reports whether the outcome is cacheable, which is
// whenever the server answered.
func (c *Client) fetch(ctx context.Context, repo RepoID, a *activity) bool {
	url := c.FeedURL(repo)
	resp, err := c.Get(ctx, url)
	if err != nil {
		c.logger.Debug("activity feed unavailable", "repo", repo, "err", err)
		return false
	}
	if resp.StatusCode >= 400 {
		c.logger.Debug("activity feed rejected", "repo", repo, "status", resp.StatusCode)
		return true
	}

	ts, ok := ParseFeedTime(resp.Body)
	if !ok {
		c.logger.Debug("activity feed has no usable timestamp", "repo", repo)
		return true
	}
	*a = activity{At: ts, Found: true}
	return true
}
