package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/drupaltools/deprecaudit/pkg/cache"
	"github.com/drupaltools/deprecaudit/pkg/observability"
)

// Options configures a [Client]. Zero values select the defaults.
type Options struct {
	UserAgent         string        // sent on every request
	Timeout           time.Duration // per request, including redirects and body
	RequestsPerSecond float64       // global request rate; 0 disables limiting
	MaxBodyBytes      int64         // response bodies are truncated to this size
	Cache             cache.Cache   // optional evidence cache
	CacheTTL          time.Duration // 0 bypasses Cache
}

// Client provides shared HTTP functionality for the evidence fetchers.
// It is safe for concurrent use.
type Client struct {
	http     *http.Client
	headers  map[string]string
	limiter  *rate.Limiter
	maxBody  int64
	cache    cache.Cache
	cacheTTL time.Duration
}

// Response is a fully read HTTP response.
type Response struct {
	URL         string // final URL after redirects
	StatusCode  int
	ContentType string
	Body        []byte
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	c := &Client{
		http:     NewHTTPClient(opts.Timeout),
		headers:  map[string]string{"User-Agent": ua},
		maxBody:  maxBody,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
	}
	if c.cache == nil {
		c.cache = cache.NewNullCache()
	}
	if opts.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return c
}

// Get performs a GET request and reads the body. Any status code is returned
// as a Response; only transport failures produce an error, wrapping
// [ErrNetwork] or [ErrTimeout].
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, classify(err)
		}
	}

	host := req.URL.Host
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		err = classify(err)
		hooks.OnError(ctx, req.Method, host, err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		err = classify(err)
		hooks.OnError(ctx, req.Method, host, err)
		return nil, err
	}
	hooks.OnResponse(ctx, req.Method, host, resp.StatusCode, time.Since(start))

	return &Response{
		URL:         resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// Cached looks key up in the evidence cache and decodes a hit into v.
// On a miss fetch populates v and reports whether the result may be stored.
// kind labels the lookup for observability ("page" or "feed").
func (c *Client) Cached(ctx context.Context, kind, key string, v any, fetch func() bool) {
	if c.cacheTTL <= 0 {
		fetch()
		return
	}

	if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		if json.Unmarshal(data, v) == nil {
			observability.Cache().OnCacheHit(ctx, kind)
			return
		}
	}
	observability.Cache().OnCacheMiss(ctx, kind)

	if !fetch() {
		return
	}
	if data, err := json.Marshal(v); err == nil {
		_ = c.cache.Set(ctx, key, data, c.cacheTTL)
	}
}

func classify(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		return err
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %v", ErrNetwork, urlErr.Err)
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}
