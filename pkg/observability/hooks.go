// Package observability provides hooks for metrics and tracing.
//
// Libraries emit events through the registered hooks; the defaults are no-ops
// so the audit pipeline carries no dependency on a metrics backend. The CLI
// registers Prometheus-backed hooks when asked to export metrics.
//
// # Usage
//
// Register hooks at application startup:
//
//	observability.SetAuditHooks(&myAuditHooks{})
//	observability.SetHTTPHooks(&myHTTPHooks{})
//
// Libraries call hooks to emit events:
//
//	observability.Audit().OnCollectStart(ctx, len(urls), len(repos))
//	// ... fetch everything ...
//	observability.Audit().OnCollectComplete(ctx, time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Audit Hooks
// =============================================================================

// AuditHooks receives events from the audit pipeline.
type AuditHooks interface {
	// OnCollectStart fires once per run before any fetch is dispatched.
	OnCollectStart(ctx context.Context, urls, repos int)
	// OnCollectComplete fires after every fetch has finished.
	OnCollectComplete(ctx context.Context, duration time.Duration)

	// OnVerdict fires for every record after the decision step.
	OnVerdict(ctx context.Context, path string, keywordHit, reachable, stale bool)
	// OnRecordChanged fires for every record whose categories or flags
	// changed. action is "deprecated", "restored" or "unrecommended".
	OnRecordChanged(ctx context.Context, path, action string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from evidence cache lookups.
type CacheHooks interface {
	// OnCacheHit records a cache hit. kind is "page" or "feed".
	OnCacheHit(ctx context.Context, kind string)
	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, kind string)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopAuditHooks is a no-op implementation of AuditHooks.
type NoopAuditHooks struct{}

func (NoopAuditHooks) OnCollectStart(context.Context, int, int)            {}
func (NoopAuditHooks) OnCollectComplete(context.Context, time.Duration)    {}
func (NoopAuditHooks) OnVerdict(context.Context, string, bool, bool, bool) {}
func (NoopAuditHooks) OnRecordChanged(context.Context, string, string)     {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)  {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	auditHooks AuditHooks = NoopAuditHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetAuditHooks registers custom audit hooks.
// This should be called once at application startup before any audit runs.
func SetAuditHooks(h AuditHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		auditHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Audit returns the registered audit hooks.
func Audit() AuditHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return auditHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	auditHooks = NoopAuditHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
