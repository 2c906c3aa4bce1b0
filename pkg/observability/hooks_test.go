package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	a := NoopAuditHooks{}
	a.OnCollectStart(ctx, 10, 4)
	a.OnCollectComplete(ctx, time.Second)
	a.OnVerdict(ctx, "acquia.yml", false, true, false)
	a.OnRecordChanged(ctx, "acquia.yml", "deprecated")

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "page")
	c.OnCacheMiss(ctx, "feed")

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "github.com")
	h.OnResponse(ctx, "GET", "github.com", 200, time.Second)
	h.OnError(ctx, "GET", "github.com", errors.New("boom"))
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Audit().(NoopAuditHooks); !ok {
		t.Error("Audit() should return NoopAuditHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	audit := &countingAuditHooks{}
	SetAuditHooks(audit)
	if Audit() != audit {
		t.Error("SetAuditHooks should set custom hooks")
	}

	cache := &countingCacheHooks{}
	SetCacheHooks(cache)
	if Cache() != cache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	http := &countingHTTPHooks{}
	SetHTTPHooks(http)
	if HTTP() != http {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Audit().OnRecordChanged(context.Background(), "a.yml", "restored")
	if audit.changed != 1 {
		t.Errorf("custom audit hook called %d times, want 1", audit.changed)
	}

	Reset()
	if _, ok := Audit().(NoopAuditHooks); !ok {
		t.Error("Reset() should restore NoopAuditHooks")
	}
}

func TestSetHooksIgnoresNil(t *testing.T) {
	Reset()
	defer Reset()

	SetAuditHooks(nil)
	SetCacheHooks(nil)
	SetHTTPHooks(nil)

	if Audit() == nil || Cache() == nil || HTTP() == nil {
		t.Error("nil hooks should be ignored")
	}
}

type countingAuditHooks struct {
	NoopAuditHooks
	changed int
}

func (h *countingAuditHooks) OnRecordChanged(context.Context, string, string) { h.changed++ }

type countingCacheHooks struct{ NoopCacheHooks }

type countingHTTPHooks struct{ NoopHTTPHooks }
