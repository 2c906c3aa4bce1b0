package page

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/drupaltools/deprecaudit/pkg/cache"
	"github.com/drupaltools/deprecaudit/pkg/integrations"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/active", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><body><h1>Widget</h1><p>Actively maintained.</p></body></html>`))
	})
	mux.HandleFunc("/abandoned", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><body><div class="flash">This module is <b>no longer maintained</b>.</div></body></html>`))
	})
	mux.HandleFunc("/script-only", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><script>var msg = "this package is deprecated";</script></head><body>ok</body></html>`))
	})
	mux.HandleFunc("/moved", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/abandoned", http.StatusFound)
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("this project is deprecated"))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestFetcher_Fetch(t *testing.T) {
	server := newTestServer(t)
	f := NewFetcher(integrations.NewClient(integrations.Options{}), nil)

	tests := []struct {
		path string
		want Evidence
	}{
		{"/active", Evidence{Reachable: true}},
		{"/abandoned", Evidence{Reachable: true, KeywordHit: true}},
		{"/script-only", Evidence{Reachable: true}},
		{"/moved", Evidence{Reachable: true, KeywordHit: true}},
		{"/gone", Evidence{}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := f.Fetch(context.Background(), server.URL+tt.path); got != tt.want {
				t.Errorf("Fetch(%s) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}
}

func TestFetcher_FetchTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	f := NewFetcher(integrations.NewClient(integrations.Options{}), nil)
	if got := f.Fetch(context.Background(), url); got != (Evidence{}) {
		t.Errorf("Fetch() = %+v, want zero evidence", got)
	}
}

func TestFetcher_FetchTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	f := NewFetcher(integrations.NewClient(integrations.Options{Timeout: 50 * time.Millisecond}), nil)
	in := f.Inspect(context.Background(), server.URL)
	if in.Reachable || in.KeywordHit {
		t.Errorf("Inspect() = %+v, want unreachable", in.Evidence)
	}
	if !errors.Is(in.Err, integrations.ErrTimeout) {
		t.Errorf("Inspect() error = %v, want ErrTimeout", in.Err)
	}
}

func TestFetcher_Inspect(t *testing.T) {
	server := newTestServer(t)
	f := NewFetcher(integrations.NewClient(integrations.Options{}), nil)

	in := f.Inspect(context.Background(), server.URL+"/moved")
	if in.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d", in.StatusCode)
	}
	if in.FinalURL != server.URL+"/abandoned" {
		t.Errorf("FinalURL = %q", in.FinalURL)
	}
	if in.Match != "no longer maintained" {
		t.Errorf("Match = %q", in.Match)
	}
}

func TestFetcher_FetchCachesAnsweredRequests(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("no further development"))
	}))
	defer server.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	f := NewFetcher(integrations.NewClient(integrations.Options{Cache: fc, CacheTTL: time.Hour}), nil)

	want := Evidence{Reachable: true, KeywordHit: true}
	for range 2 {
		if got := f.Fetch(context.Background(), server.URL); got != want {
			t.Fatalf("Fetch() = %+v, want %+v", got, want)
		}
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hit %d times, want 1", n)
	}
}
