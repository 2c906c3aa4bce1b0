package cli

import (
	"context"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/drupaltools/deprecaudit/pkg/audit"
	"github.com/drupaltools/deprecaudit/pkg/buildinfo"
	"github.com/drupaltools/deprecaudit/pkg/errors"
	"github.com/drupaltools/deprecaudit/pkg/integrations/github"
	"github.com/drupaltools/deprecaudit/pkg/observability"
)

// metrics records one audit run in a private registry. The registry is
// written in text exposition format for node_exporter's textfile collector.
type metrics struct {
	reg *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestErrors   *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
	targets         *prometheus.GaugeVec
	collectSeconds  prometheus.Gauge
	verdicts        *prometheus.CounterVec
	changes         *prometheus.CounterVec
	records         prometheus.Gauge
	lastRun         prometheus.Gauge
}

func newMetrics() *metrics {
	m := &metrics{
		reg: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deprecaudit_http_requests_total",
			Help: "HTTP responses received, by host (github.com or other) and status code.",
		}, []string{"host", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "deprecaudit_http_request_duration_seconds",
			Help:    "Time to receive and read an HTTP response.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 12},
		}, []string{"host"}),
		requestErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deprecaudit_http_request_errors_total",
			Help: "HTTP requests that failed before a response arrived.",
		}, []string{"host"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deprecaudit_cache_lookups_total",
			Help: "Evidence cache lookups, by kind and result.",
		}, []string{"kind", "result"}),
		targets: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "deprecaudit_collect_targets",
			Help: "Unique fetch targets in the last run.",
		}, []string{"kind"}),
		collectSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "deprecaudit_collect_duration_seconds",
			Help: "Duration of the evidence collection phase.",
		}),
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deprecaudit_verdicts_total",
			Help: "Record verdicts, by deciding signal.",
		}, []string{"reason"}),
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deprecaudit_records_changed_total",
			Help: "Records changed, by action.",
		}, []string{"action"}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "deprecaudit_records",
			Help: "Records scanned in the last run.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "deprecaudit_last_run_timestamp_seconds",
			Help: "Unix time the last run finished.",
		}),
	}

	buildInfo := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "deprecaudit_build_info",
		Help:        "Build information.",
		ConstLabels: buildinfo.Labels(),
	})
	buildInfo.Set(1)

	m.reg.MustRegister(
		m.requests, m.requestDuration, m.requestErrors, m.cacheLookups,
		m.targets, m.collectSeconds, m.verdicts, m.changes, m.records,
		m.lastRun, buildInfo,
	)
	return m
}

// register installs m as the observability hooks.
func (m *metrics) register() {
	observability.SetAuditHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

// unregister restores the no-op hooks.
func (m *metrics) unregister() {
	observability.Reset()
}

// observeRun records the totals of a finished run.
func (m *metrics) observeRun(rep *audit.Report) {
	m.records.Set(float64(rep.Scanned))
	m.lastRun.SetToCurrentTime()
}

// write writes the registry to path atomically.
func (m *metrics) write(path string) error {
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return errors.Wrap(errors.ErrCodeMetricsExport, err, "write metrics %s", path)
	}
	return nil
}

func (m *metrics) OnCollectStart(_ context.Context, urls, repos int) {
	m.targets.WithLabelValues("url").Set(float64(urls))
	m.targets.WithLabelValues("repo").Set(float64(repos))
}

func (m *metrics) OnCollectComplete(_ context.Context, d time.Duration) {
	m.collectSeconds.Set(d.Seconds())
}

func (m *metrics) OnVerdict(_ context.Context, _ string, keywordHit, reachable, stale bool) {
	reason := audit.Verdict{KeywordHit: keywordHit, Reachable: reachable, Stale: stale}.Reason()
	if reason == "" {
		reason = "none"
	}
	m.verdicts.WithLabelValues(reason).Inc()
}

func (m *metrics) OnRecordChanged(_ context.Context, _ string, action string) {
	m.changes.WithLabelValues(action).Inc()
}

func (m *metrics) OnCacheHit(_ context.Context, kind string) {
	m.cacheLookups.WithLabelValues(kind, "hit").Inc()
}

func (m *metrics) OnCacheMiss(_ context.Context, kind string) {
	m.cacheLookups.WithLabelValues(kind, "miss").Inc()
}

func (m *metrics) OnRequest(context.Context, string, string) {}

func (m *metrics) OnResponse(_ context.Context, _ string, host string, status int, d time.Duration) {
	host = hostLabel(host)
	m.requests.WithLabelValues(host, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(host).Observe(d.Seconds())
}

func (m *metrics) OnError(_ context.Context, _ string, host string, _ error) {
	m.requestErrors.WithLabelValues(hostLabel(host)).Inc()
}

// hostLabel buckets request hosts so project URLs cannot grow the label set.
func hostLabel(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	switch strings.ToLower(host) {
	case github.Host, "www." + github.Host:
		return github.Host
	}
	return "other"
}

var (
	_ observability.AuditHooks = (*metrics)(nil)
	_ observability.CacheHooks = (*metrics)(nil)
	_ observability.HTTPHooks  = (*metrics)(nil)
)
