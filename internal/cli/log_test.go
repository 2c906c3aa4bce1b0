package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

var runField = regexp.MustCompile(`run=(\S+)`)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"fetch detail hidden by default", LogInfo, func(l *log.Logger) { l.Debug("page unreachable", "url", "https://a.example") }, false},
		{"fetch detail with -v", LogDebug, func(l *log.Logger) { l.Debug("page unreachable", "url", "https://a.example") }, true},
		{"summary always shown", LogInfo, func(l *log.Logger) { l.Info("Audited 3 records") }, true},
		{"warnings shown", LogInfo, func(l *log.Logger) { l.Warn("skipping unreadable record") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("wrote output = %v, want %v (%q)", got, tt.wantLog, buf.String())
			}
		})
	}
}

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, LogInfo).Info("Audited 3 records")

	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(buf.String()) {
		t.Errorf("line %q should start with an HH:MM:SS.ms timestamp", buf.String())
	}
}

func TestRunLogger(t *testing.T) {
	var buf bytes.Buffer
	base := newLogger(&buf, LogInfo)

	first := runLogger(base)
	first.Info("Audited 3 records")
	first.Info("Updated 1 project files")
	second := runLogger(base)
	second.Info("Audited 3 records")

	var ids []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		m := runField.FindStringSubmatch(line)
		if m == nil {
			t.Fatalf("line %q has no run field", line)
		}
		if _, err := uuid.Parse(m[1]); err != nil {
			t.Errorf("run id %q is not a UUID: %v", m[1], err)
		}
		ids = append(ids, m[1])
	}
	if len(ids) != 3 {
		t.Fatalf("got %d lines, want 3", len(ids))
	}
	if ids[0] != ids[1] {
		t.Errorf("one run logged ids %s and %s", ids[0], ids[1])
	}
	if ids[0] == ids[2] {
		t.Errorf("two runs share id %s", ids[0])
	}

	buf.Reset()
	base.Info("no run")
	if runField.MatchString(buf.String()) {
		t.Errorf("base logger gained a run field: %q", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))
	time.Sleep(10 * time.Millisecond)
	prog.done("Audited 412 records")

	out := buf.String()
	if !strings.Contains(out, "Audited 412 records (") {
		t.Errorf("done() output = %q, want message followed by elapsed time", out)
	}
	if !regexp.MustCompile(`\(\d+(\.\d+)?m?s\)`).MatchString(out) {
		t.Errorf("done() output = %q, want a rounded duration", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext() without a logger should return log.Default()")
	}

	var buf bytes.Buffer
	l := runLogger(newLogger(&buf, LogInfo))
	ctx := withLogger(context.Background(), l)
	if got := loggerFromContext(ctx); got != l {
		t.Fatal("loggerFromContext() should return the attached run logger")
	}

	loggerFromContext(ctx).Info("check")
	if !runField.MatchString(buf.String()) {
		t.Errorf("logger from context lost its run field: %q", buf.String())
	}
}
