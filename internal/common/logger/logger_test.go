package logger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AlibekovAA/microblog/internal/common/constants"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "api", "warning")

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected INFO to be filtered, got:\n%s", out)
	}
	if !strings.Contains(out, "[WARNING] [api]") || !strings.Contains(out, "shown") {
		t.Errorf("expected WARNING line with service name, got:\n%s", out)
	}
}

func TestLogger_WithFieldsSortedAndTraceID(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "api", "debug")

	ctx := context.WithValue(context.Background(), constants.TraceIDKey, "abc123")
	log.WithFields(ctx, Fields{"user_id": "u1", "action": "login_success"}).Info("login success")

	out := buf.String()
	if !strings.Contains(out, "[trace_id=abc123 action=login_success user_id=u1]") {
		t.Errorf("unexpected field rendering:\n%s", out)
	}
}

func TestLogger_ShouldLog(t *testing.T) {
	log := NewWithWriter(&bytes.Buffer{}, "", "error")

	if log.ShouldLog(WARNING) {
		t.Error("expected WARNING to be below ERROR threshold")
	}
	if !log.ShouldLog(CRITICAL) {
		t.Error("expected CRITICAL to pass ERROR threshold")
	}

	log.SetLevel("debug")
	if !log.ShouldLog(DEBUG) {
		t.Error("expected DEBUG after SetLevel")
	}
}

func TestParseLevel_UnknownDefaultsToInfo(t *testing.T) {
	if parseLevel("verbose") != INFO {
		t.Error("expected unknown level to map to INFO")
	}
	if parseLevel(" warn ") != WARNING {
		t.Error("expected warn alias to map to WARNING")
	}
}

func TestNew_CreatesLogDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	log, err := New(dir, "api", "info")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Info("written to file")

	if _, err := os.Stat(filepath.Join(dir, "app.log")); err != nil {
		t.Errorf("expected app.log to exist: %v", err)
	}
}

func TestEntry_CriticalfPassesErrorThreshold(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "api", "error")

	log.WithFields(context.Background(), Fields{"action": "panic_recovered"}).Criticalf("panic recovered: %v", "boom")

	out := buf.String()
	if !strings.Contains(out, "[CRITICAL] [api] [action=panic_recovered]") {
		t.Errorf("expected CRITICAL line with fields, got:\n%s", out)
	}
	if !strings.Contains(out, "panic recovered: boom") {
		t.Errorf("expected formatted message, got:\n%s", out)
	}
}
