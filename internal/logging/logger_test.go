package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pemm/internal/config"
)

func TestNewConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger = NewComponentLogger(logger, "handlist")
	logger.Info("parsed handlist", Int("stories", 3), String(FieldCollection, "PEth"))
	logger.Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, "INFO [handlist] – parsed handlist") {
		t.Fatalf("missing header in %q", out)
	}
	if !strings.Contains(out, "    - stories: 3\n") || !strings.Contains(out, "    - collection: PEth\n") {
		t.Fatalf("missing fields in %q", out)
	}
	if strings.Contains(out, "component") {
		t.Fatalf("component should be lifted into the header: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written at info level: %q", out)
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("skipped")
	logger.Warn("bad collection", String(FieldCollection, "XYZ"), Error(errors.New("boom")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload["level"] != "warn" || payload["msg"] != "bad collection" || payload["collection"] != "XYZ" {
		t.Fatalf("unexpected payload %v", payload)
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("missing ts in %v", payload)
	}
}

func TestNewRejectsUnknownFormatAndLevel(t *testing.T) {
	if _, err := New(Options{Format: "xml", Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if _, err := New(Options{Level: "loud", Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for input, want := range tests {
		got, err := ParseLevel(input)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", input, got, err, want)
		}
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	WarnWithContext(logger, "bad collection", "unknown_collection", String(FieldImpact, "field skipped"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload[FieldEventType] != "unknown_collection" {
		t.Fatalf("event type missing: %v", payload)
	}
	if payload[FieldImpact] != "field skipped" {
		t.Fatalf("explicit impact overwritten: %v", payload)
	}
	if payload[FieldErrorHint] == nil {
		t.Fatalf("error hint not injected: %v", payload)
	}
}

func TestWithGroupPrefixesKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.WithGroup("counts").Info("summary", Int("stories", 2))
	if !strings.Contains(buf.String(), "    - counts.stories: 2\n") {
		t.Fatalf("group prefix missing: %q", buf.String())
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger should be disabled")
	}
	logger.Error("ignored")
	WarnWithContext(nil, "ignored", "none")
}

func TestNewFromConfigCopiesToLogFile(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Logging.Format = "json"
	cfg.Logging.File = filepath.Join(t.TempDir(), "pemm.log")

	logger, err := NewFromConfig(&cfg, &buf)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	logger.Info("conversion complete", String(FieldRunID, "abc"))

	data, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	for name, out := range map[string]string{"stderr": buf.String(), "file": string(data)} {
		if !strings.Contains(out, `"run_id":"abc"`) {
			t.Fatalf("%s output missing run id: %s", name, out)
		}
	}
}
