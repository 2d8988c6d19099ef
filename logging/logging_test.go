package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestOpen_DisabledWithoutPath(t *testing.T) {
	logger, closer, err := Open("", "info", 0)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer closer.Close()

	if logger == nil {
		t.Fatal("Expected non-nil logger")
	}
	if log.Writer() != io.Discard {
		t.Errorf("Expected log output to be io.Discard, got %v", log.Writer())
	}
	logger.Info("dropped")
}

func TestOpen_WritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "tilde.log")

	logger, closer, err := Open(path, "debug", 0)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	logger.Info("session started", "rows", 24, "cols", 80)
	logger.Trace("below threshold")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	log.SetOutput(os.Stderr)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "session started") {
		t.Errorf("Expected message in log file, got %q", out)
	}
	if strings.Contains(out, "below threshold") {
		t.Errorf("Expected trace line to be filtered, got %q", out)
	}
}

func TestRotate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tilde.log")
	now := time.Date(2026, 10, 18, 15, 30, 0, 0, time.UTC)

	if err := rotate(path, 16, now); err != nil {
		t.Fatalf("Expected missing file to be ignored, got %v", err)
	}

	if err := os.WriteFile(path, make([]byte, 16), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := rotate(path, 16, now); err != nil {
		t.Fatalf("rotate failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected file at limit to stay in place, got %v", err)
	}

	if err := os.WriteFile(path, make([]byte, 17), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := rotate(path, 16, now); err != nil {
		t.Fatalf("rotate failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected oversized file to be moved, stat err %v", err)
	}
	rotated := filepath.Join(dir, "tilde-20261018-153000.log")
	info, err := os.Stat(rotated)
	if err != nil {
		t.Fatalf("Expected rotated file %s: %v", rotated, err)
	}
	if info.Size() != 17 {
		t.Errorf("Expected rotated size 17, got %d", info.Size())
	}
}

func TestRotate_Disabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tilde.log")
	if err := os.WriteFile(path, make([]byte, 64), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := rotate(path, 0, time.Now()); err != nil {
		t.Fatalf("rotate failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected file to stay when rotation is disabled, got %v", err)
	}
}

func TestOptions(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"trace", false},
		{"debug", false},
		{"info", false},
		{"", false},
		{"WARN", false},
		{"error", false},
		{"verbose", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			_, err := Options(tt.level)
			if (err != nil) != tt.wantErr {
				t.Errorf("Options(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
			}
		})
	}
}

func TestOpen_InvalidLevel(t *testing.T) {
	if _, _, err := Open(filepath.Join(t.TempDir(), "x.log"), "loud", 0); err == nil {
		t.Error("Expected error for unknown level")
	}
}
