package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/trough/core"
)

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	f, err := setupLogging("", slog.LevelInfo)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if f != nil {
		t.Error("Expected nil log file when no path is given")
		f.Close()
	}
	if core.Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("Expected silent logger when logging is off")
	}
}

func TestSetupLogging_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "trough.log")
	f, err := setupLogging(path, slog.LevelDebug)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer func() {
		f.Close()
		core.SetLogger(nil)
	}()

	core.Logger().Info("test message", "cell", 3)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log file to contain content")
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trough.log")

	if err := os.WriteFile(path, make([]byte, maxLogSize+1), 0o644); err != nil {
		t.Fatalf("Failed to create large log file: %v", err)
	}

	f, err := setupLogging(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer func() {
		f.Close()
		core.SetLogger(nil)
	}()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read log dir: %v", err)
	}
	rotated := false
	for _, e := range entries {
		if e.Name() != "trough.log" && filepath.Ext(e.Name()) == ".log" {
			rotated = true
		}
	}
	if !rotated {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("Expected new log file under %d bytes, got %d", maxLogSize, info.Size())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
