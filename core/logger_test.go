package core

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLoggerDefaultsToSilent(t *testing.T) {
	SetLogger(nil)
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("Expected default logger to discard everything")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	Logger().Info("reveal started", "cell", 3)
	if !strings.Contains(buf.String(), "cell=3") {
		t.Errorf("Expected attribute in output, got %q", buf.String())
	}
}

func TestGoRunsFunction(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	ran := false
	Go(func() {
		defer wg.Done()
		ran = true
	})
	wg.Wait()
	if !ran {
		t.Error("Expected goroutine to run")
	}
}

func TestHandleCrashNilIsNoop(t *testing.T) {
	called := false
	SetCrashReset(func() { called = true })
	defer SetCrashReset(nil)

	HandleCrash(nil)
	if called {
		t.Error("Expected nil panic value to skip the reset hook")
	}
}
