// Package testutil provides helpers shared by package tests.
package testutil

import (
	"bytes"
	"log/slog"
	"testing"
)

// NewTestLogger returns a debug-level logger routed through t.Log, so
// per-file linter progress shows up only for failing tests or under -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	return slog.New(slog.NewTextHandler(&tlogWriter{t: t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type tlogWriter struct {
	t testing.TB
}

func (w *tlogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	// The text handler terminates every record; t.Log adds its own newline.
	w.t.Log(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}
