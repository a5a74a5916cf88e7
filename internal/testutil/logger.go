// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"log/slog"
	"testing"
)

type testWriter struct {
	t testing.TB
}

// NewTestLogger returns a debug-level logger that writes to t.Log.
// Output only appears on failure or with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}
