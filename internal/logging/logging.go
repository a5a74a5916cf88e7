// SPDX-License-Identifier: MPL-2.0

// Package logging builds the structured logger used across swift-run.
//
// Callers log through log/slog; records are rendered by a charmbracelet/log
// handler so diagnostics match the rest of the terminal styling.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/syntax"
)

// DefaultPrefix is prepended to every log line.
const DefaultPrefix = "swift-run"

// Options configures New.
type Options struct {
	// Verbose lowers the level from Info to Debug.
	Verbose bool
	// Prefix overrides DefaultPrefix.
	Prefix string
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) *slog.Logger {
	return slog.New(NewHandler(w, opts))
}

// NewHandler returns the charmbracelet/log handler behind New.
func NewHandler(w io.Writer, opts Options) *log.Logger {
	level := log.InfoLevel
	if opts.Verbose {
		level = log.DebugLevel
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportTimestamp: false,
	})
}

// QuoteCommand renders argv as one shell-quoted command line, suitable for
// copying from verbose logs into a terminal.
func QuoteCommand(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			// Only strings bash cannot represent (e.g. NUL bytes) end up here.
			q = fmt.Sprintf("%q", arg)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}
