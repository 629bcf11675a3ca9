// Package logx builds the application's structured loggers.
package logx

import (
	"context"
	"io"
	"log"
	"strings"

	"pkt.systems/pslog"
)

// New returns a structured logger writing to w at the named level
// ("debug", "info", "error"; anything else means info).
func New(w io.Writer, level string) pslog.Logger {
	return pslog.NewWithOptions(w, options(level))
}

// Discard returns a logger that drops everything
func Discard() pslog.Logger {
	return pslog.NewWithOptions(io.Discard, options("error"))
}

// Bridge routes the standard library logger through l so third-party
// packages that call log.Printf end up in the same file.
func Bridge(l pslog.Logger) {
	log.SetOutput(pslog.LogLogger(l).Writer())
	log.SetFlags(0)
}

// Ctx returns the logger bound to ctx
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithSection annotates the logger with a section name
func WithSection(l pslog.Logger, section string) pslog.Logger {
	if section == "" {
		return l
	}
	return l.With("section", section)
}

func options(level string) pslog.Options {
	opts := pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: pslog.InfoLevel,
	}
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	}
	return opts
}
