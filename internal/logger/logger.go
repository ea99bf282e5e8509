// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog.Logger with the constructors and context
// helpers used across go-disk-next.
//
// Request-scoped loggers travel in the context. Handlers and services obtain
// them with FromRequest and FromContext so that every entry carries the
// trace id attached by the HTTP middleware.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger so the whole zerolog API is available.
type Logger struct {
	zerolog.Logger
}

// NewLogger builds a JSON logger on stdout tagged with role. The level is
// debug when debug is set and info otherwise.
func NewLogger(role string, debug bool) *Logger {
	return newLogger(os.Stdout, role, debug)
}

func newLogger(w io.Writer, role string, debug bool) *Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	logger := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// Nop returns a logger that discards everything. Used in tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy that can be enriched without touching l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// Component returns a child logger with a "component" field.
func (l *Logger) Component(name string) *Logger {
	return &Logger{l.With().Str("component", name).Logger()}
}

// WithContext stores l in ctx for later retrieval by FromContext.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx, or zerolog's default
// logger when none is attached. Never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
