// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is a thin layer over the go-ethereum slog based logger, giving
// each package a context-tagged logger.
package log

import (
	"context"
	"io"
	"log/slog"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Logger writes key/value pairs to a Handler.
type Logger = ethlog.Logger

// Levels accepted by handlers.
const (
	LevelTrace = ethlog.LevelTrace
	LevelDebug = ethlog.LevelDebug
	LevelInfo  = ethlog.LevelInfo
	LevelWarn  = ethlog.LevelWarn
	LevelError = ethlog.LevelError
	LevelCrit  = ethlog.LevelCrit
)

// Root returns the root logger.
func Root() Logger {
	return ethlog.Root()
}

// SetDefault replaces the root logger.
func SetDefault(l Logger) {
	ethlog.SetDefault(l)
}

// WithContext returns a logger derived from the root one with the given context.
// Records are forwarded to whatever handler the root carries at write time.
func WithContext(ctx ...any) Logger {
	return &lazyLogger{ctx: ctx}
}

// NewTerminalLogger builds a human friendly logger writing to w at the given level.
func NewTerminalLogger(w io.Writer, level slog.Level, useColor bool) Logger {
	return ethlog.NewLogger(ethlog.NewTerminalHandlerWithLevel(w, level, useColor))
}

// NewJSONLogger builds a json logger writing to w at the given level.
func NewJSONLogger(w io.Writer, level slog.Level) Logger {
	return ethlog.NewLogger(ethlog.JSONHandlerWithLevel(w, level))
}

// Discard returns a logger dropping every record.
func Discard() Logger {
	return ethlog.NewLogger(ethlog.DiscardHandler())
}

// lazyLogger resolves the root logger on every call, so package level loggers
// pick up a root replaced after package initialization.
type lazyLogger struct {
	ctx []any
}

func (l *lazyLogger) logger() Logger { return ethlog.Root().With(l.ctx...) }

func (l *lazyLogger) With(ctx ...any) Logger {
	return &lazyLogger{ctx: append(append([]any(nil), l.ctx...), ctx...)}
}

func (l *lazyLogger) New(ctx ...any) Logger { return l.With(ctx...) }

func (l *lazyLogger) Log(level slog.Level, msg string, ctx ...any) {
	l.logger().Log(level, msg, ctx...)
}

func (l *lazyLogger) Trace(msg string, ctx ...any) { l.logger().Trace(msg, ctx...) }
func (l *lazyLogger) Debug(msg string, ctx ...any) { l.logger().Debug(msg, ctx...) }
func (l *lazyLogger) Info(msg string, ctx ...any)  { l.logger().Info(msg, ctx...) }
func (l *lazyLogger) Warn(msg string, ctx ...any)  { l.logger().Warn(msg, ctx...) }
func (l *lazyLogger) Error(msg string, ctx ...any) { l.logger().Error(msg, ctx...) }
func (l *lazyLogger) Crit(msg string, ctx ...any)  { l.logger().Crit(msg, ctx...) }

func (l *lazyLogger) Write(level slog.Level, msg string, attrs ...any) {
	l.logger().Write(level, msg, attrs...)
}

func (l *lazyLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return l.logger().Enabled(ctx, level)
}

func (l *lazyLogger) Handler() slog.Handler { return l.logger().Handler() }
