// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"cloudeng.io/logging/ctxlog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logging represents the logging configuration.
type Logging struct {
	Level      int    `yaml:"level" cmd:"logging level: 0=error, 1=warn, 2=info, 3=debug"`
	File       string `yaml:"file" cmd:"log file path, stderr if not specified, stdout if set to -"`
	Format     string `yaml:"format" cmd:"log format: text or json"`
	SourceCode bool   `yaml:"source_code" cmd:"include source code file and line number in logs"`
	MaxSizeMB  int    `yaml:"max_size_mb" cmd:"if non-zero, rotate the log file when it exceeds this size"`
	MaxBackups int    `yaml:"max_backups" cmd:"number of rotated log files to retain, zero retains all"`
}

var levels = []slog.Level{slog.LevelError, slog.LevelWarn, slog.LevelInfo, slog.LevelDebug}

// SlogLevel returns the slog.Level for the configured Level, values
// outside of 0..3 are clamped.
func (c Logging) SlogLevel() slog.Level {
	return levels[max(0, min(c.Level, len(levels)-1))]
}

// Validate returns an error for an unsupported format or rotation
// setting.
func (c Logging) Validate() error {
	switch c.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging: unknown format %q", c.Format)
	}
	if c.MaxSizeMB < 0 || c.MaxBackups < 0 {
		return fmt.Errorf("logging: max_size_mb and max_backups must not be negative")
	}
	if c.MaxSizeMB > 0 && (c.File == "" || c.File == "-") {
		return fmt.Errorf("logging: max_size_mb requires a log file")
	}
	return nil
}

// Logger is an slog.Logger together with the log file, if any, that
// it writes to.
type Logger struct {
	*slog.Logger
	f io.Closer
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.f == nil {
		return nil
	}
	return l.f.Close()
}

// Context returns a context carrying the logger for use with ctxlog.
func (l *Logger) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, l.Logger)
}

// output returns the writer for the log and the closer, if any, for
// the file it writes to. Rotated files are managed by lumberjack.
func (c Logging) output() (io.Writer, io.Closer, error) {
	switch {
	case c.File == "":
		return os.Stderr, nil, nil
	case c.File == "-":
		return os.Stdout, nil, nil
	case c.MaxSizeMB > 0:
		rl := &lumberjack.Logger{
			Filename:   c.File,
			MaxSize:    c.MaxSizeMB,
			MaxBackups: c.MaxBackups,
		}
		return rl, rl, nil
	}
	f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %q: %w", c.File, err)
	}
	return f, f, nil
}

// NewLogger creates a new logger based on the configuration.
func (c Logging) NewLogger() (*Logger, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	out, closer, err := c.output()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{
		AddSource: c.SourceCode,
		Level:     c.SlogLevel(),
	}
	var handler slog.Handler = slog.NewTextHandler(out, opts)
	if c.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	}
	return &Logger{Logger: slog.New(handler), f: closer}, nil
}
