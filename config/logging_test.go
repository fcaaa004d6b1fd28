// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package config_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cloudeng.io/logging/ctxlog"
	"cloudeng.io/suncapture/config"
)

func TestNewLogger(t *testing.T) {
	tmpDir := t.TempDir()
	for _, tc := range []struct {
		name   string
		config config.Logging
	}{
		{"stderr", config.Logging{}},
		{"text-file", config.Logging{Level: 3, File: filepath.Join(tmpDir, "text.log")}},
		{"rotated-file", config.Logging{Level: 2, File: filepath.Join(tmpDir, "rotated.log"), MaxSizeMB: 1, MaxBackups: 2}},
	} {
		logger, err := tc.config.NewLogger()
		if err != nil {
			t.Errorf("%v: %v", tc.name, err)
			continue
		}
		ctx := logger.Context(context.Background())
		ctxlog.Logger(ctx).Error("hello", "test", tc.name)
		if err := logger.Close(); err != nil {
			t.Errorf("%v: %v", tc.name, err)
		}
		if tc.config.File == "" {
			continue
		}
		data, err := os.ReadFile(tc.config.File)
		if err != nil {
			t.Errorf("%v: log file was not created: %v", tc.name, err)
			continue
		}
		if !strings.Contains(string(data), "test="+tc.name) {
			t.Errorf("%v: missing message: %s", tc.name, data)
		}
	}
}

func TestJSONLogger(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "json.log")
	logger, err := config.Logging{Level: 2, File: logFile, Format: "json"}.NewLogger()
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("event", "event", "sunset", "captures", 20)
	logger.Close()
	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	var entry map[string]any
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("%v: %s", err, data)
	}
	if got, want := entry["event"], "sunset"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := entry["captures"], 20.0; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestLoggingLevel(t *testing.T) {
	for _, tc := range []struct {
		level int
		want  slog.Level
	}{
		{-1, slog.LevelError},
		{0, slog.LevelError},
		{1, slog.LevelWarn},
		{2, slog.LevelInfo},
		{3, slog.LevelDebug},
		{10, slog.LevelDebug},
	} {
		if got := (config.Logging{Level: tc.level}).SlogLevel(); got != tc.want {
			t.Errorf("%v: got %v, want %v", tc.level, got, tc.want)
		}
	}

	logFile := filepath.Join(t.TempDir(), "level.log")
	logger, err := config.Logging{Level: 1, File: logFile}.NewLogger()
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("not logged")
	logger.Warn("logged")
	logger.Close()
	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "not logged") || !strings.Contains(string(data), "logged") {
		t.Errorf("unexpected log output: %s", data)
	}
}

func TestLoggingValidate(t *testing.T) {
	for _, tc := range []config.Logging{
		{Format: "yaml"},
		{MaxSizeMB: -1, File: "x.log"},
		{MaxSizeMB: 1},
		{MaxSizeMB: 1, File: "-"},
	} {
		if err := tc.Validate(); err == nil {
			t.Errorf("%+v: expected an error", tc)
		}
		if _, err := tc.NewLogger(); err == nil {
			t.Errorf("%+v: expected an error", tc)
		}
	}
}
