// Copyright 2024 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package capture_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cloudeng.io/suncapture/capture"
)

func TestRunnerDryRun(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	out := &bytes.Buffer{}
	cmds := []capture.Command{
		{Kind: capture.MakeDirectory, Args: []string{filepath.Join(tmpDir, "2024")}},
		{Kind: capture.Capture, Args: []string{"touch", "a b"}, Schedule: []string{"at", "-t", "202406212249"}},
	}
	r := capture.NewRunner(capture.WithDryRun(true), capture.WithStdout(out))
	if err := r.Run(ctx, cmds...); err != nil {
		t.Fatal(err)
	}
	want := "mkdir -p " + filepath.Join(tmpDir, "2024") + "\n" +
		`echo 'touch '"'"'a b'"'"'' | at -t 202406212249` + "\n"
	if got := out.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "2024")); !os.IsNotExist(err) {
		t.Errorf("directory should not have been created: %v", err)
	}
	if err := r.Run(ctx); err == nil {
		t.Errorf("expected an error")
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	dir := filepath.Join(tmpDir, "captures", "2024")
	out := &bytes.Buffer{}
	now := time.Date(2024, 6, 21, 22, 0, 0, 0, time.UTC)
	cmds := []capture.Command{
		{Kind: capture.MakeDirectory, Args: []string{dir}},
		// In the past and hence run immediately.
		{Kind: capture.Capture, At: now.Add(-time.Minute), Args: []string{"touch", filepath.Join(dir, "a.jpg")}},
		// Piped to the schedule command.
		{Kind: capture.Capture, At: now.Add(time.Hour), Args: []string{"touch", filepath.Join(dir, "b c.jpg")}, Schedule: []string{"cat"}},
	}
	r := capture.NewRunner(
		capture.WithStdout(out),
		capture.WithWorkingDir(tmpDir),
		capture.WithClock(func() time.Time { return now }))
	if err := r.Run(ctx, cmds...); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.jpg")); err != nil {
		t.Errorf("capture was not run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "b c.jpg")); !os.IsNotExist(err) {
		t.Errorf("scheduled capture should not have been run: %v", err)
	}
	if got, want := out.String(), "touch '"+filepath.Join(dir, "b c.jpg")+"'\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRunnerErrors(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	now := time.Now()
	cmds := []capture.Command{
		{Kind: capture.Capture, At: now, Args: []string{"false"}},
		{Kind: capture.Capture, At: now, Args: []string{"touch", filepath.Join(tmpDir, "ok")}},
		{Kind: capture.Capture, At: now, Args: []string{filepath.Join(tmpDir, "no-such-command")}},
	}
	err := capture.NewRunner(capture.WithStderr(&bytes.Buffer{})).Run(ctx, cmds...)
	if err == nil {
		t.Fatal("expected an error")
	}
	if got := strings.Count(err.Error(), now.Format(time.RFC3339)); got != 2 {
		t.Errorf("expected two failures: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "ok")); err != nil {
		t.Errorf("capture after a failure was not run: %v", err)
	}

	// A file in place of the directory.
	blocker := filepath.Join(tmpDir, "file")
	if err := os.WriteFile(blocker, nil, 0600); err != nil {
		t.Fatal(err)
	}
	err = capture.NewRunner().Run(ctx, capture.Command{Kind: capture.MakeDirectory, Args: []string{filepath.Join(blocker, "dir")}})
	if err == nil {
		t.Errorf("expected an error")
	}
}

func TestRunnerCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	cmds := []capture.Command{
		{Kind: capture.Capture, At: time.Now().Add(time.Hour), Args: []string{"true"}},
		{Kind: capture.Capture, At: time.Now().Add(2 * time.Hour), Args: []string{"true"}},
	}
	start := time.Now()
	err := capture.NewRunner().Run(ctx, cmds...)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("unexpected error: %v", err)
	}
	if time.Since(start) > 10*time.Second {
		t.Errorf("cancellation took too long")
	}
}
