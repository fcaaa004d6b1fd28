// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package archive_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"cloudeng.io/suncapture/archive"
)

var base = time.Date(2024, 6, 21, 22, 50, 0, 0, time.UTC)

func createFiles(t *testing.T, dir string, files map[string]time.Time) {
	t.Helper()
	for name, when := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(name), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := os.Chtimes(path, when, when); err != nil {
			t.Fatal(err)
		}
	}
}

func paths(entries []archive.Entry) []string {
	p := make([]string, len(entries))
	for i, e := range entries {
		p[i] = filepath.Base(e.Path)
	}
	return p
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	createFiles(t, dir, map[string]time.Time{
		"b.jpg":      base,
		"a.jpg":      base,
		"c.jpg":      base.Add(-time.Hour),
		"d.png":      base.Add(-2 * time.Hour),
		"2023/e.jpg": base.Add(-365 * 24 * time.Hour),
	})
	if err := os.Mkdir(filepath.Join(dir, "dir.jpg"), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink("a.jpg", filepath.Join(dir, "latest.jpg")); err != nil {
		t.Fatal(err)
	}

	entries, err := archive.List(dir, "*.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := paths(entries), []string{"c.jpg", "a.jpg", "b.jpg"}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := entries[0].Size, int64(len("c.jpg")); got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	entries, err = archive.List(dir, "*/*.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := paths(entries), []string{"e.jpg"}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := archive.List(dir, "[x"); err == nil {
		t.Errorf("expected an error")
	}
	entries, err = archive.List(filepath.Join(dir, "missing"), "*")
	if err != nil || len(entries) != 0 {
		t.Errorf("got %v, %v", entries, err)
	}
}

func TestLinkLatest(t *testing.T) {
	dir := t.TempDir()
	createFiles(t, dir, map[string]time.Time{
		"2024/20240620+1.jpg": base.Add(-24 * time.Hour),
		"2024/20240621+1.jpg": base,
	})
	e, err := archive.LinkLatest(dir, "*/*.jpg", "latest.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := filepath.Base(e.Path), "20240621+1.jpg"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	link := filepath.Join(dir, "latest.jpg")
	target, err := os.Readlink(link)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := target, filepath.Join("2024", "20240621+1.jpg"); got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	// A newer capture replaces the link.
	createFiles(t, dir, map[string]time.Time{"2024/20240622+1.jpg": base.Add(24 * time.Hour)})
	if _, err := archive.LinkLatest(dir, "*/*.jpg", link); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(link)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "2024/20240622+1.jpg"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "*.tmp-*"))
	if len(matches) != 0 {
		t.Errorf("temporary links were left behind: %v", matches)
	}

	if _, err := archive.LinkLatest(dir, "*.png", "latest.png"); err == nil {
		t.Errorf("expected an error")
	}
}

func TestPurge(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	createFiles(t, dir, map[string]time.Time{
		"old1.jpg": base.Add(-72 * time.Hour),
		"old2.jpg": base.Add(-49 * time.Hour),
		"new1.jpg": base.Add(-47 * time.Hour),
		"new2.jpg": base,
	})
	keep := 48 * time.Hour

	removed, err := archive.Purge(ctx, dir, "*.jpg", keep, base, true)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(removed), 2; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if entries, _ := archive.List(dir, "*.jpg"); len(entries) != 4 {
		t.Errorf("dry run removed files: %v", paths(entries))
	}

	removed, err = archive.Purge(ctx, dir, "*.jpg", keep, base, false)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := removed, []string{filepath.Join(dir, "old1.jpg"), filepath.Join(dir, "old2.jpg")}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	entries, err := archive.List(dir, "*.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := paths(entries), []string{"new1.jpg", "new2.jpg"}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if removed, err := archive.Purge(ctx, dir, "*.jpg", 0, base.Add(1000*time.Hour), false); err != nil || len(removed) != 0 {
		t.Errorf("zero retention should keep everything: %v %v", removed, err)
	}
	if _, err := archive.Purge(ctx, dir, "*.jpg", -time.Hour, base, false); err == nil {
		t.Errorf("expected an error")
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := archive.Purge(cctx, dir, "*.jpg", time.Hour, base.Add(100*time.Hour), false); err == nil {
		t.Errorf("expected an error")
	}
}
