// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package archive manages the files written by capture commands.
package archive

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"cloudeng.io/errors"
	"cloudeng.io/file/diskusage"
	"cloudeng.io/file/localfs"
	"cloudeng.io/logging/ctxlog"
)

// Entry represents a single captured file.
type Entry struct {
	Path    string
	Size    int64
	ModTime time.Time
}

func (e Entry) String() string {
	return fmt.Sprintf("%v %v %v", e.ModTime.Format(time.DateTime), diskusage.BinarySize(8, 1, e.Size), e.Path)
}

// List returns the regular files in dir that match pattern, which may
// include directory components, eg. "*/*.jpg" for per-year directories.
// Symbolic links are ignored. The entries are ordered by modification
// time, oldest first, and then by path.
func List(dir, pattern string) ([]Entry, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", pattern, err)
	}
	entries := make([]Entry, 0, len(matches))
	for _, m := range matches {
		info, err := os.Lstat(m)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		if !info.Mode().IsRegular() {
			continue
		}
		entries = append(entries, Entry{Path: m, Size: info.Size(), ModTime: info.ModTime()})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := a.ModTime.Compare(b.ModTime); c != 0 {
			return c
		}
		return cmp.Compare(a.Path, b.Path)
	})
	return entries, nil
}

// Latest returns the most recently modified file in dir that matches
// pattern.
func Latest(dir, pattern string) (Entry, bool, error) {
	entries, err := List(dir, pattern)
	if err != nil || len(entries) == 0 {
		return Entry{}, false, err
	}
	return entries[len(entries)-1], true, nil
}

// LinkLatest creates, or replaces, a symbolic link, relative to dir if
// not absolute, that refers to the most recently modified file that
// matches pattern. The link is replaced atomically.
func LinkLatest(dir, pattern, link string) (Entry, error) {
	latest, ok, err := Latest(dir, pattern)
	if err != nil {
		return Entry{}, err
	}
	if !ok {
		return Entry{}, fmt.Errorf("no files matching %q in %v", pattern, dir)
	}
	if !filepath.IsAbs(link) {
		link = filepath.Join(dir, link)
	}
	target, err := filepath.Rel(filepath.Dir(link), latest.Path)
	if err != nil {
		target = latest.Path
	}
	tmp := link + ".tmp-" + strconv.Itoa(os.Getpid())
	os.Remove(tmp)
	if err := os.Symlink(target, tmp); err != nil {
		return Entry{}, err
	}
	if err := os.Rename(tmp, link); err != nil {
		os.Remove(tmp)
		return Entry{}, err
	}
	return latest, nil
}

// Purge removes files in dir matching pattern that were last modified
// more than keep before now. A keep of zero retains all files. The
// paths of the files removed, or that would be removed if dryRun is
// set, are returned.
func Purge(ctx context.Context, dir, pattern string, keep time.Duration, now time.Time, dryRun bool) ([]string, error) {
	if keep < 0 {
		return nil, fmt.Errorf("invalid retention period: %v", keep)
	}
	if keep == 0 {
		return nil, nil
	}
	entries, err := List(dir, pattern)
	if err != nil {
		return nil, err
	}
	logger := ctxlog.Logger(ctx)
	fs := localfs.New()
	cutoff := now.Add(-keep)
	errs := &errors.M{}
	var removed []string
	for _, e := range entries {
		if !e.ModTime.Before(cutoff) {
			// Entries are sorted by modification time.
			break
		}
		if err := ctx.Err(); err != nil {
			errs.Append(err)
			break
		}
		if !dryRun {
			if err := fs.Delete(ctx, e.Path); err != nil {
				errs.Append(err)
				continue
			}
		}
		logger.Info("purge", "path", e.Path, "modified", e.ModTime, "dry-run", dryRun)
		removed = append(removed, e.Path)
	}
	return removed, errs.Err()
}
