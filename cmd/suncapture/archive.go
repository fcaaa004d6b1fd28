// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"time"

	"cloudeng.io/suncapture/archive"
)

// pattern returns the glob pattern for captures, relative to the
// capture directory.
func (a *app) pattern() string {
	if a.cfg.Capture.PerYearDirectory {
		return "*/" + a.cfg.Archive.Pattern
	}
	return a.cfg.Archive.Pattern
}

func (a *app) captureDirectory() (string, error) {
	if len(a.cfg.Capture.Directory) == 0 {
		return "", fmt.Errorf("no capture directory configured")
	}
	return a.cfg.Capture.Directory, nil
}

func listCmd(ctx context.Context, _ any, _ []string) error {
	_, a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	dir, err := a.captureDirectory()
	if err != nil {
		return err
	}
	entries, err := archive.List(dir, a.pattern())
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintln(stdout, e.String())
	}
	return nil
}

func linkLatestCmd(ctx context.Context, _ any, _ []string) error {
	_, a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	dir, err := a.captureDirectory()
	if err != nil {
		return err
	}
	if len(a.cfg.Archive.LatestLink) == 0 {
		return fmt.Errorf("no latest_link configured")
	}
	e, err := archive.LinkLatest(dir, a.pattern(), a.cfg.Archive.LatestLink)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%v -> %v\n", a.cfg.Archive.LatestLink, e.Path)
	return nil
}

type purgeFlags struct {
	DryRun bool          `subcmd:"dry-run,false,'print the files that would be removed without removing them'"`
	Keep   time.Duration `subcmd:"keep,0s,'override the configured retention period'"`
}

func purgeCmd(ctx context.Context, values any, _ []string) error {
	fv := values.(*purgeFlags)
	ctx, a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	dir, err := a.captureDirectory()
	if err != nil {
		return err
	}
	keep := a.cfg.Archive.Keep
	if fv.Keep > 0 {
		keep = fv.Keep
	}
	removed, err := archive.Purge(ctx, dir, a.pattern(), keep, time.Now(), fv.DryRun)
	for _, r := range removed {
		fmt.Fprintln(stdout, r)
	}
	return err
}
