// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"time"

	"cloudeng.io/errors"
	"cloudeng.io/logging/ctxlog"
	"cloudeng.io/suncapture/capture"
	"cloudeng.io/suncapture/geospatial/astronomy"
	"cloudeng.io/suncapture/journal"
)

type scheduleFlags struct {
	Event    string `subcmd:"event,,'event to schedule captures for, defaults to the configured event'"`
	DryRun   bool   `subcmd:"dry-run,false,'print the commands that would be run without running them'"`
	SkipPast bool   `subcmd:"skip-past,true,'skip captures whose time has already passed'"`
}

// skipPast returns cmds without the captures scheduled before now.
func skipPast(cmds []capture.Command, now time.Time) []capture.Command {
	kept := make([]capture.Command, 0, len(cmds))
	for _, cmd := range cmds {
		if cmd.Kind == capture.Capture && cmd.At.Before(now) {
			continue
		}
		kept = append(kept, cmd)
	}
	return kept
}

func scheduleCmd(ctx context.Context, values any, args []string) error {
	fv := values.(*scheduleFlags)
	ctx, a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	now := time.Now()
	date, err := a.date(args, now)
	if err != nil {
		return err
	}
	ev, err := a.event(fv.Event)
	if err != nil {
		return err
	}
	when, err := astronomy.EventOn(a.bridge(), a.coordinates(), ev, date)
	if err != nil {
		return err
	}
	ctx = ctxlog.WithAttributes(ctx, "event", ev.String(), "date", date.String())
	ctxlog.Logger(ctx).Info("scheduling", "time", when, "window", a.cfg.Capture.Window.String())

	spec := a.cfg.CaptureSpec()
	spec.Event = ev.String()
	cmds, err := capture.Plan(when, a.cfg.Capture.Window, spec)
	if err != nil {
		return err
	}
	if fv.SkipPast {
		cmds = skipPast(cmds, now)
	}
	if len(cmds) <= 1 {
		return fmt.Errorf("all captures for %v on %v at %v have already passed", ev, date, when.Format(time.Kitchen))
	}
	runner := capture.NewRunner(capture.WithDryRun(fv.DryRun), capture.WithStdout(stdout))
	errs := &errors.M{}
	errs.Append(runner.Run(ctx, cmds...))
	errs.Append(a.record(ctx, ev, when, cmds, fv.DryRun))
	return errs.Err()
}

func (a *app) record(ctx context.Context, ev astronomy.Event, when time.Time, cmds []capture.Command, dryRun bool) error {
	if len(a.cfg.Journal) == 0 {
		return nil
	}
	j, err := journal.Open(ctx, a.cfg.Journal)
	if err != nil {
		return err
	}
	defer j.Close()
	lines := make([]string, len(cmds))
	for i, cmd := range cmds {
		lines[i] = cmd.String()
	}
	run, err := j.Record(ctx, journal.Run{
		Event:     ev.String(),
		Latitude:  a.place.Latitude,
		Longitude: a.place.Longitude,
		Timezone:  a.bridge().Location().String(),
		EventTime: when,
		Commands:  lines,
		DryRun:    dryRun,
	})
	if err != nil {
		return err
	}
	ctxlog.Logger(ctx).Info("recorded run", "id", run.ID.String(), "commands", len(lines))
	return nil
}
