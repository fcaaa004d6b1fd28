// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"time"

	"cloudeng.io/errors"
	"cloudeng.io/logging/ctxlog"
	"cloudeng.io/suncapture/capture"
	"cloudeng.io/suncapture/datetime"
	"cloudeng.io/suncapture/datetime/schedule"
	"cloudeng.io/suncapture/geospatial/astronomy"
)

type watchFlags struct {
	Event    string `subcmd:"event,,'event to capture, defaults to the configured event'"`
	Days     int    `subcmd:"days,0,'number of days to capture for, zero to run until interrupted, or for a single day with --dry-run'"`
	DryRun   bool   `subcmd:"dry-run,false,'print the commands that would be run without running them'"`
	SkipPast bool   `subcmd:"skip-past,true,'skip captures whose time has already passed'"`
}

// captureActions returns a single action that repeats once per offset
// in the window, starting at the first offset from the event.
func captureActions(ev astronomy.Event, w capture.Window) (schedule.ActionSpecs[astronomy.Event], error) {
	offsets, err := w.Offsets()
	if err != nil {
		return nil, err
	}
	action := schedule.ActionSpec[astronomy.Event]{
		Name: ev.String(),
		Dynamic: schedule.DynamicTimeOfDaySpec{
			Due:    astronomy.DynamicEvent{Event: ev},
			Offset: offsets[0],
		},
		T: ev,
	}
	if len(offsets) > 1 {
		action.Repeat = schedule.RepeatSpec{Interval: w.Interval, Repeats: len(offsets) - 1}
	}
	return schedule.ActionSpecs[astronomy.Event]{action}, nil
}

// captureDay returns the commands for the captures on the specified
// day, including those that fall after midnight.
func (a *app) captureDay(day datetime.CalendarDate, actions schedule.ActionSpecs[astronomy.Event], spec capture.Spec) (time.Time, []capture.Command, error) {
	ev := actions[0].T
	when, err := astronomy.EventOn(a.bridge(), a.coordinates(), ev, day)
	if err != nil {
		return time.Time{}, nil, err
	}
	cmds := []capture.Command{spec.MakeDirectory(when)}
	scheduled := schedule.Scheduled[astronomy.Event]{Date: day, Specs: actions}
	for active := range scheduled.Active(a.place) {
		cmd, err := spec.Capture(when, active.Offset)
		if err != nil {
			return when, nil, err
		}
		cmds = append(cmds, cmd)
	}
	return when, cmds, nil
}

// watchCmd runs the captures for each day in-process, the at command
// is not used. Days without the event, ie. polar day or night, are
// skipped. A dry run never waits, so it is limited to a single day
// unless a number of days is given.
func watchCmd(ctx context.Context, values any, args []string) error {
	fv := values.(*watchFlags)
	ctx, a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	from, err := a.date(args, time.Now())
	if err != nil {
		return err
	}
	ev, err := a.event(fv.Event)
	if err != nil {
		return err
	}
	actions, err := captureActions(ev, a.cfg.Capture.Window)
	if err != nil {
		return err
	}
	spec := a.cfg.CaptureSpec()
	spec.Event = ev.String()
	spec.At = nil

	logger := ctxlog.Logger(ctx)
	runner := capture.NewRunner(capture.WithDryRun(fv.DryRun), capture.WithStdout(stdout))
	days := fv.Days
	if fv.DryRun && days <= 0 {
		days = 1
	}
	errs := &errors.M{}
	for day := range schedule.Days(from, days) {
		if err := ctx.Err(); err != nil {
			errs.Append(err)
			break
		}
		when, cmds, err := a.captureDay(day, actions, spec)
		if err != nil {
			var de *astronomy.DomainError
			if errors.As(err, &de) {
				logger.Info("no event", "date", day.String(), "event", ev.String(), "condition", de.Condition.String())
				continue
			}
			errs.Append(err)
			break
		}
		if fv.SkipPast {
			cmds = skipPast(cmds, time.Now())
		}
		if len(cmds) <= 1 {
			logger.Info("captures have passed", "date", day.String(), "event", ev.String(), "time", when)
			continue
		}
		dctx := ctxlog.WithAttributes(ctx, "event", ev.String(), "date", day.String())
		ctxlog.Logger(dctx).Info("watching", "time", when, "captures", len(cmds)-1)
		if err := runner.Run(dctx, cmds...); err != nil {
			errs.Append(err)
			if ctx.Err() != nil {
				break
			}
		}
		errs.Append(a.record(dctx, ev, when, cmds, fv.DryRun))
	}
	return errs.Err()
}
