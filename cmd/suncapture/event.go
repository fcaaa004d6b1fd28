// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloudeng.io/logging/ctxlog"
	"cloudeng.io/suncapture/datetime"
	"cloudeng.io/suncapture/geospatial/astronomy"
)

type eventFlags struct {
	Event     string `subcmd:"event,,'event to display: sunrise, noon or sunset, defaults to the configured event'"`
	All       bool   `subcmd:"all,false,'display all events'"`
	Reference bool   `subcmd:"reference,false,'also display the time computed by an independent algorithm'"`
	On        string `subcmd:"on,,'use the date of the next solstice or equinox: march, june, september or december'"`
}

func eventCmd(ctx context.Context, values any, args []string) error {
	fv := values.(*eventFlags)
	ctx, a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	date, err := a.date(args, time.Now())
	if err != nil {
		return err
	}
	if len(fv.On) > 0 {
		season, err := astronomy.ParseSeason(fv.On)
		if err != nil {
			return err
		}
		date = season.Next(date)
	}
	events := astronomy.Events
	if !fv.All {
		ev, err := a.event(fv.Event)
		if err != nil {
			return err
		}
		events = []astronomy.Event{ev}
	}
	return printEvents(ctx, a, date, events, fv.Reference)
}

func printEvents(ctx context.Context, a *app, date datetime.CalendarDate, events []astronomy.Event, reference bool) error {
	logger := ctxlog.Logger(ctx)
	fmt.Fprintf(stdout, "%v at %v\n", date, a.place)
	for _, ev := range events {
		when, err := astronomy.EventOn(a.bridge(), a.coordinates(), ev, date)
		if err != nil {
			var de *astronomy.DomainError
			if errors.As(err, &de) {
				fmt.Fprintf(stdout, "%-8v %v\n", ev, de.Condition)
				logger.Info("no event", "event", ev.String(), "date", date.String(), "condition", de.Condition.String())
				continue
			}
			return err
		}
		logger.Info("event", "event", ev.String(), "date", date.String(), "time", when)
		line := fmt.Sprintf("%-8v %v", ev, when.Format(time.DateTime+" MST"))
		if reference {
			ref, err := astronomy.Reference(ev, date, a.place)
			if err != nil {
				line += " (reference: n/a)"
			} else {
				line += fmt.Sprintf(" (reference: %v, delta %v)", ref.Format(time.TimeOnly), when.Sub(ref).Round(time.Second))
			}
		}
		fmt.Fprintln(stdout, line)
	}
	return nil
}
