// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cloudeng.io/cmdutil"
	"cloudeng.io/suncapture/config"
	"cloudeng.io/suncapture/datetime"
	"cloudeng.io/suncapture/geospatial/astronomy"
)

// app holds the state shared by all commands.
type app struct {
	cfg    config.Config
	place  datetime.Place
	logger *config.Logger
}

func configFile(name string) (string, error) {
	name = os.ExpandEnv(name)
	if len(name) == 0 {
		return "", nil
	}
	if _, err := os.Stat(name); err != nil {
		home, _ := os.UserHomeDir()
		if os.IsNotExist(err) && name == filepath.Join(home, ".suncapture.yaml") {
			// The default configuration file is optional.
			return "", nil
		}
		return "", err
	}
	return name, nil
}

// newApp loads the configuration, creates the logger and resolves the
// location, the returned context carries the logger.
func newApp(ctx context.Context) (context.Context, *app, error) {
	filename, err := configFile(globalFlags.Config)
	if err != nil {
		return ctx, nil, err
	}
	var envFiles []string
	if len(globalFlags.EnvFile) > 0 {
		envFiles = append(envFiles, os.ExpandEnv(globalFlags.EnvFile))
	}
	cfg, err := config.Load(ctx, filename, envFiles...)
	if err != nil {
		return ctx, nil, err
	}
	logger, err := cfg.Logging.NewLogger()
	if err != nil {
		return ctx, nil, err
	}
	ctx = logger.Context(ctx)
	cmdutil.LogBuildInfo(logger.Logger)
	place, err := cfg.Location.Resolve(ctx)
	if err != nil {
		logger.Close()
		return ctx, nil, err
	}
	logger.Debug("configuration", "file", filename, "place", place.String(), "event", cfg.Event)
	return ctx, &app{cfg: cfg, place: place, logger: logger}, nil
}

func (a *app) Close() error {
	return a.logger.Close()
}

func (a *app) bridge() datetime.Bridge {
	return a.place.Bridge()
}

func (a *app) coordinates() astronomy.Coordinates {
	return astronomy.CoordinatesOf(a.place)
}

// date returns the date specified in args or today's date in the
// location's timezone.
func (a *app) date(args []string, now time.Time) (datetime.CalendarDate, error) {
	if len(args) == 0 || len(args[0]) == 0 {
		return datetime.CalendarDateFromTime(a.bridge().ToLocal(now)), nil
	}
	cd, err := datetime.ParseCalendarDate(args[0])
	if err != nil {
		return datetime.CalendarDate{}, fmt.Errorf("invalid date %q: %w", args[0], err)
	}
	return cd, nil
}

// event returns the event named by name, or the configured event if
// name is empty.
func (a *app) event(name string) (astronomy.Event, error) {
	if len(name) > 0 {
		return astronomy.ParseEvent(name)
	}
	return a.cfg.EventType()
}
