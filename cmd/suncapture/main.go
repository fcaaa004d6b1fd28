// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Command suncapture computes the times of sunrise, solar noon and sunset
// and schedules image captures around them.
package main

import (
	"context"
	"io"
	"os"
	_ "time/tzdata"

	"cloudeng.io/cmdutil/subcmd"
)

const cmdSpec = `name: suncapture
summary: compute sunrise, solar noon and sunset and schedule captures around them
commands:
  - name: event
    summary: print the time of the configured event for today or the specified date (YYYY-MM-DD)
    arguments:
      - '[date]'
  - name: schedule
    summary: schedule captures around the configured event for today or the specified date
    arguments:
      - '[date]'
  - name: watch
    summary: run captures around the configured event every day, starting today or at the specified date
    arguments:
      - '[date]'
  - name: list
    summary: list captured files, oldest first
  - name: link-latest
    summary: point the latest link at the most recent capture
  - name: purge
    summary: remove captures older than the configured retention period
  - name: history
    summary: list recent scheduling runs
`

// GlobalFlags are common to all commands.
type GlobalFlags struct {
	Config  string `subcmd:"config,$HOME/.suncapture.yaml,'configuration file'"`
	EnvFile string `subcmd:"env-file,,'.env file with SUNCAPTURE_ environment variable overrides'"`
}

var (
	globalFlags GlobalFlags
	stdout      io.Writer = os.Stdout
)

func cli() *subcmd.CommandSetYAML {
	cmdSet := subcmd.MustFromYAML(cmdSpec)
	cmdSet.Set("event").MustRunnerAndFlags(eventCmd,
		subcmd.MustRegisteredFlagSet(&eventFlags{}))
	cmdSet.Set("schedule").MustRunnerAndFlags(scheduleCmd,
		subcmd.MustRegisteredFlagSet(&scheduleFlags{}))
	cmdSet.Set("watch").MustRunnerAndFlags(watchCmd,
		subcmd.MustRegisteredFlagSet(&watchFlags{}))
	cmdSet.Set("list").MustRunnerAndFlags(listCmd,
		subcmd.MustRegisteredFlagSet(&struct{}{}))
	cmdSet.Set("link-latest").MustRunnerAndFlags(linkLatestCmd,
		subcmd.MustRegisteredFlagSet(&struct{}{}))
	cmdSet.Set("purge").MustRunnerAndFlags(purgeCmd,
		subcmd.MustRegisteredFlagSet(&purgeFlags{}))
	cmdSet.Set("history").MustRunnerAndFlags(historyCmd,
		subcmd.MustRegisteredFlagSet(&historyFlags{}))
	gfs := subcmd.GlobalFlagSet().MustRegisterFlagStruct(&globalFlags, nil, nil)
	cmdSet.WithGlobalFlags(gfs)
	return cmdSet
}

func main() {
	subcmd.Dispatch(context.Background(), cli())
}
