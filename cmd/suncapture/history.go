// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"cloudeng.io/suncapture/journal"
)

type historyFlags struct {
	Limit   int  `subcmd:"limit,10,'number of runs to display'"`
	Verbose bool `subcmd:"verbose,false,'display the commands for each run'"`
}

func historyCmd(ctx context.Context, values any, _ []string) error {
	fv := values.(*historyFlags)
	ctx, a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	if len(a.cfg.Journal) == 0 {
		return fmt.Errorf("no journal configured")
	}
	j, err := journal.Open(ctx, a.cfg.Journal)
	if err != nil {
		return err
	}
	defer j.Close()
	runs, err := j.Recent(ctx, fv.Limit)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Fprintln(stdout, r.String())
		if fv.Verbose {
			for _, c := range r.Commands {
				fmt.Fprintf(stdout, "    %v\n", c)
			}
		}
	}
	return nil
}
