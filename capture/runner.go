// Copyright 2024 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package capture

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"cloudeng.io/errors"
	"cloudeng.io/logging/ctxlog"
)

// Runner executes the commands returned by Plan.
type Runner struct {
	opts options
}

type options struct {
	dryRun         bool
	workingDir     string
	stdout, stderr io.Writer
	now            func() time.Time
}

// Option represents an option to NewRunner.
type Option func(*options)

// WithDryRun writes the commands that would be executed to the
// runner's stdout but does not execute them.
func WithDryRun(v bool) Option {
	return func(o *options) {
		o.dryRun = v
	}
}

// WithWorkingDir sets the working directory for the commands.
func WithWorkingDir(v string) Option {
	return func(o *options) {
		o.workingDir = v
	}
}

// WithStdout sets the writer to which the standard output of the
// commands, and dry run output, will be written.
func WithStdout(v io.Writer) Option {
	return func(o *options) {
		o.stdout = v
	}
}

// WithStderr sets the writer to which the standard error of the
// commands will be written.
func WithStderr(v io.Writer) Option {
	return func(o *options) {
		o.stderr = v
	}
}

// WithClock sets the function used to obtain the current time, the
// default is time.Now.
func WithClock(v func() time.Time) Option {
	return func(o *options) {
		o.now = v
	}
}

// NewRunner creates a new Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{}
	r.opts.stderr = os.Stderr
	r.opts.stdout = os.Stdout
	r.opts.now = time.Now
	for _, o := range opts {
		o(&r.opts)
	}
	return r
}

// Run executes the supplied commands in order. Commands with a schedule
// are handed to the scheduling command immediately, all others wait
// until their time has arrived. A failure to create a directory is
// returned immediately, capture failures are accumulated and returned
// once all commands have been run.
func (r *Runner) Run(ctx context.Context, cmds ...Command) error {
	if len(cmds) == 0 {
		return fmt.Errorf("no commands to run")
	}
	logger := ctxlog.Logger(ctx)
	errs := &errors.M{}
	for _, cmd := range cmds {
		if r.opts.dryRun {
			fmt.Fprintln(r.opts.stdout, cmd.String())
			continue
		}
		switch cmd.Kind {
		case MakeDirectory:
			logger.Debug("mkdir", "dir", cmd.Args[0])
			if err := os.MkdirAll(cmd.Args[0], 0o755); err != nil {
				return err
			}
		case Capture:
			if err := r.capture(ctx, cmd); err != nil {
				if ctx.Err() != nil {
					errs.Append(ctx.Err())
					return errs.Err()
				}
				logger.Warn("capture failed", "at", cmd.At, "offset", cmd.Offset, "command", cmd.String(), "error", err)
				errs.Append(fmt.Errorf("%v: %w", cmd.At.Format(time.RFC3339), err))
				continue
			}
			logger.Info("capture", "at", cmd.At, "offset", cmd.Offset, "scheduled", len(cmd.Schedule) > 0)
		default:
			return fmt.Errorf("unsupported command: %v", cmd.Kind)
		}
	}
	return errs.Err()
}

func (r *Runner) capture(ctx context.Context, cmd Command) error {
	if len(cmd.Args) == 0 {
		return fmt.Errorf("empty command")
	}
	if len(cmd.Schedule) > 0 {
		line := ShellQuote(cmd.Args...) + "\n"
		return r.exec(ctx, cmd.Schedule, strings.NewReader(line))
	}
	if err := r.waitUntil(ctx, cmd.At); err != nil {
		return err
	}
	return r.exec(ctx, cmd.Args, nil)
}

func (r *Runner) waitUntil(ctx context.Context, when time.Time) error {
	d := when.Sub(r.opts.now())
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (r *Runner) exec(ctx context.Context, args []string, stdin io.Reader) error {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = r.opts.workingDir
	cmd.Stdin = stdin
	cmd.Stdout = r.opts.stdout
	cmd.Stderr = r.opts.stderr
	return cmd.Run()
}
