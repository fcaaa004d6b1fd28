// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/alessio/shellescape"
)

// Kind identifies the type of a Command.
type Kind int

const (
	// MakeDirectory creates the directory named by the command's
	// single argument.
	MakeDirectory Kind = iota
	// Capture runs, or schedules, the command's arguments.
	Capture
)

func (k Kind) String() string {
	switch k {
	case MakeDirectory:
		return "mkdir"
	case Capture:
		return "capture"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// DefaultCommand captures a single image with the Raspberry Pi camera.
var DefaultCommand = []string{
	"raspistill",
	"-o", `{{.Dir}}/{{.Time.Format "20060102"}}{{printf "%+d" .Offset}}.jpg`,
	"-t", "1",
	"-n",
}

// DefaultAt schedules a command with at(1) at the minute of the capture.
var DefaultAt = []string{"at", "-t", `{{.Time.Format "200601021504"}}`}

// Spec describes the commands to be planned for an event.
type Spec struct {
	// Event is the name of the event, eg. sunset.
	Event string
	// Directory is the directory that captures are written to.
	Directory string
	// PerYearDirectory, if set, appends the year of the event to
	// Directory.
	PerYearDirectory bool
	// Command is the capture command line, each argument is a
	// text/template expanded with TemplateVars followed by environment
	// variable expansion.
	Command []string
	// At, if not empty, is the command line used to schedule each
	// capture. It is expanded as per Command and the capture command
	// line is written to its standard input.
	At []string
	// Mapping is used for environment variable expansion, os.Getenv
	// is used if nil.
	Mapping func(string) string
}

// TemplateVars are the variables available to command line templates.
type TemplateVars struct {
	Dir       string    // Output directory.
	Time      time.Time // Time of the capture.
	EventTime time.Time // Time of the event.
	Event     string    // Name of the event.
	Offset    int       // Offset of the capture from the event in minutes.
	Seconds   int       // Offset of the capture from the event in seconds.
}

// Command describes a single step of a plan.
type Command struct {
	Kind     Kind
	At       time.Time
	Offset   time.Duration
	Args     []string
	Schedule []string
}

// String returns a shell command line equivalent to the command.
func (c Command) String() string {
	if c.Kind == MakeDirectory {
		return "mkdir -p " + ShellQuote(c.Args...)
	}
	line := ShellQuote(c.Args...)
	if len(c.Schedule) == 0 {
		return line
	}
	return "echo " + ShellQuote(line) + " | " + ShellQuote(c.Schedule...)
}

// OutputDirectory returns the directory that captures for an event at t
// are written to.
func (s Spec) OutputDirectory(t time.Time) string {
	if s.PerYearDirectory {
		return filepath.Join(s.Directory, strconv.Itoa(t.Year()))
	}
	return s.Directory
}

// Plan returns the commands required to capture the event at the
// offsets in w. The first command creates the output directory.
func Plan(event time.Time, w Window, spec Spec) ([]Command, error) {
	if len(spec.Command) == 0 {
		return nil, fmt.Errorf("no capture command specified")
	}
	if len(spec.Directory) == 0 {
		return nil, fmt.Errorf("no capture directory specified")
	}
	offsets, err := w.Offsets()
	if err != nil {
		return nil, err
	}
	mapping := spec.mapping()
	cmds := make([]Command, 0, len(offsets)+1)
	cmds = append(cmds, Command{Kind: MakeDirectory, Args: []string{spec.expandedDirectory(event, mapping)}})
	for _, offset := range offsets {
		cmd, err := spec.capture(event, offset, mapping)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func (s Spec) mapping() func(string) string {
	if s.Mapping == nil {
		return os.Getenv
	}
	return s.Mapping
}

func (s Spec) expandedDirectory(event time.Time, mapping func(string) string) string {
	return os.Expand(s.OutputDirectory(event), mapping)
}

// Capture returns the capture command for the specified event time and
// offset, the command is to be run at event+offset.
func (s Spec) Capture(event time.Time, offset time.Duration) (Command, error) {
	if len(s.Command) == 0 {
		return Command{}, fmt.Errorf("no capture command specified")
	}
	return s.capture(event, offset, s.mapping())
}

// MakeDirectory returns the command that creates the output directory
// for the specified event time.
func (s Spec) MakeDirectory(event time.Time) Command {
	return Command{Kind: MakeDirectory, Args: []string{s.expandedDirectory(event, s.mapping())}}
}

func (s Spec) capture(event time.Time, offset time.Duration, mapping func(string) string) (Command, error) {
	at := event.Add(offset)
	vars := TemplateVars{
		Dir:       s.expandedDirectory(event, mapping),
		Time:      at,
		EventTime: event,
		Event:     s.Event,
		Offset:    int(offset / time.Minute),
		Seconds:   int(offset / time.Second),
	}
	args, err := ExpandCommandLine(vars, mapping, s.Command...)
	if err != nil {
		return Command{}, fmt.Errorf("capture command: %w", err)
	}
	sched, err := ExpandCommandLine(vars, mapping, s.At...)
	if err != nil {
		return Command{}, fmt.Errorf("at command: %w", err)
	}
	return Command{
		Kind:     Capture,
		At:       at,
		Offset:   offset,
		Args:     args,
		Schedule: sched,
	}, nil
}

// ExpandCommandLine expands the supplied command line arguments using
// text/template with vars followed by environment variable expansion
// using mapping.
func ExpandCommandLine(vars any, mapping func(string) string, args ...string) ([]string, error) {
	if len(args) == 0 {
		return nil, nil
	}
	expanded := make([]string, 0, len(args))
	for _, arg := range args {
		tpl, err := template.New("arg").Option("missingkey=error").Parse(arg)
		if err != nil {
			return nil, err
		}
		var out strings.Builder
		if err := tpl.Execute(&out, vars); err != nil {
			return nil, err
		}
		expanded = append(expanded, os.Expand(out.String(), mapping))
	}
	return expanded, nil
}

// ShellQuote returns args joined by spaces with each argument quoted,
// if necessary, for use with a POSIX shell.
func ShellQuote(args ...string) string {
	return shellescape.QuoteCommand(args)
}
