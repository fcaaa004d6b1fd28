// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"cloudeng.io/file"
	"gopkg.in/yaml.v3"
)

// Problem is a single yaml error together with the source line it
// refers to. Line is zero if the parser did not report one.
type Problem struct {
	Line    int
	Source  string
	Message string
}

func (p Problem) String() string {
	if p.Line == 0 {
		return p.Message
	}
	return fmt.Sprintf("line %d: %q: %s", p.Line, p.Source, p.Message)
}

// ParseError is returned by ParseYAML and ParseYAMLFile. The line
// numbers reported by the yaml parser may be inaccurate, in particular
// for lists indented with tabs.
type ParseError struct {
	Filename string
	Problems []Problem
	err      error
}

func (e *ParseError) Error() string {
	var out strings.Builder
	if len(e.Filename) > 0 {
		out.WriteString(e.Filename)
		out.WriteString(": ")
	}
	if len(e.Problems) == 1 {
		out.WriteString(e.Problems[0].String())
		return out.String()
	}
	out.WriteString("yaml errors:")
	for _, p := range e.Problems {
		out.WriteString("\n  ")
		out.WriteString(p.String())
	}
	return out.String()
}

func (e *ParseError) Unwrap() error {
	return e.err
}

var problemRE = regexp.MustCompile(`^line (\d+): (.*)$`)

func newParseError(filename string, spec []byte, err error) *ParseError {
	var msgs []string
	var te *yaml.TypeError
	if errors.As(err, &te) {
		msgs = te.Errors
	} else {
		msgs = []string{strings.TrimPrefix(err.Error(), "yaml: ")}
	}
	lines := bytes.Split(spec, []byte{'\n'})
	pe := &ParseError{Filename: filename, err: err}
	for _, msg := range msgs {
		msg = strings.TrimSpace(msg)
		p := Problem{Message: msg}
		if m := problemRE.FindStringSubmatch(msg); len(m) == 3 {
			if l, err := strconv.Atoi(m[1]); err == nil && l >= 1 && l <= len(lines) {
				p = Problem{Line: l, Source: string(lines[l-1]), Message: m[2]}
			}
		}
		pe.Problems = append(pe.Problems, p)
	}
	return pe
}

// ParseYAML parses the yaml in spec into cfg, unknown fields are
// reported as errors. An empty spec leaves cfg unchanged. Errors are
// of type *ParseError.
func ParseYAML(spec []byte, cfg any) error {
	return parse("", spec, cfg)
}

func parse(filename string, spec []byte, cfg any) error {
	dec := yaml.NewDecoder(bytes.NewReader(spec))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return newParseError(filename, spec, err)
	}
	return nil
}

// ParseYAMLFile reads filename using file.FSReadFile, which allows for
// the file to be read from an fs.ReadFileFS stored in the context
// rather than the local filesystem, and parses it as per ParseYAML.
func ParseYAMLFile(ctx context.Context, filename string, cfg any) error {
	if len(filename) == 0 {
		return fmt.Errorf("no config file specified")
	}
	spec, err := file.FSReadFile(ctx, filename)
	if err != nil {
		return err
	}
	return parse(filename, spec, cfg)
}
