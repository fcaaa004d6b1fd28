// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package config_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"cloudeng.io/file"
	"cloudeng.io/suncapture/config"
)

type testStruct struct {
	Field []int
	Count int
}

func parseError(t *testing.T, err error) *config.ParseError {
	t.Helper()
	var pe *config.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected a *config.ParseError, got %T: %v", err, err)
	}
	return pe
}

func TestYAMLErrors(t *testing.T) {
	for i, tc := range []struct {
		input   string
		problem config.Problem
		errMsg  string
	}{
		{`xxx: - err`,
			config.Problem{Message: "block sequence entries are not allowed in this context"},
			"block sequence entries are not allowed in this context"},
		{`
xxx: - err
`,
			config.Problem{Line: 2, Source: "xxx: - err", Message: "block sequence entries are not allowed in this context"},
			`line 2: "xxx: - err": block sequence entries are not allowed in this context`},
		{`
	tab: 2`,
			config.Problem{Line: 2, Source: "\ttab: 2", Message: "found character that cannot start any token"},
			`line 2: "\ttab: 2": found character that cannot start any token`},
		{`
field:
  ts1: [1,2]`,
			config.Problem{Line: 3, Source: "  ts1: [1,2]", Message: "cannot unmarshal !!map into []int"},
			`line 3: "  ts1: [1,2]": cannot unmarshal !!map into []int`},
		{`
field: [1,2]
unknown: [3,4]
`,
			config.Problem{Line: 3, Source: "unknown: [3,4]", Message: "field unknown not found in type config_test.testStruct"},
			`line 3: "unknown: [3,4]": field unknown not found in type config_test.testStruct`},
	} {
		var ts testStruct
		err := config.ParseYAML([]byte(tc.input), &ts)
		pe := parseError(t, err)
		if got, want := pe.Problems, []config.Problem{tc.problem}; !reflect.DeepEqual(got, want) {
			t.Errorf("%v: got %#v, want %#v", i, got, want)
		}
		if got, want := err.Error(), tc.errMsg; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
	}
}

func TestYAMLMultipleErrors(t *testing.T) {
	var ts testStruct
	err := config.ParseYAML([]byte("field: x\ncount: y\n"), &ts)
	pe := parseError(t, err)
	if got, want := len(pe.Problems), 2; got != want {
		t.Fatalf("got %v, want %v: %v", got, want, err)
	}
	for i, p := range pe.Problems {
		if got, want := p.Line, i+1; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	}
	if !strings.HasPrefix(err.Error(), "yaml errors:\n  line 1: ") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestYAMLEmpty(t *testing.T) {
	ts := testStruct{Count: 3}
	if err := config.ParseYAML([]byte("# nothing to see here\n"), &ts); err != nil {
		t.Fatal(err)
	}
	if got, want := ts.Count, 3; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseFile(t *testing.T) {
	ctx := file.ContextWithFS(context.Background(), fstest.MapFS{
		"cfg.yaml": &fstest.MapFile{Data: []byte("field: [1, 2, 3]\n")},
		"bad.yaml": &fstest.MapFile{Data: []byte("field: [1, 2, 3]\ncolour: blue\n")},
	})
	var ts testStruct
	if err := config.ParseYAMLFile(ctx, "cfg.yaml", &ts); err != nil {
		t.Fatal(err)
	}
	if got, want := len(ts.Field), 3; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	err := config.ParseYAMLFile(ctx, "bad.yaml", &ts)
	pe := parseError(t, err)
	if got, want := pe.Filename, "bad.yaml"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if !strings.HasPrefix(err.Error(), `bad.yaml: line 2: "colour: blue": field colour not found`) {
		t.Errorf("unexpected error message: %v", err)
	}
	if err := config.ParseYAMLFile(ctx, "", &ts); err == nil {
		t.Errorf("expected an error")
	}
	if err := config.ParseYAMLFile(ctx, "missing.yaml", &ts); err == nil {
		t.Errorf("expected an error")
	}
}
