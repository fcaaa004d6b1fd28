// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package capture plans and runs the commands used to capture images
// around a solar event.
package capture

import (
	"fmt"
	"time"
)

// Window represents a set of offsets relative to an event. The first
// offset is Start+Interval and the last is the first offset that is
// greater than or equal to End.
type Window struct {
	Start    time.Duration `yaml:"start_offset"`
	End      time.Duration `yaml:"end_offset"`
	Interval time.Duration `yaml:"interval"`
}

// DefaultWindow is ten minutes either side of the event at one minute
// intervals.
var DefaultWindow = Window{
	Start:    -10 * time.Minute,
	End:      10 * time.Minute,
	Interval: time.Minute,
}

// maxOffsets bounds the number of captures a window can generate.
const maxOffsets = 100000

func (w Window) String() string {
	return fmt.Sprintf("(%v, %v] every %v", w.Start, w.End, w.Interval)
}

// Validate returns an error if the window is empty or cannot be
// iterated over.
func (w Window) Validate() error {
	if w.Interval <= 0 {
		return fmt.Errorf("window %v: interval must be positive", w)
	}
	if w.End <= w.Start {
		return fmt.Errorf("window %v: end must be after start", w)
	}
	if n := (w.End - w.Start) / w.Interval; n > maxOffsets {
		return fmt.Errorf("window %v: too many offsets: %v > %v", w, n, maxOffsets)
	}
	return nil
}

// Offsets returns the offsets in the window. The interval is added
// before each offset is generated and generation stops once an offset
// is at or beyond End, hence a window of -10m to 10m every 1m yields
// -9m through 10m inclusive.
func (w Window) Offsets() ([]time.Duration, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	var offsets []time.Duration
	for t := w.Start; t < w.End; {
		t += w.Interval
		offsets = append(offsets, t)
	}
	return offsets, nil
}
