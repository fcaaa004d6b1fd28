// Copyright 2024 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package datetime

import (
	"fmt"
	"time"
)

// TimeOfDay represents a wall-clock time of day as the number of seconds
// since midnight. Values order the same way as the times they represent.
type TimeOfDay uint32

const (
	secondsPerDay   = 24 * 60 * 60
	lastSecondOfDay = TimeOfDay(secondsPerDay - 1)
)

// NewTimeOfDay creates a new TimeOfDay from the specified hour, minute and
// second, the result is clamped to 23:59:59.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return clampSeconds(hour*3600 + minute*60 + second)
}

func clampSeconds(secs int) TimeOfDay {
	switch {
	case secs < 0:
		return 0
	case secs >= secondsPerDay:
		return lastSecondOfDay
	}
	return TimeOfDay(secs)
}

func (t TimeOfDay) Hour() int {
	return int(t) / 3600
}

func (t TimeOfDay) Minute() int {
	return int(t) / 60 % 60
}

func (t TimeOfDay) Second() int {
	return int(t) % 60
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// Add adds delta, truncated to the second, to the TimeOfDay. The result
// is clamped to the day, ie. to 00:00:00 or 23:59:59.
func (t TimeOfDay) Add(delta time.Duration) TimeOfDay {
	return clampSeconds(int(t) + int(delta/time.Second))
}

// Duration returns the time.Duration since midnight for the TimeOfDay.
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t) * time.Second
}

// TimeOfDayFromTime returns the wall-clock TimeOfDay of t in t's location.
func TimeOfDayFromTime(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute(), t.Second())
}
