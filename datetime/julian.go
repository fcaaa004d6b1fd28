// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package datetime

import (
	"math"
	"strconv"
	"time"
)

const (
	// J2000 is the Julian Day number of 2000-01-01 12:00:00 UTC.
	J2000 = 2451545.0

	j2000Unix    = 946728000 // 2000-01-01 12:00:00 UTC in unix seconds.
	secondsInDay = 86400
	microsInDay  = secondsInDay * 1e6
)

// JulianDay is a fractional Julian Day, that is, a count of days with the
// day boundary at noon UTC. It is stored as an offset from J2000 rather
// than as an absolute Julian Day number since a float64 holding a value
// around 2.46e6 only resolves ~40µs whereas the offset resolves well
// under a microsecond for the foreseeable future.
type JulianDay float64

// NewJulianDay returns the JulianDay for the absolute Julian Day number jd.
func NewJulianDay(jd float64) JulianDay {
	return JulianDay(jd - J2000)
}

// JD returns the absolute Julian Day number.
func (j JulianDay) JD() float64 {
	return float64(j) + J2000
}

// SinceJ2000 returns the number of days, and fraction thereof, since J2000.
func (j JulianDay) SinceJ2000() float64 {
	return float64(j)
}

// AddDays returns j offset by the specified number of days.
func (j JulianDay) AddDays(days float64) JulianDay {
	return j + JulianDay(days)
}

func (j JulianDay) String() string {
	return strconv.FormatFloat(j.JD(), 'f', 6, 64)
}

// ToJulianDay returns the JulianDay for the instant t. The location
// attached to t is irrelevant since the instant is absolute.
func ToJulianDay(t time.Time) JulianDay {
	secs := float64(t.Unix() - j2000Unix)
	return JulianDay((secs + float64(t.Nanosecond())/1e9) / secondsInDay)
}

// FromJulianDay returns the UTC instant for j rounded to the nearest
// microsecond.
func FromJulianDay(j JulianDay) time.Time {
	us := int64(math.Round(float64(j) * microsInDay))
	return time.UnixMicro(us + j2000Unix*1e6).UTC()
}
