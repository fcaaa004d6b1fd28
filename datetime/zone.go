// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package datetime

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// TimezoneResolutionError is returned when a timezone cannot be
// determined, either for the host or for a named zone.
type TimezoneResolutionError struct {
	Zone string
	Err  error
}

func (e *TimezoneResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve timezone %q: %v", e.Zone, e.Err)
}

func (e *TimezoneResolutionError) Unwrap() error {
	return e.Err
}

var localtimeFile = "/etc/localtime"

// SystemZone returns the timezone configured for the host. The TZ
// environment variable takes precedence, an empty TZ means UTC and a
// leading ':' is ignored. Otherwise, on unix systems, the zone is read
// from /etc/localtime; unlike time.Local, which silently falls back to UTC,
// a missing /etc/localtime results in a TimezoneResolutionError.
func SystemZone() (*time.Location, error) {
	if tz, ok := os.LookupEnv("TZ"); ok {
		name := strings.TrimPrefix(tz, ":")
		if len(name) == 0 {
			return time.UTC, nil
		}
		return LoadZone(name)
	}
	if runtime.GOOS == "windows" {
		return time.Local, nil
	}
	data, err := os.ReadFile(localtimeFile)
	if err != nil {
		return nil, &TimezoneResolutionError{Zone: localtimeFile, Err: err}
	}
	if time.Local.String() != "UTC" {
		return time.Local, nil
	}
	loc, err := time.LoadLocationFromTZData("Local", data)
	if err != nil {
		return nil, &TimezoneResolutionError{Zone: localtimeFile, Err: err}
	}
	return loc, nil
}

// LoadZone loads the named IANA zone, or, if name is an absolute path,
// the tzdata file it refers to. Errors are returned as a
// TimezoneResolutionError.
func LoadZone(name string) (*time.Location, error) {
	if filepath.IsAbs(name) {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, &TimezoneResolutionError{Zone: name, Err: err}
		}
		loc, err := time.LoadLocationFromTZData(filepath.Base(name), data)
		if err != nil {
			return nil, &TimezoneResolutionError{Zone: name, Err: err}
		}
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &TimezoneResolutionError{Zone: name, Err: err}
	}
	return loc, nil
}

// Bridge converts between wall-clock time in a specific timezone, UTC and
// Julian Days.
type Bridge struct {
	loc *time.Location
}

// NewBridge returns a Bridge for loc, a nil loc is treated as UTC.
func NewBridge(loc *time.Location) Bridge {
	return Bridge{loc: loc}
}

// SystemBridge returns a Bridge for the host's timezone as determined
// by SystemZone.
func SystemBridge() (Bridge, error) {
	loc, err := SystemZone()
	if err != nil {
		return Bridge{}, err
	}
	return NewBridge(loc), nil
}

// Location returns the bridge's timezone.
func (b Bridge) Location() *time.Location {
	if b.loc == nil {
		return time.UTC
	}
	return b.loc
}

// ToUTC interprets the wall-clock reading of local (year, month, day,
// hour, minute, second, nanosecond) in the bridge's timezone, ignoring
// whatever location is attached to local, and returns the same instant
// in UTC. Wall-clock times that fall in a daylight saving gap or overlap
// are resolved as per time.Date.
func (b Bridge) ToUTC(local time.Time) time.Time {
	y, m, d := local.Date()
	hh, mm, ss := local.Clock()
	return time.Date(y, m, d, hh, mm, ss, local.Nanosecond(), b.Location()).UTC()
}

// ToLocal returns utc in the bridge's timezone. The offset used is the one
// in force at utc itself and not at the time of the call.
func (b Bridge) ToLocal(utc time.Time) time.Time {
	return utc.In(b.Location())
}

// ToJulianDay returns the JulianDay for the local wall-clock time.
func (b Bridge) ToJulianDay(local time.Time) JulianDay {
	return ToJulianDay(b.ToUTC(local))
}

// FromJulianDay returns the local time for the JulianDay.
func (b Bridge) FromJulianDay(j JulianDay) time.Time {
	return b.ToLocal(FromJulianDay(j))
}
