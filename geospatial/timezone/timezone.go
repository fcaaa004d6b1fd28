// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package timezone determines the timezone to use for a location, either
// the host's, a named IANA zone or one derived from the location's
// coordinates.
package timezone

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cloudeng.io/suncapture/datetime"
	"github.com/bradfitz/latlong"
)

// Auto is the zone name used to request a lookup by coordinates.
const Auto = "auto"

// ErrNoZone is wrapped by the TimezoneResolutionError returned when
// no zone can be found for a set of coordinates, typically because
// they lie in international waters.
var ErrNoZone = errors.New("no timezone found for coordinates")

// Lookup returns the IANA zone name for the specified coordinates.
func Lookup(latitude, longitude float64) (string, bool) {
	name := latlong.LookupZoneName(latitude, longitude)
	return name, len(name) > 0
}

// ForCoordinates returns the timezone for the specified coordinates.
func ForCoordinates(latitude, longitude float64) (*time.Location, error) {
	name, ok := Lookup(latitude, longitude)
	if !ok {
		return nil, &datetime.TimezoneResolutionError{
			Zone: fmt.Sprintf("%.4f,%.4f", latitude, longitude),
			Err:  ErrNoZone,
		}
	}
	return datetime.LoadZone(name)
}

// Resolve returns the timezone for name: the empty string refers to
// the host's zone (see datetime.SystemZone), Auto to the zone
// containing the specified coordinates and anything else is loaded
// as an IANA name or tzdata file.
func Resolve(name string, latitude, longitude float64) (*time.Location, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return datetime.SystemZone()
	case Auto:
		return ForCoordinates(latitude, longitude)
	}
	return datetime.LoadZone(strings.TrimSpace(name))
}
