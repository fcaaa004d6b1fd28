// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package astronomy

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"cloudeng.io/suncapture/datetime"
)

// ErrInvalidCoordinates is returned for latitudes or longitudes that are
// not finite or are out of range.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Coordinates represents an observer's position in degrees, latitude
// is positive north of the equator and longitude positive east of
// Greenwich.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// CoordinatesOf returns the Coordinates of place.
func CoordinatesOf(place datetime.Place) Coordinates {
	return Coordinates{Latitude: place.Latitude, Longitude: place.Longitude}
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Latitude, c.Longitude)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate returns an error wrapping ErrInvalidCoordinates if the latitude
// is not within [-90, 90] or the longitude is not within [-180, 180].
func (c Coordinates) Validate() error {
	var problems []string
	if !finite(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		problems = append(problems, fmt.Sprintf("latitude %v is not in the range [-90, 90]", c.Latitude))
	}
	if !finite(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		problems = append(problems, fmt.Sprintf("longitude %v is not in the range [-180, 180]", c.Longitude))
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidCoordinates, strings.Join(problems, ", "))
}
