// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package astronomy

import (
	"fmt"
	"strings"
)

// Event represents a solar event.
type Event int

const (
	Sunrise Event = iota
	SolarNoon
	Sunset
)

// Events lists all of the supported events in the order in which they
// occur during the day.
var Events = []Event{Sunrise, SolarNoon, Sunset}

func (e Event) String() string {
	switch e {
	case Sunrise:
		return "sunrise"
	case SolarNoon:
		return "noon"
	case Sunset:
		return "sunset"
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// ParseEvent parses the name of an event: sunrise, noon (or solar-noon)
// and sunset, case is ignored.
func ParseEvent(val string) (Event, error) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "sunrise", "rise":
		return Sunrise, nil
	case "noon", "solar-noon", "solarnoon", "solar_noon", "transit":
		return SolarNoon, nil
	case "sunset", "set":
		return Sunset, nil
	}
	return 0, fmt.Errorf("unknown event %q, expected one of sunrise, noon or sunset", val)
}
