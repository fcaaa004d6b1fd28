// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package astronomy

import (
	"errors"

	"cloudeng.io/suncapture/datetime"
)

// DynamicEvent implements datetime.DynamicTimeOfDay for sunrise, solar noon
// and sunset using the sunrise equation. On days without a sunrise or
// sunset the time of day is clamped: during polar day sunrise is
// 00:00:00 and sunset 23:59:59, during polar night both collapse to
// solar noon.
type DynamicEvent struct {
	Event Event
}

func (d DynamicEvent) Name() string {
	return d.Event.String()
}

func (d DynamicEvent) Evaluate(cd datetime.CalendarDate, place datetime.Place) datetime.TimeOfDay {
	b := place.Bridge()
	c := CoordinatesOf(place)
	when, err := EventOn(b, c, d.Event, cd)
	if err == nil {
		return datetime.TimeOfDayFromTime(when)
	}
	switch {
	case errors.Is(err, ErrPolarDay) && d.Event == Sunrise:
		return datetime.NewTimeOfDay(0, 0, 0)
	case errors.Is(err, ErrPolarDay):
		return datetime.NewTimeOfDay(23, 59, 59)
	case errors.Is(err, ErrPolarNight):
		if noon, err := EventOn(b, c, SolarNoon, cd); err == nil {
			return datetime.TimeOfDayFromTime(noon)
		}
	}
	return datetime.NewTimeOfDay(0, 0, 0)
}
