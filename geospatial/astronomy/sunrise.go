// Copyright 2024 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package astronomy

import (
	"fmt"
	"time"

	"cloudeng.io/suncapture/datetime"
	"github.com/nathan-osman/go-sunrise"
)

// SunRise returns the time of sunrise and sunset for the specified
// date, latitude and longitude as computed by github.com/nathan-osman/go-sunrise.
// The returned times are in UTC and are zero if the sun does not rise or set.
func SunRise(date datetime.CalendarDate, lat, long float64) (rise, set time.Time) {
	rise, set = sunrise.SunriseSunset(
		lat, long,
		date.Year, time.Month(date.Month), date.Day)
	return
}

// SunRiseAndSet is like SunRise but returns times in the place's timezone.
func SunRiseAndSet(date datetime.CalendarDate, place datetime.Place) (rise, set time.Time) {
	rise, set = SunRise(date, place.Latitude, place.Longitude)
	b := place.Bridge()
	return b.ToLocal(rise), b.ToLocal(set)
}

// ApparentSolarNoon returns the midpoint between sunrise and sunset as
// computed by SunRise in the place's timezone.
func ApparentSolarNoon(date datetime.CalendarDate, place datetime.Place) time.Time {
	rise, set := SunRiseAndSet(date, place)
	return rise.Add(set.Sub(rise) / 2)
}

// Reference returns the time of the event as computed by SunRise, it is
// an independent implementation that is useful for cross-checking
// LocalEventTime.
func Reference(e Event, date datetime.CalendarDate, place datetime.Place) (time.Time, error) {
	rise, set := SunRiseAndSet(date, place)
	if rise.IsZero() || set.IsZero() {
		return time.Time{}, fmt.Errorf("no reference %v at %v on %v", e, CoordinatesOf(place), date)
	}
	switch e {
	case Sunrise:
		return rise, nil
	case Sunset:
		return set, nil
	}
	return rise.Add(set.Sub(rise) / 2), nil
}
