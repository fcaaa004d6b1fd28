// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package astronomy

import (
	"fmt"
	"math"
	"time"

	"cloudeng.io/suncapture/datetime"
	"github.com/soniakeys/unit"
)

// The sunrise equation as described at
// https://en.wikipedia.org/wiki/Sunrise_equation. The calculation is
// performed for the UTC calendar date of the supplied instant, the time
// of day is ignored.

const (
	// Epoch is the Julian Day of 2000-01-01 12:00 UTC.
	Epoch = datetime.J2000
	// Leap is the fractional Julian Day allowed for leap seconds and
	// terrestrial time.
	Leap = 0.0008

	axialTilt          = 23.44 // degrees
	horizonDepression  = -0.83 // degrees, refraction and the solar disc.
	perihelion         = 102.9372
	meanAnomalyAtEpoch = 357.5291
	meanAnomalyPerDay  = 0.98560028
)

// mod360 returns v modulo 360 in the range [0, 360).
func mod360(v float64) float64 {
	v = math.Mod(v, 360)
	if v < 0 {
		v += 360
	}
	return v
}

// currentJulianDay returns the number of days since Epoch of the noon
// nearest to utc, plus Leap. Rounding is half up and is computed on the
// J2000 offset which is exact since Epoch is integral.
func currentJulianDay(utc time.Time) float64 {
	return math.Floor(datetime.ToJulianDay(utc).SinceJ2000()+0.5) + Leap
}

func meanSolarNoon(n, longitude float64) float64 {
	return n - longitude/360
}

func solarMeanAnomaly(jstar float64) float64 {
	return mod360(meanAnomalyAtEpoch + meanAnomalyPerDay*jstar)
}

func equationOfCenter(m float64) float64 {
	a := unit.AngleFromDeg(m)
	return 1.9148*a.Sin() + 0.0200*(2*a).Sin() + 0.0003*(3*a).Sin()
}

func eclipticLongitude(m, c float64) float64 {
	return mod360(m + c + 180 + perihelion)
}

// solarTransit returns Epoch + J* + 0.0053 sin(M) - 0.0069 sin(2λ) as
// a JulianDay; since Epoch is J2000 the sum is formed on the offset.
func solarTransit(jstar, m, lambda float64) datetime.JulianDay {
	ma, la := unit.AngleFromDeg(m), unit.AngleFromDeg(lambda)
	return datetime.JulianDay(jstar + 0.0053*ma.Sin() - 0.0069*(2*la).Sin())
}

func declination(lambda float64) float64 {
	s := unit.AngleFromDeg(lambda).Sin() * unit.AngleFromDeg(axialTilt).Sin()
	return unit.Angle(math.Asin(s)).Deg()
}

// hourAngleCosine returns the argument to the hour angle's arccosine.
func hourAngleCosine(latitude, decl float64) float64 {
	phi, d := unit.AngleFromDeg(latitude), unit.AngleFromDeg(decl)
	return (unit.AngleFromDeg(horizonDepression).Sin() - phi.Sin()*d.Sin()) / (phi.Cos() * d.Cos())
}

// hourAngle returns the hour angle in degrees, or NaN and the polar
// condition if the sun does not cross the horizon.
func hourAngle(latitude, decl float64) (float64, float64, Condition) {
	w := hourAngleCosine(latitude, decl)
	switch {
	case w < -1:
		return math.NaN(), w, PolarDay
	case w > 1:
		return math.NaN(), w, PolarNight
	}
	return unit.Angle(math.Acos(w)).Deg(), w, Normal
}

// Solution holds the intermediate and final values of the sunrise
// equation for a given day and observer. Angles are in degrees.
type Solution struct {
	Coordinates       Coordinates
	Date              datetime.CalendarDate // UTC date the solution applies to.
	Day               float64               // n, days since Epoch plus Leap.
	MeanSolarNoon     float64               // J*
	MeanAnomaly       float64               // M
	EquationOfCenter  float64               // C
	EclipticLongitude float64               // λ
	Transit           datetime.JulianDay
	Declination       float64 // δ
	HourAngle         float64 // ω, NaN unless Condition is Normal.
	HourAngleCosine   float64
	Condition         Condition
}

// Solve evaluates the sunrise equation for the UTC calendar date of utc.
// The only error returned is for invalid coordinates; polar day or
// night is recorded in the Condition field and reported by Event.
func Solve(c Coordinates, utc time.Time) (Solution, error) {
	if err := c.Validate(); err != nil {
		return Solution{}, err
	}
	s := Solution{Coordinates: c}
	s.Day = currentJulianDay(utc)
	s.Date = datetime.CalendarDateFromTime(datetime.FromJulianDay(datetime.JulianDay(s.Day - Leap)))
	s.MeanSolarNoon = meanSolarNoon(s.Day, c.Longitude)
	s.MeanAnomaly = solarMeanAnomaly(s.MeanSolarNoon)
	s.EquationOfCenter = equationOfCenter(s.MeanAnomaly)
	s.EclipticLongitude = eclipticLongitude(s.MeanAnomaly, s.EquationOfCenter)
	s.Transit = solarTransit(s.MeanSolarNoon, s.MeanAnomaly, s.EclipticLongitude)
	s.Declination = declination(s.EclipticLongitude)
	s.HourAngle, s.HourAngleCosine, s.Condition = hourAngle(c.Latitude, s.Declination)
	return s, nil
}

// Event returns the JulianDay of the requested event. A *DomainError is
// returned for sunrise and sunset if the sun does not cross the horizon;
// solar noon is always defined.
func (s Solution) Event(e Event) (datetime.JulianDay, error) {
	var sign float64
	switch e {
	case SolarNoon:
		return s.Transit, nil
	case Sunrise:
		sign = -1
	case Sunset:
		sign = 1
	default:
		return 0, fmt.Errorf("unsupported event: %v", e)
	}
	if s.Condition != Normal {
		return 0, &DomainError{
			Condition:   s.Condition,
			Coordinates: s.Coordinates,
			Date:        s.Date,
			Event:       e,
			Argument:    s.HourAngleCosine,
		}
	}
	return s.Transit.AddDays(sign * s.HourAngle / 360), nil
}

// EventJulianDay returns the JulianDay of the event on the UTC calendar
// date of utc.
func EventJulianDay(c Coordinates, e Event, utc time.Time) (datetime.JulianDay, error) {
	s, err := Solve(c, utc)
	if err != nil {
		return 0, err
	}
	return s.Event(e)
}

// LocalEventTime returns the local time of the event for the day
// given by the wall-clock time local, interpreted in the bridge's timezone.
// The local time is converted to UTC and the event is computed for
// that UTC date before being converted back to the bridge's timezone.
func LocalEventTime(b datetime.Bridge, c Coordinates, e Event, local time.Time) (time.Time, error) {
	j, err := EventJulianDay(c, e, b.ToUTC(local))
	if err != nil {
		return time.Time{}, err
	}
	return b.FromJulianDay(j), nil
}

// ComputeEventTime returns the time of the event, in the host's timezone,
// for the day of localNow. The host timezone is determined by
// datetime.SystemZone and a *datetime.TimezoneResolutionError is returned
// if it cannot be determined.
func ComputeEventTime(latitude, longitude float64, e Event, localNow time.Time) (time.Time, error) {
	b, err := datetime.SystemBridge()
	if err != nil {
		return time.Time{}, err
	}
	return LocalEventTime(b, Coordinates{Latitude: latitude, Longitude: longitude}, e, localNow)
}

// EventOn returns the local time of the event on the specified local
// calendar date. The calculation is anchored at local noon so that the
// UTC date used matches the local date for any timezone within 12 hours
// of UTC.
func EventOn(b datetime.Bridge, c Coordinates, e Event, date datetime.CalendarDate) (time.Time, error) {
	return LocalEventTime(b, c, e, date.Time(datetime.NewTimeOfDay(12, 0, 0), b.Location()))
}
