// Copyright 2024 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package astronomy

import (
	"fmt"
	"strings"
	"time"

	"cloudeng.io/suncapture/datetime"
	"github.com/mooncaker816/learnmeeus/v3/julian"
	"github.com/mooncaker816/learnmeeus/v3/solstice"
)

// Season identifies one of the solstices or equinoxes.
type Season int

const (
	MarchEquinox Season = iota
	JuneSolstice
	SeptemberEquinox
	DecemberSolstice
)

// Seasons lists the solstices and equinoxes in calendar order.
var Seasons = []Season{MarchEquinox, JuneSolstice, SeptemberEquinox, DecemberSolstice}

var seasonNames = []string{"march", "june", "september", "december"}

func (s Season) String() string {
	if s < MarchEquinox || s > DecemberSolstice {
		return fmt.Sprintf("season(%d)", int(s))
	}
	return seasonNames[s]
}

// ParseSeason parses a season named by its month, eg. "december".
func ParseSeason(v string) (Season, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for i, n := range seasonNames {
		if v == n || (len(v) >= 3 && strings.HasPrefix(n, v)) {
			return Season(i), nil
		}
	}
	return 0, fmt.Errorf("unrecognised solstice or equinox %q, expected one of %v", v, strings.Join(seasonNames, ", "))
}

// JDE returns the Julian Ephemeris Day of the season in year.
func (s Season) JDE(year int) float64 {
	switch s {
	case MarchEquinox:
		return solstice.March(year)
	case JuneSolstice:
		return solstice.June(year)
	case SeptemberEquinox:
		return solstice.September(year)
	}
	return solstice.December(year)
}

// Instant returns the time of the season in year. The difference between
// terrestrial time and UTC, about a minute, is ignored.
func (s Season) Instant(year int) time.Time {
	return datetime.FromJulianDay(datetime.NewJulianDay(s.JDE(year)))
}

// Date returns the UTC calendar date of the season in year.
func (s Season) Date(year int) datetime.CalendarDate {
	return JDEToCalendar(s.JDE(year))
}

// Next returns the date of the first occurrence of the season on or
// after the specified date.
func (s Season) Next(after datetime.CalendarDate) datetime.CalendarDate {
	if cd := s.Date(after.Year); !cd.Before(after) {
		return cd
	}
	return s.Date(after.Year + 1)
}

// JDEToCalendar returns the calendar date of the Julian Ephemeris Day.
func JDEToCalendar(jde float64) datetime.CalendarDate {
	y, m, d := julian.JDToCalendar(jde)
	return datetime.NewCalendarDate(y, datetime.Month(m), int(d))
}

// NextSeason returns the first solstice or equinox on or after the
// specified date.
func NextSeason(after datetime.CalendarDate) (Season, datetime.CalendarDate) {
	for _, year := range []int{after.Year, after.Year + 1} {
		for _, s := range Seasons {
			if cd := s.Date(year); !cd.Before(after) {
				return s, cd
			}
		}
	}
	return MarchEquinox, MarchEquinox.Date(after.Year + 2)
}
