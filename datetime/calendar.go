// Copyright 2024 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package datetime provides support for working with calendar dates, times
// of day and the conversions between local wall-clock time, UTC and
// Julian Day numbers.
package datetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Month as an int.
type Month time.Month

// CalendarDate represents a date with a year, month and day.
type CalendarDate struct {
	Year  int
	Month Month
	Day   int
}

// NewCalendarDate returns a CalendarDate for the specified year, month and day.
func NewCalendarDate(year int, month Month, day int) CalendarDate {
	return CalendarDate{Year: year, Month: month, Day: day}
}

// CalendarDateFromTime returns the CalendarDate of t in t's location.
func CalendarDateFromTime(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: Month(m), Day: d}
}

func (cd CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", cd.Year, cd.Month, cd.Day)
}

// Time returns the time.Time for the date at the specified time of day
// in loc. time.Date is used and hence the result is normalized.
func (cd CalendarDate) Time(tod TimeOfDay, loc *time.Location) time.Time {
	return time.Date(cd.Year, time.Month(cd.Month), cd.Day, tod.Hour(), tod.Minute(), tod.Second(), 0, loc)
}

// Tomorrow returns the date of the next day, 12/31 wraps to 1/1 of the
// following year.
func (cd CalendarDate) Tomorrow() CalendarDate {
	if cd.Day >= DaysInMonth(cd.Year, cd.Month) {
		if cd.Month == 12 {
			return CalendarDate{Year: cd.Year + 1, Month: 1, Day: 1}
		}
		return CalendarDate{Year: cd.Year, Month: cd.Month + 1, Day: 1}
	}
	cd.Day++
	return cd
}

// Before returns true if cd is earlier than o.
func (cd CalendarDate) Before(o CalendarDate) bool {
	if cd.Year != o.Year {
		return cd.Year < o.Year
	}
	if cd.Month != o.Month {
		return cd.Month < o.Month
	}
	return cd.Day < o.Day
}

const expectedCalendarFormats = "2006-01-02 or 01/02/2006"

// Parse parses a date in either '2006-01-02' or '01/02/2006' format, with
// error checking for valid month and day.
func (cd *CalendarDate) Parse(val string) error {
	var parts []string
	var y, m, d string
	switch {
	case strings.Contains(val, "-"):
		parts = strings.Split(val, "-")
		if len(parts) == 3 {
			y, m, d = parts[0], parts[1], parts[2]
		}
	case strings.Contains(val, "/"):
		parts = strings.Split(val, "/")
		if len(parts) == 3 {
			m, d, y = parts[0], parts[1], parts[2]
		}
	}
	if len(parts) != 3 || len(y) != 4 {
		return fmt.Errorf("invalid date %q, expected %s", val, expectedCalendarFormats)
	}
	year, err := strconv.Atoi(y)
	if err != nil {
		return fmt.Errorf("invalid year: %s", y)
	}
	month, err := strconv.Atoi(m)
	if err != nil || month < 1 || month > 12 {
		return fmt.Errorf("invalid month: %s", m)
	}
	day, err := strconv.Atoi(d)
	if err != nil || day < 1 || day > DaysInMonth(year, Month(month)) {
		return fmt.Errorf("invalid day for %04d-%02d: %s", year, month, d)
	}
	*cd = CalendarDate{Year: year, Month: Month(month), Day: day}
	return nil
}

// ParseCalendarDate is a convenience wrapper around CalendarDate.Parse.
func ParseCalendarDate(val string) (CalendarDate, error) {
	var cd CalendarDate
	err := cd.Parse(val)
	return cd, err
}

// IsLeap returns true if the given year is a leap year.
func IsLeap(year int) bool {
	return year%4 == 0 && year%100 != 0 || year%400 == 0
}

// DaysInMonth returns the number of days in the given month for the given year.
func DaysInMonth(year int, month Month) int {
	switch month {
	case 2:
		if IsLeap(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}
