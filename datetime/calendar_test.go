// Copyright 2024 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package datetime_test

import (
	"testing"
	"time"

	"cloudeng.io/suncapture/datetime"
)

func TestParseCalendarDates(t *testing.T) {
	ncd := datetime.NewCalendarDate
	for _, tc := range []struct {
		input string
		cd    datetime.CalendarDate
	}{
		{"2024-01-01", ncd(2024, 1, 1)},
		{"2024-02-29", ncd(2024, 2, 29)},
		{"2023-02-28", ncd(2023, 2, 28)},
		{"01/01/2024", ncd(2024, 1, 1)},
		{"02/29/2024", ncd(2024, 2, 29)},
		{"12/31/1999", ncd(1999, 12, 31)},
	} {
		cd, err := datetime.ParseCalendarDate(tc.input)
		if err != nil {
			t.Errorf("%v: %v", tc.input, err)
			continue
		}
		if cd != tc.cd {
			t.Errorf("%v: got %v, want %v", tc.input, cd, tc.cd)
		}
		// String must produce a parseable value.
		if err := cd.Parse(cd.String()); err != nil {
			t.Errorf("%v: %v", tc.input, err)
			continue
		}
		if cd != tc.cd {
			t.Errorf("%v: got %v, want %v", tc.input, cd, tc.cd)
		}
	}

	for _, tc := range []string{
		"",
		"2023-02-29",
		"02/29/2023",
		"2024-13-01",
		"2024-00-10",
		"24-01-01",
		"2024-01",
		"Jan-01-2024",
	} {
		if _, err := datetime.ParseCalendarDate(tc); err == nil {
			t.Errorf("%v: expected error", tc)
		}
	}
}

func TestCalendarDateTime(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Helsinki")
	cd := datetime.NewCalendarDate(2024, 6, 21)
	when := cd.Time(datetime.NewTimeOfDay(22, 30, 15), loc)
	if got, want := when, time.Date(2024, 6, 21, 22, 30, 15, 0, loc); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := datetime.CalendarDateFromTime(when), cd; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := datetime.CalendarDateFromTime(when.UTC()), cd; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTomorrow(t *testing.T) {
	ncd := datetime.NewCalendarDate
	for _, tc := range []struct {
		cd, next datetime.CalendarDate
	}{
		{ncd(2024, 1, 1), ncd(2024, 1, 2)},
		{ncd(2024, 2, 28), ncd(2024, 2, 29)},
		{ncd(2024, 2, 29), ncd(2024, 3, 1)},
		{ncd(2023, 2, 28), ncd(2023, 3, 1)},
		{ncd(2023, 4, 30), ncd(2023, 5, 1)},
		{ncd(2023, 12, 31), ncd(2024, 1, 1)},
	} {
		if got, want := tc.cd.Tomorrow(), tc.next; got != want {
			t.Errorf("%v: got %v, want %v", tc.cd, got, want)
		}
		if !tc.cd.Before(tc.next) || tc.next.Before(tc.cd) {
			t.Errorf("%v should be before %v", tc.cd, tc.next)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	for _, tc := range []struct {
		year  int
		month datetime.Month
		days  int
	}{
		{2023, 1, 31}, {2023, 2, 28}, {2024, 2, 29}, {1900, 2, 28},
		{2000, 2, 29}, {2023, 4, 30}, {2023, 9, 30}, {2023, 12, 31},
	} {
		if got, want := datetime.DaysInMonth(tc.year, tc.month), tc.days; got != want {
			t.Errorf("%v-%v: got %v, want %v", tc.year, tc.month, got, want)
		}
	}
}
