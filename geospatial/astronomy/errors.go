// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package astronomy

import (
	"errors"
	"fmt"

	"cloudeng.io/suncapture/datetime"
)

// Condition describes whether the sun crosses the horizon on a given day.
type Condition int

const (
	// Normal means that the sun both rises and sets.
	Normal Condition = iota
	// PolarDay means that the sun stays above the horizon all day.
	PolarDay
	// PolarNight means that the sun stays below the horizon all day.
	PolarNight
)

func (c Condition) String() string {
	switch c {
	case Normal:
		return "normal"
	case PolarDay:
		return "polar day"
	case PolarNight:
		return "polar night"
	}
	return fmt.Sprintf("Condition(%d)", int(c))
}

var (
	ErrPolarDay   = errors.New("polar day: the sun does not set")
	ErrPolarNight = errors.New("polar night: the sun does not rise")
)

// DomainError is returned when sunrise or sunset is requested for a day
// on which the sun does not cross the horizon, ie. when the argument to
// the hour angle's arccosine is outside of [-1, 1].
type DomainError struct {
	Condition   Condition
	Coordinates Coordinates
	Date        datetime.CalendarDate // UTC date of the calculation.
	Event       Event
	Argument    float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("no %v at %v on %v: %v (hour angle cosine: %.4f)",
		e.Event, e.Coordinates, e.Date, e.Condition, e.Argument)
}

// Is supports errors.Is for ErrPolarDay and ErrPolarNight.
func (e *DomainError) Is(target error) bool {
	switch e.Condition {
	case PolarDay:
		return target == ErrPolarDay
	case PolarNight:
		return target == ErrPolarNight
	}
	return false
}
