// Copyright 2024 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package datetime

import (
	"fmt"
	"time"
)

// Place represents a location on the earth and the timezone used for
// wall-clock times at that location.
type Place struct {
	TimeLocation *time.Location
	Latitude     float64
	Longitude    float64
}

// Bridge returns a Bridge for the place's TimeLocation.
func (p Place) Bridge() Bridge {
	return NewBridge(p.TimeLocation)
}

func (p Place) String() string {
	return fmt.Sprintf("%.4f,%.4f (%v)", p.Latitude, p.Longitude, p.Bridge().Location())
}

// DynamicTimeOfDay is a function that returns a TimeOfDay for
// a given date and is intended to be evaluated once per day
// to calculate events such as sunrise, sunset etc.
type DynamicTimeOfDay interface {
	Name() string
	Evaluate(cd CalendarDate, place Place) TimeOfDay
}
