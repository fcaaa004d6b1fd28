// Copyright 2024 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package schedule provides support for scheduling actions at fixed or
// dynamically evaluated times of day, eg. a set of captures around sunset.
package schedule

import (
	"iter"
	"slices"
	"time"

	"cloudeng.io/suncapture/datetime"
)

// DynamicTimeOfDaySpec represents a time of day that is dynamically evaluated
// and offset with a fixed duration.
type DynamicTimeOfDaySpec struct {
	Due    datetime.DynamicTimeOfDay
	Offset time.Duration
}

// RepeatSpec represents a repeat interval and an optional number of
// repeats. An action with a non-zero Interval and zero Repeats is
// repeated until the end of the day, otherwise it runs Repeats+1 times
// even if that extends past midnight.
type RepeatSpec struct {
	Interval time.Duration
	Repeats  int
}

// ActionSpec represents a specification of an action to be taken at a
// specific time of day. The time may be evaluated dynamically (eg.
// sunrise/sunset) and offset, and the action may be repeated.
type ActionSpec[T any] struct {
	Name    string
	Due     datetime.TimeOfDay
	Dynamic DynamicTimeOfDaySpec
	Repeat  RepeatSpec
	T       T
}

type ActionSpecs[T any] []ActionSpec[T]

// Evaluate returns a new ActionSpec with the Due field set to the result
// of evaluating the Dynamic field, if set, with its Offset applied. The
// returned ActionSpec's Dynamic field is zeroed and the offset that was
// applied is returned.
func (a ActionSpec[T]) Evaluate(cd datetime.CalendarDate, place datetime.Place) (ActionSpec[T], time.Duration) {
	r := a
	dyn := a.Dynamic
	if dyn.Due == nil {
		return r, 0
	}
	r.Due = dyn.Due.Evaluate(cd, place).Add(dyn.Offset)
	r.Dynamic = DynamicTimeOfDaySpec{}
	return r, dyn.Offset
}

// Evaluate returns a new ActionSpecs with each of the ActionSpecs evaluated.
func (a ActionSpecs[T]) Evaluate(cd datetime.CalendarDate, place datetime.Place) ActionSpecs[T] {
	result := make(ActionSpecs[T], len(a))
	for i, as := range a {
		result[i], _ = as.Evaluate(cd, place)
	}
	return result
}

// Sort by due time and then by name.
func (a ActionSpecs[T]) Sort() {
	slices.SortFunc(a, func(x, y ActionSpec[T]) int {
		if x.Due == y.Due {
			switch {
			case x.Name < y.Name:
				return -1
			case x.Name > y.Name:
				return 1
			}
			return 0
		}
		if x.Due < y.Due {
			return -1
		}
		return 1
	})
}

// Active represents the next scheduled action, ie. the one to be 'active'
// at time 'When'. Offset is the offset from the action's evaluated
// dynamic time of day, or from its fixed time of day, including any
// repeats.
type Active[T any] struct {
	Name   string
	When   time.Time
	Offset time.Duration
	T      T
}

// Scheduled specifies the set of actions scheduled for a given date.
type Scheduled[T any] struct {
	Date  datetime.CalendarDate
	Specs ActionSpecs[T]
}

// Active is an iterator that returns the scheduled actions, including
// repeats, in time order. Bounded repeats may run into the following
// day, unbounded repeats end at midnight.
func (s Scheduled[T]) Active(place datetime.Place) iter.Seq[Active[T]] {
	return func(yield func(Active[T]) bool) {
		q := newQueue(s.Specs, s.Date, place)
		for !q.empty() {
			when, o := q.pop()
			active := Active[T]{
				Name:   o.name,
				When:   when,
				Offset: o.offset,
				T:      o.t,
			}
			if !yield(active) {
				return
			}
		}
	}
}

// Days returns an iterator over the dates starting at from, the
// iterator is unbounded if n is zero or negative.
func Days(from datetime.CalendarDate, n int) iter.Seq[datetime.CalendarDate] {
	return func(yield func(datetime.CalendarDate) bool) {
		for i, cd := 0, from; n <= 0 || i < n; i, cd = i+1, cd.Tomorrow() {
			if !yield(cd) {
				return
			}
		}
	}
}
