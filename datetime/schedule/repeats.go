// Copyright 2024 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package schedule

import (
	"time"

	"cloudeng.io/algo/container/heap"
	"cloudeng.io/suncapture/datetime"
)

// occurrence is a pending run of an action, remaining is -1 for an
// action that repeats until the end of the day.
type occurrence[T any] struct {
	name      string
	offset    time.Duration
	interval  time.Duration
	remaining int
	t         T
}

// next returns the occurrence that follows o, if any.
func (o occurrence[T]) next() (occurrence[T], bool) {
	if o.interval <= 0 || o.remaining == 0 {
		return o, false
	}
	n := o
	n.offset += o.interval
	if n.remaining > 0 {
		n.remaining--
	}
	return n, true
}

// queue orders the pending occurrences for a single day by time, keyed
// by UnixNano so that sub-second offsets and intervals are preserved.
type queue[T any] struct {
	day datetime.CalendarDate
	loc *time.Location
	h   *heap.T[int64, occurrence[T]]
}

func newQueue[T any](actions ActionSpecs[T], cd datetime.CalendarDate, place datetime.Place) *queue[T] {
	q := &queue[T]{
		day: cd,
		loc: place.Bridge().Location(),
		h:   heap.NewMin(heap.WithSliceCap[int64, occurrence[T]](len(actions))),
	}
	for _, a := range actions {
		evaluated, offset := a.Evaluate(cd, place)
		o := occurrence[T]{
			name:      a.Name,
			offset:    offset,
			interval:  a.Repeat.Interval,
			remaining: a.Repeat.Repeats,
			t:         a.T,
		}
		if o.remaining <= 0 {
			o.remaining = -1
		}
		q.h.Push(cd.Time(evaluated.Due, q.loc).UnixNano(), o)
	}
	return q
}

func (q *queue[T]) empty() bool {
	return q.h.Len() == 0
}

// pop returns the earliest pending occurrence and queues the one that
// follows it. Bounded repeats always run to completion, unbounded ones
// stop at the end of the day.
func (q *queue[T]) pop() (time.Time, occurrence[T]) {
	nsecs, o := q.h.Pop()
	when := time.Unix(0, nsecs).In(q.loc)
	if n, ok := o.next(); ok {
		if at := when.Add(o.interval); o.remaining > 0 || datetime.CalendarDateFromTime(at) == q.day {
			q.h.Push(at.UnixNano(), n)
		}
	}
	return when, o
}
