// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sequence

import (
	"fmt"
	"math"
	"time"
)

// Month is a calendar sequence of UTC month boundaries. Values are
// milliseconds since the Unix epoch.
//
// For monthsPerStep <= 12, the values are the first of every month m (counted
// from January 1970) with m ≡ monthOffset (mod monthsPerStep). Larger steps
// are rounded to a whole number of years and stepped with a [Linear]
// sequence over year numbers, so a 120 month step lands on 1990, 2000, ...
// shifted by monthOffset months.
type Month struct {
	step, offset int

	// month is the current value as months since January 1970.
	// Used when years is nil.
	month int
	years *Linear
}

var _ Sequence = (*Month)(nil)

// NewMonth returns a Month sequence positioned at the first value at or after
// January 1970. monthsPerStep must be at least 1 and monthOffset must lie in
// [-11, 11]; offsets spanning more than a year belong on a year axis.
func NewMonth(monthsPerStep, monthOffset int) (*Month, error) {
	if monthsPerStep < 1 {
		return nil, fmt.Errorf("%w: months per step %d is less than 1", ErrInvalidArgument, monthsPerStep)
	}
	if monthOffset < -11 || monthOffset > 11 {
		return nil, fmt.Errorf("%w: month offset %d outside [-11, 11]", ErrInvalidArgument, monthOffset)
	}
	s := &Month{step: monthsPerStep, offset: monthOffset}
	if monthsPerStep > 12 {
		years := max(1, int(math.Round(float64(monthsPerStep)/12)))
		s.years = NewLinear(float64(years), 0)
	}
	s.Ceil(0)
	return s, nil
}

// MustMonth is like [NewMonth] but panics on error.
func MustMonth(monthsPerStep, monthOffset int) *Month {
	s, err := NewMonth(monthsPerStep, monthOffset)
	if err != nil {
		panic(err)
	}
	return s
}

// MonthsPerStep returns the step of s in months.
func (s *Month) MonthsPerStep() int {
	return s.step
}

// monthIndex returns the month containing t as months since January 1970.
func monthIndex(t time.Time) int {
	return (t.Year()-1970)*12 + int(t.Month()) - 1
}

// monthMillis returns the start of month m (months since January 1970) in
// milliseconds since the epoch.
func monthMillis(m int) float64 {
	return float64(time.Date(1970, time.January+time.Month(m), 1, 0, 0, 0, 0, time.UTC).UnixMilli())
}

func (s *Month) current() int {
	if s.years != nil {
		return (int(s.years.Value())-1970)*12 + s.offset
	}
	return s.month
}

func (s *Month) Value() float64 {
	return monthMillis(s.current())
}

func (s *Month) Next() float64 {
	if s.years != nil {
		s.years.Next()
	} else {
		s.month += s.step
	}
	return s.Value()
}

func (s *Month) Previous() float64 {
	if s.years != nil {
		s.years.Previous()
	} else {
		s.month -= s.step
	}
	return s.Value()
}

// Floor moves to the last month boundary on the step grid at or before v,
// discarding the day and time of day.
func (s *Month) Floor(v float64) float64 {
	m := monthIndex(time.UnixMilli(int64(math.Floor(v))).UTC()) - s.offset
	if s.years != nil {
		s.years.Floor(float64(1970 + floorDiv(m, 12)))
	} else {
		s.month = floorDiv(m, s.step)*s.step + s.offset
	}
	return s.Value()
}

func (s *Month) Ceil(v float64) float64 {
	if f := s.Floor(v); f == v {
		return f
	}
	return s.Next()
}

func (s *Month) Round(v float64) float64 {
	lo := s.Floor(v)
	hi := s.Next()
	if hi-v < v-lo {
		return hi
	}
	return s.Previous()
}
