// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sequence

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/mathx"

	"github.com/aclements/benchaxis/internal/pow10"
)

// PacedPowersOf10Mirror is a signed, log-like sequence for mirror-log axes.
//
// Positive values start at epsilon. Each decade [D, 10D) with D = ε·10^k,
// k >= 0, holds D itself followed by the multiples of 10D/stepsPerDecade
// that lie strictly between D and 10D. Negative values mirror the positive
// ones, and the single value 0 fills the gap (-ε, ε).
//
// With stepsPerDecade 20 and ε 0.001, the values above 0.01 are 0.01, 0.015,
// 0.02, ..., 0.095, 0.1, 0.15, ... When stepsPerDecade does not divide evenly
// into a decade (for example 3), the in-decade values are not round.
type PacedPowersOf10Mirror struct {
	steps int
	eps   float64

	// skip is the number of multiples of the in-decade step that are <= D.
	skip int
	// perDecade is the number of values in [D, 10D).
	perDecade int

	// pos is 0 for the value 0, n > 0 for the n'th positive value
	// (1 is ε), and -n for the negation of the n'th positive value.
	pos int
}

var _ Sequence = (*PacedPowersOf10Mirror)(nil)

// NewPacedPowersOf10Mirror returns a mirror sequence with stepsPerDecade
// steps per decade and a zero gap of half-width epsilon, positioned at 0.
func NewPacedPowersOf10Mirror(stepsPerDecade int, epsilon float64) (*PacedPowersOf10Mirror, error) {
	if stepsPerDecade < 1 {
		return nil, fmt.Errorf("%w: %d steps per decade", ErrInvalidArgument, stepsPerDecade)
	}
	if !(epsilon > 0) || math.IsInf(epsilon, 0) {
		return nil, fmt.Errorf("%w: epsilon %v must be positive and finite", ErrInvalidArgument, epsilon)
	}
	skip := stepsPerDecade / 10
	return &PacedPowersOf10Mirror{
		steps:     stepsPerDecade,
		eps:       epsilon,
		skip:      skip,
		perDecade: stepsPerDecade - skip,
	}, nil
}

// MustPacedPowersOf10Mirror is like [NewPacedPowersOf10Mirror] but panics on
// error.
func MustPacedPowersOf10Mirror(stepsPerDecade int, epsilon float64) *PacedPowersOf10Mirror {
	s, err := NewPacedPowersOf10Mirror(stepsPerDecade, epsilon)
	if err != nil {
		panic(err)
	}
	return s
}

// StepsPerDecade returns the number of steps each decade is divided into.
func (s *PacedPowersOf10Mirror) StepsPerDecade() int {
	return s.steps
}

// Epsilon returns the smallest non-zero magnitude in the sequence.
func (s *PacedPowersOf10Mirror) Epsilon() float64 {
	return s.eps
}

// magnitude returns the n'th positive value, n >= 1.
func (s *PacedPowersOf10Mirror) magnitude(n int) float64 {
	q := n - 1
	k, i := q/s.perDecade, q%s.perDecade
	if i == 0 {
		return pow10.Sig15(s.eps * pow10.Scientific(1, k))
	}
	j := float64(s.skip + i)
	return pow10.Sig15(s.eps * pow10.Scientific(j, k+1) / float64(s.steps))
}

func (s *PacedPowersOf10Mirror) valueAt(pos int) float64 {
	switch {
	case pos > 0:
		return s.magnitude(pos)
	case pos < 0:
		return -s.magnitude(-pos)
	}
	return 0
}

func (s *PacedPowersOf10Mirror) Value() float64 {
	return s.valueAt(s.pos)
}

func (s *PacedPowersOf10Mirror) Next() float64 {
	s.pos++
	return s.Value()
}

func (s *PacedPowersOf10Mirror) Previous() float64 {
	s.pos--
	return s.Value()
}

// floorPos returns the position of the largest value <= a, for a >= 0.
func (s *PacedPowersOf10Mirror) floorPos(a float64) int {
	a = pow10.Sig15(a)
	if a < s.eps {
		return 0
	}
	k := max(0, pow10.FloorExponent(a/s.eps))
	n := 1 + k*s.perDecade
	for n > 1 && s.magnitude(n) > a {
		n--
	}
	for s.magnitude(n+1) <= a {
		n++
	}
	return n
}

// ceilPos returns the position of the smallest value >= a, for a >= 0.
func (s *PacedPowersOf10Mirror) ceilPos(a float64) int {
	n := s.floorPos(a)
	if s.valueAt(n) < pow10.Sig15(a) {
		n++
	}
	return n
}

func (s *PacedPowersOf10Mirror) Floor(v float64) float64 {
	if v < 0 {
		s.pos = -s.ceilPos(-v)
	} else {
		s.pos = s.floorPos(v)
	}
	return s.Value()
}

func (s *PacedPowersOf10Mirror) Ceil(v float64) float64 {
	if v < 0 {
		s.pos = -s.floorPos(-v)
	} else {
		s.pos = s.ceilPos(v)
	}
	return s.Value()
}

// Round moves to the value nearest v. Ties go away from zero.
func (s *PacedPowersOf10Mirror) Round(v float64) float64 {
	sign := int(mathx.Sign(v))
	if sign == 0 {
		s.pos = 0
		return 0
	}
	a := math.Abs(v)
	lo, hi := s.floorPos(a), s.ceilPos(a)
	if a-s.valueAt(lo) < s.valueAt(hi)-a {
		s.pos = sign * lo
	} else {
		s.pos = sign * hi
	}
	return s.Value()
}
