// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sequence

import (
	"fmt"
	"slices"

	"github.com/aclements/benchaxis/internal/pow10"
)

// PowersOf10 is the sequence 10^n for n ∈ ℤ. Floor, Ceil and Round require
// a positive argument and panic with [pow10.ErrNonPositive] otherwise.
type PowersOf10 struct {
	pos int
}

var _ Sequence = (*PowersOf10)(nil)

// NewPowersOf10 returns a PowersOf10 sequence positioned at 1.
func NewPowersOf10() *PowersOf10 {
	return &PowersOf10{}
}

func (s *PowersOf10) Value() float64 {
	return pow10.Scientific(1, s.pos)
}

func (s *PowersOf10) Next() float64 {
	s.pos++
	return s.Value()
}

func (s *PowersOf10) Previous() float64 {
	s.pos--
	return s.Value()
}

func (s *PowersOf10) Floor(v float64) float64 {
	s.pos = pow10.FloorExponent(v)
	return s.Value()
}

func (s *PowersOf10) Ceil(v float64) float64 {
	s.pos = pow10.CeilExponent(v)
	return s.Value()
}

// Round moves to the power of ten numerically closest to v, so 88 rounds to
// 100 rather than 10.
func (s *PowersOf10) Round(v float64) float64 {
	s.pos = pow10.RoundExponent(pow10.Round(v))
	return s.Value()
}

// CustomPowersOf10 is the sequence m[i] × 10^k over a sorted list of
// in-decade multipliers m, for example 1, 2, 5, 10, 20, 50, ...
// Floor, Ceil and Round require a positive argument.
type CustomPowersOf10 struct {
	multipliers []float64
	// pos is k*len(multipliers) + i.
	pos int
}

var _ Sequence = (*CustomPowersOf10)(nil)

// NewCustomPowersOf10 returns a sequence over multipliers, positioned at
// multipliers[0]. The multipliers must be non-empty, strictly increasing,
// and lie in [1, 10).
func NewCustomPowersOf10(multipliers []float64) (*CustomPowersOf10, error) {
	if len(multipliers) == 0 {
		return nil, fmt.Errorf("%w: no multipliers", ErrInvalidConfig)
	}
	for i, m := range multipliers {
		if i > 0 && !(m > multipliers[i-1]) {
			return nil, fmt.Errorf("%w: multipliers %v not strictly increasing", ErrInvalidConfig, multipliers)
		}
	}
	if first := multipliers[0]; !(first >= 1) {
		return nil, fmt.Errorf("%w: first multiplier %v is less than 1", ErrInvalidConfig, first)
	}
	if last := multipliers[len(multipliers)-1]; !(last < 10) {
		return nil, fmt.Errorf("%w: last multiplier %v is not less than 10", ErrInvalidConfig, last)
	}
	return &CustomPowersOf10{multipliers: slices.Clone(multipliers)}, nil
}

// MustCustomPowersOf10 is like [NewCustomPowersOf10] but panics on error.
func MustCustomPowersOf10(multipliers []float64) *CustomPowersOf10 {
	s, err := NewCustomPowersOf10(multipliers)
	if err != nil {
		panic(err)
	}
	return s
}

// Multipliers returns the in-decade multipliers of s.
func (s *CustomPowersOf10) Multipliers() []float64 {
	return slices.Clone(s.multipliers)
}

func (s *CustomPowersOf10) Value() float64 {
	n := len(s.multipliers)
	k := floorDiv(s.pos, n)
	return pow10.Sig15(pow10.Scientific(s.multipliers[s.pos-k*n], k))
}

func (s *CustomPowersOf10) Next() float64 {
	s.pos++
	return s.Value()
}

func (s *CustomPowersOf10) Previous() float64 {
	s.pos--
	return s.Value()
}

func (s *CustomPowersOf10) Floor(v float64) float64 {
	s.pos = pow10.FloorExponent(v) * len(s.multipliers)
	v = pow10.Sig15(v)
	for s.Value() > v {
		s.Previous()
	}
	for {
		if s.Next() > v {
			return s.Previous()
		}
	}
}

func (s *CustomPowersOf10) Ceil(v float64) float64 {
	f := s.Floor(v)
	if f < pow10.Sig15(v) {
		return s.Next()
	}
	return f
}

func (s *CustomPowersOf10) Round(v float64) float64 {
	lo := s.Floor(v)
	hi := s.Next()
	if v-lo < hi-v {
		return s.Previous()
	}
	return hi
}
