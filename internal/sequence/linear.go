// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sequence

import (
	"math"

	"github.com/aclements/benchaxis/internal/pow10"
)

// Linear is the sequence n*Spacing + Offset for n ∈ ℤ.
type Linear struct {
	spacing, offset float64
	pos             float64
}

var _ Sequence = (*Linear)(nil)

// NewLinear returns a Linear sequence positioned at offset.
func NewLinear(spacing, offset float64) *Linear {
	return &Linear{spacing: spacing, offset: offset}
}

// Spacing returns the distance between consecutive values.
func (s *Linear) Spacing() float64 {
	return s.spacing
}

func (s *Linear) Value() float64 {
	return pow10.Sig15(s.pos*s.spacing + s.offset)
}

func (s *Linear) Next() float64 {
	s.pos++
	return s.Value()
}

func (s *Linear) Previous() float64 {
	s.pos--
	return s.Value()
}

// steps returns (v-offset)/spacing with float noise removed.
func (s *Linear) steps(v float64) float64 {
	return pow10.Sig15((v - s.offset) / s.spacing)
}

func (s *Linear) Floor(v float64) float64 {
	s.pos = math.Floor(s.steps(v))
	return s.Value()
}

func (s *Linear) Ceil(v float64) float64 {
	s.pos = math.Ceil(s.steps(v))
	return s.Value()
}

func (s *Linear) Round(v float64) float64 {
	s.pos = math.Round(s.steps(v))
	return s.Value()
}
