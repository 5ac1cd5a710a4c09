// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axis

import (
	"math"

	"github.com/aclements/benchaxis/internal/pow10"
	"github.com/aclements/benchaxis/internal/sequence"
	"github.com/aclements/benchaxis/internal/ticks"
)

// A MapperFunc builds the mapping for an axis spanning [min, max].
type MapperFunc func(min, max float64) Mapper

// LinearOptions configures a [LinearSupplier].
type LinearOptions struct {
	// Sections is the largest number of major intervals to try. If <= 0,
	// 5 is used.
	Sections int
	// Margins bounds how far the axis may extend past the data. If nil,
	// [ticks.DefaultMargins] is used.
	Margins *ticks.Margins
	// Score ranks candidate axis ranges. If nil, [ticks.DefaultScore] is
	// used.
	Score ticks.ScoreFunc

	MinMajorSpacing float64
	MinMinorSpacing float64

	// Fits decides whether the labels of values fit on the axis. If nil,
	// [Tools.AllLabelsFit] is used.
	Fits func(t *Tools, values []float64) bool

	Trace func(format string, args ...any)
}

// LinearSupplier lays out linear axes. It extends the data range to round
// endpoints and evenly spaced majors, reducing the number of sections until
// the labels fit.
type LinearSupplier struct {
	mapping  MapperFunc
	measurer TextMeasurer
	orient   Orientation
	format   Formatter
	opts     LinearOptions
}

// NewLinearSupplier returns a LinearSupplier. format may be nil, in which
// case labels get just enough fraction digits.
func NewLinearSupplier(mapping MapperFunc, measurer TextMeasurer, orient Orientation, format Formatter, opts LinearOptions) *LinearSupplier {
	if opts.Sections <= 0 {
		opts.Sections = 5
	}
	if opts.Margins == nil {
		m := ticks.DefaultMargins
		opts.Margins = &m
	}
	if opts.Score == nil {
		opts.Score = ticks.DefaultScore
	}
	return &LinearSupplier{mapping, measurer, orient, format, opts}
}

func (s *LinearSupplier) tracef(format string, args ...any) {
	if s.opts.Trace != nil {
		s.opts.Trace(format, args...)
	}
}

// Decorations lays out data spanning [min, max]. It returns the decorations
// together with the axis range they were laid out over, which contains
// [min, max].
func (s *LinearSupplier) Decorations(min, max float64) (d Decorations, lo, hi float64) {
	if min > max {
		min, max = max, min
	}
	if min == max {
		w := math.Abs(min) / 10
		if w == 0 {
			w = 1
		}
		min, max = min-w, max+w
	}

	type attempt struct {
		tools  *Tools
		majors []float64
		step   float64
		lo, hi float64
	}
	var first *attempt
	for n := s.opts.Sections; n >= 1; n-- {
		lo, hi := ticks.PositionAroundRange(min, max, *s.opts.Margins, n, s.opts.Score)
		step := pow10.Sig15((hi - lo) / float64(n))
		t := NewTools(s.mapping(lo, hi), s.measurer, s.orient, s.format)
		vals := t.MakeDataValues(sequence.NewLinear(step, lo), lo, hi, 0, 0)
		vals = withinRange(t.RemoveCollisionsWithZero(vals), lo, hi)
		a := &attempt{t, vals, step, lo, hi}
		if first == nil {
			first = a
		}
		ok := s.accept(t, vals)
		s.tracef("linear: %d sections over [%v, %v] step %v accepted=%v", n, lo, hi, step, ok)
		if ok {
			return s.decorate(t, vals, step, lo, hi), lo, hi
		}
	}
	s.tracef("linear: no section count fits, thinning")
	vals := first.tools.ThinCollisions(first.majors)
	return s.decorate(first.tools, vals, first.step, first.lo, first.hi), first.lo, first.hi
}

func (s *LinearSupplier) accept(t *Tools, values []float64) bool {
	t.FitFormatter(values)
	if !t.CheckSpacing(values, s.opts.MinMajorSpacing) || !t.AllLabelsUnique(values) {
		return false
	}
	if s.opts.Fits != nil {
		return s.opts.Fits(t, values)
	}
	return t.AllLabelsFit(values)
}

// minorDivisions are the ways a major step may be subdivided, densest first.
var minorDivisions = []float64{5, 4, 2}

func (s *LinearSupplier) decorate(t *Tools, majors []float64, step, lo, hi float64) Decorations {
	t.FitFormatter(majors)
	d := Decorations{Major: t.MakeLabels(majors)}
	if len(majors) < 2 {
		return d
	}
	for _, div := range minorDivisions {
		vals := t.MakeDataValues(sequence.NewLinear(pow10.Sig15(step/div), lo), lo, hi, 0, 0)
		vals = withinRange(vals, lo, hi)
		if t.CheckSpacing(vals, s.opts.MinMinorSpacing) {
			d.Minor = t.MakeSubLines(without(vals, majors))
			break
		}
	}
	return d
}
