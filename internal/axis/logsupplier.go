// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axis

import (
	"fmt"
	"math"
	"slices"

	"github.com/aclements/benchaxis/internal/pow10"
	"github.com/aclements/benchaxis/internal/sequence"
)

// maxMinorSteps bounds the steps per decade of any decorations.
const maxMinorSteps = 1000

// maxSteppingIterations bounds the search for the densest major stepping.
const maxSteppingIterations = 30

// LogOptions configures a [LogSupplier].
type LogOptions struct {
	// Epsilon is the zero-gap half-width of the underlying mirror
	// sequence. It is rounded down to a power of ten. Values <= 0 select 1.
	Epsilon float64

	// MinMajorSpacing and MinMinorSpacing are the minimum screen distances
	// between consecutive major and minor decorations.
	MinMajorSpacing float64
	MinMinorSpacing float64

	// MajorIntervals are the in-decade multipliers of candidate major
	// spacings, in [1, 10). If empty, 1, 2, 5 is used.
	MajorIntervals []float64
	// MinorIntervals are the in-decade multipliers of candidate minor
	// spacings, in [1, 10). If empty, 1, 2, 5 is used.
	MinorIntervals []float64

	// Fits decides whether the labels of values fit on the axis. If nil,
	// [Tools.AllLabelsFit] is used.
	Fits func(t *Tools, values []float64) bool

	// Trace, if non-nil, receives a line for each candidate considered.
	Trace func(format string, args ...any)
}

var defaultIntervals = []float64{1, 2, 5}

// LogSupplier lays out log and mirror-log axes. Its major decorations are
// decade values, optionally subdivided by the densest in-decade step whose
// labels are spaced, unique, and fit.
type LogSupplier struct {
	tools *Tools
	opts  LogOptions
	eps   float64

	// spacing enumerates major spacings in units of a decade's first value.
	spacing *sequence.CustomPowersOf10
	// stepping enumerates steps per decade, the reciprocals of spacing.
	stepping *sequence.CustomPowersOf10

	// minorsFor maps the in-decade multiplier of a major spacing to the
	// candidate minor spacings, ascending, in units of one tenth of the
	// major spacing's power of ten.
	minorsFor map[float64][]float64
}

// NewLogSupplier returns a LogSupplier drawing on tools. It returns an error
// wrapping [sequence.ErrInvalidConfig] if the interval lists are malformed.
func NewLogSupplier(tools *Tools, opts LogOptions) (*LogSupplier, error) {
	if len(opts.MajorIntervals) == 0 {
		opts.MajorIntervals = defaultIntervals
	}
	if len(opts.MinorIntervals) == 0 {
		opts.MinorIntervals = defaultIntervals
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	spacing := sequence.MustCustomPowersOf10(opts.MajorIntervals)
	stepping := sequence.MustCustomPowersOf10(reciprocals(opts.MajorIntervals))

	eps := 1.0
	if opts.Epsilon > 0 && isFinite(opts.Epsilon) {
		eps = pow10.Floor(opts.Epsilon)
	}

	s := &LogSupplier{
		tools:     tools,
		opts:      opts,
		eps:       eps,
		spacing:   spacing,
		stepping:  stepping,
		minorsFor: make(map[float64][]float64),
	}
	for _, rep := range opts.MajorIntervals {
		s.minorsFor[rep] = minorCandidates(rep, opts.MinorIntervals)
	}
	return s, nil
}

// Validate checks the interval lists of o. Empty lists are valid and select
// the defaults.
func (o LogOptions) Validate() error {
	if len(o.MajorIntervals) > 0 {
		if _, err := sequence.NewCustomPowersOf10(o.MajorIntervals); err != nil {
			return fmt.Errorf("major intervals: %w", err)
		}
	}
	if len(o.MinorIntervals) > 0 {
		if _, err := sequence.NewCustomPowersOf10(o.MinorIntervals); err != nil {
			return fmt.Errorf("minor intervals: %w", err)
		}
	}
	return nil
}

// MustLogSupplier is like [NewLogSupplier] but panics on error.
func MustLogSupplier(tools *Tools, opts LogOptions) *LogSupplier {
	s, err := NewLogSupplier(tools, opts)
	if err != nil {
		panic(err)
	}
	return s
}

// Epsilon returns the power of ten below which non-zero values are dropped.
func (s *LogSupplier) Epsilon() float64 {
	return s.eps
}

// reciprocals returns 10/m for each m, normalized into [1, 10), sorted and
// deduplicated.
func reciprocals(ms []float64) []float64 {
	var out []float64
	for _, m := range ms {
		r := pow10.Sig15(10 / m)
		if r >= 10 {
			r = pow10.Sig15(r / 10)
		}
		out = append(out, r)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// minorCandidates returns the minor multipliers d, taken from intervals and
// ten times intervals, that divide a decade's 10·rep major spacing into a
// whole number of parts.
func minorCandidates(rep float64, intervals []float64) []float64 {
	var out []float64
	top := pow10.Sig15(10 * rep)
	for _, m := range intervals {
		for _, d := range []float64{m, pow10.Sig15(10 * m)} {
			if d >= top {
				continue
			}
			if q := pow10.Sig15(top / d); q == math.Round(q) {
				out = append(out, d)
			}
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func (s *LogSupplier) tracef(format string, args ...any) {
	if s.opts.Trace != nil {
		s.opts.Trace(format, args...)
	}
}

// Decorations lays out [min, max].
func (s *LogSupplier) Decorations(min, max float64) Decorations {
	if min > max {
		min, max = max, min
	}
	t := s.tools

	steps := s.maxStepping()
	first := s.majors(steps, min, max)
	chosen, chosenSteps := first, steps
	if !s.accept(first) {
		chosen = nil
		sp := s.spacing.Ceil(pow10.Sig15(10 / steps))
		if len(first) >= 2 {
			if g := observedSpacing(first[0], first[1]); g > sp {
				sp = s.spacing.Ceil(g)
			}
		}
		if sp == pow10.Sig15(10/steps) {
			sp = s.spacing.Next()
		}
		for ; sp <= 10; sp = s.spacing.Next() {
			st := math.Max(1, math.Round(10/sp))
			vals := s.majors(st, min, max)
			if s.accept(vals) {
				chosen, chosenSteps = vals, st
				break
			}
		}
		if chosen == nil {
			s.tracef("log: no stepping fits, using %v steps per decade", steps)
			chosen, chosenSteps = first, steps
		}
	}
	t.FitFormatter(chosen)
	s.tracef("log: %v steps per decade, majors %v", chosenSteps, chosen)

	d := Decorations{Major: t.MakeLabels(chosen)}
	if len(chosen) < 2 {
		return d
	}
	if minors := s.minors(chosenSteps, chosen, min, max); len(minors) > 0 {
		d.Minor = t.MakeSubLines(minors)
	}
	return d
}

// maxStepping returns the most steps per decade whose last in-decade gap,
// just inside a decade boundary, is at least MinMajorSpacing on screen.
func (s *LogSupplier) maxStepping() float64 {
	m := s.tools.mapper
	// Measure on the side of zero the axis shows.
	sign := 1.0
	if m.DataMax() <= 0 {
		sign = -1
	}
	top := s.eps * 10
	gap := func(steps float64) float64 {
		below := math.Max(s.eps, top-top/steps)
		return math.Abs(m.ScreenValue(sign*top) - m.ScreenValue(sign*below))
	}
	best := s.stepping.Floor(1)
	for i := 0; i < maxSteppingIterations; i++ {
		next := s.stepping.Next()
		if next > maxMinorSteps || !(gap(next) >= s.opts.MinMajorSpacing) {
			break
		}
		best = next
	}
	return best
}

// observedSpacing expresses the gap between two consecutive values in units
// of the power of ten below the larger magnitude.
func observedSpacing(a, b float64) float64 {
	big := math.Max(math.Abs(a), math.Abs(b))
	if big == 0 {
		return 0
	}
	return pow10.Sig15(math.Abs(b-a) / pow10.Floor(big))
}

func (s *LogSupplier) seq(steps float64) *sequence.PacedPowersOf10Mirror {
	return sequence.MustPacedPowersOf10Mirror(int(math.Round(steps)), s.eps)
}

func (s *LogSupplier) majors(steps, min, max float64) []float64 {
	vals := s.tools.MakeDataValues(s.seq(steps), min, max, 0, s.eps)
	return withinRange(vals, min, max)
}

func (s *LogSupplier) accept(values []float64) bool {
	t := s.tools
	t.FitFormatter(values)
	ok := t.CheckSpacing(values, s.opts.MinMajorSpacing) && t.AllLabelsUnique(values)
	if ok {
		if s.opts.Fits != nil {
			ok = s.opts.Fits(t, values)
		} else {
			ok = t.AllLabelsFit(values)
		}
	}
	s.tracef("log: candidate %v accepted=%v", values, ok)
	return ok
}

// minors returns the densest minor values aligned with majorSteps that keep
// MinMinorSpacing, excluding the majors themselves.
func (s *LogSupplier) minors(majorSteps float64, majors []float64, min, max float64) []float64 {
	sp := pow10.Sig15(10 / majorSteps)
	e := pow10.FloorExponent(sp)
	rep := pow10.Sig15(sp / pow10.Scientific(1, e))
	for _, d := range s.minorsFor[rep] {
		minorSp := pow10.Sig15(d * pow10.Scientific(1, e-1))
		steps := math.Round(10 / minorSp)
		if steps < 1 || steps > maxMinorSteps {
			continue
		}
		vals := withinRange(s.tools.MakeDataValues(s.seq(steps), min, max, 0, s.eps), min, max)
		if s.tools.CheckSpacing(vals, s.opts.MinMinorSpacing) {
			s.tracef("log: minors at %v steps per decade", steps)
			return without(vals, majors)
		}
	}
	return nil
}
