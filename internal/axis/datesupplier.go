// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axis

import (
	"time"

	"github.com/aclements/benchaxis/internal/pow10"
	"github.com/aclements/benchaxis/internal/sequence"
)

// monthSteps are the candidate month steps of a date axis, densest first.
var monthSteps = []int{1, 2, 3, 6, 12, 24, 60, 120, 240, 600, 1200}

// DateOptions configures a [DateSupplier].
type DateOptions struct {
	MinMajorSpacing float64
	MinMinorSpacing float64

	Fits  func(t *Tools, values []float64) bool
	Trace func(format string, args ...any)
}

// DateSupplier lays out time axes whose data values are milliseconds since
// the Unix epoch, placing decorations on month and year boundaries in UTC.
type DateSupplier struct {
	mapping  MapperFunc
	measurer TextMeasurer
	orient   Orientation
	opts     DateOptions
}

func NewDateSupplier(mapping MapperFunc, measurer TextMeasurer, orient Orientation, opts DateOptions) *DateSupplier {
	return &DateSupplier{mapping, measurer, orient, opts}
}

// DateFormatter labels millisecond timestamps with layout, in UTC.
func DateFormatter(layout string) Formatter {
	return FormatterFunc(func(v float64) string {
		return time.UnixMilli(int64(v)).UTC().Format(layout)
	})
}

func dateLayout(monthsPerStep int) string {
	if monthsPerStep < 12 {
		return "Jan 2006"
	}
	return "2006"
}

type dateAttempt struct {
	tools  *Tools
	values []float64
}

func (s *DateSupplier) tracef(format string, args ...any) {
	if s.opts.Trace != nil {
		s.opts.Trace(format, args...)
	}
}

// Decorations lays out [min, max], both in milliseconds since the epoch. It
// returns the decorations together with the axis range they were laid out
// over. If [min, max] holds fewer than two month boundaries, the range is
// widened to the enclosing boundaries.
func (s *DateSupplier) Decorations(min, max float64) (d Decorations, lo, hi float64) {
	if min > max {
		min, max = max, min
	}
	lo, hi = monthBounds(min, max)
	mapper := s.mapping(lo, hi)

	attempts := make([]dateAttempt, len(monthSteps))
	for i, step := range monthSteps {
		t := NewTools(mapper, s.measurer, s.orient, DateFormatter(dateLayout(step)))
		vals := withinRange(t.MakeDataValues(sequence.MustMonth(step, 0), lo, hi, 0, 0), lo, hi)
		attempts[i] = dateAttempt{t, vals}
		ok := s.accept(t, vals)
		s.tracef("date: %d month step, %d values, accepted=%v", step, len(vals), ok)
		if !ok {
			continue
		}
		d.Major = t.MakeLabels(vals)
		d.Minor = s.minors(attempts[:i], vals)
		return d, lo, hi
	}
	// There are at least two monthly values; thin those.
	s.tracef("date: no step fits, thinning")
	first := attempts[0]
	d.Major = first.tools.MakeLabels(first.tools.ThinCollisions(first.values))
	return d, lo, hi
}

// monthBounds returns [min, max], widened to the enclosing month
// boundaries unless it already contains two of them.
func monthBounds(min, max float64) (lo, hi float64) {
	m := sequence.MustMonth(1, 0)
	if first := m.Ceil(min); first <= max && m.Next() <= max {
		return min, max
	}
	lo = m.Floor(min)
	hi = m.Ceil(max)
	if hi <= lo {
		hi = m.Next()
	}
	return lo, hi
}

// accept reports whether values make a usable major layout. A single tick
// does not; a denser step or the fallback does better.
func (s *DateSupplier) accept(t *Tools, values []float64) bool {
	if len(values) < 2 {
		return false
	}
	if !t.CheckSpacing(values, s.opts.MinMajorSpacing) || !t.AllLabelsUnique(values) {
		return false
	}
	if s.opts.Fits != nil {
		return s.opts.Fits(t, values)
	}
	return t.AllLabelsFit(values)
}

// minors picks the densest denser attempt that contains every major and
// keeps the minor spacing.
func (s *DateSupplier) minors(denser []dateAttempt, majors []float64) []Decoration {
	for _, a := range denser {
		if !containsAll(a.values, majors) || !a.tools.CheckSpacing(a.values, s.opts.MinMinorSpacing) {
			continue
		}
		return a.tools.MakeSubLines(without(a.values, majors))
	}
	return nil
}

func containsAll(values, sub []float64) bool {
	set := make(map[float64]bool, len(values))
	for _, v := range values {
		set[pow10.Sig15(v)] = true
	}
	for _, v := range sub {
		if !set[pow10.Sig15(v)] {
			return false
		}
	}
	return true
}
