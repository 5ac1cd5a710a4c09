// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aclements/benchaxis/internal/axis"
	"github.com/aclements/benchaxis/internal/pow10"
	"golang.org/x/perf/benchproc"
)

func pointsKinds(pts []point, aes Aes) valueKinds {
	kinds := kindAll
	for _, pt := range pts {
		kinds &= pt.Get(aes).kinds
	}
	return kinds
}

// ordScale returns an ordinal scale from aes to [0, bound).
func ordScale(pts []point, aes Aes) (scale func(point) int, bound int) {
	kinds := pointsKinds(pts, aes)

	if kinds&kindDiscrete != 0 {
		// Collect all unique values.
		vals := make(map[benchproc.Key]struct{})
		for _, pt := range pts {
			vals[pt.Get(aes).key] = struct{}{}
		}
		ord := make(map[benchproc.Key]int)
		for i, k := range sortedKeys(vals) {
			ord[k] = i
		}
		return func(pt point) int {
			if idx, ok := ord[pt.Get(aes).key]; ok {
				return idx
			}
			panic("value has unmapped key")
		}, len(ord)
	}

	if kinds&kindContinuous != 0 {
		// Collect all unique values.
		set := make(map[float64]struct{})
		var sl []float64
		for _, pt := range pts {
			val := pt.Get(aes).val
			if _, ok := set[val]; !ok {
				set[val] = struct{}{}
				sl = append(sl, val)
			}
		}
		sort.Float64s(sl)

		ord := make(map[float64]int)
		for i, k := range sl {
			ord[k] = i
		}
		return func(pt point) int {
			if idx, ok := ord[pt.Get(aes).val]; ok {
				return idx
			}
			panic("value has unmapped key")
		}, len(ord)
	}

	panic(aes.Name() + " is neither discrete nor continuous")
}

// An axisLayout is the computed layout of one axis of one facet.
type axisLayout struct {
	aes    Aes
	kind   ScaleKind
	time   bool
	length float64

	// lo and hi are the data range shown, which may extend past the data.
	lo, hi float64

	mapper axis.Mapper
	dec    axis.Decorations
	label  string
}

// screen maps a data value to its coordinate along the axis.
func (a *axisLayout) screen(v float64) float64 {
	return a.mapper.ScreenValue(v)
}

func (p *Plot) axisLength(aes Aes) float64 {
	// Leave room for tick labels and the axis label.
	if aes == AesY {
		return float64(p.layout.Height - 80)
	}
	return float64(p.layout.Width - 120)
}

// dataRange returns the extent of aes over pts, including any confidence
// intervals.
func dataRange(pts []point, aes Aes) (lo, hi float64) {
	for i, pt := range pts {
		l, h := pt.Get(aes).bounds()
		if i == 0 {
			lo, hi = l, h
		} else {
			lo, hi = min(lo, l), max(hi, h)
		}
	}
	return
}

// layoutAxis lays out the axis for aes over pts.
func (p *Plot) layoutAxis(pts []point, aes Aes) (*axisLayout, error) {
	kinds := pointsKinds(pts, aes)
	if kinds&kindContinuous == 0 {
		return nil, fmt.Errorf("%s data must be numeric", aes.Name())
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("no %s data", aes.Name())
	}

	l := &axisLayout{
		aes:    aes,
		kind:   p.scale.Get(aes),
		time:   kinds&kindTime != 0,
		length: p.axisLength(aes),
		label:  p.axisLabel(pts, aes),
	}
	lo, hi := dataRange(pts, aes)
	if isInf(lo) || isInf(hi) || math.IsNaN(lo) || math.IsNaN(hi) {
		return nil, fmt.Errorf("%s data is not finite", aes.Name())
	}
	lay := p.layout
	measurer, orient := lay.Measurer, aes.orientation()
	format := p.axisFormatter(pts, aes, hi)

	switch {
	case l.time:
		if l.kind != ScaleLinear {
			return nil, fmt.Errorf("%s: time data requires a linear scale", aes.Name())
		}
		mapping := func(min, max float64) axis.Mapper {
			return axis.NewLinearMapper(min, max, 0, l.length)
		}
		s := axis.NewDateSupplier(mapping, measurer, orient, axis.DateOptions{
			MinMajorSpacing: lay.MinMajorSpacing,
			MinMinorSpacing: lay.MinMinorSpacing,
			Trace:           lay.Trace,
		})
		l.dec, l.lo, l.hi = s.Decorations(lo, hi)
		l.mapper = mapping(l.lo, l.hi)

	case l.kind == ScaleLinear:
		mapping := func(min, max float64) axis.Mapper {
			return axis.NewLinearMapper(min, max, 0, l.length)
		}
		s := axis.NewLinearSupplier(mapping, measurer, orient, format, axis.LinearOptions{
			Sections:        lay.Sections,
			MinMajorSpacing: lay.MinMajorSpacing,
			MinMinorSpacing: lay.MinMinorSpacing,
			Trace:           lay.Trace,
		})
		l.dec, l.lo, l.hi = s.Decorations(lo, hi)
		l.mapper = mapping(l.lo, l.hi)

	case l.kind == ScaleLog:
		if lo <= 0 && hi >= 0 {
			return nil, fmt.Errorf("%s: log scale requires data of one sign, have [%v, %v]; try -mirror-log", aes.Name(), lo, hi)
		}
		m, err := axis.NewLogMapper(lo, hi, 0, l.length)
		if err != nil {
			return nil, err
		}
		eps := pow10.Floor(min(math.Abs(lo), math.Abs(hi)))
		if err := p.layoutLog(l, m, format, eps, lo, hi); err != nil {
			return nil, err
		}

	case l.kind == ScaleMirrorLog:
		eps := lay.MirrorEpsilon
		if eps <= 0 {
			eps = smallestMagnitude(pts, aes)
		}
		if lo == hi {
			lo, hi = lo-eps, hi+eps
		}
		m, err := axis.NewMirrorLogMapper(lo, hi, eps, 0, l.length)
		if err != nil {
			return nil, err
		}
		if err := p.layoutLog(l, m, format, eps, lo, hi); err != nil {
			return nil, err
		}

	default:
		panic(fmt.Sprintf("unknown scale kind %v", l.kind))
	}
	return l, nil
}

func (p *Plot) layoutLog(l *axisLayout, m axis.Mapper, format axis.Formatter, eps, lo, hi float64) error {
	lay := p.layout
	tools := axis.NewTools(m, lay.Measurer, l.aes.orientation(), format)
	s, err := axis.NewLogSupplier(tools, axis.LogOptions{
		Epsilon:         eps,
		MinMajorSpacing: lay.MinMajorSpacing,
		MinMinorSpacing: lay.MinMinorSpacing,
		MajorIntervals:  lay.MajorIntervals,
		MinorIntervals:  lay.MinorIntervals,
		Trace:           lay.Trace,
	})
	if err != nil {
		return fmt.Errorf("%s axis: %w", l.aes.Name(), err)
	}
	l.mapper, l.lo, l.hi = m, lo, hi
	l.dec = s.Decorations(lo, hi)
	return nil
}

// smallestMagnitude returns the power of ten at or below the smallest
// non-zero magnitude of aes in pts, or 1 if all values are zero.
func smallestMagnitude(pts []point, aes Aes) float64 {
	small := math.Inf(1)
	for _, pt := range pts {
		l, h := pt.Get(aes).bounds()
		for _, v := range []float64{l, h} {
			if v != 0 {
				small = min(small, math.Abs(v))
			}
		}
	}
	if isInf(small) {
		return 1
	}
	return pow10.Floor(small)
}

// axisFormatter returns the label formatter for aes, or nil to let the
// suppliers pick decimal places. The dependent variable is labeled with the
// unit prefix of its largest value.
func (p *Plot) axisFormatter(pts []point, aes Aes, hi float64) axis.Formatter {
	if !p.aes.Get(aes).dv || pointsKinds(pts, aes)&kindRatio != 0 {
		return nil
	}
	unit := ""
	if units := p.units(pts); len(units) == 1 {
		unit = units[0]
	}
	if p.scale.Get(aes) != ScaleLinear {
		// Log axis labels span decades and need their own prefixes.
		return axis.NewUnitFormatter(nil, unit)
	}
	// Scale for the largest value only. Otherwise the scale keeps precision
	// for the *smallest* value, which isn't what you want on an axis.
	return axis.NewUnitFormatter([]float64{math.Abs(hi)}, unit)
}

// units returns the distinct units of pts in order of appearance.
func (p *Plot) units(pts []point) []string {
	var names []string
	seen := make(map[string]bool)
	for _, pt := range pts {
		n := p.unitOf(pt)
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	return names
}

func (p *Plot) axisLabel(pts []point, aes Aes) string {
	projection := p.aes.Get(aes)
	if !projection.dv {
		return projection.String()
	}
	if pointsKinds(pts, aes)&kindRatio != 0 {
		return "ratio"
	}
	// We can wind up with multiple units if, say, -color is configured to
	// .unit. In that case, we combine all of the units.
	return strings.Join(p.units(pts), ", ")
}

func isInf(v float64) bool {
	return math.IsInf(v, 0)
}
