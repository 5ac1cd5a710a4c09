// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axis

import (
	"math"
	"slices"

	"github.com/aclements/benchaxis/internal/pow10"
	"github.com/aclements/benchaxis/internal/sequence"
	"github.com/bits-and-blooms/bitset"
)

// Tools are the layout primitives shared by the suppliers. A Tools is bound
// to one mapping and is not safe for concurrent use.
type Tools struct {
	mapper   Mapper
	measurer TextMeasurer
	orient   Orientation

	format Formatter
	// autoFormat is set when format was not supplied by the caller, in
	// which case FitFormatter may replace it.
	autoFormat bool

	// Cached by IsMultiple; recomputed when the multiple changes.
	multiple       float64
	multiplier     float64
	scaledMultiple float64
}

// NewTools returns Tools over mapper. If format is nil, labels are formatted
// by a [DecimalFormatter] that [Tools.FitFormatter] adjusts to the values
// being labeled.
func NewTools(mapper Mapper, measurer TextMeasurer, orient Orientation, format Formatter) *Tools {
	t := &Tools{mapper: mapper, measurer: measurer, orient: orient}
	if format == nil {
		t.format = NewDecimalFormatter(0)
		t.autoFormat = true
	} else {
		t.format = format
	}
	return t
}

func (t *Tools) Mapper() Mapper           { return t.mapper }
func (t *Tools) Orientation() Orientation { return t.orient }
func (t *Tools) Formatter() Formatter     { return t.format }

// SetFormatter installs f as the label formatter. FitFormatter leaves it
// alone afterwards.
func (t *Tools) SetFormatter(f Formatter) {
	t.format = f
	t.autoFormat = false
}

// SetMaxDecimals installs a DecimalFormatter limited to n fraction digits.
func (t *Tools) SetMaxDecimals(n int) {
	t.SetFormatter(NewDecimalFormatter(n))
}

// FitFormatter sizes an automatic formatter's fraction digits to values. It
// does nothing if the caller supplied a formatter.
func (t *Tools) FitFormatter(values []float64) {
	if !t.autoFormat {
		return
	}
	if d := decimalsFor(values); d != t.format.(*DecimalFormatter).MaxDecimals() {
		t.format = NewDecimalFormatter(d)
	}
}

// MakeDataValues enumerates seq over [min, max], starting at seq.Floor(min)
// and ending at the first value at or above max. If multiple is non-zero,
// only multiples of it are kept. Non-zero values with magnitude below
// epsilon are dropped.
//
// A degenerate range yields a single value: min if min == max, and the
// finite endpoint if the other is not finite.
func (t *Tools) MakeDataValues(seq sequence.Sequence, min, max, multiple, epsilon float64) []float64 {
	if min == max {
		return []float64{min}
	}
	if !isFinite(min) {
		return []float64{max}
	}
	if !isFinite(max) {
		return []float64{min}
	}
	var out []float64
	it := sequence.NewIterator(seq, min, max)
	for it.Next() {
		v := it.Value()
		if multiple != 0 && !t.IsMultiple(v, multiple) {
			continue
		}
		if v != 0 && math.Abs(v) < epsilon {
			continue
		}
		out = append(out, v)
	}
	return out
}

// IsMultiple reports whether v is an integer multiple of multiple, after
// rounding away binary representation error. Zero is a multiple of
// everything and every value is a multiple of zero.
func (t *Tools) IsMultiple(v, multiple float64) bool {
	if multiple == 0 {
		return true
	}
	if multiple != t.multiple || t.multiplier == 0 {
		t.multiple = multiple
		t.multiplier = pow10.Scientific(1, pow10.DecimalPlaces(multiple))
		t.scaledMultiple = math.Abs(math.Round(multiple * t.multiplier))
	}
	scaled := pow10.Sig15(v * t.multiplier)
	if scaled != math.Round(scaled) {
		return false
	}
	return math.Mod(scaled, t.scaledMultiple) == 0
}

// CheckSpacing reports whether every pair of consecutive values is at least
// minSpacing apart on screen.
func (t *Tools) CheckSpacing(values []float64, minSpacing float64) bool {
	for i := 1; i < len(values); i++ {
		d := math.Abs(t.mapper.ScreenValue(values[i]) - t.mapper.ScreenValue(values[i-1]))
		if !(d >= minSpacing) {
			return false
		}
	}
	return true
}

// AllLabelsUnique reports whether the formatter gives every value a distinct
// label.
func (t *Tools) AllLabelsUnique(values []float64) bool {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		l := t.label(v)
		if seen[l] {
			return false
		}
		seen[l] = true
	}
	return true
}

// DetectLabelCollision reports whether the labels of v1 and v2, centered on
// their screen positions, overlap along the axis.
func (t *Tools) DetectLabelCollision(v1, v2 float64) bool {
	d := math.Abs(t.mapper.ScreenValue(v2) - t.mapper.ScreenValue(v1))
	half1 := t.measurer.SizeByOrientation(t.label(v1), t.orient) / 2
	half2 := t.measurer.SizeByOrientation(t.label(v2), t.orient) / 2
	return d < half1+half2
}

// AllLabelsFit reports whether no two consecutive labels collide.
func (t *Tools) AllLabelsFit(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if t.DetectLabelCollision(values[i-1], values[i]) {
			return false
		}
	}
	return true
}

// RemoveCollisionsWithZero drops values that land on the same screen pixel
// as an interior zero. If zero is absent or at either end, values is
// returned unchanged.
func (t *Tools) RemoveCollisionsWithZero(values []float64) []float64 {
	zi := slices.Index(values, 0)
	if zi <= 0 || zi == len(values)-1 {
		return values
	}
	zero := math.Round(t.mapper.ScreenValue(0))
	var drop bitset.BitSet
	for i, v := range values {
		if v != 0 && math.Round(t.mapper.ScreenValue(v)) == zero {
			drop.Set(uint(i))
		}
	}
	if drop.None() {
		return values
	}
	return filter(values, func(i int) bool { return !drop.Test(uint(i)) })
}

// ThinCollisions repeatedly drops every other value until the labels fit or
// a single value remains. The first value is always kept.
func (t *Tools) ThinCollisions(values []float64) []float64 {
	for len(values) > 1 && !t.AllLabelsFit(values) {
		var keep bitset.BitSet
		for i := 0; i < len(values); i += 2 {
			keep.Set(uint(i))
		}
		values = filter(values, func(i int) bool { return keep.Test(uint(i)) })
	}
	return values
}

// MakeLabels builds visible, labeled major decorations for values.
func (t *Tools) MakeLabels(values []float64) []Decoration {
	out := make([]Decoration, len(values))
	for i, v := range values {
		v = pow10.Sig15(v)
		out[i] = Decoration{
			Value:      v,
			Coordinate: t.mapper.ScreenValue(v),
			Label:      t.label(v),
			Visible:    true,
			Heavy:      true,
		}
	}
	return out
}

// MakeSubLines builds unlabeled minor decorations for values.
func (t *Tools) MakeSubLines(values []float64) []Decoration {
	out := make([]Decoration, len(values))
	for i, v := range values {
		v = pow10.Sig15(v)
		out[i] = Decoration{
			Value:      v,
			Coordinate: t.mapper.ScreenValue(v),
			Visible:    true,
		}
	}
	return out
}

func (t *Tools) label(v float64) string {
	if v == 0 {
		v = 0
	}
	return t.format.Format(v)
}

func filter(values []float64, keep func(i int) bool) []float64 {
	out := make([]float64, 0, len(values))
	for i, v := range values {
		if keep(i) {
			out = append(out, v)
		}
	}
	return out
}

// withinRange returns the values in [min, max], comparing at 15 significant
// digits.
func withinRange(values []float64, min, max float64) []float64 {
	if min > max {
		min, max = max, min
	}
	lo, hi := pow10.Sig15(min), pow10.Sig15(max)
	return slices.DeleteFunc(slices.Clone(values), func(v float64) bool {
		v = pow10.Sig15(v)
		return v < lo || v > hi
	})
}

// without returns values minus any value also in exclude.
func without(values, exclude []float64) []float64 {
	set := make(map[float64]bool, len(exclude))
	for _, v := range exclude {
		set[pow10.Sig15(v)] = true
	}
	return slices.DeleteFunc(slices.Clone(values), func(v float64) bool {
		return set[pow10.Sig15(v)]
	})
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
