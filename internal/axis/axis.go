// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package axis turns tick sequences into non-colliding, labeled axis
// decorations.
//
// The package consumes three collaborators: a [Mapper] between data values
// and screen coordinates, a [TextMeasurer] for label extents, and a
// [Formatter] for label text. [Tools] combines them into the primitive
// operations (data value generation, spacing, uniqueness and fit checks),
// and the suppliers ([LogSupplier], [LinearSupplier], [DateSupplier]) search
// for the densest decorations an axis can carry.
package axis

import "fmt"

// Orientation is the direction along which an axis' labels are laid out.
type Orientation int

const (
	// Horizontal axes lay labels side by side, so their width matters.
	Horizontal Orientation = iota
	// Vertical axes stack labels, so their height matters.
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// A Mapper converts between data values and screen coordinates. It must be
// monotonic over the domain of interest.
type Mapper interface {
	ScreenValue(data float64) float64
	DataValue(screen float64) float64
	DataMin() float64
	DataMax() float64
}

// A TextMeasurer returns the extent of text along an axis' label direction.
type TextMeasurer interface {
	SizeByOrientation(text string, o Orientation) float64
}

// A Formatter converts a value to a label. Equal inputs must produce equal
// outputs.
type Formatter interface {
	Format(v float64) string
}

// FormatterFunc adapts a function to a [Formatter].
type FormatterFunc func(v float64) string

func (f FormatterFunc) Format(v float64) string {
	return f(v)
}

// A Decoration is one tick on an axis.
type Decoration struct {
	// Value is the data value of the tick.
	Value float64
	// Coordinate is Value mapped to the screen.
	Coordinate float64
	// Label is the tick's text, or "" for unlabeled (minor) ticks.
	Label string

	Visible bool
	// Heavy is set for major ticks.
	Heavy bool
}

// Decorations is the result of laying out one axis.
type Decorations struct {
	Major, Minor []Decoration
}

// Values returns the data values of ds.
func Values(ds []Decoration) []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i] = d.Value
	}
	return out
}
