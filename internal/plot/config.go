// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"

	"github.com/aclements/benchaxis/internal/axis"
	"golang.org/x/perf/benchproc"
)

// ScaleKind selects how an axis aesthetic maps data to the screen.
type ScaleKind int

const (
	ScaleLinear ScaleKind = iota
	// ScaleLog is a base-10 log axis. All data must have the same sign.
	ScaleLog
	// ScaleMirrorLog is a signed log axis that is linear near zero.
	ScaleMirrorLog
)

func (k ScaleKind) String() string {
	switch k {
	case ScaleLinear:
		return "linear"
	case ScaleLog:
		return "log"
	case ScaleMirrorLog:
		return "mirror-log"
	}
	return fmt.Sprintf("ScaleKind(%d)", int(k))
}

// Layout controls the size of each facet and how densely its axes are
// decorated. Zero fields take the values of [DefaultLayout].
type Layout struct {
	// Width and Height are the size of one facet, in pixels.
	Width, Height int

	MinMajorSpacing float64
	MinMinorSpacing float64
	// Sections is the preferred number of major intervals on linear axes.
	Sections int

	// MajorIntervals and MinorIntervals are the in-decade multipliers
	// tried on log axes.
	MajorIntervals []float64
	MinorIntervals []float64

	// MirrorEpsilon is the zero-gap half-width of mirror-log axes. If 0,
	// it is derived from the smallest non-zero magnitude in the data.
	MirrorEpsilon float64

	// Measurer sizes labels. If nil, a 7x13 fixed-width font is assumed.
	Measurer axis.TextMeasurer

	// Trace, if non-nil, receives the suppliers' search diagnostics.
	Trace func(format string, args ...any)
}

// DefaultLayout is a 640x480 facet with gridlines at least 40 pixels apart.
var DefaultLayout = Layout{
	Width:           640,
	Height:          480,
	MinMajorSpacing: 40,
	MinMinorSpacing: 10,
	Sections:        5,
	MajorIntervals:  []float64{1, 2, 5},
	MinorIntervals:  []float64{1, 2, 5},
}

func (l Layout) withDefaults() Layout {
	d := DefaultLayout
	if l.Width <= 0 {
		l.Width = d.Width
	}
	if l.Height <= 0 {
		l.Height = d.Height
	}
	if l.MinMajorSpacing <= 0 {
		l.MinMajorSpacing = d.MinMajorSpacing
	}
	if l.MinMinorSpacing <= 0 {
		l.MinMinorSpacing = d.MinMinorSpacing
	}
	if l.Sections <= 0 {
		l.Sections = d.Sections
	}
	if len(l.MajorIntervals) == 0 {
		l.MajorIntervals = d.MajorIntervals
	}
	if len(l.MinorIntervals) == 0 {
		l.MinorIntervals = d.MinorIntervals
	}
	if l.Measurer == nil {
		l.Measurer = axis.NewFontMeasurer(nil)
	}
	return l
}

type Config struct {
	aes aesMap[projection]

	scale  aesMap[ScaleKind]
	layout Layout
}

func NewConfig() *Config {
	return &Config{}
}

// SetIV maps independent variable iv to aesthetic aes.
func (c *Config) SetIV(aes Aes, iv *benchproc.Projection) {
	fields := iv.Fields()
	var ivField *benchproc.Field
	if len(fields) == 1 && !fields[0].IsTuple {
		ivField = fields[0]
	}
	var unitField *benchproc.Field
	for _, field := range fields {
		if field.Name == ".unit" {
			unitField = field
		}
	}
	c.aes.Set(aes, projection{iv: iv, ivField: ivField, unitField: unitField})
}

// SetDV maps the dependent variable to aesthetic aes.
func (c *Config) SetDV(aes Aes) {
	c.aes.Set(aes, projection{dv: true})
}

// SetScale sets the axis aesthetic aes to use the given scale. It panics if
// aes is not an axis.
func (c *Config) SetScale(aes Aes, kind ScaleKind) {
	if !aes.IsAxis() {
		panic(aes.Name() + " is not an axis")
	}
	c.scale.Set(aes, kind)
}

// SetLayout sets the facet size and decoration density.
func (c *Config) SetLayout(l Layout) {
	c.layout = l
}
