// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axis

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FontMeasurer measures labels set in a font face, in pixels.
type FontMeasurer struct {
	Face font.Face
}

var _ TextMeasurer = (*FontMeasurer)(nil)

// NewFontMeasurer returns a measurer for face. A nil face selects the 7x13
// fixed-width face, which matches gnuplot's default label size closely
// enough for layout.
func NewFontMeasurer(face font.Face) *FontMeasurer {
	if face == nil {
		face = basicfont.Face7x13
	}
	return &FontMeasurer{face}
}

// SizeByOrientation returns the advance width of text for horizontal axes
// and the line height for vertical axes.
func (m *FontMeasurer) SizeByOrientation(text string, o Orientation) float64 {
	if o == Vertical {
		return float64(m.Face.Metrics().Height.Ceil())
	}
	return float64(font.MeasureString(m.Face, text).Ceil())
}
