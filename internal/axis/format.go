// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axis

import (
	"math"
	"strconv"

	"github.com/aclements/benchaxis/internal/pow10"
	"golang.org/x/perf/benchunit"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// maxDecimals bounds the fraction digits any automatically fitted formatter
// will print.
const maxDecimals = 15

// Outside this magnitude range, decimal notation gets unwieldy and
// DecimalFormatter switches to scientific notation.
const (
	sciAbove = 1e15
	sciBelow = 1e-6
)

// DecimalFormatter formats values in English decimal notation with digit
// grouping and at most a fixed number of fraction digits.
type DecimalFormatter struct {
	decimals int
	p        *message.Printer
}

var _ Formatter = (*DecimalFormatter)(nil)

// NewDecimalFormatter returns a formatter that prints at most decimals
// fraction digits. Negative values are treated as 0.
func NewDecimalFormatter(decimals int) *DecimalFormatter {
	if decimals < 0 {
		decimals = 0
	}
	return &DecimalFormatter{decimals, message.NewPrinter(language.English)}
}

// MaxDecimals returns the fraction digit limit of f.
func (f *DecimalFormatter) MaxDecimals() int {
	return f.decimals
}

func (f *DecimalFormatter) Format(v float64) string {
	if v == 0 {
		// Also drops the sign of negative zero.
		return "0"
	}
	if a := math.Abs(v); a >= sciAbove || a < sciBelow {
		return strconv.FormatFloat(pow10.Sig15(v), 'g', -1, 64)
	}
	return f.p.Sprint(number.Decimal(v, number.MaxFractionDigits(f.decimals)))
}

// FormatterFor returns a DecimalFormatter with just enough fraction digits
// to print every value in values exactly.
func FormatterFor(values []float64) *DecimalFormatter {
	return NewDecimalFormatter(decimalsFor(values))
}

func decimalsFor(values []float64) int {
	d := 0
	for _, v := range values {
		if v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		d = max(d, pow10.DecimalPlaces(pow10.Sig15(v)))
	}
	return min(d, maxDecimals)
}

// UnitFormatter formats values of a benchmark unit with an SI or binary
// prefix, as in "1.5M" or "64Ki".
type UnitFormatter struct {
	cls benchunit.Class
	// scaler is the scale shared by all labels, or nil to scale each label
	// on its own.
	scaler *benchunit.Scaler
}

var _ Formatter = (*UnitFormatter)(nil)

// NewUnitFormatter returns a formatter for values in the given unit. If
// values is non-empty, every label uses the common scale of values.
// Otherwise each label gets its own prefix, which suits log axes.
func NewUnitFormatter(values []float64, unit string) *UnitFormatter {
	f := &UnitFormatter{cls: benchunit.ClassOf(unit)}
	if len(values) > 0 {
		s := benchunit.CommonScale(values, f.cls)
		f.scaler = &s
	}
	return f
}

// Prefix returns the unit prefix shared by every label, or "" if each label
// is scaled on its own.
func (f *UnitFormatter) Prefix() string {
	if f.scaler == nil {
		return ""
	}
	return f.scaler.Prefix
}

func (f *UnitFormatter) Format(v float64) string {
	if v == 0 {
		return "0"
	}
	if f.scaler == nil {
		return benchunit.Scale(v, f.cls)
	}
	return f.scaler.Format(v)
}
