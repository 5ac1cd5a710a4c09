// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pow10 implements power-of-10 arithmetic that stays exact under
// binary floating point where it matters for tick placement.
//
// All exponent-based functions require a positive argument. Passing zero, a
// negative value, or NaN panics with [ErrNonPositive]; callers working on a
// signed domain operate on the two halves separately.
package pow10

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrNonPositive is the panic value for exponent functions called with a
// value that is not strictly positive.
var ErrNonPositive = errors.New("pow10: value must be positive")

// log10E is log10(e) to 16 digits. math.Log10E can disagree with other
// environments in its last bit, which changes how exact powers of ten round
// in Exponent.
const log10E = 0.4342944819032518

// isPowerOf10Tolerance is the maximum distance of Exponent(v) from an
// integer for v to count as a power of ten.
const isPowerOf10Tolerance = 1e-7

// Scientific returns significand × 10^exponent. Negative exponents divide by
// the positive power rather than multiplying by a fractional one, so
// Scientific(6, -1) is exactly 0.6.
func Scientific(significand float64, exponent int) float64 {
	if exponent >= 0 {
		if exponent > 308 {
			return significand * math.Pow10(308) * math.Pow10(exponent-308)
		}
		return significand * math.Pow10(exponent)
	}
	if exponent < -308 {
		return significand / math.Pow10(308) / math.Pow10(-exponent-308)
	}
	return significand / math.Pow10(-exponent)
}

func checkPositive(v float64) {
	if !(v > 0) {
		panic(ErrNonPositive)
	}
}

// Exponent returns log10(v).
func Exponent(v float64) float64 {
	checkPositive(v)
	return math.Log(v) * log10E
}

// FloorExponent returns the largest e such that 10^e <= v.
func FloorExponent(v float64) int {
	e := int(math.Floor(Exponent(v)))
	// Exponent can land a hair off an exact integer.
	if Scientific(1, e+1) <= v {
		e++
	} else if Scientific(1, e) > v {
		e--
	}
	return e
}

// CeilExponent returns the smallest e such that 10^e >= v.
func CeilExponent(v float64) int {
	e := int(math.Ceil(Exponent(v)))
	if Scientific(1, e-1) >= v {
		e--
	} else if Scientific(1, e) < v {
		e++
	}
	return e
}

// RoundExponent returns log10(v) rounded to the nearest integer. This is a
// logarithmic rounding; see [Round] for rounding v itself.
func RoundExponent(v float64) int {
	return int(math.Round(Exponent(v)))
}

// IsPowerOf10 reports whether v is an integral power of ten, within a small
// tolerance on the exponent.
func IsPowerOf10(v float64) bool {
	e := Exponent(v)
	return math.Abs(e-math.Round(e)) < isPowerOf10Tolerance
}

// Floor returns the largest power of ten <= v.
func Floor(v float64) float64 {
	return Scientific(1, FloorExponent(v))
}

// Ceil returns the smallest power of ten >= v.
func Ceil(v float64) float64 {
	return Scientific(1, CeilExponent(v))
}

// Round returns the power of ten numerically closest to v. The midpoint
// between two powers is arithmetic, not geometric: Round(88) is 100,
// Round(549) is 100 and Round(550) is 1000.
func Round(v float64) float64 {
	lo, hi := Floor(v), Ceil(v)
	if v-lo < hi-v {
		return lo
	}
	return hi
}

// RoundSig rounds v to the given number of significant decimal digits. Zero,
// infinities and NaN are returned unchanged.
func RoundSig(v float64, digits int) float64 {
	if v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', digits, 64), 64)
	if err != nil {
		// FormatFloat output always parses.
		panic(err)
	}
	return r
}

// Sig15 rounds v to 15 significant digits, which removes the noise left by
// most float64 arithmetic on decimal quantities.
func Sig15(v float64) float64 {
	return RoundSig(v, 15)
}

// DecimalPlaces returns the number of digits after the decimal point needed
// to write v (rounded to 15 significant digits) exactly.
func DecimalPlaces(v float64) int {
	v = math.Abs(Sig15(v))
	if v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	e, err := strconv.Atoi(exp)
	if err != nil {
		panic(err)
	}
	frac := 0
	if _, f, ok := strings.Cut(mant, "."); ok {
		frac = len(f)
	}
	return max(0, frac-e)
}

// Significand returns the significant digits of v as an integer, with
// leading and trailing zeros and the decimal point removed. For example,
// 2500 and 0.025 both yield 25. It returns 0 for 0.
func Significand(v float64) int64 {
	v = math.Abs(Sig15(v))
	if v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mant, _, _ := strings.Cut(s, "e")
	mant = strings.Replace(mant, ".", "", 1)
	n, err := strconv.ParseInt(mant, 10, 64)
	if err != nil {
		panic(err)
	}
	return n
}
