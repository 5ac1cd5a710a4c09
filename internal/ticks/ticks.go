// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ticks finds round tick boundaries around a numeric range.
package ticks

import (
	"fmt"
	"math"

	"github.com/aclements/benchaxis/internal/pow10"
)

// maxSearchDepth is the number of unit scales tried, starting at
// 5×10^magnitude and dividing by ten each time.
const maxSearchDepth = 5

// maxScore is the worst ScoreNumber a section size may have to be
// considered.
const maxScore = 4

// maxGridIndex bounds |start/unit|. Further from zero, start points on the
// unit grid no longer survive rounding to 15 significant digits, so that
// unit scale is skipped.
const maxGridIndex = 1e14

// Margins bounds how far the chosen end points may sit from the target range,
// as fractions of the chosen span (endPoint - startPoint). On each side the
// gap between target and end point must lie in [Inside, Outside]. A negative
// Inside allows the end point to cut into the target range.
type Margins struct {
	StartInside, StartOutside float64
	EndInside, EndOutside     float64
}

// DefaultMargins allows each end point to extend up to 20% past the target.
var DefaultMargins = Margins{StartOutside: 0.2, EndOutside: 0.2}

func (m Margins) check() {
	for _, v := range []float64{m.StartInside, m.StartOutside, m.EndInside, m.EndOutside} {
		if !(v >= -1 && v <= 1) {
			panic(fmt.Sprintf("margin %v outside [-1, 1]", v))
		}
	}
	if m.StartOutside+m.EndOutside >= 1 {
		panic(fmt.Sprintf("outside margins %v + %v must sum to less than 1", m.StartOutside, m.EndOutside))
	}
	if m.StartInside > m.StartOutside {
		panic(fmt.Sprintf("start inside margin %v exceeds outside margin %v", m.StartInside, m.StartOutside))
	}
	if m.EndInside > m.EndOutside {
		panic(fmt.Sprintf("end inside margin %v exceeds outside margin %v", m.EndInside, m.EndOutside))
	}
}

// A ScoreFunc rates a candidate (startPoint, endPoint) whose sections are
// step wide. Higher is better.
type ScoreFunc func(startPoint, endPoint, step float64) float64

// DefaultScore prefers tight spans with round steps, and start points that
// are themselves multiples of the step.
func DefaultScore(startPoint, endPoint, step float64) float64 {
	span := endPoint - startPoint
	score := -span * (1 + ScoreNumber(pow10.Significand(step))/4)
	if n := pow10.Sig15(startPoint / step); n != math.Round(n) {
		score -= span / 2
	}
	return score
}

// ScoreNumber rates how round the positive integer n is. Lower is rounder.
// Trailing zeros are ignored; 1 and 5 score 0.5, and other numbers score
// 2×⌊log10 n⌋ plus 1 if n is odd plus 2 if n is not a multiple of 5.
func ScoreNumber(n int64) float64 {
	if n <= 0 {
		panic(fmt.Sprintf("ScoreNumber(%d): n must be positive", n))
	}
	for n%10 == 0 {
		n /= 10
	}
	if n == 1 || n == 5 {
		return 0.5
	}
	score := 2 * math.Floor(math.Log10(float64(n)))
	score += float64(n % 2)
	if n%5 != 0 {
		score += 2
	}
	return score
}

// PositionAroundRange finds a (startPoint, endPoint) enclosing
// [startTarget, endTarget] within margins m such that the span splits into
// sections equal steps, each an integer multiple of 5×10^k for some k.
// If the target straddles zero, 0 falls on a section boundary. Among the
// candidates, the one maximising score wins; a nil score uses
// [DefaultScore]. If no round candidate exists, it returns
// [RobustAroundRange].
//
// It panics if endTarget <= startTarget, sections < 1, or m is inconsistent.
func PositionAroundRange(startTarget, endTarget float64, m Margins, sections int, score ScoreFunc) (startPoint, endPoint float64) {
	if !(endTarget > startTarget) {
		panic(fmt.Sprintf("empty target range [%v, %v]", startTarget, endTarget))
	}
	if sections < 1 {
		panic(fmt.Sprintf("%d sections", sections))
	}
	m.check()
	if score == nil {
		score = DefaultScore
	}

	target := endTarget - startTarget
	// The span L satisfies L(1-so-eo) <= target <= L(1-si-ei).
	minSpan := target / (1 - m.StartInside - m.EndInside)
	maxSpan := target / (1 - m.StartOutside - m.EndOutside)
	straddles := startTarget < 0 && endTarget > 0

	magnitude := pow10.FloorExponent(target)
	found := false
	bestScore := math.Inf(-1)
	prevHad := false
	for depth := range maxSearchDepth {
		unit := pow10.Scientific(5, magnitude-depth)
		had := false

		minSize := int64(math.Ceil(pow10.Sig15(minSpan / (float64(sections) * unit))))
		maxSize := int64(math.Floor(pow10.Sig15(maxSpan / (float64(sections) * unit))))
		for size := max(1, minSize); size <= maxSize; size++ {
			if ScoreNumber(size) > maxScore {
				continue
			}
			span := float64(int64(sections)*size) * unit
			lo, hi, ok := startRange(startTarget, endTarget, span, m, straddles, sections, size, unit)
			if !ok || math.Abs(lo/unit) > maxGridIndex || math.Abs(hi/unit) > maxGridIndex {
				continue
			}
			// Start points are in units of unit, or of a whole section
			// if zero must be a boundary.
			stride := int64(1)
			if straddles {
				stride = size
			}
			first := int64(math.Ceil(pow10.Sig15(lo/unit/float64(stride)))) * stride
			for a := first; float64(a)*unit <= hi; a += stride {
				start := pow10.Sig15(float64(a) * unit)
				end := pow10.Sig15(start + span)
				if !m.covers(startTarget, endTarget, start, end) {
					// Rounding moved an end point off the target.
					continue
				}
				step := pow10.Sig15(float64(size) * unit)
				if s := score(start, end, step); !found || s > bestScore {
					startPoint, endPoint, bestScore = start, end, s
					found = true
				}
				had = true
			}
		}

		if had && prevHad {
			break
		}
		prevHad = had
	}

	if !found {
		return RobustAroundRange(startTarget, endTarget, sections)
	}
	return startPoint, endPoint
}

// startRange returns the interval of valid start points for a span of the
// given width.
func startRange(startTarget, endTarget, span float64, m Margins, straddles bool, sections int, size int64, unit float64) (lo, hi float64, ok bool) {
	// startTarget - start ∈ [si·L, so·L]
	lo = startTarget - m.StartOutside*span
	hi = startTarget - m.StartInside*span
	// start + L - endTarget ∈ [ei·L, eo·L]
	lo = max(lo, endTarget+m.EndInside*span-span)
	hi = min(hi, endTarget+m.EndOutside*span-span)

	switch {
	case straddles:
	case startTarget >= 0:
		// Don't cross zero for a positive range.
		lo = max(lo, 0)
	default:
		// Nor for a negative one: the end point stays <= 0.
		hi = min(hi, -float64(int64(sections)*size)*unit)
	}

	// Tolerate float noise at the margin bounds, but never let the span
	// cut into the target unless an inside margin allows it.
	slack := span * 1e-10
	lo, hi = lo-slack, hi+slack
	if m.StartInside >= 0 {
		hi = min(hi, startTarget)
	}
	if m.EndInside >= 0 {
		lo = max(lo, endTarget-span)
	}
	return lo, hi, lo <= hi
}

// covers reports whether [start, end] contains the target on every side
// whose inside margin is non-negative.
func (m Margins) covers(startTarget, endTarget, start, end float64) bool {
	if m.StartInside >= 0 && start > startTarget {
		return false
	}
	if m.EndInside >= 0 && end < endTarget {
		return false
	}
	return true
}

// RobustAroundRange always finds end points for [start, end], though not
// necessarily round ones. If the range straddles zero and sections > 1, it
// splits sections between the two sides so that 0 lands on a boundary and
// both sides share the larger of the two step sizes. Otherwise it returns
// start and end unchanged.
func RobustAroundRange(start, end float64, sections int) (float64, float64) {
	if !(start < 0 && end > 0) || sections <= 1 {
		return start, end
	}
	above := int(math.Round(float64(sections) * end / (end - start)))
	above = min(max(above, 1), sections-1)
	below := sections - above
	size := max(end/float64(above), -start/float64(below))
	// The products can land an ulp inside the range.
	return min(-float64(below)*size, start), max(float64(above)*size, end)
}
