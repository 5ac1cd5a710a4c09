// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ticks

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/benchaxis/internal/pow10"
)

func TestScoreNumber(t *testing.T) {
	assert.Equal(t, 0.5, ScoreNumber(1))
	assert.Equal(t, 0.5, ScoreNumber(5))
	assert.Equal(t, 0.5, ScoreNumber(1000))
	assert.Equal(t, 0.5, ScoreNumber(50))
	assert.Equal(t, 2.0, ScoreNumber(2))
	assert.Equal(t, 3.0, ScoreNumber(3))
	assert.Equal(t, 2.0, ScoreNumber(20))
	assert.Equal(t, 3.0, ScoreNumber(15))
	assert.Equal(t, 3.0, ScoreNumber(25))
	assert.Equal(t, 4.0, ScoreNumber(12))
	assert.Equal(t, 5.0, ScoreNumber(13))
	assert.Equal(t, 7.0, ScoreNumber(123))
	for n := int64(2); n < 1000; n++ {
		if pow10.Significand(float64(n)) == 1 || pow10.Significand(float64(n)) == 5 {
			continue
		}
		assert.Greater(t, ScoreNumber(n), ScoreNumber(1), "ScoreNumber(%d)", n)
	}
	assert.Panics(t, func() { ScoreNumber(0) })
}

func TestPositionAroundRange(t *testing.T) {
	for _, tc := range []struct {
		lo, hi     float64
		sections   int
		start, end float64
	}{
		{0, 97, 5, 0, 100},
		{3, 97, 5, 0, 100},
		{0.12, 0.87, 4, 0.1, 0.9},
		{-3, 17, 5, -5, 20},
		{-97, -3, 5, -100, 0},
		{1003, 1097, 5, 1000, 1100},
		{-1, 1, 4, -1, 1},
		{2e-9, 3.7e-9, 4, 2e-9, 4e-9},
		{12345, 12399, 5, 12330, 12405},
	} {
		start, end := PositionAroundRange(tc.lo, tc.hi, DefaultMargins, tc.sections, nil)
		assert.Equal(t, tc.start, start, "start for [%v, %v]/%d", tc.lo, tc.hi, tc.sections)
		assert.Equal(t, tc.end, end, "end for [%v, %v]/%d", tc.lo, tc.hi, tc.sections)
	}
}

func TestPositionAroundRangeProperties(t *testing.T) {
	margins := []Margins{
		DefaultMargins,
		{StartInside: 0, StartOutside: 0.1, EndInside: 0, EndOutside: 0.1},
		{StartInside: -0.05, StartOutside: 0.3, EndInside: 0.02, EndOutside: 0.4},
	}
	ranges := [][2]float64{
		{0, 1}, {-1, 1}, {-0.3, 7.1}, {-1234, 56}, {2e-9, 3.7e-9},
		{-0.004, 0.0017}, {12345, 12399}, {-8e12, -1e11}, {0.999, 1.001},
	}
	for _, m := range margins {
		for _, r := range ranges {
			lo, hi := r[0], r[1]
			for _, sections := range []int{1, 2, 3, 4, 5, 7, 10} {
				start, end := PositionAroundRange(lo, hi, m, sections, nil)
				require.Less(t, start, end)
				span := end - start

				if lo < 0 && hi > 0 && sections > 1 {
					n := pow10.Sig15(-start / (span / float64(sections)))
					assert.Equal(t, math.Round(n), n, "0 is not a tick in [%v, %v]/%d", start, end, sections)
				}
				if m.StartInside >= 0 && m.EndInside >= 0 {
					assert.LessOrEqual(t, start, lo)
					assert.GreaterOrEqual(t, end, hi)
				}

				rs, re := RobustAroundRange(lo, hi, sections)
				if start == rs && end == re {
					// Fell back; margins need not hold.
					continue
				}
				slack := span * 1e-9
				assert.GreaterOrEqual(t, lo-start, m.StartInside*span-slack)
				assert.LessOrEqual(t, lo-start, m.StartOutside*span+slack)
				assert.GreaterOrEqual(t, end-hi, m.EndInside*span-slack)
				assert.LessOrEqual(t, end-hi, m.EndOutside*span+slack)
				if lo >= 0 {
					assert.GreaterOrEqual(t, start, 0.0)
				} else if hi <= 0 {
					assert.LessOrEqual(t, end, 0.0)
				}
			}
		}
	}
}

func TestPositionAroundRangeNarrow(t *testing.T) {
	// Ranges only a few ulps wide, far from zero. The unit grid cannot be
	// represented at 15 significant digits, so these must neither loop
	// forever nor return end points that miss the target.
	ranges := [][2]float64{
		{805774.3880281931, 805774.388028194},
		{207.95620456585496, 207.95620456615168},
		{40057.57462916302, 40057.57462916312},
		{-40057.57462916312, -40057.57462916302},
		{1e17, 1e17 + 64},
		{0.3, 0.30000000000000004},
		{-2.16e-11, 9.296},
	}
	for _, r := range ranges {
		lo, hi := r[0], r[1]
		for sections := 1; sections <= 10; sections++ {
			start, end := PositionAroundRange(lo, hi, DefaultMargins, sections, nil)
			assert.LessOrEqual(t, start, lo, "start for [%v, %v]/%d", lo, hi, sections)
			assert.GreaterOrEqual(t, end, hi, "end for [%v, %v]/%d", lo, hi, sections)
		}
	}

	// A negative sample within float noise of zero stays on the axis.
	start, end := PositionAroundRange(-2.16e-11, 9.296, DefaultMargins, 7, nil)
	assert.Less(t, start, 0.0)
	assert.GreaterOrEqual(t, end, 9.296)
}

func TestPositionAroundRangeScore(t *testing.T) {
	// A score preferring wide spans picks the loosest candidate.
	wide := func(start, end, step float64) float64 { return end - start }
	start, end := PositionAroundRange(0, 80, DefaultMargins, 4, wide)
	assert.Equal(t, 0.0, start)
	assert.Equal(t, 100.0, end)

	// A score that always prefers the earliest start shifts the span down
	// as far as the margins allow.
	low := func(start, end, step float64) float64 { return -start }
	start, end = PositionAroundRange(10, 90, DefaultMargins, 4, low)
	assert.Less(t, start, 10.0)
	assert.GreaterOrEqual(t, end, 90.0)
}

func TestPositionAroundRangeFallback(t *testing.T) {
	// No margin room at all and a target that is not round: the search
	// fails and the robust positioning is used.
	m := Margins{}
	start, end := PositionAroundRange(-1, 2.3, m, 3, nil)
	wantStart, wantEnd := RobustAroundRange(-1, 2.3, 3)
	assert.Equal(t, wantStart, start)
	assert.Equal(t, wantEnd, end)
}

func TestPositionAroundRangePanics(t *testing.T) {
	assert.Panics(t, func() { PositionAroundRange(1, 1, DefaultMargins, 5, nil) })
	assert.Panics(t, func() { PositionAroundRange(2, 1, DefaultMargins, 5, nil) })
	assert.Panics(t, func() { PositionAroundRange(0, 1, DefaultMargins, 0, nil) })
	assert.Panics(t, func() {
		PositionAroundRange(0, 1, Margins{StartOutside: 0.5, EndOutside: 0.5}, 5, nil)
	})
	assert.Panics(t, func() {
		PositionAroundRange(0, 1, Margins{StartInside: 0.2, StartOutside: 0.1}, 5, nil)
	})
	assert.Panics(t, func() {
		PositionAroundRange(0, 1, Margins{EndInside: 0.2, EndOutside: 0.1}, 5, nil)
	})
	assert.Panics(t, func() {
		PositionAroundRange(0, 1, Margins{StartInside: -2}, 5, nil)
	})
}

func TestRobustAroundRange(t *testing.T) {
	s, e := RobustAroundRange(1, 7, 4)
	assert.Equal(t, 1.0, s)
	assert.Equal(t, 7.0, e)

	s, e = RobustAroundRange(-1, 7, 1)
	assert.Equal(t, -1.0, s)
	assert.Equal(t, 7.0, e)

	// 4 sections, 3 above zero and 1 below.
	s, e = RobustAroundRange(-1, 2.3, 4)
	step := (e - s) / 4
	assert.InDelta(t, -1.0, s/step, 1e-12)
	assert.LessOrEqual(t, s, -1.0)
	assert.GreaterOrEqual(t, e, 2.3)

	// Lopsided ranges still get one section on each side.
	s, e = RobustAroundRange(-0.001, 100, 5)
	assert.InDelta(t, -25.0, s, 1e-9)
	assert.InDelta(t, 100.0, e, 1e-9)
	s, e = RobustAroundRange(-100, 1, 5)
	assert.InDelta(t, -100.0, s, 1e-9)
	assert.InDelta(t, 25.0, e, 1e-9)
}
