// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sequence

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkInverse verifies that Next and Previous undo each other and that
// Next increases, starting from each value in starts.
func checkInverse(t *testing.T, name string, s Sequence, starts []float64) {
	t.Helper()
	for _, v := range starts {
		cur := s.Floor(v)
		next := s.Next()
		assert.Greater(t, next, cur, "%s: Next after Floor(%v)", name, v)
		assert.Equal(t, cur, s.Previous(), "%s: Previous after Next from %v", name, cur)
		assert.Equal(t, cur, s.Value(), "%s: Value after round trip", name)

		prev := s.Previous()
		assert.Less(t, prev, cur, "%s: Previous from %v", name, cur)
		assert.Equal(t, cur, s.Next(), "%s: Next after Previous from %v", name, cur)

		size := NextSize(s)
		assert.Equal(t, cur, s.Value(), "%s: NextSize moved the cursor", name)
		assert.Greater(t, size, 0.0)
	}
}

// checkFloorCeil verifies the bracketing properties of Floor and Ceil.
func checkFloorCeil(t *testing.T, name string, s Sequence, vs []float64) {
	t.Helper()
	for _, v := range vs {
		f := s.Floor(v)
		assert.LessOrEqual(t, f, v, "%s: Floor(%v)", name, v)
		if f != v {
			assert.Greater(t, s.Next(), v, "%s: value after Floor(%v)", name, v)
		}
		c := s.Ceil(v)
		assert.GreaterOrEqual(t, c, v, "%s: Ceil(%v)", name, v)
		if c != v {
			assert.Less(t, s.Previous(), v, "%s: value before Ceil(%v)", name, v)
		}
		r := s.Round(v)
		assert.True(t, r == f || r == c, "%s: Round(%v)=%v not in {%v, %v}", name, v, r, f, c)
	}
}

func TestLinear(t *testing.T) {
	s := NewLinear(5, 0)
	assert.Equal(t, 10.0, s.Floor(11))
	assert.Equal(t, 10.0, s.Ceil(6))
	assert.Equal(t, 100.0, s.Round(102))
	assert.Equal(t, 100.0, s.Round(98))
	assert.Equal(t, -5.0, s.Floor(-0.5))

	s = NewLinear(0.1, 0)
	assert.Equal(t, 0.3, s.Floor(0.1+0.2))
	assert.Equal(t, 0.4, s.Next())
	assert.Equal(t, 0.5, s.Next())

	s = NewLinear(10, 3)
	assert.Equal(t, 13.0, s.Floor(15))
	assert.Equal(t, 23.0, s.Ceil(15))
	assert.Equal(t, 13.0, s.Round(17.9))

	checkInverse(t, "Linear(0.2)", NewLinear(0.2, 0), []float64{-3, 0, 0.7, 1e6})
	checkFloorCeil(t, "Linear(2.5, 1)", NewLinear(2.5, 1), []float64{-7, 0, 1, 3.4, 99})
}

func TestPowersOf10(t *testing.T) {
	s := NewPowersOf10()
	assert.Equal(t, 1.0, s.Value())
	assert.Equal(t, 10.0, s.Next())
	assert.Equal(t, 100.0, s.Floor(999))
	assert.Equal(t, 1000.0, s.Ceil(999))
	assert.Equal(t, 100.0, s.Round(88))
	assert.Equal(t, 100.0, s.Round(549))
	assert.Equal(t, 1000.0, s.Round(550))
	assert.Equal(t, 0.001, s.Floor(0.005))
	assert.Equal(t, 0.0001, s.Previous())

	assert.Panics(t, func() { s.Floor(0) })
	assert.Panics(t, func() { s.Ceil(-1) })

	checkInverse(t, "PowersOf10", NewPowersOf10(), []float64{1e-9, 0.5, 1, 7e12})
	checkFloorCeil(t, "PowersOf10", NewPowersOf10(), []float64{1e-9, 0.5, 1, 42, 7e12})
}

func TestCustomPowersOf10(t *testing.T) {
	s, err := NewCustomPowersOf10([]float64{1, 2, 5})
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.Value())
	var got []float64
	s.Floor(0.1)
	for range 7 {
		got = append(got, s.Value())
		s.Next()
	}
	assert.Equal(t, []float64{0.1, 0.2, 0.5, 1, 2, 5, 10}, got)

	assert.Equal(t, 20.0, s.Floor(49))
	assert.Equal(t, 50.0, s.Ceil(21))
	assert.Equal(t, 50.0, s.Round(40))
	assert.Equal(t, 20.0, s.Round(30))
	assert.Equal(t, 0.2, s.Ceil(0.2))
	assert.Equal(t, 0.5, s.Ceil(0.30000000000000004))

	for _, x := range []float64{0.02, 0.5, 1, 20, 5000} {
		f := s.Floor(x)
		assert.Equal(t, x, f)
		assert.Equal(t, x, s.Ceil(f), "Ceil(Floor(%v))", x)
	}

	s = MustCustomPowersOf10([]float64{1, 2.5, 5})
	assert.Equal(t, 0.25, s.Floor(0.3))

	checkInverse(t, "Custom[1,2,5]", MustCustomPowersOf10([]float64{1, 2, 5}), []float64{1e-5, 0.3, 3, 7e7})
	checkFloorCeil(t, "Custom[1,3]", MustCustomPowersOf10([]float64{1, 3}), []float64{1e-5, 0.3, 3, 7, 7e7})
}

func TestCustomPowersOf10Invalid(t *testing.T) {
	for _, ms := range [][]float64{
		nil,
		{},
		{0.5, 2},
		{1, 10},
		{2, 1},
		{1, 1},
		{1, math.NaN()},
	} {
		_, err := NewCustomPowersOf10(ms)
		assert.True(t, errors.Is(err, ErrInvalidConfig), "NewCustomPowersOf10(%v) = %v", ms, err)
	}
	assert.Panics(t, func() { MustCustomPowersOf10(nil) })
}

func TestPacedPowersOf10MirrorPrevious(t *testing.T) {
	s := MustPacedPowersOf10Mirror(20, 0.001)
	require.Equal(t, -0.01, s.Round(-0.01))

	want := []float64{-0.015, -0.02, -0.025, -0.03, -0.035, -0.04, -0.045,
		-0.05, -0.055, -0.06, -0.065, -0.07, -0.075, -0.08, -0.085, -0.09,
		-0.095, -0.1, -0.15, -0.2, -0.25, -0.3, -0.35, -0.4, -0.45, -0.5,
		-0.55, -0.6, -0.65, -0.7, -0.75, -0.8, -0.85, -0.9, -0.95, -1, -1.5}
	var got []float64
	for range want {
		got = append(got, s.Previous())
	}
	require.Equal(t, want, got)
}

func TestPacedPowersOf10MirrorAcrossZero(t *testing.T) {
	s := MustPacedPowersOf10Mirror(10, 1)
	require.Equal(t, -3.0, s.Floor(-2.5))
	var got []float64
	for range 10 {
		got = append(got, s.Next())
	}
	assert.Equal(t, []float64{-2, -1, 0, 1, 2, 3, 4, 5, 6, 7}, got)
	assert.Equal(t, 9.0, s.Floor(9.99))
	assert.Equal(t, 10.0, s.Next())
	assert.Equal(t, 20.0, s.Next())
}

func TestPacedPowersOf10MirrorZero(t *testing.T) {
	for _, steps := range []int{1, 3, 10, 20} {
		s := MustPacedPowersOf10Mirror(steps, 0.01)
		assert.Equal(t, 0.0, s.Floor(0))
		assert.Equal(t, 0.0, s.Ceil(0))
		assert.Equal(t, 0.0, s.Round(0))
		assert.False(t, math.Signbit(s.Round(0)))

		// Inside the zero gap.
		assert.Equal(t, 0.0, s.Floor(0.004))
		assert.Equal(t, 0.01, s.Ceil(0.004))
		assert.Equal(t, 0.0, s.Round(0.004))
		assert.Equal(t, -0.01, s.Floor(-0.004))
		assert.Equal(t, 0.0, s.Ceil(-0.004))
		assert.Equal(t, -0.01, s.Round(-0.006))

		// Exactly at the gap boundaries.
		assert.Equal(t, 0.01, s.Floor(0.01))
		assert.Equal(t, 0.01, s.Ceil(0.01))
		assert.Equal(t, 0.01, s.Round(0.01))
		assert.Equal(t, -0.01, s.Floor(-0.01))
		assert.Equal(t, -0.01, s.Ceil(-0.01))
		assert.Equal(t, -0.01, s.Round(-0.01))
	}
}

func TestPacedPowersOf10MirrorUneven(t *testing.T) {
	// Three steps per decade do not land on round numbers.
	s := MustPacedPowersOf10Mirror(3, 1)
	s.Floor(1)
	want := []float64{10.0 / 3, 20.0 / 3, 10, 100.0 / 3, 200.0 / 3, 100}
	for _, w := range want {
		assert.InDelta(t, w, s.Next(), w*1e-12)
	}
	assert.InDelta(t, -200.0/3, s.Floor(-50), 1e-9)
}

func TestPacedPowersOf10MirrorTinyEpsilon(t *testing.T) {
	s := MustPacedPowersOf10Mirror(2, 1e-15)
	assert.Equal(t, 1e-15, s.Ceil(1e-16))
	assert.Equal(t, 5e-15, s.Next())
	assert.Equal(t, 1e-14, s.Next())
	assert.Equal(t, 5e-14, s.Next())
	assert.Equal(t, 5e-14, s.Floor(9.9e-14))
	assert.Equal(t, 1e-13, s.Round(8e-14))
	assert.Equal(t, -1e-14, s.Round(-1.2e-14))
}

func TestPacedPowersOf10MirrorProperties(t *testing.T) {
	for _, steps := range []int{1, 2, 3, 5, 10, 15, 20, 100} {
		s := MustPacedPowersOf10Mirror(steps, 0.5)
		checkInverse(t, "Mirror", s, []float64{-123, -0.5, -0.1, 0, 0.2, 0.5, 7, 1e5})
		checkFloorCeil(t, "Mirror", s, []float64{-123, -0.5, -0.1, 0, 0.2, 0.5, 0.77, 7, 1e5})
	}
}

func TestPacedPowersOf10MirrorInvalid(t *testing.T) {
	_, err := NewPacedPowersOf10Mirror(0, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewPacedPowersOf10Mirror(10, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewPacedPowersOf10Mirror(10, math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func ms(year int, month time.Month, day int) float64 {
	return float64(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).UnixMilli())
}

func TestMonth(t *testing.T) {
	s := MustMonth(1, 0)
	assert.Equal(t, 0.0, s.Value())
	assert.Equal(t, ms(1970, time.February, 1), s.Next())
	assert.Equal(t, 0.0, s.Previous())
	assert.Equal(t, ms(1969, time.December, 1), s.Previous())

	q := MustMonth(3, 0)
	assert.Equal(t, ms(1968, time.October, 1), q.Floor(ms(1968, time.December, 13)+3600e3))
	assert.Equal(t, ms(1969, time.January, 1), q.Next())
	assert.Equal(t, ms(1969, time.January, 1), q.Ceil(ms(1968, time.December, 13)))
	assert.Equal(t, ms(1969, time.January, 1), q.Ceil(ms(1969, time.January, 1)))
	assert.Equal(t, ms(1968, time.October, 1), q.Round(ms(1968, time.November, 1)))
	assert.Equal(t, ms(1969, time.January, 1), q.Round(ms(1968, time.December, 1)))

	// Offsets shift the grid.
	q = MustMonth(3, 1)
	assert.Equal(t, ms(2024, time.May, 1), q.Floor(ms(2024, time.July, 31)))
	q = MustMonth(12, -1)
	assert.Equal(t, ms(2023, time.December, 1), q.Floor(ms(2024, time.June, 15)))

	// Multi-year steps use whole years.
	d := MustMonth(120, 0)
	assert.Equal(t, ms(2020, time.January, 1), d.Floor(ms(2024, time.June, 15)))
	assert.Equal(t, ms(2030, time.January, 1), d.Next())
	assert.Equal(t, ms(2030, time.January, 1), d.Ceil(ms(2024, time.June, 15)))
	d = MustMonth(24, 6)
	assert.Equal(t, ms(2024, time.July, 1), d.Floor(ms(2025, time.March, 2)))
	assert.Equal(t, ms(2022, time.July, 1), d.Floor(ms(2024, time.June, 30)))

	checkInverse(t, "Month(1)", MustMonth(1, 0), []float64{ms(1900, time.March, 3), 0, ms(2100, time.July, 9)})
	checkFloorCeil(t, "Month(2,-3)", MustMonth(2, -3), []float64{ms(1900, time.March, 3), 0, ms(2100, time.July, 9)})
	checkFloorCeil(t, "Month(36)", MustMonth(36, 0), []float64{ms(1900, time.March, 3), 0, ms(2100, time.July, 9)})
}

func TestMonthInvalid(t *testing.T) {
	for _, args := range [][2]int{{0, 0}, {-3, 0}, {1, 12}, {1, -12}, {3, 100}} {
		_, err := NewMonth(args[0], args[1])
		assert.ErrorIs(t, err, ErrInvalidArgument, "NewMonth(%d, %d)", args[0], args[1])
	}
	assert.Panics(t, func() { MustMonth(0, 0) })
}

func TestIterator(t *testing.T) {
	it := NewIterator(NewLinear(10, 0), 3, 41)
	var got []float64
	for it.Next() {
		got = append(got, it.Value())
	}
	assert.Equal(t, []float64{0, 10, 20, 30, 40, 50}, got)

	// A sequence that does not advance yields one value.
	it = NewIterator(NewLinear(0, 5), 0, 100)
	got = got[:0]
	for it.Next() {
		got = append(got, it.Value())
	}
	assert.Len(t, got, 1)

	var zero Iterator
	assert.False(t, zero.Next())
}
