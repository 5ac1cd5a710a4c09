// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pow10

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScientific(t *testing.T) {
	require.Equal(t, 0.6, Scientific(6, -1))
	require.Equal(t, 0.3, Scientific(3, -1))
	require.Equal(t, 0.07, Scientific(7, -2))
	require.Equal(t, 1e-5, Scientific(1, -5))
	require.Equal(t, 2500.0, Scientific(2.5, 3))
	require.Equal(t, 5.0, Scientific(5, 0))
	require.Equal(t, 1e-320, Scientific(1, -320))
	for e := -20; e < 0; e++ {
		for s := 1.0; s < 10; s++ {
			assert.Equal(t, s/math.Pow10(-e), Scientific(s, e))
		}
	}
}

func TestExponent(t *testing.T) {
	for _, tc := range []struct {
		v             float64
		floor, ceil   int
		round         int
		isPowerOf10   bool
		floorV, ceilV float64
	}{
		{1, 0, 0, 0, true, 1, 1},
		{1000, 3, 3, 3, true, 1000, 1000},
		{999, 2, 3, 3, false, 100, 1000},
		{0.001, -3, -3, -3, true, 0.001, 0.001},
		{0.0015, -3, -2, -3, false, 0.001, 0.01},
		{42, 1, 2, 2, false, 10, 100},
		{1e-14, -14, -14, -14, true, 1e-14, 1e-14},
	} {
		assert.Equal(t, tc.floor, FloorExponent(tc.v), "FloorExponent(%v)", tc.v)
		assert.Equal(t, tc.ceil, CeilExponent(tc.v), "CeilExponent(%v)", tc.v)
		assert.Equal(t, tc.round, RoundExponent(tc.v), "RoundExponent(%v)", tc.v)
		assert.Equal(t, tc.isPowerOf10, IsPowerOf10(tc.v), "IsPowerOf10(%v)", tc.v)
		assert.Equal(t, tc.floorV, Floor(tc.v), "Floor(%v)", tc.v)
		assert.Equal(t, tc.ceilV, Ceil(tc.v), "Ceil(%v)", tc.v)
	}
}

func TestFloorCeilBracket(t *testing.T) {
	for _, v := range []float64{1e-9, 0.00314, 0.5, 1, 7, 10, 11, 99.9, 12345, 1e15, 3.7e200} {
		lo, hi := Floor(v), Ceil(v)
		assert.True(t, IsPowerOf10(lo), "Floor(%v)=%v", v, lo)
		assert.True(t, IsPowerOf10(hi), "Ceil(%v)=%v", v, hi)
		assert.LessOrEqual(t, lo, v)
		assert.GreaterOrEqual(t, hi, v)
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 100.0, Round(88))
	assert.Equal(t, 100.0, Round(549))
	assert.Equal(t, 1000.0, Round(550))
	assert.Equal(t, 1.0, Round(4))
	assert.Equal(t, 10.0, Round(6))
	assert.Equal(t, 0.1, Round(0.12))
}

func TestNonPositivePanics(t *testing.T) {
	for _, f := range []func(){
		func() { Exponent(0) },
		func() { FloorExponent(-1) },
		func() { CeilExponent(math.NaN()) },
		func() { Round(-5) },
		func() { IsPowerOf10(0) },
	} {
		assert.PanicsWithValue(t, ErrNonPositive, f)
	}
}

func TestRoundSig(t *testing.T) {
	require.Equal(t, 0.3, Sig15(0.1+0.2))
	require.Equal(t, 1.0, Sig15(0.9999999999999999))
	require.Equal(t, 120.0, RoundSig(123, 2))
	require.Equal(t, 0.0, Sig15(0))
	require.True(t, math.IsInf(Sig15(math.Inf(-1)), -1))
}

func TestDecimalPlaces(t *testing.T) {
	for v, want := range map[float64]int{
		0:      0,
		1:      0,
		100:    0,
		0.5:    1,
		0.25:   2,
		0.3:    1,
		1.125:  3,
		-0.001: 3,
		2.5e-7: 8,
	} {
		assert.Equal(t, want, DecimalPlaces(v), "DecimalPlaces(%v)", v)
	}
}

func TestSignificand(t *testing.T) {
	assert.EqualValues(t, 25, Significand(2500))
	assert.EqualValues(t, 25, Significand(0.025))
	assert.EqualValues(t, 1, Significand(1000))
	assert.EqualValues(t, 125, Significand(-1.25))
	assert.EqualValues(t, 0, Significand(0))
}
