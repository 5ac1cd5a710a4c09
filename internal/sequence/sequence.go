// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sequence implements monotonic numeric cursors used to place axis
// ticks: constant steps, powers of ten, custom in-decade multipliers, paced
// signed-log steps and calendar months.
package sequence

import (
	"errors"
	"math"
)

var (
	// ErrInvalidConfig is wrapped by constructors rejecting a malformed
	// multiplier list.
	ErrInvalidConfig = errors.New("invalid sequence configuration")
	// ErrInvalidArgument is wrapped by constructors rejecting an out of
	// range parameter.
	ErrInvalidArgument = errors.New("invalid sequence argument")
)

// A Sequence is a cursor over a strictly increasing series of values.
//
// Next and Previous are exact inverses: calling Next then Previous leaves
// the cursor, and Value, where they were. Floor, Ceil and Round move the
// cursor to the sequence value at or below, at or above, or nearest to v and
// return it.
type Sequence interface {
	// Value returns the value at the cursor. It has no side effects.
	Value() float64
	// Next advances the cursor one step and returns the new value.
	Next() float64
	// Previous moves the cursor back one step and returns the new value.
	Previous() float64
	Floor(v float64) float64
	Ceil(v float64) float64
	Round(v float64) float64
}

// NextSize returns the distance from the current value to the next one.
// It calls Next and then Previous, so the cursor ends where it started.
func NextSize(s Sequence) float64 {
	next := s.Next()
	cur := s.Previous()
	return next - cur
}

// An Iterator pulls the values of a Sequence that cover [lo, hi]: it starts
// at Floor(lo) and stops after the first value >= hi. It also stops if the
// sequence fails to advance, so a zero-spacing sequence yields one value.
//
// The zero Iterator yields nothing.
type Iterator struct {
	seq    Sequence
	lo, hi float64

	started, done bool
	cur           float64
}

// NewIterator returns an Iterator over seq covering [lo, hi]. The iterator
// owns seq's cursor until it is exhausted.
func NewIterator(seq Sequence, lo, hi float64) *Iterator {
	return &Iterator{seq: seq, lo: lo, hi: hi}
}

// Next advances to the next value and reports whether there was one.
func (it *Iterator) Next() bool {
	if it.done || it.seq == nil {
		return false
	}
	if !it.started {
		it.started = true
		it.cur = it.seq.Floor(it.lo)
	} else {
		prev := it.cur
		it.cur = it.seq.Next()
		if !(it.cur > prev) {
			it.done = true
			return false
		}
	}
	if it.cur >= it.hi || math.IsNaN(it.cur) {
		it.done = true
	}
	return true
}

// Value returns the current value. It is only valid after Next returns true.
func (it *Iterator) Value() float64 {
	return it.cur
}

// floorDiv returns ⌊a/b⌋ for b > 0.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
