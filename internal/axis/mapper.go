// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axis

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/mathx"
	"github.com/aclements/go-moremath/scale"
)

// screenSpan maps [0, 1] to [start, end].
type screenSpan struct {
	start, end float64
}

func (s screenSpan) fromUnit(u float64) float64 {
	return s.start + u*(s.end-s.start)
}

func (s screenSpan) toUnit(y float64) float64 {
	if s.end == s.start {
		return 0.5
	}
	return (y - s.start) / (s.end - s.start)
}

// LinearMapper maps [dataMin, dataMax] linearly onto [screenStart, screenEnd].
// screenStart may exceed screenEnd, as on a vertical axis whose origin is at
// the top.
type LinearMapper struct {
	s      scale.Linear
	screen screenSpan
}

var _ Mapper = (*LinearMapper)(nil)

func NewLinearMapper(dataMin, dataMax, screenStart, screenEnd float64) *LinearMapper {
	return &LinearMapper{
		s:      scale.Linear{Min: dataMin, Max: dataMax},
		screen: screenSpan{screenStart, screenEnd},
	}
}

func (m *LinearMapper) ScreenValue(v float64) float64 {
	return m.screen.fromUnit(m.s.Map(v))
}

func (m *LinearMapper) DataValue(y float64) float64 {
	return m.s.Unmap(m.screen.toUnit(y))
}

func (m *LinearMapper) DataMin() float64 { return m.s.Min }
func (m *LinearMapper) DataMax() float64 { return m.s.Max }

// LogMapper maps a one-signed data range logarithmically onto a screen span.
type LogMapper struct {
	s      scale.Log
	screen screenSpan
}

var _ Mapper = (*LogMapper)(nil)

// NewLogMapper returns a base-10 LogMapper. The data range must not include
// zero.
func NewLogMapper(dataMin, dataMax, screenStart, screenEnd float64) (*LogMapper, error) {
	s, err := scale.NewLog(dataMin, dataMax, 10)
	if err != nil {
		return nil, fmt.Errorf("log mapper over [%v, %v]: %w", dataMin, dataMax, err)
	}
	return &LogMapper{s: s, screen: screenSpan{screenStart, screenEnd}}, nil
}

// ScreenValue returns NaN for values of the wrong sign.
func (m *LogMapper) ScreenValue(v float64) float64 {
	return m.screen.fromUnit(m.s.Map(v))
}

func (m *LogMapper) DataValue(y float64) float64 {
	return m.s.Unmap(m.screen.toUnit(y))
}

func (m *LogMapper) DataMin() float64 { return m.s.Min }
func (m *LogMapper) DataMax() float64 { return m.s.Max }

// MirrorLogMapper is a signed-log mapping: it is logarithmic for |v| much
// larger than epsilon, nearly linear around zero, and symmetric about zero.
// The transform is sign(v)·log10(1 + |v|/epsilon).
type MirrorLogMapper struct {
	eps    float64
	lin    scale.Linear
	screen screenSpan
	min    float64
	max    float64
}

var _ Mapper = (*MirrorLogMapper)(nil)

func NewMirrorLogMapper(dataMin, dataMax, epsilon, screenStart, screenEnd float64) (*MirrorLogMapper, error) {
	if !(epsilon > 0) || math.IsInf(epsilon, 0) {
		return nil, fmt.Errorf("mirror log mapper: epsilon %v must be positive and finite", epsilon)
	}
	m := &MirrorLogMapper{
		eps:    epsilon,
		screen: screenSpan{screenStart, screenEnd},
		min:    dataMin,
		max:    dataMax,
	}
	m.lin = scale.Linear{Min: m.transform(dataMin), Max: m.transform(dataMax)}
	return m, nil
}

func (m *MirrorLogMapper) transform(v float64) float64 {
	return mathx.Sign(v) * math.Log10(1+math.Abs(v)/m.eps)
}

func (m *MirrorLogMapper) inverse(t float64) float64 {
	return mathx.Sign(t) * m.eps * (math.Pow(10, math.Abs(t)) - 1)
}

func (m *MirrorLogMapper) ScreenValue(v float64) float64 {
	return m.screen.fromUnit(m.lin.Map(m.transform(v)))
}

func (m *MirrorLogMapper) DataValue(y float64) float64 {
	return m.inverse(m.lin.Unmap(m.screen.toUnit(y)))
}

func (m *MirrorLogMapper) DataMin() float64 { return m.min }
func (m *MirrorLogMapper) DataMax() float64 { return m.max }

// Epsilon returns the magnitude at which the mapping turns logarithmic.
func (m *MirrorLogMapper) Epsilon() float64 { return m.eps }
