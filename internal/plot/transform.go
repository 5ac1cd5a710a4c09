// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"math"
	"slices"

	"golang.org/x/perf/benchmath"
)

// confidence is the confidence level of summarized ranges.
const confidence = 0.95

func pointsToSample(pts []point, aes Aes) *benchmath.Sample {
	ys := make([]float64, 0, 16)
	for _, pt := range pts {
		val := pt.Get(aes)
		if val.kinds&kindContinuous == 0 {
			panic("non-continuous " + aes.Name())
		}
		ys = append(ys, val.val)
	}
	return benchmath.NewSample(ys, &benchmath.DefaultThresholds)
}

// transformSummarize groups points that differ only in aes and produces a
// single point for each group where aes is set to a summary of the group.
//
// aes must have kind kindContinuous.
func transformSummarize(pts []point, aes Aes, confidence float64) ([]point, error) {
	kinds := pointsKinds(pts, aes)
	if kinds&kindSummary != 0 {
		// Nothing to do if it's already summaries.
		return pts, nil
	}
	if kinds&kindContinuous == 0 {
		return nil, fmt.Errorf("summarizing %s: data must be numeric", aes.Name())
	}

	groups, keys := groupBy(pts, func(pt point) point {
		pt.Set(aes, value{})
		return pt
	})

	// One allocation for all summaries.
	summaries := make([]benchmath.Summary, len(keys))
	for i, k := range keys {
		summaries[i] = benchmath.AssumeNothing.Summary(pointsToSample(groups[k], aes), confidence)
	}

	out := make([]point, len(keys))
	for i, k := range keys {
		pt := groups[k][0]
		// Keep it as a ratio if the input is.
		kinds := kindContinuous | kindSummary | (kinds & kindRatio)
		summary := &summaries[i]
		pt.Set(aes, value{kinds: kinds, val: summary.Center, summary: summary})
		out[i] = pt
	}
	return out, nil
}

// summarize replaces repeated measurements of the dependent variable with
// their summaries, so axis ranges cover the confidence intervals drawn.
func (p *Plot) summarize() error {
	if p.dvAes == aesNone || len(p.points) == 0 {
		return nil
	}
	pts, err := transformSummarize(p.points, p.dvAes, confidence)
	if err != nil {
		return err
	}
	p.points = pts
	return nil
}

// TransformCompare normalizes the dependent variable of each color against
// the first color at the same position.
func (p *Plot) TransformCompare() error {
	if p.dvAes == aesNone {
		return fmt.Errorf("compare: no dimension shows .value")
	}
	pts, err := transformCompare(p.points, AesColor, p.dvAes)
	if err != nil {
		return err
	}
	p.points = pts
	return nil
}

// transformCompare normalizes aesRatio against a baseline. Points that
// differ only in aesCompare and aesRatio form a group; the first value of
// aesCompare overall is the baseline, and every other value in a group
// becomes one point whose aesRatio is the ratio of its summary to the
// baseline's. The ratio's interval spans the extreme quotients of the two
// confidence intervals, so ratio axes cover it.
func transformCompare(pts []point, aesCompare, aesRatio Aes) ([]point, error) {
	if len(pts) == 0 {
		return nil, nil
	}
	if pointsKinds(pts, aesRatio)&kindContinuous == 0 {
		return nil, fmt.Errorf("compare: %s data must be numeric", aesRatio.Name())
	}

	// Walk in aesCompare order. The grouping operations keep it sorted.
	slices.SortStableFunc(pts, func(a, b point) int {
		return a.Get(aesCompare).compare(b.Get(aesCompare))
	})
	base := pts[0].Get(aesCompare)

	groups, keys := groupBy(pts, func(pt point) point {
		pt.Set(aesCompare, value{})
		pt.Set(aesRatio, value{})
		return pt
	})

	var out []point
	for _, k := range keys {
		byCmp, cmpKeys := groupBy(groups[k], func(pt point) value {
			return pt.Get(aesCompare)
		})
		if cmpKeys[0] != base {
			// No baseline to compare against.
			continue
		}
		b := benchmath.AssumeNothing.Summary(pointsToSample(byCmp[base], aesRatio), confidence)
		for _, ck := range cmpKeys[1:] {
			c := benchmath.AssumeNothing.Summary(pointsToSample(byCmp[ck], aesRatio), confidence)
			r := ratioSummary(c, b)

			pt := byCmp[ck][0]
			ck.kinds |= kindRatio
			ck.denom = base.key
			pt.Set(aesCompare, ck)
			pt.Set(aesRatio, value{kinds: kindContinuous | kindSummary | kindRatio, val: r.Center, summary: r})
			out = append(out, pt)
		}
	}
	return out, nil
}

// ratioSummary returns the summary of num/denom. The interval is unbounded
// unless both intervals are finite and denom's lies strictly above zero.
func ratioSummary(num, denom benchmath.Summary) *benchmath.Summary {
	r := &benchmath.Summary{
		Center:     num.Center / denom.Center,
		Lo:         math.Inf(-1),
		Hi:         math.Inf(1),
		Confidence: min(num.Confidence, denom.Confidence),
	}
	if denom.Lo > 0 && !isInf(denom.Hi) && !isInf(num.Lo) && !isInf(num.Hi) {
		r.Lo = min(num.Lo/denom.Hi, r.Center)
		r.Hi = max(num.Hi/denom.Lo, r.Center)
	}
	return r
}
