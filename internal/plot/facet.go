// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"cmp"
	"fmt"
	"slices"
)

// A facet is one plot of a row/column grid, with its own axes.
type facet struct {
	row, col           int
	rowLabel, colLabel string

	pts  []point
	x, y *axisLayout
}

// layoutFacets summarizes the points of p, sorts them into emission order,
// and lays out the axes of every facet. Facets are returned in column-major
// order. Facets without points have nil axes.
func (p *Plot) layoutFacets() (facets []*facet, nRows, nCols int, err error) {
	if len(p.points) == 0 {
		return nil, 0, 0, fmt.Errorf("no data")
	}
	if err := p.summarize(); err != nil {
		return nil, 0, 0, err
	}
	pts := p.points

	if pointsKinds(pts, AesX)&kindContinuous == 0 {
		// TODO: Bar chart
		return nil, 0, 0, fmt.Errorf("non-numeric X data not supported")
	}
	if pointsKinds(pts, AesY)&kindContinuous == 0 {
		// TODO: Horizontal bar chart?
		return nil, 0, 0, fmt.Errorf("non-numeric Y data not supported")
	}
	rowScale, nRows := ordScale(pts, AesRow)
	colScale, nCols := ordScale(pts, AesCol)

	// Sort the points in the order the data must be emitted.
	slices.SortFunc(pts, func(a, b point) int {
		if c := a.Get(AesCol).compare(b.Get(AesCol)); c != 0 {
			return c
		}
		if c := a.Get(AesRow).compare(b.Get(AesRow)); c != 0 {
			return c
		}
		if c := a.Get(AesColor).compare(b.Get(AesColor)); c != 0 {
			return c
		}
		// For a line plot, X must be sorted numerically.
		return cmp.Compare(a.Get(AesX).val, b.Get(AesX).val)
	})

	type rowCol struct{ row, col int }
	grid, _ := groupBy(pts, func(pt point) rowCol {
		return rowCol{rowScale(pt), colScale(pt)}
	})
	for col := range nCols {
		for row := range nRows {
			f := &facet{row: row, col: col, pts: grid[rowCol{row, col}]}
			if len(f.pts) > 0 {
				f.rowLabel = f.pts[0].Get(AesRow).StringValues()
				f.colLabel = f.pts[0].Get(AesCol).StringValues()
				if f.x, err = p.layoutAxis(f.pts, AesX); err != nil {
					return nil, 0, 0, err
				}
				if f.y, err = p.layoutAxis(f.pts, AesY); err != nil {
					return nil, 0, 0, err
				}
			}
			facets = append(facets, f)
		}
	}
	return facets, nRows, nCols, nil
}
