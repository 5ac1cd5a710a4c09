// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"bufio"
	"fmt"
	"io"
	"time"
)

// Report writes the axis layout of every facet of p as plain text: the
// range, scale, and every major and minor decoration with its screen
// coordinate.
func (p *Plot) Report(out io.Writer) error {
	facets, _, _, err := p.layoutFacets()
	if err != nil {
		return err
	}
	w := bufio.NewWriter(out)
	for i, f := range facets {
		if len(f.pts) == 0 {
			continue
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "facet row=%q col=%q (%d points)\n", f.rowLabel, f.colLabel, len(f.pts))
		reportAxis(w, f.x)
		reportAxis(w, f.y)
	}
	return w.Flush()
}

func reportAxis(w io.Writer, a *axisLayout) {
	kind := a.kind.String()
	if a.time {
		kind = "time"
	}
	fmt.Fprintf(w, "  %s axis %q: %s [%s, %s] over %g px\n", a.aes.Name(), a.label, kind, a.format(a.lo), a.format(a.hi), a.length)
	for _, d := range a.dec.Major {
		fmt.Fprintf(w, "    major %8.2f  %s\n", d.Coordinate, d.Label)
	}
	for _, d := range a.dec.Minor {
		fmt.Fprintf(w, "    minor %8.2f  %s\n", d.Coordinate, a.format(d.Value))
	}
}

// format prints a data value of a for the report.
func (a *axisLayout) format(v float64) string {
	if a.time {
		return time.UnixMilli(int64(v)).UTC().Format(time.DateOnly)
	}
	return fmt.Sprint(v)
}
