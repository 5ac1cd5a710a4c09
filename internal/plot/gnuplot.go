// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

type gnuplotter struct {
	*Plot
	code bytes.Buffer

	colorScale func(point) int
}

// Gnuplot renders p for the given gnuplot terminal. Terminal "" writes the
// gnuplot script itself to out; "png" runs gnuplot and writes the image.
//
// All coordinates in the script are screen coordinates computed by the axis
// layout, so gnuplot draws exactly the ticks and labels chosen here, on any
// scale.
func (p *Plot) Gnuplot(term string, out io.Writer) error {
	pl := gnuplotter{Plot: p}
	if err := pl.plot(term); err != nil {
		return err
	}
	code := pl.code.Bytes()

	switch term {
	case "":
		_, err := out.Write(code)
		return err
	case "png":
		cmd := exec.Command("gnuplot")
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return fmt.Errorf("creating pipe to gnuplot: %w", err)
		}
		cmd.Stdout = out
		cmd.Stderr = os.Stderr
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("starting gnuplot: %w", err)
		}
		defer cmd.Process.Kill()
		if _, err := stdin.Write(code); err != nil {
			return fmt.Errorf("writing to gnuplot: %w", err)
		}
		stdin.Close()
		if err := cmd.Wait(); err != nil {
			return fmt.Errorf("gnuplot failed: %w", err)
		}
	}
	return nil
}

func (p *gnuplotter) plot(term string) error {
	switch term {
	case "", "png":
	default:
		return fmt.Errorf("unknown output type %s", term)
	}

	facets, nRows, nCols, err := p.layoutFacets()
	if err != nil {
		return err
	}
	multiplot := nRows > 1 || nCols > 1
	p.colorScale, _ = ordScale(p.points, AesColor)

	if term == "png" {
		fmt.Fprintf(&p.code, "set terminal pngcairo size %d,%d\n", nCols*p.layout.Width, nRows*p.layout.Height)
	}
	if multiplot {
		fmt.Fprintf(&p.code, "set multiplot layout %d,%d columnsfirst margins char 12,1.0,char 4,char 2 spacing char 10, char 4\n", nRows, nCols)
	}
	fmt.Fprintf(&p.code, "set grid xtics ytics mxtics mytics\n")

	for _, f := range facets {
		if multiplot && f.col == 0 && len(f.pts) > 0 {
			fmt.Fprintf(&p.code, "set label 1 %s at char 2, graph 0.5 center rotate by 90\n", gpString(f.rowLabel))
		}
		if multiplot && f.row == 0 && len(f.pts) > 0 {
			fmt.Fprintf(&p.code, "set title %s\n", gpString(f.colLabel))
		}
		p.onePlot(f)
		fmt.Fprintf(&p.code, "unset label 1\n")
		fmt.Fprintf(&p.code, "unset title\n")
	}

	if multiplot {
		fmt.Fprintf(&p.code, "unset multiplot\n")
	}
	return nil
}

// tics emits the decorations of a as explicit gnuplot tics.
func (p *gnuplotter) tics(name string, a *axisLayout) {
	var tics []string
	for _, d := range a.dec.Major {
		tics = append(tics, fmt.Sprintf("%s %g 0", gpString(d.Label), d.Coordinate))
	}
	for _, d := range a.dec.Minor {
		tics = append(tics, fmt.Sprintf(`"" %g 1`, d.Coordinate))
	}
	fmt.Fprintf(&p.code, "set %srange [0:%g]\n", name, a.length)
	fmt.Fprintf(&p.code, "set %stics (%s)\n", name, strings.Join(tics, ", "))
	fmt.Fprintf(&p.code, "set %slabel %s\n", name, gpString(a.label))
}

func pointAesGetter(aes Aes) func(pt point) value {
	return func(pt point) value {
		return pt.Get(aes)
	}
}

func (p *gnuplotter) onePlot(f *facet) {
	if len(f.pts) == 0 {
		// Skip this plot.
		fmt.Fprintf(&p.code, "set multiplot next\n")
		return
	}
	p.tics("x", f.x)
	p.tics("y", f.y)

	// Emit point data and build plot command
	var plotArgs []string
	var data strings.Builder
	anyRange := false
	sliceBy(f.pts, pointAesGetter(AesColor),
		func(color value, pts []point) {
			colorIdx := p.colorScale(pts[0]) + 1

			haveRange := false
			for _, pt := range pts {
				if s := pt.Get(AesY).summary; s != nil && !isInf(s.Lo) {
					haveRange, anyRange = true, true
					break
				}
			}

			// Emit range
			if haveRange {
				plotArg := fmt.Sprintf("'-' using 1:2:3 with filledcurves title '' fc linetype %d fs transparent solid 0.25", colorIdx)
				plotArgs = append(plotArgs, plotArg)

				for _, pt := range pts {
					x := pt.Get(AesX).val
					y := pt.Get(AesY).summary
					if y != nil && !isInf(y.Lo) {
						fmt.Fprintf(&data, "%g %g %g\n", f.x.screen(x), f.y.screen(y.Lo), f.y.screen(y.Hi))
					}
				}
				fmt.Fprintf(&data, "e\n")
			}

			// Emit center curve.
			plotArg := fmt.Sprintf("'-' using 1:2 with lp title %s linecolor %d", gpString(color.key.StringValues()), colorIdx)
			plotArgs = append(plotArgs, plotArg)
			for _, pt := range pts {
				fmt.Fprintf(&data, "%g %g\n", f.x.screen(pt.Get(AesX).val), f.y.screen(pt.Get(AesY).val))
			}
			fmt.Fprintf(&data, "e\n")
		})

	if anyRange {
		// Add a legend entry for the range.
		plotArg := fmt.Sprintf("1/0 with filledcurves title '%v%% confidence' fc linetype 0 fs transparent solid 0.25", confidence*100)
		plotArgs = append(plotArgs, plotArg)
	}

	fmt.Fprintf(&p.code, "plot %s\n", strings.Join(plotArgs, ", "))
	p.code.WriteString(data.String())
}

// gpString returns s escaped for Gnuplot
func gpString(s string) string {
	// I can't find any documentation on Gnuplot's escape syntax, but as far as
	// I can tell, it's compatible with Go's escaping rules.
	return strconv.Quote(s)
}
