// seehuhn.de/go/raster - a 2D rendering library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package testcases

import (
	"math"

	"seehuhn.de/go/geom/path"
)

// largeCases use a 512x512 canvas.  The rasterizer stores cells in blocks
// of 4096.  A filled rectangle only produces cells along its outline, so
// the single shapes below stay within one block, while the grids and the
// starburst produce enough outline to fill several blocks.
var largeCases = []TestCase{
	large("large_rectangle", rectangle(50, 50, 462, 462), NonZero),
	large("large_concentric_nonzero", ringShape(256, 256, 200, 100), NonZero),
	large("large_concentric_evenodd", ringShape(256, 256, 200, 100), EvenOdd),
	large("large_diamond", diamond(256, 256, 180), NonZero),

	// partly outside the clip box
	large("large_clipped", rectangle(-100, 100, 612, 400), NonZero),

	// about 7000 cells
	large("large_grid", rectangleGrid(8, 8, 4), NonZero),

	// edges at fractional positions, about 24000 cells
	large("large_dense_grid", rectangleGrid(32, 32, 2.5), NonZero),

	// long sloped edges meeting in the center, more than 45000 cells
	large("large_starburst", starburst(256, 256, 250, 90), NonZero),
}

func large(name string, p *path.Data, rule FillRule) TestCase {
	return TestCase{Name: name, Path: p, Width: 512, Height: 512, Rule: rule}
}

// rectangleGrid covers the 512x512 canvas with rows x cols rectangles,
// each inset by gap from its grid cell.
func rectangleGrid(rows, cols int, gap float64) *path.Data {
	w := 512 / float64(cols)
	h := 512 / float64(rows)

	p := &path.Data{}
	for i := range rows {
		for j := range cols {
			x, y := float64(j)*w, float64(i)*h
			p = appendRectangle(p, x+gap, y+gap, x+w-gap, y+h-gap)
		}
	}
	return p
}

// starburst builds n thin triangles which share the point (cx, cy).
// Each triangle occupies the first half of its angular sector.
func starburst(cx, cy, r float64, n int) *path.Data {
	p := &path.Data{}
	step := 2 * math.Pi / float64(n)
	for i := range n {
		a := float64(i) * step
		b := a + step/2
		p = p.MoveTo(pt(cx, cy)).
			LineTo(pt(cx+r*math.Cos(a), cy+r*math.Sin(a))).
			LineTo(pt(cx+r*math.Cos(b), cy+r*math.Sin(b))).
			Close()
	}
	return p
}
