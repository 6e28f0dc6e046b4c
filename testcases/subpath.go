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
	"seehuhn.de/go/geom/path"
)

var subpathCases = []TestCase{
	{
		Name:   "two_triangles",
		Path:   twoTriangles(16, 32, 48, 32, 12),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
	},
	{
		Name:   "overlapping_rect_nonzero",
		Path:   overlappingRectangles(10, 10, 40, 40, 24, 24, 54, 54),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
	},
	{
		Name:   "overlapping_rect_evenodd",
		Path:   overlappingRectangles(10, 10, 40, 40, 24, 24, 54, 54),
		Width:  64,
		Height: 64,
		Rule:   EvenOdd,
	},
	{
		Name:   "ring_shape",
		Path:   ringShape(32, 32, 25, 12),
		Width:  64,
		Height: 64,
		Rule:   EvenOdd,
	},
	{
		Name:   "ring_shape_nonzero",
		Path:   ringShape(32, 32, 25, 12),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
	},
	{
		Name:   "multiple_rings",
		Path:   multipleRings(64, 64),
		Width:  128,
		Height: 128,
		Rule:   EvenOdd,
	},
	{
		Name:   "many_small_shapes",
		Path:   manySmallShapes(8, 8),
		Width:  128,
		Height: 128,
		Rule:   NonZero,
	},
}

// twoTriangles builds two separate, disjoint triangles.
func twoTriangles(cx1, cy1, cx2, cy2 float64, size float64) *path.Data {
	p := &path.Data{}
	p = appendTriangle(p, cx1, cy1, size)
	return appendTriangle(p, cx2, cy2, size)
}

func appendTriangle(p *path.Data, cx, cy, size float64) *path.Data {
	return p.
		MoveTo(pt(cx, cy-size)).
		LineTo(pt(cx+size, cy+size)).
		LineTo(pt(cx-size, cy+size)).
		Close()
}

func appendRectangle(p *path.Data, x1, y1, x2, y2 float64) *path.Data {
	return p.
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x1, y2)).
		Close()
}

// overlappingRectangles builds two overlapping rectangles.
func overlappingRectangles(x1a, y1a, x2a, y2a, x1b, y1b, x2b, y2b float64) *path.Data {
	p := appendRectangle(&path.Data{}, x1a, y1a, x2a, y2a)
	return appendRectangle(p, x1b, y1b, x2b, y2b)
}

// ringShape builds a ring (outer rectangle with inner rectangle cutout).
// Both rectangles have the same orientation, so the hole only appears
// with the even-odd rule.
func ringShape(cx, cy, outerSize, innerSize float64) *path.Data {
	p := appendRectangle(&path.Data{}, cx-outerSize, cy-outerSize, cx+outerSize, cy+outerSize)
	return appendRectangle(p, cx-innerSize, cy-innerSize, cx+innerSize, cy+innerSize)
}

// multipleRings builds three square donut shapes.
func multipleRings(cx, cy float64) *path.Data {
	rings := []struct{ cx, cy, outer, inner float64 }{
		{cx - 30, cy - 30, 20, 10},
		{cx + 30, cy - 30, 20, 10},
		{cx, cy + 30, 20, 10},
	}

	p := &path.Data{}
	for _, ring := range rings {
		p = appendRectangle(p, ring.cx-ring.outer, ring.cy-ring.outer, ring.cx+ring.outer, ring.cy+ring.outer)
		p = appendRectangle(p, ring.cx-ring.inner, ring.cy-ring.inner, ring.cx+ring.inner, ring.cy+ring.inner)
	}
	return p
}

// manySmallShapes builds a grid of small triangles (stress test).
func manySmallShapes(rows, cols int) *path.Data {
	const size = 5.0
	const spacing = 14.0

	p := &path.Data{}
	for row := range rows {
		for col := range cols {
			p = appendTriangle(p, 10+float64(col)*spacing, 10+float64(row)*spacing, size)
		}
	}
	return p
}
