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
	"seehuhn.de/go/geom/vec"
)

// kappa places the control points of a cubic Bezier curve which
// approximates a quarter circle.
const kappa = 0.5522847498307936

// Curves are flattened before they reach the rasterizer.  These cases
// check that the flattened outline has the coverage of the exact curve.
var curveCases = []TestCase{
	small("quadratic", bezier(true, 10, 50, 32, 10, 54, 50)),
	small("cubic", bezier(true, 10, 50, 20, 10, 44, 10, 54, 50)),
	small("circle", circle(32, 32, 25)),

	// control point near, far, and on the other side of the chord
	small("quadratic_shallow", bezier(true, 10, 32, 32, 28, 54, 32)),
	small("quadratic_deep", bezier(true, 10, 50, 32, 5, 54, 50)),
	small("quadratic_below", bezier(true, 10, 20, 32, 55, 54, 20)),
	small("quadratic_s_shape", twoQuadratics(10, 32, 54, 32)),

	small("cubic_shallow", bezier(true, 10, 32, 22, 28, 42, 28, 54, 32)),
	small("cubic_deep", bezier(true, 10, 50, 15, 5, 49, 5, 54, 50)),
	small("cubic_scurve", bezier(true, 10, 50, 10, 10, 54, 54, 54, 14)),
	small("cubic_loop", bezier(true, 10, 32, 60, 5, 4, 59, 54, 32)),
	small("cubic_cusp", bezier(true, 10, 50, 54, 10, 10, 10, 54, 50)),
	small("cubic_nearly_straight", bezier(true, 10, 32, 24, 31, 40, 31, 54, 32)),

	small("circle_small", circle(32, 32, 5)),
	{
		Name:   "circle_large", // only part of the circle is visible
		Path:   circle(64, 64, 100),
		Width:  128,
		Height: 128,
	},
	small("ellipse", ellipse(32, 32, 28, 14)),
	small("arc", pie(32, 32, 25, 3)),

	// subdivision limits
	{
		Name:   "curve_many_segments",
		Path:   bezier(true, 5, 60, 5, 5, 123, 5, 123, 60),
		Width:  128,
		Height: 64,
	},
	small("curve_minimal_segments", bezier(true, 10, 32, 24, 31.5, 40, 31.5, 54, 32)),
	small("curve_subpixel", bezier(true, 31.2, 31.2, 31.9, 30.5, 31.8, 32.4, 32.6, 31.7)),
	small("cubic_degenerate", bezier(true, 32, 32, 32, 32, 32, 32, 32, 32)),
	small("quadratic_degenerate", bezier(true, 10, 32, 10, 32, 54, 32)),

	// open paths are closed by the fill
	small("quadratic_open", bezier(false, 10, 50, 32, 10, 54, 50)),
	{
		Name:   "cubic_open",
		Path:   bezier(false, 10, 50, 10, 10, 54, 54, 54, 14),
		Width:  64,
		Height: 64,
		Rule:   EvenOdd,
	},
}

// small returns a nonzero test case on a 64x64 canvas.
func small(name string, p *path.Data) TestCase {
	return TestCase{Name: name, Path: p, Width: 64, Height: 64}
}

// bezier builds a path consisting of a single curve.  Three points give
// a quadratic curve, four points a cubic one.
func bezier(closed bool, xy ...float64) *path.Data {
	p := (&path.Data{}).MoveTo(pt(xy[0], xy[1]))
	switch len(xy) {
	case 6:
		p = p.QuadTo(pt(xy[2], xy[3]), pt(xy[4], xy[5]))
	case 8:
		p = p.CubeTo(pt(xy[2], xy[3]), pt(xy[4], xy[5]), pt(xy[6], xy[7]))
	default:
		panic("testcases: bezier needs 3 or 4 points")
	}
	if closed {
		p = p.Close()
	}
	return p
}

// twoQuadratics joins two quadratic curves into an S shape.
func twoQuadratics(x1, y1, x2, y2 float64) *path.Data {
	mx, my := (x1+x2)/2, (y1+y2)/2
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		QuadTo(pt((x1+mx)/2, y1-20), pt(mx, my)).
		QuadTo(pt((mx+x2)/2, y2+20), pt(x2, y2)).
		Close()
}

// quadrants lists the start points of the four quarters of the unit
// circle, in drawing order.  Each quarter ends where the next one starts.
var quadrants = [5]vec.Vec2{{X: 1}, {Y: -1}, {X: -1}, {Y: 1}, {X: 1}}

// appendQuarters adds n quarters of the ellipse with center (cx, cy) and
// radii rx, ry, starting at the right-most point.  The current point must
// be the start of the first quarter.
func appendQuarters(p *path.Data, cx, cy, rx, ry float64, n int) *path.Data {
	at := func(v vec.Vec2) vec.Vec2 {
		return pt(cx+rx*v.X, cy+ry*v.Y)
	}
	for i := range n {
		a, b := quadrants[i], quadrants[i+1]
		c1 := vec.Vec2{X: a.X + kappa*b.X, Y: a.Y + kappa*b.Y}
		c2 := vec.Vec2{X: b.X + kappa*a.X, Y: b.Y + kappa*a.Y}
		p = p.CubeTo(at(c1), at(c2), at(b))
	}
	return p
}

func ellipse(cx, cy, rx, ry float64) *path.Data {
	p := (&path.Data{}).MoveTo(pt(cx+rx, cy))
	return appendQuarters(p, cx, cy, rx, ry, 4).Close()
}

func circle(cx, cy, r float64) *path.Data {
	return ellipse(cx, cy, r, r)
}

// pie builds a circular sector made of n quarter circles.
func pie(cx, cy, r float64, n int) *path.Data {
	p := (&path.Data{}).MoveTo(pt(cx, cy)).LineTo(pt(cx+r, cy))
	return appendQuarters(p, cx, cy, r, r, n).Close()
}
