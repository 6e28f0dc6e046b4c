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

package raster

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// DefaultFlatness is the curve flattening tolerance, in device pixels, used
// by AppendPath when no positive tolerance is given.
const DefaultFlatness = 0.25

// flattener converts curves into line segments in device space.
type flattener struct {
	ctm      matrix.Matrix
	flatness float64
}

// transformLinear applies only the 2×2 linear part of the CTM to a vector.
// This is used for tolerance checks, where translation is irrelevant.
func (f *flattener) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: f.ctm[0]*v.X + f.ctm[2]*v.Y,
		Y: f.ctm[1]*v.X + f.ctm[3]*v.Y,
	}
}

func (f *flattener) apply(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: f.ctm[0]*v.X + f.ctm[2]*v.Y + f.ctm[4],
		Y: f.ctm[1]*v.X + f.ctm[3]*v.Y + f.ctm[5],
	}
}

// quadratic flattens a quadratic Bézier curve given in user space, and
// calls emit with every point after p0, in user space.
func (f *flattener) quadratic(p0, p1, p2 vec.Vec2, emit func(vec.Vec2)) {
	// error vector: e = (P0 - 2*P1 + P2) / 4
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)
	errDev := f.transformLinear(e).Length()

	n := 1
	if errDev > f.flatness {
		n = int(math.Ceil(math.Sqrt(errDev / f.flatness)))
	}

	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		emit(p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t)))
	}
}

// cubic flattens a cubic Bézier curve, using Wang's formula for the
// number of segments.
func (f *flattener) cubic(p0, p1, p2, p3 vec.Vec2, emit func(vec.Vec2)) {
	d1 := f.transformLinear(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := f.transformLinear(p1.Sub(p2.Mul(2)).Add(p3))

	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		// n = ceil(sqrt(3 * m / (4 * ε)))
		nFloat := math.Sqrt(3 * m / (4 * f.flatness))
		if nFloat > 1 {
			n = int(math.Ceil(nFloat))
		}
	}

	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		emit(p0.Mul(omt2 * omt).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t2 * t)))
	}
}

// AppendPath stores p as a new path, mapped to device space by ctm, and
// returns the path id.  Curves are replaced by line segments which
// deviate at most flatness device pixels from the curve.
//
// A zero ctm is treated as the identity; a non-positive flatness selects
// DefaultFlatness.  Commands which are not preceded by a MoveTo are
// ignored.
func (ps *PathStorage) AppendPath(p path.Path, ctm matrix.Matrix, flatness float64) int {
	if ctm == (matrix.Matrix{}) {
		ctm = matrix.Identity
	}
	if !(flatness > 0) {
		flatness = DefaultFlatness
	}
	f := &flattener{ctm: ctm, flatness: flatness}

	id := ps.StartNewPath()
	lineTo := func(pt vec.Vec2) {
		q := f.apply(pt)
		ps.LineTo(q.X, q.Y)
	}

	var current, start vec.Vec2
	inSubpath := false
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			current = pts[0]
			start = current
			inSubpath = true
			q := f.apply(current)
			ps.MoveTo(q.X, q.Y)

		case path.CmdLineTo:
			if !inSubpath {
				continue
			}
			lineTo(pts[0])
			current = pts[0]

		case path.CmdQuadTo:
			if !inSubpath {
				continue
			}
			f.quadratic(current, pts[0], pts[1], lineTo)
			current = pts[1]

		case path.CmdCubeTo:
			if !inSubpath {
				continue
			}
			f.cubic(current, pts[0], pts[1], pts[2], lineTo)
			current = pts[2]

		case path.CmdClose:
			if inSubpath {
				ps.ClosePolygon()
				current = start
			}
		}
	}
	return id
}
