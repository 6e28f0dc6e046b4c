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

var complexCases = []TestCase{
	// mixed operations
	{
		Name:   "mixed_lines_curves",
		Path:   mixedLinesCurves(),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
	},
	{
		Name:   "glyph_like",
		Path:   glyphLikeShape(),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
	},
	{
		Name:   "glyph_like_evenodd",
		Path:   glyphLikeShape(),
		Width:  64,
		Height: 64,
		Rule:   EvenOdd,
	},

	// self-intersection
	{
		Name:   "spiral_overlap",
		Path:   spiralPath(32, 32, 5, 25, 3),
		Width:  64,
		Height: 64,
		Rule:   EvenOdd,
	},
	{
		Name:   "spiral_overlap_nonzero",
		Path:   spiralPath(32, 32, 5, 25, 3),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
	},
	{
		Name:   "figure_eight",
		Path:   figureEight(32, 32, 20),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
	},
}

// mixedLinesCurves builds a closed shape made of lines, a quadratic and a
// cubic curve.
func mixedLinesCurves() *path.Data {
	return (&path.Data{}).
		MoveTo(pt(10, 50)).
		LineTo(pt(20, 30)).
		QuadTo(pt(32, 10), pt(44, 30)).
		LineTo(pt(54, 50)).
		CubeTo(pt(48, 60), pt(16, 60), pt(10, 50)).
		Close()
}

// glyphLikeShape builds a shape similar to a simplified lowercase 'a'.
// The counter is traced in the opposite direction, so that it is a hole
// under both fill rules.
func glyphLikeShape() *path.Data {
	cx, cy := 32.0, 38.0
	r := 18.0
	k := r * kappa

	p := (&path.Data{}).
		MoveTo(pt(cx+r, cy)).
		CubeTo(pt(cx+r, cy-k), pt(cx+k, cy-r), pt(cx, cy-r)).
		CubeTo(pt(cx-k, cy-r), pt(cx-r, cy-k), pt(cx-r, cy)).
		CubeTo(pt(cx-r, cy+k), pt(cx-k, cy+r), pt(cx, cy+r)).
		CubeTo(pt(cx+k, cy+r), pt(cx+r, cy+k), pt(cx+r, cy)).
		LineTo(pt(cx+r, 10)).   // stem going up
		LineTo(pt(cx+r-6, 10)). // across the top
		LineTo(pt(cx+r-6, cy))  // down to the bowl

	ir := 8.0
	ik := ir * kappa
	return p.
		LineTo(pt(cx+ir, cy)).
		CubeTo(pt(cx+ir, cy+ik), pt(cx+ik, cy+ir), pt(cx, cy+ir)).
		CubeTo(pt(cx-ik, cy+ir), pt(cx-ir, cy+ik), pt(cx-ir, cy)).
		CubeTo(pt(cx-ir, cy-ik), pt(cx-ik, cy-ir), pt(cx, cy-ir)).
		CubeTo(pt(cx+ik, cy-ir), pt(cx+ir, cy-ik), pt(cx+ir, cy)).
		Close()
}

// spiralPath builds an Archimedean spiral.  The path is left open, the
// implicit closing edge cuts across all turns.
func spiralPath(cx, cy, rMin, rMax float64, turns float64) *path.Data {
	steps := max(int(turns*32), 8) // 32 segments per turn

	totalAngle := turns * 2 * math.Pi
	rGrowth := (rMax - rMin) / totalAngle

	p := (&path.Data{}).MoveTo(pt(cx+rMin, cy))
	for i := 1; i <= steps; i++ {
		angle := float64(i) / float64(steps) * totalAngle
		r := rMin + rGrowth*angle
		p = p.LineTo(pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle)))
	}
	return p
}

// figureEight builds a closed figure-eight made of two loops with opposite
// orientation.
func figureEight(cx, cy, size float64) *path.Data {
	r := size / 2
	k := r * kappa
	topCy := cy - r/2
	botCy := cy + r/2

	return (&path.Data{}).
		MoveTo(pt(cx, cy)).
		// upper loop
		CubeTo(pt(cx+k, cy-r/4), pt(cx+r, topCy-k/2), pt(cx+r, topCy)).
		CubeTo(pt(cx+r, topCy-k), pt(cx+k, topCy-r), pt(cx, topCy-r)).
		CubeTo(pt(cx-k, topCy-r), pt(cx-r, topCy-k), pt(cx-r, topCy)).
		CubeTo(pt(cx-r, topCy+k/2), pt(cx-k, cy-r/4), pt(cx, cy)).
		// lower loop
		CubeTo(pt(cx-k, cy+r/4), pt(cx-r, botCy-k/2), pt(cx-r, botCy)).
		CubeTo(pt(cx-r, botCy+k), pt(cx-k, botCy+r), pt(cx, botCy+r)).
		CubeTo(pt(cx+k, botCy+r), pt(cx+r, botCy+k), pt(cx+r, botCy)).
		CubeTo(pt(cx+r, botCy-k/2), pt(cx+k, cy+r/4), pt(cx, cy)).
		Close()
}
