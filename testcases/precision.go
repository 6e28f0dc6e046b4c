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
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
)

// Coordinates are rounded to 1/256 pixel.  These cases check the
// rounding at fractional positions and far away from the origin.
var precisionCases = []TestCase{
	small("subpixel_offset_00", rectangle(20, 20, 44, 44)),
	small("subpixel_offset_25", rectangle(20.25, 20.25, 44.25, 44.25)),
	small("subpixel_offset_50", rectangle(20.5, 20.5, 44.5, 44.5)),
	small("subpixel_offset_75", rectangle(20.75, 20.75, 44.75, 44.75)),

	// a sliver narrower than one subpixel step, and one just wider
	small("sliver_below_step", rectangle(20, 10, 20+1.0/512, 54)),
	small("sliver_above_step", rectangle(20, 10, 20+3.0/512, 54)),

	// The geometry is far from the origin, the transformation moves it
	// back onto the canvas.
	{
		Name:   "large_coord_centered",
		Path:   centeredSquare(1000, 1000, 20),
		Width:  64,
		Height: 64,
		CTM:    matrix.Translate(32-1000, 32-1000),
	},
	{
		Name:   "small_shape_large_offset",
		Path:   centeredSquare(10000, 10000, 2),
		Width:  64,
		Height: 64,
		CTM:    matrix.Translate(32-10000, 32-10000),
	},

	// the two corners differ in the last digit only
	small("float64_precision", rectangle(
		22.123456789012345, 22.123456789012345,
		42.123456789012346, 42.123456789012346)),
}

func centeredSquare(cx, cy, size float64) *path.Data {
	return rectangle(cx-size/2, cy-size/2, cx+size/2, cy+size/2)
}
