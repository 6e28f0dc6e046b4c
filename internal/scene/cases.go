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

package scene

import (
	"image"
	"image/color"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/raster"
	"seehuhn.de/go/raster/testcases"
)

// FromTestCase converts a fill fixture into a scene with a black shape
// on a white background.
func FromTestCase(tc testcases.TestCase) *Scene {
	sh := Shape{
		Path: FormatPath(tc.Commands()),
		Fill: "#000000",
		Rule: tc.Rule.String(),
	}
	if tc.CTM != (matrix.Matrix{}) && tc.CTM != matrix.Identity {
		sh.Transform = tc.CTM[:]
	}
	return &Scene{
		Width:      tc.Width,
		Height:     tc.Height,
		Background: "#ffffff",
		Shapes:     []Shape{sh},
	}
}

// Coverage rasterizes a fill fixture into a gray image, where the gray
// value of each pixel is its coverage.
func Coverage(tc testcases.TestCase, packed bool) *image.Gray {
	ras := raster.NewRasterizer()
	ras.ClipBox(0, 0, float64(tc.Width), float64(tc.Height))
	if tc.Rule == testcases.EvenOdd {
		ras.FillRule = raster.EvenOdd
	}
	var ps raster.PathStorage
	ras.AddPath(&ps, ps.AppendPath(tc.Commands(), tc.Matrix(), 0))

	mask := image.NewAlpha(image.Rect(0, 0, tc.Width, tc.Height))
	var sl raster.Scanline = &raster.ScanlineU8{}
	if packed {
		sl = &raster.ScanlinePacked{}
	}
	raster.RenderScanlines(ras, sl, &raster.SolidRenderer{Dst: mask, Color: color.Opaque})

	return &image.Gray{Pix: mask.Pix, Stride: mask.Stride, Rect: mask.Rect}
}
