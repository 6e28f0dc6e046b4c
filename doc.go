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

// Package raster converts polygons into anti-aliased coverage values.
//
// A [Rasterizer] accumulates the edges of one drawing as cells on a pixel
// grid, using 24.8 fixed point coordinates.  After all edges have been
// added, the drawing is swept row by row into a [Scanline], which holds
// the runs of non-zero coverage of one pixel row.  A [Renderer] finally
// turns scanlines into pixels.
//
// Coverage is computed exactly from the signed area each edge encloses
// within a cell; the [NonZero] and [EvenOdd] fill rules are supported.
// Curves are flattened into line segments before rasterization, see
// [PathStorage.AppendPath].
package raster

//go:generate go run ./testcases/export
