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
	"fmt"
	"math"

	"golang.org/x/image/math/fixed"
)

// Coverage values computed by the rasterizer have aaShift bits.
const (
	aaShift  = 8
	aaScale  = 1 << aaShift
	aaMask   = aaScale - 1
	aaScale2 = aaScale * 2
	aaMask2  = aaScale2 - 1
)

// maxCoord bounds subpixel coordinates.  The difference of two
// coordinates, and the products formed by the clipper, fit into an int32.
const maxCoord = 1 << 29

// FillRule selects how overlapping parts of a drawing are resolved.
type FillRule int

const (
	// NonZero fills all points with non-zero winding number.
	NonZero FillRule = iota

	// EvenOdd fills all points with odd winding number.
	EvenOdd
)

func (r FillRule) String() string {
	switch r {
	case NonZero:
		return "nonzero"
	case EvenOdd:
		return "evenodd"
	default:
		return fmt.Sprintf("FillRule(%d)", int(r))
	}
}

type status int

const (
	statusInitial status = iota
	statusMoveTo
	statusLineTo
	statusClosed
)

// Rasterizer converts polygons into anti-aliased scanlines.
//
// Polygons are added with MoveTo, LineTo and ClosePolygon (or AddPath);
// all subpaths of a drawing accumulate into the same set of cells.  The
// coverage is then read row by row with RewindScanlines and
// SweepScanline.  Adding a new polygon after the sweep has started begins
// a new drawing.
//
// Coordinates are in pixels and are rounded to 1/256 of a pixel.
//
// A Rasterizer is not safe for concurrent use.  Separate instances share
// no state.
type Rasterizer struct {
	// FillRule determines how overlapping areas are filled.
	// Values other than NonZero and EvenOdd cause a panic when the
	// scanlines are rewound.
	FillRule FillRule

	// AutoClose makes MoveTo and RewindScanlines close the current subpath.
	AutoClose bool

	cells  *cellStore
	clip   clipper
	gamma  gammaTable
	status status

	startX, startY int32
	scanY          int32
}

// NewRasterizer returns a Rasterizer with the nonzero fill rule,
// automatic closing of subpaths, identity gamma and no clipping.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{
		AutoClose: true,
		cells:     newCellStore(),
		gamma:     identityGamma(),
	}
}

// Reset discards all polygons.  Fill rule, gamma and clip box are kept.
func (r *Rasterizer) Reset() {
	r.cells.reset()
	r.status = statusInitial
}

// SetGamma sets the gamma function applied to the computed coverage.
// A nil function restores the identity.
func (r *Rasterizer) SetGamma(g GammaFunction) {
	if g == nil {
		r.gamma = identityGamma()
		return
	}
	r.gamma = newGammaTable(g)
}

// SetGammaTable installs a precomputed lookup table, mapping coverage
// 0..255 to alpha.
func (r *Rasterizer) SetGammaTable(t [aaScale]uint8) {
	r.gamma = t
}

// ClipBox restricts the output to the given rectangle, in pixels.
// This discards all polygons added so far.
func (r *Rasterizer) ClipBox(x1, y1, x2, y2 float64) {
	r.Reset()
	r.clip.clipBox(upscale(x1), upscale(y1), upscale(x2), upscale(y2))
}

// ResetClipping removes the clip box.  This discards all polygons added
// so far.
func (r *Rasterizer) ResetClipping() {
	r.Reset()
	r.clip.resetClipping()
}

// upscale converts pixels to subpixel coordinates.
func upscale(v float64) int32 {
	v = math.Round(v * subpixelScale)
	if !(v > -maxCoord) { // also catches NaN
		return -maxCoord
	}
	if v > maxCoord {
		return maxCoord
	}
	return int32(v)
}

// MoveTo starts a new subpath at (x, y).
func (r *Rasterizer) MoveTo(x, y float64) {
	r.MoveToSubpixel(upscale(x), upscale(y))
}

// LineTo adds an edge from the current point to (x, y).
func (r *Rasterizer) LineTo(x, y float64) {
	r.LineToSubpixel(upscale(x), upscale(y))
}

// MoveTo26_6 starts a new subpath at a point given in 26.6 fixed point.
func (r *Rasterizer) MoveTo26_6(p fixed.Point26_6) {
	r.MoveToSubpixel(from26_6(p.X), from26_6(p.Y))
}

// LineTo26_6 adds an edge to a point given in 26.6 fixed point.
func (r *Rasterizer) LineTo26_6(p fixed.Point26_6) {
	r.LineToSubpixel(from26_6(p.X), from26_6(p.Y))
}

func from26_6(v fixed.Int26_6) int32 {
	return int32(min(max(int64(v)<<(subpixelShift-6), -maxCoord), maxCoord))
}

func clampCoord(v int32) int32 {
	return min(max(v, -maxCoord), maxCoord)
}

// MoveToSubpixel starts a new subpath at (x, y), given in units of
// 1/256 pixel.  Coordinates are clamped to ±2^29.
func (r *Rasterizer) MoveToSubpixel(x, y int32) {
	if r.cells.sorted {
		r.Reset()
	}
	if r.AutoClose {
		r.ClosePolygon()
	}
	x, y = clampCoord(x), clampCoord(y)
	r.startX, r.startY = x, y
	r.clip.moveTo(x, y)
	r.status = statusMoveTo
}

// LineToSubpixel adds an edge to (x, y), given in units of 1/256 pixel.
// Without a current subpath this starts one at (x, y).
func (r *Rasterizer) LineToSubpixel(x, y int32) {
	if r.status == statusInitial {
		r.MoveToSubpixel(x, y)
		return
	}
	r.clip.lineTo(r.cells, clampCoord(x), clampCoord(y))
	r.status = statusLineTo
}

// ClosePolygon adds an edge back to the start of the current subpath, if
// any edges were added since the subpath was started.
func (r *Rasterizer) ClosePolygon() {
	if r.status == statusLineTo {
		r.clip.lineTo(r.cells, r.startX, r.startY)
		r.status = statusClosed
	}
}

// Edge adds a single edge from (x1, y1) to (x2, y2).
func (r *Rasterizer) Edge(x1, y1, x2, y2 float64) {
	if r.cells.sorted {
		r.Reset()
	}
	r.clip.moveTo(upscale(x1), upscale(y1))
	r.clip.lineTo(r.cells, upscale(x2), upscale(y2))
	r.status = statusMoveTo
}

// AddVertex applies one path command.
func (r *Rasterizer) AddVertex(x, y float64, cmd Command) {
	switch cmd {
	case CmdMoveTo:
		r.MoveTo(x, y)
	case CmdLineTo:
		r.LineTo(x, y)
	case CmdClose:
		r.ClosePolygon()
	}
}

// AddPath adds all vertices of path pathID of vs.
func (r *Rasterizer) AddPath(vs VertexSource, pathID int) {
	vs.Rewind(pathID)
	if r.cells.sorted {
		r.Reset()
	}
	for {
		cmd, x, y := vs.Vertex()
		if cmd == CmdStop {
			break
		}
		r.AddVertex(x, y, cmd)
	}
}

// MinX returns the leftmost pixel column touched by the drawing.
func (r *Rasterizer) MinX() int { return int(r.cells.minX) }

// MinY returns the topmost pixel row touched by the drawing.
func (r *Rasterizer) MinY() int { return int(r.cells.minY) }

// MaxX returns the rightmost pixel column touched by the drawing.
func (r *Rasterizer) MaxX() int { return int(r.cells.maxX) }

// MaxY returns the bottom pixel row touched by the drawing.
func (r *Rasterizer) MaxY() int { return int(r.cells.maxY) }

// TotalCells returns the number of cells accumulated so far.
func (r *Rasterizer) TotalCells() int { return r.cells.totalCells() }

// RewindScanlines prepares the drawing for sweeping.  It returns false if
// nothing would be drawn.
func (r *Rasterizer) RewindScanlines() bool {
	if r.FillRule != NonZero && r.FillRule != EvenOdd {
		panic("raster: invalid fill rule " + r.FillRule.String())
	}
	if r.AutoClose {
		r.ClosePolygon()
	}
	r.cells.sortCells()
	if r.cells.totalCells() == 0 {
		return false
	}
	r.scanY = r.cells.minY
	return true
}

// NavigateScanline positions the sweep at row y.  It returns false if the
// drawing has no cells in or around row y.
func (r *Rasterizer) NavigateScanline(y int) bool {
	if r.AutoClose {
		r.ClosePolygon()
	}
	r.cells.sortCells()
	if r.cells.totalCells() == 0 || y < r.MinY() || y > r.MaxY() {
		return false
	}
	r.scanY = int32(y)
	return true
}

// CalculateAlpha converts an accumulated area, in units of
// 2*subpixelScale*subpixelScale per pixel, into an alpha value using the
// fill rule and gamma table.
func (r *Rasterizer) CalculateAlpha(area int32) uint8 {
	cover := area >> (2*subpixelShift + 1 - aaShift)
	if cover < 0 {
		cover = -cover
	}
	if r.FillRule == EvenOdd {
		cover &= aaMask2
		if cover > aaScale {
			cover = aaScale2 - cover
		}
	}
	if cover > aaMask {
		cover = aaMask
	}
	return r.gamma[cover]
}

// SweepScanline emits the coverage of the next non-empty row into sl.
// It returns false once all rows have been swept.
func (r *Rasterizer) SweepScanline(sl Scanline) bool {
	for {
		if r.scanY > r.cells.maxY {
			return false
		}
		sl.ResetSpans()

		row := r.cells.rowCells(r.scanY)
		var cover int32
		for i := 0; i < len(row); {
			c := r.cells.cellAt(row[i])
			x := c.x
			area := c.area
			cover += c.cover
			i++

			// merge all cells with the same x
			for i < len(row) {
				c = r.cells.cellAt(row[i])
				if c.x != x {
					break
				}
				area += c.area
				cover += c.cover
				i++
			}

			if area != 0 {
				if alpha := r.CalculateAlpha(cover<<(subpixelShift+1) - area); alpha != 0 {
					sl.AddCell(int(x), alpha)
				}
				x++
			}

			if i < len(row) && c.x > x {
				if alpha := r.CalculateAlpha(cover << (subpixelShift + 1)); alpha != 0 {
					sl.AddSpan(int(x), int(c.x-x), alpha)
				}
			}
		}

		if sl.NumSpans() > 0 {
			break
		}
		r.scanY++
	}

	sl.Finalize(int(r.scanY))
	r.scanY++
	return true
}

// HitTest reports whether pixel (x, y) receives non-zero alpha.
func (r *Rasterizer) HitTest(x, y int) bool {
	if !r.NavigateScanline(y) {
		return false
	}
	sl := &scanlineHitTest{x: x}
	r.SweepScanline(sl)
	return sl.hit
}
