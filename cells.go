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

import "math"

// Coordinates handed to the cell store are fixed-point numbers with
// subpixelShift fractional bits.
const (
	subpixelShift = 8
	subpixelScale = 1 << subpixelShift
	subpixelMask  = subpixelScale - 1
)

// Cells are stored in blocks of cellBlockSize.  At most cellBlockLimit
// blocks are allocated; cells beyond this ceiling are dropped.
const (
	cellBlockShift = 12
	cellBlockSize  = 1 << cellBlockShift
	cellBlockMask  = cellBlockSize - 1
	cellBlockLimit = 1024
)

// dxLimit bounds the horizontal extent of a segment processed in one go.
// Longer segments are split in half, so that the products in renderHLine
// stay within 32 bits.
const dxLimit = 16384 << subpixelShift

// cell accumulates the contribution of all edges crossing one pixel.
//
// cover is the signed vertical extent (in subpixels) of the edges crossing
// the pixel, and area is the signed area between the edges and the left
// pixel border, scaled by 2*subpixelScale.
type cell struct {
	x, y  int32
	cover int32
	area  int32
}

var emptyCell = cell{x: math.MaxInt32, y: math.MaxInt32}

// sortedRow locates the cells of one pixel row in cellStore.sortedCells.
type sortedRow struct {
	start, num int32
}

// cellStore converts line segments into cells.
//
// Cells are appended to fixed-size blocks and addressed by int32 handles,
// handle h living in blocks[h>>cellBlockShift][h&cellBlockMask].
type cellStore struct {
	blocks     [][]cell
	numCells   int
	blockLimit int
	dropped    bool

	curr cell

	// bounding box of all segment end points, in pixels
	minX, minY, maxX, maxY int32

	sortedCells []int32
	sortedY     []sortedRow
	sorted      bool
}

func newCellStore() *cellStore {
	s := &cellStore{blockLimit: cellBlockLimit}
	s.reset()
	return s
}

// reset discards all cells.  Allocated blocks are kept for reuse.
func (s *cellStore) reset() {
	s.numCells = 0
	s.dropped = false
	s.curr = emptyCell
	s.minX = math.MaxInt32
	s.minY = math.MaxInt32
	s.maxX = -math.MaxInt32
	s.maxY = -math.MaxInt32
	s.sorted = false
}

func (s *cellStore) cellAt(h int32) *cell {
	return &s.blocks[h>>cellBlockShift][h&cellBlockMask]
}

// addCurrCell appends the current cell to the store, unless it is empty.
func (s *cellStore) addCurrCell() {
	if s.curr.area|s.curr.cover == 0 {
		return
	}
	if s.numCells&cellBlockMask == 0 {
		blk := s.numCells >> cellBlockShift
		if blk >= s.blockLimit {
			if !s.dropped {
				s.dropped = true
				Logger().Debug("cell limit reached, dropping cells",
					"cells", s.numCells, "blocks", s.blockLimit)
			}
			return
		}
		if blk == len(s.blocks) {
			s.blocks = append(s.blocks, make([]cell, cellBlockSize))
		}
	}
	s.blocks[s.numCells>>cellBlockShift][s.numCells&cellBlockMask] = s.curr
	s.numCells++
}

// setCurrCell makes (x, y) the current cell, flushing the previous one.
func (s *cellStore) setCurrCell(x, y int32) {
	if s.curr.x != x || s.curr.y != y {
		s.addCurrCell()
		s.curr = cell{x: x, y: y}
	}
}

func (s *cellStore) extend(ex, ey int32) {
	s.minX = min(s.minX, ex)
	s.maxX = max(s.maxX, ex)
	s.minY = min(s.minY, ey)
	s.maxY = max(s.maxY, ey)
}

// renderHLine accumulates the part of a segment inside pixel row ey.
// x1 and x2 are subpixel coordinates, y1 and y2 are the fractional
// y coordinates within the row (0..subpixelScale).
func (s *cellStore) renderHLine(ey, x1, y1, x2, y2 int32) {
	ex1 := x1 >> subpixelShift
	ex2 := x2 >> subpixelShift
	fx1 := x1 & subpixelMask
	fx2 := x2 & subpixelMask

	// horizontal segments only move the current cell
	if y1 == y2 {
		s.setCurrCell(ex2, ey)
		return
	}

	// single cell
	if ex1 == ex2 {
		delta := y2 - y1
		s.curr.cover += delta
		s.curr.area += (fx1 + fx2) * delta
		return
	}

	// run of adjacent cells on the same row
	p := (subpixelScale - fx1) * (y2 - y1)
	first := int32(subpixelScale)
	incr := int32(1)
	dx := x2 - x1
	if dx < 0 {
		p = fx1 * (y2 - y1)
		first = 0
		incr = -1
		dx = -dx
	}

	delta := p / dx
	mod := p % dx
	if mod < 0 {
		delta--
		mod += dx
	}

	s.curr.cover += delta
	s.curr.area += (fx1 + first) * delta

	ex1 += incr
	s.setCurrCell(ex1, ey)
	y1 += delta

	if ex1 != ex2 {
		p = subpixelScale * (y2 - y1 + delta)
		lift := p / dx
		rem := p % dx
		if rem < 0 {
			lift--
			rem += dx
		}

		mod -= dx
		for ex1 != ex2 {
			delta = lift
			mod += rem
			if mod >= 0 {
				mod -= dx
				delta++
			}

			s.curr.cover += delta
			s.curr.area += subpixelScale * delta
			y1 += delta
			ex1 += incr
			s.setCurrCell(ex1, ey)
		}
	}

	delta = y2 - y1
	s.curr.cover += delta
	s.curr.area += (fx2 + subpixelScale - first) * delta
}

// line accumulates the segment from (x1, y1) to (x2, y2), given in
// subpixel coordinates, into the cells it crosses.
func (s *cellStore) line(x1, y1, x2, y2 int32) {
	if s.sorted {
		s.reset()
	}

	dx := x2 - x1
	if dx >= dxLimit || dx <= -dxLimit {
		cx := int32((int64(x1) + int64(x2)) >> 1)
		cy := int32((int64(y1) + int64(y2)) >> 1)
		s.line(x1, y1, cx, cy)
		s.line(cx, cy, x2, y2)
		return
	}

	dy := y2 - y1
	ex1 := x1 >> subpixelShift
	ex2 := x2 >> subpixelShift
	ey1 := y1 >> subpixelShift
	ey2 := y2 >> subpixelShift
	fy1 := y1 & subpixelMask
	fy2 := y2 & subpixelMask

	s.extend(ex1, ey1)
	s.extend(ex2, ey2)

	s.setCurrCell(ex1, ey1)

	// everything within one row
	if ey1 == ey2 {
		s.renderHLine(ey1, x1, fy1, x2, fy2)
		return
	}

	incr := int32(1)

	// Vertical segments touch exactly one cell per row, and all rows
	// strictly between the end points get the same cover and area.
	if dx == 0 {
		twoFx := (x1 - ex1<<subpixelShift) << 1

		first := int32(subpixelScale)
		if dy < 0 {
			first = 0
			incr = -1
		}

		delta := first - fy1
		s.curr.cover += delta
		s.curr.area += twoFx * delta

		ey1 += incr
		s.setCurrCell(ex1, ey1)

		delta = first + first - subpixelScale
		area := twoFx * delta
		for ey1 != ey2 {
			s.curr.cover = delta
			s.curr.area = area
			ey1 += incr
			s.setCurrCell(ex1, ey1)
		}

		delta = fy2 - subpixelScale + first
		s.curr.cover += delta
		s.curr.area += twoFx * delta
		return
	}

	// several rows
	p := (subpixelScale - fy1) * dx
	first := int32(subpixelScale)
	if dy < 0 {
		p = fy1 * dx
		first = 0
		incr = -1
		dy = -dy
	}

	delta := p / dy
	mod := p % dy
	if mod < 0 {
		delta--
		mod += dy
	}

	xFrom := x1 + delta
	s.renderHLine(ey1, x1, fy1, xFrom, first)

	ey1 += incr
	s.setCurrCell(xFrom>>subpixelShift, ey1)

	if ey1 != ey2 {
		p = subpixelScale * dx
		lift := p / dy
		rem := p % dy
		if rem < 0 {
			lift--
			rem += dy
		}

		mod -= dy
		for ey1 != ey2 {
			delta = lift
			mod += rem
			if mod >= 0 {
				mod -= dy
				delta++
			}

			xTo := xFrom + delta
			s.renderHLine(ey1, xFrom, subpixelScale-first, xTo, first)
			xFrom = xTo

			ey1 += incr
			s.setCurrCell(xFrom>>subpixelShift, ey1)
		}
	}
	s.renderHLine(ey1, xFrom, subpixelScale-first, x2, fy2)
}

// totalCells returns the number of cells stored so far.  The current
// cell is only counted once it has been flushed.
func (s *cellStore) totalCells() int {
	return s.numCells
}
