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
	"testing"
)

func TestCellStoreSingleCell(t *testing.T) {
	s := newCellStore()

	// a vertical segment through the middle of pixel (2, 1)
	s.line(2*256+128, 256, 2*256+128, 512)
	s.sortCells()

	if s.totalCells() != 1 {
		t.Fatalf("got %d cells, want 1", s.totalCells())
	}
	c := s.cellAt(s.rowCells(1)[0])
	if c.x != 2 || c.y != 1 || c.cover != 256 || c.area != 256*256 {
		t.Errorf("unexpected cell %+v", *c)
	}
	if s.minX != 2 || s.maxX != 2 || s.minY != 1 || s.maxY != 2 {
		t.Errorf("unexpected bounding box %d,%d,%d,%d", s.minX, s.minY, s.maxX, s.maxY)
	}
}

func TestCellStoreVerticalRun(t *testing.T) {
	s := newCellStore()
	// upwards, starting and ending half-way inside a row
	s.line(100, 5*256+64, 100, 1*256+192)
	s.sortCells()

	want := map[int32]int32{
		1: -64,
		2: -256,
		3: -256,
		4: -256,
		5: -64,
	}
	for y := s.minY; y <= s.maxY; y++ {
		row := s.rowCells(y)
		if len(row) != 1 {
			t.Fatalf("row %d: got %d cells", y, len(row))
		}
		c := s.cellAt(row[0])
		if c.cover != want[y] {
			t.Errorf("row %d: cover %d, want %d", y, c.cover, want[y])
		}
		if c.area != 2*100*c.cover {
			t.Errorf("row %d: area %d, want %d", y, c.area, 2*100*c.cover)
		}
	}
}

func TestCellStoreCoverIsDy(t *testing.T) {
	// The covers of all cells add up to the vertical extent of the
	// segments, for arbitrary slopes.
	segments := [][4]int32{
		{0, 0, 1000, 700},
		{1000, 700, -300, 2000},
		{5, 5, 5000, 17},
		{-4000, 3000, 4000, -3000},
		{17, 900, 18, 1},
		{100, 100, 356, 356},
	}
	for _, seg := range segments {
		s := newCellStore()
		s.line(seg[0], seg[1], seg[2], seg[3])
		s.sortCells()

		var sum int32
		for y := s.minY; y <= s.maxY; y++ {
			for _, h := range s.rowCells(y) {
				sum += s.cellAt(h).cover
			}
		}
		if sum != seg[3]-seg[1] {
			t.Errorf("%v: cover sum %d, want %d", seg, sum, seg[3]-seg[1])
		}
	}
}

func TestCellStoreHorizontal(t *testing.T) {
	s := newCellStore()
	s.line(0, 300, 5000, 300)
	s.sortCells()
	if s.totalCells() != 0 {
		t.Errorf("horizontal segment produced %d cells", s.totalCells())
	}
}

func TestCellStoreBlocks(t *testing.T) {
	s := newCellStore()
	// one cell per row
	s.line(10, 0, 10, (cellBlockSize+10)*subpixelScale)
	s.sortCells()

	if got := s.totalCells(); got != cellBlockSize+10 {
		t.Fatalf("got %d cells, want %d", got, cellBlockSize+10)
	}
	if len(s.blocks) != 2 {
		t.Errorf("got %d blocks, want 2", len(s.blocks))
	}

	// reset keeps the blocks
	s.reset()
	if s.totalCells() != 0 || len(s.blocks) != 2 {
		t.Errorf("reset: %d cells, %d blocks", s.totalCells(), len(s.blocks))
	}
}

func TestCellStoreCeiling(t *testing.T) {
	s := newCellStore()
	s.blockLimit = 2
	s.line(10, 0, 10, 3*cellBlockSize*subpixelScale)
	s.sortCells()

	if got := s.totalCells(); got != 2*cellBlockSize {
		t.Errorf("got %d cells, want %d", got, 2*cellBlockSize)
	}
	if !s.dropped {
		t.Error("dropped cells not recorded")
	}
}
