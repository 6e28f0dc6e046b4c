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
	"cmp"
	"slices"
)

// sortCells flushes the current cell and orders all cells first by row
// and then by x.  The result is available through rowCells until the next
// segment is added.  Calling sortCells again has no effect.
func (s *cellStore) sortCells() {
	if s.sorted {
		return
	}

	s.addCurrCell()
	s.curr = emptyCell

	if s.numCells == 0 {
		s.sortedCells = s.sortedCells[:0]
		s.sortedY = s.sortedY[:0]
		s.sorted = true
		return
	}

	rows := int(s.maxY-s.minY) + 1
	s.sortedY = slices.Grow(s.sortedY[:0], rows)[:rows]
	clear(s.sortedY)
	s.sortedCells = slices.Grow(s.sortedCells[:0], s.numCells)[:s.numCells]

	// histogram of cells per row
	for h := range int32(s.numCells) {
		s.sortedY[s.cellAt(h).y-s.minY].start++
	}

	// convert the histogram into start offsets
	var start int32
	for i := range s.sortedY {
		n := s.sortedY[i].start
		s.sortedY[i].start = start
		start += n
	}

	// scatter the handles into their rows
	for h := range int32(s.numCells) {
		row := &s.sortedY[s.cellAt(h).y-s.minY]
		s.sortedCells[row.start+row.num] = h
		row.num++
	}

	byX := func(a, b int32) int {
		return cmp.Compare(s.cellAt(a).x, s.cellAt(b).x)
	}
	for _, row := range s.sortedY {
		if row.num > 1 {
			slices.SortFunc(s.sortedCells[row.start:row.start+row.num], byX)
		}
	}
	s.sorted = true

	Logger().Debug("cells sorted",
		"cells", s.numCells, "rows", rows,
		"minX", s.minX, "minY", s.minY, "maxX", s.maxX, "maxY", s.maxY)
}

// rowCells returns the handles of the cells in pixel row y, in order of
// increasing x.  The cells must be sorted and y must lie in [minY, maxY].
func (s *cellStore) rowCells(y int32) []int32 {
	row := s.sortedY[y-s.minY]
	return s.sortedCells[row.start : row.start+row.num]
}
