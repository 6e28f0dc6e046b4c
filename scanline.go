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
	"iter"
	"slices"
)

// A Span is a run of pixels on one scanline.
//
// If Len is positive, the span covers Len pixels starting at X and
// Covers holds one alpha value per pixel.  If Len is negative, the span
// covers -Len pixels which all share the alpha value Covers[0].
//
// Covers is borrowed from the scanline and is only valid until the
// scanline is reused.
type Span struct {
	X      int
	Len    int
	Covers []uint8
}

// Scanline receives the coverage of one pixel row from
// [Rasterizer.SweepScanline].
//
// The rasterizer calls ResetSpans, then AddCell and AddSpan with strictly
// increasing x, and finally Finalize.  Reset is called once per drawing,
// with the horizontal extent of all cells, before the first sweep.
type Scanline interface {
	Reset(minX, maxX int)
	ResetSpans()
	AddCell(x int, alpha uint8)
	AddSpan(x, length int, alpha uint8)
	Finalize(y int)
	NumSpans() int
	Y() int
	Spans() iter.Seq[Span]
}

// lastXNone is a value for lastX which can never be adjacent to a pixel.
const lastXNone = 0x7ffffff0

type spanRef struct {
	x, len int
	off    int // index into covers
}

// ScanlineU8 is an unpacked scanline: every pixel of every span has its own
// alpha value.  Adjacent cells and spans are merged into one span.
//
// Reset must be called before the first row is swept;
// RenderScanlines does this automatically.
type ScanlineU8 struct {
	minX   int
	lastX  int
	y      int
	covers []uint8
	spans  []spanRef
}

// Reset implements the [Scanline] interface.
func (sl *ScanlineU8) Reset(minX, maxX int) {
	n := maxX - minX + 3
	sl.covers = slices.Grow(sl.covers[:0], n)[:n]
	sl.minX = minX
	sl.ResetSpans()
}

// ResetSpans implements the [Scanline] interface.
func (sl *ScanlineU8) ResetSpans() {
	sl.lastX = lastXNone
	sl.spans = sl.spans[:0]
}

// AddCell implements the [Scanline] interface.
func (sl *ScanlineU8) AddCell(x int, alpha uint8) {
	x -= sl.minX
	sl.covers[x] = alpha
	if x == sl.lastX+1 {
		sl.spans[len(sl.spans)-1].len++
	} else {
		sl.spans = append(sl.spans, spanRef{x: x + sl.minX, len: 1, off: x})
	}
	sl.lastX = x
}

// AddSpan implements the [Scanline] interface.
func (sl *ScanlineU8) AddSpan(x, length int, alpha uint8) {
	x -= sl.minX
	row := sl.covers[x : x+length]
	for i := range row {
		row[i] = alpha
	}
	if x == sl.lastX+1 {
		sl.spans[len(sl.spans)-1].len += length
	} else {
		sl.spans = append(sl.spans, spanRef{x: x + sl.minX, len: length, off: x})
	}
	sl.lastX = x + length - 1
}

// Finalize implements the [Scanline] interface.
func (sl *ScanlineU8) Finalize(y int) { sl.y = y }

// NumSpans implements the [Scanline] interface.
func (sl *ScanlineU8) NumSpans() int { return len(sl.spans) }

// Y implements the [Scanline] interface.
func (sl *ScanlineU8) Y() int { return sl.y }

// Spans implements the [Scanline] interface.  All spans have positive length.
func (sl *ScanlineU8) Spans() iter.Seq[Span] {
	return func(yield func(Span) bool) {
		for _, s := range sl.spans {
			if !yield(Span{X: s.x, Len: s.len, Covers: sl.covers[s.off : s.off+s.len]}) {
				return
			}
		}
	}
}

// ScanlinePacked is a packed scanline: runs of pixels sharing one alpha
// value are stored with a single cover and reported with negative length.
// Individual cells are stored as in [ScanlineU8].
//
// The zero value is ready to use.
type ScanlinePacked struct {
	lastX  int
	y      int
	covers []uint8
	spans  []spanRef
}

// Reset implements the [Scanline] interface.
func (sl *ScanlinePacked) Reset(minX, maxX int) {
	sl.covers = slices.Grow(sl.covers[:0], maxX-minX+3)
	sl.ResetSpans()
}

// ResetSpans implements the [Scanline] interface.
func (sl *ScanlinePacked) ResetSpans() {
	sl.lastX = lastXNone
	sl.covers = sl.covers[:0]
	sl.spans = sl.spans[:0]
}

// AddCell implements the [Scanline] interface.
func (sl *ScanlinePacked) AddCell(x int, alpha uint8) {
	sl.covers = append(sl.covers, alpha)
	if n := len(sl.spans); x == sl.lastX+1 && n > 0 && sl.spans[n-1].len > 0 {
		sl.spans[n-1].len++
	} else {
		sl.spans = append(sl.spans, spanRef{x: x, len: 1, off: len(sl.covers) - 1})
	}
	sl.lastX = x
}

// AddSpan implements the [Scanline] interface.
func (sl *ScanlinePacked) AddSpan(x, length int, alpha uint8) {
	n := len(sl.spans)
	if x == sl.lastX+1 && n > 0 && sl.spans[n-1].len < 0 && sl.covers[sl.spans[n-1].off] == alpha {
		sl.spans[n-1].len -= length
	} else {
		sl.covers = append(sl.covers, alpha)
		sl.spans = append(sl.spans, spanRef{x: x, len: -length, off: len(sl.covers) - 1})
	}
	sl.lastX = x + length - 1
}

// Finalize implements the [Scanline] interface.
func (sl *ScanlinePacked) Finalize(y int) { sl.y = y }

// NumSpans implements the [Scanline] interface.
func (sl *ScanlinePacked) NumSpans() int { return len(sl.spans) }

// Y implements the [Scanline] interface.
func (sl *ScanlinePacked) Y() int { return sl.y }

// Spans implements the [Scanline] interface.
func (sl *ScanlinePacked) Spans() iter.Seq[Span] {
	return func(yield func(Span) bool) {
		for _, s := range sl.spans {
			n := s.len
			if n < 0 {
				n = 1
			}
			if !yield(Span{X: s.x, Len: s.len, Covers: sl.covers[s.off : s.off+n]}) {
				return
			}
		}
	}
}

// scanlineHitTest records whether one given pixel is covered.
type scanlineHitTest struct {
	x   int
	hit bool
}

func (sl *scanlineHitTest) Reset(int, int) {}
func (sl *scanlineHitTest) ResetSpans()    {}
func (sl *scanlineHitTest) Finalize(int)   {}
func (sl *scanlineHitTest) Y() int         { return 0 }

// NumSpans always reports one span, so that a sweep stops after one row.
func (sl *scanlineHitTest) NumSpans() int { return 1 }

func (sl *scanlineHitTest) AddCell(x int, _ uint8) {
	if x == sl.x {
		sl.hit = true
	}
}

func (sl *scanlineHitTest) AddSpan(x, length int, _ uint8) {
	if sl.x >= x && sl.x < x+length {
		sl.hit = true
	}
}

func (sl *scanlineHitTest) Spans() iter.Seq[Span] {
	return func(func(Span) bool) {}
}
