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

// Outcodes of a point relative to the clip box.
const (
	clipX2 = 1 << iota // x > x2
	clipY2             // y > y2
	clipX1             // x < x1
	clipY1             // y < y1

	clipX = clipX1 | clipX2
	clipY = clipY1 | clipY2
)

// clipper clips segments, given in subpixel coordinates, against a
// rectangle before they reach the cell store.
//
// Parts of a segment above or below the box are dropped.  Parts to the
// left or right of the box are replaced by vertical segments along the
// box boundary, so that the cover they contribute to the rows inside the
// box is kept.
type clipper struct {
	x1, y1, x2, y2 int32
	clipping       bool

	// current point and its outcode
	px, py int32
	f1     int
}

func (c *clipper) clipBox(x1, y1, x2, y2 int32) {
	c.x1, c.x2 = min(x1, x2), max(x1, x2)
	c.y1, c.y2 = min(y1, y2), max(y1, y2)
	c.clipping = true
}

func (c *clipper) resetClipping() {
	c.clipping = false
}

func (c *clipper) flags(x, y int32) int {
	return c.flagsX(x) | c.flagsY(y)
}

func (c *clipper) flagsX(x int32) int {
	f := 0
	if x > c.x2 {
		f |= clipX2
	}
	if x < c.x1 {
		f |= clipX1
	}
	return f
}

func (c *clipper) flagsY(y int32) int {
	f := 0
	if y > c.y2 {
		f |= clipY2
	}
	if y < c.y1 {
		f |= clipY1
	}
	return f
}

// mulDiv returns a*b/c, rounded to the nearest integer.
func mulDiv(a, b, c int32) int32 {
	return int32(math.Round(float64(a) * float64(b) / float64(c)))
}

func (c *clipper) moveTo(x, y int32) {
	c.px, c.py = x, y
	if c.clipping {
		c.f1 = c.flags(x, y)
	}
}

// lineTo clips the segment from the current point to (x2, y2) and sends
// the visible parts to s.
func (c *clipper) lineTo(s *cellStore, x2, y2 int32) {
	if !c.clipping {
		s.line(c.px, c.py, x2, y2)
		c.px, c.py = x2, y2
		return
	}

	f2 := c.flags(x2, y2)
	if c.f1&clipY == f2&clipY && c.f1&clipY != 0 {
		// entirely above or below the box
		c.px, c.py, c.f1 = x2, y2, f2
		return
	}

	x1, y1, f1 := c.px, c.py, c.f1
	switch (f1&clipX)<<1 | f2&clipX {
	case 0: // visible in x
		c.lineClipY(s, x1, y1, x2, y2, f1, f2)

	case 1: // x2 > right
		y3 := y1 + mulDiv(c.x2-x1, y2-y1, x2-x1)
		f3 := c.flagsY(y3)
		c.lineClipY(s, x1, y1, c.x2, y3, f1, f3)
		c.lineClipY(s, c.x2, y3, c.x2, y2, f3, f2)

	case 2: // x1 > right
		y3 := y1 + mulDiv(c.x2-x1, y2-y1, x2-x1)
		f3 := c.flagsY(y3)
		c.lineClipY(s, c.x2, y1, c.x2, y3, f1, f3)
		c.lineClipY(s, c.x2, y3, x2, y2, f3, f2)

	case 3: // both right
		c.lineClipY(s, c.x2, y1, c.x2, y2, f1, f2)

	case 4: // x2 < left
		y3 := y1 + mulDiv(c.x1-x1, y2-y1, x2-x1)
		f3 := c.flagsY(y3)
		c.lineClipY(s, x1, y1, c.x1, y3, f1, f3)
		c.lineClipY(s, c.x1, y3, c.x1, y2, f3, f2)

	case 6: // x1 > right, x2 < left
		y3 := y1 + mulDiv(c.x2-x1, y2-y1, x2-x1)
		y4 := y1 + mulDiv(c.x1-x1, y2-y1, x2-x1)
		f3 := c.flagsY(y3)
		f4 := c.flagsY(y4)
		c.lineClipY(s, c.x2, y1, c.x2, y3, f1, f3)
		c.lineClipY(s, c.x2, y3, c.x1, y4, f3, f4)
		c.lineClipY(s, c.x1, y4, c.x1, y2, f4, f2)

	case 8: // x1 < left
		y3 := y1 + mulDiv(c.x1-x1, y2-y1, x2-x1)
		f3 := c.flagsY(y3)
		c.lineClipY(s, c.x1, y1, c.x1, y3, f1, f3)
		c.lineClipY(s, c.x1, y3, x2, y2, f3, f2)

	case 9: // x1 < left, x2 > right
		y3 := y1 + mulDiv(c.x1-x1, y2-y1, x2-x1)
		y4 := y1 + mulDiv(c.x2-x1, y2-y1, x2-x1)
		f3 := c.flagsY(y3)
		f4 := c.flagsY(y4)
		c.lineClipY(s, c.x1, y1, c.x1, y3, f1, f3)
		c.lineClipY(s, c.x1, y3, c.x2, y4, f3, f4)
		c.lineClipY(s, c.x2, y4, c.x2, y2, f4, f2)

	case 12: // both left
		c.lineClipY(s, c.x1, y1, c.x1, y2, f1, f2)
	}

	c.px, c.py, c.f1 = x2, y2, f2
}

// lineClipY clips a segment, which is known to be inside the box in x,
// against the top and bottom of the box.
func (c *clipper) lineClipY(s *cellStore, x1, y1, x2, y2 int32, f1, f2 int) {
	f1 &= clipY
	f2 &= clipY
	if f1|f2 == 0 {
		s.line(x1, y1, x2, y2)
		return
	}
	if f1 == f2 {
		return
	}

	tx1, ty1 := x1, y1
	tx2, ty2 := x2, y2
	if f1&clipY1 != 0 {
		tx1 = x1 + mulDiv(c.y1-y1, x2-x1, y2-y1)
		ty1 = c.y1
	}
	if f1&clipY2 != 0 {
		tx1 = x1 + mulDiv(c.y2-y1, x2-x1, y2-y1)
		ty1 = c.y2
	}
	if f2&clipY1 != 0 {
		tx2 = x1 + mulDiv(c.y1-y1, x2-x1, y2-y1)
		ty2 = c.y1
	}
	if f2&clipY2 != 0 {
		tx2 = x1 + mulDiv(c.y2-y1, x2-x1, y2-y1)
		ty2 = c.y2
	}
	s.line(tx1, ty1, tx2, ty2)
}
