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
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Renderer consumes the scanlines produced by a Rasterizer.
type Renderer interface {
	// Prepare is called once per drawing, before the first scanline.
	Prepare()

	// Render draws one scanline.  The spans of sl are only valid during
	// the call.
	Render(sl Scanline)
}

// RenderScanlines sweeps all scanlines of ras through sl and passes them
// to ren.
func RenderScanlines(ras *Rasterizer, sl Scanline, ren Renderer) {
	if !ras.RewindScanlines() {
		return
	}
	sl.Reset(ras.MinX(), ras.MaxX())
	ren.Prepare()
	for ras.SweepScanline(sl) {
		ren.Render(sl)
	}
}

// RenderAlpha accumulates the coverage of the drawing in ras into dst.
func RenderAlpha(ras *Rasterizer, dst *image.Alpha) {
	var sl ScanlineU8
	RenderScanlines(ras, &sl, &SolidRenderer{Dst: dst, Color: color.Opaque})
}

// spanMask presents the covers of one span as a mask image.
type spanMask struct {
	row  image.Alpha
	flat image.Uniform
}

// set returns a mask for the given span, with the span's first pixel at
// the origin of the mask, together with the span length.
func (m *spanMask) set(s Span) (image.Image, int) {
	if s.Len < 0 {
		m.flat.C = color.Alpha{A: s.Covers[0]}
		return &m.flat, -s.Len
	}
	m.row.Pix = s.Covers[:s.Len]
	m.row.Stride = s.Len
	m.row.Rect = image.Rect(0, 0, s.Len, 1)
	return &m.row, s.Len
}

// SolidRenderer fills the drawing with a single color.
type SolidRenderer struct {
	Dst   draw.Image
	Color color.Color

	src  *image.Uniform
	mask spanMask
}

// Prepare implements the Renderer interface.
func (r *SolidRenderer) Prepare() {
	r.src = image.NewUniform(r.Color)
}

// Render implements the Renderer interface.
func (r *SolidRenderer) Render(sl Scanline) {
	y := sl.Y()
	for span := range sl.Spans() {
		mask, n := r.mask.set(span)
		rect := image.Rect(span.X, y, span.X+n, y+1)
		draw.DrawMask(r.Dst, rect, r.src, rect.Min, mask, image.Point{}, draw.Over)
	}
}

// SpanGenerator computes the colors of a horizontal run of pixels.
type SpanGenerator interface {
	// Prepare is called once per drawing.
	Prepare()

	// Generate stores the colors of pixels (x, y), ..., (x+len(dst)-1, y)
	// in dst.
	Generate(dst []color.RGBA, x, y int)
}

// SpanRenderer fills the drawing with colors computed by a SpanGenerator.
type SpanRenderer struct {
	Dst draw.Image
	Gen SpanGenerator

	colors []color.RGBA
	row    image.RGBA
	mask   spanMask
}

// Prepare implements the Renderer interface.
func (r *SpanRenderer) Prepare() {
	r.Gen.Prepare()
}

// Render implements the Renderer interface.
func (r *SpanRenderer) Render(sl Scanline) {
	y := sl.Y()
	for span := range sl.Spans() {
		mask, n := r.mask.set(span)

		if cap(r.colors) < n {
			r.colors = make([]color.RGBA, n)
		}
		colors := r.colors[:n]
		r.Gen.Generate(colors, span.X, y)

		r.row.Pix = r.row.Pix[:0]
		for _, c := range colors {
			r.row.Pix = append(r.row.Pix, c.R, c.G, c.B, c.A)
		}
		r.row.Stride = 4 * n
		r.row.Rect = image.Rect(span.X, y, span.X+n, y+1)

		draw.DrawMask(r.Dst, r.row.Rect, &r.row, r.row.Rect.Min, mask, image.Point{}, draw.Over)
	}
}

// PatternSpan tiles the plane with copies of an image.
// The pixel Src.Bounds().Min is placed at Offset.
type PatternSpan struct {
	Src    image.Image
	Offset image.Point

	bounds image.Rectangle
}

// Prepare implements the SpanGenerator interface.
func (p *PatternSpan) Prepare() {
	p.bounds = p.Src.Bounds()
}

// Generate implements the SpanGenerator interface.
func (p *PatternSpan) Generate(dst []color.RGBA, x, y int) {
	w, h := p.bounds.Dx(), p.bounds.Dy()
	if w <= 0 || h <= 0 {
		clear(dst)
		return
	}
	sy := p.bounds.Min.Y + mod(y-p.Offset.Y, h)
	for i := range dst {
		sx := p.bounds.Min.X + mod(x+i-p.Offset.X, w)
		dst[i] = color.RGBAModel.Convert(p.Src.At(sx, sy)).(color.RGBA)
	}
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

// AliasedRenderer draws all pixels with coverage at least Threshold in
// the given color, and leaves all other pixels unchanged.
// A Threshold of zero is treated as 128.
type AliasedRenderer struct {
	Dst       draw.Image
	Color     color.Color
	Threshold uint8

	src *image.Uniform
}

// Prepare implements the Renderer interface.
func (r *AliasedRenderer) Prepare() {
	r.src = image.NewUniform(r.Color)
}

// Render implements the Renderer interface.
func (r *AliasedRenderer) Render(sl Scanline) {
	threshold := r.Threshold
	if threshold == 0 {
		threshold = aaScale / 2
	}

	y := sl.Y()
	for span := range sl.Spans() {
		if span.Len < 0 {
			if span.Covers[0] >= threshold {
				r.fill(span.X, span.X-span.Len, y)
			}
			continue
		}

		start := -1
		for i, c := range span.Covers[:span.Len] {
			switch {
			case c >= threshold && start < 0:
				start = i
			case c < threshold && start >= 0:
				r.fill(span.X+start, span.X+i, y)
				start = -1
			}
		}
		if start >= 0 {
			r.fill(span.X+start, span.X+span.Len, y)
		}
	}
}

func (r *AliasedRenderer) fill(x0, x1, y int) {
	rect := image.Rect(x0, y, x1, y+1)
	draw.Draw(r.Dst, rect, r.src, rect.Min, draw.Over)
}
