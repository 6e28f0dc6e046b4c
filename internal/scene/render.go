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
	"log/slog"

	"golang.org/x/image/draw"

	"seehuhn.de/go/raster"
)

// Options control how a scene is rasterized.
type Options struct {
	// Packed selects raster.ScanlinePacked instead of raster.ScanlineU8.
	Packed bool

	// Gamma, if non-nil, replaces the gamma setting of the scene.
	Gamma raster.GammaFunction

	// Flatness is the curve flattening tolerance in pixels.  Zero selects
	// raster.DefaultFlatness.
	Flatness float64
}

// Render draws the scene onto a new canvas.
func (s *Scene) Render(opts *Options) (*image.RGBA, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &Options{}
	}

	dst := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	bg, _ := ParseColor(s.Background)
	if bg.A != 0 {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}

	var sl raster.Scanline = &raster.ScanlineU8{}
	if opts.Packed {
		sl = &raster.ScanlinePacked{}
	}
	ren := &raster.SolidRenderer{Dst: dst}
	err := s.sweep(opts, func(i int, sh *compiledShape, ras *raster.Rasterizer) {
		ren.Color = sh.fill
		raster.RenderScanlines(ras, sl, ren)
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// SpanRecord is one span of the scanline output of a shape.
type SpanRecord struct {
	Shape  int   `json:"shape"`
	Y      int   `json:"y"`
	X      int   `json:"x"`
	Len    int   `json:"len"`
	Covers []int `json:"covers"`
}

// Spans returns the scanline output for all shapes of the scene, in
// drawing order.
func (s *Scene) Spans(opts *Options) ([]SpanRecord, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &Options{}
	}

	var sl raster.Scanline = &raster.ScanlineU8{}
	if opts.Packed {
		sl = &raster.ScanlinePacked{}
	}

	var res []SpanRecord
	err := s.sweep(opts, func(i int, _ *compiledShape, ras *raster.Rasterizer) {
		if !ras.RewindScanlines() {
			return
		}
		sl.Reset(ras.MinX(), ras.MaxX())
		for ras.SweepScanline(sl) {
			for span := range sl.Spans() {
				rec := SpanRecord{Shape: i, Y: sl.Y(), X: span.X, Len: span.Len}
				for _, c := range span.Covers {
					rec.Covers = append(rec.Covers, int(c))
				}
				res = append(res, rec)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// sweep adds every shape of the scene to a rasterizer, in turn, and calls
// yield after each shape.
func (s *Scene) sweep(opts *Options, yield func(int, *compiledShape, *raster.Rasterizer)) error {
	ras := raster.NewRasterizer()

	clip, err := s.clipRect()
	if err != nil {
		return err
	}
	if clip != nil {
		ras.ClipBox(clip.LLx, clip.LLy, clip.URx, clip.URy)
	} else {
		ras.ClipBox(0, 0, float64(s.Width), float64(s.Height))
	}

	gamma := opts.Gamma
	if gamma == nil {
		gamma, err = s.Gamma.function()
		if err != nil {
			return err
		}
	}
	ras.SetGamma(gamma)

	var ps raster.PathStorage
	for i := range s.Shapes {
		sh, err := s.Shapes[i].compile()
		if err != nil {
			return err
		}

		ras.Reset()
		ras.FillRule = sh.rule
		ps.RemoveAll()
		id := ps.AppendPath(sh.path.Iter(), sh.ctm, opts.Flatness)
		ras.AddPath(&ps, id)

		yield(i, sh, ras)
		slog.Debug("shape rasterized",
			"shape", i, "rule", sh.rule, "cells", ras.TotalCells())
	}
	return nil
}
