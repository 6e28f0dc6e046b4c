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

// Package scene describes drawings as YAML documents and renders them
// with the raster package.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/raster"
)

// Scene is a canvas together with the shapes drawn on it.
type Scene struct {
	Width      int       `yaml:"width"`
	Height     int       `yaml:"height"`
	Background string    `yaml:"background,omitempty"`
	Clip       []float64 `yaml:"clip,omitempty,flow"`
	Gamma      *Gamma    `yaml:"gamma,omitempty"`
	Shapes     []Shape   `yaml:"shapes"`
}

// Gamma selects the coverage correction applied to all shapes.
//
// Kind is one of none, power, threshold, linear and multiply.  For linear,
// Value is the start and End the end of the ramp; all other kinds use
// Value only.
type Gamma struct {
	Kind  string  `yaml:"kind"`
	Value float64 `yaml:"value,omitempty"`
	End   float64 `yaml:"end,omitempty"`
}

// Shape is one filled path.
type Shape struct {
	Path      string    `yaml:"path"`
	Fill      string    `yaml:"fill,omitempty"`
	Rule      string    `yaml:"rule,omitempty"`
	Transform []float64 `yaml:"transform,omitempty,flow"`
}

// ErrInvalid is wrapped by all errors reporting a malformed scene.
var ErrInvalid = errors.New("invalid scene")

// Load reads a scene from a YAML file.
func Load(fname string) (*Scene, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	s, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return s, nil
}

// Decode reads a scene in YAML format and checks it for errors.
func Decode(r io.Reader) (*Scene, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	s := &Scene{}
	if err := dec.Decode(s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalid)
		}
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Encode writes the scene in YAML format.
func (s *Scene) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks that all fields of the scene can be interpreted.
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalid, s.Width, s.Height)
	}
	if _, err := ParseColor(s.Background); err != nil {
		return fmt.Errorf("%w: background: %w", ErrInvalid, err)
	}
	if _, err := s.clipRect(); err != nil {
		return err
	}
	if _, err := s.Gamma.function(); err != nil {
		return err
	}
	for i := range s.Shapes {
		if _, err := s.Shapes[i].compile(); err != nil {
			return fmt.Errorf("%w: shape %d: %w", ErrInvalid, i, err)
		}
	}
	return nil
}

func (s *Scene) clipRect() (*rect.Rect, error) {
	switch len(s.Clip) {
	case 0:
		return nil, nil
	case 4:
		return &rect.Rect{LLx: s.Clip[0], LLy: s.Clip[1], URx: s.Clip[2], URy: s.Clip[3]}, nil
	default:
		return nil, fmt.Errorf("%w: clip needs 4 values, got %d", ErrInvalid, len(s.Clip))
	}
}

func (g *Gamma) function() (raster.GammaFunction, error) {
	if g == nil {
		return nil, nil
	}
	switch g.Kind {
	case "", "none":
		return raster.GammaNone{}, nil
	case "power":
		if !(g.Value > 0) {
			return nil, fmt.Errorf("%w: gamma power %g", ErrInvalid, g.Value)
		}
		return raster.GammaPower(g.Value), nil
	case "threshold":
		return raster.GammaThreshold(g.Value), nil
	case "linear":
		if !(g.End > g.Value) {
			return nil, fmt.Errorf("%w: gamma linear needs value < end", ErrInvalid)
		}
		return raster.GammaLinear{Start: g.Value, End: g.End}, nil
	case "multiply":
		return raster.GammaMultiply(g.Value), nil
	default:
		return nil, fmt.Errorf("%w: unknown gamma kind %q", ErrInvalid, g.Kind)
	}
}

// compiledShape is a shape with all fields parsed.
type compiledShape struct {
	path *path.Data
	fill color.NRGBA
	rule raster.FillRule
	ctm  matrix.Matrix
}

func (sh *Shape) compile() (*compiledShape, error) {
	p, err := ParsePath(sh.Path)
	if err != nil {
		return nil, err
	}

	fill := sh.Fill
	if fill == "" {
		fill = "#000"
	}
	c, err := ParseColor(fill)
	if err != nil {
		return nil, fmt.Errorf("fill: %w", err)
	}

	rule, err := ParseFillRule(sh.Rule)
	if err != nil {
		return nil, err
	}

	ctm := matrix.Identity
	switch len(sh.Transform) {
	case 0:
	case 6:
		copy(ctm[:], sh.Transform)
	default:
		return nil, fmt.Errorf("transform needs 6 values, got %d", len(sh.Transform))
	}

	return &compiledShape{path: p, fill: c, rule: rule, ctm: ctm}, nil
}

// ParseFillRule converts the name of a fill rule.  The empty string
// selects the nonzero winding rule.
func ParseFillRule(s string) (raster.FillRule, error) {
	switch s {
	case "", "nonzero":
		return raster.NonZero, nil
	case "evenodd":
		return raster.EvenOdd, nil
	default:
		return 0, fmt.Errorf("unknown fill rule %q", s)
	}
}
