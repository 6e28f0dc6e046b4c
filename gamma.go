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

// A GammaFunction maps linear coverage in [0, 1] to adjusted coverage in
// [0, 1].  The rasterizer samples it at 256 points to build its lookup
// table.
type GammaFunction interface {
	Gamma(x float64) float64
}

// GammaFunc adapts an ordinary function to the GammaFunction interface.
type GammaFunc func(x float64) float64

// Gamma implements the [GammaFunction] interface.
func (f GammaFunc) Gamma(x float64) float64 { return f(x) }

// GammaNone is the identity.
type GammaNone struct{}

// Gamma implements the [GammaFunction] interface.
func (GammaNone) Gamma(x float64) float64 { return x }

// GammaPower raises the coverage to the given power.
type GammaPower float64

// Gamma implements the [GammaFunction] interface.
func (g GammaPower) Gamma(x float64) float64 {
	return math.Pow(x, float64(g))
}

// GammaThreshold maps coverage below the threshold to 0 and all other
// coverage to 1.  This turns off anti-aliasing.
type GammaThreshold float64

// Gamma implements the [GammaFunction] interface.
func (g GammaThreshold) Gamma(x float64) float64 {
	if x < float64(g) {
		return 0
	}
	return 1
}

// GammaLinear maps [Start, End] linearly onto [0, 1].  Coverage below Start
// becomes 0, coverage above End becomes 1.
type GammaLinear struct {
	Start, End float64
}

// Gamma implements the [GammaFunction] interface.
func (g GammaLinear) Gamma(x float64) float64 {
	switch {
	case x < g.Start:
		return 0
	case x > g.End:
		return 1
	}
	return (x - g.Start) / (g.End - g.Start)
}

// GammaMultiply scales the coverage by a constant factor, saturating at 1.
type GammaMultiply float64

// Gamma implements the [GammaFunction] interface.
func (g GammaMultiply) Gamma(x float64) float64 {
	return min(x*float64(g), 1)
}

// gammaTable is a lookup table from coverage (0..aaMask) to alpha.
type gammaTable [aaScale]uint8

func identityGamma() gammaTable {
	var t gammaTable
	for i := range t {
		t[i] = uint8(i)
	}
	return t
}

func newGammaTable(g GammaFunction) gammaTable {
	var t gammaTable
	for i := range t {
		v := g.Gamma(float64(i)/aaMask)*aaMask + 0.5
		if math.IsNaN(v) || v < 0 {
			v = 0
		}
		t[i] = uint8(min(v, aaMask))
	}
	return t
}
