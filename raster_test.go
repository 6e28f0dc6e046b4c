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
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/raster/testcases"
)

// TestAgainstReference compares every test case with a reference image.
// Reference images are generated by testcases/genpdf.  Where no image has
// been generated, nonzero cases are compared with the output of
// golang.org/x/image/vector and even-odd cases with renderEvenOdd.
func TestAgainstReference(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			t.Run(name, func(t *testing.T) {
				w, h := tc.Width, tc.Height

				refPath := filepath.Join("testdata", "reference", name+".png")
				ref, err := loadGray(refPath)
				if errors.Is(err, fs.ErrNotExist) {
					if tc.Rule == testcases.EvenOdd {
						ref = renderEvenOdd(tc)
					} else {
						ref = renderVector(tc)
					}
				} else if err != nil {
					t.Fatalf("loading reference: %v", err)
				}

				for _, packed := range []bool{false, true} {
					actual := renderExample(tc, packed)
					if err := compareImages(name, ref, actual.Pix, w, h); err != nil {
						t.Errorf("packed=%t: %v", packed, err)
					}
				}
			})
		}
	}
}

// renderExample renders a test case into a coverage mask, using the
// given scanline type.
func renderExample(tc testcases.TestCase, packed bool) *image.Alpha {
	ras := NewRasterizer()
	ras.ClipBox(0, 0, float64(tc.Width), float64(tc.Height))
	if tc.Rule == testcases.EvenOdd {
		ras.FillRule = EvenOdd
	}

	var ps PathStorage
	id := ps.AppendPath(tc.Commands(), tc.Matrix(), 0.05)
	ras.AddPath(&ps, id)

	dst := image.NewAlpha(image.Rect(0, 0, tc.Width, tc.Height))
	var sl Scanline = &ScanlineU8{}
	if packed {
		sl = &ScanlinePacked{}
	}
	RenderScanlines(ras, sl, &SolidRenderer{Dst: dst, Color: color.Opaque})
	return dst
}

// renderVector renders a nonzero test case using golang.org/x/image/vector.
func renderVector(tc testcases.TestCase) []byte {
	m := tc.Matrix()
	tr := func(p vec.Vec2) (float32, float32) {
		return float32(m[0]*p.X + m[2]*p.Y + m[4]), float32(m[1]*p.X + m[3]*p.Y + m[5])
	}

	r := vector.NewRasterizer(tc.Width, tc.Height)
	open := false
	for cmd, pts := range tc.Commands() {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				r.ClosePath()
			}
			r.MoveTo(tr(pts[0]))
			open = true
		case path.CmdLineTo:
			r.LineTo(tr(pts[0]))
		case path.CmdQuadTo:
			bx, by := tr(pts[0])
			cx, cy := tr(pts[1])
			r.QuadTo(bx, by, cx, cy)
		case path.CmdCubeTo:
			bx, by := tr(pts[0])
			cx, cy := tr(pts[1])
			dx, dy := tr(pts[2])
			r.CubeTo(bx, by, cx, cy, dx, dy)
		case path.CmdClose:
			r.ClosePath()
			open = false
		}
	}
	if open {
		r.ClosePath()
	}

	dst := image.NewAlpha(image.Rect(0, 0, tc.Width, tc.Height))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst.Pix
}

// renderEvenOdd renders a test case with the even-odd rule, without using
// the rasterizer.  Curves are replaced by 64 line segments each.  Every
// pixel row is sampled at 16 heights; along each sample line the covered
// intervals are found from the sorted edge crossings and their exact
// horizontal extent is accumulated.
func renderEvenOdd(tc testcases.TestCase) []byte {
	type edge struct{ a, b vec.Vec2 }

	m := tc.Matrix()
	tr := func(p vec.Vec2) vec.Vec2 {
		return vec.Vec2{X: m[0]*p.X + m[2]*p.Y + m[4], Y: m[1]*p.X + m[3]*p.Y + m[5]}
	}

	var edges []edge
	var start, cur vec.Vec2
	open := false
	lineTo := func(p vec.Vec2) {
		edges = append(edges, edge{cur, p})
		cur = p
		open = true
	}
	closePath := func() {
		if open && cur != start {
			edges = append(edges, edge{cur, start})
		}
		cur = start
		open = false
	}

	const steps = 64
	for cmd, pts := range tc.Commands() {
		switch cmd {
		case path.CmdMoveTo:
			closePath()
			start = tr(pts[0])
			cur = start
		case path.CmdLineTo:
			lineTo(tr(pts[0]))
		case path.CmdQuadTo:
			p0, p1, p2 := cur, tr(pts[0]), tr(pts[1])
			for i := 1; i <= steps; i++ {
				t := float64(i) / steps
				s := 1 - t
				lineTo(vec.Vec2{
					X: s*s*p0.X + 2*s*t*p1.X + t*t*p2.X,
					Y: s*s*p0.Y + 2*s*t*p1.Y + t*t*p2.Y,
				})
			}
		case path.CmdCubeTo:
			p0, p1, p2, p3 := cur, tr(pts[0]), tr(pts[1]), tr(pts[2])
			for i := 1; i <= steps; i++ {
				t := float64(i) / steps
				s := 1 - t
				lineTo(vec.Vec2{
					X: s*s*s*p0.X + 3*s*s*t*p1.X + 3*s*t*t*p2.X + t*t*t*p3.X,
					Y: s*s*s*p0.Y + 3*s*s*t*p1.Y + 3*s*t*t*p2.Y + t*t*t*p3.Y,
				})
			}
		case path.CmdClose:
			closePath()
		}
	}
	closePath()

	const sub = 16
	w, h := tc.Width, tc.Height
	fw := float64(w)
	part := make([]float64, w)
	diff := make([]float64, w+1)
	addSpan := func(a, b float64) {
		a = min(max(a, 0), fw)
		b = min(max(b, 0), fw)
		if b <= a {
			return
		}
		ia, ib := int(a), int(b)
		if ia == ib {
			part[ia] += (b - a) / sub
			return
		}
		part[ia] += (float64(ia+1) - a) / sub
		diff[ia+1] += 1.0 / sub
		diff[ib] -= 1.0 / sub
		if ib < w {
			part[ib] += (b - float64(ib)) / sub
		}
	}

	pix := make([]byte, w*h)
	var xs []float64
	for y := range h {
		clear(part)
		clear(diff)
		for k := range sub {
			ys := float64(y) + (float64(k)+0.5)/sub
			xs = xs[:0]
			for _, e := range edges {
				if (e.a.Y <= ys) != (e.b.Y <= ys) {
					xs = append(xs, e.a.X+(ys-e.a.Y)*(e.b.X-e.a.X)/(e.b.Y-e.a.Y))
				}
			}
			slices.Sort(xs)
			for i := 0; i+1 < len(xs); i += 2 {
				addSpan(xs[i], xs[i+1])
			}
		}

		var full float64
		for x := range w {
			full += diff[x]
			cov := min(max(part[x]+full, 0), 1)
			pix[y*w+x] = uint8(math.Round(cov * 255))
		}
	}
	return pix
}

// TestEvenOddOracle checks renderEvenOdd against golang.org/x/image/vector
// on shapes where every point has winding number 0 or 1, so that both
// fill rules agree.
func TestEvenOddOracle(t *testing.T) {
	simple := map[string]bool{
		"fill_triangle_nonzero":        true,
		"curve_circle":                 true,
		"curve_ellipse":                true,
		"precision_subpixel_offset_25": true,
		"ctm_flip_y":                   true,
		"large_dense_grid":             true,
	}
	seen := 0
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			if !simple[name] {
				continue
			}
			seen++
			ref := renderVector(tc)
			got := renderEvenOdd(tc)
			if err := compareImages(name, ref, got, tc.Width, tc.Height); err != nil {
				t.Errorf("%s: %v", name, err)
			}
		}
	}
	if seen != len(simple) {
		t.Errorf("found %d of %d test cases", seen, len(simple))
	}
}

// TestLargeCaseCells checks that the large test cases exercise the block
// storage of the cell store as described in testcases/large.go.
func TestLargeCaseCells(t *testing.T) {
	minBlocks := map[string]int{
		"large_grid":       2,
		"large_dense_grid": 5,
		"large_starburst":  5,
	}
	for _, tc := range testcases.All["large"] {
		ras := NewRasterizer()
		ras.ClipBox(0, 0, float64(tc.Width), float64(tc.Height))
		var ps PathStorage
		id := ps.AppendPath(tc.Commands(), tc.Matrix(), 0.05)
		ras.AddPath(&ps, id)
		if !ras.RewindScanlines() {
			t.Errorf("%s: nothing to draw", tc.Name)
			continue
		}

		blocks := (ras.TotalCells() + cellBlockSize - 1) / cellBlockSize
		want, many := minBlocks[tc.Name]
		switch {
		case many && blocks < want:
			t.Errorf("%s: %d cells fill %d blocks, want at least %d",
				tc.Name, ras.TotalCells(), blocks, want)
		case !many && blocks != 1:
			t.Errorf("%s: %d cells fill %d blocks, want 1",
				tc.Name, ras.TotalCells(), blocks)
		}
	}
}

func loadGray(path string) (gray []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	gray = make([]byte, w*h)

	for y := range h {
		for x := range w {
			c := color.GrayModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.Gray)
			gray[y*w+x] = c.Y
		}
	}
	return gray, nil
}

func compareImages(name string, expected, actual []byte, w, h int) error {
	total := w * h

	// Collect all absolute differences
	diffs := make([]int, total)
	for i := range total {
		diff := int(expected[i]) - int(actual[i])
		if diff < 0 {
			diff = -diff
		}
		diffs[i] = diff
	}

	// Sort differences to compute percentiles
	sort.Ints(diffs)

	p80 := diffs[int(math.Round(0.80*float64(total-1)))]
	p95 := diffs[int(math.Round(0.95*float64(total-1)))]
	p99 := diffs[int(math.Round(0.99*float64(total-1)))]

	// Check criteria:
	// - at least 80% of pixels agree up to rounding (p80 <= 1)
	// - at least 95% of differences are < 64 (p95 < 64)
	// - at least 99% of differences are < 128 (p99 < 128)
	var failures []string
	if p80 > 1 {
		failures = append(failures, fmt.Sprintf("80th percentile diff is %d (want <=1)", p80))
	}
	if p95 >= 64 {
		failures = append(failures, fmt.Sprintf("95th percentile diff is %d (want <64)", p95))
	}
	if p99 >= 128 {
		failures = append(failures, fmt.Sprintf("99th percentile diff is %d (want <128)", p99))
	}

	if len(failures) > 0 {
		_ = writeDiffImage(name, expected, actual, w, h)
		return fmt.Errorf("%s", strings.Join(failures, "; "))
	}
	return nil
}

func writeDiffImage(name string, expected, actual []byte, w, h int) (err error) {
	if err := os.MkdirAll("debug", 0755); err != nil {
		return err
	}

	// Create 3-panel image: actual (left), diff (middle), reference (right)
	img := image.NewRGBA(image.Rect(0, 0, w*3, h))
	for y := range h {
		for x := range w {
			i := y*w + x

			a := actual[i]
			img.Set(x, y, color.RGBA{R: a, G: a, B: a, A: 255})

			// green=under, red=over, black=match
			diff := int(expected[i]) - int(actual[i])
			diffColor := color.RGBA{A: 255}
			if diff > 0 {
				diffColor.G = uint8(diff)
			} else if diff < 0 {
				diffColor.R = uint8(-diff)
			}
			img.Set(x+w, y, diffColor)

			e := expected[i]
			img.Set(x+w*2, y, color.RGBA{R: e, G: e, B: e, A: 255})
		}
	}

	f, err := os.Create(filepath.Join("debug", name+".png"))
	if err != nil {
		return err
	}
	err = png.Encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// TestTriangleCoverage verifies exact coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10.
// Pixel X has coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	trianglePath := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	var ps PathStorage
	id := ps.AppendPath(trianglePath.Iter(), matrix.Identity, 0)

	ras := NewRasterizer()
	ras.AddPath(&ps, id)
	dst := image.NewAlpha(image.Rect(0, 0, 10, 1))
	RenderAlpha(ras, dst)

	// 24.8 fixed point and 8 bit alpha allow an error of about 1/256
	for x := range 10 {
		expected := float64(2*x+1) / 20 * 256
		actual := float64(dst.Pix[x])
		if math.Abs(actual-expected) > 1.5 {
			t.Errorf("pixel %d: expected alpha %.1f, got %.0f", x, expected, actual)
		}
	}
}

// BenchmarkRasterizeAll measures steady-state performance by reusing a
// single Rasterizer across all test cases.
func BenchmarkRasterizeAll(b *testing.B) {
	type prepared struct {
		ps   PathStorage
		id   int
		rule FillRule
		w, h int
	}
	var cases []*prepared
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			p := &prepared{w: tc.Width, h: tc.Height}
			p.id = p.ps.AppendPath(tc.Commands(), tc.Matrix(), 0)
			if tc.Rule == testcases.EvenOdd {
				p.rule = EvenOdd
			}
			cases = append(cases, p)
		}
	}

	ras := NewRasterizer()
	var sl ScanlinePacked

	b.ResetTimer()
	for b.Loop() {
		for _, p := range cases {
			ras.ClipBox(0, 0, float64(p.w), float64(p.h))
			ras.FillRule = p.rule
			ras.AddPath(&p.ps, p.id)
			if ras.RewindScanlines() {
				sl.Reset(ras.MinX(), ras.MaxX())
				for ras.SweepScanline(&sl) {
				}
			}
		}
	}
}
