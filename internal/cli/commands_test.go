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

package cli

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/raster/internal/scene"
	"seehuhn.de/go/raster/testcases"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRender(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "out.png")
	out, err := execute(t, "render", "testdata/triangle.yaml", "-o", outFile)
	require.NoError(t, err)
	assert.Equal(t, "wrote "+outFile+" (8x8, 1 shapes)\n", out)

	f, err := os.Open(outFile)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())

	r, g, b, a := img.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0, 0xffff}, []uint32{r, g, b, a})
}

func TestRenderJSON(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "out.png")
	out, err := execute(t, "--format", "json", "render", "--packed", "testdata/triangle.yaml", "-o", outFile)
	require.NoError(t, err)

	var resp struct {
		Status string
		Data   renderResult
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, renderResult{Output: outFile, Width: 8, Height: 8, Shapes: 1}, resp.Data)
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "render", "testdata/missing.yaml", "-o", filepath.Join(dir, "a.png"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeScene)

	out, err = execute(t, "render", "testdata/broken.yaml", "-o", filepath.Join(dir, "b.png"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "shape 0")

	_, err = execute(t, "render", "testdata/triangle.yaml", "-o", filepath.Join(dir, "no", "such", "dir.png"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	_, err = execute(t, "render", "testdata/triangle.yaml")
	require.Error(t, err, "missing -o")
}

func TestSpansText(t *testing.T) {
	out, err := execute(t, "spans", "testdata/triangle.yaml")
	require.NoError(t, err)
	assert.Equal(t, `shape=0 y=0 x=0 len=4 covers=[255 255 255 128]
shape=0 y=1 x=0 len=3 covers=[255 255 128]
shape=0 y=2 x=0 len=2 covers=[255 128]
shape=0 y=3 x=0 len=1 covers=[128]
`, out)
}

func TestSpansJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "spans", "--packed", "testdata/triangle.yaml")
	require.NoError(t, err)

	var resp struct {
		Status string
		Data   []scene.SpanRecord
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.NotEmpty(t, resp.Data)
	assert.Equal(t, scene.SpanRecord{Y: 0, X: 0, Len: -3, Covers: []int{255}}, resp.Data[0])
}

func TestCases(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cases")
	out, err := execute(t, "cases", "-o", dir)
	require.NoError(t, err)

	total := 0
	for _, list := range testcases.All {
		total += len(list)
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, total)
	assert.Contains(t, out, "images to "+dir)

	_, err = os.Stat(filepath.Join(dir, "fill_triangle_nonzero.png"))
	assert.NoError(t, err)
}
