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

// Command export writes every test case as a scene file, for use with
// the rasterize command.  Run from the module root directory.
package main

import (
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/raster/internal/scene"
	"seehuhn.de/go/raster/testcases"
)

const outDir = "testdata/scenes"

func main() {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			fname := filepath.Join(outDir, category+"_"+tc.Name+".yaml")
			if err := writeScene(fname, scene.FromTestCase(tc)); err != nil {
				panic(err)
			}
		}
	}
}

func writeScene(fname string, s *scene.Scene) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := s.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
