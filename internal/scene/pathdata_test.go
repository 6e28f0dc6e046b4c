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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

type segment struct {
	Cmd path.Command
	Pts []vec.Vec2
}

func segments(p path.Path) []segment {
	var res []segment
	for cmd, pts := range p {
		res = append(res, segment{cmd, append([]vec.Vec2(nil), pts...)})
	}
	return res
}

func v(x, y float64) vec.Vec2 { return vec.Vec2{X: x, Y: y} }

func TestParsePath(t *testing.T) {
	cases := []struct {
		in   string
		want []segment
	}{
		{"M 10 10 L 54 10 L 32 54 Z", []segment{
			{path.CmdMoveTo, []vec.Vec2{v(10, 10)}},
			{path.CmdLineTo, []vec.Vec2{v(54, 10)}},
			{path.CmdLineTo, []vec.Vec2{v(32, 54)}},
			{path.CmdClose, nil},
		}},
		{"M1,2 3,4", []segment{
			{path.CmdMoveTo, []vec.Vec2{v(1, 2)}},
			{path.CmdLineTo, []vec.Vec2{v(3, 4)}},
		}},
		{"M0 0H5V-2.5h1v1", []segment{
			{path.CmdMoveTo, []vec.Vec2{v(0, 0)}},
			{path.CmdLineTo, []vec.Vec2{v(5, 0)}},
			{path.CmdLineTo, []vec.Vec2{v(5, -2.5)}},
			{path.CmdLineTo, []vec.Vec2{v(6, -2.5)}},
			{path.CmdLineTo, []vec.Vec2{v(6, -1.5)}},
		}},
		{"m 1 1 l 2 0 q 1 1 2 0 c 0 1 1 1 1 0 z", []segment{
			{path.CmdMoveTo, []vec.Vec2{v(1, 1)}},
			{path.CmdLineTo, []vec.Vec2{v(3, 1)}},
			{path.CmdQuadTo, []vec.Vec2{v(4, 2), v(5, 1)}},
			{path.CmdCubeTo, []vec.Vec2{v(5, 2), v(6, 2), v(6, 1)}},
			{path.CmdClose, nil},
		}},
		{"M-1-2L.5.5 1e1-1E+1", []segment{
			{path.CmdMoveTo, []vec.Vec2{v(-1, -2)}},
			{path.CmdLineTo, []vec.Vec2{v(0.5, 0.5)}},
			{path.CmdLineTo, []vec.Vec2{v(10, -10)}},
		}},
		{"M 0 0 L 1 0 Z M 5 5 L 6 5", []segment{
			{path.CmdMoveTo, []vec.Vec2{v(0, 0)}},
			{path.CmdLineTo, []vec.Vec2{v(1, 0)}},
			{path.CmdClose, nil},
			{path.CmdMoveTo, []vec.Vec2{v(5, 5)}},
			{path.CmdLineTo, []vec.Vec2{v(6, 5)}},
		}},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			p, err := ParsePath(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.want, segments(p.Iter()))
		})
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"L 1 2",
		"10 10",
		"M 1",
		"M 1 2 L 3",
		"M 1 2 X 3 4",
		"M 1 2 Z 3 4",
		"M 1e 2",
		"M 1 2 Q 3 4",
	} {
		_, err := ParsePath(in)
		assert.Error(t, err, "%q", in)
	}
}

func TestFormatPath(t *testing.T) {
	in := "M 10 10 L 54 10 Q 60 30 32 54 C 20 50 10 40 10.5 -0.25 Z"
	p, err := ParsePath(in)
	require.NoError(t, err)
	assert.Equal(t, in, FormatPath(p.Iter()))

	q, err := ParsePath(FormatPath(p.Iter()))
	require.NoError(t, err)
	assert.Equal(t, segments(p.Iter()), segments(q.Iter()))
}
