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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vertexRecord struct {
	Cmd  Command
	X, Y float64
}

func readPath(vs VertexSource, id int) []vertexRecord {
	var res []vertexRecord
	vs.Rewind(id)
	for {
		cmd, x, y := vs.Vertex()
		if cmd == CmdStop {
			return res
		}
		res = append(res, vertexRecord{cmd, x, y})
	}
}

func TestPathStorage(t *testing.T) {
	var ps PathStorage

	a := ps.StartNewPath()
	ps.MoveTo(0, 0)
	ps.LineTo(1, 0)
	ps.LineTo(0, 1)
	ps.ClosePolygon()

	b := ps.StartNewPath()
	ps.MoveTo(5, 5)
	ps.LineTo(6, 6)

	assert.Equal(t, 0, a)
	assert.Equal(t, 5, b, "second path starts after the stop separator")
	assert.Equal(t, 7, ps.Len())

	assert.Equal(t, []vertexRecord{
		{CmdMoveTo, 0, 0},
		{CmdLineTo, 1, 0},
		{CmdLineTo, 0, 1},
		{CmdClose, 0, 0},
	}, readPath(&ps, a))
	assert.Equal(t, []vertexRecord{
		{CmdMoveTo, 5, 5},
		{CmdLineTo, 6, 6},
	}, readPath(&ps, b))

	// reading past the end keeps returning CmdStop
	cmd, _, _ := ps.Vertex()
	assert.Equal(t, CmdStop, cmd)

	// starting a new path twice in a row does not add empty paths
	c := ps.StartNewPath()
	assert.Equal(t, c, ps.StartNewPath())

	ps.RemoveAll()
	assert.Equal(t, 0, ps.Len())
	assert.Empty(t, readPath(&ps, 0))
}

func TestPathStorageRewindNegative(t *testing.T) {
	var ps PathStorage
	ps.MoveTo(1, 2)
	require.Len(t, readPath(&ps, -3), 1)
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "stop", CmdStop.String())
	assert.Equal(t, "move_to", CmdMoveTo.String())
	assert.Equal(t, "line_to", CmdLineTo.String())
	assert.Equal(t, "close", CmdClose.String())
	assert.Equal(t, "Command(9)", Command(9).String())
}
