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

import "fmt"

// Command identifies the meaning of a vertex.
type Command uint8

// These are the commands produced by a VertexSource.
const (
	CmdStop Command = iota
	CmdMoveTo
	CmdLineTo
	CmdClose
)

func (c Command) String() string {
	switch c {
	case CmdStop:
		return "stop"
	case CmdMoveTo:
		return "move_to"
	case CmdLineTo:
		return "line_to"
	case CmdClose:
		return "close"
	default:
		return fmt.Sprintf("Command(%d)", uint8(c))
	}
}

// VertexSource is a restartable sequence of path vertices.
//
// Rewind selects the path with the given id and restarts it.  Vertex
// returns the next vertex; after the last vertex it returns CmdStop.
type VertexSource interface {
	Rewind(pathID int)
	Vertex() (cmd Command, x, y float64)
}

type vertex struct {
	cmd  Command
	x, y float64
}

// PathStorage keeps polygons in memory.  Several paths can be stored in
// the same PathStorage; each is identified by the value returned from
// StartNewPath.
//
// The zero value is an empty PathStorage, ready to use.
type PathStorage struct {
	vertices []vertex
	pos      int
}

// StartNewPath ends the current path and returns the id of the next one.
func (ps *PathStorage) StartNewPath() int {
	n := len(ps.vertices)
	if n > 0 && ps.vertices[n-1].cmd != CmdStop {
		ps.vertices = append(ps.vertices, vertex{cmd: CmdStop})
		n++
	}
	return n
}

// MoveTo starts a new subpath.
func (ps *PathStorage) MoveTo(x, y float64) {
	ps.vertices = append(ps.vertices, vertex{CmdMoveTo, x, y})
}

// LineTo adds a straight line to the current subpath.
func (ps *PathStorage) LineTo(x, y float64) {
	ps.vertices = append(ps.vertices, vertex{CmdLineTo, x, y})
}

// ClosePolygon closes the current subpath.
func (ps *PathStorage) ClosePolygon() {
	ps.vertices = append(ps.vertices, vertex{cmd: CmdClose})
}

// RemoveAll deletes all paths.
func (ps *PathStorage) RemoveAll() {
	ps.vertices = ps.vertices[:0]
	ps.pos = 0
}

// Len returns the number of stored vertices, including path separators.
func (ps *PathStorage) Len() int {
	return len(ps.vertices)
}

// Rewind implements the VertexSource interface.
func (ps *PathStorage) Rewind(pathID int) {
	ps.pos = max(pathID, 0)
}

// Vertex implements the VertexSource interface.
func (ps *PathStorage) Vertex() (Command, float64, float64) {
	if ps.pos >= len(ps.vertices) {
		return CmdStop, 0, 0
	}
	v := ps.vertices[ps.pos]
	if v.cmd == CmdStop {
		return CmdStop, 0, 0
	}
	ps.pos++
	return v.cmd, v.x, v.y
}
