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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// ParsePath parses SVG style path data.  The commands M, L, H, V, Q, C
// and Z are supported, together with their relative lower case forms.
// Coordinates after the first pair of a move are treated as line
// segments.
func ParsePath(s string) (*path.Data, error) {
	p := &pathParser{buf: s}
	res := &path.Data{}

	var current, start vec.Vec2
	var cmd byte
	hasCurrent := false
	for {
		p.skipSpace()
		if p.pos >= len(p.buf) {
			break
		}

		c := p.buf[p.pos]
		if isCommand(c) {
			cmd = c
			p.pos++
		} else if cmd == 0 {
			return nil, p.errorf("expected command, found %q", c)
		}

		rel := cmd >= 'a'
		offset := func(v vec.Vec2) vec.Vec2 {
			if rel {
				return v.Add(current)
			}
			return v
		}
		if !hasCurrent && cmd != 'M' && cmd != 'm' {
			return nil, p.errorf("path must start with a move")
		}

		switch cmd {
		case 'M', 'm':
			pt, err := p.point()
			if err != nil {
				return nil, err
			}
			if !hasCurrent {
				rel = false
			}
			current = offset(pt)
			start = current
			hasCurrent = true
			res = res.MoveTo(current)
			// further coordinate pairs are implicit line segments
			if cmd == 'M' {
				cmd = 'L'
			} else {
				cmd = 'l'
			}
		case 'L', 'l':
			pt, err := p.point()
			if err != nil {
				return nil, err
			}
			current = offset(pt)
			res = res.LineTo(current)
		case 'H', 'h':
			x, err := p.number()
			if err != nil {
				return nil, err
			}
			if rel {
				x += current.X
			}
			current.X = x
			res = res.LineTo(current)
		case 'V', 'v':
			y, err := p.number()
			if err != nil {
				return nil, err
			}
			if rel {
				y += current.Y
			}
			current.Y = y
			res = res.LineTo(current)
		case 'Q', 'q':
			pts, err := p.points(2)
			if err != nil {
				return nil, err
			}
			c1, end := offset(pts[0]), offset(pts[1])
			res = res.QuadTo(c1, end)
			current = end
		case 'C', 'c':
			pts, err := p.points(3)
			if err != nil {
				return nil, err
			}
			c1, c2, end := offset(pts[0]), offset(pts[1]), offset(pts[2])
			res = res.CubeTo(c1, c2, end)
			current = end
		case 'Z', 'z':
			res = res.Close()
			current = start
			cmd = 0
		}
	}

	if !hasCurrent {
		return nil, errEmptyPath
	}
	return res, nil
}

var errEmptyPath = errors.New("empty path data")

func isCommand(c byte) bool {
	return strings.IndexByte("MmLlHhVvQqCcZz", c) >= 0
}

type pathParser struct {
	buf string
	pos int
}

func (p *pathParser) errorf(format string, args ...any) error {
	return fmt.Errorf("path data offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *pathParser) skipSpace() {
	for p.pos < len(p.buf) {
		switch p.buf[p.pos] {
		case ' ', '\t', '\n', '\r', ',':
			p.pos++
		default:
			return
		}
	}
}

// number reads one floating point number.  Numbers need not be separated
// when the second one starts with a sign or a second decimal point, as in
// "1-2" or ".5.5".
func (p *pathParser) number() (float64, error) {
	p.skipSpace()
	start := p.pos
	i := p.pos
	if i < len(p.buf) && (p.buf[i] == '+' || p.buf[i] == '-') {
		i++
	}
	digits := 0
	for i < len(p.buf) && isDigit(p.buf[i]) {
		i++
		digits++
	}
	if i < len(p.buf) && p.buf[i] == '.' {
		i++
		for i < len(p.buf) && isDigit(p.buf[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		if i < len(p.buf) {
			return 0, p.errorf("expected number, found %q", p.buf[i])
		}
		return 0, p.errorf("expected number, found end of data")
	}
	if i < len(p.buf) && (p.buf[i] == 'e' || p.buf[i] == 'E') {
		j := i + 1
		if j < len(p.buf) && (p.buf[j] == '+' || p.buf[j] == '-') {
			j++
		}
		if j < len(p.buf) && isDigit(p.buf[j]) {
			for j < len(p.buf) && isDigit(p.buf[j]) {
				j++
			}
			i = j
		}
	}

	x, err := strconv.ParseFloat(p.buf[start:i], 64)
	if err != nil {
		return 0, p.errorf("%v", err)
	}
	p.pos = i
	return x, nil
}

func (p *pathParser) point() (vec.Vec2, error) {
	x, err := p.number()
	if err != nil {
		return vec.Vec2{}, err
	}
	y, err := p.number()
	if err != nil {
		return vec.Vec2{}, err
	}
	return vec.Vec2{X: x, Y: y}, nil
}

func (p *pathParser) points(n int) ([]vec.Vec2, error) {
	res := make([]vec.Vec2, n)
	for i := range res {
		pt, err := p.point()
		if err != nil {
			return nil, err
		}
		res[i] = pt
	}
	return res, nil
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// FormatPath writes p as SVG style path data, using absolute commands.
func FormatPath(p path.Path) string {
	var b strings.Builder
	for cmd, pts := range p {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		switch cmd {
		case path.CmdMoveTo:
			b.WriteByte('M')
		case path.CmdLineTo:
			b.WriteByte('L')
		case path.CmdQuadTo:
			b.WriteByte('Q')
		case path.CmdCubeTo:
			b.WriteByte('C')
		case path.CmdClose:
			b.WriteByte('Z')
		}
		for _, pt := range pts {
			b.WriteByte(' ')
			b.WriteString(formatFloat(pt.X))
			b.WriteByte(' ')
			b.WriteString(formatFloat(pt.Y))
		}
	}
	return b.String()
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
