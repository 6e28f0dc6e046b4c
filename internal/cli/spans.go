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
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"seehuhn.de/go/raster/internal/scene"
)

type spansOptions struct {
	packed   bool
	flatness float64
}

// spanList prints one span per line in text mode.
type spanList []scene.SpanRecord

func (l spanList) String() string {
	var b strings.Builder
	for i, s := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "shape=%d y=%d x=%d len=%d covers=%v", s.Shape, s.Y, s.X, s.Len, s.Covers)
	}
	return b.String()
}

// NewSpansCommand creates the spans command.
func NewSpansCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &spansOptions{}

	cmd := &cobra.Command{
		Use:   "spans <scene.yaml>",
		Short: "Print the scanline spans of a scene",
		Long: `Rasterize every shape of a scene and print the resulting spans,
one line per span, in drawing order.  Negative lengths denote solid runs
in the packed container.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpans(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.packed, "packed", false, "use the packed scanline container")
	cmd.Flags().Float64Var(&opts.flatness, "flatness", 0, "curve flattening tolerance in pixels")

	return cmd
}

func runSpans(rootOpts *RootOptions, opts *spansOptions, fname string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	s, err := scene.Load(fname)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeScene, err)
	}

	spans, err := s.Spans(sceneOptions(opts.packed, 0, opts.flatness))
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeScene, err)
	}
	formatter.VerboseLog("%d spans", len(spans))

	if rootOpts.Format == "json" {
		if spans == nil {
			spans = []scene.SpanRecord{}
		}
		return formatter.Success(spans)
	}
	return formatter.Success(spanList(spans))
}
