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
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"seehuhn.de/go/raster/internal/scene"
	"seehuhn.de/go/raster/testcases"
)

type casesOptions struct {
	output string
	packed bool
}

type casesResult struct {
	Dir    string `json:"dir"`
	Images int    `json:"images"`
}

func (r casesResult) String() string {
	return fmt.Sprintf("wrote %d images to %s", r.Images, r.Dir)
}

// NewCasesCommand creates the cases command.
func NewCasesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &casesOptions{}

	cmd := &cobra.Command{
		Use:   "cases",
		Short: "Render all built-in test cases",
		Long: `Render every built-in fill test case as an 8-bit gray image,
where the gray value of a pixel is its coverage.  The images are
written to <dir>/<category>_<name>.png.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCases(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory")
	_ = cmd.MarkFlagRequired("output")
	cmd.Flags().BoolVar(&opts.packed, "packed", false, "use the packed scanline container")

	return cmd
}

func runCases(rootOpts *RootOptions, opts *casesOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if err := os.MkdirAll(opts.output, 0755); err != nil {
		return formatter.Fail(ExitFailure, ErrCodeOutput, err)
	}

	n := 0
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			fname := filepath.Join(opts.output, name+".png")
			if err := writePNG(fname, scene.Coverage(tc, opts.packed)); err != nil {
				return formatter.Fail(ExitFailure, ErrCodeOutput, err)
			}
			formatter.VerboseLog("%s", fname)
			n++
		}
	}

	return formatter.Success(casesResult{Dir: opts.output, Images: n})
}
