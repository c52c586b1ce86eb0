/*
Copyright © 2025 Liys <liys87x@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

// Package cmd contains the command line interface for the lifesearch application.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/telepair/lifesearch/engine/lifesearch"
	"github.com/telepair/lifesearch/engine/rulestring"
	"github.com/telepair/lifesearch/pkg/ui"
)

// Exit codes of the search command.
const (
	ExitFound     = 0
	ExitExhausted = 1
	ExitBadInput  = 2
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search RULE WIDTH HEIGHT",
	Short: "Search for a periodic pattern in a life-like cellular automaton",
	Long: `Search for a pattern that repeats with the given period inside a
WIDTH x HEIGHT bounding box, optionally translating by (dx, dy) every period
and honoring a symmetry group.

RULE accepts totalistic rule strings such as B3/S23 or 23/3, and isotropic
non-totalistic (Hensel) notation such as B3-q/S2-c3.

Symmetry groups: C1, C2, C4, D2|, D2-, D2\, D2/, D4+, D4X, D8.

Exit codes: 0 when a pattern is found, 1 when the search space is exhausted,
2 when the rule or the geometry cannot be parsed.`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		// Initialize logging and profiling
		InitLog()

		ctx := context.Background()
		InitProfile(ctx)

		// Get flags
		period, _ := cmd.Flags().GetInt("period")
		dx, _ := cmd.Flags().GetInt("dx")
		dy, _ := cmd.Flags().GetInt("dy")
		symmetry, _ := cmd.Flags().GetString("symmetry")
		timed, _ := cmd.Flags().GetBool("time")
		all, _ := cmd.Flags().GetBool("all")
		view, _ := cmd.Flags().GetBool("view")

		var columnFirst *bool
		if cmd.Flags().Changed("column-first") {
			cf, _ := cmd.Flags().GetBool("column-first")
			columnFirst = &cf
		}

		os.Exit(runSearch(args[0], args[1], args[2], searchOptions{
			period:      period,
			dx:          dx,
			dy:          dy,
			symmetry:    symmetry,
			columnFirst: columnFirst,
			timed:       timed,
			all:         all,
			view:        view,
		}))
	},
}

// searchOptions collects the non-positional knobs of the search command.
type searchOptions struct {
	period      int
	dx, dy      int
	symmetry    string
	columnFirst *bool
	timed       bool
	all         bool
	view        bool
}

// runSearch parses the inputs, runs the search and reports the result.
// It returns the process exit code.
func runSearch(ruleArg, widthArg, heightArg string, opts searchOptions) int {
	birth, survival, err := rulestring.Parse(ruleArg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return ExitBadInput
	}

	width, err := strconv.Atoi(widthArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid width %q\n", widthArg)
		return ExitBadInput
	}
	height, err := strconv.Atoi(heightArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid height %q\n", heightArg)
		return ExitBadInput
	}

	sym, err := lifesearch.ParseSymmetry(opts.symmetry)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return ExitBadInput
	}

	rule := lifesearch.NewRule(birth, survival)
	world, err := lifesearch.NewWorld(lifesearch.Config{
		Width:       width,
		Height:      height,
		Period:      opts.period,
		Dx:          opts.dx,
		Dy:          opts.dy,
		Symmetry:    sym,
		Rule:        rule,
		ColumnFirst: opts.columnFirst,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return ExitBadInput
	}

	search := lifesearch.NewSearch(world)
	found := false
	for search.Search() {
		found = true
		printSolution(world)
		if opts.timed {
			fmt.Printf("Time taken: %v.\n", search.Elapsed())
		}
		if opts.view {
			viewer := lifesearch.NewViewer(world, ruleArg)
			if err := ui.RunModel("lifesearch", viewer, ui.DefaultRefreshInterval); err != nil {
				slog.Error("Failed to run pattern playback", "error", err)
			}
		}
		if !opts.all {
			return ExitFound
		}
	}

	if found {
		return ExitFound
	}
	fmt.Println("No pattern found.")
	if opts.timed {
		fmt.Printf("Time taken: %v.\n", search.Elapsed())
	}
	return ExitExhausted
}

// printSolution prints every generation of the found pattern as text.
func printSolution(world *lifesearch.World) {
	for t := 0; t < world.Period; t++ {
		fmt.Printf("Generation %d:\n", t)
		fmt.Print(world.GenString(t))
	}
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().Int("period", 1, "Period of the pattern")
	searchCmd.Flags().Int("dx", 0, "Horizontal translation per period")
	searchCmd.Flags().Int("dy", 0, "Vertical translation per period")
	searchCmd.Flags().String("symmetry", "C1", "Symmetry group (C1/C2/C4/D2|/D2-/D2\\/D2//D4+/D4X/D8)")
	searchCmd.Flags().Bool("time", false, "Report the wall-clock search time")
	searchCmd.Flags().Bool("all", false, "Keep searching and print every pattern")
	searchCmd.Flags().Bool("view", false, "Play the found pattern back in the terminal")
	searchCmd.Flags().Bool("column-first", false, "Search column by column instead of choosing automatically")
}
