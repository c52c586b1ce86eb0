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
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/telepair/lifesearch/pkg"
)

const (
	// DefaultProfilePort is the default profiling server port
	DefaultProfilePort = 6060
	// DefaultProfileInterval is the default interval for profile information output
	DefaultProfileInterval = 5 * time.Second
	// DefaultLogLevel is the default logging level
	DefaultLogLevel = "info"
	// DefaultLogFormat is the default logging format
	DefaultLogFormat = "text"
	// DefaultLogFile is the default log file path (empty means stderr)
	DefaultLogFile = ""
)

var (
	profile         bool
	profilePort     int
	profileInterval time.Duration
	logFile         string
	logLevel        string
	logFormat       string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lifesearch",
	Short: "A searcher for periodic patterns in life-like cellular automata",
	Long: `Lifesearch enumerates still lifes, oscillators and spaceships in
two-dimensional cellular automata with life-like (including isotropic
non-totalistic) transition rules.

Given a bounding box, a period, a translation per period, a symmetry group
and a rule string, it performs a constraint-propagation backtracking search
over the whole space-time block and prints the first pattern whose minimal
period matches the request.

Examples:
  lifesearch search B3/S23 5 5
  lifesearch search B3/S23 3 3 --period 2
  lifesearch search B3/S23 4 4 --period 4 --dx 1 --dy 1
  lifesearch search B36/S23 6 6 --symmetry C4 --time`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&profile, "profile", false, "Enable profiling and monitoring")
	rootCmd.PersistentFlags().IntVar(&profilePort, "profile-port", DefaultProfilePort, "Profiling server port")
	rootCmd.PersistentFlags().DurationVar(&profileInterval, "profile-interval", DefaultProfileInterval, "Profile information output interval")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", DefaultLogFile, "Log file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", DefaultLogLevel, "Log level (debug/info/warn/error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", DefaultLogFormat, "Log format (text/json)")
}

// InitLog initializes the logging
func InitLog() {
	if err := pkg.InitLog(logLevel, logFormat, logFile); err != nil {
		slog.Error("Failed to initialize logging", "error", err)
	}
}

// InitProfile starts the profiling and watchdog
func InitProfile(ctx context.Context) {
	if profile {
		go pkg.StartProfile(ctx, profilePort)
		go pkg.StartWatchdog(ctx, profileInterval)
	}
}
