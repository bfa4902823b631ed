package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/arenakit/mem"
)

// Global flags shared by every subcommand.
var (
	verbose bool
	quiet   bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "arenactl",
	Short: "Inspect and exercise virtual-memory arena allocators",
	Long: `arenactl is a tool for inspecting platform paging behavior and exercising
virtual-memory-backed arena allocators. It reports paging parameters, benchmarks
bump allocation against the Go heap, and visualizes page commit behavior under
configurable workloads.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	pf.BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	pf.BoolVar(&jsonOut, "json", false, "Output in JSON format")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// Output helpers. Commands never write to stdout directly so that --quiet
// and --json stay consistent across subcommands.

func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var numPrinter = message.NewPrinter(language.English)

// formatCount renders n with thousands separators.
func formatCount(n int64) string {
	return numPrinter.Sprintf("%d", n)
}

// formatBytes renders a byte count in binary units.
func formatBytes(n mem.Size) string {
	return humanize.IBytes(uint64(n))
}

// parseSize parses a human byte-size flag such as "64MiB" or "4096".
func parseSize(s string) (mem.Size, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return mem.Size(n), nil
}
