package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/joshuapare/arenakit/cmd/arenascope/logger"
	"github.com/joshuapare/arenakit/mem"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	args, debugMode := splitDebugFlag(os.Args[1:])

	if err := logger.Init(logger.Options{
		Enabled: debugMode,
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	if len(args) > 0 {
		switch args[0] {
		case "--help", "-h":
			printHelp()
			return
		case "--version", "-v":
			fmt.Printf("arenascope %s\n  commit: %s\n  built: %s\n", version, commit, date)
			return
		}
	}

	cfg := DefaultConfig()
	if len(args) > 0 {
		n, err := humanize.ParseBytes(args[0])
		if err != nil || n == 0 {
			fmt.Fprintf(os.Stderr, "Error: invalid capacity: %s\n", args[0])
			fmt.Fprintf(os.Stderr, "Usage: arenascope [options] [capacity]\n")
			fmt.Fprintf(os.Stderr, "Try 'arenascope --help' for more information.\n")
			os.Exit(1)
		}
		cfg.Capacity = mem.Size(n)
	}

	logger.Info("starting arenascope", "capacity", cfg.Capacity.String(), "debug", debugMode)

	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	// The arena outlives the event loop; release it on the way out.
	if m, ok := finalModel.(Model); ok {
		if err := m.Close(); err != nil {
			logger.Warn("error closing resources", "error", err)
		}
	}

	logger.Info("arenascope exited normally")
}

// splitDebugFlag pulls --debug/-d out of the argument list so it can appear
// anywhere, leaving the rest in order.
func splitDebugFlag(args []string) ([]string, bool) {
	rest := make([]string, 0, len(args))
	debug := false
	for _, a := range args {
		if a == "--debug" || a == "-d" {
			debug = true
			continue
		}
		rest = append(rest, a)
	}
	return rest, debug
}

func printHelp() {
	fmt.Println("arenascope - Live dashboard for a virtual-memory arena allocator")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  arenascope [options] [capacity]")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Reserves an arena and drives a synthetic allocation workload against it,")
	fmt.Println("  showing live usage and commit gauges, syscall counters, and an event log.")
	fmt.Println()
	fmt.Println("  The optional capacity argument sets the reservation size (default 64MiB).")
	fmt.Println("  Accepts human-readable sizes such as 256MiB or 1GiB.")
	fmt.Println()
	fmt.Println("  Controls:")
	fmt.Println("    space/p     Pause or resume the workload")
	fmt.Println("    r           Reset the arena")
	fmt.Println("    +/-         Speed up / slow down the tick rate")
	fmt.Println("    ?           Show help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -d, --debug    Enable debug logging to ~/.arenascope/logs/")
	fmt.Println("  -h, --help     Show this help message")
	fmt.Println("  -v, --version  Show version information")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  arenascope")
	fmt.Println("  arenascope 256MiB")
	fmt.Println("  arenascope --debug 1GiB")
	fmt.Println()
	fmt.Println("For one-shot measurements, use the 'arenactl' command instead.")
}
