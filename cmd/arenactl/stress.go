package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/mem"
	"github.com/joshuapare/arenakit/vmem"
)

var (
	stressCapacity    string
	stressGranularity string
	stressChunk       string
	stressCycles      int
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().StringVar(&stressCapacity, "capacity", "16MiB", "Arena reservation size")
	cmd.Flags().StringVar(&stressGranularity, "granularity", "", "Commit granularity (default: page size)")
	cmd.Flags().StringVar(&stressChunk, "chunk", "4KiB", "Bytes per allocation")
	cmd.Flags().IntVar(&stressCycles, "cycles", 3, "Fill-and-reset cycles")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Fill an arena to capacity repeatedly and report commit growth",
		Long: `The stress command fills an arena to capacity, resets it, and repeats,
reporting the commit watermark progression per cycle. Cycles after the first
reuse the pages committed by the first and make no further commit syscalls.

Example:
  arenactl stress
  arenactl stress --capacity 64MiB --chunk 1KiB --cycles 5
  arenactl stress --granularity 64KiB --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
	return cmd
}

type CycleResult struct {
	Cycle      int
	Allocs     int64
	Used       mem.Size
	Committed  mem.Size
	NewCommits int64
}

type StressReport struct {
	Capacity    mem.Size
	Granularity mem.Size
	Chunk       mem.Size

	Cycles []CycleResult

	TotalAllocs    int64
	TotalCommits   int64
	CommittedBytes mem.Size
}

func runStress() error {
	capacity, err := parseSize(stressCapacity)
	if err != nil {
		return err
	}
	chunk, err := parseSize(stressChunk)
	if err != nil {
		return err
	}
	if chunk <= 0 {
		return fmt.Errorf("chunk must be positive")
	}
	var gran mem.Size
	if stressGranularity != "" {
		if gran, err = parseSize(stressGranularity); err != nil {
			return err
		}
		if !mem.Alignment(gran).IsValid() || gran < vmem.PageSize() {
			return fmt.Errorf("granularity must be a power of two of at least %s",
				formatBytes(vmem.PageSize()))
		}
	}
	if stressCycles <= 0 {
		return fmt.Errorf("cycles must be positive")
	}

	counting := vmem.NewCounting(nil)
	a, err := arena.NewWithOptions(capacity, arena.Options{Granularity: gran, Mapper: counting})
	if err != nil {
		return fmt.Errorf("failed to reserve %s: %w", formatBytes(capacity), err)
	}
	defer a.Release()

	report := StressReport{
		Capacity:    a.Capacity(),
		Granularity: gran,
		Chunk:       chunk,
	}

	printVerbose("Reserved %s, running %d fill-and-reset cycles...\n",
		formatBytes(a.Capacity()), stressCycles)

	var prevCommits int64
	for cycle := 1; cycle <= stressCycles; cycle++ {
		var allocs int64
		for {
			s, err := a.Allocate(chunk, mem.NoAlign)
			if err != nil {
				if errors.Is(err, arena.ErrCapacity) {
					break
				}
				return fmt.Errorf("cycle %d: %w", cycle, err)
			}
			s[0] = byte(cycle)
			allocs++
		}

		stats := counting.Stats()
		cr := CycleResult{
			Cycle:      cycle,
			Allocs:     allocs,
			Used:       a.Used(),
			Committed:  a.Committed(),
			NewCommits: stats.Commits - prevCommits,
		}
		prevCommits = stats.Commits
		report.Cycles = append(report.Cycles, cr)
		report.TotalAllocs += allocs

		printVerbose("  cycle %d: %s allocs, %s used, %s committed, %d commit calls\n",
			cycle, formatCount(cr.Allocs), formatBytes(cr.Used),
			formatBytes(cr.Committed), cr.NewCommits)

		a.Reset()
	}

	final := counting.Stats()
	report.TotalCommits = final.Commits
	report.CommittedBytes = final.CommittedBytes

	// Output as JSON if requested
	if jsonOut {
		return printJSON(report)
	}

	// Text output
	printInfo("\nStress: %s reservation, %s chunks, %d cycles\n",
		formatBytes(report.Capacity), formatBytes(report.Chunk), stressCycles)

	for _, c := range report.Cycles {
		printInfo("  Cycle %d: %s allocs, %s used, %s committed, %d commit calls\n",
			c.Cycle, formatCount(c.Allocs), formatBytes(c.Used),
			formatBytes(c.Committed), c.NewCommits)
	}

	var lateCommits int64
	for _, c := range report.Cycles[1:] {
		lateCommits += c.NewCommits
	}

	printInfo("\nTotals:\n")
	printInfo("  Allocations: %s\n", formatCount(report.TotalAllocs))
	printInfo("  Commit calls: %s (%s committed)\n",
		formatCount(report.TotalCommits), formatBytes(report.CommittedBytes))
	printInfo("  Commit calls after first cycle: %d\n", lateCommits)

	return nil
}
