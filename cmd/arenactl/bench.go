package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/mem"
	"github.com/joshuapare/arenakit/memres"
	"github.com/joshuapare/arenakit/vmem"
)

var (
	benchCapacity string
	benchSize     string
	benchAlign    int64
	benchAllocs   int
	benchRounds   int
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().StringVar(&benchCapacity, "capacity", "64MiB", "Arena reservation size")
	cmd.Flags().StringVar(&benchSize, "size", "256", "Bytes per allocation")
	cmd.Flags().Int64Var(&benchAlign, "align", 8, "Allocation alignment (power of two)")
	cmd.Flags().IntVar(&benchAllocs, "allocs", 10000, "Allocations per round")
	cmd.Flags().IntVar(&benchRounds, "rounds", 100, "Rounds, with an arena reset between rounds")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark arena bump allocation against the Go heap",
		Long: `The bench command times a bump-allocation workload against the same workload
on the Go heap and reports the syscall traffic the arena generated.

Example:
  arenactl bench
  arenactl bench --allocs 100000 --size 64 --rounds 50
  arenactl bench --capacity 256MiB --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench()
		},
	}
	return cmd
}

type BenchReport struct {
	Capacity mem.Size
	Size     mem.Size
	Align    mem.Alignment
	Allocs   int
	Rounds   int

	ArenaNsPerAlloc float64
	HeapNsPerAlloc  float64
	Speedup         float64

	Reserves       int64
	Commits        int64
	CommittedBytes mem.Size
}

func runBench() error {
	capacity, err := parseSize(benchCapacity)
	if err != nil {
		return err
	}
	size, err := parseSize(benchSize)
	if err != nil {
		return err
	}
	align := mem.Alignment(benchAlign)
	if !align.IsValid() {
		return fmt.Errorf("alignment %d is not a power of two", benchAlign)
	}
	if benchAllocs <= 0 || benchRounds <= 0 {
		return fmt.Errorf("allocs and rounds must be positive")
	}

	counting := vmem.NewCounting(nil)
	a, err := arena.NewWithOptions(capacity, arena.Options{Mapper: counting})
	if err != nil {
		return fmt.Errorf("failed to reserve %s: %w", formatBytes(capacity), err)
	}
	defer a.Release()

	printVerbose("Reserved %s, timing %d rounds of %d allocations...\n",
		formatBytes(capacity), benchRounds, benchAllocs)

	arenaNs, err := timeArena(a, size, align)
	if err != nil {
		return err
	}
	heapNs := timeHeap(size, align)

	stats := counting.Stats()
	report := BenchReport{
		Capacity:        capacity,
		Size:            size,
		Align:           align,
		Allocs:          benchAllocs,
		Rounds:          benchRounds,
		ArenaNsPerAlloc: arenaNs,
		HeapNsPerAlloc:  heapNs,
		Reserves:        stats.Reserves,
		Commits:         stats.Commits,
		CommittedBytes:  stats.CommittedBytes,
	}
	if arenaNs > 0 {
		report.Speedup = heapNs / arenaNs
	}

	// Output as JSON if requested
	if jsonOut {
		return printJSON(report)
	}

	// Text output
	printInfo("\nWorkload: %s allocations of %s (align %d) per round, %s rounds\n",
		formatCount(int64(benchAllocs)), formatBytes(size), align,
		formatCount(int64(benchRounds)))

	printInfo("\nResults:\n")
	printInfo("  Arena: %.1f ns/alloc\n", report.ArenaNsPerAlloc)
	printInfo("  Heap:  %.1f ns/alloc\n", report.HeapNsPerAlloc)
	printInfo("  Speedup: %.2fx\n", report.Speedup)

	printInfo("\nArena syscall traffic:\n")
	printInfo("  Reserves: %d\n", report.Reserves)
	printInfo("  Commits: %d (%s committed)\n", report.Commits, formatBytes(report.CommittedBytes))

	return nil
}

// timeArena times the bump workload, touching the first byte of each span so
// pages are actually faulted in.
func timeArena(a *arena.Arena, size mem.Size, align mem.Alignment) (float64, error) {
	start := time.Now()
	for range benchRounds {
		a.Reset()
		for range benchAllocs {
			s, err := a.Allocate(size, align)
			if err != nil {
				return 0, fmt.Errorf("arena allocation failed, try a larger --capacity: %w", err)
			}
			if !s.IsEmpty() {
				s[0] = 1
			}
		}
	}
	elapsed := time.Since(start)
	return float64(elapsed.Nanoseconds()) / float64(benchRounds*benchAllocs), nil
}

func timeHeap(size mem.Size, align mem.Alignment) float64 {
	h := memres.Heap{}
	start := time.Now()
	for range benchRounds {
		for range benchAllocs {
			s := h.Allocate(size, align)
			if !s.IsEmpty() {
				s[0] = 1
			}
		}
	}
	elapsed := time.Since(start)
	return float64(elapsed.Nanoseconds()) / float64(benchRounds*benchAllocs)
}
