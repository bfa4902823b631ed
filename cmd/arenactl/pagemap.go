package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/mem"
	"github.com/joshuapare/arenakit/vmem"
)

var (
	pagemapCapacity    string
	pagemapGranularity string
	pagemapSize        string
	pagemapAlign       int64
	pagemapAllocs      int
	pagemapWidth       int
)

func init() {
	cmd := newPagemapCmd()
	cmd.Flags().StringVar(&pagemapCapacity, "capacity", "1MiB", "Arena reservation size")
	cmd.Flags().StringVar(&pagemapGranularity, "granularity", "", "Commit granularity (default: page size)")
	cmd.Flags().StringVar(&pagemapSize, "size", "16KiB", "Bytes per allocation")
	cmd.Flags().Int64Var(&pagemapAlign, "align", 8, "Allocation alignment (power of two)")
	cmd.Flags().IntVar(&pagemapAllocs, "allocs", 48, "Number of allocations")
	cmd.Flags().IntVar(&pagemapWidth, "width", 64, "Pages per output row")
	rootCmd.AddCommand(cmd)
}

func newPagemapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagemap",
		Short: "Visualize an arena's page commit layout after a workload",
		Long: `The pagemap command runs a configurable allocation workload against an
arena and draws the page-level layout of the reservation: used pages, pages
committed ahead of the cursor, and pages still only reserved.

Example:
  arenactl pagemap
  arenactl pagemap --allocs 100 --size 4KiB --granularity 64KiB
  arenactl pagemap --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPagemap()
		},
	}
	return cmd
}

type PagemapReport struct {
	Capacity    mem.Size
	Granularity mem.Size
	Used        mem.Size
	Committed   mem.Size

	TotalPages     int
	UsedPages      int
	CommittedPages int

	Rows []string
}

func runPagemap() error {
	capacity, err := parseSize(pagemapCapacity)
	if err != nil {
		return err
	}
	size, err := parseSize(pagemapSize)
	if err != nil {
		return err
	}
	align := mem.Alignment(pagemapAlign)
	if !align.IsValid() {
		return fmt.Errorf("alignment %d is not a power of two", pagemapAlign)
	}
	var gran mem.Size
	if pagemapGranularity != "" {
		if gran, err = parseSize(pagemapGranularity); err != nil {
			return err
		}
		if !mem.Alignment(gran).IsValid() || gran < vmem.PageSize() {
			return fmt.Errorf("granularity must be a power of two of at least %s",
				formatBytes(vmem.PageSize()))
		}
	}
	if pagemapAllocs < 0 || pagemapWidth <= 0 {
		return fmt.Errorf("allocs must be non-negative and width positive")
	}

	a, err := arena.NewWithOptions(capacity, arena.Options{Granularity: gran})
	if err != nil {
		return fmt.Errorf("failed to reserve %s: %w", formatBytes(capacity), err)
	}
	defer a.Release()

	for i := 0; i < pagemapAllocs; i++ {
		if _, err := a.Allocate(size, align); err != nil {
			if errors.Is(err, arena.ErrCapacity) {
				printVerbose("capacity exhausted after %d allocations\n", i)
				break
			}
			return err
		}
	}

	st := a.Stats()
	page := vmem.PageSize()
	report := PagemapReport{
		Capacity:       st.Reserved,
		Granularity:    gran,
		Used:           st.Used,
		Committed:      st.Committed,
		TotalPages:     int((st.Reserved + page - 1) / page),
		UsedPages:      int((st.Used + page - 1) / page),
		CommittedPages: int(st.Committed / page),
		Rows:           renderPageRows(st.Used, st.Committed, st.Reserved, page, pagemapWidth),
	}

	// Output as JSON if requested
	if jsonOut {
		return printJSON(report)
	}

	// Text output
	printInfo("\nReservation: %s (%s pages of %s)\n",
		formatBytes(report.Capacity), formatCount(int64(report.TotalPages)), formatBytes(page))
	printInfo("Used: %s   Committed: %s\n\n", formatBytes(report.Used), formatBytes(report.Committed))

	for i, row := range report.Rows {
		off := mem.Size(i*pagemapWidth) * page
		printInfo("  %10s  %s\n", formatBytes(off), row)
	}

	printInfo("\n  # used   + committed   . reserved\n")

	return nil
}

// renderPageRows draws one character per page: '#' below the cursor, '+' for
// pages committed ahead of it, '.' for reserved-only pages.
func renderPageRows(used, committed, capacity, page mem.Size, width int) []string {
	pages := int((capacity + page - 1) / page)
	rows := make([]string, 0, (pages+width-1)/width)

	var row strings.Builder
	for i := 0; i < pages; i++ {
		off := mem.Size(i) * page
		switch {
		case off < used:
			row.WriteByte('#')
		case off < committed:
			row.WriteByte('+')
		default:
			row.WriteByte('.')
		}
		if row.Len() == width || i == pages-1 {
			rows = append(rows, row.String())
			row.Reset()
		}
	}
	return rows
}
