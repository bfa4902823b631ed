package main

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/mem"
	"github.com/joshuapare/arenakit/vmem"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Report the platform's paging parameters",
		Long: `The info command reports the page size and the allocator defaults derived
from it for the current platform.

Example:
  arenactl info
  arenactl info --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo()
		},
	}
	return cmd
}

type PlatformInfo struct {
	OS   string
	Arch string
	CPUs int

	PageSize           mem.Size
	PageAlignment      mem.Alignment
	DefaultGranularity mem.Size
}

func runInfo() error {
	info := PlatformInfo{
		OS:                 runtime.GOOS,
		Arch:               runtime.GOARCH,
		CPUs:               runtime.NumCPU(),
		PageSize:           vmem.PageSize(),
		PageAlignment:      vmem.PageAlignment(),
		DefaultGranularity: vmem.PageSize(),
	}

	// Output as JSON if requested
	if jsonOut {
		return printJSON(info)
	}

	// Text output
	printInfo("\nPlatform:\n")
	printInfo("  OS: %s\n", info.OS)
	printInfo("  Arch: %s\n", info.Arch)
	printInfo("  CPUs: %d\n", info.CPUs)

	printInfo("\nPaging:\n")
	printInfo("  Page size: %s (%s bytes)\n",
		formatBytes(info.PageSize), formatCount(int64(info.PageSize)))
	printInfo("  Page alignment: %s bytes\n", formatCount(int64(info.PageAlignment)))
	printInfo("  Default commit granularity: %s\n", formatBytes(info.DefaultGranularity))

	return nil
}
