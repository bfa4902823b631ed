//go:build !linux

package vmem

import "github.com/joshuapare/arenakit/mem"

// Populate is a no-op on platforms without a pre-fault primitive; first
// access pays the page-fault cost instead. The range is still validated so
// misuse shows up on every platform.
func Populate(s mem.Span) error {
	if s.IsEmpty() {
		return nil
	}
	checkPageRange("populate", s)
	return nil
}
