package main

import (
	"errors"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/cmd/arenascope/logger"
	"github.com/joshuapare/arenakit/mem"
)

// Allocation mix for the synthetic workload.
var (
	workloadSizes  = []mem.Size{64, 192, 512, 1 * mem.KiB, 4 * mem.KiB, 16 * mem.KiB}
	workloadAligns = []mem.Alignment{8, 16, 64}
)

// runSteps performs one tick's worth of allocations, resetting the arena
// when it fills.
func (m *Model) runSteps() {
	for i := 0; i < m.cfg.StepsPerTick; i++ {
		size := workloadSizes[m.rng.Intn(len(workloadSizes))]
		align := workloadAligns[m.rng.Intn(len(workloadAligns))]

		s, err := m.arena.Allocate(size, align)
		if err != nil {
			if errors.Is(err, arena.ErrCapacity) {
				m.cycles++
				m.logEvent("cycle %d: filled %s, reset", m.cycles, fmtBytes(m.arena.Used()))
				m.arena.Reset()
				continue
			}
			m.logEvent("allocation error: %v", err)
			logger.Error("allocation failed", "size", int64(size), "error", err)
			continue
		}

		s[0] = byte(i)
		m.allocs++
		m.allocBytes += size
	}
}
