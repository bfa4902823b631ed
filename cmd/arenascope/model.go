package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/mem"
	"github.com/joshuapare/arenakit/vmem"
)

// Layout constants
const (
	EventLogLines = 8 // Rows shown in the event log panel

	MinTickInterval = 16 * time.Millisecond
	MaxTickInterval = 2 * time.Second

	maxEventHistory = 256
)

// Config holds the session parameters.
type Config struct {
	Capacity     mem.Size
	Granularity  mem.Size
	StepsPerTick int
	Interval     time.Duration
	Seed         int64
}

// DefaultConfig returns the workload used when no arguments are given.
func DefaultConfig() Config {
	return Config{
		Capacity:     64 * mem.MiB,
		StepsPerTick: 256,
		Interval:     100 * time.Millisecond,
		Seed:         time.Now().UnixNano(),
	}
}

// tickMsg drives the synthetic workload.
type tickMsg time.Time

// Model is the main application model
type Model struct {
	arena    *arena.Arena
	counting *vmem.CountingMapper
	keys     KeyMap

	cfg Config
	rng *rand.Rand

	width  int
	height int

	paused   bool
	interval time.Duration

	// Workload counters
	cycles     int64
	allocs     int64
	allocBytes mem.Size

	events []string

	usedGauge   progress.Model
	commitGauge progress.Model

	// Help overlay
	showHelp bool

	err error
}

// NewModel creates a new TUI model and reserves the arena backing the session.
func NewModel(cfg Config) Model {
	m := Model{
		keys:        DefaultKeyMap(),
		cfg:         cfg,
		rng:         rand.New(rand.NewSource(cfg.Seed)),
		interval:    cfg.Interval,
		usedGauge:   progress.New(progress.WithDefaultGradient()),
		commitGauge: progress.New(progress.WithDefaultGradient()),
	}

	if cfg.Capacity <= 0 {
		m.err = fmt.Errorf("capacity must be positive, got %d", cfg.Capacity)
		return m
	}
	if cfg.StepsPerTick <= 0 {
		m.cfg.StepsPerTick = DefaultConfig().StepsPerTick
	}
	if m.interval <= 0 {
		m.interval = DefaultConfig().Interval
	}

	counting := vmem.NewCounting(nil)
	a, err := arena.NewWithOptions(cfg.Capacity, arena.Options{
		Granularity: cfg.Granularity,
		Mapper:      counting,
	})
	if err != nil {
		m.err = err
		return m
	}

	m.arena = a
	m.counting = counting
	m.logEvent("reserved %s", fmtBytes(a.Capacity()))
	return m
}

// Init schedules the first workload tick.
func (m Model) Init() tea.Cmd {
	if m.err != nil {
		return nil
	}
	return m.tick()
}

// tick schedules the next workload step at the current interval.
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Close releases the arena.
func (m Model) Close() error {
	if m.arena == nil {
		return nil
	}
	return m.arena.Release()
}

// logEvent appends a timestamped line to the event log.
func (m *Model) logEvent(format string, args ...any) {
	line := time.Now().Format("15:04:05") + "  " + fmt.Sprintf(format, args...)
	m.events = append(m.events, line)
	if len(m.events) > maxEventHistory {
		m.events = m.events[len(m.events)-maxEventHistory:]
	}
}
