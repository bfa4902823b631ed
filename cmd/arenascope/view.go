package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/joshuapare/arenakit/mem"
)

// View renders the entire UI
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	// If help overlay is showing, render it
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderGauges(),
		m.renderCounters(),
		m.renderEvents(),
		m.renderStatus(),
	)
}

// renderHeader renders the title line and session parameters
func (m Model) renderHeader() string {
	state := "running"
	if m.paused {
		state = "paused"
	}
	info := fmt.Sprintf("Reservation: %s   Tick: %s   State: %s",
		fmtBytes(m.arena.Capacity()), m.interval, state)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render("Arena Scope"),
		infoStyle.Render(info),
	)
}

// renderGauges renders the used and committed bars against the reservation
func (m Model) renderGauges() string {
	st := m.arena.Stats()

	var usedPct, commitPct float64
	if st.Reserved > 0 {
		usedPct = float64(st.Used) / float64(st.Reserved)
		commitPct = float64(st.Committed) / float64(st.Reserved)
	}

	used := fmt.Sprintf("%-10s %s  %s", "Used",
		m.usedGauge.ViewAs(usedPct), fmtBytes(st.Used))
	committed := fmt.Sprintf("%-10s %s  %s", "Committed",
		m.commitGauge.ViewAs(commitPct), fmtBytes(st.Committed))

	return paneStyle.Render(lipgloss.JoinVertical(lipgloss.Left, used, committed))
}

// renderCounters renders the workload and syscall counter panels side by side
func (m Model) renderCounters() string {
	st := m.arena.Stats()
	ms := m.counting.Stats()

	left := lipgloss.JoinVertical(
		lipgloss.Left,
		panelTitleStyle.Render("Workload"),
		fmt.Sprintf("Allocations: %s", fmtCount(m.allocs)),
		fmt.Sprintf("Bytes placed: %s", fmtBytes(m.allocBytes)),
		fmt.Sprintf("Fill cycles: %d", m.cycles),
		fmt.Sprintf("Resets: %d", st.Resets),
	)

	right := lipgloss.JoinVertical(
		lipgloss.Left,
		panelTitleStyle.Render("Syscalls"),
		fmt.Sprintf("Reserves: %d (%s)", ms.Reserves, fmtBytes(ms.ReservedBytes)),
		fmt.Sprintf("Commits: %d (%s)", ms.Commits, fmtBytes(ms.CommittedBytes)),
		fmt.Sprintf("Decommits: %d", ms.Decommits),
		fmt.Sprintf("Releases: %d", ms.Releases),
	)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		paneStyle.Render(left),
		paneStyle.Render(right),
	)
}

// renderEvents renders the tail of the event log
func (m Model) renderEvents() string {
	start := len(m.events) - EventLogLines
	if start < 0 {
		start = 0
	}

	body := strings.Join(m.events[start:], "\n")
	if body == "" {
		body = mutedStyle.Render("no events yet")
	}

	return paneStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		panelTitleStyle.Render("Events"),
		body,
	))
}

// renderStatus renders the key hint bar
func (m Model) renderStatus() string {
	return statusStyle.Render("space: pause  r: reset  +/-: speed  ?: help  q: quit")
}

// renderHelpOverlay renders the full-screen help panel
func (m Model) renderHelpOverlay() string {
	rows := []struct{ key, desc string }{
		{"space/p", "pause or resume the workload"},
		{"r", "reset the arena, keeping committed pages"},
		{"+/=", "halve the tick interval"},
		{"-", "double the tick interval"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(helpTitleStyle.Render("Arena Scope Help"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(helpKeyStyle.Render(r.key))
		b.WriteString(helpDescStyle.Render(r.desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpDescStyle.Render("Press ?, esc, or q to close."))

	return modalStyle.Render(b.String())
}

// fmtBytes renders a byte count in binary units
func fmtBytes(n mem.Size) string {
	return humanize.IBytes(uint64(n))
}

// fmtCount renders a count with thousands separators
func fmtCount(n int64) string {
	return humanize.Comma(n)
}
