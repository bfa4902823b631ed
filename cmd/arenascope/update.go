package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// If help is showing, handle help keys
		if m.showHelp {
			if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) ||
				key.Matches(msg, m.keys.Quit) {
				m.showHelp = false
			}
			// Ignore other keys when help is showing
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = true

		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			if m.paused {
				m.logEvent("paused")
			} else {
				m.logEvent("resumed")
			}

		case key.Matches(msg, m.keys.Reset):
			if m.arena != nil {
				m.arena.Reset()
				m.cycles++
				m.logEvent("manual reset")
			}

		case key.Matches(msg, m.keys.Faster):
			if m.interval/2 >= MinTickInterval {
				m.interval /= 2
				m.logEvent("tick interval %s", m.interval)
			}

		case key.Matches(msg, m.keys.Slower):
			if m.interval*2 <= MaxTickInterval {
				m.interval *= 2
				m.logEvent("tick interval %s", m.interval)
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		gaugeWidth := msg.Width - 36
		if gaugeWidth < 10 {
			gaugeWidth = 10
		}
		m.usedGauge.Width = gaugeWidth
		m.commitGauge.Width = gaugeWidth
		return m, nil

	case tickMsg:
		if m.err != nil {
			return m, nil
		}
		if !m.paused {
			m.runSteps()
		}
		// Always reschedule so a resume picks the workload back up
		return m, m.tick()
	}

	return m, nil
}
