package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TestHelper drives a Model through Update the way the bubbletea runtime
// would, so tests can script key presses and ticks without a terminal.
type TestHelper struct {
	model Model
}

// NewTestHelper builds a helper around a fresh model.
func NewTestHelper(cfg Config) *TestHelper {
	return &TestHelper{model: NewModel(cfg)}
}

func (h *TestHelper) send(msg tea.Msg) *TestHelper {
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// SendKey feeds a special key such as tea.KeyEsc.
func (h *TestHelper) SendKey(keyType tea.KeyType) *TestHelper {
	return h.send(tea.KeyMsg{Type: keyType})
}

// SendKeyRune feeds a printable key.
func (h *TestHelper) SendKeyRune(r rune) *TestHelper {
	return h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// SendWindowSize feeds a terminal resize.
func (h *TestHelper) SendWindowSize(width, height int) *TestHelper {
	return h.send(tea.WindowSizeMsg{Width: width, Height: height})
}

// SendTick advances the synthetic workload by one tick.
func (h *TestHelper) SendTick() *TestHelper {
	return h.send(tickMsg(time.Now()))
}

// GetModel returns the model after the messages sent so far.
func (h *TestHelper) GetModel() Model {
	return h.model
}

// GetView renders the current model.
func (h *TestHelper) GetView() string {
	return h.model.View()
}
