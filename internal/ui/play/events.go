package play

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"quizdoc/internal/session"
)

// LoadFunc extracts the document and returns the single uploaded event.
type LoadFunc func() session.Event

// uploadedMsg carries the extraction result into the update loop.
type uploadedMsg struct {
	event session.Event
}

// tickMsg is one countdown second tagged with its timer generation.
type tickMsg struct {
	generation uint64
}

// loadDocument runs the loader off the update loop.
func loadDocument(load LoadFunc) tea.Cmd {
	return func() tea.Msg {
		return uploadedMsg{event: load()}
	}
}

// tick schedules the next countdown message for generation.
func tick(interval time.Duration, generation uint64) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return tickMsg{generation: generation}
	})
}
