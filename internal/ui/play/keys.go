package play

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"quizdoc/internal/config"
	"quizdoc/internal/session"
)

// configField describes one editable setting on the configure screen.
type configField struct {
	label string
	unit  string
	step  int
	get   func(config.Quiz) int
	set   func(*config.Quiz, int)
}

var configFields = []configField{
	{label: "MCQ time", unit: "s", step: 5, get: func(c config.Quiz) int { return c.MCQTime }, set: func(c *config.Quiz, v int) { c.MCQTime = v }},
	{label: "MCQ marks", step: 1, get: func(c config.Quiz) int { return c.MCQMarks }, set: func(c *config.Quiz, v int) { c.MCQMarks = v }},
	{label: "Subjective time", unit: "s", step: 15, get: func(c config.Quiz) int { return c.SubjectiveTime }, set: func(c *config.Quiz, v int) { c.SubjectiveTime = v }},
	{label: "Subjective marks", step: 1, get: func(c config.Quiz) int { return c.SubjectiveMarks }, set: func(c *config.Quiz, v int) { c.SubjectiveMarks = v }},
}

// handleKey routes a key press by phase.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" || key == "esc" {
		return m, tea.Quit
	}
	switch m.state.Phase {
	case session.PhaseUpload:
		return m.handleUploadKey(key)
	case session.PhaseConfigure:
		return m.handleConfigureKey(key)
	case session.PhasePlaying:
		return m.handlePlayingKey(msg)
	case session.PhaseResult:
		return m.handleResultKey(msg)
	}
	return m, nil
}

func (m Model) handleUploadKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m, tea.Quit
	case "enter", "r":
		if m.load == nil || m.loading {
			return m, nil
		}
		m.loading = true
		return m, loadDocument(m.load)
	}
	return m, nil
}

func (m Model) handleConfigureKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.field = (m.field + len(configFields) - 1) % len(configFields)
	case "down", "j", "tab":
		m.field = (m.field + 1) % len(configFields)
	case "left", "h", "-":
		return m.adjustField(-1)
	case "right", "l", "+", "=":
		return m.adjustField(1)
	case "enter", "s":
		return m.apply(session.Started())
	}
	return m, nil
}

// adjustField moves the selected setting by one step, never below zero.
func (m Model) adjustField(direction int) (tea.Model, tea.Cmd) {
	field := configFields[m.field]
	cfg := m.state.Config
	value := field.get(cfg) + direction*field.step
	if value < 0 {
		value = 0
	}
	field.set(&cfg, value)
	return m.apply(session.ConfigChanged(cfg))
}

func (m Model) handlePlayingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "tab":
		return m.apply(session.Next())
	case "shift+tab":
		return m.apply(session.Previous())
	case "ctrl+s":
		return m.apply(session.Submitted())
	}
	current, ok := m.state.Current()
	if !ok {
		return m, nil
	}
	if current.IsMCQ() {
		switch key {
		case "right":
			return m.apply(session.Next())
		case "left":
			return m.apply(session.Previous())
		case "enter":
			if m.state.IsLast() {
				return m.apply(session.Submitted())
			}
			return m.apply(session.Next())
		}
		label := strings.ToLower(key)
		if len(msg.Runes) == 1 && current.HasOption(label) {
			return m.apply(session.Answered(label))
		}
		return m, nil
	}

	previous := m.answer.Value()
	var cmd tea.Cmd
	m.answer, cmd = m.answer.Update(msg)
	if value := m.answer.Value(); value != previous {
		var applyCmd tea.Cmd
		m, applyCmd = m.apply(session.Answered(value))
		return m, tea.Batch(cmd, applyCmd)
	}
	return m, cmd
}

func (m Model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		return m.apply(session.Reset())
	case "y":
		return m.gradeSelected(func(bool) bool { return true })
	case "n":
		return m.gradeSelected(func(bool) bool { return false })
	case " ", "enter":
		return m.gradeSelected(func(current bool) bool { return !current })
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// gradeSelected records a self-grading verdict for the highlighted row.
func (m Model) gradeSelected(verdict func(bool) bool) (tea.Model, tea.Cmd) {
	index := m.table.Cursor()
	if index < 0 || index >= len(m.state.Questions) {
		return m, nil
	}
	q := m.state.Questions[index]
	if q.IsMCQ() {
		return m, nil
	}
	return m.apply(session.Graded(q.ID, verdict(m.state.SelfGrading[q.ID])))
}
