package play

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quizdoc/internal/config"
	"quizdoc/internal/session"
)

// Model runs one quiz session in the terminal using Bubble Tea.
type Model struct {
	state        session.State
	source       string
	load         LoadFunc
	loading      bool
	field        int
	table        table.Model
	answer       textarea.Model
	generation   uint64
	tickInterval time.Duration
	noColor      bool
	observe      session.Observer
	attempts     []session.State
}

// Options configures the quiz UI model.
type Options struct {
	// Source names the document in the header and errors.
	Source string
	// Load extracts the document. It runs on start and on reload.
	Load LoadFunc
	// Config holds the per-type settings the session starts with.
	Config       config.Quiz
	NoColor      bool
	TickInterval time.Duration
	// Observe receives every applied session transition.
	Observe session.Observer
}

// NewModel constructs a quiz UI model in the Upload phase. With a Load
// function the model starts loading, matching the command Init returns.
func NewModel(opts Options) Model {
	tickInterval := opts.TickInterval
	if tickInterval <= 0 {
		tickInterval = time.Second
	}
	t := table.New(
		table.WithColumns(defaultColumns()),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	answer := textarea.New()
	answer.Placeholder = "Type your answer"
	answer.ShowLineNumbers = false
	answer.SetHeight(4)
	return Model{
		state:        session.New(opts.Config),
		source:       opts.Source,
		load:         opts.Load,
		loading:      opts.Load != nil,
		table:        t,
		answer:       answer,
		tickInterval: tickInterval,
		noColor:      opts.NoColor,
		observe:      opts.Observe,
	}
}

// State returns the current session state.
func (m Model) State() session.State {
	return m.state
}

// Attempts returns every session that reached the result phase, in order.
func (m Model) Attempts() []session.State {
	attempts := append([]session.State(nil), m.attempts...)
	if m.state.Phase == session.PhaseResult {
		attempts = append(attempts, m.state)
	}
	return attempts
}

// Init starts loading the document.
func (m Model) Init() tea.Cmd {
	if m.load == nil {
		return nil
	}
	return loadDocument(m.load)
}

// Update consumes key presses, extraction results and countdown ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(typed.Width)
		m.table.SetHeight(max(typed.Height-8, 1))
		m.table.SetColumns(columnsForWidth(typed.Width))
		m.answer.SetWidth(max(typed.Width-4, 10))
		return m, nil
	case uploadedMsg:
		m.loading = false
		return m.apply(typed.event)
	case tickMsg:
		if typed.generation != m.generation || m.state.Phase != session.PhasePlaying {
			return m, nil
		}
		m, _ = m.apply(session.Tick())
		if m.state.Phase == session.PhasePlaying {
			return m, tick(m.tickInterval, m.generation)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

// View renders the screen for the current phase.
func (m Model) View() string {
	header := renderHeader(m.state, m.source, m.noColor)
	var body string
	switch m.state.Phase {
	case session.PhaseUpload:
		body = renderUpload(m.state, m.source, m.loading, m.noColor)
	case session.PhaseConfigure:
		body = renderConfigure(m.state, m.field, m.noColor)
	case session.PhasePlaying:
		body = renderPlaying(m.state, m.answer.View(), m.noColor)
	case session.PhaseResult:
		body = renderResult(m.state, m.table.View(), m.noColor)
	}
	footer := renderFooter(m.state, m.noColor)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// apply reduces event, reports it, and keeps the countdown and widgets in
// step with the phase. A new timer generation retires any running chain.
func (m Model) apply(event session.Event) (Model, tea.Cmd) {
	before := m.state
	after := session.Reduce(before, event)
	m.state = after
	if m.observe != nil {
		m.observe(event, before, after)
	}
	if before.Phase == session.PhaseResult && after.Phase != session.PhaseResult {
		m.attempts = append(m.attempts, before)
	}

	var cmd tea.Cmd
	switch {
	case before.Phase != session.PhasePlaying && after.Phase == session.PhasePlaying:
		m.generation++
		cmd = tick(m.tickInterval, m.generation)
		m = m.syncAnswer()
	case before.Phase == session.PhasePlaying && after.Phase != session.PhasePlaying:
		m.generation++
		m.answer.Blur()
	case after.Phase == session.PhasePlaying && before.CurrentIndex != after.CurrentIndex:
		m = m.syncAnswer()
	}
	if after.Phase == session.PhaseResult {
		m.table.SetRows(rowsForState(after, m.noColor))
		if before.Phase != session.PhaseResult {
			m.table.SetCursor(0)
		}
	}
	if after.Phase == session.PhaseConfigure && before.Phase != session.PhaseConfigure {
		m.field = 0
	}
	return m, cmd
}

// syncAnswer loads the current subjective answer into the text area.
func (m Model) syncAnswer() Model {
	current, ok := m.state.Current()
	if !ok || current.IsMCQ() {
		m.answer.Blur()
		m.answer.SetValue("")
		return m
	}
	m.answer.SetValue(m.state.Answers[current.ID])
	m.answer.Focus()
	return m
}
