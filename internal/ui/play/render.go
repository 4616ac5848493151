package play

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quizdoc/internal/question"
	"quizdoc/internal/scoring"
	"quizdoc/internal/session"
)

// renderHeader renders the document and phase line.
func renderHeader(state session.State, source string, noColor bool) string {
	line := "quizdoc"
	if source != "" {
		line += " | " + source
	}
	line += " | " + state.Phase.String()
	if state.Phase == session.PhasePlaying {
		line += " | Time left: " + formatClock(state.TimeLeft)
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderUpload renders the loading or error screen.
func renderUpload(state session.State, source string, loading bool, noColor bool) string {
	if loading {
		return stylize("Extracting "+source+"...", noColor, lipgloss.Color("242"))
	}
	if state.Err != nil {
		return stylize("Error: "+state.Err.Error(), noColor, lipgloss.Color("196"))
	}
	return "Press enter to load " + source
}

// renderConfigure renders the per-type settings with the selected field.
func renderConfigure(state session.State, selected int, noColor bool) string {
	summary := question.Summarize(state.Questions)
	lines := []string{
		fmtInt(summary.Total) + " questions (" + fmtInt(summary.MCQ) + " mcq, " + fmtInt(summary.Subjective) + " subjective)",
		"",
	}
	for i, field := range configFields {
		cursor := "  "
		if i == selected {
			cursor = "> "
		}
		line := cursor + padRight(field.label, 18) + fmtInt(field.get(state.Config)) + field.unit
		if i == selected {
			line = stylize(line, noColor, lipgloss.Color("39"))
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", "Total time: "+formatClock(state.Config.TotalTime))
	return strings.Join(lines, "\n")
}

// renderPlaying renders the current question and its answer input.
func renderPlaying(state session.State, answerView string, noColor bool) string {
	current, ok := state.Current()
	if !ok {
		return ""
	}
	lines := []string{
		stylize("Question "+fmtInt(state.CurrentIndex+1)+"/"+fmtInt(len(state.Questions))+
			" | answered "+fmtInt(state.AnsweredCount())+"/"+fmtInt(len(state.Questions)), noColor, lipgloss.Color("242")),
		"",
		fmtInt(current.ID) + ". " + current.Text,
		"",
	}
	if current.IsMCQ() {
		chosen := state.Answers[current.ID]
		for _, option := range current.Options {
			marker := "( )"
			line := option.Label + ") " + option.Text
			if option.Label == chosen {
				marker = "(x)"
				line = stylize(line, noColor, lipgloss.Color("42"))
			}
			lines = append(lines, marker+" "+line)
		}
		return strings.Join(lines, "\n")
	}
	lines = append(lines, answerView)
	return strings.Join(lines, "\n")
}

// renderResult renders the score line and the per-question table.
func renderResult(state session.State, tableView string, noColor bool) string {
	result := scoring.Score(state.Questions, state.Config, state.Answers, state.SelfGrading)
	line := "Score: " + fmtInt(result.Score) + "/" + fmtInt(result.MaxScore) +
		" (" + fmtInt(scoring.Percentage(result)) + "%)" +
		" | Correct: " + fmtInt(result.CorrectCount) + "/" + fmtInt(len(state.Questions))
	return lipgloss.JoinVertical(lipgloss.Left, stylize(line, noColor, lipgloss.Color("42")), tableView)
}

// renderFooter renders key help and the last error.
func renderFooter(state session.State, noColor bool) string {
	help := ""
	switch state.Phase {
	case session.PhaseUpload:
		help = "enter: load | q: quit"
	case session.PhaseConfigure:
		help = "up/down: select | left/right: adjust | enter: start | q: quit"
	case session.PhasePlaying:
		help = "tab/shift+tab: next/previous | ctrl+s: submit on last question | esc: quit"
		if current, ok := state.Current(); ok && current.IsMCQ() {
			help = "letter: choose | " + help
		}
	case session.PhaseResult:
		help = "up/down: select | y/n/space: self-grade | r: new quiz | q: quit"
	}
	footer := stylize(help, noColor, lipgloss.Color("244"))
	if state.Err != nil && state.Phase != session.PhaseUpload {
		footer = lipgloss.JoinVertical(lipgloss.Left, stylize("Error: "+state.Err.Error(), noColor, lipgloss.Color("196")), footer)
	}
	return footer
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
