package play

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"quizdoc/internal/question"
	"quizdoc/internal/scoring"
)

// defaultColumns returns the result table columns for narrow terminals.
func defaultColumns() []table.Column {
	return columnsForWidth(100)
}

// columnsForWidth sizes the text columns to the terminal width.
func columnsForWidth(width int) []table.Column {
	fixed := 4 + 10 + 10 + 10 + 7
	text := max((width-fixed-16)/3, 10)
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Question", Width: text},
		{Title: "Type", Width: 10},
		{Title: "Answer", Width: text},
		{Title: "Expected", Width: text},
		{Title: "Result", Width: 10},
		{Title: "Points", Width: 7},
	}
}

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatClock renders seconds as mm:ss.
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return pad2(seconds/60) + ":" + pad2(seconds%60)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return fmtInt(value)
	}
	return "0" + fmtInt(value)
}

// padRight pads text with spaces to width runes.
func padRight(text string, width int) string {
	if n := len([]rune(text)); n < width {
		return text + strings.Repeat(" ", width-n)
	}
	return text
}

// formatQuestionText collapses whitespace and truncates for display.
func formatQuestionText(text string) string {
	normalized := strings.Join(strings.Fields(text), " ")
	if normalized == "" {
		return ""
	}
	const limit = 80
	runes := []rune(normalized)
	if len(runes) <= limit {
		return normalized
	}
	return string(runes[:limit-3]) + "..."
}

// formatAnswer renders the given answer or a dash when unanswered.
func formatAnswer(verdict scoring.Verdict) string {
	if !verdict.Answered || strings.TrimSpace(verdict.Answer) == "" {
		return "-"
	}
	return formatQuestionText(verdict.Answer)
}

// formatVerdict renders correctness, marking ungraded subjective answers.
func formatVerdict(verdict scoring.Verdict, grading map[int]bool, noColor bool) string {
	label := "incorrect"
	color := lipgloss.Color("220")
	switch {
	case verdict.Correct:
		label = "correct"
		color = lipgloss.Color("42")
	case verdict.Type == question.TypeSubjective:
		if _, graded := grading[verdict.QuestionID]; !graded {
			label = "ungraded"
			color = lipgloss.Color("246")
		}
	case verdict.Expected == "":
		label = "no key"
		color = lipgloss.Color("246")
	}
	return stylize(label, noColor, color)
}
