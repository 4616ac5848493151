package play

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"quizdoc/internal/scoring"
	"quizdoc/internal/session"
)

// tableStyles returns table styles for the result screen.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// rowsForState converts a finished session into result rows.
func rowsForState(state session.State, noColor bool) []table.Row {
	verdicts := scoring.Breakdown(state.Questions, state.Config, state.Answers, state.SelfGrading)
	rows := make([]table.Row, 0, len(verdicts))
	for _, verdict := range verdicts {
		rows = append(rows, table.Row{
			fmtInt(verdict.QuestionID),
			formatQuestionText(state.Questions[verdict.Index].Text),
			string(verdict.Type),
			formatAnswer(verdict),
			formatQuestionText(verdict.Expected),
			formatVerdict(verdict, state.SelfGrading, noColor),
			fmtInt(verdict.Points) + "/" + fmtInt(verdict.MaxPoints),
		})
	}
	return rows
}
