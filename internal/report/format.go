package report

import (
	"fmt"
	"time"

	"quizdoc/internal/results"
	"quizdoc/internal/scoring"
)

// formatPercent returns the rounded score percentage for report output.
func formatPercent(result scoring.Result) string {
	return fmt.Sprintf("%d%%", scoring.Percentage(result))
}

// formatClock renders seconds as mm:ss.
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// formatTime renders a timestamp in UTC.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}

// givenAnswer renders the captured answer, or a dash when none was given.
func givenAnswer(answer results.AnswerRecord) string {
	if !answer.Answered {
		return "-"
	}
	return answer.Answer
}

// attemptLabel is the link text for an attempt on the index page.
func attemptLabel(summary results.AttemptSummary) string {
	if label := formatTime(summary.FinishedAt); label != "" {
		return label
	}
	return summary.ID
}
