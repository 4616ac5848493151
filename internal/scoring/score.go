package scoring

import (
	"math"

	"quizdoc/internal/config"
	"quizdoc/internal/question"
)

// Result is the aggregate outcome of a finished quiz.
type Result struct {
	Score        int `json:"score"`
	CorrectCount int `json:"correct_count"`
	MaxScore     int `json:"max_score"`
}

// Verdict is the outcome of a single question.
type Verdict struct {
	Index      int           `json:"index"`
	QuestionID int           `json:"question_id"`
	Type       question.Type `json:"type"`
	Answer     string        `json:"answer"`
	Answered   bool          `json:"answered"`
	Expected   string        `json:"expected,omitempty"`
	Correct    bool          `json:"correct"`
	Points     int           `json:"points"`
	MaxPoints  int           `json:"max_points"`
}

// Score totals points over questions. It never modifies its inputs.
//
// An mcq is correct only when the answer equals the correct option label
// exactly. A subjective question is correct only when self-graded true.
func Score(questions []question.Question, cfg config.Quiz, answers map[int]string, selfGrading map[int]bool) Result {
	var result Result
	for _, verdict := range Breakdown(questions, cfg, answers, selfGrading) {
		result.MaxScore += verdict.MaxPoints
		if verdict.Correct {
			result.Score += verdict.Points
			result.CorrectCount++
		}
	}
	return result
}

// Breakdown returns one verdict per question in question order.
func Breakdown(questions []question.Question, cfg config.Quiz, answers map[int]string, selfGrading map[int]bool) []Verdict {
	verdicts := make([]Verdict, 0, len(questions))
	for i, q := range questions {
		points := cfg.MarksFor(q.Type)
		answer, answered := answers[q.ID]
		verdict := Verdict{
			Index:      i,
			QuestionID: q.ID,
			Type:       q.Type,
			Answer:     answer,
			Answered:   answered,
			MaxPoints:  points,
		}
		if q.IsMCQ() {
			verdict.Expected = q.CorrectOption
			verdict.Correct = answered && q.CorrectOption != "" && answer == q.CorrectOption
		} else {
			verdict.Expected = q.ModelAnswer
			verdict.Correct = selfGrading[q.ID]
		}
		if verdict.Correct {
			verdict.Points = points
		}
		verdicts = append(verdicts, verdict)
	}
	return verdicts
}

// Percentage returns the rounded score percentage, or 0 without a max score.
func Percentage(result Result) int {
	if result.MaxScore <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(result.Score) / float64(result.MaxScore)))
}
