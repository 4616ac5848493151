package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"quizdoc/internal/config"
	"quizdoc/internal/question"
	"quizdoc/internal/scoring"
	"quizdoc/internal/session"
)

// ErrAttemptNotFound is returned when no attempt matches an id.
var ErrAttemptNotFound = errors.New("attempt not found")

// AnswerRecord is one scored question of an attempt.
type AnswerRecord struct {
	Position   int           `json:"position"`
	QuestionID int           `json:"question_id"`
	Type       question.Type `json:"type"`
	Question   string        `json:"question"`
	Answer     string        `json:"answer,omitempty"`
	Answered   bool          `json:"answered"`
	Expected   string        `json:"expected,omitempty"`
	Correct    bool          `json:"correct"`
	Points     int           `json:"points"`
	MaxPoints  int           `json:"max_points"`
}

// Attempt is a finished quiz with its scored answers.
type Attempt struct {
	ID         string              `json:"id,omitempty"`
	Source     string              `json:"source"`
	Questions  []question.Question `json:"-"`
	Config     config.Quiz         `json:"config"`
	TimeLeft   int                 `json:"time_left"`
	Result     scoring.Result      `json:"result"`
	FinishedAt time.Time           `json:"finished_at"`
	Answers    []AnswerRecord      `json:"answers"`
}

// AttemptSummary is one row of the attempts index.
type AttemptSummary struct {
	ID            string    `json:"id"`
	Source        string    `json:"source"`
	QuestionCount int       `json:"question_count"`
	Score         int       `json:"score"`
	MaxScore      int       `json:"max_score"`
	CorrectCount  int       `json:"correct_count"`
	FinishedAt    time.Time `json:"finished_at"`
}

// AttemptFromState scores a finished session. The returned attempt has no
// id until it is recorded.
func AttemptFromState(source string, state session.State, finishedAt time.Time) Attempt {
	verdicts := scoring.Breakdown(state.Questions, state.Config, state.Answers, state.SelfGrading)
	answers := make([]AnswerRecord, 0, len(verdicts))
	for _, verdict := range verdicts {
		answers = append(answers, AnswerRecord{
			Position:   verdict.Index,
			QuestionID: verdict.QuestionID,
			Type:       verdict.Type,
			Question:   state.Questions[verdict.Index].Text,
			Answer:     verdict.Answer,
			Answered:   verdict.Answered,
			Expected:   verdict.Expected,
			Correct:    verdict.Correct,
			Points:     verdict.Points,
			MaxPoints:  verdict.MaxPoints,
		})
	}
	return Attempt{
		Source:     source,
		Questions:  state.Questions,
		Config:     state.Config,
		TimeLeft:   state.TimeLeft,
		Result:     scoring.Score(state.Questions, state.Config, state.Answers, state.SelfGrading),
		FinishedAt: finishedAt.UTC(),
		Answers:    answers,
	}
}

// RecordAttempt stores an attempt, its answers and, when new, its document in
// one transaction and returns the new attempt id. The document row is shared
// by fingerprint; the source file name belongs to the attempt.
func RecordAttempt(ctx context.Context, db *sql.DB, attempt Attempt) (string, error) {
	if ctx == nil {
		return "", errors.New("results: context is nil")
	}
	if db == nil {
		return "", errors.New("results: db is nil")
	}
	if len(attempt.Questions) == 0 {
		return "", errors.New("results: attempt has no questions")
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin attempt: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	documentID, err := upsertDocument(ctx, tx, attempt.Questions, attempt.FinishedAt)
	if err != nil {
		return "", err
	}

	attemptID := uuid.NewString()
	cfg := attempt.Config
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO attempts (
			attempt_id, document_id, source, mcq_time, mcq_marks, subjective_time, subjective_marks,
			total_time, time_left, score, max_score, correct_count, finished_at
		) VALUES (CAST(? AS UUID), CAST(? AS UUID), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		attemptID,
		documentID,
		attempt.Source,
		cfg.MCQTime,
		cfg.MCQMarks,
		cfg.SubjectiveTime,
		cfg.SubjectiveMarks,
		cfg.TotalTime,
		attempt.TimeLeft,
		attempt.Result.Score,
		attempt.Result.MaxScore,
		attempt.Result.CorrectCount,
		attempt.FinishedAt,
	); err != nil {
		return "", fmt.Errorf("insert attempt: %w", err)
	}
	for _, answer := range attempt.Answers {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO answers (
				attempt_id, position, question_id, question_type, question_text,
				answer, expected, correct, points, max_points
			) VALUES (CAST(? AS UUID), ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			attemptID,
			answer.Position,
			answer.QuestionID,
			string(answer.Type),
			answer.Question,
			nullableAnswer(answer),
			nullableString(answer.Expected),
			answer.Correct,
			answer.Points,
			answer.MaxPoints,
		); err != nil {
			return "", fmt.Errorf("insert answer %d: %w", answer.Position, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit attempt: %w", err)
	}
	return attemptID, nil
}

// upsertDocument inserts the question set once per fingerprint.
func upsertDocument(ctx context.Context, tx *sql.Tx, questions []question.Question, createdAt time.Time) (string, error) {
	key, err := DocumentKey(questions)
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(questions)
	if err != nil {
		return "", fmt.Errorf("encode questions: %w", err)
	}
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO documents (document_id, document_key, questions, question_count, created_at)
		 VALUES (CAST(? AS UUID), ?, ?, ?, ?)
		 ON CONFLICT (document_key) DO NOTHING`,
		uuid.NewString(),
		key,
		string(payload),
		len(questions),
		createdAt,
	); err != nil {
		return "", fmt.Errorf("upsert document: %w", err)
	}
	id, err := lookupID(ctx, tx, "documents", "document_id", "document_key", key)
	if err != nil {
		return "", fmt.Errorf("lookup document id: %w", err)
	}
	return id, nil
}

// ListAttempts returns the most recent attempts first. A limit of zero or
// less returns every attempt.
func ListAttempts(ctx context.Context, db *sql.DB, limit int) ([]AttemptSummary, error) {
	query := `SELECT CAST(attempt_id AS VARCHAR), source, question_count, score, max_score, correct_count, finished_at
		FROM v_attempts
		ORDER BY finished_at DESC, attempt_id`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()
	var out []AttemptSummary
	for rows.Next() {
		var summary AttemptSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.Source,
			&summary.QuestionCount,
			&summary.Score,
			&summary.MaxScore,
			&summary.CorrectCount,
			&summary.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		out = append(out, summary)
	}
	return out, rows.Err()
}

// GetAttempt loads one attempt with its answers in question order.
func GetAttempt(ctx context.Context, db *sql.DB, id string) (Attempt, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Attempt{}, ErrAttemptNotFound
	}
	var attempt Attempt
	var questionsJSON string
	err := db.QueryRowContext(
		ctx,
		`SELECT CAST(a.attempt_id AS VARCHAR), a.source, d.questions,
			a.mcq_time, a.mcq_marks, a.subjective_time, a.subjective_marks, a.total_time,
			a.time_left, a.score, a.max_score, a.correct_count, a.finished_at
		 FROM attempts a
		 JOIN documents d ON d.document_id = a.document_id
		 WHERE a.attempt_id = CAST(? AS UUID)`,
		id,
	).Scan(
		&attempt.ID,
		&attempt.Source,
		&questionsJSON,
		&attempt.Config.MCQTime,
		&attempt.Config.MCQMarks,
		&attempt.Config.SubjectiveTime,
		&attempt.Config.SubjectiveMarks,
		&attempt.Config.TotalTime,
		&attempt.TimeLeft,
		&attempt.Result.Score,
		&attempt.Result.MaxScore,
		&attempt.Result.CorrectCount,
		&attempt.FinishedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Attempt{}, ErrAttemptNotFound
	}
	if err != nil {
		return Attempt{}, fmt.Errorf("get attempt: %w", err)
	}
	if err := json.Unmarshal([]byte(questionsJSON), &attempt.Questions); err != nil {
		return Attempt{}, fmt.Errorf("decode questions: %w", err)
	}
	answers, err := loadAnswers(ctx, db, attempt.ID)
	if err != nil {
		return Attempt{}, err
	}
	attempt.Answers = answers
	return attempt, nil
}

func loadAnswers(ctx context.Context, db *sql.DB, attemptID string) ([]AnswerRecord, error) {
	rows, err := db.QueryContext(
		ctx,
		`SELECT position, question_id, question_type, question_text, answer, expected, correct, points, max_points
		 FROM answers
		 WHERE attempt_id = CAST(? AS UUID)
		 ORDER BY position`,
		attemptID,
	)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()
	var out []AnswerRecord
	for rows.Next() {
		var record AnswerRecord
		var kind string
		var answer, expected sql.NullString
		if err := rows.Scan(
			&record.Position,
			&record.QuestionID,
			&kind,
			&record.Question,
			&answer,
			&expected,
			&record.Correct,
			&record.Points,
			&record.MaxPoints,
		); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		record.Type = question.Type(kind)
		record.Answer = answer.String
		record.Answered = answer.Valid
		record.Expected = expected.String
		out = append(out, record)
	}
	return out, rows.Err()
}

// nullableAnswer stores unanswered questions as NULL.
func nullableAnswer(record AnswerRecord) interface{} {
	if !record.Answered {
		return nil
	}
	return record.Answer
}

// nullableString converts an empty string into a SQL NULL.
func nullableString(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

// lookupID fetches a single ID column value for a row keyed by keyColumn.
func lookupID(ctx context.Context, tx *sql.Tx, table, idColumn, keyColumn, key string) (string, error) {
	query := fmt.Sprintf("SELECT CAST(%s AS VARCHAR) FROM %s WHERE %s = ?", idColumn, table, keyColumn)
	var id string
	if err := tx.QueryRowContext(ctx, query, key).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}
