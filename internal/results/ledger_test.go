package results_test

import (
	"errors"
	"testing"
	"time"

	"quizdoc/internal/config"
	"quizdoc/internal/question"
	"quizdoc/internal/results"
	"quizdoc/internal/results/testing"
	"quizdoc/internal/session"
)

const sampleDocument = "1. Capital of France?\na) London\n*b) Paris\nc) Berlin\n2. Explain gravity.\nAnswer: A force that attracts masses.\n3. Largest ocean?\na) Pacific\nb) Atlantic\nAnswer: a\n"

// finishedState plays the sample document through to the result phase.
func finishedState(t *testing.T) session.State {
	t.Helper()
	state := session.New(config.Quiz{MCQTime: 10, MCQMarks: 2, SubjectiveTime: 20, SubjectiveMarks: 5})
	for _, event := range []session.Event{
		session.Uploaded("quiz.txt", sampleDocument, nil),
		session.Started(),
		session.Answered("b"),
		session.Next(),
		session.Answered("Mass attracts mass"),
		session.Tick(),
		session.Next(),
		session.Submitted(),
		session.Graded(2, true),
	} {
		state = session.Reduce(state, event)
	}
	if state.Phase != session.PhaseResult {
		t.Fatalf("expected result phase, got %s", state.Phase)
	}
	return state
}

// TestSchemaObjectsExist verifies ledger tables and views are created.
func TestSchemaObjectsExist(t *testing.T) {
	db, ctx := resultstesting.Open(t)
	for _, table := range []string{"documents", "attempts", "answers"} {
		count := resultstesting.QueryInt(t, ctx, db, "SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ?", table)
		if count != 1 {
			t.Fatalf("expected table %s to exist", table)
		}
	}
	viewCount := resultstesting.QueryInt(t, ctx, db, "SELECT COUNT(*) FROM information_schema.tables WHERE table_name = 'v_attempts' AND table_type = 'VIEW'")
	if viewCount != 1 {
		t.Fatalf("expected view v_attempts to exist")
	}
	if err := results.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("expected schema to apply twice, got %v", err)
	}
}

// TestAttemptFromState verifies answers are scored per question.
func TestAttemptFromState(t *testing.T) {
	finished := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	attempt := results.AttemptFromState("quiz.txt", finishedState(t), finished)
	if attempt.Result.MaxScore != 9 {
		t.Fatalf("expected max score 9, got %d", attempt.Result.MaxScore)
	}
	if attempt.Result.Score != 7 || attempt.Result.CorrectCount != 2 {
		t.Fatalf("expected 7 points from 2 correct, got %+v", attempt.Result)
	}
	if attempt.TimeLeft != 39 {
		t.Fatalf("expected 39 seconds left, got %d", attempt.TimeLeft)
	}
	if len(attempt.Answers) != 3 || attempt.Answers[2].Answered {
		t.Fatalf("expected third question unanswered, got %+v", attempt.Answers)
	}
}

// TestRecordAndGetAttempt verifies an attempt round trips through the ledger.
func TestRecordAndGetAttempt(t *testing.T) {
	db, ctx := resultstesting.Open(t)
	finished := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	attempt := results.AttemptFromState("quiz.txt", finishedState(t), finished)

	id, err := results.RecordAttempt(ctx, db, attempt)
	if err != nil {
		t.Fatalf("record attempt: %v", err)
	}
	loaded, err := results.GetAttempt(ctx, db, id)
	if err != nil {
		t.Fatalf("get attempt: %v", err)
	}
	if loaded.ID != id || loaded.Source != "quiz.txt" {
		t.Fatalf("unexpected attempt header %+v", loaded)
	}
	if loaded.Result != attempt.Result || loaded.Config != attempt.Config {
		t.Fatalf("expected result %+v and config %+v, got %+v and %+v", attempt.Result, attempt.Config, loaded.Result, loaded.Config)
	}
	if !loaded.FinishedAt.Equal(finished) {
		t.Fatalf("expected finished at %s, got %s", finished, loaded.FinishedAt)
	}
	if len(loaded.Questions) != 3 || loaded.Questions[0].CorrectOption != "b" {
		t.Fatalf("expected stored questions, got %+v", loaded.Questions)
	}
	if len(loaded.Answers) != len(attempt.Answers) {
		t.Fatalf("expected %d answers, got %d", len(attempt.Answers), len(loaded.Answers))
	}
	for i := range attempt.Answers {
		if loaded.Answers[i] != attempt.Answers[i] {
			t.Fatalf("answer %d: expected %+v, got %+v", i, attempt.Answers[i], loaded.Answers[i])
		}
	}
}

// TestDocumentsShareFingerprint verifies repeated attempts reuse the document row.
func TestDocumentsShareFingerprint(t *testing.T) {
	db, ctx := resultstesting.Open(t)
	state := finishedState(t)
	first := results.AttemptFromState("quiz.txt", state, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	second := results.AttemptFromState("copy.txt", state, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	firstID, err := results.RecordAttempt(ctx, db, first)
	if err != nil {
		t.Fatalf("record first: %v", err)
	}
	secondID, err := results.RecordAttempt(ctx, db, second)
	if err != nil {
		t.Fatalf("record second: %v", err)
	}
	if firstID == secondID {
		t.Fatalf("expected distinct attempt ids")
	}
	if count := resultstesting.QueryInt(t, ctx, db, "SELECT COUNT(*) FROM documents"); count != 1 {
		t.Fatalf("expected one document row, got %d", count)
	}

	summaries, err := results.ListAttempts(ctx, db, 0)
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(summaries) != 2 || summaries[0].ID != secondID || summaries[1].ID != firstID {
		t.Fatalf("expected newest attempt first, got %+v", summaries)
	}
	if summaries[0].Source != "copy.txt" || summaries[1].Source != "quiz.txt" || summaries[0].QuestionCount != 3 {
		t.Fatalf("expected each attempt to keep its own source, got %+v", summaries)
	}
	limited, err := results.ListAttempts(ctx, db, 1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("expected one limited row, got %d (%v)", len(limited), err)
	}
}

// TestRecordAttemptRollsBackDocument verifies a rejected attempt leaves no
// document row behind.
func TestRecordAttemptRollsBackDocument(t *testing.T) {
	db, ctx := resultstesting.Open(t)
	attempt := results.AttemptFromState("quiz.txt", finishedState(t), time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	attempt.Result.Score = attempt.Result.MaxScore + 1
	if _, err := results.RecordAttempt(ctx, db, attempt); err == nil {
		t.Fatalf("expected score above max score to be rejected")
	}
	if count := resultstesting.QueryInt(t, ctx, db, "SELECT COUNT(*) FROM documents"); count != 0 {
		t.Fatalf("expected no document rows after rollback, got %d", count)
	}
	if count := resultstesting.QueryInt(t, ctx, db, "SELECT COUNT(*) FROM attempts"); count != 0 {
		t.Fatalf("expected no attempt rows after rollback, got %d", count)
	}
}

// TestGetAttemptNotFound verifies unknown ids report ErrAttemptNotFound.
func TestGetAttemptNotFound(t *testing.T) {
	db, ctx := resultstesting.Open(t)
	for _, id := range []string{"not-a-uuid", "8c7a4f1e-2b7d-4a53-9a4e-1f0d9d3b2c11"} {
		if _, err := results.GetAttempt(ctx, db, id); !errors.Is(err, results.ErrAttemptNotFound) {
			t.Fatalf("%s: expected not found, got %v", id, err)
		}
	}
}

// TestRecordAttemptRequiresQuestions verifies empty attempts are rejected.
func TestRecordAttemptRequiresQuestions(t *testing.T) {
	db, ctx := resultstesting.Open(t)
	if _, err := results.RecordAttempt(ctx, db, results.Attempt{Source: "empty.txt"}); err == nil {
		t.Fatalf("expected error for empty attempt")
	}
}

// TestDocumentKeyStable verifies fingerprints depend only on the questions.
func TestDocumentKeyStable(t *testing.T) {
	questions, err := question.Parse(sampleDocument)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	first, err := results.DocumentKey(questions)
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	if len(first) != 64 {
		t.Fatalf("expected a hex sha-256 key, got %q", first)
	}
	again, _ := results.DocumentKey(append([]question.Question(nil), questions...))
	if first != again {
		t.Fatalf("expected stable key")
	}
	changed := append([]question.Question(nil), questions...)
	changed[0].CorrectOption = "a"
	other, _ := results.DocumentKey(changed)
	if other == first {
		t.Fatalf("expected key to change with the answer key")
	}
}
