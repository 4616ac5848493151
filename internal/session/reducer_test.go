package session

import (
	"errors"
	"testing"

	"quizdoc/internal/config"
	"quizdoc/internal/question"
)

const sampleDocument = "1. Capital of France?\na) London\n*b) Paris\nc) Berlin\n2. Explain gravity.\nAnswer: A force that attracts masses.\n"

func testConfig() config.Quiz {
	return config.Quiz{MCQTime: 10, MCQMarks: 2, SubjectiveTime: 20, SubjectiveMarks: 5}
}

// configured returns a session in Configure with the sample document.
func configured(t *testing.T) State {
	t.Helper()
	state := Reduce(New(testConfig()), Uploaded("quiz.txt", sampleDocument, nil))
	if state.Phase != PhaseConfigure {
		t.Fatalf("expected configure phase, got %s (err %v)", state.Phase, state.Err)
	}
	return state
}

// playing returns a started session.
func playing(t *testing.T) State {
	t.Helper()
	return Reduce(configured(t), Started())
}

// TestUploadEntersConfigure verifies a parsed upload derives total time.
func TestUploadEntersConfigure(t *testing.T) {
	state := configured(t)
	if len(state.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(state.Questions))
	}
	if state.Config.TotalTime != 30 {
		t.Fatalf("expected total time 30, got %d", state.Config.TotalTime)
	}
	if state.Err != nil {
		t.Fatalf("expected no error, got %v", state.Err)
	}
}

// TestUploadEmptyParseStaysInUpload verifies no partial state is applied.
func TestUploadEmptyParseStaysInUpload(t *testing.T) {
	state := Reduce(New(testConfig()), Uploaded("notes.txt", "just some notes\n", nil))
	if state.Phase != PhaseUpload {
		t.Fatalf("expected upload phase, got %s", state.Phase)
	}
	if !IsEmptyParse(state.Err) {
		t.Fatalf("expected empty parse error, got %v", state.Err)
	}
	if state.Questions != nil || state.Config.TotalTime != 0 {
		t.Fatalf("expected no partial state, got %+v", state)
	}
}

// TestUploadExtractionFailure verifies the cause is surfaced verbatim.
func TestUploadExtractionFailure(t *testing.T) {
	cause := errors.New("converter not ready")
	state := Reduce(New(testConfig()), Uploaded("quiz.doc", "", cause))
	if state.Phase != PhaseUpload {
		t.Fatalf("expected upload phase, got %s", state.Phase)
	}
	if !IsExtraction(state.Err) || !errors.Is(state.Err, cause) {
		t.Fatalf("expected extraction error wrapping cause, got %v", state.Err)
	}
	state = Reduce(state, Uploaded("quiz.txt", sampleDocument, nil))
	if state.Phase != PhaseConfigure || state.Err != nil {
		t.Fatalf("expected retry upload to clear error, got %s %v", state.Phase, state.Err)
	}
}

// TestConfigChangedRederivesTotalTime verifies edits keep total time in sync.
func TestConfigChangedRederivesTotalTime(t *testing.T) {
	state := configured(t)
	cfg := state.Config
	cfg.MCQTime = 40
	cfg.TotalTime = 999
	state = Reduce(state, ConfigChanged(cfg))
	if state.Phase != PhaseConfigure {
		t.Fatalf("expected configure phase, got %s", state.Phase)
	}
	if state.Config.TotalTime != 60 {
		t.Fatalf("expected total time 60, got %d", state.Config.TotalTime)
	}
}

// TestConfigChangedRejectsInvalid verifies negative values keep the old config.
func TestConfigChangedRejectsInvalid(t *testing.T) {
	state := configured(t)
	previous := state.Config
	cfg := previous
	cfg.SubjectiveMarks = -1
	state = Reduce(state, ConfigChanged(cfg))
	if state.Config != previous {
		t.Fatalf("expected previous config, got %+v", state.Config)
	}
	var validation *config.ValidationError
	if !errors.As(state.Err, &validation) {
		t.Fatalf("expected validation error, got %v", state.Err)
	}
}

// TestStartedResetsPlayState verifies start sets the countdown and clears answers.
func TestStartedResetsPlayState(t *testing.T) {
	state := configured(t)
	state.CurrentIndex = 1
	state.Answers = map[int]string{1: "a"}
	state = Reduce(state, Started())
	if state.Phase != PhasePlaying {
		t.Fatalf("expected playing phase, got %s", state.Phase)
	}
	if state.TimeLeft != 30 || state.CurrentIndex != 0 {
		t.Fatalf("expected time 30 at index 0, got %d at %d", state.TimeLeft, state.CurrentIndex)
	}
	if len(state.Answers) != 0 || len(state.SelfGrading) != 0 {
		t.Fatalf("expected cleared answers and grading")
	}
}

// TestAnsweredIsCopyOnWrite verifies the input state's answers are untouched.
func TestAnsweredIsCopyOnWrite(t *testing.T) {
	before := playing(t)
	after := Reduce(before, Answered("a"))
	after = Reduce(after, Answered("b"))
	if len(before.Answers) != 0 {
		t.Fatalf("expected input answers untouched, got %v", before.Answers)
	}
	if after.Answers[1] != "b" {
		t.Fatalf("expected overwritten answer b, got %q", after.Answers[1])
	}
}

// TestNavigationClamped verifies navigation never leaves the question range.
func TestNavigationClamped(t *testing.T) {
	state := Reduce(playing(t), Answered("b"))
	state = Reduce(state, Previous())
	if state.CurrentIndex != 0 {
		t.Fatalf("expected index 0, got %d", state.CurrentIndex)
	}
	state = Reduce(state, Next())
	state = Reduce(state, Next())
	if state.CurrentIndex != 1 {
		t.Fatalf("expected index 1, got %d", state.CurrentIndex)
	}
	if state.Answers[1] != "b" {
		t.Fatalf("expected navigation to keep answers, got %v", state.Answers)
	}
}

// TestTickMonotonic verifies the countdown and the forced result.
func TestTickMonotonic(t *testing.T) {
	state := playing(t)
	for expected := 29; expected >= 1; expected-- {
		state = Reduce(state, Tick())
		if state.TimeLeft != expected {
			t.Fatalf("expected %d seconds left, got %d", expected, state.TimeLeft)
		}
		if state.Phase != PhasePlaying {
			t.Fatalf("expected playing at %d, got %s", expected, state.Phase)
		}
	}
	state = Reduce(state, Tick())
	if state.TimeLeft != 0 || state.Phase != PhaseResult {
		t.Fatalf("expected result at zero, got %s with %d", state.Phase, state.TimeLeft)
	}
	state = Reduce(state, Tick())
	if state.TimeLeft != 0 {
		t.Fatalf("expected no further decrement, got %d", state.TimeLeft)
	}
}

// TestZeroTotalTimeEndsOnFirstTick verifies a zero-length quiz ends immediately.
func TestZeroTotalTimeEndsOnFirstTick(t *testing.T) {
	state := configured(t)
	state = Reduce(state, ConfigChanged(config.Quiz{MCQMarks: 1, SubjectiveMarks: 1}))
	state = Reduce(state, Started())
	if state.TimeLeft != 0 {
		t.Fatalf("expected zero time, got %d", state.TimeLeft)
	}
	state = Reduce(state, Tick())
	if state.Phase != PhaseResult || state.TimeLeft != 0 {
		t.Fatalf("expected result with zero time, got %s %d", state.Phase, state.TimeLeft)
	}
}

// TestSubmitOnlyOnLastQuestion verifies submission requires the last index.
func TestSubmitOnlyOnLastQuestion(t *testing.T) {
	state := Reduce(playing(t), Submitted())
	if state.Phase != PhasePlaying {
		t.Fatalf("expected submit on first question to be ignored, got %s", state.Phase)
	}
	state = Reduce(Reduce(state, Next()), Submitted())
	if state.Phase != PhaseResult {
		t.Fatalf("expected result phase, got %s", state.Phase)
	}
}

// TestGradedOnlySubjective verifies self-grading ignores mcq ids.
func TestGradedOnlySubjective(t *testing.T) {
	state := Reduce(Reduce(playing(t), Next()), Submitted())
	state = Reduce(state, Graded(1, true))
	if _, ok := state.SelfGrading[1]; ok {
		t.Fatalf("expected mcq grading to be ignored")
	}
	before := Reduce(state, Graded(2, true))
	after := Reduce(before, Graded(2, false))
	if !before.SelfGrading[2] {
		t.Fatalf("expected earlier state to keep its verdict")
	}
	if after.SelfGrading[2] {
		t.Fatalf("expected verdict to be replaced")
	}
}

// TestEventsIgnoredOutsidePhase verifies out-of-phase events are no-ops.
func TestEventsIgnoredOutsidePhase(t *testing.T) {
	upload := New(testConfig())
	for _, event := range []Event{Started(), Answered("a"), Next(), Tick(), Submitted(), Graded(2, true)} {
		next := Reduce(upload, event)
		if next.Phase != PhaseUpload || next.Answers != nil {
			t.Fatalf("%s: expected upload state unchanged, got %+v", event.Kind, next)
		}
	}
	result := Reduce(Reduce(playing(t), Next()), Submitted())
	for _, event := range []Event{Started(), Answered("a"), Previous(), Uploaded("x", sampleDocument, nil)} {
		next := Reduce(result, event)
		if next.Phase != PhaseResult || next.CurrentIndex != 1 || len(next.Answers) != 0 {
			t.Fatalf("%s: expected result state unchanged", event.Kind)
		}
	}
}

// TestResetReturnsToUpload verifies reset clears the session but keeps settings.
func TestResetReturnsToUpload(t *testing.T) {
	state := Reduce(playing(t), Answered("b"))
	state = Reduce(state, Reset())
	if state.Phase != PhaseUpload {
		t.Fatalf("expected upload phase, got %s", state.Phase)
	}
	if state.Questions != nil || state.Answers != nil || state.SelfGrading != nil || state.CurrentIndex != 0 || state.TimeLeft != 0 || state.Err != nil {
		t.Fatalf("expected cleared session, got %+v", state)
	}
	if state.Config.MCQTime != 10 || state.Config.SubjectiveMarks != 5 || state.Config.TotalTime != 0 {
		t.Fatalf("expected per-type settings kept, got %+v", state.Config)
	}
}

// TestStateHelpers verifies current question lookups.
func TestStateHelpers(t *testing.T) {
	state := Reduce(playing(t), Answered("b"))
	current, ok := state.Current()
	if !ok || current.Type != question.TypeMCQ {
		t.Fatalf("expected current mcq, got %+v", current)
	}
	if answer, ok := state.Answer(); !ok || answer != "b" {
		t.Fatalf("expected answer b, got %q", answer)
	}
	if state.IsLast() {
		t.Fatalf("expected first question not to be last")
	}
	if state.AnsweredCount() != 1 {
		t.Fatalf("expected 1 answered, got %d", state.AnsweredCount())
	}
	if PhaseResult.String() != "result" || EventConfigChanged.String() != "configChanged" {
		t.Fatalf("unexpected names")
	}
}
