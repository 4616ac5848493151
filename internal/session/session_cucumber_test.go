//go:build cucumber

package session

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"

	"quizdoc/internal/config"
	"quizdoc/internal/scoring"
)

// TestSessionScenarios runs the timed session feature scenarios.
func TestSessionScenarios(t *testing.T) {
	featurePath := filepath.Join("..", "..", "spec", "features", "session-lifecycle.feature")
	suite := godog.TestSuite{
		Name:                "session",
		ScenarioInitializer: InitializeSessionScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{featurePath},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeSessionScenario wires steps for session scenarios.
func InitializeSessionScenario(ctx *godog.ScenarioContext) {
	state := &sessionScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^an uploaded document:$`, state.givenDocument)
	ctx.Step(`^mcq questions take (\d+) seconds for (\d+) marks$`, state.givenMCQSettings)
	ctx.Step(`^subjective questions take (\d+) seconds for (\d+) marks$`, state.givenSubjectiveSettings)
	ctx.Step(`^the quiz starts$`, state.whenStarted)
	ctx.Step(`^I answer "([^"]*)"$`, state.whenAnswer)
	ctx.Step(`^I go to the next question$`, state.whenNext)
	ctx.Step(`^I go to the previous question$`, state.whenPrevious)
	ctx.Step(`^I submit$`, state.whenSubmit)
	ctx.Step(`^I grade question (\d+) as (correct|incorrect)$`, state.whenGrade)
	ctx.Step(`^(\d+) seconds pass$`, state.whenSecondsPass)
	ctx.Step(`^the total time is (\d+) seconds$`, state.thenTotalTime)
	ctx.Step(`^the phase is "([^"]+)"$`, state.thenPhase)
	ctx.Step(`^the time left is (\d+) seconds$`, state.thenTimeLeft)
	ctx.Step(`^the score is (\d+) out of (\d+) with (\d+) correct$`, state.thenScore)
	ctx.Step(`^the current question is (\d+)$`, state.thenCurrentQuestion)
}

type sessionScenarioState struct {
	state State
}

// reset clears scenario state.
func (s *sessionScenarioState) reset() {
	s.state = New(config.Default())
}

func (s *sessionScenarioState) apply(event Event) error {
	s.state = Reduce(s.state, event)
	return nil
}

func (s *sessionScenarioState) givenDocument(doc *godog.DocString) error {
	s.state = Reduce(s.state, Uploaded("scenario.txt", doc.Content, nil))
	if s.state.Err != nil {
		return s.state.Err
	}
	if s.state.Phase != PhaseConfigure {
		return fmt.Errorf("expected configure phase, got %s", s.state.Phase)
	}
	return nil
}

func (s *sessionScenarioState) givenMCQSettings(seconds, marks int) error {
	cfg := s.state.Config
	cfg.MCQTime = seconds
	cfg.MCQMarks = marks
	s.state = Reduce(s.state, ConfigChanged(cfg))
	return s.state.Err
}

func (s *sessionScenarioState) givenSubjectiveSettings(seconds, marks int) error {
	cfg := s.state.Config
	cfg.SubjectiveTime = seconds
	cfg.SubjectiveMarks = marks
	s.state = Reduce(s.state, ConfigChanged(cfg))
	return s.state.Err
}

func (s *sessionScenarioState) whenStarted() error {
	return s.apply(Started())
}

func (s *sessionScenarioState) whenAnswer(value string) error {
	return s.apply(Answered(value))
}

func (s *sessionScenarioState) whenNext() error {
	return s.apply(Next())
}

func (s *sessionScenarioState) whenPrevious() error {
	return s.apply(Previous())
}

func (s *sessionScenarioState) whenSubmit() error {
	return s.apply(Submitted())
}

func (s *sessionScenarioState) whenGrade(id int, verdict string) error {
	return s.apply(Graded(id, verdict == "correct"))
}

func (s *sessionScenarioState) whenSecondsPass(seconds int) error {
	for i := 0; i < seconds; i++ {
		s.state = Reduce(s.state, Tick())
	}
	return nil
}

func (s *sessionScenarioState) thenTotalTime(seconds int) error {
	if s.state.Config.TotalTime != seconds {
		return fmt.Errorf("expected total time %d, got %d", seconds, s.state.Config.TotalTime)
	}
	return nil
}

func (s *sessionScenarioState) thenPhase(phase string) error {
	if s.state.Phase.String() != phase {
		return fmt.Errorf("expected phase %s, got %s", phase, s.state.Phase)
	}
	return nil
}

func (s *sessionScenarioState) thenTimeLeft(seconds int) error {
	if s.state.TimeLeft != seconds {
		return fmt.Errorf("expected %d seconds left, got %d", seconds, s.state.TimeLeft)
	}
	return nil
}

func (s *sessionScenarioState) thenScore(score, maxScore, correct int) error {
	result := scoring.Score(s.state.Questions, s.state.Config, s.state.Answers, s.state.SelfGrading)
	if result.Score != score || result.MaxScore != maxScore || result.CorrectCount != correct {
		return fmt.Errorf("expected %d/%d with %d correct, got %+v", score, maxScore, correct, result)
	}
	return nil
}

func (s *sessionScenarioState) thenCurrentQuestion(position int) error {
	if s.state.CurrentIndex != position-1 {
		return fmt.Errorf("expected question %d, got %d", position, s.state.CurrentIndex+1)
	}
	return nil
}
