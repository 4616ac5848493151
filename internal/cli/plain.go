package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"quizdoc/internal/config"
	"quizdoc/internal/question"
	"quizdoc/internal/scoring"
	"quizdoc/internal/session"
)

// plainOptions configures a line-mode quiz.
type plainOptions struct {
	Path       string
	Config     config.Quiz
	Observe    session.Observer
	TickSource session.TickSource
}

const plainHelp = `Type an option label (mcq) or your answer (subjective) and press Enter.
Commands: :n next, :p previous, :s submit (last question), :h help, :q quit`

// runPlain runs one quiz session line by line on in/out. It returns the
// finished session, or no sessions when the quiz was cancelled.
func runPlain(ctx context.Context, in io.Reader, out io.Writer, opts plainOptions) ([]session.State, error) {
	engine := session.NewEngine(session.New(opts.Config), session.EngineOptions{TickSource: opts.TickSource})
	engine.Observe(opts.Observe)
	timedOut := make(chan struct{})
	var once sync.Once
	engine.Observe(func(event session.Event, before, after session.State) {
		if event.Kind == session.EventTick && before.Phase == session.PhasePlaying && after.Phase == session.PhaseResult {
			once.Do(func() { close(timedOut) })
		}
	})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		_ = engine.Run(runCtx)
	}()

	lines := make(chan string)
	go readLines(runCtx, in, lines)
	next := channelLines(lines)

	state, err := engine.Send(ctx, loadDocument(ctx, opts.Path))
	if err != nil {
		return nil, err
	}
	if state.Err != nil {
		return nil, state.Err
	}
	printLoaded(out, state)

	fmt.Fprintln(out, plainHelp)
	start, err := promptYesNo(next, out, "Start the quiz?", true)
	if err != nil {
		return nil, err
	}
	if !start {
		fmt.Fprintln(out, "Quiz cancelled.")
		return nil, nil
	}
	if state, err = engine.Send(ctx, session.Started()); err != nil {
		return nil, err
	}

	for state.Phase == session.PhasePlaying {
		printQuestion(out, engine.State())
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timedOut:
			fmt.Fprintln(out, "\nTime is up!")
			state = engine.State()
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out, "\nInput closed; submitting your answers.")
				state, err = submitFromAnywhere(ctx, engine, state)
				if err != nil {
					return nil, err
				}
				continue
			}
			var quit bool
			state, quit, err = handlePlayLine(ctx, engine, state, line, out)
			if err != nil {
				return nil, err
			}
			if quit {
				fmt.Fprintln(out, "Quiz abandoned.")
				return nil, nil
			}
		}
	}

	state = engine.State()
	printScore(out, state)
	state, err = selfGrade(ctx, engine, state, next, out)
	if err != nil {
		return nil, err
	}
	printBreakdown(out, state)
	printScore(out, state)
	return []session.State{state}, nil
}

// readLines forwards lines from in until EOF or ctx ends, then closes lines.
func readLines(ctx context.Context, in io.Reader, lines chan<- string) {
	defer close(lines)
	reader := bufio.NewReader(in)
	for {
		line, err := readLine(reader)
		if err == nil || line != "" {
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// handlePlayLine applies one line typed while Playing.
func handlePlayLine(ctx context.Context, engine *session.Engine, state session.State, line string, out io.Writer) (session.State, bool, error) {
	trimmed := strings.TrimSpace(line)
	var event session.Event
	switch strings.ToLower(trimmed) {
	case "":
		return state, false, nil
	case ":q", ":quit":
		return state, true, nil
	case ":h", ":help":
		fmt.Fprintln(out, plainHelp)
		return state, false, nil
	case ":n", ":next":
		event = session.Next()
	case ":p", ":prev":
		event = session.Previous()
	case ":s", ":submit":
		if !state.IsLast() {
			fmt.Fprintln(out, "Submit is available on the last question; use :n to move on.")
			return state, false, nil
		}
		event = session.Submitted()
	default:
		current, ok := state.Current()
		if !ok {
			return state, false, nil
		}
		value := trimmed
		if current.IsMCQ() {
			value = strings.ToLower(trimmed)
			if !current.HasOption(value) {
				fmt.Fprintf(out, "Unknown option %q; choose one of %s.\n", trimmed, optionLabels(current))
				return state, false, nil
			}
		}
		next, err := engine.Send(ctx, session.Answered(value))
		if err != nil {
			return state, false, err
		}
		if next.Phase != session.PhasePlaying {
			return next, false, nil
		}
		if next.IsLast() {
			fmt.Fprintln(out, "Answer saved. Type :s to submit.")
			return next, false, nil
		}
		event = session.Next()
	}
	next, err := engine.Send(ctx, event)
	return next, false, err
}

// submitFromAnywhere walks to the last question and submits.
func submitFromAnywhere(ctx context.Context, engine *session.Engine, state session.State) (session.State, error) {
	var err error
	for state.Phase == session.PhasePlaying && !state.IsLast() {
		if state, err = engine.Send(ctx, session.Next()); err != nil {
			return state, err
		}
	}
	if state.Phase != session.PhasePlaying {
		return state, nil
	}
	return engine.Send(ctx, session.Submitted())
}

// selfGrade asks for a verdict on each distinct subjective question id.
func selfGrade(ctx context.Context, engine *session.Engine, state session.State, next lineSource, out io.Writer) (session.State, error) {
	seen := map[int]bool{}
	for _, q := range state.Questions {
		if q.IsMCQ() || seen[q.ID] {
			continue
		}
		seen[q.ID] = true
		answer, answered := state.Answers[q.ID]
		if !answered {
			answer = "(no answer)"
		}
		fmt.Fprintf(out, "\nQ%d. %s\n  Your answer:  %s\n  Model answer: %s\n", q.ID, q.Text, answer, modelAnswer(q))
		correct, err := promptYesNo(next, out, "Mark as correct?", false)
		if err != nil {
			return state, err
		}
		if state, err = engine.Send(ctx, session.Graded(q.ID, correct)); err != nil {
			return state, err
		}
	}
	return state, nil
}

func printLoaded(out io.Writer, state session.State) {
	summary := question.Summarize(state.Questions)
	fmt.Fprintf(out, "Loaded %d questions (%d mcq, %d subjective).\n", summary.Total, summary.MCQ, summary.Subjective)
	for _, issue := range question.Lint(state.Questions) {
		fmt.Fprintf(out, "warning: %s\n", issue)
	}
	cfg := state.Config
	fmt.Fprintf(out, "MCQ: %ds, %d marks each. Subjective: %ds, %d marks each. Total time: %s\n",
		cfg.MCQTime, cfg.MCQMarks, cfg.SubjectiveTime, cfg.SubjectiveMarks, formatClock(cfg.TotalTime))
}

func printQuestion(out io.Writer, state session.State) {
	current, ok := state.Current()
	if !ok {
		return
	}
	fmt.Fprintf(out, "\n[%d/%d] %s left | answered %d\n", state.CurrentIndex+1, len(state.Questions), formatClock(state.TimeLeft), state.AnsweredCount())
	fmt.Fprintf(out, "Q%d. %s\n", current.ID, current.Text)
	answer, answered := state.Answers[current.ID]
	if current.IsMCQ() {
		for _, option := range current.Options {
			marker := " "
			if answered && option.Label == answer {
				marker = "*"
			}
			fmt.Fprintf(out, " %s %s) %s\n", marker, option.Label, option.Text)
		}
	} else if answered {
		fmt.Fprintf(out, "  Current answer: %s\n", answer)
	}
	fmt.Fprint(out, "> ")
}

func printScore(out io.Writer, state session.State) {
	result := scoring.Score(state.Questions, state.Config, state.Answers, state.SelfGrading)
	fmt.Fprintf(out, "\nScore: %d/%d (%d%%) | Correct: %d/%d\n",
		result.Score, result.MaxScore, scoring.Percentage(result), result.CorrectCount, len(state.Questions))
}

func printBreakdown(out io.Writer, state session.State) {
	fmt.Fprintln(out)
	for _, verdict := range scoring.Breakdown(state.Questions, state.Config, state.Answers, state.SelfGrading) {
		mark := "x"
		if verdict.Correct {
			mark = "ok"
		}
		answer := verdict.Answer
		if !verdict.Answered {
			answer = "-"
		}
		fmt.Fprintf(out, "  %-2s Q%d (%s) %d/%d  answer: %s\n", mark, verdict.QuestionID, verdict.Type, verdict.Points, verdict.MaxPoints, answer)
	}
}

func optionLabels(q question.Question) string {
	labels := make([]string, 0, len(q.Options))
	for _, option := range q.Options {
		labels = append(labels, option.Label)
	}
	return strings.Join(labels, ", ")
}

func modelAnswer(q question.Question) string {
	if q.ModelAnswer == "" {
		return "(none)"
	}
	return q.ModelAnswer
}

// formatClock renders seconds as mm:ss.
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
