package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"quizdoc/internal/results"
	"quizdoc/internal/session"
	"quizdoc/internal/testutil"
	"quizdoc/internal/ui/play"
)

// playFixture writes a config and document and pins the play seams.
type playFixture struct {
	dir        string
	configPath string
	docPath    string
}

func newPlayFixture(t *testing.T, input io.Reader) playFixture {
	t.Helper()
	isolateEnv(t, nil)
	dir := t.TempDir()
	fixture := playFixture{
		dir:        dir,
		configPath: writeFile(t, dir, "quizdoc.yml", sampleConfig),
		docPath:    writeFile(t, dir, "quiz.txt", sampleDocument),
	}

	origInput, origTerminal, origNow := playInput, isTerminal, now
	playInput = input
	isTerminal = func(any) bool { return false }
	clock := testutil.NewFakeClock(time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC))
	now = clock.Now
	t.Cleanup(func() {
		playInput, isTerminal, now = origInput, origTerminal, origNow
	})
	return fixture
}

func (f playFixture) args(extra ...string) []string {
	args := []string{"play", "--config", f.configPath}
	args = append(args, extra...)
	return append(args, f.docPath)
}

func TestPlayLineModeRecordsAttempt(t *testing.T) {
	fixture := newPlayFixture(t, strings.NewReader("y\nB\nPull things together.\n:s\ny\n"))
	dbPath := filepath.Join(fixture.dir, "attempts.duckdb")
	reportPath := filepath.Join(fixture.dir, "report.html")

	var out, err bytes.Buffer
	code := Run(fixture.args("--results-db", dbPath, "--html-report", reportPath), &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, err.String())
	}
	output := out.String()
	for _, snippet := range []string{
		"Loaded 2 questions (1 mcq, 1 subjective).",
		"Total time: 00:30",
		"Answer saved. Type :s to submit.",
		"Model answer: A force that attracts masses.",
		"Score: 7/7 (100%) | Correct: 2/2",
		"Recorded 1 attempt(s) in " + dbPath,
		"Report: " + reportPath,
	} {
		if !strings.Contains(output, snippet) {
			t.Fatalf("expected %q in output, got %q", snippet, output)
		}
	}

	ctx := testutil.Context(t, 5*time.Second)
	db, openErr := results.Open(ctx, dbPath)
	if openErr != nil {
		t.Fatalf("open ledger: %v", openErr)
	}
	defer db.Close()
	summaries, listErr := results.ListAttempts(ctx, db, 10)
	if listErr != nil {
		t.Fatalf("list attempts: %v", listErr)
	}
	if len(summaries) != 1 || summaries[0].Score != 7 || summaries[0].Source != "quiz.txt" {
		t.Fatalf("unexpected summaries %+v", summaries)
	}
	html, readErr := os.ReadFile(reportPath)
	if readErr != nil {
		t.Fatalf("read report: %v", readErr)
	}
	if !strings.Contains(string(html), "Score <strong>7 / 7</strong>") {
		t.Fatalf("unexpected report body %q", string(html))
	}
}

func TestPlayLineModeRejectsUnknownOption(t *testing.T) {
	fixture := newPlayFixture(t, strings.NewReader("y\nz\n:s\n:n\n:p\n:n\n:s\n\n"))

	var out, err bytes.Buffer
	if code := Run(fixture.args("--results-db", ""), &out, &err); code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, err.String())
	}
	output := out.String()
	if !strings.Contains(output, `Unknown option "z"; choose one of a, b, c.`) {
		t.Fatalf("expected unknown option message, got %q", output)
	}
	if !strings.Contains(output, "Submit is available on the last question") {
		t.Fatalf("expected submit guard, got %q", output)
	}
	if !strings.Contains(output, "Score: 0/7 (0%)") {
		t.Fatalf("expected empty score, got %q", output)
	}
	if strings.Contains(output, "Recorded") {
		t.Fatalf("expected recording to be skipped, got %q", output)
	}
}

func TestPlayLineModeQuit(t *testing.T) {
	fixture := newPlayFixture(t, strings.NewReader("y\n:q\n"))
	dbPath := filepath.Join(fixture.dir, "attempts.duckdb")

	var out, err bytes.Buffer
	if code := Run(fixture.args("--results-db", dbPath), &out, &err); code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, err.String())
	}
	if !strings.Contains(out.String(), "Quiz abandoned.") {
		t.Fatalf("expected abandon message, got %q", out.String())
	}
	if _, statErr := os.Stat(dbPath); !os.IsNotExist(statErr) {
		t.Fatalf("expected no ledger for an abandoned quiz, got %v", statErr)
	}
}

func TestPlayLineModeTimeout(t *testing.T) {
	reader, writer := io.Pipe()
	fixture := newPlayFixture(t, reader)
	ticks := testutil.NewManualTicker()
	origTicks := playTickSource
	playTickSource = ticks.Factory
	t.Cleanup(func() { playTickSource = origTicks })

	var out, err syncBuffer
	done := make(chan int, 1)
	go func() {
		done <- Run(fixture.args("--results-db", "", "--verbose", "--no-color"), &out, &err)
	}()

	if _, writeErr := io.WriteString(writer, "y\n"); writeErr != nil {
		t.Fatalf("write start: %v", writeErr)
	}
	testutil.Eventually(t, 2*time.Second, 5*time.Millisecond, func() bool {
		return ticks.Started() == 1
	}, "expected the countdown to start")
	ticks.Fire(30)
	testutil.Eventually(t, 2*time.Second, 5*time.Millisecond, func() bool {
		return strings.Contains(out.String(), "Mark as correct?")
	}, "expected the timer to end the quiz")
	if _, writeErr := io.WriteString(writer, "n\n"); writeErr != nil {
		t.Fatalf("write grade: %v", writeErr)
	}
	writer.Close()

	select {
	case code := <-done:
		if code != ExitOK {
			t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, err.String())
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for play to finish")
	}
	if !strings.Contains(out.String(), "Time is up!") || !strings.Contains(out.String(), "Score: 0/7") {
		t.Fatalf("expected timeout result, got %q", out.String())
	}
	if !strings.Contains(err.String(), "event=tick phase=playing->result") {
		t.Fatalf("expected verbose timeout transition, got %q", err.String())
	}
}

func TestPlayReportsEmptyDocument(t *testing.T) {
	fixture := newPlayFixture(t, strings.NewReader(""))
	docPath := writeFile(t, fixture.dir, "notes.txt", "no numbered questions here\n")

	var out, err bytes.Buffer
	code := Run([]string{"play", "--config", fixture.configPath, docPath}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), "no questions found") {
		t.Fatalf("expected empty parse error, got %q", err.String())
	}
}

func TestPlayUsesLiveUIOnTerminal(t *testing.T) {
	fixture := newPlayFixture(t, strings.NewReader(""))
	isTerminal = func(any) bool { return true }
	var got play.Options
	var event session.Event
	origLive := runLive
	runLive = func(_ context.Context, _ io.Reader, _ io.Writer, opts play.Options) (play.Model, error) {
		got = opts
		event = opts.Load()
		return play.NewModel(opts), nil
	}
	t.Cleanup(func() { runLive = origLive })

	var out, err bytes.Buffer
	if code := Run(fixture.args(), &out, &err); code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, err.String())
	}
	if got.Source != "quiz.txt" || got.Config.SubjectiveMarks != 5 {
		t.Fatalf("unexpected options %+v", got)
	}
	if event.Kind != session.EventUploaded || event.Err != nil || event.Text != sampleDocument {
		t.Fatalf("unexpected load event %+v", event)
	}
}

func TestPlayRejectsBadUIMode(t *testing.T) {
	fixture := newPlayFixture(t, strings.NewReader(""))
	var out, err bytes.Buffer
	if code := Run(fixture.args("--ui", "fancy"), &out, &err); code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(err.String(), "invalid ui mode") {
		t.Fatalf("expected ui mode error, got %q", err.String())
	}
}
