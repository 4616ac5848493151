package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"quizdoc/internal/config"
	"quizdoc/internal/session"
)

func TestSessionLoggerReportsTransitions(t *testing.T) {
	var buf bytes.Buffer
	observe := sessionLogger(true, &buf, true)

	initial := session.New(config.Quiz{MCQTime: 10, MCQMarks: 2, SubjectiveTime: 20, SubjectiveMarks: 5})
	uploaded := session.Reduce(initial, session.Uploaded("quiz.txt", sampleDocument, nil))
	observe(session.Uploaded("quiz.txt", sampleDocument, nil), initial, uploaded)
	playing := session.Reduce(uploaded, session.Started())
	observe(session.Started(), uploaded, playing)
	ticked := session.Reduce(playing, session.Tick())
	observe(session.Tick(), playing, ticked)
	answered := session.Reduce(ticked, session.Answered("b"))
	observe(session.Answered("b"), ticked, answered)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected ticks to be skipped, got %q", buf.String())
	}
	if lines[0] != "[verbose] event=uploaded phase=upload->configure questions=2 total_time=30" {
		t.Fatalf("unexpected upload line %q", lines[0])
	}
	if lines[2] != "[verbose] event=answered phase=playing index=0 answered=1 time_left=29" {
		t.Fatalf("unexpected answer line %q", lines[2])
	}
}

func TestSessionLoggerReportsErrors(t *testing.T) {
	var buf bytes.Buffer
	observe := sessionLogger(true, &buf, true)
	initial := session.New(config.Default())
	event := session.Uploaded("quiz.doc", "", errors.New("pandoc not found"))
	observe(event, initial, session.Reduce(initial, event))
	if !strings.Contains(buf.String(), "error=extraction failed for quiz.doc: pandoc not found") {
		t.Fatalf("expected error line, got %q", buf.String())
	}
}

func TestLogVerboseDisabled(t *testing.T) {
	var buf bytes.Buffer
	logVerbose(false, &buf, true, styleDefault, "hidden")
	sessionLogger(false, &buf, true)(session.Reset(), session.State{}, session.State{})
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestPaletteStylesOnlyTerminals(t *testing.T) {
	var buf bytes.Buffer
	if paletteFor(&buf, false).enabled {
		t.Fatalf("expected buffers to be unstyled")
	}
	palette := verbosePalette{enabled: true}
	if got := palette.apply(styleError, "boom"); got != ansiBold+ansiRed+"boom"+ansiReset {
		t.Fatalf("unexpected styled text %q", got)
	}
}
