package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"quizdoc/internal/session"
)

const verbosePrefix = "[verbose]"

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiDim   = "\x1b[2m"
	ansiGray  = "\x1b[90m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiBlue  = "\x1b[34m"
)

type verboseStyle int

const (
	styleDefault verboseStyle = iota
	stylePhase
	styleScore
	styleError
)

func logVerbose(enabled bool, writer io.Writer, noColor bool, style verboseStyle, format string, args ...any) {
	if !enabled || writer == nil {
		return
	}
	palette := paletteFor(writer, noColor)
	line := fmt.Sprintf(format, args...)
	fmt.Fprintf(writer, "%s %s\n", palette.prefix(verbosePrefix), palette.apply(style, line))
}

// sessionLogger reports every session transition except ticks that stay in
// the same phase, which would flood the log once a second.
func sessionLogger(enabled bool, writer io.Writer, noColor bool) session.Observer {
	return func(event session.Event, before, after session.State) {
		if !enabled {
			return
		}
		switch {
		case after.Err != nil && after.Err != before.Err:
			logVerbose(enabled, writer, noColor, styleError, "event=%s phase=%s error=%v", event.Kind, after.Phase, after.Err)
		case before.Phase != after.Phase:
			logVerbose(enabled, writer, noColor, stylePhase, "event=%s phase=%s->%s %s", event.Kind, before.Phase, after.Phase, describeState(after))
		case event.Kind != session.EventTick:
			logVerbose(enabled, writer, noColor, styleDefault, "event=%s phase=%s %s", event.Kind, after.Phase, describeState(after))
		}
	}
}

// describeState renders the fields that matter in the current phase.
func describeState(state session.State) string {
	switch state.Phase {
	case session.PhaseConfigure:
		return fmt.Sprintf("questions=%d total_time=%d", len(state.Questions), state.Config.TotalTime)
	case session.PhasePlaying:
		return fmt.Sprintf("index=%d answered=%d time_left=%d", state.CurrentIndex, state.AnsweredCount(), state.TimeLeft)
	case session.PhaseResult:
		return fmt.Sprintf("answered=%d graded=%d time_left=%d", state.AnsweredCount(), len(state.SelfGrading), state.TimeLeft)
	default:
		return ""
	}
}

type verbosePalette struct {
	enabled bool
}

func paletteFor(writer io.Writer, noColor bool) verbosePalette {
	if noColor {
		return verbosePalette{enabled: false}
	}
	return verbosePalette{enabled: shouldUseStyling(writer)}
}

func shouldUseStyling(writer io.Writer) bool {
	if writer == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	if locked, ok := writer.(*lockedWriter); ok {
		writer = locked.w
	}
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func (p verbosePalette) prefix(text string) string {
	if !p.enabled {
		return text
	}
	return ansiDim + ansiGray + text + ansiReset
}

func (p verbosePalette) apply(style verboseStyle, text string) string {
	if !p.enabled {
		return text
	}
	switch style {
	case stylePhase:
		return ansiBold + ansiBlue + text + ansiReset
	case styleScore:
		return ansiBold + ansiGreen + text + ansiReset
	case styleError:
		return ansiBold + ansiRed + text + ansiReset
	default:
		return text
	}
}
