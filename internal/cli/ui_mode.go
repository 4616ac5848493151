package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// uiModeDecision captures whether to run the full-screen quiz UI.
type uiModeDecision struct {
	useLive bool
	warning string
}

// isTerminal reports whether a stream is a TTY.
var isTerminal = defaultIsTerminal

// resolveUIMode determines whether to enable the full-screen UI. The UI
// needs a terminal on both ends; otherwise the quiz runs line by line.
func resolveUIMode(mode string, verbose bool, stdin io.Reader, stdout io.Writer) (uiModeDecision, error) {
	normalized := strings.ToLower(strings.TrimSpace(mode))
	if normalized == "" {
		normalized = "auto"
	}
	interactive := isTerminal(stdin) && isTerminal(stdout)
	switch normalized {
	case "auto":
		return uiModeDecision{useLive: interactive && !verbose}, nil
	case "live":
		if verbose {
			return uiModeDecision{
				useLive: false,
				warning: "Verbose logging writes to the terminal; using line mode instead of the live UI.",
			}, nil
		}
		if interactive {
			return uiModeDecision{useLive: true}, nil
		}
		return uiModeDecision{
			useLive: false,
			warning: "Live UI requested but stdin/stdout is not a TTY; falling back to line mode.",
		}, nil
	case "plain":
		return uiModeDecision{useLive: false}, nil
	default:
		return uiModeDecision{}, fmt.Errorf("invalid ui mode %q (expected auto|live|plain)", mode)
	}
}

// defaultIsTerminal inspects a stream for TTY support.
func defaultIsTerminal(stream any) bool {
	if stream == nil {
		return false
	}
	if file, ok := stream.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := stream.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
