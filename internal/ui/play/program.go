package play

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the quiz UI on stdin/stdout and blocks until the user quits.
// It returns the final model so callers can read the finished attempts.
func Run(ctx context.Context, stdin io.Reader, stdout io.Writer, opts Options) (Model, error) {
	if stdout == nil {
		stdout = os.Stdout
	}
	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(stdout),
		tea.WithAltScreen(),
	}
	if stdin != nil {
		programOpts = append(programOpts, tea.WithInput(stdin))
	}
	program := tea.NewProgram(NewModel(opts), programOpts...)
	final, err := program.Run()
	model, ok := final.(Model)
	if !ok {
		if err != nil {
			return NewModel(opts), fmt.Errorf("run quiz ui: %w", err)
		}
		return NewModel(opts), fmt.Errorf("unexpected model %T", final)
	}
	if err != nil {
		return model, fmt.Errorf("run quiz ui: %w", err)
	}
	return model, nil
}
