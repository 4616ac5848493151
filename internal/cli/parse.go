package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"quizdoc/internal/question"
)

// runParse builds the handler for the parse command.
func runParse(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		format := fs.String("format", "yaml", "Output format (yaml|json)")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(stderr, "Expected exactly one <document>")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		switch *format {
		case "yaml", "yml", "json":
		default:
			fmt.Fprintf(stderr, "invalid format %q (expected yaml|json)\n", *format)
			return ExitUsage
		}

		event := loadDocument(context.Background(), fs.Arg(0))
		if event.Err != nil {
			fmt.Fprintf(stderr, "Extraction failed: %v\n", event.Err)
			return ExitError
		}
		questions, err := question.Parse(event.Text)
		if err != nil {
			fmt.Fprintf(stderr, "Parse failed: %v\n", err)
			return ExitError
		}
		for _, issue := range question.Lint(questions) {
			fmt.Fprintf(stderr, "warning: %s\n", issue)
		}
		summary := question.Summarize(questions)
		fmt.Fprintf(stderr, "Found %d questions (%d mcq, %d subjective)\n", summary.Total, summary.MCQ, summary.Subjective)

		if err := question.Encode(stdout, questions, *format); err != nil {
			fmt.Fprintf(stderr, "Encode failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
