package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"quizdoc/internal/report"
	"quizdoc/internal/results"
	"quizdoc/internal/session"
	"quizdoc/internal/ui/play"
)

// defaultResultsDB is the attempt ledger written next to the working directory.
const defaultResultsDB = "quizdoc.duckdb"

var (
	// playInput allows tests to override stdin for line mode.
	playInput io.Reader = os.Stdin
	// runLive is a test seam for the full-screen UI.
	runLive = play.Run
	// playTickSource overrides the countdown ticker in line mode.
	playTickSource session.TickSource
	// now stamps recorded attempts.
	now = time.Now
)

// runPlay builds the handler for the play command.
func runPlay(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for quizdoc.yml)")
		uiMode := fs.String("ui", "auto", "UI mode (auto|live|plain)")
		verbose := fs.Bool("verbose", false, "Log session transitions to stderr")
		noColor := fs.Bool("no-color", false, "Disable colors")
		resultsDB := fs.String("results-db", defaultResultsDB, "DuckDB file to record attempts in (empty to skip)")
		htmlReport := fs.String("html-report", "", "Write an HTML report of the last attempt to this path")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(stderr, "Expected exactly one <document>")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		docPath := fs.Arg(0)

		cfg, cfgPath, err := loadQuizConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		decision, err := resolveUIMode(*uiMode, *verbose, playInput, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var attempts []session.State
		if decision.useLive {
			model, err := runLive(ctx, playInput, stdout, play.Options{
				Source:  filepath.Base(docPath),
				Load:    func() session.Event { return loadDocument(ctx, docPath) },
				Config:  cfg,
				NoColor: *noColor,
			})
			if err != nil {
				fmt.Fprintf(stderr, "Quiz failed: %v\n", err)
				return ExitError
			}
			attempts = model.Attempts()
		} else {
			stdout, stderr = wrapPlayWriters(stdout, stderr)
			if cfgPath == "" {
				logVerbose(*verbose, stderr, *noColor, styleDefault, "config=defaults")
			} else {
				logVerbose(*verbose, stderr, *noColor, styleDefault, "config=%s", cfgPath)
			}
			attempts, err = runPlain(ctx, playInput, stdout, plainOptions{
				Path:       docPath,
				Config:     cfg,
				Observe:    sessionLogger(*verbose, stderr, *noColor),
				TickSource: playTickSource,
			})
			if err != nil {
				fmt.Fprintf(stderr, "Quiz failed: %v\n", err)
				return ExitError
			}
		}
		if len(attempts) == 0 {
			return ExitOK
		}

		source := filepath.Base(docPath)
		if *resultsDB != "" {
			ids, err := recordAttempts(ctx, *resultsDB, source, attempts)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to record attempt: %v\n", err)
				return ExitError
			}
			for _, id := range ids {
				logVerbose(*verbose, stderr, *noColor, styleScore, "recorded attempt=%s db=%s", id, *resultsDB)
			}
			fmt.Fprintf(stdout, "Recorded %d attempt(s) in %s\n", len(ids), *resultsDB)
		}
		if *htmlReport != "" {
			last := results.AttemptFromState(source, attempts[len(attempts)-1], now())
			if err := report.WriteAttemptHTML(ctx, *htmlReport, last); err != nil {
				fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stdout, "Report: %s\n", *htmlReport)
		}
		return ExitOK
	}
}

// recordAttempts appends every finished session to the ledger at dbPath.
func recordAttempts(ctx context.Context, dbPath, source string, attempts []session.State) ([]string, error) {
	db, err := results.Open(ctx, dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	ids := make([]string, 0, len(attempts))
	for _, state := range attempts {
		id, err := results.RecordAttempt(ctx, db, results.AttemptFromState(source, state, now()))
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
