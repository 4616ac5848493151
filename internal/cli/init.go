package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"quizdoc/internal/config"
)

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to write (default: ./"+config.FileName+")")
		useDefaults := flags.Bool("defaults", false, "Write the default settings without prompting for them")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		in := initInput
		if in == nil {
			in = os.Stdin
		}
		next := readerLines(bufio.NewReader(in))

		target := strings.TrimSpace(*configPath)
		if target == "" {
			wd, err := os.Getwd()
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			target = filepath.Join(wd, config.FileName)
		}
		target, err := filepath.Abs(target)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		configDir := filepath.Dir(target)

		if info, err := os.Stat(target); err == nil {
			if info.IsDir() {
				fmt.Fprintf(stderr, "Init failed: config path %q is a directory\n", target)
				return ExitError
			}
			fmt.Fprintf(stderr, "Init failed: config file already exists at %q\n", target)
			return ExitError
		} else if !os.IsNotExist(err) {
			fmt.Fprintf(stderr, "Init failed: stat config file: %v\n", err)
			return ExitError
		}

		confirm, err := promptYesNo(next, stdout, fmt.Sprintf("Create %s in %s?", config.FileName, configDir), true)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		if !confirm {
			fmt.Fprintln(stderr, "Init cancelled.")
			return ExitError
		}

		cfg := config.Default()
		if !*useDefaults {
			cfg, err = promptQuizSettings(next, stdout, cfg)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
		}

		addGitignore := false
		repoRoot := findRepoRoot(configDir)
		if repoRoot != "" {
			answer, err := promptYesNo(next, stdout, fmt.Sprintf("Add %s to .gitignore?", defaultResultsDB), true)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			addGitignore = answer
		}

		if err := config.ScaffoldWith(target, cfg); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", target)

		if addGitignore {
			updated, err := addGitignoreEntry(repoRoot, filepath.Join(configDir, defaultResultsDB))
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: update .gitignore: %v\n", err)
				return ExitError
			}
			if updated {
				fmt.Fprintf(stdout, "Updated %s\n", filepath.Join(repoRoot, ".gitignore"))
			}
		}
		return ExitOK
	}
}

// promptQuizSettings asks for each per-type setting, offering cfg's values.
func promptQuizSettings(next lineSource, out io.Writer, cfg config.Quiz) (config.Quiz, error) {
	fields := []struct {
		label  string
		target *int
	}{
		{label: "Seconds per multiple-choice question", target: &cfg.MCQTime},
		{label: "Marks per multiple-choice question", target: &cfg.MCQMarks},
		{label: "Seconds per subjective question", target: &cfg.SubjectiveTime},
		{label: "Marks per subjective question", target: &cfg.SubjectiveMarks},
	}
	for _, field := range fields {
		value, err := promptInt(next, out, field.label, *field.target)
		if err != nil {
			return config.Quiz{}, err
		}
		*field.target = value
	}
	return cfg, nil
}

// initInput allows tests to override stdin for init prompts.
var initInput io.Reader = os.Stdin
