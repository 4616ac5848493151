package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"quizdoc/internal/config"
	"quizdoc/internal/question"
	"quizdoc/internal/results"
	"quizdoc/internal/session"
)

// ledgerConfig defines the JSON config for generating a demo attempt ledger.
type ledgerConfig struct {
	Document string `json:"document"`
	Attempts int    `json:"attempts"`
	Seed     int64  `json:"seed"`
}

func main() {
	configPath := flag.String("config", "", "path to ledger config JSON")
	outPath := flag.String("out", "", "output duckdb file path")
	flag.Parse()
	if *configPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: demo-ledger --config <path> --out <duckdb file>")
		os.Exit(2)
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir output dir: %v\n", err)
		os.Exit(1)
	}
	if err := removeIfExists(*outPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	db, err := results.Open(ctx, *outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open ledger: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	ids, err := generateLedger(ctx, db, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate ledger: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Recorded %d attempts in %s\n", len(ids), *outPath)
}

func loadConfig(path string) (ledgerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ledgerConfig{}, err
	}
	var cfg ledgerConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return ledgerConfig{}, err
	}
	if cfg.Attempts <= 0 {
		return ledgerConfig{}, fmt.Errorf("attempts must be positive")
	}
	return cfg, nil
}

// generateLedger plays cfg.Attempts sessions with seeded random answers and
// records each finished session.
func generateLedger(ctx context.Context, db *sql.DB, cfg ledgerConfig) ([]string, error) {
	text := cfg.Document
	if text == "" {
		text = demoDocument
	}
	questions, err := question.Parse(text)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	ids := make([]string, 0, cfg.Attempts)
	for i := 0; i < cfg.Attempts; i++ {
		state := playRandom(session.New(config.Default()), text, questions, rng)
		attempt := results.AttemptFromState("demo.txt", state, start.Add(time.Duration(i)*time.Hour))
		id, err := results.RecordAttempt(ctx, db, attempt)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// playRandom runs one session through the reducer, answering and
// self-grading at random.
func playRandom(state session.State, text string, questions []question.Question, rng *rand.Rand) session.State {
	state = session.Reduce(state, session.Uploaded("demo.txt", text, nil))
	state = session.Reduce(state, session.Started())
	for i, q := range questions {
		if len(q.Options) > 0 && rng.Intn(4) > 0 {
			state = session.Reduce(state, session.Answered(q.Options[rng.Intn(len(q.Options))].Label))
		} else if !q.IsMCQ() {
			state = session.Reduce(state, session.Answered("demo answer"))
		}
		for tick := rng.Intn(q.ID + 5); tick > 0; tick-- {
			state = session.Reduce(state, session.Tick())
		}
		if i < len(questions)-1 {
			state = session.Reduce(state, session.Next())
		}
	}
	state = session.Reduce(state, session.Submitted())
	for _, q := range questions {
		if !q.IsMCQ() {
			state = session.Reduce(state, session.Graded(q.ID, rng.Intn(2) == 0))
		}
	}
	return state
}

// removeIfExists deletes an existing ledger so we always start fresh.
func removeIfExists(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove existing ledger: %w", err)
		}
		return nil
	}
	if os.IsNotExist(err) {
		return nil
	}
	return fmt.Errorf("stat ledger: %w", err)
}

const demoDocument = `1. Which planet is known as the red planet?
a) Venus
*b) Mars
c) Jupiter
2. What is the boiling point of water at sea level in Celsius?
a) 90
b) 95
*c) 100
3. Which gas do plants absorb from the air?
a) Oxygen
*b) Carbon dioxide
c) Nitrogen
4. Explain why the sky appears blue.
Answer: Air molecules scatter short blue wavelengths of sunlight more than longer red ones.
`
