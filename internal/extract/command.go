package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Command converts documents by running an external converter that reads a
// file path and writes plain text to stdout (pandoc by default).
type Command struct {
	Binary  string
	Args    []string
	Timeout time.Duration
	// Ext is the suffix of the spooled temp file; converters infer the
	// input format from it.
	Ext string
	// lookPath is a test seam for binary discovery.
	lookPath func(string) (string, error)
}

// NewCommand returns a pandoc-backed converter.
func NewCommand() *Command {
	return &Command{
		Binary:  "pandoc",
		Args:    []string{"--to", "plain", "--wrap", "none"},
		Timeout: 30 * time.Second,
		Ext:     ".doc",
	}
}

// Extract spools r to a temp file and converts it.
func (c *Command) Extract(ctx context.Context, r io.Reader) (string, error) {
	ext := c.Ext
	if ext == "" {
		ext = ".doc"
	}
	f, err := os.CreateTemp("", "quizdoc-*"+ext)
	if err != nil {
		return "", err
	}
	defer func() { f.Close(); os.Remove(f.Name()) }()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return c.ExtractPath(ctx, f.Name())
}

// ExtractPath converts the document at path.
func (c *Command) ExtractPath(ctx context.Context, path string) (string, error) {
	lookPath := c.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	binary, err := lookPath(c.Binary)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", c.Binary, ErrUnavailable)
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	args := append(append([]string{}, c.Args...), path)
	cmd := exec.CommandContext(ctx, binary, args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		message := strings.TrimSpace(stderr.String())
		if message == "" {
			return "", err
		}
		return "", errors.New(message)
	}
	return out.String(), nil
}
