package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrUnavailable indicates the extraction backend is not ready to use.
var ErrUnavailable = errors.New("extractor unavailable")

// Extractor turns document bytes into newline-delimited UTF-8 text.
type Extractor interface {
	Extract(ctx context.Context, r io.Reader) (string, error)
}

// Func adapts a function to the Extractor interface.
type Func func(ctx context.Context, r io.Reader) (string, error)

// Extract calls fn.
func (fn Func) Extract(ctx context.Context, r io.Reader) (string, error) {
	return fn(ctx, r)
}

// PlainText passes UTF-8 text through unchanged.
type PlainText struct{}

// Extract reads the whole reader and rejects non UTF-8 content.
func (PlainText) Extract(ctx context.Context, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	if !utf8.Valid(data) {
		return "", errors.New("document is not valid UTF-8 text")
	}
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}

// ForPath picks an extractor by file extension.
func ForPath(path string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".text", ".md", "":
		return PlainText{}, nil
	case ".docx":
		return Docx{}, nil
	case ".doc", ".odt", ".rtf":
		cmd := NewCommand()
		cmd.Ext = ext
		return cmd, nil
	default:
		return nil, fmt.Errorf("unsupported document type %q", filepath.Ext(path))
	}
}
