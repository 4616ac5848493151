package cli

import (
	"context"
	"os"
	"path/filepath"

	"quizdoc/internal/extract"
	"quizdoc/internal/session"
)

// loadDocument extracts the document at path into a single uploaded event.
// Failures to pick an extractor or open the file travel in the event too.
func loadDocument(ctx context.Context, path string) session.Event {
	source := filepath.Base(path)
	extractor, err := extract.ForPath(path)
	if err != nil {
		return session.Uploaded(source, "", err)
	}
	file, err := os.Open(path)
	if err != nil {
		return session.Uploaded(source, "", err)
	}
	defer file.Close()
	return session.ExtractEvent(ctx, extractor, source, file)
}
