package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const documentPart = "word/document.xml"

// maxDocumentBytes bounds the uncompressed main document part.
const maxDocumentBytes = 64 << 20

// Docx extracts paragraph text from a WordprocessingML package.
// Each paragraph becomes one line; tabs and breaks are preserved.
type Docx struct{}

// Extract reads the package and returns its body text.
func (Docx) Extract(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	for _, file := range archive.File {
		if file.Name != documentPart {
			continue
		}
		part, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open %s: %w", documentPart, err)
		}
		defer part.Close()
		return paragraphs(ctx, io.LimitReader(part, maxDocumentBytes))
	}
	return "", fmt.Errorf("docx: missing %s", documentPart)
}

// paragraphs walks the document XML collecting w:t runs per w:p.
func paragraphs(ctx context.Context, r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var (
		out       strings.Builder
		paragraph strings.Builder
		inRun     bool
		inText    bool
	)
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", documentPart, err)
		}
		switch typed := token.(type) {
		case xml.StartElement:
			switch typed.Name.Local {
			case "r":
				inRun = true
			case "t":
				inText = inRun
			case "tab":
				if inRun {
					paragraph.WriteByte('\t')
				}
			case "br", "cr":
				out.WriteString(paragraph.String())
				out.WriteByte('\n')
				paragraph.Reset()
			}
		case xml.EndElement:
			switch typed.Name.Local {
			case "r":
				inRun = false
			case "t":
				inText = false
			case "p":
				out.WriteString(paragraph.String())
				out.WriteByte('\n')
				paragraph.Reset()
			}
		case xml.CharData:
			if inText {
				paragraph.Write(typed)
			}
		}
	}
	if paragraph.Len() > 0 {
		out.WriteString(paragraph.String())
	}
	return out.String(), nil
}
