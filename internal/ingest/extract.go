package ingest

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// supportedExtension reports whether a path names a file type the ingester
// can extract text from.
func supportedExtension(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".pdf":
		return true
	}
	return false
}

// extractText turns file contents into plain text. Text and Markdown files
// pass through as-is; PDFs go through the pdf reader.
func extractText(path string, data []byte) (string, error) {
	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		return string(data), nil
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("ingest: open pdf %s: %w", path, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("ingest: extract pdf text %s: %w", path, err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", fmt.Errorf("ingest: read pdf text %s: %w", path, err)
	}
	return sb.String(), nil
}
