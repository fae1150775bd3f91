// Package study holds the chat and summary flows, the chat transcript and
// the notes loader shared with the quiz.
package study

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// maxNotesBytes bounds how much text is read from a notes file.
const maxNotesBytes = 4 << 20

// LoadNotes reads notes from path. PDF files are converted to plain text;
// anything else must be UTF-8 text.
func LoadNotes(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return readPDF(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open notes: %w", err)
	}
	defer f.Close()
	return ReadNotes(f)
}

// ReadNotes reads UTF-8 notes from r.
func ReadNotes(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxNotesBytes+1))
	if err != nil {
		return "", fmt.Errorf("read notes: %w", err)
	}
	if len(data) > maxNotesBytes {
		return "", fmt.Errorf("notes exceed %d bytes", maxNotesBytes)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("notes are not valid UTF-8 text")
	}
	return string(data), nil
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	text, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(text, maxNotesBytes)); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}
