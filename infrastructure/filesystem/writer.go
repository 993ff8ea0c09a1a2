package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"media-transcribe/domain/transcript"
)

// TranscriptWriter implements transcript.Writer, storing text as UTF-8
type TranscriptWriter struct{}

// NewTranscriptWriter creates a new transcript writer
func NewTranscriptWriter() *TranscriptWriter {
	return &TranscriptWriter{}
}

// Write stores text at path, creating the parent directory and replacing any existing file.
// Invalid UTF-8 sequences are replaced with U+FFFD.
func (w *TranscriptWriter) Write(path, text string) error {
	if path == "" {
		return fmt.Errorf("output path is required")
	}

	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}

	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}
	return nil
}

// EnsureDir creates dir and its parents if they do not exist
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

// Ensure TranscriptWriter implements transcript.Writer
var _ transcript.Writer = (*TranscriptWriter)(nil)
