package whisper

import (
	"fmt"
	"os"
	"strings"
)

// workspace is a temporary directory holding recognizer output for one run
type workspace struct {
	dir       string
	removeAll func(path string) error
}

func newWorkspace(mkdirTemp func(dir, pattern string) (string, error), removeAll func(string) error) (*workspace, error) {
	dir, err := mkdirTemp("", "media-transcribe-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary workspace: %w", err)
	}
	return &workspace{dir: dir, removeAll: removeAll}, nil
}

func (w *workspace) Close() error {
	return w.removeAll(w.dir)
}

// readTranscript reads a recognizer text file and trims surrounding whitespace
func readTranscript(readFile func(string) ([]byte, error), path string) (string, error) {
	data, err := readFile(path)
	if err != nil {
		return "", fmt.Errorf("recognizer finished but transcript file is missing: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// fsOps groups the filesystem calls the transcribers make, so tests can swap them
type fsOps struct {
	mkdirTemp func(dir, pattern string) (string, error)
	removeAll func(path string) error
	readFile  func(name string) ([]byte, error)
	stat      func(name string) (os.FileInfo, error)
}

func defaultFS() fsOps {
	return fsOps{
		mkdirTemp: os.MkdirTemp,
		removeAll: os.RemoveAll,
		readFile:  os.ReadFile,
		stat:      os.Stat,
	}
}
