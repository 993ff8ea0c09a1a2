package media

import (
	"fmt"
	"path/filepath"
)

const (
	// DefaultScratchPath is where extracted audio is written when no path is given
	DefaultScratchPath = "extracted_audio_for_whisper.wav"

	// DefaultSampleRate is the rate speech recognizers expect
	DefaultSampleRate = 16000

	// DefaultChannels is mono
	DefaultChannels = 1
)

// ExtractionRequest represents a request to write a container's audio track as PCM WAV
type ExtractionRequest struct {
	SourcePath string
	OutputPath string
	SampleRate int
	Channels   int
}

// NewExtractionRequest creates a new ExtractionRequest with validation
func NewExtractionRequest(sourcePath, outputPath string) (*ExtractionRequest, error) {
	if sourcePath == "" {
		return nil, fmt.Errorf("source path is required")
	}
	if outputPath == "" {
		outputPath = DefaultScratchPath
	}
	if filepath.Clean(sourcePath) == filepath.Clean(outputPath) {
		return nil, fmt.Errorf("scratch path %s must differ from the input", outputPath)
	}
	if Extension(outputPath) != ".wav" {
		return nil, fmt.Errorf("scratch path %s must end in .wav", outputPath)
	}

	return &ExtractionRequest{
		SourcePath: sourcePath,
		OutputPath: outputPath,
		SampleRate: DefaultSampleRate,
		Channels:   DefaultChannels,
	}, nil
}

// ResolvedAudio is the working audio file handed to the recognizer
type ResolvedAudio struct {
	Path string

	// Scratch is true when Path was created by extraction and must be cleaned up
	Scratch bool
}
