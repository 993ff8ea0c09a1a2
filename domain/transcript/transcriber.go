package transcript

import "context"

// Request describes one recognition run over a whole audio file
type Request struct {
	AudioPath string
	Model     ModelTier
	Language  Language

	// FP16 enables half-precision inference. It stays off for CPU-only runs.
	FP16 bool
}

// Transcript is the recognized text for the entire file
type Transcript struct {
	Text string
}

// Transcriber defines the interface for speech recognition backends
// This is a port that can be implemented by different infrastructure adapters
type Transcriber interface {
	// Transcribe runs the model over req.AudioPath and returns the full text
	Transcribe(ctx context.Context, req Request) (Transcript, error)
}

// Writer persists a transcript
type Writer interface {
	// Write stores text at path, replacing any existing file
	Write(path, text string) error
}
