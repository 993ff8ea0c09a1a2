package media

import "context"

// FileChecker defines the interface for checking files on disk
type FileChecker interface {
	// Exists returns true if the file exists
	Exists(path string) bool

	// Size returns the file size in bytes, or 0 if it cannot be read
	Size(path string) int64
}

// FileRemover deletes files created during a run
type FileRemover interface {
	Remove(path string) error
}

// AudioExtractor defines the interface for audio extraction operations
// This is a port that can be implemented by different infrastructure adapters
type AudioExtractor interface {
	// Extract writes the audio track described by req to req.OutputPath
	Extract(ctx context.Context, req *ExtractionRequest) error
}

// AudioProber inspects a container before extraction
type AudioProber interface {
	// HasAudio returns true if the container opens and has at least one audio stream
	HasAudio(ctx context.Context, path string) (bool, error)
}

// ToolVerifier is implemented by extractors that depend on an external executable
type ToolVerifier interface {
	// VerifyInstalled returns an error if the executable cannot be run
	VerifyInstalled(ctx context.Context) error
}
