package ffmpeg

import (
	"context"
	"fmt"
	"strconv"

	"media-transcribe/domain/media"
	"media-transcribe/infrastructure/command"
)

// Extractor implements media.AudioExtractor using ffmpeg
type Extractor struct {
	ffmpegPath string
	runner     command.Runner
}

// ExtractorOption is a functional option for configuring Extractor
type ExtractorOption func(*Extractor)

// WithExtractorFFmpegPath sets a custom ffmpeg executable path
func WithExtractorFFmpegPath(path string) ExtractorOption {
	return func(e *Extractor) {
		if path != "" {
			e.ffmpegPath = path
		}
	}
}

// WithExtractorCommandRunner sets a custom command runner (for testing)
func WithExtractorCommandRunner(runner command.Runner) ExtractorOption {
	return func(e *Extractor) {
		e.runner = runner
	}
}

// NewExtractor creates a new FFmpeg-based audio extractor
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		ffmpegPath: "ffmpeg",
		runner:     command.NewExecRunner(nil),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Extract implements media.AudioExtractor
func (e *Extractor) Extract(ctx context.Context, req *media.ExtractionRequest) error {
	if err := e.runner.Run(ctx, e.ffmpegPath, ExtractArgs(req)...); err != nil {
		return fmt.Errorf("ffmpeg audio extraction failed: %w", err)
	}
	return nil
}

// ExtractArgs builds the ffmpeg arguments for a mono PCM WAV of the first audio stream
func ExtractArgs(req *media.ExtractionRequest) []string {
	return []string{
		"-hide_banner",
		"-nostdin",
		"-y", // Overwrite output file if it exists
		"-i", req.SourcePath,
		"-vn",           // No video
		"-map", "0:a:0", // Fail when there is no audio stream
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(req.SampleRate),
		"-ac", strconv.Itoa(req.Channels),
		req.OutputPath,
	}
}

// VerifyInstalled checks that ffmpeg is available
func (e *Extractor) VerifyInstalled(ctx context.Context) error {
	_, err := e.runner.Output(ctx, e.ffmpegPath, "-version")
	if err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	return nil
}

// Ensure Extractor implements media.AudioExtractor
var _ media.AudioExtractor = (*Extractor)(nil)
var _ media.ToolVerifier = (*Extractor)(nil)
