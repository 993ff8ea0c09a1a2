package transcription

import (
	"context"
	"fmt"
	"unicode/utf8"

	"media-transcribe/domain/media"
	"media-transcribe/domain/transcript"

	"go.uber.org/zap"
)

// Job describes one transcription of a working audio file
type Job struct {
	AudioPath  string
	OutputPath string
	Model      transcript.ModelTier
	Language   transcript.Language
	FP16       bool
}

// Result contains the outcome of a successful transcription
type Result struct {
	OutputPath string
	Characters int
}

// Service runs the recognizer and persists its transcript
type Service struct {
	transcriber transcript.Transcriber
	writer      transcript.Writer
	logger      *zap.Logger
}

// NewService creates a new transcription service
func NewService(transcriber transcript.Transcriber, writer transcript.Writer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		transcriber: transcriber,
		writer:      writer,
		logger:      logger,
	}
}

// Transcribe recognizes job.AudioPath and writes the text to job.OutputPath.
// Nothing is written when recognition fails. Every error wraps media.ErrTranscription.
func (s *Service) Transcribe(ctx context.Context, job Job) (*Result, error) {
	if job.AudioPath == "" {
		return nil, fmt.Errorf("%w: audio path is required", media.ErrTranscription)
	}
	if job.OutputPath == "" {
		return nil, fmt.Errorf("%w: output path is required", media.ErrTranscription)
	}

	s.logger.Info("transcribing",
		zap.String("audio", job.AudioPath),
		zap.String("model", job.Model.String()),
		zap.String("language", job.Language.String()),
		zap.Bool("fp16", job.FP16),
	)

	result, err := s.transcriber.Transcribe(ctx, transcript.Request{
		AudioPath: job.AudioPath,
		Model:     job.Model,
		Language:  job.Language,
		FP16:      job.FP16,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", media.ErrTranscription, err)
	}

	if err := s.writer.Write(job.OutputPath, result.Text); err != nil {
		return nil, fmt.Errorf("%w: %w", media.ErrTranscription, err)
	}

	chars := utf8.RuneCountInString(result.Text)
	s.logger.Info("transcript written", zap.String("path", job.OutputPath), zap.Int("characters", chars))

	return &Result{
		OutputPath: job.OutputPath,
		Characters: chars,
	}, nil
}
