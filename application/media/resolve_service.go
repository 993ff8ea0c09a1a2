package media

import (
	"context"
	"fmt"
	"time"

	"media-transcribe/domain/media"

	"go.uber.org/zap"
)

// verifyTimeout bounds the extractor installation check
const verifyTimeout = 5 * time.Second

// ResolveService validates inputs and produces the working audio file for a run
type ResolveService struct {
	extractor   media.AudioExtractor
	prober      media.AudioProber
	fileChecker media.FileChecker
	remover     media.FileRemover
	logger      *zap.Logger
}

// NewResolveService creates a new ResolveService. prober may be nil, in which
// case a missing audio track is only detected by the extractor failing.
func NewResolveService(
	extractor media.AudioExtractor,
	prober media.AudioProber,
	fileChecker media.FileChecker,
	remover media.FileRemover,
	logger *zap.Logger,
) *ResolveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResolveService{
		extractor:   extractor,
		prober:      prober,
		fileChecker: fileChecker,
		remover:     remover,
		logger:      logger,
	}
}

// Validate checks the input path against the allow-list and the filesystem
func (s *ResolveService) Validate(path string) (*media.Input, error) {
	input, err := media.NewInput(path, s.fileChecker)
	if err != nil {
		s.logger.Warn("input rejected", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	s.logger.Debug("input accepted",
		zap.String("path", input.Path),
		zap.String("extension", input.Extension),
		zap.String("kind", string(input.Kind)),
	)
	return input, nil
}

// Resolve returns the audio file to transcribe. Audio inputs are returned
// unchanged without touching the filesystem; video inputs have their audio
// track written to scratchPath.
func (s *ResolveService) Resolve(ctx context.Context, input *media.Input, scratchPath string) (*media.ResolvedAudio, error) {
	if input.IsAudio() {
		return &media.ResolvedAudio{Path: input.Path}, nil
	}

	req, err := media.NewExtractionRequest(input.Path, scratchPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", media.ErrExtraction, err)
	}

	if err := s.verifyExtractor(ctx); err != nil {
		return nil, err
	}

	if s.prober != nil {
		hasAudio, err := s.prober.HasAudio(ctx, input.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", media.ErrExtraction, err)
		}
		if !hasAudio {
			return nil, fmt.Errorf("%w: %w in %s", media.ErrExtraction, media.ErrNoAudioTrack, input.Path)
		}
	}

	s.logger.Info("extracting audio",
		zap.String("source", req.SourcePath),
		zap.String("scratch", req.OutputPath),
		zap.Int("sample_rate", req.SampleRate),
	)

	if err := s.extractor.Extract(ctx, req); err != nil {
		s.discardPartial(req.OutputPath)
		return nil, fmt.Errorf("%w: %w", media.ErrExtraction, err)
	}

	if s.fileChecker.Size(req.OutputPath) == 0 {
		s.discardPartial(req.OutputPath)
		return nil, fmt.Errorf("%w: extractor produced no audio at %s", media.ErrExtraction, req.OutputPath)
	}

	return &media.ResolvedAudio{Path: req.OutputPath, Scratch: true}, nil
}

// verifyExtractor checks that the extractor's executable runs, when it depends on one
func (s *ResolveService) verifyExtractor(ctx context.Context) error {
	verifier, ok := s.extractor.(media.ToolVerifier)
	if !ok {
		return nil
	}
	verifyCtx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()
	if err := verifier.VerifyInstalled(verifyCtx); err != nil {
		return fmt.Errorf("%w: %w", media.ErrExtraction, err)
	}
	return nil
}

// discardPartial removes whatever a failed extraction left behind
func (s *ResolveService) discardPartial(path string) {
	if !s.fileChecker.Exists(path) {
		return
	}
	if err := s.remover.Remove(path); err != nil {
		s.logger.Warn("failed to remove partial scratch audio", zap.String("path", path), zap.Error(err))
	}
}
