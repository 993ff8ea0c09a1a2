package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	appcleanup "media-transcribe/application/cleanup"
	appmedia "media-transcribe/application/media"
	apptranscription "media-transcribe/application/transcription"
	"media-transcribe/domain/media"
	"media-transcribe/domain/transcript"

	"go.uber.org/zap"
)

// State is a step of a transcription run
type State string

const (
	StateStart         State = "start"
	StateValidated     State = "validated"
	StateAudioResolved State = "audio_resolved"
	StateTranscribed   State = "transcribed"
	StateCleanedUp     State = "cleaned_up"
	StateDone          State = "done"
	StateAborted       State = "aborted"
)

// Input contains all input parameters for one run
type Input struct {
	InputPath   string
	OutputPath  string
	ScratchPath string
	Model       transcript.ModelTier
	Language    transcript.Language
	FP16        bool

	// KeepScratchOnFailure leaves extracted audio on disk when transcription fails
	KeepScratchOnFailure bool
}

// Result describes how a run ended. It is returned for every run.
type Result struct {
	State State

	// FailedAt is the last state reached before an abort; empty on success
	FailedAt State

	InputPath      string
	AudioPath      string
	OutputPath     string
	Extracted      bool
	ScratchRemoved bool
	Characters     int
	Duration       time.Duration
}

// Succeeded returns true if the run reached Done
func (r *Result) Succeeded() bool {
	return r.State == StateDone
}

// Service orchestrates validate, extract, transcribe and cleanup
type Service struct {
	resolver    *appmedia.ResolveService
	transcriber *apptranscription.Service
	cleanup     *appcleanup.Service
	output      io.Writer
	logger      *zap.Logger
}

// NewService creates a new pipeline service
func NewService(
	resolver *appmedia.ResolveService,
	transcriber *apptranscription.Service,
	cleanup *appcleanup.Service,
	output io.Writer,
	logger *zap.Logger,
) *Service {
	if output == nil {
		output = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		resolver:    resolver,
		transcriber: transcriber,
		cleanup:     cleanup,
		output:      output,
		logger:      logger,
	}
}

// Run executes one linear transcription run. The returned error is non-nil
// exactly when the result is Aborted, and wraps one of the media error kinds.
// No step is retried.
func (s *Service) Run(ctx context.Context, in Input) (*Result, error) {
	started := time.Now()
	result := &Result{
		State:      StateStart,
		InputPath:  in.InputPath,
		OutputPath: in.OutputPath,
	}

	finish := func(err error) (*Result, error) {
		result.Duration = time.Since(started)
		if err != nil {
			result.FailedAt = result.State
			result.State = StateAborted
			kind := "unknown"
			if k := media.KindOfError(err); k != nil {
				kind = k.Error()
			}
			s.logger.Error("run aborted",
				zap.String("failed_at", string(result.FailedAt)),
				zap.String("error_kind", kind),
				zap.Duration("duration", result.Duration),
				zap.Error(err),
			)
			s.printAbort(err)
			return result, err
		}
		result.State = StateDone
		s.logger.Info("run complete", zap.Duration("duration", result.Duration))
		return result, nil
	}

	// Step 1: Validate
	fmt.Fprintf(s.output, "[1/4] Validating input...\n")
	input, err := s.resolver.Validate(in.InputPath)
	if err != nil {
		return finish(err)
	}
	result.State = StateValidated
	fmt.Fprintf(s.output, "      %s file: %s\n\n", input.Kind, input.Path)

	if err := checkOutputPath(in); err != nil {
		return finish(err)
	}

	// Step 2: Resolve audio
	if input.IsAudio() {
		fmt.Fprintf(s.output, "[2/4] Using audio file directly...\n")
	} else {
		fmt.Fprintf(s.output, "[2/4] Extracting audio...\n")
	}
	audio, err := s.resolver.Resolve(ctx, input, in.ScratchPath)
	if err != nil {
		return finish(err)
	}
	result.State = StateAudioResolved
	result.AudioPath = audio.Path
	result.Extracted = audio.Scratch
	if audio.Scratch {
		fmt.Fprintf(s.output, "      Created: %s\n\n", audio.Path)
	} else {
		fmt.Fprintf(s.output, "      Audio: %s\n\n", audio.Path)
	}

	// Step 3: Transcribe
	fmt.Fprintf(s.output, "[3/4] Transcribing (model %s, language %s)...\n", in.Model, in.Language)
	if !in.Model.SuitableFor(in.Language) {
		fmt.Fprintf(s.output, "      Warning: model %q is not recommended for language %q; use base or larger\n", in.Model, in.Language)
		s.logger.Warn("model tier unsuitable for language",
			zap.String("model", in.Model.String()),
			zap.String("language", in.Language.String()),
		)
	}
	transcribed, err := s.transcriber.Transcribe(ctx, apptranscription.Job{
		AudioPath:  audio.Path,
		OutputPath: in.OutputPath,
		Model:      in.Model,
		Language:   in.Language,
		FP16:       in.FP16,
	})
	if err != nil {
		if !in.KeepScratchOnFailure {
			s.removeScratch(in.InputPath, audio, result)
		}
		return finish(err)
	}
	result.State = StateTranscribed
	result.Characters = transcribed.Characters
	fmt.Fprintf(s.output, "      Saved: %s (%d characters)\n\n", transcribed.OutputPath, transcribed.Characters)

	// Step 4: Cleanup
	fmt.Fprintf(s.output, "[4/4] Cleaning up...\n")
	s.removeScratch(in.InputPath, audio, result)
	if !result.ScratchRemoved {
		fmt.Fprintf(s.output, "      Nothing to remove\n")
	}
	result.State = StateCleanedUp
	fmt.Fprintln(s.output)

	res, _ := finish(nil)
	fmt.Fprintf(s.output, "Transcript written to %s in %s\n", res.OutputPath, res.Duration.Round(time.Second))
	return res, nil
}

// removeScratch deletes extracted audio. A failed delete is reported but does not abort the run.
func (s *Service) removeScratch(inputPath string, audio *media.ResolvedAudio, result *Result) {
	removed, err := s.cleanup.RemoveScratch(inputPath, audio.Path)
	if err != nil {
		fmt.Fprintf(s.output, "      Warning: %v\n", err)
		s.logger.Warn("scratch cleanup failed", zap.Error(err))
		return
	}
	if removed {
		result.ScratchRemoved = true
		fmt.Fprintf(s.output, "      Removed: %s\n", audio.Path)
	}
}

func (s *Service) printAbort(err error) {
	fmt.Fprintf(s.output, "\nAborted: %v\n", err)
	if hint := media.Diagnostic(err); hint != "" {
		fmt.Fprintf(s.output, "%s\n", hint)
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintf(s.output, "Run was interrupted.\n")
	}
}

// checkOutputPath rejects a transcript path that would overwrite the input or the scratch audio
func checkOutputPath(in Input) error {
	scratch := in.ScratchPath
	if scratch == "" {
		scratch = media.DefaultScratchPath
	}
	switch {
	case media.SamePath(in.OutputPath, in.InputPath):
		return fmt.Errorf("%w: %w: %s is the input file", media.ErrTranscription, media.ErrOutputConflict, in.OutputPath)
	case media.SamePath(in.OutputPath, scratch):
		return fmt.Errorf("%w: %w: %s is the scratch audio file", media.ErrTranscription, media.ErrOutputConflict, in.OutputPath)
	}
	return nil
}
