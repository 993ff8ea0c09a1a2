package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	appcleanup "media-transcribe/application/cleanup"
	appmedia "media-transcribe/application/media"
	apptranscription "media-transcribe/application/transcription"
	"media-transcribe/domain/media"
	"media-transcribe/domain/transcript"
	"media-transcribe/infrastructure/filesystem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakeExtractor writes a small WAV-looking file to the requested scratch path
type fakeExtractor struct {
	calls int
	err   error
}

func (f *fakeExtractor) Extract(ctx context.Context, req *media.ExtractionRequest) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(req.OutputPath, []byte("RIFF....WAVEfmt "), 0644)
}

// fakeTranscriber returns deterministic text derived from the audio file name
type fakeTranscriber struct {
	calls    []transcript.Request
	err      error
	sawAudio bool
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, req transcript.Request) (transcript.Transcript, error) {
	f.calls = append(f.calls, req)
	_, statErr := os.Stat(req.AudioPath)
	f.sawAudio = statErr == nil
	if f.err != nil {
		return transcript.Transcript{}, f.err
	}
	return transcript.Transcript{Text: "transcript of " + filepath.Base(req.AudioPath)}, nil
}

type fixture struct {
	dir         string
	extractor   *fakeExtractor
	transcriber *fakeTranscriber
	out         *bytes.Buffer
	logs        *observer.ObservedLogs
	svc         *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dir := t.TempDir()
	f := &fixture{
		dir:         dir,
		extractor:   &fakeExtractor{},
		transcriber: &fakeTranscriber{},
		out:         &bytes.Buffer{},
	}

	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	f.logs = logs

	checker := filesystem.NewChecker()
	remover := filesystem.NewRemover()

	f.svc = NewService(
		appmedia.NewResolveService(f.extractor, nil, checker, remover, logger),
		apptranscription.NewService(f.transcriber, filesystem.NewTranscriptWriter(), logger),
		appcleanup.NewService(checker, remover, logger),
		f.out,
		logger,
	)
	return f
}

func (f *fixture) path(name string) string {
	return filepath.Join(f.dir, name)
}

func (f *fixture) touch(t *testing.T, name string) string {
	t.Helper()
	p := f.path(name)
	require.NoError(t, os.WriteFile(p, []byte("media"), 0644))
	return p
}

func (f *fixture) input(inputPath string) Input {
	return Input{
		InputPath:   inputPath,
		OutputPath:  f.path(filepath.Join("output", "output.txt")),
		ScratchPath: f.path(media.DefaultScratchPath),
		Model:       transcript.TierSmall,
		Language:    transcript.Japanese,
	}
}

func TestRun_VideoInput(t *testing.T) {
	f := newFixture(t)
	in := f.input(f.touch(t, "interview.mp4"))

	result, err := f.svc.Run(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, StateDone, result.State)
	assert.True(t, result.Succeeded())
	assert.Empty(t, result.FailedAt)
	assert.True(t, result.Extracted)
	assert.True(t, result.ScratchRemoved)
	assert.Equal(t, in.ScratchPath, result.AudioPath)

	assert.Equal(t, 1, f.extractor.calls)
	require.Len(t, f.transcriber.calls, 1)
	assert.Equal(t, in.ScratchPath, f.transcriber.calls[0].AudioPath)
	assert.True(t, f.transcriber.sawAudio, "scratch audio exists while transcribing")

	data, err := os.ReadFile(in.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "transcript of extracted_audio_for_whisper.wav", string(data))

	assert.NoFileExists(t, in.ScratchPath)
	assert.FileExists(t, in.InputPath)

	assert.Contains(t, f.out.String(), "[2/4] Extracting audio...")
	assert.Contains(t, f.out.String(), "Removed: "+in.ScratchPath)
	assert.Contains(t, f.out.String(), "Transcript written to "+in.OutputPath)
}

func TestRun_AudioInput(t *testing.T) {
	f := newFixture(t)
	in := f.input(f.touch(t, "notes.mp3"))

	result, err := f.svc.Run(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, StateDone, result.State)
	assert.False(t, result.Extracted)
	assert.False(t, result.ScratchRemoved)
	assert.Equal(t, in.InputPath, result.AudioPath)

	assert.Zero(t, f.extractor.calls)
	require.Len(t, f.transcriber.calls, 1)
	assert.Equal(t, in.InputPath, f.transcriber.calls[0].AudioPath)

	assert.FileExists(t, in.InputPath)
	assert.NoFileExists(t, in.ScratchPath)
	assert.FileExists(t, in.OutputPath)
	assert.Contains(t, f.out.String(), "[2/4] Using audio file directly...")
}

func TestRun_UnsupportedFormat(t *testing.T) {
	f := newFixture(t)
	in := f.input(f.touch(t, "document.pdf"))

	result, err := f.svc.Run(context.Background(), in)
	require.Error(t, err)
	assert.ErrorIs(t, err, media.ErrUnsupportedFormat)

	assert.Equal(t, StateAborted, result.State)
	assert.Equal(t, StateStart, result.FailedAt)
	assert.Zero(t, f.extractor.calls)
	assert.Empty(t, f.transcriber.calls)
	assert.NoFileExists(t, in.OutputPath)
	assert.Contains(t, f.out.String(), "Supported extensions:")
}

func TestRun_MissingFile(t *testing.T) {
	f := newFixture(t)
	in := f.input(f.path("missing.mp4"))

	result, err := f.svc.Run(context.Background(), in)
	require.Error(t, err)
	assert.ErrorIs(t, err, media.ErrFileNotFound)

	assert.Equal(t, StateAborted, result.State)
	assert.Zero(t, f.extractor.calls)
	assert.Empty(t, f.transcriber.calls)
	assert.NoFileExists(t, in.ScratchPath)
	assert.NoFileExists(t, in.OutputPath)

	entries := f.logs.FilterMessage("run aborted").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "start", entries[0].ContextMap()["failed_at"])
	assert.Equal(t, media.ErrFileNotFound.Error(), entries[0].ContextMap()["error_kind"])
}

func TestRun_ExtractionFailure(t *testing.T) {
	f := newFixture(t)
	f.extractor.err = errors.New("ffmpeg exited with status 1")
	in := f.input(f.touch(t, "broken.mkv"))

	result, err := f.svc.Run(context.Background(), in)
	require.Error(t, err)
	assert.ErrorIs(t, err, media.ErrExtraction)

	assert.Equal(t, StateValidated, result.FailedAt)
	assert.Empty(t, f.transcriber.calls)
	assert.NoFileExists(t, in.OutputPath)
}

func TestRun_TranscriptionFailure(t *testing.T) {
	tests := []struct {
		name        string
		keepScratch bool
	}{
		{name: "scratch removed by default"},
		{name: "scratch kept when requested", keepScratch: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.transcriber.err = errors.New("model not found")
			in := f.input(f.touch(t, "interview.mp4"))
			in.KeepScratchOnFailure = tt.keepScratch

			result, err := f.svc.Run(context.Background(), in)
			require.Error(t, err)
			assert.ErrorIs(t, err, media.ErrTranscription)

			assert.Equal(t, StateAborted, result.State)
			assert.Equal(t, StateAudioResolved, result.FailedAt)
			assert.NoFileExists(t, in.OutputPath)
			assert.FileExists(t, in.InputPath)

			if tt.keepScratch {
				assert.FileExists(t, in.ScratchPath)
				assert.False(t, result.ScratchRemoved)
			} else {
				assert.NoFileExists(t, in.ScratchPath)
				assert.True(t, result.ScratchRemoved)
			}
		})
	}
}

func TestRun_Idempotent(t *testing.T) {
	f := newFixture(t)
	in := f.input(f.touch(t, "interview.mp4"))

	_, err := f.svc.Run(context.Background(), in)
	require.NoError(t, err)
	first, err := os.ReadFile(in.OutputPath)
	require.NoError(t, err)

	_, err = f.svc.Run(context.Background(), in)
	require.NoError(t, err)
	second, err := os.ReadFile(in.OutputPath)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NoFileExists(t, in.ScratchPath)
}

func TestRun_UnsuitableModelWarns(t *testing.T) {
	f := newFixture(t)
	in := f.input(f.touch(t, "notes.wav"))
	in.Model = transcript.TierTiny

	result, err := f.svc.Run(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, result.Succeeded())
	assert.Contains(t, f.out.String(), `Warning: model "tiny" is not recommended`)
	assert.Equal(t, 1, f.logs.FilterMessage("model tier unsuitable for language").Len())
}

func TestRun_OutputPathConflicts(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output func(f *fixture, in Input) string
	}{
		{
			name:   "output is the audio input",
			input:  "notes.mp3",
			output: func(f *fixture, in Input) string { return in.InputPath },
		},
		{
			name:  "output is the input by another spelling",
			input: "notes.mp3",
			output: func(f *fixture, in Input) string {
				return f.dir + string(filepath.Separator) + "output" + string(filepath.Separator) + ".." + string(filepath.Separator) + "notes.mp3"
			},
		},
		{
			name:   "output is the scratch audio",
			input:  "interview.mp4",
			output: func(f *fixture, in Input) string { return in.ScratchPath },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			in := f.input(f.touch(t, tt.input))
			in.OutputPath = tt.output(f, in)

			result, err := f.svc.Run(context.Background(), in)
			require.Error(t, err)
			assert.ErrorIs(t, err, media.ErrTranscription)
			assert.ErrorIs(t, err, media.ErrOutputConflict)

			assert.Equal(t, StateAborted, result.State)
			assert.Equal(t, StateValidated, result.FailedAt)
			assert.Zero(t, f.extractor.calls)
			assert.Empty(t, f.transcriber.calls)

			data, err := os.ReadFile(in.InputPath)
			require.NoError(t, err)
			assert.Equal(t, "media", string(data), "input must be untouched")
			assert.Contains(t, f.out.String(), "Choose an --output path")
		})
	}
}

// verifyingExtractor is a fakeExtractor whose executable check can fail
type verifyingExtractor struct {
	fakeExtractor
	verifyErr error
}

func (v *verifyingExtractor) VerifyInstalled(ctx context.Context) error {
	return v.verifyErr
}

func TestRun_MissingFFmpegAbortsThroughPipeline(t *testing.T) {
	f := newFixture(t)
	extractor := &verifyingExtractor{verifyErr: errors.New("ffmpeg not found or not executable")}

	checker := filesystem.NewChecker()
	remover := filesystem.NewRemover()
	svc := NewService(
		appmedia.NewResolveService(extractor, nil, checker, remover, nil),
		apptranscription.NewService(f.transcriber, filesystem.NewTranscriptWriter(), nil),
		appcleanup.NewService(checker, remover, nil),
		f.out,
		nil,
	)
	in := f.input(f.touch(t, "interview.mp4"))

	result, err := svc.Run(context.Background(), in)
	require.Error(t, err)
	assert.ErrorIs(t, err, media.ErrExtraction)

	require.NotNil(t, result)
	assert.Equal(t, StateAborted, result.State)
	assert.Equal(t, StateValidated, result.FailedAt)
	assert.Zero(t, extractor.calls)
	assert.Empty(t, f.transcriber.calls)

	out := f.out.String()
	assert.Contains(t, out, "[1/4] Validating input...")
	assert.Contains(t, out, "Aborted:")
	assert.Contains(t, out, "Check that ffmpeg is installed")
}

func TestRun_AudioInputSkipsFFmpegCheck(t *testing.T) {
	f := newFixture(t)
	extractor := &verifyingExtractor{verifyErr: errors.New("ffmpeg not found")}

	checker := filesystem.NewChecker()
	remover := filesystem.NewRemover()
	svc := NewService(
		appmedia.NewResolveService(extractor, nil, checker, remover, nil),
		apptranscription.NewService(f.transcriber, filesystem.NewTranscriptWriter(), nil),
		appcleanup.NewService(checker, remover, nil),
		f.out,
		nil,
	)

	result, err := svc.Run(context.Background(), f.input(f.touch(t, "notes.m4a")))
	require.NoError(t, err)
	assert.True(t, result.Succeeded())
}
