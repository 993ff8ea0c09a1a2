package ffmpeg

import (
	"context"
	"errors"
	"testing"

	"media-transcribe/domain/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	runner := &fakeRunner{}
	extractor := NewExtractor(
		WithExtractorFFmpegPath("/opt/ffmpeg/bin/ffmpeg"),
		WithExtractorCommandRunner(runner),
	)

	req, err := media.NewExtractionRequest("interview.mp4", "extracted_audio_for_whisper.wav")
	require.NoError(t, err)

	require.NoError(t, extractor.Extract(context.Background(), req))
	require.Len(t, runner.calls, 1)

	call := runner.calls[0]
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", call.name)
	assert.Equal(t, []string{
		"-hide_banner", "-nostdin", "-y",
		"-i", "interview.mp4",
		"-vn",
		"-map", "0:a:0",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		"extracted_audio_for_whisper.wav",
	}, call.args)
}

func TestExtractor_ExtractFailure(t *testing.T) {
	runner := &fakeRunner{runErr: errors.New("exit status 1")}
	extractor := NewExtractor(WithExtractorCommandRunner(runner))

	req, err := media.NewExtractionRequest("broken.mkv", "scratch.wav")
	require.NoError(t, err)

	err = extractor.Extract(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ffmpeg audio extraction failed")
	assert.Contains(t, err.Error(), "exit status 1")
}

func TestExtractor_EmptyPathOptionKeepsDefault(t *testing.T) {
	runner := &fakeRunner{}
	extractor := NewExtractor(WithExtractorFFmpegPath(""), WithExtractorCommandRunner(runner))

	require.NoError(t, extractor.VerifyInstalled(context.Background()))
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "ffmpeg", runner.calls[0].name)
	assert.Equal(t, []string{"-version"}, runner.calls[0].args)
}

func TestExtractor_VerifyInstalledFailure(t *testing.T) {
	runner := &fakeRunner{outputErr: errors.New("not found")}
	extractor := NewExtractor(WithExtractorCommandRunner(runner))

	err := extractor.VerifyInstalled(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ffmpeg not found or not executable")
}
