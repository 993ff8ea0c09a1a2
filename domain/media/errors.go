package media

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds for a transcription run. Every failing step wraps exactly one.
var (
	ErrFileNotFound      = errors.New("file not found")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrExtraction        = errors.New("audio extraction failed")
	ErrTranscription     = errors.New("transcription failed")
)

// ErrNoAudioTrack is wrapped together with ErrExtraction when a container has no audio stream
var ErrNoAudioTrack = errors.New("no audio track")

// ErrOutputConflict is wrapped together with ErrTranscription when the transcript
// path would overwrite the input or the scratch audio
var ErrOutputConflict = errors.New("output path conflicts with a media file")

// KindOfError returns the error kind wrapped by err, or nil if none matches
func KindOfError(err error) error {
	for _, kind := range []error{ErrFileNotFound, ErrUnsupportedFormat, ErrExtraction, ErrTranscription} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// Diagnostic returns a human-readable hint for err, or "" when there is none
func Diagnostic(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return fmt.Sprintf("Supported extensions: %s", strings.Join(supportedExtensions, ", "))
	case errors.Is(err, ErrFileNotFound):
		return "Check that --input points to an existing media file."
	case errors.Is(err, ErrNoAudioTrack):
		return "The video has no audio track to transcribe."
	case errors.Is(err, ErrExtraction):
		return "Check that ffmpeg is installed, the file is not corrupt, and there is free disk space."
	case errors.Is(err, ErrOutputConflict):
		return "Choose an --output path different from the input and scratch files."
	case errors.Is(err, ErrTranscription):
		return "Check the recognizer installation and model, or try a smaller --model."
	}
	return ""
}
