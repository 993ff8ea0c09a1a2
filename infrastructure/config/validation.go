package config

import (
	"errors"
	"fmt"
	"strings"

	"media-transcribe/domain/media"
	"media-transcribe/domain/transcript"
	"media-transcribe/infrastructure/logging"
)

// Transcription backends
const (
	BackendWhisper    = "whisper"
	BackendWhisperCpp = "whisper-cpp"
	BackendOpenAI     = "openai"
)

// Backends lists the accepted transcription.backend values
var Backends = []string{BackendWhisper, BackendWhisperCpp, BackendOpenAI}

// Validate checks that every enumerated option holds a recognized value
func (c *Config) Validate() error {
	var errs []error

	switch c.Transcription.Backend {
	case BackendWhisper, BackendWhisperCpp:
	case BackendOpenAI:
		if c.OpenAI.APIKey == "" {
			errs = append(errs, fmt.Errorf("backend %q requires OPENAI_API_KEY", BackendOpenAI))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown transcription backend %q (valid: %s)",
			c.Transcription.Backend, strings.Join(Backends, ", ")))
	}

	if _, err := transcript.ParseModelTier(c.Transcription.Model); err != nil {
		errs = append(errs, err)
	}
	if _, err := transcript.ParseLanguage(c.Transcription.Language); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}

	if c.Paths.OutputFilename == "" {
		errs = append(errs, errors.New("paths.output_filename is required"))
	}
	if scratch := c.Paths.ScratchAudio; scratch != "" && media.Extension(scratch) != ".wav" {
		errs = append(errs, fmt.Errorf("paths.scratch_audio %q must be a .wav file", scratch))
	}

	return errors.Join(errs...)
}
