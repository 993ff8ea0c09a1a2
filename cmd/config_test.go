package cmd

import (
	"bytes"
	"testing"

	"media-transcribe/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConfigShowWithDependencies(t *testing.T) {
	cfg := config.Default()
	cfg.OpenAI.APIKey = "sk-secret"

	var out bytes.Buffer
	require.NoError(t, RunConfigShowWithDependencies(cfg, "config/config.yaml", &out))

	text := out.String()
	assert.Contains(t, text, "# source: config/config.yaml")
	assert.Contains(t, text, "# OPENAI_API_KEY: set")
	assert.Contains(t, text, "backend: whisper")
	assert.Contains(t, text, "scratch_audio: extracted_audio_for_whisper.wav")
	assert.NotContains(t, text, "sk-secret")
}

func TestRunConfigValidateWithDependencies(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RunConfigValidateWithDependencies(config.Default(), &out))
	assert.Contains(t, out.String(), "Configuration is valid.")

	cfg := config.Default()
	cfg.Transcription.Backend = "vosk"
	cfg.Transcription.Model = "huge"
	err := RunConfigValidateWithDependencies(cfg, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown transcription backend "vosk"`)
	assert.Contains(t, err.Error(), `unknown model tier "huge"`)
}

func TestNewTranscriber(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		apiKey  string
		wantErr string
	}{
		{name: "whisper", backend: config.BackendWhisper},
		{name: "whisper-cpp", backend: config.BackendWhisperCpp},
		{name: "openai", backend: config.BackendOpenAI, apiKey: "sk-test"},
		{name: "openai without key", backend: config.BackendOpenAI, wantErr: "OPENAI_API_KEY"},
		{name: "unknown", backend: "vosk", wantErr: "unknown transcription backend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Transcription.Backend = tt.backend
			cfg.OpenAI.APIKey = tt.apiKey

			deps, err := NewTranscribeDependencies(cfg, nil, false)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, deps.Transcriber)
			assert.NotNil(t, deps.Extractor)
		})
	}
}
