package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the configuration file is looked up
const DefaultPath = "config/config.yaml"

// Config represents the complete application configuration
type Config struct {
	Paths         PathsConfig         `yaml:"paths"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Tools         ToolsConfig         `yaml:"tools"`
	OpenAI        OpenAIConfig        `yaml:"openai"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// PathsConfig contains output and scratch locations
type PathsConfig struct {
	OutputDirectory string `yaml:"output_directory"`
	OutputFilename  string `yaml:"output_filename"`
	ScratchAudio    string `yaml:"scratch_audio"`
}

// TranscriptionConfig selects the recognizer and how it runs
type TranscriptionConfig struct {
	Backend              string `yaml:"backend"`
	Model                string `yaml:"model"`
	Language             string `yaml:"language"`
	FP16                 bool   `yaml:"fp16"`
	KeepScratchOnFailure bool   `yaml:"keep_scratch_on_failure"`
}

// ToolsConfig contains external executable locations
type ToolsConfig struct {
	FFmpeg           string `yaml:"ffmpeg"`
	FFprobe          string `yaml:"ffprobe"`
	Whisper          string `yaml:"whisper"`
	WhisperCpp       string `yaml:"whisper_cpp"`
	WhisperCppModels string `yaml:"whisper_cpp_models"`
}

// OpenAIConfig contains remote transcription settings. The API key is only read from the environment.
type OpenAIConfig struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"-"`
}

// LoggingConfig contains zap logger settings
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			OutputDirectory: "output",
			OutputFilename:  "output.txt",
			ScratchAudio:    "extracted_audio_for_whisper.wav",
		},
		Transcription: TranscriptionConfig{
			Backend:  BackendWhisper,
			Model:    "small",
			Language: "ja",
		},
		Tools: ToolsConfig{
			FFmpeg:           "ffmpeg",
			FFprobe:          "ffprobe",
			Whisper:          "whisper",
			WhisperCpp:       "whisper-cli",
			WhisperCppModels: "models",
		},
		OpenAI: OpenAIConfig{
			Model: "whisper-1",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads and parses the configuration from the specified YAML file.
// Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, falling back to defaults when the file does not exist
func LoadOrDefault(path string) (*Config, bool, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), false, nil
	}
	return nil, false, err
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// OutputPath returns the transcript location relative to baseDir
func (c *Config) OutputPath(baseDir string) string {
	dir := c.Paths.OutputDirectory
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(baseDir, dir)
	}
	return filepath.Join(dir, c.Paths.OutputFilename)
}
