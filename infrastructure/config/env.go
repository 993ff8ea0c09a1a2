package config

import (
	"fmt"
	"os"
	"strings"

	cenv "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// envOverrides holds values read from the environment. Empty means unset.
type envOverrides struct {
	Backend         string `env:"MEDIA_TRANSCRIBE_BACKEND"`
	Model           string `env:"MEDIA_TRANSCRIBE_MODEL"`
	Language        string `env:"MEDIA_TRANSCRIBE_LANGUAGE"`
	OutputDirectory string `env:"MEDIA_TRANSCRIBE_OUTPUT_DIR"`
	LogLevel        string `env:"MEDIA_TRANSCRIBE_LOG_LEVEL"`
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string `env:"OPENAI_BASE_URL"`
}

// LoadDotEnv loads the first .env file found in paths. Missing files are skipped,
// and variables already set in the environment win.
func LoadDotEnv(paths ...string) (string, error) {
	if len(paths) == 0 {
		paths = []string{".env", ".env.local"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return "", fmt.Errorf("error loading %s file: %w", path, err)
		}
		return path, nil
	}
	return "", nil
}

// ApplyEnv overlays environment variables onto cfg
func ApplyEnv(cfg *Config) error {
	var env envOverrides
	if err := cenv.Parse(&env); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	setIfPresent(&cfg.Transcription.Backend, env.Backend)
	setIfPresent(&cfg.Transcription.Model, env.Model)
	setIfPresent(&cfg.Transcription.Language, env.Language)
	setIfPresent(&cfg.Paths.OutputDirectory, env.OutputDirectory)
	setIfPresent(&cfg.Logging.Level, env.LogLevel)
	setIfPresent(&cfg.OpenAI.APIKey, env.OpenAIAPIKey)
	setIfPresent(&cfg.OpenAI.BaseURL, env.OpenAIBaseURL)
	return nil
}

func setIfPresent(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
