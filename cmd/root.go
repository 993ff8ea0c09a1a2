package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"media-transcribe/infrastructure/config"
	"media-transcribe/infrastructure/logging"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// OutputWriter interface for output (allows testing)
type OutputWriter interface {
	io.Writer
}

var (
	cfgFile     string
	logLevel    string
	verbose     bool
	cfg         *config.Config
	cfgFromFile bool
	cfgErr      error
	logger      = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "media-transcribe",
	Short: "Transcribe audio and video files to text",
	Long: `media-transcribe turns a single audio or video file into a plain-text
transcript:

  - Validate the input extension and that the file exists
  - Extract a 16 kHz mono WAV from video files with ffmpeg
  - Transcribe with Whisper, whisper.cpp, or the OpenAI API
  - Write the transcript and remove intermediate audio

Example:
  media-transcribe transcribe --input interview.mp4
  media-transcribe transcribe --input notes.mp3 --model medium --language en`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns its error for the caller to report
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	_ = logger.Sync()
	return err
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "human-readable debug logging")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = config.DefaultPath
	}

	// A broken .env is reported but does not stop commands like help
	if _, err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	cfg, cfgFromFile, cfgErr = config.LoadOrDefault(cfgFile)
	if cfgErr != nil {
		cfg = nil
		return
	}
	if cfgErr = config.ApplyEnv(cfg); cfgErr != nil {
		cfg = nil
		return
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if verbose {
		cfg.Logging.Level = "debug"
		cfg.Logging.Development = true
	}

	l, err := logging.NewLogger(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		cfgErr = err
		cfg = nil
		return
	}
	logger = l
}

// GetConfig returns the effective configuration: defaults, then the config
// file, then environment overrides. It returns an error if loading failed.
func GetConfig() (*config.Config, error) {
	if cfg == nil {
		if cfgErr != nil {
			return nil, fmt.Errorf("failed to load configuration from %s: %w", cfgFile, cfgErr)
		}
		return nil, fmt.Errorf("configuration not loaded")
	}
	return cfg, nil
}

// GetLogger returns the application logger
func GetLogger() *zap.Logger {
	return logger
}

// newRunLogger tags every log line of one command invocation with a run id
func newRunLogger(base *zap.Logger, command string) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	return base.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("command", command),
	)
}
