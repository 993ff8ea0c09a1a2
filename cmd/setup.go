package cmd

import (
	"fmt"
	"os"

	"media-transcribe/domain/media"
	"media-transcribe/domain/transcript"
	"media-transcribe/infrastructure/config"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
	Select(message string, options []string, defaultValue string) (string, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

func (p *SurveyPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Select{
		Message: message,
		Options: options,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

This command guides you through choosing the output location, the
recognizer backend, the default model tier and language, and the paths
to ffmpeg and Whisper.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath
	}
	return RunSetupWithPrompter(DefaultPrompter, path)
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Println("Setup cancelled.")
			return nil
		}
	}

	fmt.Println("Welcome to media-transcribe setup!")
	fmt.Println()

	cfg := config.Default()

	// Paths section
	if err := promptPaths(prompter, cfg); err != nil {
		return err
	}

	// Transcription section
	if err := promptTranscription(prompter, cfg); err != nil {
		return err
	}

	// Tools section
	if err := promptTools(prompter, cfg); err != nil {
		return err
	}

	// Save configuration
	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Println()
	fmt.Printf("Configuration saved to %s\n", configPath)
	if cfg.Transcription.Backend == config.BackendOpenAI {
		fmt.Println("Set OPENAI_API_KEY in your environment or .env file before transcribing.")
	}
	return nil
}

func promptPaths(prompter Prompter, cfg *config.Config) error {
	outputDir, err := prompter.Input("Where should transcripts be written?", cfg.Paths.OutputDirectory)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if outputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	cfg.Paths.OutputDirectory = outputDir

	filename, err := prompter.Input("Transcript file name?", cfg.Paths.OutputFilename)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if filename == "" {
		return fmt.Errorf("output filename is required")
	}
	cfg.Paths.OutputFilename = filename

	scratch, err := prompter.Input("Where should extracted audio be written while transcribing?", cfg.Paths.ScratchAudio)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if scratch == "" {
		scratch = media.DefaultScratchPath
	}
	if media.Extension(scratch) != ".wav" {
		return fmt.Errorf("scratch audio path must end in .wav")
	}
	cfg.Paths.ScratchAudio = scratch

	return nil
}

func promptTranscription(prompter Prompter, cfg *config.Config) error {
	backend, err := prompter.Select("Which recognizer should be used?", config.Backends, cfg.Transcription.Backend)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Transcription.Backend = backend

	tiers := lo.Map(transcript.Tiers(), func(info transcript.TierInfo, _ int) string {
		return info.Tier.String()
	})
	model, err := prompter.Select("Default model tier?", tiers, cfg.Transcription.Model)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	tier, err := transcript.ParseModelTier(model)
	if err != nil {
		return err
	}
	cfg.Transcription.Model = tier.String()

	language, err := prompter.Input("Spoken language (code or name)?", cfg.Transcription.Language)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	lang, err := transcript.ParseLanguage(language)
	if err != nil {
		return err
	}
	cfg.Transcription.Language = lang.String()

	if !tier.SuitableFor(lang) {
		fmt.Printf("Note: %s is not recommended for %s; consider base or larger.\n", tier, lang.Name())
	}

	if backend != config.BackendOpenAI {
		fp16, err := prompter.Confirm("Use half-precision (FP16) inference? Only enable with a GPU.", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		cfg.Transcription.FP16 = fp16
	}

	return nil
}

func promptTools(prompter Prompter, cfg *config.Config) error {
	ffmpegPath, err := prompter.Input("Path to ffmpeg?", cfg.Tools.FFmpeg)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if ffmpegPath != "" {
		cfg.Tools.FFmpeg = ffmpegPath
	}

	switch cfg.Transcription.Backend {
	case config.BackendWhisper:
		whisperPath, err := prompter.Input("Path to the whisper executable?", cfg.Tools.Whisper)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if whisperPath != "" {
			cfg.Tools.Whisper = whisperPath
		}

	case config.BackendWhisperCpp:
		cliPath, err := prompter.Input("Path to whisper-cli?", cfg.Tools.WhisperCpp)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if cliPath != "" {
			cfg.Tools.WhisperCpp = cliPath
		}

		modelsDir, err := prompter.Input("Directory containing ggml-<tier>.bin models?", cfg.Tools.WhisperCppModels)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if modelsDir == "" {
			return fmt.Errorf("models directory is required for %s", config.BackendWhisperCpp)
		}
		cfg.Tools.WhisperCppModels = modelsDir

	case config.BackendOpenAI:
		baseURL, err := prompter.Input("OpenAI-compatible base URL (blank for api.openai.com)?", "")
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		cfg.OpenAI.BaseURL = baseURL
	}

	return nil
}
