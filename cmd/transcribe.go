package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	appcleanup "media-transcribe/application/cleanup"
	appmedia "media-transcribe/application/media"
	apppipeline "media-transcribe/application/pipeline"
	apptranscription "media-transcribe/application/transcription"
	"media-transcribe/domain/media"
	"media-transcribe/domain/transcript"
	"media-transcribe/infrastructure/command"
	"media-transcribe/infrastructure/config"
	"media-transcribe/infrastructure/ffmpeg"
	"media-transcribe/infrastructure/filesystem"
	"media-transcribe/infrastructure/openai"
	"media-transcribe/infrastructure/whisper"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	transcribeInputPath   string
	transcribeOutputPath  string
	transcribeModel       string
	transcribeLanguage    string
	transcribeBackend     string
	transcribeScratchPath string
	transcribeFP16        bool
	transcribeKeepScratch bool
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Transcribe an audio or video file to text",
	Long: `Transcribe a single media file through the complete workflow:
1. Validate the extension and that the file exists
2. Extract a 16 kHz mono WAV if the input is a video
3. Transcribe the audio and write the transcript
4. Remove the extracted audio

Audio files (.mp3 .wav .m4a .aac .ogg .wma .aiff .amr .opus) are transcribed
directly. Video files (.mkv .mp4 .avi .mov .flv .wmv .webm .mpg .mpeg .3gp .ts)
have their first audio track extracted with ffmpeg first.

Flags override environment variables, which override config/config.yaml.

Example:
  media-transcribe transcribe --input interview.mp4
  media-transcribe transcribe --input notes.mp3 --output notes.txt --model medium
  media-transcribe transcribe --input talk.mkv --language en --backend whisper-cpp`,
	RunE: runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)
	transcribeCmd.Flags().StringVarP(&transcribeInputPath, "input", "i", "", "Path to the audio or video file (required)")
	transcribeCmd.Flags().StringVarP(&transcribeOutputPath, "output", "o", "", "Transcript path (default <output_directory>/<output_filename>)")
	transcribeCmd.Flags().StringVarP(&transcribeModel, "model", "m", "", "Model tier, e.g. base, small, medium, large-v3 (see 'models')")
	transcribeCmd.Flags().StringVarP(&transcribeLanguage, "language", "l", "", "Spoken language code or name, e.g. ja, en, japanese")
	transcribeCmd.Flags().StringVar(&transcribeBackend, "backend", "", "Recognizer backend: whisper, whisper-cpp, or openai")
	transcribeCmd.Flags().StringVar(&transcribeScratchPath, "scratch", "", "Where extracted audio is written (must end in .wav)")
	transcribeCmd.Flags().BoolVar(&transcribeFP16, "fp16", false, "Use half-precision inference (GPU only)")
	transcribeCmd.Flags().BoolVar(&transcribeKeepScratch, "keep-scratch-on-failure", false, "Keep extracted audio when transcription fails")
	transcribeCmd.MarkFlagRequired("input")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	applyTranscribeFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	runLogger := newRunLogger(GetLogger(), "transcribe")
	deps, err := NewTranscribeDependencies(cfg, runLogger, verbose)
	if err != nil {
		return err
	}

	outputPath := transcribeOutputPath
	if outputPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine working directory: %w", err)
		}
		outputPath = cfg.OutputPath(cwd)
	}

	input := TranscribeInput{
		InputPath:            transcribeInputPath,
		OutputPath:           outputPath,
		ScratchPath:          cfg.Paths.ScratchAudio,
		Model:                cfg.Transcription.Model,
		Language:             cfg.Transcription.Language,
		FP16:                 cfg.Transcription.FP16,
		KeepScratchOnFailure: cfg.Transcription.KeepScratchOnFailure,
	}

	_, err = RunTranscribeWithDependencies(cmd.Context(), deps, input, os.Stdout)
	return err
}

// applyTranscribeFlags overlays explicitly set flags onto cfg
func applyTranscribeFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.Transcription.Model = transcribeModel
	}
	if flags.Changed("language") {
		cfg.Transcription.Language = transcribeLanguage
	}
	if flags.Changed("backend") {
		cfg.Transcription.Backend = transcribeBackend
	}
	if flags.Changed("scratch") {
		cfg.Paths.ScratchAudio = transcribeScratchPath
	}
	if flags.Changed("fp16") {
		cfg.Transcription.FP16 = transcribeFP16
	}
	if flags.Changed("keep-scratch-on-failure") {
		cfg.Transcription.KeepScratchOnFailure = transcribeKeepScratch
	}
}

// TranscribeInput contains the input parameters for the transcribe command
type TranscribeInput struct {
	InputPath            string
	OutputPath           string
	ScratchPath          string
	Model                string
	Language             string
	FP16                 bool
	KeepScratchOnFailure bool
}

// TranscribeDependencies holds the collaborators of a transcription run
type TranscribeDependencies struct {
	Extractor   media.AudioExtractor
	Prober      media.AudioProber
	FileChecker media.FileChecker
	Remover     media.FileRemover
	Transcriber transcript.Transcriber
	Writer      transcript.Writer
	Logger      *zap.Logger
}

// NewTranscribeDependencies builds the production collaborators for cfg.
// When showToolOutput is set, ffmpeg and whisper stderr is mirrored to the terminal.
func NewTranscribeDependencies(cfg *config.Config, logger *zap.Logger, showToolOutput bool) (*TranscribeDependencies, error) {
	var toolOutput io.Writer
	if showToolOutput {
		toolOutput = os.Stderr
	}
	runner := command.NewExecRunner(toolOutput)

	extractor := ffmpeg.NewExtractor(
		ffmpeg.WithExtractorFFmpegPath(cfg.Tools.FFmpeg),
		ffmpeg.WithExtractorCommandRunner(runner),
	)
	prober := ffmpeg.NewProber(
		ffmpeg.WithFFprobePath(cfg.Tools.FFprobe),
		ffmpeg.WithProberCommandRunner(runner),
	)

	transcriber, err := newTranscriber(cfg, extractor, runner, logger)
	if err != nil {
		return nil, err
	}

	return &TranscribeDependencies{
		Extractor:   extractor,
		Prober:      prober,
		FileChecker: filesystem.NewChecker(),
		Remover:     filesystem.NewRemover(),
		Transcriber: transcriber,
		Writer:      filesystem.NewTranscriptWriter(),
		Logger:      logger,
	}, nil
}

// newTranscriber selects the recognizer backend named in the config
func newTranscriber(cfg *config.Config, extractor media.AudioExtractor, runner command.Runner, logger *zap.Logger) (transcript.Transcriber, error) {
	switch cfg.Transcription.Backend {
	case config.BackendWhisper, "":
		return whisper.NewCLITranscriber(
			whisper.WithCLIExecutable(cfg.Tools.Whisper),
			whisper.WithCLICommandRunner(runner),
			whisper.WithCLILogger(logger),
		), nil
	case config.BackendWhisperCpp:
		return whisper.NewCppTranscriber(extractor,
			whisper.WithCppExecutable(cfg.Tools.WhisperCpp),
			whisper.WithCppModelsDir(cfg.Tools.WhisperCppModels),
			whisper.WithCppCommandRunner(runner),
			whisper.WithCppLogger(logger),
		), nil
	case config.BackendOpenAI:
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("backend %q requires OPENAI_API_KEY", config.BackendOpenAI)
		}
		client := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL)
		return openai.NewTranscriber(client, cfg.OpenAI.Model, logger), nil
	default:
		return nil, fmt.Errorf("unknown transcription backend %q", cfg.Transcription.Backend)
	}
}

// RunTranscribeWithDependencies runs the transcribe command with injected dependencies (for testing).
// The result is returned for every run that started; err is non-nil when the run aborted.
func RunTranscribeWithDependencies(
	ctx context.Context,
	deps *TranscribeDependencies,
	input TranscribeInput,
	output OutputWriter,
) (*apppipeline.Result, error) {
	model, err := transcript.ParseModelTier(input.Model)
	if err != nil {
		return nil, err
	}
	language, err := transcript.ParseLanguage(input.Language)
	if err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	service := apppipeline.NewService(
		appmedia.NewResolveService(deps.Extractor, deps.Prober, deps.FileChecker, deps.Remover, logger),
		apptranscription.NewService(deps.Transcriber, deps.Writer, logger),
		appcleanup.NewService(deps.FileChecker, deps.Remover, logger),
		output,
		logger,
	)

	return service.Run(ctx, apppipeline.Input{
		InputPath:            input.InputPath,
		OutputPath:           input.OutputPath,
		ScratchPath:          input.ScratchPath,
		Model:                model,
		Language:             language,
		FP16:                 input.FP16,
		KeepScratchOnFailure: input.KeepScratchOnFailure,
	})
}
