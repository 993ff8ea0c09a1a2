package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	appmedia "media-transcribe/application/media"
	"media-transcribe/domain/media"
	"media-transcribe/infrastructure/command"
	"media-transcribe/infrastructure/ffmpeg"
	"media-transcribe/infrastructure/filesystem"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	extractInputPath   string
	extractScratchPath string
)

var extractAudioCmd = &cobra.Command{
	Use:   "extract-audio",
	Short: "Extract the audio track of a video as 16 kHz mono WAV",
	Long: `Validate a media file and, for video inputs, write its first audio track
as 16 kHz mono 16-bit PCM WAV. This is the audio that 'transcribe' feeds to the
recognizer. The file is kept; nothing is transcribed.

Audio inputs are already usable and are left untouched.

Example:
  media-transcribe extract-audio --input interview.mp4
  media-transcribe extract-audio --input lecture.mkv --scratch lecture.wav`,
	RunE: runExtractAudio,
}

func init() {
	rootCmd.AddCommand(extractAudioCmd)
	extractAudioCmd.Flags().StringVarP(&extractInputPath, "input", "i", "", "Path to the video file (required)")
	extractAudioCmd.Flags().StringVar(&extractScratchPath, "scratch", "", "Where the WAV is written (default from config)")
	extractAudioCmd.MarkFlagRequired("input")
}

func runExtractAudio(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	scratchPath := extractScratchPath
	if scratchPath == "" {
		scratchPath = cfg.Paths.ScratchAudio
	}

	runner := command.NewExecRunner(nil)
	extractor := ffmpeg.NewExtractor(
		ffmpeg.WithExtractorFFmpegPath(cfg.Tools.FFmpeg),
		ffmpeg.WithExtractorCommandRunner(runner),
	)
	prober := ffmpeg.NewProber(
		ffmpeg.WithFFprobePath(cfg.Tools.FFprobe),
		ffmpeg.WithProberCommandRunner(runner),
	)
	fs := filesystem.NewChecker()

	return RunExtractAudioWithDependencies(
		cmd.Context(),
		extractor,
		prober,
		fs,
		filesystem.NewRemover(),
		newRunLogger(GetLogger(), "extract-audio"),
		extractInputPath,
		scratchPath,
		os.Stdout,
	)
}

// RunExtractAudioWithDependencies runs the extract-audio command with injected dependencies (for testing)
func RunExtractAudioWithDependencies(
	ctx context.Context,
	extractor media.AudioExtractor,
	prober media.AudioProber,
	fileChecker media.FileChecker,
	remover media.FileRemover,
	logger *zap.Logger,
	inputPath string,
	scratchPath string,
	output OutputWriter,
) error {
	service := appmedia.NewResolveService(extractor, prober, fileChecker, remover, logger)

	input, err := service.Validate(inputPath)
	if err != nil {
		printDiagnostic(output, err)
		return err
	}

	if input.IsAudio() {
		fmt.Fprintf(output, "%s is already an audio file; nothing to extract.\n", input.Path)
		return nil
	}

	fmt.Fprintf(output, "Extracting audio from %s...\n", input.Path)
	if timed, ok := prober.(interface {
		Duration(context.Context, string) (time.Duration, error)
	}); ok {
		if d, err := timed.Duration(ctx, input.Path); err == nil && d > 0 {
			fmt.Fprintf(output, "Duration: %s\n", media.TimestampFromDuration(d))
		}
	}

	audio, err := service.Resolve(ctx, input, scratchPath)
	if err != nil {
		printDiagnostic(output, err)
		return err
	}

	fmt.Fprintf(output, "Successfully created: %s (%d bytes)\n", audio.Path, fileChecker.Size(audio.Path))
	return nil
}

func printDiagnostic(output OutputWriter, err error) {
	if hint := media.Diagnostic(err); hint != "" {
		fmt.Fprintln(output, hint)
	}
}
