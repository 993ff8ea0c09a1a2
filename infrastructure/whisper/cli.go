package whisper

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"media-transcribe/domain/transcript"
	"media-transcribe/infrastructure/command"

	"go.uber.org/zap"
)

// CLITranscriber implements transcript.Transcriber with the reference Whisper CLI
type CLITranscriber struct {
	executable string
	runner     command.Runner
	fs         fsOps
	logger     *zap.Logger
}

// CLIOption is a functional option for configuring CLITranscriber
type CLIOption func(*CLITranscriber)

// WithCLIExecutable sets a custom whisper executable path
func WithCLIExecutable(path string) CLIOption {
	return func(t *CLITranscriber) {
		if path != "" {
			t.executable = path
		}
	}
}

// WithCLICommandRunner sets a custom command runner (for testing)
func WithCLICommandRunner(runner command.Runner) CLIOption {
	return func(t *CLITranscriber) {
		t.runner = runner
	}
}

// WithCLILogger sets the logger
func WithCLILogger(logger *zap.Logger) CLIOption {
	return func(t *CLITranscriber) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewCLITranscriber creates a transcriber that shells out to `whisper`
func NewCLITranscriber(opts ...CLIOption) *CLITranscriber {
	t := &CLITranscriber{
		executable: "whisper",
		runner:     command.NewExecRunner(nil),
		fs:         defaultFS(),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Transcribe implements transcript.Transcriber
func (t *CLITranscriber) Transcribe(ctx context.Context, req transcript.Request) (transcript.Transcript, error) {
	ws, err := newWorkspace(t.fs.mkdirTemp, t.fs.removeAll)
	if err != nil {
		return transcript.Transcript{}, err
	}
	defer ws.Close()

	args := CLIArgs(req, ws.dir)
	t.logger.Info("running whisper",
		zap.String("executable", t.executable),
		zap.String("model", req.Model.String()),
		zap.String("language", req.Language.String()),
		zap.Strings("args", args),
	)

	if err := t.runner.Run(ctx, t.executable, args...); err != nil {
		return transcript.Transcript{}, fmt.Errorf("whisper failed: %w", err)
	}

	text, err := readTranscript(t.fs.readFile, filepath.Join(ws.dir, stem(req.AudioPath)+".txt"))
	if err != nil {
		return transcript.Transcript{}, err
	}

	return transcript.Transcript{Text: text}, nil
}

// CLIArgs builds whisper CLI arguments for a plain-text transcript in outputDir
func CLIArgs(req transcript.Request, outputDir string) []string {
	fp16 := "False"
	if req.FP16 {
		fp16 = "True"
	}
	return []string{
		req.AudioPath,
		"--model", req.Model.String(),
		"--language", req.Language.String(),
		"--task", "transcribe",
		"--fp16", fp16,
		"--output_format", "txt",
		"--output_dir", outputDir,
		"--verbose", "False",
	}
}

// stem returns the base name of path without its extension
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Ensure CLITranscriber implements transcript.Transcriber
var _ transcript.Transcriber = (*CLITranscriber)(nil)
