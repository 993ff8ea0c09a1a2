package whisper

import (
	"context"
	"fmt"
	"path/filepath"

	"media-transcribe/domain/media"
	"media-transcribe/domain/transcript"
	"media-transcribe/infrastructure/command"

	"go.uber.org/zap"
)

// CppTranscriber implements transcript.Transcriber with whisper.cpp's whisper-cli
type CppTranscriber struct {
	executable string
	modelsDir  string
	runner     command.Runner
	converter  media.AudioExtractor
	fs         fsOps
	logger     *zap.Logger
}

// CppOption is a functional option for configuring CppTranscriber
type CppOption func(*CppTranscriber)

// WithCppExecutable sets a custom whisper-cli executable path
func WithCppExecutable(path string) CppOption {
	return func(t *CppTranscriber) {
		if path != "" {
			t.executable = path
		}
	}
}

// WithCppModelsDir sets the directory holding ggml model files
func WithCppModelsDir(dir string) CppOption {
	return func(t *CppTranscriber) {
		if dir != "" {
			t.modelsDir = dir
		}
	}
}

// WithCppCommandRunner sets a custom command runner (for testing)
func WithCppCommandRunner(runner command.Runner) CppOption {
	return func(t *CppTranscriber) {
		t.runner = runner
	}
}

// WithCppLogger sets the logger
func WithCppLogger(logger *zap.Logger) CppOption {
	return func(t *CppTranscriber) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewCppTranscriber creates a whisper.cpp transcriber. converter turns
// non-WAV audio into 16 kHz mono WAV, which whisper-cli requires.
func NewCppTranscriber(converter media.AudioExtractor, opts ...CppOption) *CppTranscriber {
	t := &CppTranscriber{
		executable: "whisper-cli",
		modelsDir:  "models",
		runner:     command.NewExecRunner(nil),
		converter:  converter,
		fs:         defaultFS(),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// ModelFile returns the ggml file name for a tier
func ModelFile(tier transcript.ModelTier) string {
	switch tier {
	case transcript.TierLarge:
		tier = transcript.TierLargeV3
	case transcript.TierTurbo:
		tier = transcript.TierLargeV3Turbo
	}
	return "ggml-" + tier.String() + ".bin"
}

// ModelPath returns where the model for tier is expected on disk
func (t *CppTranscriber) ModelPath(tier transcript.ModelTier) string {
	return filepath.Join(t.modelsDir, ModelFile(tier))
}

// Transcribe implements transcript.Transcriber
func (t *CppTranscriber) Transcribe(ctx context.Context, req transcript.Request) (transcript.Transcript, error) {
	modelPath := t.ModelPath(req.Model)
	if _, err := t.fs.stat(modelPath); err != nil {
		return transcript.Transcript{}, fmt.Errorf("whisper.cpp model %s not found: %w", modelPath, err)
	}

	ws, err := newWorkspace(t.fs.mkdirTemp, t.fs.removeAll)
	if err != nil {
		return transcript.Transcript{}, err
	}
	defer ws.Close()

	audioPath := req.AudioPath
	if media.Extension(audioPath) != ".wav" {
		wavPath := filepath.Join(ws.dir, "input-16k-mono.wav")
		convReq, err := media.NewExtractionRequest(audioPath, wavPath)
		if err != nil {
			return transcript.Transcript{}, err
		}
		t.logger.Info("converting audio to 16 kHz WAV for whisper.cpp", zap.String("source", audioPath))
		if err := t.converter.Extract(ctx, convReq); err != nil {
			return transcript.Transcript{}, fmt.Errorf("failed to convert audio for whisper.cpp: %w", err)
		}
		audioPath = wavPath
	}

	outBase := filepath.Join(ws.dir, "transcript")
	args := CppArgs(modelPath, audioPath, outBase, req)
	t.logger.Info("running whisper.cpp",
		zap.String("executable", t.executable),
		zap.String("model", modelPath),
		zap.String("language", req.Language.String()),
		zap.Strings("args", args),
	)

	if err := t.runner.Run(ctx, t.executable, args...); err != nil {
		return transcript.Transcript{}, fmt.Errorf("whisper.cpp failed: %w", err)
	}

	text, err := readTranscript(t.fs.readFile, outBase+".txt")
	if err != nil {
		return transcript.Transcript{}, err
	}

	return transcript.Transcript{Text: text}, nil
}

// CppArgs builds whisper-cli arguments for txt output at outBase.txt
func CppArgs(modelPath, audioPath, outBase string, req transcript.Request) []string {
	args := []string{
		"-m", modelPath,
		"-f", audioPath,
		"-l", req.Language.String(),
		"-otxt",
		"-of", outBase,
		"-nt", // No timestamps in the text output
	}
	if !req.FP16 {
		args = append(args, "-ng") // CPU only
	}
	return args
}

// Ensure CppTranscriber implements transcript.Transcriber
var _ transcript.Transcriber = (*CppTranscriber)(nil)
