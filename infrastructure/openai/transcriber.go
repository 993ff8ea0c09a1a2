package openai

import (
	"context"
	"fmt"
	"strings"

	"media-transcribe/domain/transcript"

	goopenai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// DefaultModel is the remote model used when none is configured
const DefaultModel = goopenai.Whisper1

// Client is the subset of the go-openai client used for transcription
type Client interface {
	CreateTranscription(ctx context.Context, request goopenai.AudioRequest) (goopenai.AudioResponse, error)
}

// Transcriber implements transcript.Transcriber using an OpenAI-compatible API.
// The remote service picks its own model size, so the requested tier is only logged.
type Transcriber struct {
	client Client
	model  string
	logger *zap.Logger
}

// NewClient builds a go-openai client. baseURL may be empty for the default endpoint.
func NewClient(apiKey, baseURL string) *goopenai.Client {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/"); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return goopenai.NewClientWithConfig(cfg)
}

// NewTranscriber creates a remote transcriber
func NewTranscriber(client Client, model string, logger *zap.Logger) *Transcriber {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transcriber{client: client, model: model, logger: logger}
}

// Transcribe implements transcript.Transcriber
func (t *Transcriber) Transcribe(ctx context.Context, req transcript.Request) (transcript.Transcript, error) {
	t.logger.Info("sending audio to remote transcription API",
		zap.String("model", t.model),
		zap.String("requested_tier", req.Model.String()),
		zap.String("language", req.Language.String()),
	)

	resp, err := t.client.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    t.model,
		FilePath: req.AudioPath,
		Language: req.Language.String(),
		Format:   goopenai.AudioResponseFormatText,
	})
	if err != nil {
		return transcript.Transcript{}, fmt.Errorf("createTranscription failed: %w", err)
	}

	return transcript.Transcript{Text: strings.TrimSpace(resp.Text)}, nil
}

// Ensure Transcriber implements transcript.Transcriber
var _ transcript.Transcriber = (*Transcriber)(nil)
