package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"media-transcribe/domain/media"
	"media-transcribe/infrastructure/command"
)

// ProbeOutput is the subset of ffprobe's JSON output used here
type ProbeOutput struct {
	Streams []ProbeStream `json:"streams"`
	Format  ProbeFormat   `json:"format"`
}

// ProbeStream describes one stream in the container
type ProbeStream struct {
	Index      int    `json:"index"`
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	SampleRate string `json:"sample_rate"`
	Channels   int    `json:"channels"`
}

// ProbeFormat describes the container
type ProbeFormat struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
}

// DurationSeconds parses the container duration, returning 0 when unknown
func (f ProbeFormat) DurationSeconds() float64 {
	d, err := strconv.ParseFloat(strings.TrimSpace(f.Duration), 64)
	if err != nil {
		return 0
	}
	return d
}

// Prober implements media.AudioProber using ffprobe
type Prober struct {
	ffprobePath string
	runner      command.Runner
}

// ProberOption is a functional option for configuring Prober
type ProberOption func(*Prober)

// WithFFprobePath sets a custom ffprobe executable path
func WithFFprobePath(path string) ProberOption {
	return func(p *Prober) {
		if path != "" {
			p.ffprobePath = path
		}
	}
}

// WithProberCommandRunner sets a custom command runner (for testing)
func WithProberCommandRunner(runner command.Runner) ProberOption {
	return func(p *Prober) {
		p.runner = runner
	}
}

// NewProber creates a new ffprobe-based prober
func NewProber(opts ...ProberOption) *Prober {
	p := &Prober{
		ffprobePath: "ffprobe",
		runner:      command.NewExecRunner(nil),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Probe returns the streams and format of a container
func (p *Prober) Probe(ctx context.Context, path string) (*ProbeOutput, error) {
	out, err := p.runner.Output(ctx, p.ffprobePath,
		"-v", "error",
		"-print_format", "json",
		"-show_streams",
		"-show_format",
		path,
	)
	if err != nil {
		return nil, fmt.Errorf("ffprobe could not open %s: %w", path, err)
	}

	var probe ProbeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	return &probe, nil
}

// HasAudio implements media.AudioProber
func (p *Prober) HasAudio(ctx context.Context, path string) (bool, error) {
	probe, err := p.Probe(ctx, path)
	if err != nil {
		return false, err
	}
	for _, stream := range probe.Streams {
		if stream.CodecType == "audio" {
			return true, nil
		}
	}
	return false, nil
}

// Duration returns the container length, or 0 when ffprobe does not report one
func (p *Prober) Duration(ctx context.Context, path string) (time.Duration, error) {
	probe, err := p.Probe(ctx, path)
	if err != nil {
		return 0, err
	}
	return time.Duration(probe.Format.DurationSeconds() * float64(time.Second)), nil
}

// Ensure Prober implements media.AudioProber
var _ media.AudioProber = (*Prober)(nil)
