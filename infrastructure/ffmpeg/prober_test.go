package ffmpeg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const probeWithAudio = `{
  "streams": [
    {"index": 0, "codec_type": "video", "codec_name": "h264"},
    {"index": 1, "codec_type": "audio", "codec_name": "aac", "sample_rate": "48000", "channels": 2}
  ],
  "format": {"format_name": "mov,mp4,m4a,3gp,3g2,mj2", "duration": "62.500000"}
}`

const probeVideoOnly = `{
  "streams": [
    {"index": 0, "codec_type": "video", "codec_name": "h264"}
  ],
  "format": {"format_name": "matroska,webm", "duration": "10.0"}
}`

func TestProber_HasAudio(t *testing.T) {
	tests := []struct {
		name      string
		output    string
		outputErr error
		want      bool
		wantErr   string
	}{
		{name: "audio stream present", output: probeWithAudio, want: true},
		{name: "video only", output: probeVideoOnly, want: false},
		{name: "ffprobe fails", outputErr: errors.New("Invalid data found"), wantErr: "ffprobe could not open"},
		{name: "garbage output", output: "not json", wantErr: "failed to parse ffprobe output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{output: []byte(tt.output), outputErr: tt.outputErr}
			prober := NewProber(WithFFprobePath("ffprobe"), WithProberCommandRunner(runner))

			got, err := prober.HasAudio(context.Background(), "in.mp4")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			require.Len(t, runner.calls, 1)
			assert.Equal(t, "ffprobe", runner.calls[0].name)
			assert.Contains(t, runner.calls[0].args, "-show_streams")
			assert.Equal(t, "in.mp4", runner.calls[0].args[len(runner.calls[0].args)-1])
		})
	}
}

func TestProbeFormat_DurationSeconds(t *testing.T) {
	assert.InDelta(t, 62.5, ProbeFormat{Duration: "62.500000"}.DurationSeconds(), 0.0001)
	assert.Zero(t, ProbeFormat{Duration: "N/A"}.DurationSeconds())
}

func TestProber_Duration(t *testing.T) {
	runner := &fakeRunner{output: []byte(probeWithAudio)}
	prober := NewProber(WithProberCommandRunner(runner))

	got, err := prober.Duration(context.Background(), "talk.mp4")
	require.NoError(t, err)
	assert.Equal(t, 62500*time.Millisecond, got)

	runner = &fakeRunner{output: []byte(`{"streams": [], "format": {}}`)}
	got, err = NewProber(WithProberCommandRunner(runner)).Duration(context.Background(), "talk.mp4")
	require.NoError(t, err)
	assert.Zero(t, got)
}
