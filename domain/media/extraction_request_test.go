package media

import (
	"strings"
	"testing"
)

func TestNewExtractionRequest(t *testing.T) {
	tests := []struct {
		name        string
		sourcePath  string
		outputPath  string
		wantOutput  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "explicit scratch path",
			sourcePath: "/videos/interview.mp4",
			outputPath: "/tmp/scratch.wav",
			wantOutput: "/tmp/scratch.wav",
		},
		{
			name:       "default scratch path",
			sourcePath: "/videos/interview.mp4",
			wantOutput: DefaultScratchPath,
		},
		{
			name:        "empty source path",
			outputPath:  "/tmp/scratch.wav",
			wantErr:     true,
			errContains: "source path is required",
		},
		{
			name:        "scratch equals source",
			sourcePath:  "/audio/take.wav",
			outputPath:  "/audio/./take.wav",
			wantErr:     true,
			errContains: "must differ",
		},
		{
			name:        "scratch not wav",
			sourcePath:  "/videos/interview.mp4",
			outputPath:  "/tmp/scratch.mp3",
			wantErr:     true,
			errContains: "must end in .wav",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewExtractionRequest(tt.sourcePath, tt.outputPath)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewExtractionRequest() expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("NewExtractionRequest() error = %v, want error containing %q", err, tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("NewExtractionRequest() unexpected error: %v", err)
			}
			if got.OutputPath != tt.wantOutput {
				t.Errorf("OutputPath = %q, want %q", got.OutputPath, tt.wantOutput)
			}
			if got.SampleRate != DefaultSampleRate || got.Channels != DefaultChannels {
				t.Errorf("got %d Hz / %d ch, want %d Hz / %d ch", got.SampleRate, got.Channels, DefaultSampleRate, DefaultChannels)
			}
		})
	}
}
