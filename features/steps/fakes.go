//go:build integration

package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"media-transcribe/domain/transcript"
)

// fakeToolRunner stands in for ffmpeg and ffprobe. Run writes a small WAV to
// the last argument, Output answers version and probe queries.
type fakeToolRunner struct {
	runs          [][]string
	noAudio       bool
	ffmpegFail    string
	ffmpegMissing bool
}

func (f *fakeToolRunner) Run(ctx context.Context, name string, args ...string) error {
	f.runs = append(f.runs, append([]string{name}, args...))
	if f.ffmpegFail != "" {
		return fmt.Errorf("%s exited with code 1: %s", name, f.ffmpegFail)
	}
	out := args[len(args)-1]
	return os.WriteFile(out, []byte("RIFF\x24\x00\x00\x00WAVEfmt "), 0644)
}

func (f *fakeToolRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	if len(args) == 1 && args[0] == "-version" {
		if f.ffmpegMissing {
			return nil, fmt.Errorf("exec: %q: executable file not found in $PATH", name)
		}
		return []byte("ffmpeg version 6.1"), nil
	}
	if strings.Contains(name, "ffprobe") {
		if f.noAudio {
			return []byte(`{"streams":[{"index":0,"codec_type":"video","codec_name":"h264"}],"format":{"duration":"12.0"}}`), nil
		}
		return []byte(`{"streams":[{"index":0,"codec_type":"video","codec_name":"h264"},{"index":1,"codec_type":"audio","codec_name":"aac"}],"format":{"duration":"12.0"}}`), nil
	}
	return nil, fmt.Errorf("unexpected command %s", name)
}

// lastRun returns the most recent Run call, or nil
func (f *fakeToolRunner) lastRun() []string {
	if len(f.runs) == 0 {
		return nil
	}
	return f.runs[len(f.runs)-1]
}

// fakeRecognizer returns fixed text and records what it was asked to transcribe
type fakeRecognizer struct {
	text         string
	failWith     string
	requests     []transcript.Request
	audioExisted bool
}

func (f *fakeRecognizer) Transcribe(ctx context.Context, req transcript.Request) (transcript.Transcript, error) {
	f.requests = append(f.requests, req)
	_, err := os.Stat(req.AudioPath)
	f.audioExisted = err == nil
	if f.failWith != "" {
		return transcript.Transcript{}, fmt.Errorf("%s", f.failWith)
	}
	return transcript.Transcript{Text: f.text}, nil
}

func (f *fakeRecognizer) lastAudio() string {
	if len(f.requests) == 0 {
		return ""
	}
	return filepath.Base(f.requests[len(f.requests)-1].AudioPath)
}
