package ffmpeg

import (
	"context"
)

type runCall struct {
	name string
	args []string
}

// fakeRunner records calls and returns canned results
type fakeRunner struct {
	calls     []runCall
	runErr    error
	output    []byte
	outputErr error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
	f.calls = append(f.calls, runCall{name: name, args: args})
	return f.runErr
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, runCall{name: name, args: args})
	return f.output, f.outputErr
}
