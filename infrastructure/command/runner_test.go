package command

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunner_Output(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	out, err := NewExecRunner(nil).Output(context.Background(), "sh", "-c", "printf hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))
}

func TestExecRunner_RunFailureCapturesStderr(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	var mirrored strings.Builder
	err := NewExecRunner(&mirrored).Run(context.Background(), "sh", "-c", "echo broken >&2; exit 3")
	require.Error(t, err)

	var cmdErr *Error
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Equal(t, "broken", cmdErr.Stderr)
	assert.Contains(t, err.Error(), "sh exited with code 3: broken")
	assert.Equal(t, "broken\n", mirrored.String())
}

func TestExecRunner_MissingBinary(t *testing.T) {
	err := NewExecRunner(nil).Run(context.Background(), "definitely-not-a-real-binary-xyz")
	require.Error(t, err)

	var cmdErr *Error
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, -1, cmdErr.ExitCode)
	assert.True(t, errors.Is(err, exec.ErrNotFound))
}

func TestExecRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewExecRunner(nil).Run(ctx, "sh", "-c", "sleep 5")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTail(t *testing.T) {
	assert.Equal(t, "abc", tail("abc", 5))
	assert.Equal(t, "...de", tail("abcde", 2))
}
