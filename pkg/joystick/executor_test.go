package joystick

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLocal(t *testing.T) {
	executor := NewShellExecutor()

	out, err := executor.RunLocal(context.Background(), "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestRunLocalFailureCarriesStderr(t *testing.T) {
	executor := NewShellExecutor()

	_, err := executor.RunLocal(context.Background(), "echo broken >&2; exit 3")
	require.Error(t, err)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, "broken", cmdErr.Error())
	assert.Equal(t, "echo broken >&2; exit 3", cmdErr.Command)
}

func TestRunLocalCancelled(t *testing.T) {
	executor := NewShellExecutor()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := executor.RunLocal(ctx, "sleep 5")
	assert.Error(t, err)
}

func TestRunOnDeviceRequiresHost(t *testing.T) {
	executor := NewShellExecutor()

	_, err := executor.RunOnDevice(context.Background(), Connection{}, "uptime")
	assert.ErrorContains(t, err, "no host")
}

func TestRunOnDeviceRejectsBadKey(t *testing.T) {
	executor := NewShellExecutor()

	_, err := executor.RunOnDevice(context.Background(), Connection{Host: "127.0.0.1", Key: "not a key"}, "uptime")
	assert.ErrorContains(t, err, "invalid device ssh key")
}
