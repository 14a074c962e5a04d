package lint

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlake8Runner_CapturesStdout(t *testing.T) {
	t.Parallel()

	r := NewFlake8Runner("echo", time.Second)

	out, err := r.Run(context.Background(), "some/file.py")
	require.NoError(t, err)
	assert.Equal(t, "some/file.py\n", out)
}

func TestFlake8Runner_NonZeroExitIsNotAnError(t *testing.T) {
	t.Parallel()

	// "false" exits 1 the way flake8 does when it has findings.
	r := NewFlake8Runner("false", time.Second)

	_, err := r.Run(context.Background(), "some/file.py")
	assert.NoError(t, err)
}

func TestFlake8Runner_MissingBinary(t *testing.T) {
	t.Parallel()

	r := NewFlake8Runner("definitely-not-a-real-binary", time.Second)

	_, err := r.Run(context.Background(), "some/file.py")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrTimedOut)
}

func TestFlake8Runner_Timeout(t *testing.T) {
	t.Parallel()

	r := NewFlake8Runner("sleep", 50*time.Millisecond)

	_, err := r.Run(context.Background(), "5")
	require.ErrorIs(t, err, ErrTimedOut)
}
