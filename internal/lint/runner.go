package lint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ErrTimedOut reports that the lint tool was killed by its deadline.
var ErrTimedOut = errors.New("lint run timed out")

// Runner invokes the external style checker against one file on disk and
// returns its raw stdout.
type Runner interface {
	Run(ctx context.Context, path string) (string, error)
}

// Flake8Runner runs flake8 (or a compatible tool) as a subprocess.
type Flake8Runner struct {
	binary  string
	timeout time.Duration
}

func NewFlake8Runner(binary string, timeout time.Duration) *Flake8Runner {
	if binary == "" {
		binary = "flake8"
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Flake8Runner{binary: binary, timeout: timeout}
}

// Run invokes the tool with the file path as its only argument. A non-zero
// exit status is the tool's normal way of saying findings exist, so it is
// not treated as a failure. The deadline keeps a hung tool from blocking
// the worker forever.
func (r *Flake8Runner) Run(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binary, path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return "", ErrTimedOut
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", fmt.Errorf("run %s: %w", r.binary, err)
		}
	}

	return stdout.String(), nil
}
