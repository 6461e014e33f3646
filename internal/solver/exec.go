package solver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/optilab/stsbench/internal/config"
)

// runCommand executes an external solver under a watchdog that allows the
// configured timeout plus a grace period, then kills the process. Failures
// to spawn are folded into the outcome; nonzero exits are not failures
// here, since SAT solvers answer through exit codes.
func runCommand(ctx context.Context, cfg config.Configuration, name string, args ...string) RawOutcome {
	watchdog, cancel := context.WithTimeout(ctx, cfg.Timeout+WatchdogBuffer)
	defer cancel()

	cmd := exec.CommandContext(watchdog, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	outcome := RawOutcome{
		Payload:  stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
		TimedOut: errors.Is(watchdog.Err(), context.DeadlineExceeded),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			outcome.ExitCode = exitErr.ExitCode()
		} else {
			outcome.Err = err.Error()
		}
	}
	return outcome
}

// scratchFile writes solver input to a temporary file and returns its path
// with a cleanup function. Removal is guaranteed to the caller even when
// the invocation fails.
func scratchFile(pattern, content string) (string, func(), error) {
	file, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { os.Remove(file.Name()) }
	if _, err := file.WriteString(content); err != nil {
		file.Close()
		cleanup()
		return "", nil, err
	}
	if err := file.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return file.Name(), cleanup, nil
}

// failure builds the outcome for an invocation that never reached the
// solver.
func failure(err error) RawOutcome {
	return RawOutcome{Err: err.Error()}
}
