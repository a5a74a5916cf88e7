// SPDX-License-Identifier: MPL-2.0

//go:build windows

package launch

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"

	"github.com/invowk/swift-run/pkg/types"
)

// ProcessExecutor emulates process replacement on Windows, which has no
// exec: the program runs as a child sharing the console and standard
// streams, and its exit status is returned as an *ExitStatus.
type ProcessExecutor struct{}

// NewProcessExecutor returns the Executor for the host platform.
func NewProcessExecutor() Executor { return ProcessExecutor{} }

// Exec runs the program to completion and always returns a non-nil error:
// *ExitStatus when the program ran, anything else when it could not start.
func (ProcessExecutor) Exec(path types.FilesystemPath, argv, env []string) error {
	cmd := &exec.Cmd{
		Path:   string(path),
		Args:   argv,
		Env:    env,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	// The child receives console interrupts itself; the parent only waits.
	signal.Ignore(os.Interrupt)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitStatus{Code: types.ExitCode(exitErr.ExitCode()).Clamp()}
		}
		return fmt.Errorf("start process: %w", err)
	}
	return &ExitStatus{Code: types.ExitSuccess}
}
