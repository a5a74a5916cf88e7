// SPDX-License-Identifier: MPL-2.0

package swiftpm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/invowk/swift-run/internal/logging"
	"github.com/invowk/swift-run/pkg/types"
)

type (
	// Runner runs the toolchain driver in a directory. Implementations set
	// the child's working directory and never change the caller's.
	Runner interface {
		// Output runs the driver and returns its standard output.
		Output(ctx context.Context, dir types.FilesystemPath, args ...string) ([]byte, error)
		// Run runs the driver with its output streamed to the user.
		Run(ctx context.Context, dir types.FilesystemPath, args ...string) error
	}

	// CommandRunner is the os/exec backed Runner.
	CommandRunner struct {
		driver Locator
		stdout io.Writer
		stderr io.Writer
		logger *slog.Logger
	}

	// CommandError describes a failed driver invocation.
	CommandError struct {
		Args   []string
		Stderr string
		Err    error
	}
)

// NewCommandRunner creates a CommandRunner. The driver is located lazily on
// each invocation so a missing toolchain surfaces as ErrToolchainNotFound
// from the operation that needed it.
func NewCommandRunner(driver Locator, stdout, stderr io.Writer, logger *slog.Logger) *CommandRunner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CommandRunner{driver: driver, stdout: stdout, stderr: stderr, logger: logger}
}

// Output implements Runner.
func (r *CommandRunner) Output(ctx context.Context, dir types.FilesystemPath, args ...string) ([]byte, error) {
	cmd, err := r.command(ctx, dir, args)
	if err != nil {
		return nil, err
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, &CommandError{Args: args, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return stdout.Bytes(), nil
}

// Run implements Runner.
func (r *CommandRunner) Run(ctx context.Context, dir types.FilesystemPath, args ...string) error {
	cmd, err := r.command(ctx, dir, args)
	if err != nil {
		return err
	}

	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	if err := cmd.Run(); err != nil {
		return &CommandError{Args: args, Err: err}
	}
	return nil
}

func (r *CommandRunner) command(ctx context.Context, dir types.FilesystemPath, args []string) (*exec.Cmd, error) {
	driver, err := r.driver.Locate()
	if err != nil {
		return nil, err
	}

	r.logger.Debug("running", "dir", dir, "command", logging.QuoteCommand(append([]string{DriverName}, args...)))

	cmd := exec.CommandContext(ctx, string(driver), args...)
	cmd.Dir = string(dir)
	return cmd, nil
}

// Error implements the error interface for CommandError.
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s: %v", logging.QuoteCommand(append([]string{DriverName}, e.Args...)), e.Err)
	if e.Stderr != "" {
		msg += "\n" + e.Stderr
	}
	return msg
}

// Unwrap returns the underlying process error.
func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode returns the driver's exit code, or -1 when it did not exit normally.
func (e *CommandError) ExitCode() int {
	if exitErr, ok := e.Err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return -1
}
