// SPDX-License-Identifier: MPL-2.0

//go:build unix

package launch

import (
	"fmt"

	"github.com/invowk/swift-run/pkg/types"

	"golang.org/x/sys/unix"
)

// ProcessExecutor replaces the process image with execve(2).
type ProcessExecutor struct{}

// NewProcessExecutor returns the Executor for the host platform.
func NewProcessExecutor() Executor { return ProcessExecutor{} }

// Exec calls execve. It only returns when the kernel refused the call.
func (ProcessExecutor) Exec(path types.FilesystemPath, argv, env []string) error {
	if err := unix.Exec(string(path), argv, env); err != nil {
		return fmt.Errorf("execve: %w", err)
	}
	return nil
}
