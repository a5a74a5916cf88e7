// SPDX-License-Identifier: MPL-2.0

//go:build !unix && !windows

package launch

import (
	"errors"

	"github.com/invowk/swift-run/pkg/types"
)

// ProcessExecutor reports that process replacement is unsupported.
type ProcessExecutor struct{}

// NewProcessExecutor returns the Executor for the host platform.
func NewProcessExecutor() Executor { return ProcessExecutor{} }

// Exec always fails with errors.ErrUnsupported.
func (ProcessExecutor) Exec(types.FilesystemPath, []string, []string) error {
	return errors.ErrUnsupported
}
