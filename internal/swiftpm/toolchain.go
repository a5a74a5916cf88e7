// SPDX-License-Identifier: MPL-2.0

package swiftpm

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/invowk/swift-run/internal/fsys"
	"github.com/invowk/swift-run/pkg/fspath"
	"github.com/invowk/swift-run/pkg/platform"
	"github.com/invowk/swift-run/pkg/types"
)

// DriverName is the name of the toolchain driver looked up on PATH.
const DriverName = "swift"

// ErrToolchainNotFound is the sentinel error wrapped by ToolchainNotFoundError.
var ErrToolchainNotFound = errors.New("swift toolchain not found")

type (
	// Locator finds the toolchain driver.
	Locator interface {
		Locate() (types.FilesystemPath, error)
	}

	// Toolchain locates the `swift` driver, either from an explicit override
	// or from PATH. The driver doubles as the script interpreter.
	Toolchain struct {
		override types.FilesystemPath
		files    fsys.FileSystem
		lookPath func(string) (string, error)
	}

	// ToolchainNotFoundError is returned when no usable driver exists.
	ToolchainNotFoundError struct {
		Path types.FilesystemPath
		Err  error
	}
)

// NewToolchain creates a Toolchain. An empty override means PATH lookup.
func NewToolchain(override types.FilesystemPath, files fsys.FileSystem) *Toolchain {
	return &Toolchain{
		override: override,
		files:    files,
		lookPath: exec.LookPath,
	}
}

// Locate returns the absolute path of the driver. An override must name an
// existing regular file; it is never silently replaced by a PATH lookup.
func (t *Toolchain) Locate() (types.FilesystemPath, error) {
	if t.override != "" {
		abs, err := fspath.Abs(t.override)
		if err != nil {
			return "", &ToolchainNotFoundError{Path: t.override, Err: err}
		}
		if !t.files.IsRegularFile(abs) {
			return "", &ToolchainNotFoundError{Path: abs, Err: errors.New("not a regular file")}
		}
		return abs, nil
	}

	found, err := t.lookPath(DriverName + platform.HostExecutableSuffix())
	if err != nil {
		return "", &ToolchainNotFoundError{Err: err}
	}
	return fspath.Abs(types.FilesystemPath(found))
}

// Interpreter returns the program that interprets a single source file.
// `swift <file>` does this, so it is the driver itself.
func (t *Toolchain) Interpreter() (types.FilesystemPath, error) {
	return t.Locate()
}

// Error implements the error interface for ToolchainNotFoundError.
func (e *ToolchainNotFoundError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("swift toolchain not found at %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("swift toolchain not found: %v", e.Err)
}

// Unwrap returns both ErrToolchainNotFound and the underlying cause.
func (e *ToolchainNotFoundError) Unwrap() []error { return []error{ErrToolchainNotFound, e.Err} }
