// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/invowk/swift-run/internal/fsys"
	"github.com/invowk/swift-run/internal/logging"
	"github.com/invowk/swift-run/pkg/fspath"
	"github.com/invowk/swift-run/pkg/types"
)

// ErrLaunchFailed is the sentinel error wrapped by LaunchError.
var ErrLaunchFailed = errors.New("launch failed")

type (
	// Context is the working-directory state of one invocation. OriginalDir
	// is snapshotted once, before anything can move the process working
	// directory, and is the single point Launch restores to.
	Context struct {
		OriginalDir types.FilesystemPath
	}

	// Executor replaces the current process image with path, passing argv
	// (argv[0] included) and env. It returns only when replacement failed,
	// or, on platforms without exec, with an *ExitStatus once the program has
	// finished.
	Executor interface {
		Exec(path types.FilesystemPath, argv, env []string) error
	}

	// Launcher restores the working directory and hands the process over to
	// an Executor.
	Launcher struct {
		files   fsys.FileSystem
		exec    Executor
		logger  *slog.Logger
		environ func() []string
	}

	// LaunchError is returned when the program could not be started.
	LaunchError struct {
		Path types.FilesystemPath
		Err  error
	}

	// ExitStatus reports the exit status of a program that ran to completion
	// as a child process. It is only produced where exec is unavailable.
	ExitStatus struct {
		Code types.ExitCode
	}
)

// NewContext snapshots the current working directory.
func NewContext(files fsys.FileSystem) (Context, error) {
	wd, err := files.Getwd()
	if err != nil {
		return Context{}, err
	}
	return Context{OriginalDir: wd}, nil
}

// NewLauncher creates a Launcher. A nil logger discards log output.
func NewLauncher(files fsys.FileSystem, exec Executor, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Launcher{
		files:   files,
		exec:    exec,
		logger:  logger,
		environ: os.Environ,
	}
}

// Launch runs executable with args in place of the current process.
//
// Steps: restore lc.OriginalDir when the current directory differs from it or
// cannot be read; compute the path of executable relative to lc.OriginalDir,
// used as argv[0]; exec the absolute executable path with
// [relative path] + args. A nil return means the process was handed over;
// with the production Executor on Unix that point is never reached.
func (l *Launcher) Launch(lc Context, executable types.FilesystemPath, args []string) error {
	if err := l.restoreWorkingDir(lc); err != nil {
		return &LaunchError{Path: executable, Err: err}
	}

	if !l.files.IsRegularFile(executable) {
		return &LaunchError{Path: executable, Err: fs.ErrNotExist}
	}

	argv := make([]string, 0, 1+len(args))
	argv = append(argv, string(DisplayPath(lc.OriginalDir, executable)))
	argv = append(argv, args...)

	l.logger.Debug("launching", "path", executable, "command", logging.QuoteCommand(argv))

	if err := l.exec.Exec(executable, argv, l.environ()); err != nil {
		var status *ExitStatus
		if errors.As(err, &status) {
			return err
		}
		return &LaunchError{Path: executable, Err: err}
	}
	return nil
}

// restoreWorkingDir moves the process back to lc.OriginalDir. No directory
// change happens when the process is already there.
func (l *Launcher) restoreWorkingDir(lc Context) error {
	cur, err := l.files.Getwd()
	if err == nil && cur == lc.OriginalDir {
		return nil
	}

	l.logger.Debug("restoring working directory", "from", cur, "to", lc.OriginalDir)
	if err := l.files.Chdir(lc.OriginalDir); err != nil {
		return fmt.Errorf("restore working directory %s: %w", lc.OriginalDir, err)
	}
	return nil
}

// DisplayPath returns executable relative to dir, falling back to executable
// itself when no relative form exists (e.g. different Windows volumes).
func DisplayPath(dir, executable types.FilesystemPath) types.FilesystemPath {
	rel, err := fspath.Rel(dir, executable)
	if err != nil {
		return executable
	}
	return rel
}

// Error implements the error interface for LaunchError.
func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Path, e.Err)
}

// Unwrap returns both ErrLaunchFailed and the underlying cause, so
// errors.Is works for the sentinel and for causes such as fs.ErrNotExist.
func (e *LaunchError) Unwrap() []error { return []error{ErrLaunchFailed, e.Err} }

// Error implements the error interface for ExitStatus.
func (e *ExitStatus) Error() string {
	return "exit status " + e.Code.String()
}
