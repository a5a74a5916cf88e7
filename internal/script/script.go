// SPDX-License-Identifier: MPL-2.0

// Package script recognizes the legacy invocation form in which the user
// hands a Swift source file to the run command instead of a product name.
// Such invocations are redirected to the toolchain's interpreter.
package script

import (
	"os"
	"strings"

	"github.com/invowk/swift-run/internal/fsys"
	"github.com/invowk/swift-run/pkg/fspath"
	"github.com/invowk/swift-run/pkg/types"
)

// Suffix is the source-file suffix that marks a candidate script.
const Suffix = ".swift"

// DeprecationMessage returns the warning shown when candidate is redirected
// to the interpreter.
func DeprecationMessage(candidate string) string {
	return "'swift run " + candidate + "' command to interpret swift files is deprecated; use 'swift " + candidate + "' instead"
}

// IsScriptPath reports whether candidate names an existing Swift source file.
//
// The check fails closed: a candidate without the suffix, a working directory
// that cannot be determined, or a path that is not an existing regular file
// all yield false, and the candidate is then treated as a product name.
func IsScriptPath(fs fsys.FileSystem, candidate string) bool {
	path := types.FilesystemPath(candidate)
	if !path.HasSuffix(Suffix) {
		return false
	}

	abs, ok := absolute(fs, path)
	if !ok {
		return false
	}
	return fs.IsRegularFile(abs)
}

// absolute resolves path against the working directory reported by fs unless
// it is already rooted.
func absolute(fs fsys.FileSystem, path types.FilesystemPath) (types.FilesystemPath, bool) {
	if isRooted(path) {
		return path, true
	}
	wd, err := fs.Getwd()
	if err != nil {
		return "", false
	}
	return fspath.Join(wd, path), true
}

func isRooted(path types.FilesystemPath) bool {
	return fspath.IsAbs(path) || strings.HasPrefix(string(path), string(os.PathSeparator))
}
