// SPDX-License-Identifier: MPL-2.0

// Package fsys is the filesystem collaborator of swift-run: it answers
// working-directory queries, moves the process working directory, and checks
// whether a path names an existing regular file. Path arithmetic lives in
// pkg/fspath.
package fsys

import (
	"fmt"
	"os"

	"github.com/invowk/swift-run/pkg/types"
)

type (
	// FileSystem is the subset of process filesystem state the run pipeline
	// depends on. Implementations other than OS exist only in tests.
	FileSystem interface {
		// Getwd returns the process working directory.
		Getwd() (types.FilesystemPath, error)
		// Chdir sets the process working directory.
		Chdir(dir types.FilesystemPath) error
		// IsRegularFile reports whether path exists and is a regular file
		// (symlinks are followed).
		IsRegularFile(path types.FilesystemPath) bool
	}

	// OS implements FileSystem with the os package.
	OS struct{}
)

// Getwd returns the process working directory.
func (OS) Getwd() (types.FilesystemPath, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return types.FilesystemPath(wd), nil
}

// Chdir sets the process working directory.
func (OS) Chdir(dir types.FilesystemPath) error {
	if err := os.Chdir(string(dir)); err != nil {
		return fmt.Errorf("change working directory: %w", err)
	}
	return nil
}

// IsRegularFile reports whether path exists and is a regular file.
func (OS) IsRegularFile(path types.FilesystemPath) bool {
	info, err := os.Stat(string(path))
	return err == nil && info.Mode().IsRegular()
}
