// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"

	"github.com/invowk/swift-run/pkg/platform"
)

// SetHomeDir points the platform's home-directory variable (USERPROFILE on
// Windows, HOME elsewhere) at dir and returns a cleanup function restoring it.
// Configuration tests use it to isolate the per-user config directory.
//
//	t.Cleanup(testutil.SetHomeDir(t, t.TempDir()))
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()

	if runtime.GOOS == platform.Windows {
		return MustSetenv(t, "USERPROFILE", dir)
	}
	return MustSetenv(t, "HOME", dir)
}
