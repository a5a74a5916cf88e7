// SPDX-License-Identifier: MPL-2.0

package platform

import "runtime"

// OS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// ExecutableSuffix returns the file suffix executables carry on goos
// (".exe" on Windows, empty elsewhere).
func ExecutableSuffix(goos string) string {
	if goos == Windows {
		return ".exe"
	}
	return ""
}

// HostExecutableSuffix is ExecutableSuffix for the running host.
func HostExecutableSuffix() string {
	return ExecutableSuffix(runtime.GOOS)
}
