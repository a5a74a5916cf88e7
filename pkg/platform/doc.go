// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform constants shared by the toolchain
// locator, the build executor (artifact naming) and the process launcher
// (exec is unavailable on Windows).
package platform
