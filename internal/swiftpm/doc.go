// SPDX-License-Identifier: MPL-2.0

// Package swiftpm drives the Swift toolchain on behalf of swift-run.
//
// It locates the `swift` driver (Toolchain), runs it as a subprocess
// (CommandRunner), loads the package graph from `swift package describe` and
// `swift package show-dependencies` (GraphLoader) and builds single products
// (Builder). swift-run never compiles or resolves anything itself; every
// piece of package knowledge comes from the driver's JSON output.
package swiftpm
