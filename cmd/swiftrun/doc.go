// SPDX-License-Identifier: MPL-2.0

// Package cmd is the swift-run command line: flag parsing, the App
// composition root, error classification and exit codes.
package cmd
