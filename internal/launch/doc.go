// SPDX-License-Identifier: MPL-2.0

// Package launch replaces the swift-run process with the resolved program.
//
// Launching is process replacement, not spawn-and-wait: on Unix a successful
// Launch never returns and the program inherits the process identity, the
// standard streams and the exit status. Launch only returns on failure, and
// the working directory captured when the invocation started is restored
// beforehand so the program observes the directory the user ran from.
package launch
