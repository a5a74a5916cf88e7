// SPDX-License-Identifier: MPL-2.0

// Package config handles swift-run configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/swift-run/config.cue (or $XDG_CONFIG_HOME on Linux,
// ~/Library/Application Support/swift-run/config.cue on macOS, %APPDATA%\swift-run\config.cue
// on Windows), validated against the embedded config_schema.cue, and overridden by
// SWIFT_RUN_* environment variables. Command-line flags are applied on top by the CLI.
package config
