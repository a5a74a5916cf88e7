// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// Configuration files are validated in three steps:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify it with the schema definition
//  3. Validate and decode the unified value
//
// Errors carry the offending file and a JSON-style path (for example
// "config.cue: build.configuration: 2 errors in empty disjunction") so users
// can locate the problem without reading CUE internals.
package cueutil
