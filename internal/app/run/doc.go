// SPDX-License-Identifier: MPL-2.0

// Package run implements one `swift run` invocation: detect a legacy script
// path, otherwise resolve the requested executable from the package catalog,
// build it unless told not to, and hand the process over to it.
//
// Every external effect goes through a collaborator interface so the whole
// flow can be exercised with in-memory fakes.
package run
