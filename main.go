// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/invowk/swift-run/cmd/swiftrun"

func main() {
	cmd.Execute()
}
