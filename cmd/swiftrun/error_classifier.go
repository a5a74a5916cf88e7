// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/invowk/swift-run/internal/app/run"
	"github.com/invowk/swift-run/internal/issue"
	"github.com/invowk/swift-run/internal/launch"
	"github.com/invowk/swift-run/internal/resolve"
	"github.com/invowk/swift-run/internal/swiftpm"
)

// classifyRunError maps invocation failures to issue catalog IDs and returns
// a styled message for CLI rendering. A zero Id means no catalog entry fits.
//
// Errors that link a catalog entry themselves win. A missing toolchain is
// checked next because it surfaces wrapped inside package-load and build
// errors.
func classifyRunError(err error, verbose bool) (issueID issue.Id, styledMsg string) {
	switch {
	case issue.IssueOf(err) != 0:
		issueID = issue.IssueOf(err)
	case errors.Is(err, swiftpm.ErrToolchainNotFound):
		issueID = issue.ToolchainNotFoundId
	case errors.Is(err, resolve.ErrNoExecutableFound):
		issueID = issue.NoExecutableFoundId
	case errors.Is(err, resolve.ErrExecutableNotFound):
		issueID = issue.ExecutableNotFoundId
	case errors.Is(err, resolve.ErrMultipleExecutables):
		issueID = issue.MultipleExecutablesId
	case errors.Is(err, run.ErrBuildFailed):
		issueID = issue.BuildFailedId
	case errors.Is(err, launch.ErrLaunchFailed):
		issueID = issue.LaunchFailedId
	case errors.Is(err, swiftpm.ErrPackageLoad):
		issueID = issue.PackageLoadFailedId
	}

	return issueID, fmt.Sprintf("%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
