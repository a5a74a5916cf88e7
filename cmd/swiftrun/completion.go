// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/swift-run/internal/catalog"
	"github.com/invowk/swift-run/internal/logging"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// writeCompletionScript prints the completion script for shell.
//
// To enable completions:
//
//	bash:       eval "$(swift-run --generate-completion-script bash)"
//	zsh:        swift-run --generate-completion-script zsh > "${fpath[1]}/_swift-run"
//	fish:       swift-run --generate-completion-script fish > ~/.config/fish/completions/swift-run.fish
//	powershell: swift-run --generate-completion-script powershell | Out-String | Invoke-Expression
func writeCompletionScript(root *cobra.Command, w io.Writer, shell string) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	}
	return fmt.Errorf("unsupported shell %q (expected one of: %s)", shell, strings.Join(completionShells, ", "))
}

// completeExecutables offers the executable products of the package as the
// first positional argument. Later positionals belong to the program and get
// no suggestions.
func (a *App) completeExecutables(ctx context.Context, opts *rootOptions, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	lc, err := newLaunchContext(a.files)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	inv, err := a.prepare(ctx, opts, lc)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Completion output must stay clean; diagnostics go nowhere.
	quiet := logging.New(io.Discard, logging.Options{})
	c, err := a.Catalog(ctx, inv.settings, quiet)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []cobra.Completion
	for _, product := range c.AllExecutables() {
		name := product.Name.String()
		if !strings.HasPrefix(name, toComplete) {
			continue
		}
		completions = append(completions, cobra.CompletionWithDesc(name, describeProduct(product)))
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

func describeProduct(p catalog.Product) string {
	return "executable in " + string(p.Package)
}
