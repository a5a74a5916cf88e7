// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/invowk/swift-run/internal/app/run"
	"github.com/invowk/swift-run/internal/catalog"
	"github.com/invowk/swift-run/internal/config"
	"github.com/invowk/swift-run/internal/fsys"
	"github.com/invowk/swift-run/internal/issue"
	"github.com/invowk/swift-run/internal/launch"
	"github.com/invowk/swift-run/internal/logging"
	"github.com/invowk/swift-run/internal/resolve"
	"github.com/invowk/swift-run/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

type (
	// rootOptions holds the raw flag values of one invocation.
	rootOptions struct {
		skipBuild       bool
		configuration   config.BuildConfiguration
		packagePath     string
		scratchPath     string
		swiftPath       string
		verbose         bool
		configFile      string
		completionShell string
	}

	// invocation is the prepared state shared by the run and completion paths.
	invocation struct {
		launch   launch.Context
		settings Settings
		logger   *slog.Logger
	}
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// NewRootCommand creates the swift-run command bound to app. The root command
// is the run command itself; it has no subcommands, so the first positional
// argument is always an executable name (or a legacy script path).
func NewRootCommand(app *App) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "swift-run [flags] [executable] [arguments...]",
		Short: "Build and run an executable product of a Swift package",
		Long: TitleStyle.Render("swift-run") + SubtitleStyle.Render(" - Build and run an executable product") + `

Builds the requested executable product of the current Swift package and
replaces this process with it. Without a name, the package must declare
exactly one executable product. Everything after the executable name is
passed to the program unchanged.

` + SubtitleStyle.Render("Examples:") + `
  ` + CmdStyle.Render("swift-run") + `                         Run the only executable product
  ` + CmdStyle.Render("swift-run server --port 8080") + `      Run 'server' with arguments
  ` + CmdStyle.Render("swift-run -- --help") + `               Pass '--help' to the only executable
  ` + CmdStyle.Render("swift-run -c release --skip-build") + ` Run an existing release build`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.completionShell != "" {
				return writeCompletionScript(cmd.Root(), app.stdout, opts.completionShell)
			}
			return app.execute(cmd.Context(), opts, intentFromArgs(args, cmd.ArgsLenAtDash()))
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
			return app.completeExecutables(cmd.Context(), opts, args, toComplete)
		},
	}

	// Everything after the executable name belongs to the launched program.
	cmd.Flags().SetInterspersed(false)

	cmd.Flags().BoolVar(&opts.skipBuild, "skip-build", false, "skip building the product before running it")
	cmd.Flags().VarP(newBuildConfigurationValue(&opts.configuration), "configuration", "c", "build configuration (debug|release)")
	cmd.Flags().StringVar(&opts.packagePath, "package-path", "", "path to the root package (default is the current directory)")
	cmd.Flags().StringVar(&opts.scratchPath, "scratch-path", "", "build output directory (default is <package>/.build)")
	cmd.Flags().StringVar(&opts.swiftPath, "swift-path", "", "path to the swift driver (default is swift on PATH)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/swift-run/config.cue)")
	cmd.Flags().StringVar(&opts.completionShell, "generate-completion-script", "", "print a shell completion script (bash|zsh|fish|powershell)")

	_ = cmd.RegisterFlagCompletionFunc("configuration", cobra.FixedCompletions(
		[]cobra.Completion{string(config.BuildConfigurationDebug), string(config.BuildConfigurationRelease)},
		cobra.ShellCompDirectiveNoFileComp,
	))
	_ = cmd.RegisterFlagCompletionFunc("generate-completion-script", cobra.FixedCompletions(completionShells, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.MarkFlagDirname("package-path")
	_ = cmd.MarkFlagDirname("scratch-path")

	return cmd
}

// Execute builds the production App and runs the root command.
// This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error:")+" "+err.Error())
		os.Exit(int(types.ExitFailure))
	}

	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithoutManpage(),
		fang.WithoutCompletions(),
		fang.WithErrorHandler(handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}

// handleError leaves already-rendered ExitErrors alone and hands flag and
// usage errors to fang's default rendering.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// intentFromArgs splits positional arguments into an executable name and the
// program's arguments. Arguments after a leading "--" are never a name, and a
// "--" directly after the name is consumed as a separator.
func intentFromArgs(args []string, argsLenAtDash int) resolve.Intent {
	if len(args) == 0 || argsLenAtDash == 0 {
		return resolve.Intent{Args: args}
	}

	rest := args[1:]
	if argsLenAtDash < 0 && len(rest) > 0 && rest[0] == "--" {
		rest = rest[1:]
	}
	return resolve.Intent{Name: catalog.ProductName(args[0]), Args: rest}
}

// prepare loads configuration, layers flags over it and installs the
// invocation logger.
func (a *App) prepare(ctx context.Context, opts *rootOptions, lc launch.Context) (invocation, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: opts.configFile})
	if err != nil {
		if opts.configFile != "" {
			return invocation{}, err
		}
		// An unreadable default config file degrades to defaults.
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, opts.verbose))
		cfg = config.DefaultConfig()
	}

	settings, err := resolveSettings(cfg, opts, lc.OriginalDir)
	if err != nil {
		return invocation{}, err
	}

	logger := logging.New(a.stderr, logging.Options{Verbose: settings.Verbose})
	slog.SetDefault(logger)

	return invocation{launch: lc, settings: settings, logger: logger}, nil
}

// execute runs one invocation and converts failures into rendered
// ExitErrors.
func (a *App) execute(ctx context.Context, opts *rootOptions, intent resolve.Intent) error {
	lc, err := newLaunchContext(a.files)
	if err != nil {
		_, styled := classifyRunError(err, opts.verbose)
		return a.fail(newServiceError(err, 0, styled), config.ColorSchemeAuto)
	}

	inv, err := a.prepare(ctx, opts, lc)
	if err != nil {
		issueID, styled := classifyRunError(err, opts.verbose)
		if issueID == 0 {
			issueID = issue.ConfigLoadFailedId
		}
		return a.fail(newServiceError(err, issueID, styled), config.ColorSchemeAuto)
	}

	err = a.Run(ctx, inv.settings, run.Request{
		Intent:    intent,
		SkipBuild: inv.settings.SkipBuild,
		Launch:    inv.launch,
	}, inv.logger)
	if err == nil {
		return nil
	}

	// Without exec the program ran as a child; its status is ours.
	var status *launch.ExitStatus
	if errors.As(err, &status) {
		if status.Code.IsSuccess() {
			return nil
		}
		return &ExitError{Code: status.Code.Clamp()}
	}

	issueID, styled := classifyRunError(err, inv.settings.Verbose)
	return a.fail(newServiceError(err, issueID, styled), inv.settings.ColorScheme)
}

// newLaunchContext snapshots the working directory before anything else runs.
func newLaunchContext(files fsys.FileSystem) (launch.Context, error) {
	lc, err := launch.NewContext(files)
	if err != nil {
		return launch.Context{}, issue.NewErrorContext().
			WithOperation("determine the current directory").
			WithSuggestion("Run swift-run from an existing directory").
			Wrap(err).
			BuildError()
	}
	return lc, nil
}

// fail renders svcErr and returns the ExitError that carries it to Execute.
func (a *App) fail(svcErr *ServiceError, scheme config.ColorScheme) error {
	renderServiceError(a.stderr, svcErr, string(scheme))
	return &ExitError{Code: types.ExitFailure, Err: svcErr}
}
