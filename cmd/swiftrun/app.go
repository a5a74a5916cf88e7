// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/invowk/swift-run/internal/app/run"
	"github.com/invowk/swift-run/internal/catalog"
	"github.com/invowk/swift-run/internal/config"
	"github.com/invowk/swift-run/internal/fsys"
	"github.com/invowk/swift-run/internal/launch"
	"github.com/invowk/swift-run/internal/swiftpm"
	"github.com/invowk/swift-run/pkg/fspath"
	"github.com/invowk/swift-run/pkg/types"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: the root command handler receives an App reference and delegates
	// every invocation through it.
	App struct {
		Config   ConfigProvider
		files    fsys.FileSystem
		executor launch.Executor
		runner   swiftpm.Runner
		stdout   io.Writer
		stderr   io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp. Tests can supply fakes to keep
	// the toolchain and process replacement out of the picture.
	Dependencies struct {
		Config ConfigProvider
		Files  fsys.FileSystem
		// Executor replaces the process image. Defaults to launch.NewProcessExecutor.
		Executor launch.Executor
		// Runner runs the swift driver. Nil means a CommandRunner per invocation,
		// bound to the configured toolchain.
		Runner swiftpm.Runner
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	// This abstraction enables testing with custom config sources or mock implementations.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// Settings are the effective options of one invocation, after flags were
	// layered over the loaded configuration.
	Settings struct {
		// PackagePath is the absolute root package directory.
		PackagePath   types.FilesystemPath
		ScratchPath   types.FilesystemPath
		SwiftPath     types.FilesystemPath
		Configuration config.BuildConfiguration
		SkipBuild     bool
		ColorScheme   config.ColorScheme
		Verbose       bool
	}
)

// NewApp creates an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Files == nil {
		deps.Files = fsys.OS{}
	}
	if deps.Executor == nil {
		deps.Executor = launch.NewProcessExecutor()
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}

	return &App{
		Config:   deps.Config,
		files:    deps.Files,
		executor: deps.Executor,
		runner:   deps.Runner,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}, nil
}

// Run resolves, builds and launches according to req. On success with an
// exec-capable executor it does not return.
func (a *App) Run(ctx context.Context, settings Settings, req run.Request, logger *slog.Logger) error {
	return a.orchestrator(settings, logger).Run(ctx, req)
}

// Catalog loads the executable catalog of the package at settings.PackagePath.
func (a *App) Catalog(ctx context.Context, settings Settings, logger *slog.Logger) (*catalog.Catalog, error) {
	return a.orchestrator(settings, logger).Catalog(ctx)
}

// orchestrator binds the swiftpm collaborators to one invocation's settings.
func (a *App) orchestrator(settings Settings, logger *slog.Logger) *run.Orchestrator {
	toolchain := swiftpm.NewToolchain(settings.SwiftPath, a.files)

	runner := a.runner
	if runner == nil {
		runner = swiftpm.NewCommandRunner(toolchain, a.stdout, a.stderr, logger)
	}

	builder := swiftpm.NewBuilder(runner, swiftpm.BuildOptions{
		Root:          settings.PackagePath,
		ScratchPath:   settings.ScratchPath,
		Configuration: settings.Configuration,
	}, logger)

	return run.New(run.Dependencies{
		Files:       a.files,
		Graph:       swiftpm.NewGraphLoader(runner, settings.PackagePath, logger),
		Builder:     builder,
		Interpreter: toolchain,
		Launcher:    launch.NewLauncher(a.files, a.executor, logger),
		Logger:      logger,
	})
}

// resolveSettings layers explicitly set flags over cfg. Relative paths are
// anchored at the invocation's original working directory.
func resolveSettings(cfg *config.Config, opts *rootOptions, originalDir types.FilesystemPath) (Settings, error) {
	merged := *cfg
	if opts.swiftPath != "" {
		merged.SwiftPath = config.BinaryFilePath(opts.swiftPath)
	}
	if opts.configuration != "" {
		merged.Build.Configuration = opts.configuration
	}
	if opts.scratchPath != "" {
		merged.Build.ScratchPath = config.ScratchDirPath(opts.scratchPath)
	}
	if opts.skipBuild {
		merged.Build.Skip = true
	}
	if opts.verbose {
		merged.UI.Verbose = true
	}

	if valid, errs := merged.IsValid(); !valid {
		return Settings{}, errors.Join(errs...)
	}

	packagePath := originalDir
	if opts.packagePath != "" {
		packagePath = anchor(originalDir, types.FilesystemPath(opts.packagePath))
	}

	settings := Settings{
		PackagePath:   fspath.Clean(packagePath),
		Configuration: merged.Build.Configuration,
		SkipBuild:     merged.Build.Skip,
		ColorScheme:   merged.UI.ColorScheme,
		Verbose:       merged.UI.Verbose,
	}
	if merged.Build.ScratchPath != "" {
		settings.ScratchPath = fspath.Clean(anchor(originalDir, types.FilesystemPath(merged.Build.ScratchPath)))
	}
	if merged.SwiftPath != "" {
		settings.SwiftPath = fspath.Clean(anchor(originalDir, types.FilesystemPath(merged.SwiftPath)))
	}
	return settings, nil
}

func anchor(dir, path types.FilesystemPath) types.FilesystemPath {
	if fspath.IsAbs(path) {
		return path
	}
	return fspath.Join(dir, path)
}
