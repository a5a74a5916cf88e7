// SPDX-License-Identifier: MPL-2.0

package swiftpm

import (
	"context"
	"log/slog"

	"github.com/invowk/swift-run/internal/catalog"
	"github.com/invowk/swift-run/internal/config"
	"github.com/invowk/swift-run/pkg/fspath"
	"github.com/invowk/swift-run/pkg/platform"
	"github.com/invowk/swift-run/pkg/types"
)

// defaultScratchDir is SwiftPM's scratch directory, relative to the package root.
const defaultScratchDir = ".build"

type (
	// BuildOptions selects where and how products are built.
	BuildOptions struct {
		// Root is the absolute directory of the root package.
		Root types.FilesystemPath
		// ScratchPath overrides <Root>/.build when non-empty.
		ScratchPath   types.FilesystemPath
		Configuration config.BuildConfiguration
	}

	// Builder builds single products with `swift build --product`.
	Builder struct {
		runner Runner
		opts   BuildOptions
		logger *slog.Logger
	}
)

// NewBuilder creates a Builder. An empty configuration means debug.
func NewBuilder(runner Runner, opts BuildOptions, logger *slog.Logger) *Builder {
	if opts.Configuration == "" {
		opts.Configuration = config.BuildConfigurationDebug
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Builder{runner: runner, opts: opts, logger: logger}
}

// Build builds product and its dependencies, blocking until the driver exits.
// The driver's own error text is preserved in the returned error.
func (b *Builder) Build(ctx context.Context, product catalog.Product) error {
	args := []string{"build", "--product", product.Name.String(), "-c", b.opts.Configuration.String()}
	if b.opts.ScratchPath != "" {
		args = append(args, "--scratch-path", b.opts.ScratchPath.String())
	}
	args = append(args, "--package-path", b.opts.Root.String())

	b.logger.Debug("building product", "product", product.Name, "configuration", b.opts.Configuration)
	return b.runner.Run(ctx, b.opts.Root, args...)
}

// BinPath returns where the build leaves product's executable. It only
// computes a path; the file may not exist.
func (b *Builder) BinPath(product catalog.Product) types.FilesystemPath {
	return fspath.JoinStr(b.scratchDir(),
		b.opts.Configuration.String(),
		product.Name.String()+platform.HostExecutableSuffix())
}

func (b *Builder) scratchDir() types.FilesystemPath {
	if b.opts.ScratchPath != "" {
		return b.opts.ScratchPath
	}
	return fspath.JoinStr(b.opts.Root, defaultScratchDir)
}
