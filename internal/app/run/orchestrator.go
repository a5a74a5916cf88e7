// SPDX-License-Identifier: MPL-2.0

package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/invowk/swift-run/internal/catalog"
	"github.com/invowk/swift-run/internal/fsys"
	"github.com/invowk/swift-run/internal/launch"
	"github.com/invowk/swift-run/internal/resolve"
	"github.com/invowk/swift-run/internal/script"
	"github.com/invowk/swift-run/pkg/types"
)

// ErrBuildFailed is the sentinel error wrapped by BuildError.
var ErrBuildFailed = errors.New("build failed")

type (
	// Builder compiles a product and reports where its executable lands.
	Builder interface {
		// Build blocks until the product is built or the build failed.
		Build(ctx context.Context, product catalog.Product) error
		// BinPath is deterministic and valid whether or not Build ran.
		BinPath(product catalog.Product) types.FilesystemPath
	}

	// Interpreter locates the program that interprets a source file.
	Interpreter interface {
		Interpreter() (types.FilesystemPath, error)
	}

	// Launcher replaces the current process with an executable.
	Launcher interface {
		Launch(lc launch.Context, executable types.FilesystemPath, args []string) error
	}

	// Dependencies are the collaborators of an Orchestrator.
	Dependencies struct {
		Files       fsys.FileSystem
		Graph       catalog.GraphLoader
		Builder     Builder
		Interpreter Interpreter
		Launcher    Launcher
		Logger      *slog.Logger
	}

	// Request is one invocation.
	Request struct {
		Intent    resolve.Intent
		SkipBuild bool
		Launch    launch.Context
	}

	// Orchestrator drives a Request through detection, resolution, build
	// and launch.
	Orchestrator struct {
		deps Dependencies
	}

	// BuildError is returned when the build collaborator failed. Err is the
	// collaborator's error, unchanged.
	BuildError struct {
		Product catalog.ProductName
		Err     error
	}
)

// New creates an Orchestrator. A nil Logger discards log output.
func New(deps Dependencies) *Orchestrator {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{deps: deps}
}

// Run executes req. With an exec-capable launcher a successful Run never
// returns; a nil return only happens with launchers that hand over without
// replacing the process.
func (o *Orchestrator) Run(ctx context.Context, req Request) error {
	if req.Intent.HasName() && script.IsScriptPath(o.deps.Files, req.Intent.Name.String()) {
		return o.runScript(req)
	}

	c, err := o.Catalog(ctx)
	if err != nil {
		return err
	}

	product, err := resolve.Resolve(req.Intent, c)
	if err != nil {
		return err
	}
	o.deps.Logger.Debug("resolved executable", "product", product.Name, "package", product.Package)

	if err := o.maybeBuild(ctx, product, req.SkipBuild); err != nil {
		return err
	}

	return o.deps.Launcher.Launch(req.Launch, o.deps.Builder.BinPath(product), req.Intent.Args)
}

// Catalog loads the package graph and builds the executable catalog.
func (o *Orchestrator) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	g, err := o.deps.Graph.Load(ctx)
	if err != nil {
		return nil, err
	}

	c := catalog.New(g)
	if dups := c.Duplicates(); len(dups) > 0 {
		o.deps.Logger.Debug("executable names declared by more than one package; the first one wins",
			"names", dups)
	}
	return c, nil
}

// runScript redirects `swift run file.swift` to the interpreter. No catalog
// is loaded and nothing is built.
func (o *Orchestrator) runScript(req Request) error {
	candidate := req.Intent.Name.String()
	o.deps.Logger.Warn(script.DeprecationMessage(candidate))

	interpreter, err := o.deps.Interpreter.Interpreter()
	if err != nil {
		return err
	}

	args := make([]string, 0, 1+len(req.Intent.Args))
	args = append(args, candidate)
	args = append(args, req.Intent.Args...)
	return o.deps.Launcher.Launch(req.Launch, interpreter, args)
}

func (o *Orchestrator) maybeBuild(ctx context.Context, product catalog.Product, skip bool) error {
	if skip {
		o.deps.Logger.Debug("skipping build", "product", product.Name)
		return nil
	}
	if err := o.deps.Builder.Build(ctx, product); err != nil {
		return &BuildError{Product: product.Name, Err: err}
	}
	return nil
}

// Error implements the error interface for BuildError. The collaborator's
// message is reproduced verbatim.
func (e *BuildError) Error() string {
	return fmt.Sprintf("failed to build '%s': %v", e.Product, e.Err)
}

// Unwrap returns both ErrBuildFailed and the collaborator's error.
func (e *BuildError) Unwrap() []error { return []error{ErrBuildFailed, e.Err} }
