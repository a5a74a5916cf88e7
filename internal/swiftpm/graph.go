// SPDX-License-Identifier: MPL-2.0

package swiftpm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/invowk/swift-run/internal/catalog"
	"github.com/invowk/swift-run/pkg/types"

	"golang.org/x/sync/errgroup"
)

// DefaultDescribeConcurrency bounds the number of concurrent
// `swift package describe` processes.
const DefaultDescribeConcurrency = 4

// ErrPackageLoad is the sentinel error wrapped by PackageLoadError.
var ErrPackageLoad = errors.New("failed to load package graph")

type (
	// GraphLoader loads the package graph rooted at a package directory.
	// It implements catalog.GraphLoader.
	GraphLoader struct {
		runner      Runner
		root        types.FilesystemPath
		concurrency int
		logger      *slog.Logger
	}

	// PackageLoadError is returned when the graph could not be loaded.
	PackageLoadError struct {
		Path types.FilesystemPath
		Err  error
	}

	// dependencyNode is one node of `swift package show-dependencies --format json`.
	dependencyNode struct {
		Identity     string           `json:"identity"`
		Name         string           `json:"name"`
		Path         string           `json:"path"`
		Dependencies []dependencyNode `json:"dependencies"`
	}

	// packageDescription is the subset of `swift package describe --type json`
	// swift-run consumes.
	packageDescription struct {
		Name     string               `json:"name"`
		Path     string               `json:"path"`
		Products []productDescription `json:"products"`
	}

	// productDescription carries the product type as a single-key object,
	// e.g. {"executable": null} or {"library": ["automatic"]}.
	productDescription struct {
		Name string                     `json:"name"`
		Type map[string]json.RawMessage `json:"type"`
	}

	// packageRef is a package to describe, in catalog order.
	packageRef struct {
		identity catalog.PackageIdentity
		path     types.FilesystemPath
	}
)

// NewGraphLoader creates a GraphLoader for the package at root.
func NewGraphLoader(runner Runner, root types.FilesystemPath, logger *slog.Logger) *GraphLoader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &GraphLoader{
		runner:      runner,
		root:        root,
		concurrency: DefaultDescribeConcurrency,
		logger:      logger,
	}
}

// Load implements catalog.GraphLoader.
//
// The dependency tree is flattened depth-first, pre-order, with repeated
// identities dropped. Packages are then described concurrently; results are
// stored by index so the graph order never depends on completion order.
func (l *GraphLoader) Load(ctx context.Context) (*catalog.Graph, error) {
	tree, err := l.dependencies(ctx)
	if err != nil {
		return nil, &PackageLoadError{Path: l.root, Err: err}
	}

	refs := flatten(tree, l.root)
	pkgs := make([]catalog.Package, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, ref := range refs {
		g.Go(func() error {
			pkg, err := l.describe(gctx, ref)
			if err != nil {
				return err
			}
			pkgs[i] = pkg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &PackageLoadError{Path: l.root, Err: err}
	}

	l.logger.Debug("package graph loaded", "root", l.root, "dependencies", len(pkgs)-1)
	return &catalog.Graph{RootPackages: pkgs[:1], Dependencies: pkgs[1:]}, nil
}

func (l *GraphLoader) dependencies(ctx context.Context) (dependencyNode, error) {
	out, err := l.runner.Output(ctx, l.root,
		"package", "show-dependencies", "--format", "json", "--package-path", string(l.root))
	if err != nil {
		return dependencyNode{}, err
	}

	var tree dependencyNode
	if err := json.Unmarshal(out, &tree); err != nil {
		return dependencyNode{}, fmt.Errorf("decode dependency tree: %w", err)
	}
	return tree, nil
}

func (l *GraphLoader) describe(ctx context.Context, ref packageRef) (catalog.Package, error) {
	out, err := l.runner.Output(ctx, l.root,
		"package", "describe", "--type", "json", "--package-path", string(ref.path))
	if err != nil {
		return catalog.Package{}, err
	}

	var desc packageDescription
	if err := json.Unmarshal(out, &desc); err != nil {
		return catalog.Package{}, fmt.Errorf("decode description of %s: %w", ref.path, err)
	}

	pkg := catalog.Package{
		Identity: ref.identity,
		Name:     desc.Name,
		Path:     ref.path,
	}
	if desc.Path != "" {
		pkg.Path = types.FilesystemPath(desc.Path)
	}
	for _, p := range desc.Products {
		pkg.Products = append(pkg.Products, catalog.Product{
			Name: catalog.ProductName(p.Name),
			Kind: productKind(p.Type),
		})
	}
	return pkg, nil
}

// flatten returns the root followed by every distinct dependency in
// depth-first pre-order. The root is always described from root, whatever
// path the tree reports for it.
func flatten(tree dependencyNode, root types.FilesystemPath) []packageRef {
	refs := []packageRef{{identity: catalog.PackageIdentity(tree.Identity), path: root}}
	seen := map[string]bool{tree.Identity: true}

	var walk func(nodes []dependencyNode)
	walk = func(nodes []dependencyNode) {
		for _, n := range nodes {
			if seen[n.Identity] {
				continue
			}
			seen[n.Identity] = true
			refs = append(refs, packageRef{
				identity: catalog.PackageIdentity(n.Identity),
				path:     types.FilesystemPath(n.Path),
			})
			walk(n.Dependencies)
		}
	}
	walk(tree.Dependencies)
	return refs
}

// productKind reads the single key of a product type object. Anything that
// is not exactly one known key is ProductKindUnknown.
func productKind(t map[string]json.RawMessage) catalog.ProductKind {
	if len(t) != 1 {
		return catalog.ProductKindUnknown
	}
	for tag := range t {
		return catalog.ParseProductKind(tag)
	}
	return catalog.ProductKindUnknown
}

// Error implements the error interface for PackageLoadError.
func (e *PackageLoadError) Error() string {
	return fmt.Sprintf("failed to load package at %s: %v", e.Path, e.Err)
}

// Unwrap returns both ErrPackageLoad and the underlying cause.
func (e *PackageLoadError) Unwrap() []error { return []error{ErrPackageLoad, e.Err} }
