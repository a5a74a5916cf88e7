// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"context"
	"slices"

	"github.com/invowk/swift-run/pkg/types"
)

type (
	// Package is a node of the package graph together with the products it
	// declares, in manifest order.
	Package struct {
		Identity PackageIdentity
		Name     string
		Path     types.FilesystemPath
		Products []Product
	}

	// Graph is a loaded package graph. RootPackages are the packages the user
	// owns directly; Dependencies holds every other package of the transitive
	// graph in a stable (depth-first, pre-order) order.
	Graph struct {
		RootPackages []Package
		Dependencies []Package
	}

	// GraphLoader produces the package graph for one invocation.
	GraphLoader interface {
		Load(ctx context.Context) (*Graph, error)
	}

	// Catalog holds the executable views over a graph. It is immutable after
	// construction.
	//
	// Iteration order is stable: root packages first, then dependencies in
	// graph order, products in manifest order within each package. Lookup
	// returns the first match in that order, so a root executable shadows a
	// dependency executable with the same name.
	Catalog struct {
		all  []Product
		root []Product
	}
)

// New builds the catalog for g. Packages that appear more than once (by
// identity) are only counted the first time, which keeps RootExecutables a
// subset of AllExecutables even when a loader reports a root package among
// its dependencies.
func New(g *Graph) *Catalog {
	c := &Catalog{}
	if g == nil {
		return c
	}

	seen := make(map[PackageIdentity]bool)
	collect := func(pkgs []Package, isRoot bool) {
		for _, pkg := range pkgs {
			if pkg.Identity != "" {
				if seen[pkg.Identity] {
					continue
				}
				seen[pkg.Identity] = true
			}
			for _, p := range pkg.Products {
				if !p.Kind.IsRunnable() {
					continue
				}
				p.Package = pkg.Identity
				p.PackagePath = pkg.Path
				c.all = append(c.all, p)
				if isRoot {
					c.root = append(c.root, p)
				}
			}
		}
	}
	collect(g.RootPackages, true)
	collect(g.Dependencies, false)

	return c
}

// AllExecutables returns every executable product in the graph.
func (c *Catalog) AllExecutables() []Product {
	return slices.Clone(c.all)
}

// RootExecutables returns the executable products of root packages.
func (c *Catalog) RootExecutables() []Product {
	return slices.Clone(c.root)
}

// Lookup returns the first executable named name in catalog order.
func (c *Catalog) Lookup(name ProductName) (Product, bool) {
	for _, p := range c.all {
		if p.Name == name {
			return p, true
		}
	}
	return Product{}, false
}

// Duplicates returns executable names declared by more than one package, in
// order of first appearance. Lookup resolves such names to the first
// declaration.
func (c *Catalog) Duplicates() []ProductName {
	counts := make(map[ProductName]int, len(c.all))
	var order []ProductName
	for _, p := range c.all {
		if counts[p.Name] == 0 {
			order = append(order, p.Name)
		}
		counts[p.Name]++
	}

	var dups []ProductName
	for _, name := range order {
		if counts[name] > 1 {
			dups = append(dups, name)
		}
	}
	return dups
}
