// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exe(name string) Product {
	return Product{Name: ProductName(name), Kind: ProductKindExecutable}
}

func lib(name string) Product {
	return Product{Name: ProductName(name), Kind: ProductKindLibrary}
}

func testGraph() *Graph {
	return &Graph{
		RootPackages: []Package{{
			Identity: "app",
			Name:     "App",
			Path:     "/work/app",
			Products: []Product{exe("server"), lib("AppCore"), exe("migrate")},
		}},
		Dependencies: []Package{
			{
				Identity: "swift-argument-parser",
				Path:     "/work/app/.build/checkouts/swift-argument-parser",
				Products: []Product{lib("ArgumentParser"), exe("generate-manual")},
			},
			{
				Identity: "tools",
				Path:     "/work/tools",
				Products: []Product{exe("client"), {Name: "Lint", Kind: ProductKindPlugin}},
			},
		},
	}
}

func TestNew_Views(t *testing.T) {
	t.Parallel()

	c := New(testGraph())

	assert.Equal(t,
		[]ProductName{"server", "migrate", "generate-manual", "client"},
		Names(c.AllExecutables()))
	assert.Equal(t,
		[]ProductName{"server", "migrate"},
		Names(c.RootExecutables()))
}

func TestNew_StampsPackageHandle(t *testing.T) {
	t.Parallel()

	c := New(testGraph())

	p, ok := c.Lookup("client")
	require.True(t, ok)
	assert.Equal(t, PackageIdentity("tools"), p.Package)
	assert.Equal(t, "/work/tools", p.PackagePath.String())
	assert.True(t, p.IsExecutable())
}

func TestNew_RootSubsetOfAll(t *testing.T) {
	t.Parallel()

	g := testGraph()
	// A loader that reports the root package again among dependencies must
	// not duplicate its executables.
	g.Dependencies = append(g.Dependencies, g.RootPackages[0])
	c := New(g)

	all := make(map[ProductName]int)
	for _, p := range c.AllExecutables() {
		all[p.Name]++
	}
	for _, p := range c.RootExecutables() {
		assert.Equal(t, 1, all[p.Name], "root executable %s must appear exactly once in all", p.Name)
	}
}

func TestNew_NilAndEmptyGraph(t *testing.T) {
	t.Parallel()

	for _, g := range []*Graph{nil, {}} {
		c := New(g)
		assert.Empty(t, c.AllExecutables())
		assert.Empty(t, c.RootExecutables())
		_, ok := c.Lookup("server")
		assert.False(t, ok)
	}
}

func TestCatalog_LookupFirstMatchWins(t *testing.T) {
	t.Parallel()

	g := testGraph()
	g.Dependencies[1].Products = append(g.Dependencies[1].Products, exe("server"))
	c := New(g)

	p, ok := c.Lookup("server")
	require.True(t, ok)
	assert.Equal(t, PackageIdentity("app"), p.Package, "root declaration should shadow dependency")
	assert.Equal(t, []ProductName{"server"}, c.Duplicates())
}

func TestCatalog_ViewsAreCopies(t *testing.T) {
	t.Parallel()

	c := New(testGraph())
	roots := c.RootExecutables()
	roots[0].Name = "mutated"

	assert.Equal(t, ProductName("server"), c.RootExecutables()[0].Name)
}

func TestCatalog_NoDuplicates(t *testing.T) {
	t.Parallel()

	assert.Empty(t, New(testGraph()).Duplicates())
}

func TestParseProductKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  string
		want ProductKind
	}{
		{"executable", ProductKindExecutable},
		{"Executable", ProductKindExecutable},
		{"library", ProductKindLibrary},
		{"plugin", ProductKindPlugin},
		{"snippet", ProductKindSnippet},
		{"test", ProductKindTest},
		{"macro", ProductKindMacro},
		{"", ProductKindUnknown},
		{"binary", ProductKindUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseProductKind(tt.tag), "tag %q", tt.tag)
	}
}

func TestProductKind_IsRunnable(t *testing.T) {
	t.Parallel()

	for _, k := range []ProductKind{ProductKindLibrary, ProductKindPlugin, ProductKindSnippet, ProductKindTest, ProductKindMacro, ProductKindUnknown} {
		assert.False(t, k.IsRunnable(), "%s should not be runnable", k)
	}
	assert.True(t, ProductKindExecutable.IsRunnable())
}

func TestProductKind_IsValid(t *testing.T) {
	t.Parallel()

	valid, errs := ProductKindExecutable.IsValid()
	assert.True(t, valid)
	assert.Empty(t, errs)

	valid, errs = ProductKind("binaryTarget").IsValid()
	assert.False(t, valid)
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], ErrInvalidProductKind))
}

func TestProductName_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  ProductName
		valid bool
	}{
		{"server", true},
		{"generate-manual", true},
		{"", false},
		{"  ", false},
		{"bin/server", false},
		{`bin\server`, false},
	}

	for _, tt := range tests {
		valid, errs := tt.name.IsValid()
		assert.Equal(t, tt.valid, valid, "name %q", tt.name)
		if !tt.valid {
			require.Len(t, errs, 1)
			assert.ErrorIs(t, errs[0], ErrInvalidProductName)
		}
	}
}
