// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"
	"fmt"
	"testing"

	"github.com/invowk/swift-run/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exe(name string) catalog.Product {
	return catalog.Product{Name: catalog.ProductName(name), Kind: catalog.ProductKindExecutable}
}

func newCatalog(rootExes []string, depExes ...string) *catalog.Catalog {
	root := catalog.Package{Identity: "root", Path: "/work/root"}
	for _, n := range rootExes {
		root.Products = append(root.Products, exe(n))
	}
	root.Products = append(root.Products, catalog.Product{Name: "RootLib", Kind: catalog.ProductKindLibrary})

	dep := catalog.Package{Identity: "dep", Path: "/work/root/.build/checkouts/dep"}
	for _, n := range depExes {
		dep.Products = append(dep.Products, exe(n))
	}

	return catalog.New(&catalog.Graph{
		RootPackages: []catalog.Package{root},
		Dependencies: []catalog.Package{dep},
	})
}

func TestResolve_ImplicitSingleRoot(t *testing.T) {
	t.Parallel()

	// Non-root executables never affect implicit resolution.
	for n := range 4 {
		deps := make([]string, n)
		for i := range deps {
			deps[i] = fmt.Sprintf("dep-tool-%d", i)
		}
		t.Run(fmt.Sprintf("%d dependency executables", n), func(t *testing.T) {
			t.Parallel()

			got, err := Resolve(Intent{}, newCatalog([]string{"server"}, deps...))
			require.NoError(t, err)
			assert.Equal(t, catalog.ProductName("server"), got.Name)
			assert.Equal(t, catalog.PackageIdentity("root"), got.Package)
		})
	}
}

func TestResolve_ImplicitNoRootExecutable(t *testing.T) {
	t.Parallel()

	_, err := Resolve(Intent{Args: []string{"--port", "8080"}}, newCatalog(nil, "client"))
	require.Error(t, err)

	var target *NoExecutableFoundError
	assert.ErrorAs(t, err, &target)
	assert.ErrorIs(t, err, ErrNoExecutableFound)
}

func TestResolve_ImplicitAmbiguous(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		roots []string
	}{
		{"two", []string{"server", "client"}},
		{"two reversed", []string{"client", "server"}},
		{"three", []string{"b", "a", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Resolve(Intent{}, newCatalog(tt.roots, "dep-tool"))
			require.Error(t, err)

			var multi *MultipleExecutablesError
			require.ErrorAs(t, err, &multi)
			want := make([]catalog.ProductName, len(tt.roots))
			for i, r := range tt.roots {
				want[i] = catalog.ProductName(r)
			}
			assert.Equal(t, want, multi.Names, "candidates must be listed exactly, in catalog order")
			assert.ErrorIs(t, err, ErrMultipleExecutables)
		})
	}
}

func TestResolve_ExplicitName(t *testing.T) {
	t.Parallel()

	c := newCatalog([]string{"server", "worker"}, "client")

	tests := []struct {
		name    string
		want    catalog.PackageIdentity
		wantErr error
	}{
		{"server", "root", nil},
		{"worker", "root", nil},
		// Dependency executables are reachable by name even though root-level
		// ambiguity exists.
		{"client", "dep", nil},
		{"missing", "", ErrExecutableNotFound},
		// Libraries are not run targets.
		{"RootLib", "", ErrExecutableNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Resolve(Intent{Name: catalog.ProductName(tt.name)}, c)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				var nf *ExecutableNotFoundError
				require.ErrorAs(t, err, &nf)
				assert.Equal(t, catalog.ProductName(tt.name), nf.Name)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, catalog.ProductName(tt.name), got.Name)
			assert.Equal(t, tt.want, got.Package)
		})
	}
}

func TestResolve_ExplicitNameNoRootExecutables(t *testing.T) {
	t.Parallel()

	got, err := Resolve(Intent{Name: "client"}, newCatalog(nil, "client"))
	require.NoError(t, err)
	assert.Equal(t, catalog.ProductName("client"), got.Name)
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{&NoExecutableFoundError{}, "no executable product available"},
		{&ExecutableNotFoundError{Name: "client"}, "no executable product named 'client'"},
		{&MultipleExecutablesError{Names: []catalog.ProductName{"server", "client"}}, "multiple executable products available: 'server', 'client'"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
		assert.NotNil(t, errors.Unwrap(tt.err))
	}
}
