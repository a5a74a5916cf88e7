// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/invowk/swift-run/pkg/types"
)

const (
	// ProductKindExecutable is a product that links into a runnable program.
	ProductKindExecutable ProductKind = "executable"
	// ProductKindLibrary is a static, dynamic or automatic library product.
	ProductKindLibrary ProductKind = "library"
	// ProductKindPlugin is a build or command plugin product.
	ProductKindPlugin ProductKind = "plugin"
	// ProductKindSnippet is a documentation snippet product.
	ProductKindSnippet ProductKind = "snippet"
	// ProductKindTest is a test bundle product.
	ProductKindTest ProductKind = "test"
	// ProductKindMacro is a compiler macro product.
	ProductKindMacro ProductKind = "macro"
	// ProductKindUnknown is any kind this tool does not recognize.
	ProductKindUnknown ProductKind = "unknown"
)

var (
	// ErrInvalidProductKind is the sentinel error wrapped by InvalidProductKindError.
	ErrInvalidProductKind = errors.New("invalid product kind")
	// ErrInvalidProductName is the sentinel error wrapped by InvalidProductNameError.
	ErrInvalidProductName = errors.New("invalid product name")
)

type (
	// ProductKind is the tagged variant of a package product.
	ProductKind string

	// InvalidProductKindError is returned when a ProductKind value is not recognized.
	InvalidProductKindError struct {
		Value ProductKind
	}

	// ProductName is a product name. Names are unique within their owning
	// package but not necessarily across the whole graph.
	ProductName string

	// InvalidProductNameError is returned when a ProductName is empty,
	// whitespace-only, or contains a path separator.
	InvalidProductNameError struct {
		Value ProductName
	}

	// PackageIdentity identifies a package within a graph (SwiftPM's
	// lower-cased package identity).
	PackageIdentity string

	// Product is a buildable artifact declared by a package. For executable
	// products this is the run target: Name selects it and Package/PackagePath
	// are the handle the build collaborator uses to produce it.
	Product struct {
		Name        ProductName
		Kind        ProductKind
		Package     PackageIdentity
		PackagePath types.FilesystemPath
	}
)

// ParseProductKind maps a raw kind tag onto the variant, returning
// ProductKindUnknown for unrecognized tags.
func ParseProductKind(tag string) ProductKind {
	switch k := ProductKind(strings.ToLower(strings.TrimSpace(tag))); k {
	case ProductKindExecutable, ProductKindLibrary, ProductKindPlugin,
		ProductKindSnippet, ProductKindTest, ProductKindMacro:
		return k
	default:
		return ProductKindUnknown
	}
}

// IsRunnable reports whether products of this kind can be launched.
func (k ProductKind) IsRunnable() bool {
	return k == ProductKindExecutable
}

// String returns the kind tag.
func (k ProductKind) String() string { return string(k) }

// IsValid returns whether the ProductKind is one of the defined variants.
func (k ProductKind) IsValid() (bool, []error) {
	switch k {
	case ProductKindExecutable, ProductKindLibrary, ProductKindPlugin,
		ProductKindSnippet, ProductKindTest, ProductKindMacro, ProductKindUnknown:
		return true, nil
	default:
		return false, []error{&InvalidProductKindError{Value: k}}
	}
}

// Error implements the error interface for InvalidProductKindError.
func (e *InvalidProductKindError) Error() string {
	return fmt.Sprintf("invalid product kind %q", e.Value)
}

// Unwrap returns ErrInvalidProductKind for errors.Is() compatibility.
func (e *InvalidProductKindError) Unwrap() error { return ErrInvalidProductKind }

// String returns the product name.
func (n ProductName) String() string { return string(n) }

// IsValid returns whether the ProductName can name a product on disk.
func (n ProductName) IsValid() (bool, []error) {
	s := string(n)
	if strings.TrimSpace(s) == "" || strings.ContainsAny(s, `/\`) {
		return false, []error{&InvalidProductNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface for InvalidProductNameError.
func (e *InvalidProductNameError) Error() string {
	return fmt.Sprintf("invalid product name %q: must be non-empty and contain no path separators", e.Value)
}

// Unwrap returns ErrInvalidProductName for errors.Is() compatibility.
func (e *InvalidProductNameError) Unwrap() error { return ErrInvalidProductName }

// IsExecutable reports whether the product is a run target.
func (p Product) IsExecutable() bool { return p.Kind.IsRunnable() }

// Names returns the product names in order.
func Names(products []Product) []ProductName {
	names := make([]ProductName, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	return names
}
