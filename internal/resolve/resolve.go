// SPDX-License-Identifier: MPL-2.0

// Package resolve picks the single executable a run invocation targets.
//
// An explicit name is looked up across every executable in the graph. Without
// a name, the choice is made implicitly only when the root packages declare
// exactly one executable; zero or several candidates are classified failures
// and nothing is guessed.
package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/invowk/swift-run/internal/catalog"
)

var (
	// ErrNoExecutableFound is the sentinel error wrapped by NoExecutableFoundError.
	ErrNoExecutableFound = errors.New("no executable product available")
	// ErrExecutableNotFound is the sentinel error wrapped by ExecutableNotFoundError.
	ErrExecutableNotFound = errors.New("executable product not found")
	// ErrMultipleExecutables is the sentinel error wrapped by MultipleExecutablesError.
	ErrMultipleExecutables = errors.New("multiple executable products available")
)

type (
	// Intent is the parsed run request: an optional product name and the
	// arguments forwarded verbatim to the launched program.
	Intent struct {
		// Name is the requested product; empty means implicit resolution.
		Name catalog.ProductName
		// Args are forwarded to the program in order.
		Args []string
	}

	// NoExecutableFoundError is returned when implicit resolution finds no
	// executable among the root packages.
	NoExecutableFoundError struct{}

	// ExecutableNotFoundError is returned when an explicitly named executable
	// does not exist anywhere in the graph.
	ExecutableNotFoundError struct {
		Name catalog.ProductName
	}

	// MultipleExecutablesError is returned when implicit resolution is
	// ambiguous. Names lists every candidate in catalog order.
	MultipleExecutablesError struct {
		Names []catalog.ProductName
	}
)

// HasName reports whether the intent names a product explicitly.
func (i Intent) HasName() bool { return i.Name != "" }

// Resolve returns the executable selected by intent, or one of
// *NoExecutableFoundError, *ExecutableNotFoundError or *MultipleExecutablesError.
func Resolve(intent Intent, c *catalog.Catalog) (catalog.Product, error) {
	if intent.HasName() {
		product, ok := c.Lookup(intent.Name)
		if !ok {
			return catalog.Product{}, &ExecutableNotFoundError{Name: intent.Name}
		}
		return product, nil
	}

	roots := c.RootExecutables()
	switch len(roots) {
	case 0:
		return catalog.Product{}, &NoExecutableFoundError{}
	case 1:
		return roots[0], nil
	default:
		return catalog.Product{}, &MultipleExecutablesError{Names: catalog.Names(roots)}
	}
}

// Error implements the error interface for NoExecutableFoundError.
func (e *NoExecutableFoundError) Error() string {
	return "no executable product available"
}

// Unwrap returns ErrNoExecutableFound for errors.Is() compatibility.
func (e *NoExecutableFoundError) Unwrap() error { return ErrNoExecutableFound }

// Error implements the error interface for ExecutableNotFoundError.
func (e *ExecutableNotFoundError) Error() string {
	return fmt.Sprintf("no executable product named '%s'", e.Name)
}

// Unwrap returns ErrExecutableNotFound for errors.Is() compatibility.
func (e *ExecutableNotFoundError) Unwrap() error { return ErrExecutableNotFound }

// Error implements the error interface for MultipleExecutablesError.
func (e *MultipleExecutablesError) Error() string {
	quoted := make([]string, len(e.Names))
	for i, n := range e.Names {
		quoted[i] = "'" + string(n) + "'"
	}
	return "multiple executable products available: " + strings.Join(quoted, ", ")
}

// Unwrap returns ErrMultipleExecutables for errors.Is() compatibility.
func (e *MultipleExecutablesError) Unwrap() error { return ErrMultipleExecutables }
