// SPDX-License-Identifier: MPL-2.0

// Package catalog presents the products of a loaded package graph as the two
// views the run pipeline needs: every executable in the transitive graph
// (searchable by explicit name) and the executables owned by root packages
// (the candidates for implicit selection).
//
// Product kinds form a closed tagged variant; only ProductKindExecutable is
// runnable, and the views are built by filtering on that predicate.
package catalog
