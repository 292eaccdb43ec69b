// Package error defines domain-specific errors for the Pocket Ledger application.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category ID is not part of the catalog.
	ErrCategoryNotFound = errors.New("category not found")
)
