package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category does not exist or is not visible to the caller.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryNameRequired is returned when a category is resolved by an empty name.
	ErrCategoryNameRequired = errors.New("category name is required")
)
