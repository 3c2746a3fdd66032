package board

import "errors"

// Board-related errors
var (
	// Validation errors
	ErrEmptyTitle = errors.New("title cannot be empty")

	// Business logic errors
	ErrTaskNotFound   = errors.New("task not found")
	ErrColumnNotFound = errors.New("column not found")
)
