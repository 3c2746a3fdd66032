package project

import "errors"

// Project-related errors
var (
	ErrEmptyName = errors.New("project name cannot be empty")
	ErrNotFound  = errors.New("project not found")
)
