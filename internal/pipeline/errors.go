package pipeline

import "errors"

// Validation errors. Every rejected operation returns the input tree
// unchanged alongside one of these; callers surface them as user-facing
// notices rather than failures.
var (
	// ErrNotLeaf indicates an attempt to start or complete a container
	// stage. Only leaves can be worked; containers derive their status.
	ErrNotLeaf = errors.New("only a leaf stage can be started or completed")

	// ErrGated indicates the stage cannot start because an earlier stage
	// is not complete or another stage is already in progress.
	ErrGated = errors.New("stage is gated: previous stages must be done or skipped and no other stage may be in progress")

	// ErrBuiltinStage indicates an attempt to delete a built-in stage.
	ErrBuiltinStage = errors.New("built-in stages cannot be removed")

	// ErrEmptyName rejects blank stage names on insert.
	ErrEmptyName = errors.New("stage name cannot be empty")
)
