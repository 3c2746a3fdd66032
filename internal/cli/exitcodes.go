package cli

// Exit codes for CLI commands, following Unix conventions.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error: storage failures, network
	// errors, or anything that doesn't fit a category below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage, such as missing
	// required flags or malformed arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found: unknown
	// project, task, column or stage path.
	ExitNotFound = 3

	// ExitValidation indicates input that fails a rule: blank names,
	// invalid status values, removal of a built-in stage.
	ExitValidation = 4

	// ExitGated indicates a stage activation that the single-active-stage
	// rule refused.
	ExitGated = 5
)
