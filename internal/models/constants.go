package models

// ============================================================================
// STAGE STATUS CONSTANTS
// ============================================================================

// StageStatus is the lifecycle state of a pipeline stage.
// The empty string means "not started".
type StageStatus string

const (
	StageUnset      StageStatus = ""
	StageInProgress StageStatus = "in_progress"
	StageDone       StageStatus = "done"
	StageSkipped    StageStatus = "skipped"
)

// ============================================================================
// TASK STATUS CONSTANTS
// ============================================================================

// TaskStatus values for kanban tasks
const (
	TaskStatusPlan       = "plan"
	TaskStatusPrepare    = "prepare"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// TaskType values
const (
	TaskTypeTask    = "task"
	TaskTypeInfo    = "info"
	TaskTypeRequest = "request"
)

// Priority values
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ============================================================================
// PROJECT LIST PREFERENCES
// ============================================================================

// Projects list view modes
const (
	ViewList  = "list"
	ViewCards = "cards"
)

// DefaultSort is the default projects list ordering (<field>-<asc|desc>)
const DefaultSort = "name-asc"
