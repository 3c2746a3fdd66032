package events

import "time"

// EventType indicates what kind of change occurred.
type EventType string

const (
	EventProjectChanged EventType = "project_changed"
	EventBoardChanged   EventType = "board_changed"
	EventStageAdvanced  EventType = "stage_advanced"
)

// Event is a change notification published by the engines after a
// successful mutation. Delivery is in-process only; cross-client sync is
// deliberately out of scope.
type Event struct {
	Type       EventType
	ProjectID  string // which project was modified ("" for the legacy board)
	TaskID     string // set for task-level board changes
	StageID    string // set for pipeline changes
	Detail     string // short human description of the change
	Timestamp  time.Time
	SequenceID int64 // monotonically increasing, for ordering
}
