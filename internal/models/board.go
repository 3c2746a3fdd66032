package models

import (
	"encoding/json"
	"strings"
)

// Column is a kanban board column holding an ordered list of tasks.
type Column struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Color string  `json:"color,omitempty"`
	Tasks []*Task `json:"tasks"`
}

// Clone returns a copy of the column with a fresh tasks slice header.
// Task pointers are shared; board operations replace tasks they modify.
func (c *Column) Clone() *Column {
	n := *c
	n.Tasks = append([]*Task(nil), c.Tasks...)
	return &n
}

// Member links a user to a task in a named role (watcher, reviewer, ...).
type Member struct {
	UserID int    `json:"userId"`
	Role   string `json:"role"`
}

// Task is a card on the kanban board. A task belongs to exactly one column
// at a time; moving a task changes column membership only.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status,omitempty"`
	Type        string   `json:"type,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Assignee    string   `json:"assignee,omitempty"`
	AssigneeID  int      `json:"assigneeId,omitempty"`
	Members     []Member `json:"members,omitempty"`
	StartAt     string   `json:"startAt,omitempty"`
	EndAt       string   `json:"endAt,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// taskJSON mirrors Task with loose typing for the fields whose shape
// drifted across schema generations.
type taskJSON struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Type        string          `json:"type"`
	Priority    string          `json:"priority"`
	Assignee    string          `json:"assignee"`
	AssigneeID  json.RawMessage `json:"assigneeId"`
	Members     []Member        `json:"members"`
	StartAt     string          `json:"startAt"`
	EndAt       string          `json:"endAt"`
	DueDate     string          `json:"dueDate"`
	Tags        json.RawMessage `json:"tags"`
}

// UnmarshalJSON normalizes legacy task shapes at the model boundary:
// dueDate folds into endAt, tags may be an array or a comma-separated
// string, assigneeId may be a number or a numeric string, and a missing
// status defaults to plan. Business logic never sees the legacy shapes.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw taskJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t.ID = raw.ID
	t.Title = raw.Title
	t.Description = raw.Description
	t.Status = raw.Status
	if t.Status == "" {
		t.Status = TaskStatusPlan
	}
	t.Type = raw.Type
	if t.Type == "" {
		t.Type = TaskTypeTask
	}
	t.Priority = raw.Priority
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	t.Assignee = raw.Assignee
	t.AssigneeID = looseInt(raw.AssigneeID)
	t.Members = raw.Members
	t.StartAt = raw.StartAt
	t.EndAt = raw.EndAt
	if t.EndAt == "" {
		t.EndAt = raw.DueDate
	}
	t.Tags = looseTags(raw.Tags)
	return nil
}

// looseInt reads an int that legacy records sometimes stored as a string.
func looseInt(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var parsed int
		if err := json.Unmarshal([]byte(s), &parsed); err == nil {
			return parsed
		}
	}
	return 0
}

// looseTags reads tags stored either as a JSON array or as one
// comma-separated string.
func looseTags(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
