// Package board implements the kanban board engine: ordered columns of
// ordered tasks persisted as one JSON blob per board key, with write-through
// on every mutation.
package board

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/tranvq/pipeboard/internal/events"
	"github.com/tranvq/pipeboard/internal/models"
	"github.com/tranvq/pipeboard/internal/storage"
)

// Service defines all board operations for a single board key.
type Service interface {
	// Load hydrates the board, falling back to the default board when the
	// key is absent or unparseable.
	Load(ctx context.Context) ([]*models.Column, error)

	// Task operations
	AddTask(ctx context.Context, columnID string, req AddTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, taskID string, req UpdateTaskRequest) error
	DeleteTask(ctx context.Context, taskID string) error
	MoveTask(ctx context.Context, taskID, fromColumnID, toColumnID string) error

	// Column operations
	AddColumn(ctx context.Context, req AddColumnRequest) (*models.Column, error)
	UpdateColumn(ctx context.Context, columnID string, req UpdateColumnRequest) error
	DeleteColumn(ctx context.Context, columnID string) error
	MoveColumn(ctx context.Context, fromID, toID string) error

	// Reset replaces the board with the default board.
	Reset(ctx context.Context) error
}

// AddTaskRequest carries the fields a new task starts from. Everything else
// is defaulted.
type AddTaskRequest struct {
	Title string
	Type  string
}

// UpdateTaskRequest is a field patch; nil pointers leave the stored value
// untouched.
type UpdateTaskRequest struct {
	Title       *string
	Description *string
	Status      *string
	Type        *string
	Priority    *string
	Assignee    *string
	AssigneeID  *int
	Members     *[]models.Member
	StartAt     *string
	EndAt       *string
	Tags        *[]string
}

// AddColumnRequest carries the fields for a new column.
type AddColumnRequest struct {
	Title string
	Color string
}

// UpdateColumnRequest is a column field patch.
type UpdateColumnRequest struct {
	Title *string
	Color *string
}

// service implements Service for one board key.
type service struct {
	store     storage.Store
	key       string
	projectID string
	publisher events.Publisher
}

// NewService creates a board service bound to a storage key. projectID may
// be empty for the legacy non-project board; it only annotates events.
func NewService(store storage.Store, key, projectID string, publisher events.Publisher) Service {
	return &service{store: store, key: key, projectID: projectID, publisher: publisher}
}

// Load hydrates the board from storage.
func (s *service) Load(ctx context.Context) ([]*models.Column, error) {
	var cols []*models.Column
	ok, err := storage.GetJSON(ctx, s.store, s.key, &cols)
	if err != nil {
		// Storage failure degrades to the default board; the session keeps
		// working without durability.
		slog.Error("board load failed, using default board", "key", s.key, "error", err)
		return DefaultBoard(), nil
	}
	if !ok || cols == nil {
		return DefaultBoard(), nil
	}
	return cols, nil
}

// save writes the board through to storage and publishes a change event.
func (s *service) save(ctx context.Context, cols []*models.Column, taskID, detail string) error {
	if err := storage.SetJSON(ctx, s.store, s.key, cols); err != nil {
		return fmt.Errorf("failed to persist board: %w", err)
	}
	events.Emit(s.publisher, events.Event{
		Type:      events.EventBoardChanged,
		ProjectID: s.projectID,
		TaskID:    taskID,
		Detail:    detail,
	})
	return nil
}

// AddTask appends a new task to the named column. Blank titles are
// rejected; the task starts in plan status with a generated id.
func (s *service) AddTask(ctx context.Context, columnID string, req AddTaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	taskType := req.Type
	if taskType == "" {
		taskType = models.TaskTypeTask
	}

	cols, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := findColumn(cols, columnID)
	if idx == -1 {
		return nil, ErrColumnNotFound
	}

	task := &models.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: "",
		Status:      models.TaskStatusPlan,
		Type:        taskType,
		Priority:    models.PriorityMedium,
	}

	next := slices.Clone(cols)
	col := cols[idx].Clone()
	col.Tasks = append(col.Tasks, task)
	next[idx] = col

	if err := s.save(ctx, next, task.ID, "task added: "+title); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask merges the patch into the task wherever it lives. The caller
// may not know the column, so all columns are scanned. An unknown id is a
// silent no-op.
func (s *service) UpdateTask(ctx context.Context, taskID string, req UpdateTaskRequest) error {
	cols, err := s.Load(ctx)
	if err != nil {
		return err
	}
	colIdx, taskIdx := findTask(cols, taskID)
	if colIdx == -1 {
		return nil
	}

	patched := *cols[colIdx].Tasks[taskIdx]
	applyTaskPatch(&patched, req)

	next := slices.Clone(cols)
	col := cols[colIdx].Clone()
	col.Tasks[taskIdx] = &patched
	next[colIdx] = col

	return s.save(ctx, next, taskID, "task updated")
}

// DeleteTask removes the task from whichever column holds it.
func (s *service) DeleteTask(ctx context.Context, taskID string) error {
	cols, err := s.Load(ctx)
	if err != nil {
		return err
	}
	colIdx, taskIdx := findTask(cols, taskID)
	if colIdx == -1 {
		return nil
	}

	next := slices.Clone(cols)
	col := cols[colIdx].Clone()
	col.Tasks = slices.Delete(col.Tasks, taskIdx, taskIdx+1)
	next[colIdx] = col

	return s.save(ctx, next, taskID, "task deleted")
}

// MoveTask removes the task from the source column and appends it to the
// end of the destination, preserving every field. Moving within the same
// column is a no-op; a task missing from the source reports ErrTaskNotFound
// and moves nothing.
func (s *service) MoveTask(ctx context.Context, taskID, fromColumnID, toColumnID string) error {
	if fromColumnID == toColumnID {
		return nil
	}
	cols, err := s.Load(ctx)
	if err != nil {
		return err
	}
	fromIdx := findColumn(cols, fromColumnID)
	toIdx := findColumn(cols, toColumnID)
	if fromIdx == -1 || toIdx == -1 {
		return ErrColumnNotFound
	}

	taskIdx := slices.IndexFunc(cols[fromIdx].Tasks, func(t *models.Task) bool { return t.ID == taskID })
	if taskIdx == -1 {
		return ErrTaskNotFound
	}
	task := cols[fromIdx].Tasks[taskIdx]

	next := slices.Clone(cols)
	from := cols[fromIdx].Clone()
	from.Tasks = slices.Delete(from.Tasks, taskIdx, taskIdx+1)
	next[fromIdx] = from
	to := next[toIdx].Clone()
	to.Tasks = append(to.Tasks, task)
	next[toIdx] = to

	return s.save(ctx, next, taskID, fmt.Sprintf("task moved %s → %s", fromColumnID, toColumnID))
}

// AddColumn appends a new empty column. Blank titles are rejected.
func (s *service) AddColumn(ctx context.Context, req AddColumnRequest) (*models.Column, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	cols, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	col := &models.Column{
		ID:    uuid.NewString(),
		Title: title,
		Color: req.Color,
		Tasks: []*models.Task{},
	}
	next := append(slices.Clone(cols), col)
	if err := s.save(ctx, next, "", "column added: "+title); err != nil {
		return nil, err
	}
	return col, nil
}

// UpdateColumn patches a column's title/color by id.
func (s *service) UpdateColumn(ctx context.Context, columnID string, req UpdateColumnRequest) error {
	cols, err := s.Load(ctx)
	if err != nil {
		return err
	}
	idx := findColumn(cols, columnID)
	if idx == -1 {
		return nil
	}
	col := cols[idx].Clone()
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return ErrEmptyTitle
		}
		col.Title = strings.TrimSpace(*req.Title)
	}
	if req.Color != nil {
		col.Color = *req.Color
	}
	next := slices.Clone(cols)
	next[idx] = col
	return s.save(ctx, next, "", "column updated")
}

// DeleteColumn removes the column and discards its tasks. Confirming the
// destructive intent is the caller's responsibility.
func (s *service) DeleteColumn(ctx context.Context, columnID string) error {
	cols, err := s.Load(ctx)
	if err != nil {
		return err
	}
	idx := findColumn(cols, columnID)
	if idx == -1 {
		return nil
	}
	next := slices.Delete(slices.Clone(cols), idx, idx+1)
	return s.save(ctx, next, "", "column deleted")
}

// MoveColumn removes the column with fromID and re-inserts it immediately
// before the column holding toID, adjusting for the shift caused by the
// removal.
func (s *service) MoveColumn(ctx context.Context, fromID, toID string) error {
	if fromID == toID {
		return nil
	}
	cols, err := s.Load(ctx)
	if err != nil {
		return err
	}
	fromIdx := findColumn(cols, fromID)
	if fromIdx == -1 {
		return ErrColumnNotFound
	}
	moving := cols[fromIdx]

	next := slices.Delete(slices.Clone(cols), fromIdx, fromIdx+1)
	toIdx := findColumn(next, toID)
	if toIdx == -1 {
		return ErrColumnNotFound
	}
	next = slices.Insert(next, toIdx, moving)
	return s.save(ctx, next, "", "column reordered")
}

// Reset replaces the stored board with the default board.
func (s *service) Reset(ctx context.Context) error {
	return s.save(ctx, DefaultBoard(), "", "board reset")
}

func findColumn(cols []*models.Column, id string) int {
	return slices.IndexFunc(cols, func(c *models.Column) bool { return c.ID == id })
}

// findTask locates a task across all columns.
func findTask(cols []*models.Column, taskID string) (colIdx, taskIdx int) {
	for ci, col := range cols {
		for ti, t := range col.Tasks {
			if t.ID == taskID {
				return ci, ti
			}
		}
	}
	return -1, -1
}

func applyTaskPatch(t *models.Task, req UpdateTaskRequest) {
	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		t.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Type != nil {
		t.Type = *req.Type
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.Assignee != nil {
		t.Assignee = *req.Assignee
	}
	if req.AssigneeID != nil {
		t.AssigneeID = *req.AssigneeID
	}
	if req.Members != nil {
		t.Members = *req.Members
	}
	if req.StartAt != nil {
		t.StartAt = *req.StartAt
	}
	if req.EndAt != nil {
		t.EndAt = *req.EndAt
	}
	if req.Tags != nil {
		t.Tags = *req.Tags
	}
}
