package board

import (
	"context"
	"errors"
	"testing"

	"github.com/tranvq/pipeboard/internal/events"
	"github.com/tranvq/pipeboard/internal/models"
	"github.com/tranvq/pipeboard/internal/storage"
)

func newTestService(t *testing.T) (Service, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	return NewService(store, "kanban-board-project-p1", "p1", events.NewBus()), store
}

func TestLoadAbsentKeyReturnsDefaultBoard(t *testing.T) {
	svc, _ := newTestService(t)
	cols, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cols) != 3 {
		t.Fatalf("columns = %d, want 3", len(cols))
	}
	if cols[0].ID != "todo" || cols[1].ID != "doing" || cols[2].ID != "done" {
		t.Fatalf("unexpected column ids: %s %s %s", cols[0].ID, cols[1].ID, cols[2].ID)
	}
	if len(cols[0].Tasks) != 1 {
		t.Fatal("default board should carry the welcome task")
	}
}

func TestLoadCorruptValueReturnsDefaultBoard(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	if err := store.Set(ctx, "kanban-board-project-p1", []byte("{not json")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	cols, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cols) != 3 {
		t.Fatalf("corrupt value must hydrate the default board, got %d columns", len(cols))
	}
}

func TestAddTaskDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	task, err := svc.AddTask(ctx, "doing", AddTaskRequest{Title: "  Order parts  "})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if task.Title != "Order parts" {
		t.Fatalf("title = %q", task.Title)
	}
	if task.Status != models.TaskStatusPlan || task.Type != models.TaskTypeTask || task.Priority != models.PriorityMedium {
		t.Fatalf("defaults not applied: %+v", task)
	}
	if task.ID == "" {
		t.Fatal("id not generated")
	}

	cols, _ := svc.Load(ctx)
	if len(cols[1].Tasks) != 1 || cols[1].Tasks[0].ID != task.ID {
		t.Fatal("task not appended to the doing column")
	}
}

func TestAddTaskBlankTitle(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.AddTask(context.Background(), "todo", AddTaskRequest{Title: "   "}); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
}

func TestAddTaskUnknownColumn(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.AddTask(context.Background(), "nope", AddTaskRequest{Title: "x"}); !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestUpdateTaskPatchesByIDAcrossColumns(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	task, err := svc.AddTask(ctx, "doing", AddTaskRequest{Title: "Wire cabinet"})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	high := models.PriorityHigh
	desc := "three-phase"
	if err := svc.UpdateTask(ctx, task.ID, UpdateTaskRequest{Priority: &high, Description: &desc}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	cols, _ := svc.Load(ctx)
	got := cols[1].Tasks[0]
	if got.Priority != models.PriorityHigh || got.Description != "three-phase" {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.Title != "Wire cabinet" {
		t.Fatalf("untouched field changed: %q", got.Title)
	}
}

func TestUpdateTaskUnknownIDIsNoop(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	title := "x"
	if err := svc.UpdateTask(ctx, "missing", UpdateTaskRequest{Title: &title}); err != nil {
		t.Fatalf("unknown id must be a silent no-op, got %v", err)
	}
}

func TestMoveTaskPreservesFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	task, err := svc.AddTask(ctx, "todo", AddTaskRequest{Title: "Install sensors", Type: models.TaskTypeRequest})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	tags := []string{"field", "urgent"}
	if err := svc.UpdateTask(ctx, task.ID, UpdateTaskRequest{Tags: &tags}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	if err := svc.MoveTask(ctx, task.ID, "todo", "doing"); err != nil {
		t.Fatalf("MoveTask: %v", err)
	}

	cols, _ := svc.Load(ctx)
	// removed from todo (welcome task stays), appended to doing
	for _, tk := range cols[0].Tasks {
		if tk.ID == task.ID {
			t.Fatal("task still present in source column")
		}
	}
	if n := len(cols[1].Tasks); n != 1 {
		t.Fatalf("doing has %d tasks, want 1", n)
	}
	got := cols[1].Tasks[0]
	if got.Type != models.TaskTypeRequest || len(got.Tags) != 2 {
		t.Fatalf("fields lost in move: %+v", got)
	}
}

func TestMoveTaskSameColumnIsNoop(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	task, _ := svc.AddTask(ctx, "todo", AddTaskRequest{Title: "t"})
	if err := svc.MoveTask(ctx, task.ID, "todo", "todo"); err != nil {
		t.Fatalf("same-column move must be a no-op, got %v", err)
	}
}

func TestMoveTaskMissingFromSource(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.MoveTask(context.Background(), "missing", "todo", "doing")
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	// board unchanged
	cols, _ := svc.Load(context.Background())
	if len(cols[1].Tasks) != 0 {
		t.Fatal("failed move must change nothing")
	}
}

func TestDeleteTask(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	task, _ := svc.AddTask(ctx, "todo", AddTaskRequest{Title: "t"})
	if err := svc.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	cols, _ := svc.Load(ctx)
	for _, tk := range cols[0].Tasks {
		if tk.ID == task.ID {
			t.Fatal("task not deleted")
		}
	}
}

func TestColumnLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	col, err := svc.AddColumn(ctx, AddColumnRequest{Title: "Review", Color: "#e0f2fe"})
	if err != nil {
		t.Fatalf("AddColumn: %v", err)
	}

	title := "In Review"
	if err := svc.UpdateColumn(ctx, col.ID, UpdateColumnRequest{Title: &title}); err != nil {
		t.Fatalf("UpdateColumn: %v", err)
	}

	// move the new column before "doing"
	if err := svc.MoveColumn(ctx, col.ID, "doing"); err != nil {
		t.Fatalf("MoveColumn: %v", err)
	}
	cols, _ := svc.Load(ctx)
	if cols[1].ID != col.ID || cols[1].Title != "In Review" {
		t.Fatalf("column order after move: %s %s %s %s", cols[0].ID, cols[1].ID, cols[2].ID, cols[3].ID)
	}

	if err := svc.DeleteColumn(ctx, col.ID); err != nil {
		t.Fatalf("DeleteColumn: %v", err)
	}
	cols, _ = svc.Load(ctx)
	if len(cols) != 3 {
		t.Fatalf("columns = %d after delete, want 3", len(cols))
	}
}

func TestResetRestoresDefaultBoard(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.AddColumn(ctx, AddColumnRequest{Title: "Extra"}); err != nil {
		t.Fatalf("AddColumn: %v", err)
	}
	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	cols, _ := svc.Load(ctx)
	if len(cols) != 3 || cols[0].ID != "todo" {
		t.Fatal("reset did not restore the default board")
	}
}

func TestEventsPublishedOnMutation(t *testing.T) {
	store := storage.NewMemoryStore()
	bus := events.NewBus()
	var got []events.Event
	bus.Subscribe(func(e events.Event) { got = append(got, e) })

	svc := NewService(store, "kanban-board-project-p1", "p1", bus)
	task, err := svc.AddTask(context.Background(), "todo", AddTaskRequest{Title: "t"})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("events = %d, want 1", len(got))
	}
	if got[0].Type != events.EventBoardChanged || got[0].ProjectID != "p1" || got[0].TaskID != task.ID {
		t.Fatalf("event = %+v", got[0])
	}
}
