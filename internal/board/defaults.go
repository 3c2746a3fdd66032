package board

import (
	"github.com/google/uuid"

	"github.com/tranvq/pipeboard/internal/models"
)

// DefaultBoard returns the canonical starter board: three columns with one
// welcome task. Used when a board key has never been written or its stored
// value fails to parse.
func DefaultBoard() []*models.Column {
	return []*models.Column{
		{
			ID:    "todo",
			Title: "Todo",
			Color: "#f1f5f9",
			Tasks: []*models.Task{{
				ID:          uuid.NewString(),
				Title:       "Welcome 👋",
				Description: "Move cards between columns to get going",
				Status:      models.TaskStatusPlan,
				Type:        models.TaskTypeTask,
				Priority:    models.PriorityMedium,
			}},
		},
		{ID: "doing", Title: "In Progress", Color: "#fff7ed", Tasks: []*models.Task{}},
		{ID: "done", Title: "Done", Color: "#ecfdf5", Tasks: []*models.Task{}},
	}
}
