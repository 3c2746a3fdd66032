package board

import (
	"strings"

	"github.com/tranvq/pipeboard/internal/models"
)

// Filter returns a view of the board keeping only tasks whose title or
// description contains query (case-insensitive). Columns are retained even
// when empty after filtering, and the input board is never modified. A
// blank query returns the input as-is.
func Filter(cols []*models.Column, query string) []*models.Column {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return cols
	}
	out := make([]*models.Column, len(cols))
	for i, col := range cols {
		filtered := col.Clone()
		filtered.Tasks = make([]*models.Task, 0, len(col.Tasks))
		for _, t := range col.Tasks {
			if strings.Contains(strings.ToLower(t.Title), q) ||
				strings.Contains(strings.ToLower(t.Description), q) {
				filtered.Tasks = append(filtered.Tasks, t)
			}
		}
		out[i] = filtered
	}
	return out
}
