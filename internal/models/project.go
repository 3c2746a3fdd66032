package models

import (
	"encoding/json"
	"strconv"
)

// Project is the top-level organizational unit: a named container holding a
// pipeline (stage tree) and, under its own storage key, a kanban board.
// JSON field names match the persisted schema of earlier releases so stored
// records load unchanged.
type Project struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Participants Participants `json:"participants"`
	Cover        string       `json:"cover,omitempty"`
	Pipeline     []*Stage     `json:"pipeline,omitempty"`

	// Legacy fields from the pre-pipeline schema. Read once during
	// migration, never written for new records past their initial values.
	StageIndex *int                 `json:"stageIndex,omitempty"`
	StageMeta  map[string]StageMeta `json:"stageMeta,omitempty"`
}

// Migrated reports whether the record already carries the pipeline model.
func (p *Project) Migrated() bool {
	return p.Pipeline != nil
}

// Participants is the list of member user ids on a project. The canonical
// representation is resolved user ids; earlier schema generations stored a
// mix of numbers, numeric strings and free-text names, so unmarshalling
// coerces numeric strings and drops entries that cannot name a user id.
type Participants []int

// UnmarshalJSON accepts numbers, numeric strings, and silently skips
// free-text entries from legacy records.
func (p *Participants) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Participants, 0, len(raw))
	for _, v := range raw {
		switch val := v.(type) {
		case float64:
			out = append(out, int(val))
		case string:
			if id, err := strconv.Atoi(val); err == nil {
				out = append(out, id)
			}
		}
	}
	*p = out
	return nil
}
