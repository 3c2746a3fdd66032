package pipeline

import (
	"strings"

	"github.com/google/uuid"

	"github.com/tranvq/pipeboard/internal/models"
)

// defaultStageIDs is the canonical 16-stage delivery pipeline, in order.
// These ids are well known: they survive resets, match stageMeta keys from
// legacy records, and are the only stages that cannot be deleted.
var defaultStageIDs = []string{
	"start",
	"assessment",
	"check_report",
	"survey_demo",
	"design_build_demo",
	"demo",
	"demo_report",
	"await_contract",
	"design",
	"build",
	"test",
	"install",
	"trial_run",
	"handover",
	"acceptance",
	"support",
}

// defaultStageNames overrides HumanizeID where the generated label reads
// poorly.
var defaultStageNames = map[string]string{
	"check_report":      "Check & Report",
	"survey_demo":       "Survey Demo",
	"design_build_demo": "Design & Build Demo",
	"await_contract":    "Await Contract",
}

// Default returns the default flat pipeline for a new project: sixteen leaf
// stages with the first one already in progress.
func Default() []*models.Stage {
	stages := make([]*models.Stage, len(defaultStageIDs))
	for i, id := range defaultStageIDs {
		s := &models.Stage{ID: id, Name: stageName(id)}
		if i == 0 {
			s.Status = models.StageInProgress
		}
		stages[i] = s
	}
	return stages
}

func stageName(id string) string {
	if name, ok := defaultStageNames[id]; ok {
		return name
	}
	return HumanizeID(id)
}

// HumanizeID turns a snake_case stage id into a display label.
func HumanizeID(id string) string {
	parts := strings.Split(id, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// NewCustomStage builds a user-added stage with a generated custom- id.
func NewCustomStage(name string) *models.Stage {
	return &models.Stage{
		ID:   models.CustomStagePrefix + uuid.NewString(),
		Name: name,
	}
}

// ResetToDefault replaces the tree with the canonical flat pipeline. Display
// name overrides for well-known ids found anywhere in the old tree are
// preserved; stage 0 comes back in progress and everything else unset.
func ResetToDefault(tree []*models.Stage) []*models.Stage {
	names := make(map[string]string)
	Walk(tree, func(s *models.Stage, _ Path) {
		if s.Name != "" {
			names[s.ID] = s.Name
		}
	})

	fresh := make([]*models.Stage, len(defaultStageIDs))
	for i, id := range defaultStageIDs {
		name := names[id]
		if name == "" {
			name = stageName(id)
		}
		s := &models.Stage{ID: id, Name: name}
		if i == 0 {
			s.Status = models.StageInProgress
		}
		fresh[i] = s
	}
	return fresh
}
