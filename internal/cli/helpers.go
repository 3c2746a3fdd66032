package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tranvq/pipeboard/internal/models"
	"github.com/tranvq/pipeboard/internal/pipeline"
)

// ValidateColorHex validates that a color string is in valid hex format #RRGGBB
func ValidateColorHex(color string) error {
	matched, err := regexp.MatchString(`^#[0-9A-Fa-f]{6}$`, color)
	if err != nil {
		return fmt.Errorf("error validating color: %w", err)
	}
	if !matched {
		return fmt.Errorf("color must be in hex format #RRGGBB (e.g., #FF0000), got: %s", color)
	}
	return nil
}

// ParseTaskType validates a task type string.
func ParseTaskType(typeStr string) (string, error) {
	switch strings.ToLower(typeStr) {
	case models.TaskTypeTask, models.TaskTypeInfo, models.TaskTypeRequest:
		return strings.ToLower(typeStr), nil
	}
	return "", fmt.Errorf("invalid type '%s' (must be: task, info, request)", typeStr)
}

// ParsePriority validates a priority string.
func ParsePriority(priority string) (string, error) {
	switch strings.ToLower(priority) {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return strings.ToLower(priority), nil
	}
	return "", fmt.Errorf("invalid priority '%s' (must be: low, medium, high)", priority)
}

// ParseTaskStatus validates a task status string.
func ParseTaskStatus(status string) (string, error) {
	switch strings.ToLower(status) {
	case models.TaskStatusPlan, models.TaskStatusPrepare, models.TaskStatusInProgress, models.TaskStatusDone:
		return strings.ToLower(status), nil
	}
	return "", fmt.Errorf("invalid status '%s' (must be: plan, prepare, in_progress, done)", status)
}

// ParseStageStatus validates a stage status string. The empty string and
// "unset" both clear the status.
func ParseStageStatus(status string) (models.StageStatus, error) {
	switch strings.ToLower(status) {
	case "", "unset":
		return models.StageUnset, nil
	case string(models.StageInProgress):
		return models.StageInProgress, nil
	case string(models.StageDone):
		return models.StageDone, nil
	case string(models.StageSkipped):
		return models.StageSkipped, nil
	}
	return "", fmt.Errorf("invalid stage status '%s' (must be: unset, in_progress, done, skipped)", status)
}

// ParseStagePath parses a dotted index path like "3" or "3.0.1" into tree
// indices. Indices are zero-based.
func ParseStagePath(s string) (pipeline.Path, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty stage path")
	}
	parts := strings.Split(s, ".")
	path := make(pipeline.Path, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid stage path %q (use dotted indices like 3.0.1)", s)
		}
		path = append(path, n)
	}
	return path, nil
}

// FindStagePath locates a stage by id anywhere in the tree, returning its
// path. Accepts either a stage id or a dotted index path.
func FindStagePath(tree []*models.Stage, ref string) (pipeline.Path, error) {
	var found pipeline.Path
	pipeline.Walk(tree, func(s *models.Stage, path pipeline.Path) {
		if found == nil && s.ID == ref {
			found = path.Clone()
		}
	})
	if found != nil {
		return found, nil
	}
	if path, err := ParseStagePath(ref); err == nil {
		if pipeline.NodeAt(tree, path) != nil {
			return path, nil
		}
	}
	return nil, fmt.Errorf("stage %q not found", ref)
}
