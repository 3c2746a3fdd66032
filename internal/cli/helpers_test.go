package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tranvq/pipeboard/internal/models"
	"github.com/tranvq/pipeboard/internal/pipeline"
)

func TestValidateColorHex(t *testing.T) {
	tests := []struct {
		color   string
		wantErr bool
	}{
		{"#FF0000", false},
		{"#a1b2c3", false},
		{"FF0000", true},
		{"#FFF", true},
		{"#GG0000", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateColorHex(tt.color)
		if tt.wantErr {
			assert.Error(t, err, "color %q should be rejected", tt.color)
		} else {
			assert.NoError(t, err, "color %q should be accepted", tt.color)
		}
	}
}

func TestParseTaskType(t *testing.T) {
	got, err := ParseTaskType("Request")
	assert.NoError(t, err)
	assert.Equal(t, models.TaskTypeRequest, got)

	_, err = ParseTaskType("bug")
	assert.Error(t, err)
}

func TestParsePriority(t *testing.T) {
	got, err := ParsePriority("HIGH")
	assert.NoError(t, err)
	assert.Equal(t, models.PriorityHigh, got)

	_, err = ParsePriority("urgent")
	assert.Error(t, err)
}

func TestParseTaskStatus(t *testing.T) {
	got, err := ParseTaskStatus("In_Progress")
	assert.NoError(t, err)
	assert.Equal(t, models.TaskStatusInProgress, got)

	_, err = ParseTaskStatus("blocked")
	assert.Error(t, err)
}

func TestParseStageStatus(t *testing.T) {
	got, err := ParseStageStatus("")
	assert.NoError(t, err)
	assert.Equal(t, models.StageUnset, got)

	got, err = ParseStageStatus("skipped")
	assert.NoError(t, err)
	assert.Equal(t, models.StageSkipped, got)

	_, err = ParseStageStatus("paused")
	assert.Error(t, err)
}

func TestParseStagePath(t *testing.T) {
	path, err := ParseStagePath("3.0.1")
	assert.NoError(t, err)
	assert.Equal(t, pipeline.Path{3, 0, 1}, path)

	path, err = ParseStagePath(" 2 ")
	assert.NoError(t, err)
	assert.Equal(t, pipeline.Path{2}, path)

	for _, bad := range []string{"", "a.b", "1.-2", "1..2"} {
		_, err := ParseStagePath(bad)
		assert.Error(t, err, "path %q should be rejected", bad)
	}
}

func TestFindStagePath(t *testing.T) {
	tree := []*models.Stage{
		{ID: "start", Name: "Start"},
		{ID: "build_phase", Name: "Build", Children: []*models.Stage{
			{ID: "design", Name: "Design"},
			{ID: "build", Name: "Build"},
		}},
	}

	path, err := FindStagePath(tree, "build")
	assert.NoError(t, err)
	assert.Equal(t, pipeline.Path{1, 1}, path)

	// dotted index path as fallback
	path, err = FindStagePath(tree, "1.0")
	assert.NoError(t, err)
	assert.Equal(t, pipeline.Path{1, 0}, path)

	_, err = FindStagePath(tree, "missing")
	assert.Error(t, err)

	// index path that resolves to nothing
	_, err = FindStagePath(tree, "5.2")
	assert.Error(t, err)
}
