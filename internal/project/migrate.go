package project

import (
	"github.com/tranvq/pipeboard/internal/models"
	"github.com/tranvq/pipeboard/internal/pipeline"
)

// legacyMaxStageIndex clamps stageIndex from the pre-pipeline schema, which
// only ever had seven stepper positions.
const legacyMaxStageIndex = 6

// MigrateLegacy upgrades a pre-pipeline project record: it builds the
// canonical default pipeline, marks stages before the legacy stageIndex
// done and the stage at the index in progress, and copies matching
// stageMeta fields onto the corresponding nodes. The operation is pure; the
// caller persists the result. Running it on an already-migrated record
// returns the record unchanged.
func MigrateLegacy(p *models.Project) *models.Project {
	if p.Migrated() {
		return p
	}

	legacyIndex := 0
	if p.StageIndex != nil {
		legacyIndex = *p.StageIndex
	}
	if legacyIndex < 0 {
		legacyIndex = 0
	}
	if legacyIndex > legacyMaxStageIndex {
		legacyIndex = legacyMaxStageIndex
	}

	tree := pipeline.Default()
	for i, stage := range tree {
		s := stage.Clone()
		switch {
		case i < legacyIndex:
			s.Status = models.StageDone
		case i == legacyIndex:
			s.Status = models.StageInProgress
		default:
			s.Status = models.StageUnset
		}
		if meta, ok := p.StageMeta[s.ID]; ok {
			if meta.StartAt != "" {
				s.StartAt = meta.StartAt
			}
			if meta.EndAt != "" {
				s.EndAt = meta.EndAt
			}
			if meta.Note != "" {
				s.Note = meta.Note
			}
		}
		tree[i] = s
	}

	upgraded := *p
	upgraded.Pipeline = ensureSingleInProgress(tree)
	return &upgraded
}

// ensureSingleInProgress keeps only the first in_progress stage active;
// later ones are cleared back to unset. Records written by older clients
// can carry several active stages.
func ensureSingleInProgress(tree []*models.Stage) []*models.Stage {
	seen := false
	var norm func(nodes []*models.Stage)
	norm = func(nodes []*models.Stage) {
		for i, n := range nodes {
			if n.Status == models.StageInProgress {
				if seen {
					c := n.Clone()
					c.Status = models.StageUnset
					nodes[i] = c
				}
				seen = true
			}
			norm(nodes[i].Children)
		}
	}
	norm(tree)
	return tree
}
