package pipeline

import (
	"math"

	"github.com/tranvq/pipeboard/internal/models"
)

// Progress summarizes leaf completion across the tree. Containers never
// count; they only group leaves.
type Progress struct {
	Done    int `json:"done"`
	Total   int `json:"total"`
	Skipped int `json:"skipped"`
	Pct     int `json:"pct"`
}

// ComputeProgress counts leaves by status. Pct is done over the
// non-skipped total, rounded; a fully skipped pipeline reads 0%.
func ComputeProgress(tree []*models.Stage) Progress {
	var p Progress
	for _, leaf := range Leaves(tree) {
		p.Total++
		switch leaf.Stage.Status {
		case models.StageDone:
			p.Done++
		case models.StageSkipped:
			p.Skipped++
		}
	}
	denom := p.Total - p.Skipped
	if denom < 1 {
		denom = 1
	}
	p.Pct = int(math.Round(float64(p.Done) / float64(denom) * 100))
	return p
}

// DerivedStatus is the display status of a node. Explicit done/skipped win;
// a container otherwise reads in_progress when any descendant is active,
// done when every descendant leaf is done or skipped, and its raw (usually
// unset) status otherwise.
func DerivedStatus(node *models.Stage) models.StageStatus {
	if node.Status == models.StageSkipped || node.Status == models.StageDone {
		return node.Status
	}
	if !node.IsLeaf() {
		if HasInProgress(node.Children) {
			return models.StageInProgress
		}
		allDone := true
		for _, leaf := range Leaves(node.Children) {
			if leaf.Stage.Status != models.StageDone && leaf.Stage.Status != models.StageSkipped {
				allDone = false
				break
			}
		}
		if allDone {
			return models.StageDone
		}
	}
	return node.Status
}
