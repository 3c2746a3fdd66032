package pipeline

import (
	"testing"

	"github.com/tranvq/pipeboard/internal/models"
)

func TestComputeProgressLeavesOnly(t *testing.T) {
	tree := []*models.Stage{
		leaf("a", models.StageDone),
		group("g",
			leaf("g1", models.StageDone),
			leaf("g2", models.StageUnset),
		),
		leaf("b", models.StageSkipped),
	}
	p := ComputeProgress(tree)
	if p.Total != 4 {
		t.Fatalf("total = %d, want 4 (containers don't count)", p.Total)
	}
	if p.Done != 2 || p.Skipped != 1 {
		t.Fatalf("done/skipped = %d/%d", p.Done, p.Skipped)
	}
	// 2 done over 3 countable = 67%
	if p.Pct != 67 {
		t.Fatalf("pct = %d, want 67", p.Pct)
	}
}

func TestComputeProgressAllSkipped(t *testing.T) {
	tree := []*models.Stage{
		leaf("a", models.StageSkipped),
		leaf("b", models.StageSkipped),
	}
	p := ComputeProgress(tree)
	if p.Pct != 0 {
		t.Fatalf("pct = %d, want 0 for a fully skipped pipeline", p.Pct)
	}
}

func TestComputeProgressEmpty(t *testing.T) {
	p := ComputeProgress(nil)
	if p.Pct != 0 || p.Total != 0 {
		t.Fatalf("progress = %+v", p)
	}
}

func TestDerivedStatusContainer(t *testing.T) {
	g := group("g",
		leaf("g1", models.StageDone),
		leaf("g2", models.StageInProgress),
	)
	if got := DerivedStatus(g); got != models.StageInProgress {
		t.Fatalf("derived = %q, want in_progress", got)
	}

	g = group("g",
		leaf("g1", models.StageDone),
		leaf("g2", models.StageSkipped),
	)
	if got := DerivedStatus(g); got != models.StageDone {
		t.Fatalf("derived = %q, want done", got)
	}

	// explicit skip wins over children
	g.Status = models.StageSkipped
	if got := DerivedStatus(g); got != models.StageSkipped {
		t.Fatalf("derived = %q, want skipped", got)
	}
}
