package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/tranvq/pipeboard/internal/models"
)

// fixedClock pins timestamps for the duration of a test.
func fixedClock(t *testing.T, stamp string) {
	t.Helper()
	parsed, err := time.Parse(TimeLayout, stamp)
	if err != nil {
		t.Fatalf("bad test stamp: %v", err)
	}
	old := timeNow
	timeNow = func() time.Time { return parsed }
	t.Cleanup(func() { timeNow = old })
}

func leaf(id string, status models.StageStatus) *models.Stage {
	return &models.Stage{ID: id, Name: HumanizeID(id), Status: status}
}

func group(id string, children ...*models.Stage) *models.Stage {
	return &models.Stage{ID: id, Name: HumanizeID(id), Children: children}
}

func statusOf(t *testing.T, tree []*models.Stage, path Path) models.StageStatus {
	t.Helper()
	node := NodeAt(tree, path)
	if node == nil {
		t.Fatalf("no node at %v", path)
	}
	return node.Status
}

func TestSetStatusGatesActivation(t *testing.T) {
	tree := []*models.Stage{
		leaf("a", models.StageUnset),
		leaf("b", models.StageUnset),
	}

	// b cannot start while a is open
	_, err := SetStatus(tree, Path{1}, models.StageInProgress)
	if !errors.Is(err, ErrGated) {
		t.Fatalf("expected ErrGated, got %v", err)
	}

	// a can
	next, err := SetStatus(tree, Path{0}, models.StageInProgress)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if got := statusOf(t, next, Path{0}); got != models.StageInProgress {
		t.Fatalf("a status = %q", got)
	}

	// and now b is still blocked: a is in progress, not complete
	_, err = SetStatus(next, Path{1}, models.StageInProgress)
	if !errors.Is(err, ErrGated) {
		t.Fatalf("expected ErrGated while a active, got %v", err)
	}
}

func TestSetStatusRejectsSecondActiveStage(t *testing.T) {
	tree := []*models.Stage{
		leaf("a", models.StageDone),
		leaf("b", models.StageInProgress),
		leaf("c", models.StageUnset),
	}
	_, err := SetStatus(tree, Path{2}, models.StageInProgress)
	if !errors.Is(err, ErrGated) {
		t.Fatalf("expected ErrGated with b active, got %v", err)
	}
}

func TestSetStatusContainerRejected(t *testing.T) {
	tree := []*models.Stage{
		group("g", leaf("a", models.StageUnset)),
	}
	for _, status := range []models.StageStatus{models.StageInProgress, models.StageDone} {
		if _, err := SetStatus(tree, Path{0}, status); !errors.Is(err, ErrNotLeaf) {
			t.Fatalf("status %q: expected ErrNotLeaf, got %v", status, err)
		}
	}
	// skipping a container is allowed
	next, err := SetStatus(tree, Path{0}, models.StageSkipped)
	if err != nil {
		t.Fatalf("skip container: %v", err)
	}
	if got := statusOf(t, next, Path{0}); got != models.StageSkipped {
		t.Fatalf("container status = %q", got)
	}
}

func TestDoneAutoAdvances(t *testing.T) {
	fixedClock(t, "2026-03-01T10:00")
	tree := []*models.Stage{
		leaf("a", models.StageInProgress),
		leaf("b", models.StageUnset),
		leaf("c", models.StageUnset),
	}
	next, err := SetStatus(tree, Path{0}, models.StageDone)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if got := statusOf(t, next, Path{0}); got != models.StageDone {
		t.Fatalf("a = %q", got)
	}
	if got := statusOf(t, next, Path{1}); got != models.StageInProgress {
		t.Fatalf("b = %q, want in_progress", got)
	}
	if got := statusOf(t, next, Path{2}); got != models.StageUnset {
		t.Fatalf("c = %q, want unset", got)
	}
	if NodeAt(next, Path{0}).EndAt != "2026-03-01T10:00" {
		t.Fatalf("a endAt = %q", NodeAt(next, Path{0}).EndAt)
	}
	if NodeAt(next, Path{1}).StartAt != "2026-03-01T10:00" {
		t.Fatalf("b startAt = %q", NodeAt(next, Path{1}).StartAt)
	}
}

func TestSkipAutoAdvancesIntoNestedLeaf(t *testing.T) {
	tree := []*models.Stage{
		leaf("a", models.StageInProgress),
		group("g",
			leaf("g1", models.StageUnset),
			leaf("g2", models.StageUnset),
		),
		leaf("b", models.StageUnset),
	}
	next, err := SetStatus(tree, Path{0}, models.StageSkipped)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	// first eligible leaf in document order is g1
	if got := statusOf(t, next, Path{1, 0}); got != models.StageInProgress {
		t.Fatalf("g1 = %q, want in_progress", got)
	}
}

func TestSkipGroupAdvancesPastSubtree(t *testing.T) {
	tree := []*models.Stage{
		leaf("a", models.StageDone),
		group("g",
			leaf("g1", models.StageUnset),
			leaf("g2", models.StageUnset),
		),
		leaf("b", models.StageUnset),
	}
	next, err := SetStatus(tree, Path{1}, models.StageSkipped)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	// the group's own leaves are inside the skipped subtree; b activates
	if got := statusOf(t, next, Path{1, 0}); got != models.StageUnset {
		t.Fatalf("g1 = %q, want unset", got)
	}
	if got := statusOf(t, next, Path{2}); got != models.StageInProgress {
		t.Fatalf("b = %q, want in_progress", got)
	}
}

func TestAutoAdvanceStopsAtGatedLeaf(t *testing.T) {
	// completing the nested last leaf must not activate anything when the
	// tree is exhausted
	tree := []*models.Stage{
		leaf("a", models.StageDone),
		leaf("b", models.StageInProgress),
	}
	next, err := SetStatus(tree, Path{1}, models.StageDone)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if HasInProgress(next) {
		t.Fatal("no stage should be active after the last leaf completes")
	}
}

func TestSetStatusUnknownPathIsNoop(t *testing.T) {
	tree := []*models.Stage{leaf("a", models.StageUnset)}
	next, err := SetStatus(tree, Path{5}, models.StageDone)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if next[0] != tree[0] {
		t.Fatal("tree changed for unresolvable path")
	}
}

func TestSetStatusDoesNotMutateInput(t *testing.T) {
	tree := []*models.Stage{
		leaf("a", models.StageInProgress),
		leaf("b", models.StageUnset),
	}
	_, err := SetStatus(tree, Path{0}, models.StageDone)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if tree[0].Status != models.StageInProgress {
		t.Fatalf("input mutated: a = %q", tree[0].Status)
	}
	if tree[1].Status != models.StageUnset {
		t.Fatalf("input mutated: b = %q", tree[1].Status)
	}
}

func TestMoveSiblingBounds(t *testing.T) {
	tree := []*models.Stage{
		leaf("a", models.StageUnset),
		leaf("b", models.StageUnset),
	}

	// moving a up is a silent no-op
	next, path := MoveSibling(tree, Path{0}, Up)
	if !path.Equal(Path{0}) {
		t.Fatalf("path = %v, want unchanged", path)
	}
	if NodeAt(next, Path{0}).ID != "a" {
		t.Fatal("order changed on boundary move")
	}

	// moving a down swaps
	next, path = MoveSibling(tree, Path{0}, Down)
	if !path.Equal(Path{1}) {
		t.Fatalf("path = %v, want [1]", path)
	}
	if NodeAt(next, Path{0}).ID != "b" || NodeAt(next, Path{1}).ID != "a" {
		t.Fatal("siblings not swapped")
	}
	// input untouched
	if tree[0].ID != "a" {
		t.Fatal("input mutated")
	}
}

func TestInsertStageActivatesWhenEligible(t *testing.T) {
	fixedClock(t, "2026-03-02T09:30")
	tree := []*models.Stage{
		leaf("a", models.StageDone),
		leaf("b", models.StageUnset),
	}
	next, path, err := InsertStage(tree, Path{1}, Before, "Review")
	if err != nil {
		t.Fatalf("InsertStage: %v", err)
	}
	node := NodeAt(next, path)
	if node.Name != "Review" || !node.IsCustom() {
		t.Fatalf("inserted node = %+v", node)
	}
	// a is done and nothing is active, so the new leaf starts immediately
	if node.Status != models.StageInProgress {
		t.Fatalf("inserted status = %q, want in_progress", node.Status)
	}
	if node.StartAt != "2026-03-02T09:30" {
		t.Fatalf("inserted startAt = %q", node.StartAt)
	}
}

func TestInsertStageStaysUnsetWhenGated(t *testing.T) {
	tree := []*models.Stage{
		leaf("a", models.StageInProgress),
		leaf("b", models.StageUnset),
	}
	next, path, err := InsertStage(tree, Path{1}, After, "Extra")
	if err != nil {
		t.Fatalf("InsertStage: %v", err)
	}
	if got := NodeAt(next, path).Status; got != models.StageUnset {
		t.Fatalf("inserted status = %q, want unset while a is active", got)
	}
}

func TestInsertStageBlankName(t *testing.T) {
	tree := []*models.Stage{leaf("a", models.StageUnset)}
	if _, _, err := InsertStage(tree, Path{0}, After, "   "); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestRemoveStageBuiltinRefused(t *testing.T) {
	tree := Default()
	if _, err := RemoveStage(tree, Path{3}); !errors.Is(err, ErrBuiltinStage) {
		t.Fatal("built-in stage removal must be refused")
	}

	withCustom, path, err := InsertStage(tree, Path{3}, After, "Extra")
	if err != nil {
		t.Fatalf("InsertStage: %v", err)
	}
	next, err := RemoveStage(withCustom, path)
	if err != nil {
		t.Fatalf("RemoveStage: %v", err)
	}
	if len(next) != len(tree) {
		t.Fatalf("len = %d, want %d", len(next), len(tree))
	}
}

func TestAddChildTurnsLeafIntoGroup(t *testing.T) {
	tree := []*models.Stage{leaf("a", models.StageUnset)}
	next, err := AddChild(tree, Path{0}, "Sub")
	if err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	parent := NodeAt(next, Path{0})
	if parent.IsLeaf() {
		t.Fatal("parent still a leaf")
	}
	child := NodeAt(next, Path{0, 0})
	if child.Name != "Sub" || !child.IsCustom() {
		t.Fatalf("child = %+v", child)
	}
	if !tree[0].IsLeaf() {
		t.Fatal("input mutated")
	}
}

func TestUpdateStageCopyOnWrite(t *testing.T) {
	tree := []*models.Stage{leaf("a", models.StageUnset), leaf("b", models.StageUnset)}
	next := UpdateStage(tree, Path{0}, func(s *models.Stage) {
		s.Note = "changed"
		s.Owners = []int{3, 7}
	})
	if tree[0].Note != "" {
		t.Fatal("input mutated")
	}
	if NodeAt(next, Path{0}).Note != "changed" {
		t.Fatal("update lost")
	}
	// untouched sibling shares the node
	if tree[1] != next[1] {
		t.Fatal("untouched subtree not shared")
	}
}

func TestDefaultPipeline(t *testing.T) {
	tree := Default()
	if len(tree) != 16 {
		t.Fatalf("len = %d, want 16", len(tree))
	}
	if tree[0].ID != "start" || tree[0].Status != models.StageInProgress {
		t.Fatalf("first stage = %+v", tree[0])
	}
	if tree[0].StartAt != "" {
		t.Fatal("default must not stamp startAt")
	}
	for _, s := range tree[1:] {
		if s.Status != models.StageUnset {
			t.Fatalf("stage %s status = %q", s.ID, s.Status)
		}
	}
	if tree[2].Name != "Check & Report" {
		t.Fatalf("check_report name = %q", tree[2].Name)
	}
}

func TestResetToDefaultKeepsRenames(t *testing.T) {
	tree := Default()
	tree = UpdateStage(tree, Path{8}, func(s *models.Stage) { s.Name = "Detailed Design" })
	tree, _, err := InsertStage(tree, Path{0}, After, "Temp stage")
	if err != nil {
		t.Fatalf("InsertStage: %v", err)
	}

	fresh := ResetToDefault(tree)
	if len(fresh) != 16 {
		t.Fatalf("len = %d, want 16", len(fresh))
	}
	var design *models.Stage
	for _, s := range fresh {
		if s.ID == "design" {
			design = s
		}
		if s.IsCustom() {
			t.Fatal("custom stage survived reset")
		}
	}
	if design == nil || design.Name != "Detailed Design" {
		t.Fatalf("rename lost: %+v", design)
	}
	if fresh[0].Status != models.StageInProgress {
		t.Fatal("first stage not active after reset")
	}
}
