package pipeline

import (
	"slices"
	"strings"

	"github.com/tranvq/pipeboard/internal/models"
)

// Direction selects a sibling swap target for MoveSibling.
type Direction int

const (
	Up Direction = iota
	Down
)

// InsertPosition selects which side of the anchor InsertStage targets.
type InsertPosition int

const (
	Before InsertPosition = iota
	After
)

// CanActivate reports whether the leaf at path may transition to
// in_progress: it must be a leaf, every prior sibling at every ancestor
// depth must be complete (done or skipped), and nothing else anywhere in
// the tree may currently be in progress.
func CanActivate(tree []*models.Stage, path Path) bool {
	node := NodeAt(tree, path)
	if node == nil || !node.IsLeaf() {
		return false
	}
	list := tree
	for _, idx := range path {
		for _, prev := range list[:idx] {
			if !IsComplete(prev) {
				return false
			}
		}
		list = list[idx].Children
	}
	return !HasInProgress(tree)
}

// SetStatus transitions the stage at path to status and returns the new
// tree. Starting or completing a container is rejected with ErrNotLeaf;
// starting a gated leaf is rejected with ErrGated. A successful start
// stamps startAt and a successful completion stamps endAt when unset.
// After a done or skipped transition, auto-advance activates the next
// eligible leaf in document order.
//
// An unresolvable path is a silent no-op.
func SetStatus(tree []*models.Stage, path Path, status models.StageStatus) ([]*models.Stage, error) {
	node := NodeAt(tree, path)
	if node == nil {
		return tree, nil
	}

	if (status == models.StageInProgress || status == models.StageDone) && !node.IsLeaf() {
		return tree, ErrNotLeaf
	}
	if status == models.StageInProgress && !CanActivate(tree, path) {
		return tree, ErrGated
	}

	next := SetNodeAt(tree, path, func(s *models.Stage) *models.Stage {
		n := s.Clone()
		n.Status = status
		if status == models.StageInProgress && n.StartAt == "" {
			n.StartAt = nowStamp()
		}
		if status == models.StageDone && n.EndAt == "" {
			n.EndAt = nowStamp()
		}
		return n
	})

	if status == models.StageDone || status == models.StageSkipped {
		next = autoAdvance(next, path)
	}
	return next, nil
}

// autoAdvance activates the first leaf after the changed node for which
// gating holds, provided nothing is in progress. Leaves are scanned in
// strict left-to-right depth-first order; when the changed node is a
// container (a skipped group), scanning starts at the first leaf past its
// subtree.
func autoAdvance(tree []*models.Stage, changed Path) []*models.Stage {
	if HasInProgress(tree) {
		return tree
	}
	leaves := Leaves(tree)
	start := 0
	for i, leaf := range leaves {
		if leaf.Path.Equal(changed) || isUnder(leaf.Path, changed) {
			start = i + 1
		}
	}
	for _, leaf := range leaves[start:] {
		if CanActivate(tree, leaf.Path) {
			return SetNodeAt(tree, leaf.Path, func(s *models.Stage) *models.Stage {
				n := s.Clone()
				n.Status = models.StageInProgress
				if n.StartAt == "" {
					n.StartAt = nowStamp()
				}
				return n
			})
		}
	}
	return tree
}

// isUnder reports whether path lies strictly inside the subtree rooted at
// ancestor.
func isUnder(path, ancestor Path) bool {
	return len(path) > len(ancestor) && slices.Equal(path[:len(ancestor)], Path(ancestor))
}

// MoveSibling swaps the stage at path with its adjacent sibling within the
// same parent. Moves past either end of the sibling group are silent
// no-ops. The returned path addresses the node at its new position.
func MoveSibling(tree []*models.Stage, path Path, dir Direction) ([]*models.Stage, Path) {
	if len(path) == 0 || NodeAt(tree, path) == nil {
		return tree, path
	}
	index := path.Index()
	target := index - 1
	if dir == Down {
		target = index + 1
	}
	siblings := SiblingsAt(tree, path)
	if target < 0 || target >= len(siblings) {
		return tree, path
	}
	next := ModifyChildren(tree, path.Parent(), func(group []*models.Stage) []*models.Stage {
		group[index], group[target] = group[target], group[index]
		return group
	})
	return next, append(path.Parent(), target)
}

// InsertStage inserts a new custom stage named name before or after the
// sibling referenced by anchorPath. When the inserted leaf is immediately
// activatable and nothing else is in progress, it starts life in_progress
// with startAt stamped.
func InsertStage(tree []*models.Stage, anchorPath Path, pos InsertPosition, name string) ([]*models.Stage, Path, error) {
	if strings.TrimSpace(name) == "" {
		return tree, nil, ErrEmptyName
	}

	parentPath := anchorPath.Parent()
	index := anchorPath.Index()
	if index < 0 {
		index = 0
	}
	insertAt := index
	if pos == After {
		insertAt = index + 1
	}
	siblings := SiblingsAt(tree, anchorPath)
	if insertAt > len(siblings) {
		insertAt = len(siblings)
	}
	if insertAt < 0 {
		insertAt = 0
	}

	stage := NewCustomStage(strings.TrimSpace(name))
	next := ModifyChildren(tree, parentPath, func(group []*models.Stage) []*models.Stage {
		return slices.Insert(group, insertAt, stage)
	})

	newPath := append(parentPath, insertAt)
	if CanActivate(next, newPath) {
		next = SetNodeAt(next, newPath, func(s *models.Stage) *models.Stage {
			n := s.Clone()
			n.Status = models.StageInProgress
			n.StartAt = nowStamp()
			return n
		})
	}
	return next, newPath, nil
}

// RemoveStage deletes the stage at path. Only custom stages may be removed;
// built-in stages return ErrBuiltinStage. An unresolvable path is a silent
// no-op.
func RemoveStage(tree []*models.Stage, path Path) ([]*models.Stage, error) {
	node := NodeAt(tree, path)
	if node == nil || len(path) == 0 {
		return tree, nil
	}
	if !node.IsCustom() {
		return tree, ErrBuiltinStage
	}
	next := ModifyChildren(tree, path.Parent(), func(group []*models.Stage) []*models.Stage {
		return slices.Delete(group, path.Index(), path.Index()+1)
	})
	return next, nil
}

// AddChild appends a new custom stage to the children of the node at path,
// turning a leaf into a container.
func AddChild(tree []*models.Stage, path Path, name string) ([]*models.Stage, error) {
	if strings.TrimSpace(name) == "" {
		return tree, ErrEmptyName
	}
	if NodeAt(tree, path) == nil {
		return tree, nil
	}
	child := NewCustomStage(strings.TrimSpace(name))
	next := SetNodeAt(tree, path, func(s *models.Stage) *models.Stage {
		n := s.Clone()
		n.Children = append(slices.Clone(s.Children), child)
		return n
	})
	return next, nil
}

// UpdateStage applies an arbitrary field edit (name, owners, times, note)
// to the stage at path via copy-on-write. mutate receives a clone and may
// modify it freely. An unresolvable path is a silent no-op.
func UpdateStage(tree []*models.Stage, path Path, mutate func(*models.Stage)) []*models.Stage {
	return SetNodeAt(tree, path, func(s *models.Stage) *models.Stage {
		n := s.Clone()
		mutate(n)
		return n
	})
}
