// Package pipeline implements the stage-tracking engine: an ordered forest
// of stages addressed by index paths, with copy-on-write edits, a global
// single-active-stage constraint, gated activation and auto-advance.
//
// All functions treat the input tree as immutable. Mutating operations
// return a new tree sharing every subtree they did not touch; on rejection
// they return the input tree unchanged together with a validation error.
package pipeline

import (
	"slices"

	"github.com/tranvq/pipeboard/internal/models"
)

// Path addresses a stage as zero-based child indices from the root.
type Path []int

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	return slices.Clone(p)
}

// Equal reports whether two paths address the same node.
func (p Path) Equal(other Path) bool {
	return slices.Equal(p, other)
}

// Parent returns the path without its last index. The root forest itself is
// addressed by the empty path.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return slices.Clone(p[:len(p)-1])
}

// Index returns the node's position within its sibling group, or -1 for the
// empty path.
func (p Path) Index() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1]
}

// NodeAt walks path and returns the addressed stage, or nil when any index
// falls out of range.
func NodeAt(tree []*models.Stage, path Path) *models.Stage {
	list := tree
	var node *models.Stage
	for _, idx := range path {
		if idx < 0 || idx >= len(list) {
			return nil
		}
		node = list[idx]
		list = node.Children
	}
	return node
}

// SiblingsAt returns the sibling group the node at path belongs to: the
// root forest for a single-index path, otherwise the parent's children.
func SiblingsAt(tree []*models.Stage, path Path) []*models.Stage {
	if len(path) <= 1 {
		return tree
	}
	parent := NodeAt(tree, path.Parent())
	if parent == nil {
		return nil
	}
	return parent.Children
}

// SetNodeAt returns a new tree with the stage at path replaced by
// update(old). Ancestors along the path are shallow-copied so untouched
// subtrees stay shared with the input. An unresolvable path returns the
// input unchanged.
func SetNodeAt(tree []*models.Stage, path Path, update func(*models.Stage) *models.Stage) []*models.Stage {
	if len(path) == 0 {
		return tree
	}
	if NodeAt(tree, path) == nil {
		return tree
	}
	return setNodeAt(tree, path, update)
}

func setNodeAt(tree []*models.Stage, path Path, update func(*models.Stage) *models.Stage) []*models.Stage {
	head, rest := path[0], path[1:]
	next := slices.Clone(tree)
	if len(rest) == 0 {
		next[head] = update(next[head])
		return next
	}
	node := next[head].Clone()
	node.Children = setNodeAt(node.Children, rest, update)
	next[head] = node
	return next
}

// ModifyChildren rewrites one sibling group in place of the tree: the root
// forest for the empty parent path, otherwise the children of the node at
// parentPath. transform receives a fresh copy of the group.
func ModifyChildren(tree []*models.Stage, parentPath Path, transform func([]*models.Stage) []*models.Stage) []*models.Stage {
	if len(parentPath) == 0 {
		return transform(slices.Clone(tree))
	}
	return SetNodeAt(tree, parentPath, func(s *models.Stage) *models.Stage {
		n := s.Clone()
		n.Children = transform(slices.Clone(s.Children))
		return n
	})
}

// LeafRef pairs a leaf stage with its path.
type LeafRef struct {
	Stage *models.Stage
	Path  Path
}

// Leaves returns every leaf in strict left-to-right depth-first document
// order. This order is authoritative for auto-advance.
func Leaves(tree []*models.Stage) []LeafRef {
	var out []LeafRef
	var walk func(nodes []*models.Stage, prefix Path)
	walk = func(nodes []*models.Stage, prefix Path) {
		for i, n := range nodes {
			p := append(prefix.Clone(), i)
			if n.IsLeaf() {
				out = append(out, LeafRef{Stage: n, Path: p})
				continue
			}
			walk(n.Children, p)
		}
	}
	walk(tree, nil)
	return out
}

// Walk visits every node depth-first, parents before children.
func Walk(tree []*models.Stage, visit func(*models.Stage, Path)) {
	var walk func(nodes []*models.Stage, prefix Path)
	walk = func(nodes []*models.Stage, prefix Path) {
		for i, n := range nodes {
			p := append(prefix.Clone(), i)
			visit(n, p)
			walk(n.Children, p)
		}
	}
	walk(tree, nil)
}

// HasInProgress reports whether any node in the tree is actively worked.
func HasInProgress(tree []*models.Stage) bool {
	for _, n := range tree {
		if n.Status == models.StageInProgress || HasInProgress(n.Children) {
			return true
		}
	}
	return false
}

// IsComplete reports whether a stage counts as finished for gating: done or
// skipped when set explicitly, or, for a container, every descendant leaf
// done or skipped.
func IsComplete(node *models.Stage) bool {
	if node == nil {
		return false
	}
	if node.Status == models.StageDone || node.Status == models.StageSkipped {
		return true
	}
	if node.IsLeaf() {
		return false
	}
	for _, leaf := range Leaves(node.Children) {
		if leaf.Stage.Status != models.StageDone && leaf.Stage.Status != models.StageSkipped {
			return false
		}
	}
	return true
}
