package models

import "strings"

// CustomStagePrefix marks user-added stages. Only stages carrying this
// prefix may be removed from a pipeline; built-in stages are permanent.
const CustomStagePrefix = "custom-"

// Stage is a node in a project's pipeline tree. A stage with children is a
// container whose effective status is derived from its descendants; a stage
// without children is a leaf and is the only kind of node that can be
// actively worked (in_progress) or completed (done).
type Stage struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Status   StageStatus `json:"status,omitempty"`
	Children []*Stage    `json:"children,omitempty"`
	Owners   []int       `json:"owners,omitempty"`
	StartAt  string      `json:"startAt,omitempty"`
	EndAt    string      `json:"endAt,omitempty"`
	Note     string      `json:"note,omitempty"`
}

// IsLeaf reports whether the stage has no children.
func (s *Stage) IsLeaf() bool {
	return len(s.Children) == 0
}

// IsCustom reports whether the stage was added by a user and may be removed.
func (s *Stage) IsCustom() bool {
	return strings.HasPrefix(s.ID, CustomStagePrefix)
}

// Clone returns a shallow copy of the stage. The children slice header is
// copied but the child nodes themselves are shared; tree operations that
// need deeper copies clone along the path they touch.
func (s *Stage) Clone() *Stage {
	c := *s
	if s.Children != nil {
		c.Children = append([]*Stage(nil), s.Children...)
	}
	if s.Owners != nil {
		c.Owners = append([]int(nil), s.Owners...)
	}
	return &c
}

// StageMeta is the legacy per-stage metadata blob keyed by stage id on
// pre-pipeline project records. Kept only as migration input.
type StageMeta struct {
	StartAt string `json:"startAt,omitempty"`
	EndAt   string `json:"endAt,omitempty"`
	Note    string `json:"note,omitempty"`
}
