// Package project implements the project repository: CRUD over the stored
// project list plus the one-time legacy-to-pipeline migration.
package project

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/tranvq/pipeboard/internal/events"
	"github.com/tranvq/pipeboard/internal/models"
	"github.com/tranvq/pipeboard/internal/pipeline"
	"github.com/tranvq/pipeboard/internal/storage"
)

// Repository owns the projects-v1 key and everything hanging off a project
// (board, side channels, chat) for deletion purposes.
type Repository struct {
	store     storage.Store
	publisher events.Publisher
}

// NewRepository creates a project repository on top of the given store.
func NewRepository(store storage.Store, publisher events.Publisher) *Repository {
	return &Repository{store: store, publisher: publisher}
}

// CreateRequest carries the user-supplied fields for a new project.
type CreateRequest struct {
	Name         string
	Description  string
	Participants []int
	Cover        string
}

// UpdateRequest is a shallow field patch; nil pointers leave stored values
// untouched.
type UpdateRequest struct {
	Name         *string
	Description  *string
	Participants *[]int
	Cover        *string
	Pipeline     *[]*models.Stage
}

// List returns all stored projects. A missing or unparseable key reads as
// an empty list.
func (r *Repository) List(ctx context.Context) ([]*models.Project, error) {
	var list []*models.Project
	if _, err := storage.GetJSON(ctx, r.store, storage.ProjectsKey, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *Repository) save(ctx context.Context, list []*models.Project) error {
	return storage.SetJSON(ctx, r.store, storage.ProjectsKey, list)
}

// Create stores a new project with a generated id and the default pipeline
// (first stage active). The legacy stageIndex/stageMeta fields are written
// with their zero values so records stay loadable by older builds.
func (r *Repository) Create(ctx context.Context, req CreateRequest) (*models.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	zero := 0
	p := &models.Project{
		ID:           uuid.NewString(),
		Name:         name,
		Description:  strings.TrimSpace(req.Description),
		Participants: req.Participants,
		Cover:        req.Cover,
		Pipeline:     pipeline.Default(),
		StageIndex:   &zero,
		StageMeta:    map[string]models.StageMeta{},
	}
	if p.Participants == nil {
		p.Participants = models.Participants{}
	}

	if err := r.save(ctx, append(list, p)); err != nil {
		return nil, err
	}
	events.Emit(r.publisher, events.Event{
		Type:      events.EventProjectChanged,
		ProjectID: p.ID,
		Detail:    "project created: " + name,
	})
	return p, nil
}

// Update shallow-merges the patch into the stored record. Returns nil and
// ErrNotFound when the id is unknown.
func (r *Repository) Update(ctx context.Context, id string, req UpdateRequest) (*models.Project, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(list, func(p *models.Project) bool { return p.ID == id })
	if idx == -1 {
		return nil, ErrNotFound
	}

	p := *list[idx]
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Participants != nil {
		p.Participants = *req.Participants
	}
	if req.Cover != nil {
		p.Cover = strings.TrimSpace(*req.Cover)
	}
	if req.Pipeline != nil {
		p.Pipeline = *req.Pipeline
	}
	list[idx] = &p

	if err := r.save(ctx, list); err != nil {
		return nil, err
	}
	events.Emit(r.publisher, events.Event{
		Type:      events.EventProjectChanged,
		ProjectID: id,
		Detail:    "project updated",
	})
	return &p, nil
}

// SetPipeline persists an engine-produced tree for the project.
func (r *Repository) SetPipeline(ctx context.Context, id string, tree []*models.Stage) (*models.Project, error) {
	return r.Update(ctx, id, UpdateRequest{Pipeline: &tree})
}

// Remove deletes the project record along with its board, every task side
// channel under the board key, and the project chat.
func (r *Repository) Remove(ctx context.Context, id string) error {
	list, err := r.List(ctx)
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(list, func(p *models.Project) bool { return p.ID == id })
	if idx == -1 {
		return nil
	}
	if err := r.save(ctx, slices.Delete(list, idx, idx+1)); err != nil {
		return err
	}

	boardKey := storage.BoardKey(id)
	keys, err := r.store.Keys(ctx, storage.TaskKeyPrefix(boardKey))
	if err != nil {
		return fmt.Errorf("failed to list side-channel keys: %w", err)
	}
	keys = append(keys, boardKey, storage.ChatKey(id))
	for _, k := range keys {
		if err := r.store.Delete(ctx, k); err != nil {
			return fmt.Errorf("failed to delete %q: %w", k, err)
		}
	}

	events.Emit(r.publisher, events.Event{
		Type:      events.EventProjectChanged,
		ProjectID: id,
		Detail:    "project removed",
	})
	return nil
}

// Get loads one project by id, returning nil when unknown. Records that
// predate the pipeline model are migrated and persisted back on first
// load; subsequent loads see the pipeline already present.
func (r *Repository) Get(ctx context.Context, id string) (*models.Project, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(list, func(p *models.Project) bool { return p.ID == id })
	if idx == -1 {
		return nil, nil
	}

	p := list[idx]
	if p.Migrated() {
		return p, nil
	}

	migrated := MigrateLegacy(p)
	list[idx] = migrated
	if err := r.save(ctx, list); err != nil {
		return nil, err
	}
	return migrated, nil
}

// ViewPreference returns the projects list view mode, defaulting to list.
func (r *Repository) ViewPreference(ctx context.Context) string {
	return r.pref(ctx, storage.ViewPrefKey, models.ViewList)
}

// SetViewPreference stores the projects list view mode.
func (r *Repository) SetViewPreference(ctx context.Context, view string) error {
	return r.store.Set(ctx, storage.ViewPrefKey, []byte(view))
}

// SortPreference returns the projects list ordering, defaulting to name-asc.
func (r *Repository) SortPreference(ctx context.Context) string {
	return r.pref(ctx, storage.SortPrefKey, models.DefaultSort)
}

// SetSortPreference stores the projects list ordering.
func (r *Repository) SetSortPreference(ctx context.Context, sort string) error {
	return r.store.Set(ctx, storage.SortPrefKey, []byte(sort))
}

func (r *Repository) pref(ctx context.Context, key, fallback string) string {
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil || !ok || len(raw) == 0 {
		return fallback
	}
	return string(raw)
}
