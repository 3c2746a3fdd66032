package project

import (
	"context"
	"errors"
	"testing"

	"github.com/tranvq/pipeboard/internal/events"
	"github.com/tranvq/pipeboard/internal/models"
	"github.com/tranvq/pipeboard/internal/storage"
)

func newTestRepo(t *testing.T) (*Repository, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	return NewRepository(store, events.NewBus()), store
}

func TestCreateProjectDefaults(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	p, err := repo.Create(ctx, CreateRequest{Name: "  Plant retrofit  ", Participants: []int{3, 7}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Name != "Plant retrofit" {
		t.Fatalf("name = %q", p.Name)
	}
	if p.ID == "" {
		t.Fatal("id not generated")
	}
	if len(p.Pipeline) != 16 {
		t.Fatalf("pipeline len = %d, want 16", len(p.Pipeline))
	}
	if p.Pipeline[0].Status != models.StageInProgress {
		t.Fatal("first stage must start active")
	}
	if p.StageIndex == nil || *p.StageIndex != 0 {
		t.Fatal("legacy stageIndex must be written as zero")
	}

	list, err := repo.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("List = %d items, err %v", len(list), err)
	}
}

func TestCreateProjectBlankName(t *testing.T) {
	repo, _ := newTestRepo(t)
	if _, err := repo.Create(context.Background(), CreateRequest{Name: " "}); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestUpdateUnknownProject(t *testing.T) {
	repo, _ := newTestRepo(t)
	name := "x"
	if _, err := repo.Update(context.Background(), "missing", UpdateRequest{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateShallowMerge(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	p, _ := repo.Create(ctx, CreateRequest{Name: "A", Description: "old"})

	desc := "new"
	updated, err := repo.Update(ctx, p.ID, UpdateRequest{Description: &desc})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Description != "new" || updated.Name != "A" {
		t.Fatalf("merge wrong: %+v", updated)
	}
}

func TestGetUnknownReturnsNil(t *testing.T) {
	repo, _ := newTestRepo(t)
	p, err := repo.Get(context.Background(), "missing")
	if err != nil || p != nil {
		t.Fatalf("Get = %v, %v; want nil, nil", p, err)
	}
}

func TestGetMigratesLegacyRecordOnce(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()

	idx := 3
	legacy := []*models.Project{{
		ID:         "p1",
		Name:       "Legacy",
		StageIndex: &idx,
		StageMeta: map[string]models.StageMeta{
			"start":  {StartAt: "2025-01-02T08:00", EndAt: "2025-01-10T17:00"},
			"design": {Note: "awaiting drawings"},
		},
	}}
	if err := storage.SetJSON(ctx, store, storage.ProjectsKey, legacy); err != nil {
		t.Fatalf("seed: %v", err)
	}

	p, err := repo.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !p.Migrated() {
		t.Fatal("record not migrated")
	}
	for i, want := range []models.StageStatus{models.StageDone, models.StageDone, models.StageDone, models.StageInProgress, models.StageUnset} {
		if p.Pipeline[i].Status != want {
			t.Fatalf("stage %d = %q, want %q", i, p.Pipeline[i].Status, want)
		}
	}
	if p.Pipeline[0].StartAt != "2025-01-02T08:00" || p.Pipeline[0].EndAt != "2025-01-10T17:00" {
		t.Fatalf("stageMeta times lost: %+v", p.Pipeline[0])
	}
	var design *models.Stage
	for _, s := range p.Pipeline {
		if s.ID == "design" {
			design = s
		}
	}
	if design == nil || design.Note != "awaiting drawings" {
		t.Fatal("stageMeta note lost")
	}

	// migration is persisted: a second load sees the pipeline already there
	again, err := repo.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if !again.Migrated() {
		t.Fatal("persisted record not migrated")
	}
	// idempotent: migrating a migrated record changes nothing
	if got := MigrateLegacy(again); got != again {
		t.Fatal("MigrateLegacy must return migrated records unchanged")
	}
}

func TestMigrateLegacyClampsStageIndex(t *testing.T) {
	big := 42
	p := MigrateLegacy(&models.Project{ID: "p", Name: "n", StageIndex: &big})
	// clamped to 6: stages 0-5 done, stage 6 active
	for i := 0; i < 6; i++ {
		if p.Pipeline[i].Status != models.StageDone {
			t.Fatalf("stage %d = %q", i, p.Pipeline[i].Status)
		}
	}
	if p.Pipeline[6].Status != models.StageInProgress {
		t.Fatalf("stage 6 = %q", p.Pipeline[6].Status)
	}

	neg := -5
	p = MigrateLegacy(&models.Project{ID: "p", Name: "n", StageIndex: &neg})
	if p.Pipeline[0].Status != models.StageInProgress {
		t.Fatal("negative index must clamp to 0")
	}
}

func TestEnsureSingleInProgress(t *testing.T) {
	idx := 0
	p := &models.Project{ID: "p", Name: "n", StageIndex: &idx}
	migrated := MigrateLegacy(p)
	active := 0
	for _, s := range migrated.Pipeline {
		if s.Status == models.StageInProgress {
			active++
		}
	}
	if active != 1 {
		t.Fatalf("active stages = %d, want 1", active)
	}
}

func TestRemoveClearsDependentKeys(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()
	p, _ := repo.Create(ctx, CreateRequest{Name: "Doomed"})

	boardKey := storage.BoardKey(p.ID)
	mustSet := func(key string) {
		t.Helper()
		if err := store.Set(ctx, key, []byte(`[]`)); err != nil {
			t.Fatalf("seed %s: %v", key, err)
		}
	}
	mustSet(boardKey)
	mustSet(storage.SideChannelKey(boardKey, "t1", "comments"))
	mustSet(storage.SideChannelKey(boardKey, "t1", "activity"))
	mustSet(storage.ChatKey(p.ID))

	if err := repo.Remove(ctx, p.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	for _, key := range []string{
		boardKey,
		storage.SideChannelKey(boardKey, "t1", "comments"),
		storage.SideChannelKey(boardKey, "t1", "activity"),
		storage.ChatKey(p.ID),
	} {
		if _, ok, _ := store.Get(ctx, key); ok {
			t.Fatalf("key %s survived removal", key)
		}
	}

	list, _ := repo.List(ctx)
	if len(list) != 0 {
		t.Fatal("project record survived removal")
	}
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	repo, _ := newTestRepo(t)
	if err := repo.Remove(context.Background(), "missing"); err != nil {
		t.Fatalf("Remove unknown: %v", err)
	}
}

func TestViewAndSortPreferences(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	if got := repo.ViewPreference(ctx); got != models.ViewList {
		t.Fatalf("default view = %q", got)
	}
	if got := repo.SortPreference(ctx); got != models.DefaultSort {
		t.Fatalf("default sort = %q", got)
	}

	if err := repo.SetViewPreference(ctx, models.ViewCards); err != nil {
		t.Fatalf("SetViewPreference: %v", err)
	}
	if err := repo.SetSortPreference(ctx, "progress-desc"); err != nil {
		t.Fatalf("SetSortPreference: %v", err)
	}
	if got := repo.ViewPreference(ctx); got != models.ViewCards {
		t.Fatalf("view = %q", got)
	}
	if got := repo.SortPreference(ctx); got != "progress-desc" {
		t.Fatalf("sort = %q", got)
	}
}
