// Package app wires the engines, stores and clients into one container.
package app

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/tranvq/pipeboard/internal/board"
	"github.com/tranvq/pipeboard/internal/config"
	"github.com/tranvq/pipeboard/internal/directory"
	"github.com/tranvq/pipeboard/internal/events"
	"github.com/tranvq/pipeboard/internal/models"
	"github.com/tranvq/pipeboard/internal/project"
	"github.com/tranvq/pipeboard/internal/sidechannel"
	"github.com/tranvq/pipeboard/internal/storage"
)

// App holds all application services and provides dependency injection.
// Board services and side-channel stores are scoped to a project, so they
// are created on demand rather than held here.
type App struct {
	store storage.Store

	// Event system for change notifications
	Bus *events.Bus

	Projects  *project.Repository
	Directory *directory.Client
	Config    *config.Config
}

// New creates the application container on top of an opened store.
func New(store storage.Store, cfg *config.Config) *App {
	bus := events.NewBus()
	a := &App{
		store:     store,
		Bus:       bus,
		Projects:  project.NewRepository(store, bus),
		Directory: directory.NewClient(cfg.API.BaseURL, cfg.API.Token),
		Config:    cfg,
	}
	bus.Subscribe(logEvent)
	bus.Subscribe(a.recordTaskActivity)
	return a
}

// Store returns the underlying key-value store for direct access.
func (a *App) Store() storage.Store {
	return a.store
}

// BoardFor returns the board service for a project's board. An empty
// projectID addresses the standalone board kept under its own key.
func (a *App) BoardFor(projectID string) board.Service {
	key := storage.DefaultBoardKey
	if projectID != "" {
		key = storage.BoardKey(projectID)
	}
	return board.NewService(a.store, key, projectID, a.Bus)
}

// SideChannelsFor returns the side-channel store for a project's tasks.
func (a *App) SideChannelsFor(projectID string) *sidechannel.Store {
	key := storage.DefaultBoardKey
	if projectID != "" {
		key = storage.BoardKey(projectID)
	}
	return sidechannel.NewStore(a.store, key)
}

// ChatFor returns the chat log for a project.
func (a *App) ChatFor(projectID string) *sidechannel.Chat {
	return sidechannel.NewChat(a.store, projectID)
}

// Close releases the underlying store.
func (a *App) Close() error {
	return a.store.Close()
}

// recordTaskActivity mirrors board task mutations into the task's activity
// side channel. A failed append only costs the log entry, so it is logged
// and dropped.
func (a *App) recordTaskActivity(e events.Event) {
	if e.Type != events.EventBoardChanged || e.TaskID == "" {
		return
	}
	entryType := models.ActivityEdit
	if strings.HasPrefix(e.Detail, "task moved") {
		entryType = models.ActivityMove
	}
	actor := models.Actor{Name: currentUser()}
	store := a.SideChannelsFor(e.ProjectID)
	if _, err := store.LogActivity(context.Background(), e.TaskID, actor, entryType, e.Detail); err != nil {
		slog.Error("failed to record task activity", "task", e.TaskID, "error", err)
	}
}

func currentUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "me"
}

// logEvent records every published event in the application log.
func logEvent(e events.Event) {
	slog.Debug("event",
		"type", e.Type,
		"project", e.ProjectID,
		"task", e.TaskID,
		"stage", e.StageID,
		"seq", e.SequenceID,
		"detail", e.Detail,
	)
}
