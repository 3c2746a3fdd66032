// Package sidechannel stores the small per-task append-only record sets
// (activity, files, relations, comments) and the per-project chat. Records
// are kept newest first; there are no cross-record invariants beyond id
// uniqueness.
package sidechannel

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tranvq/pipeboard/internal/models"
	"github.com/tranvq/pipeboard/internal/storage"
)

// Channel names under a task's storage key.
const (
	ChannelActivity  = "activity"
	ChannelFiles     = "files"
	ChannelRelations = "relations"
	ChannelComments  = "comments"
)

// timeNow is swapped out by tests for deterministic stamps.
var timeNow = time.Now

// Store reads and appends side-channel records for tasks on one board.
type Store struct {
	store    storage.Store
	boardKey string
}

// NewStore creates a side-channel store scoped to boardKey.
func NewStore(store storage.Store, boardKey string) *Store {
	return &Store{store: store, boardKey: boardKey}
}

func (s *Store) key(taskID, channel string) string {
	return storage.SideChannelKey(s.boardKey, taskID, channel)
}

// prepend loads the list at key, inserts record at the front and persists.
func prepend[T any](ctx context.Context, st storage.Store, key string, record T) error {
	var list []T
	if _, err := storage.GetJSON(ctx, st, key, &list); err != nil {
		return err
	}
	list = append([]T{record}, list...)
	return storage.SetJSON(ctx, st, key, list)
}

func load[T any](ctx context.Context, st storage.Store, key string) ([]T, error) {
	var list []T
	if _, err := storage.GetJSON(ctx, st, key, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Activity returns a task's activity log, newest first.
func (s *Store) Activity(ctx context.Context, taskID string) ([]models.ActivityEntry, error) {
	return load[models.ActivityEntry](ctx, s.store, s.key(taskID, ChannelActivity))
}

// LogActivity prepends an activity entry with a generated id and timestamp.
func (s *Store) LogActivity(ctx context.Context, taskID string, actor models.Actor, entryType, detail string) (models.ActivityEntry, error) {
	entry := models.ActivityEntry{
		ID:     uuid.NewString(),
		At:     timeNow().Format(time.RFC3339),
		Actor:  actor,
		Type:   entryType,
		Detail: detail,
	}
	return entry, prepend(ctx, s.store, s.key(taskID, ChannelActivity), entry)
}

// Files returns a task's file metadata records, newest first.
func (s *Store) Files(ctx context.Context, taskID string) ([]models.FileMeta, error) {
	return load[models.FileMeta](ctx, s.store, s.key(taskID, ChannelFiles))
}

// AddFile records file metadata. Only the name and size are kept; upload
// persistence is out of scope.
func (s *Store) AddFile(ctx context.Context, taskID, name string, size int64, by string) (models.FileMeta, error) {
	meta := models.FileMeta{
		ID:      uuid.NewString(),
		Name:    name,
		Size:    size,
		AddedAt: timeNow().Format(time.RFC3339),
		By:      by,
	}
	return meta, prepend(ctx, s.store, s.key(taskID, ChannelFiles), meta)
}

// Relations returns a task's relation links, newest first.
func (s *Store) Relations(ctx context.Context, taskID string) ([]models.Relation, error) {
	return load[models.Relation](ctx, s.store, s.key(taskID, ChannelRelations))
}

// AddRelation links the task to targetID with the given kind.
func (s *Store) AddRelation(ctx context.Context, taskID, kind, targetID, note string) (models.Relation, error) {
	rel := models.Relation{
		ID:       uuid.NewString(),
		Kind:     kind,
		TargetID: targetID,
		Note:     note,
	}
	return rel, prepend(ctx, s.store, s.key(taskID, ChannelRelations), rel)
}

// Comments returns a task's comments, newest first.
func (s *Store) Comments(ctx context.Context, taskID string) ([]models.Comment, error) {
	return load[models.Comment](ctx, s.store, s.key(taskID, ChannelComments))
}

// AddComment prepends a comment. Blank text is rejected as a no-op.
func (s *Store) AddComment(ctx context.Context, taskID, by, text string) (models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Comment{}, ErrEmptyText
	}
	c := models.Comment{
		ID:   uuid.NewString(),
		At:   timeNow().Format(time.RFC3339),
		By:   by,
		Text: text,
	}
	return c, prepend(ctx, s.store, s.key(taskID, ChannelComments), c)
}

// Clear removes every side channel belonging to taskID.
func (s *Store) Clear(ctx context.Context, taskID string) error {
	for _, ch := range []string{ChannelActivity, ChannelFiles, ChannelRelations, ChannelComments} {
		if err := s.store.Delete(ctx, s.key(taskID, ch)); err != nil {
			return err
		}
	}
	return nil
}

// Chat reads and appends project chat messages, independent of any task.
type Chat struct {
	store     storage.Store
	projectID string
}

// NewChat creates a chat log for projectID.
func NewChat(store storage.Store, projectID string) *Chat {
	return &Chat{store: store, projectID: projectID}
}

// Messages returns the chat log, newest first.
func (c *Chat) Messages(ctx context.Context) ([]models.Message, error) {
	return load[models.Message](ctx, c.store, storage.ChatKey(c.projectID))
}

// Post prepends a chat message. Blank text is rejected as a no-op.
func (c *Chat) Post(ctx context.Context, by, text string) (models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Message{}, ErrEmptyText
	}
	msg := models.Message{
		ID:   uuid.NewString(),
		At:   timeNow().Format(time.RFC3339),
		By:   by,
		Text: text,
	}
	return msg, prepend(ctx, c.store, storage.ChatKey(c.projectID), msg)
}
