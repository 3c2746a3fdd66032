// Package storage provides the key-value persistence adapter: JSON blobs
// addressed by string keys. It is the sole mechanism by which project,
// board and side-channel state survives across sessions.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// ErrClosed is returned when an operation is attempted on a closed store.
var ErrClosed = errors.New("storage: store is closed")

// Store is the persistence interface injected into the engines. Values are
// opaque JSON blobs; the engines own serialization. Writes replace the
// whole value for a key atomically.
type Store interface {
	// Get returns the raw value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists all stored keys beginning with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)

	Close() error
}

// GetJSON loads and unmarshals the value at key into out. It returns false
// when the key is absent or the stored value fails to parse; a parse
// failure is logged and treated as absence so callers can fall back to a
// default state.
func GetJSON(ctx context.Context, s Store, key string, out any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		slog.Error("discarding unparseable stored value", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// SetJSON marshals value and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}
