package sidechannel

import "errors"

// ErrEmptyText rejects blank comment or chat bodies.
var ErrEmptyText = errors.New("text cannot be empty")
