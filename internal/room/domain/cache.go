package domain

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by a ParticipantCache that holds no entry for a room
var ErrCacheMiss = errors.New("cache miss")

// ParticipantCache caches the participant list of a room.
//
// Entries are versioned per room. Get reports the version it read under,
// even on a miss, and Set only stores under the version passed in. After
// Invalidate bumps the version, a Set carrying an older version is never
// visible to readers.
type ParticipantCache interface {
	Get(ctx context.Context, roomID uint) ([]User, int64, error)
	Set(ctx context.Context, roomID uint, version int64, users []User) error
	Invalidate(ctx context.Context, roomID uint) error
}
