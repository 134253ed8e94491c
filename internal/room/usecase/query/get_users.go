package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tair/gift-rooms/internal/room/domain"
	"github.com/tair/gift-rooms/pkg/logger"
)

// ErrInvalidQuery is returned when a query is missing required fields
var ErrInvalidQuery = errors.New("invalid query")

// GetUsersQuery represents the query to list the participants of the caller's room
type GetUsersQuery struct {
	UserCode string
}

// RoomParticipants is the participant list as seen by one of its members
type RoomParticipants struct {
	Viewer domain.User
	Users  []domain.User
}

// GetUsersHandler handles get users query
type GetUsersHandler struct {
	users domain.UserRepository
	cache domain.ParticipantCache
}

// NewGetUsersHandler creates a new get users handler. cache may be nil.
func NewGetUsersHandler(users domain.UserRepository, cache domain.ParticipantCache) *GetUsersHandler {
	return &GetUsersHandler{users: users, cache: cache}
}

// Handle executes the get users query
func (h *GetUsersHandler) Handle(ctx context.Context, query GetUsersQuery) (*RoomParticipants, error) {
	if strings.TrimSpace(query.UserCode) == "" {
		return nil, fmt.Errorf("%w: user code is required", ErrInvalidQuery)
	}

	viewer, err := h.users.FindByCode(ctx, query.UserCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	users, err := h.participants(ctx, viewer.RoomID)
	if err != nil {
		return nil, err
	}

	return &RoomParticipants{Viewer: *viewer, Users: users}, nil
}

// participants reads through the cache. Cache failures are logged and the
// database is used instead.
func (h *GetUsersHandler) participants(ctx context.Context, roomID uint) ([]domain.User, error) {
	if h.cache == nil {
		return h.load(ctx, roomID)
	}

	users, version, err := h.cache.Get(ctx, roomID)
	if err == nil {
		return users, nil
	}
	cacheable := errors.Is(err, domain.ErrCacheMiss)
	if !cacheable {
		logger.Warn(ctx).Err(err).Uint("room_id", roomID).Msg("Participants cache read failed")
	}

	users, err = h.load(ctx, roomID)
	if err != nil {
		return nil, err
	}

	// The version comes from the read before the load, so a removal that
	// lands in between leaves this write unreachable.
	if cacheable {
		if err := h.cache.Set(ctx, roomID, version, users); err != nil {
			logger.Warn(ctx).Err(err).Uint("room_id", roomID).Msg("Participants cache write failed")
		}
	}
	return users, nil
}

func (h *GetUsersHandler) load(ctx context.Context, roomID uint) ([]domain.User, error) {
	users, err := h.users.FindByRoomID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return users, nil
}
