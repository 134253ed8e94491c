package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tair/gift-rooms/internal/room/domain"
)

// GetUserQuery represents the query to get one participant of the caller's room
type GetUserQuery struct {
	UserCode string
	ID       uint
}

// GetUserHandler handles get user query
type GetUserHandler struct {
	users domain.UserRepository
}

// NewGetUserHandler creates a new get user handler
func NewGetUserHandler(users domain.UserRepository) *GetUserHandler {
	return &GetUserHandler{users: users}
}

// Handle executes the get user query. It reads from the repository, never
// from the participants cache, and returns the viewer along with the match
// so callers can apply room-level visibility rules.
func (h *GetUserHandler) Handle(ctx context.Context, query GetUserQuery) (*domain.User, *domain.User, error) {
	if strings.TrimSpace(query.UserCode) == "" {
		return nil, nil, fmt.Errorf("%w: user code is required", ErrInvalidQuery)
	}
	if query.ID == 0 {
		return nil, nil, fmt.Errorf("%w: user id is required", ErrInvalidQuery)
	}

	viewer, err := h.users.FindByCode(ctx, query.UserCode)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	user, err := h.users.FindByID(ctx, query.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.RoomID != viewer.RoomID {
		return nil, nil, domain.ErrUserNotFound
	}

	return user, viewer, nil
}
