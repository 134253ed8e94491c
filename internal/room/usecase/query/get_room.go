package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/gift-rooms/internal/room/domain"
)

// GetRoomQuery represents the query to get the caller's room
type GetRoomQuery struct {
	UserCode string
}

// GetRoomHandler handles get room query
type GetRoomHandler struct {
	rooms domain.RoomRepository
}

// NewGetRoomHandler creates a new get room handler
func NewGetRoomHandler(rooms domain.RoomRepository) *GetRoomHandler {
	return &GetRoomHandler{rooms: rooms}
}

// Handle executes the get room query
func (h *GetRoomHandler) Handle(ctx context.Context, query GetRoomQuery) (*domain.Room, error) {
	if strings.TrimSpace(query.UserCode) == "" {
		return nil, fmt.Errorf("%w: user code is required", ErrInvalidQuery)
	}

	room, err := h.rooms.FindByUserCode(ctx, query.UserCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find room: %w", err)
	}

	return room, nil
}
