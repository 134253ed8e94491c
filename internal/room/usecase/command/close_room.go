package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tair/gift-rooms/internal/room/domain"
)

// CloseRoomCommand represents the command to close a room (admin only)
type CloseRoomCommand struct {
	AdminUserCode string
}

// CloseRoomHandler handles room closing command
type CloseRoomHandler struct {
	users domain.UserRepository
	rooms domain.RoomRepository
}

// NewCloseRoomHandler creates a new close room handler
func NewCloseRoomHandler(users domain.UserRepository, rooms domain.RoomRepository) *CloseRoomHandler {
	return &CloseRoomHandler{users: users, rooms: rooms}
}

// Handle executes the close room command
func (h *CloseRoomHandler) Handle(ctx context.Context, cmd CloseRoomCommand) (*domain.Room, error) {
	if strings.TrimSpace(cmd.AdminUserCode) == "" {
		return nil, fmt.Errorf("%w: admin user code is required", ErrInvalidCommand)
	}

	admin, err := h.users.FindByCode(ctx, cmd.AdminUserCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find admin user: %w", err)
	}
	if !admin.IsAdmin {
		return nil, domain.ErrNotAdmin
	}

	room, err := h.rooms.FindByID(ctx, admin.RoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to find room: %w", err)
	}
	if err := room.Close(time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := h.rooms.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to close room: %w", err)
	}

	return room, nil
}
