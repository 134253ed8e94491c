package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tair/gift-rooms/internal/room/domain"
)

// CreateRoomCommand represents the command to create a room with its admin
type CreateRoomCommand struct {
	Name              string
	Description       string
	GiftExchangeDate  *time.Time
	GiftMaximumBudget uint
	Admin             ParticipantDetails
}

// CreateRoomHandler handles room creation command
type CreateRoomHandler struct {
	rooms domain.RoomRepository
}

// NewCreateRoomHandler creates a new create room handler
func NewCreateRoomHandler(rooms domain.RoomRepository) *CreateRoomHandler {
	return &CreateRoomHandler{rooms: rooms}
}

// Handle executes the create room command and returns the room and its admin
func (h *CreateRoomHandler) Handle(ctx context.Context, cmd CreateRoomCommand) (*domain.Room, *domain.User, error) {
	// Validation
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, nil, fmt.Errorf("%w: room name is required", ErrInvalidCommand)
	}
	if err := cmd.Admin.validate(); err != nil {
		return nil, nil, err
	}

	room := &domain.Room{
		Name:              strings.TrimSpace(cmd.Name),
		Description:       strings.TrimSpace(cmd.Description),
		InvitationCode:    newCode(),
		GiftExchangeDate:  cmd.GiftExchangeDate,
		GiftMaximumBudget: cmd.GiftMaximumBudget,
	}
	admin := cmd.Admin.newUser(0)
	admin.IsAdmin = true

	if err := h.rooms.Create(ctx, room, admin); err != nil {
		return nil, nil, fmt.Errorf("failed to create room: %w", err)
	}

	return room, admin, nil
}
