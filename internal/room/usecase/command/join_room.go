package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/gift-rooms/internal/room/domain"
)

// DefaultMaxParticipants is the room capacity used when none is configured
const DefaultMaxParticipants = 20

// JoinRoomCommand represents the command to add a participant to a room
type JoinRoomCommand struct {
	RoomCode    string
	Participant ParticipantDetails
}

// JoinRoomHandler handles join room command
type JoinRoomHandler struct {
	users           domain.UserRepository
	rooms           domain.RoomRepository
	maxParticipants int
}

// NewJoinRoomHandler creates a new join room handler. A non-positive
// maxParticipants falls back to DefaultMaxParticipants.
func NewJoinRoomHandler(users domain.UserRepository, rooms domain.RoomRepository, maxParticipants int) *JoinRoomHandler {
	if maxParticipants <= 0 {
		maxParticipants = DefaultMaxParticipants
	}
	return &JoinRoomHandler{users: users, rooms: rooms, maxParticipants: maxParticipants}
}

// Handle executes the join room command and returns the created participant
func (h *JoinRoomHandler) Handle(ctx context.Context, cmd JoinRoomCommand) (*domain.User, error) {
	// Validation
	if strings.TrimSpace(cmd.RoomCode) == "" {
		return nil, fmt.Errorf("%w: room code is required", ErrInvalidCommand)
	}
	if err := cmd.Participant.validate(); err != nil {
		return nil, err
	}

	room, err := h.rooms.FindByInvitationCode(ctx, cmd.RoomCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find room: %w", err)
	}
	if room.IsClosed() {
		return nil, domain.ErrRoomClosed
	}

	// The count and the insert are not atomic; two concurrent joins may
	// overshoot the limit by one.
	count, err := h.users.CountByRoomID(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count participants: %w", err)
	}
	if count >= int64(h.maxParticipants) {
		return nil, domain.ErrRoomFull
	}

	user := cmd.Participant.newUser(room.ID)
	if err := h.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to join room: %w", err)
	}

	return user, nil
}
