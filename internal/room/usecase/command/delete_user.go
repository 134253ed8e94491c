package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tair/gift-rooms/internal/room/domain"
)

// ErrorCode identifies why a user deletion was rejected
type ErrorCode string

// Deletion error codes, in the order the checks run
const (
	ErrorCodeUserNotFound   ErrorCode = "UserNotFound"
	ErrorCodeAdminNotFound  ErrorCode = "AdminNotFound"
	ErrorCodeNotAdmin       ErrorCode = "NotAdmin"
	ErrorCodeDifferentRooms ErrorCode = "DifferentRooms"
	ErrorCodeSameUser       ErrorCode = "SameUser"
	ErrorCodeRoomNotFound   ErrorCode = "RoomNotFound"
	ErrorCodeRoomClosed     ErrorCode = "RoomClosed"
	ErrorCodeDeleteFailed   ErrorCode = "DeleteFailed"
)

// DeleteUserCommand represents the command to remove a participant from a room
type DeleteUserCommand struct {
	UserID        uint
	AdminUserCode string
}

// DeleteUserResult is the outcome of a delete user command
type DeleteUserResult struct {
	Success      bool      `json:"success"`
	ErrorCode    ErrorCode `json:"errorCode,omitempty"`
	ErrorMessage string    `json:"errorMessage,omitempty"`

	// Set on success for follow-up work such as cache invalidation.
	RoomID  uint `json:"-"`
	AdminID uint `json:"-"`
}

func deleteRejected(code ErrorCode, message string) DeleteUserResult {
	return DeleteUserResult{ErrorCode: code, ErrorMessage: message}
}

// DeleteUserHandler handles participant deletion command
type DeleteUserHandler struct {
	users domain.UserRepository
	rooms domain.RoomRepository
}

// NewDeleteUserHandler creates a new delete user handler
func NewDeleteUserHandler(users domain.UserRepository, rooms domain.RoomRepository) *DeleteUserHandler {
	return &DeleteUserHandler{users: users, rooms: rooms}
}

// Handle executes the delete user command.
//
// Rejections are reported in the result. The returned error is non-nil only
// for invalid commands, cancelled contexts and unexpected storage failures
// during lookups.
func (h *DeleteUserHandler) Handle(ctx context.Context, cmd DeleteUserCommand) (DeleteUserResult, error) {
	// Validation
	if cmd.UserID == 0 {
		return DeleteUserResult{}, fmt.Errorf("%w: user id is required", ErrInvalidCommand)
	}
	if strings.TrimSpace(cmd.AdminUserCode) == "" {
		return DeleteUserResult{}, fmt.Errorf("%w: admin user code is required", ErrInvalidCommand)
	}

	target, err := h.users.FindByID(ctx, cmd.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return deleteRejected(ErrorCodeUserNotFound, "User with id not found."), nil
		}
		return DeleteUserResult{}, fmt.Errorf("failed to find user: %w", err)
	}

	admin, err := h.users.FindByCode(ctx, cmd.AdminUserCode)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return deleteRejected(ErrorCodeAdminNotFound, "Admin user with code not found."), nil
		}
		return DeleteUserResult{}, fmt.Errorf("failed to find admin user: %w", err)
	}

	if !admin.IsAdmin {
		return deleteRejected(ErrorCodeNotAdmin, "User is not admin."), nil
	}
	if target.RoomID != admin.RoomID {
		return deleteRejected(ErrorCodeDifferentRooms, "Users belong to different rooms."), nil
	}
	if target.ID == admin.ID {
		return deleteRejected(ErrorCodeSameUser, "Cannot delete yourself as admin."), nil
	}

	room, err := h.rooms.FindByID(ctx, admin.RoomID)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			return deleteRejected(ErrorCodeRoomNotFound, "Room not found."), nil
		}
		return DeleteUserResult{}, fmt.Errorf("failed to find room: %w", err)
	}
	if room.IsClosed() {
		return deleteRejected(ErrorCodeRoomClosed, "Room is already closed."), nil
	}

	// Nothing has been written yet; a cancelled request stops here.
	if err := ctx.Err(); err != nil {
		return DeleteUserResult{}, err
	}

	if err := h.users.Delete(ctx, target.ID); err != nil {
		if isContextError(err) {
			return DeleteUserResult{}, err
		}
		message := err.Error()
		if message == "" {
			message = "Delete failed."
		}
		return deleteRejected(ErrorCodeDeleteFailed, message), nil
	}

	return DeleteUserResult{Success: true, RoomID: room.ID, AdminID: admin.ID}, nil
}
