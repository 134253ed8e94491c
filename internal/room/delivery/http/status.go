package http

import (
	"net/http"

	"github.com/tair/gift-rooms/internal/room/usecase/command"
)

// StatusForDeleteResult maps a delete user result to an HTTP status code
func StatusForDeleteResult(result command.DeleteUserResult) int {
	if result.Success {
		return http.StatusNoContent
	}

	switch result.ErrorCode {
	case command.ErrorCodeUserNotFound, command.ErrorCodeAdminNotFound, command.ErrorCodeRoomNotFound:
		return http.StatusNotFound
	case command.ErrorCodeNotAdmin:
		return http.StatusForbidden
	case command.ErrorCodeDifferentRooms, command.ErrorCodeSameUser:
		return http.StatusBadRequest
	case command.ErrorCodeRoomClosed:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// MessageForDeleteResult returns the error text for a rejected delete
func MessageForDeleteResult(result command.DeleteUserResult) string {
	if result.ErrorMessage == "" {
		return "Unknown error."
	}
	return result.ErrorMessage
}
