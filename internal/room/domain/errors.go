package domain

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomClosed   = errors.New("room is already closed")
	ErrRoomFull     = errors.New("room has reached the maximum number of participants")
	ErrNotAdmin     = errors.New("user is not admin")
)
