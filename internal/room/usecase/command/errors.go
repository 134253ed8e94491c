package command

import (
	"context"
	"errors"
)

// ErrInvalidCommand is returned when a command is missing required fields
var ErrInvalidCommand = errors.New("invalid command")

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
