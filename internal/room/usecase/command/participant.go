package command

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tair/gift-rooms/internal/room/domain"
)

// ParticipantDetails holds the personal information a participant enters
type ParticipantDetails struct {
	FirstName    string
	LastName     string
	Phone        string
	Email        string
	DeliveryInfo string
}

func (p ParticipantDetails) validate() error {
	if strings.TrimSpace(p.FirstName) == "" {
		return fmt.Errorf("%w: first name is required", ErrInvalidCommand)
	}
	if strings.TrimSpace(p.LastName) == "" {
		return fmt.Errorf("%w: last name is required", ErrInvalidCommand)
	}
	return nil
}

// newUser builds a participant with a fresh auth code
func (p ParticipantDetails) newUser(roomID uint) *domain.User {
	return &domain.User{
		RoomID:       roomID,
		AuthCode:     newCode(),
		FirstName:    strings.TrimSpace(p.FirstName),
		LastName:     strings.TrimSpace(p.LastName),
		Phone:        strings.TrimSpace(p.Phone),
		Email:        strings.TrimSpace(p.Email),
		DeliveryInfo: strings.TrimSpace(p.DeliveryInfo),
	}
}

// newCode returns an opaque code used for auth and invitation links
func newCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
