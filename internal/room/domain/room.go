package domain

import (
	"context"
	"time"
)

// Room groups participants of one gift exchange
type Room struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	Name              string     `json:"name" gorm:"not null"`
	Description       string     `json:"description"`
	InvitationCode    string     `json:"invitationCode" gorm:"uniqueIndex;not null"`
	GiftExchangeDate  *time.Time `json:"giftExchangeDate"`
	GiftMaximumBudget uint       `json:"giftMaximumBudget"`
	ClosedOn          *time.Time `json:"closedOn"`
	CreatedOn         time.Time  `json:"createdOn" gorm:"autoCreateTime"`
	ModifiedOn        time.Time  `json:"modifiedOn" gorm:"autoUpdateTime"`
	Users             []User     `json:"-" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (Room) TableName() string {
	return "rooms"
}

// IsClosed reports whether the room no longer accepts changes
func (r *Room) IsClosed() bool {
	return r.ClosedOn != nil
}

// Close marks the room as closed. Closing is one-way.
func (r *Room) Close(at time.Time) error {
	if r.IsClosed() {
		return ErrRoomClosed
	}
	r.ClosedOn = &at
	return nil
}

// RoomRepository defines the contract for room data access
type RoomRepository interface {
	// Create inserts the room together with its admin user.
	Create(ctx context.Context, room *Room, admin *User) error
	FindByID(ctx context.Context, id uint) (*Room, error)
	FindByInvitationCode(ctx context.Context, code string) (*Room, error)
	FindByUserCode(ctx context.Context, userCode string) (*Room, error)
	Update(ctx context.Context, room *Room) error
}
