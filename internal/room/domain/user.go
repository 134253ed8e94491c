package domain

import (
	"context"
	"time"
)

// User represents a room participant (domain model)
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RoomID       uint      `json:"roomId" gorm:"not null;index"`
	AuthCode     string    `json:"userCode" gorm:"uniqueIndex;not null"`
	IsAdmin      bool      `json:"isAdmin" gorm:"not null"`
	FirstName    string    `json:"firstName" gorm:"not null"`
	LastName     string    `json:"lastName" gorm:"not null"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	DeliveryInfo string    `json:"deliveryInfo"`
	CreatedOn    time.Time `json:"createdOn" gorm:"autoCreateTime"`
	ModifiedOn   time.Time `json:"modifiedOn" gorm:"autoUpdateTime"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// UserRepository defines the contract for participant data access
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByCode(ctx context.Context, code string) (*User, error)
	FindByRoomID(ctx context.Context, roomID uint) ([]User, error)
	CountByRoomID(ctx context.Context, roomID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}
