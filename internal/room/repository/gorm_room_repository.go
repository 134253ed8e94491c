package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/gift-rooms/internal/room/domain"
)

// GormRoomRepository implements domain.RoomRepository using GORM
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GORM room repository
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// Create inserts the room and its admin in a single transaction
func (r *GormRoomRepository) Create(ctx context.Context, room *domain.Room, admin *domain.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Users").Create(room).Error; err != nil {
			return err
		}
		admin.RoomID = room.ID
		admin.IsAdmin = true
		return tx.Create(admin).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

// FindByID retrieves a room by ID
func (r *GormRoomRepository) FindByID(ctx context.Context, id uint) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, r.mapError(err)
	}
	return &room, nil
}

// FindByInvitationCode retrieves a room by its invitation code
func (r *GormRoomRepository) FindByInvitationCode(ctx context.Context, code string) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).Where("invitation_code = ?", code).First(&room).Error; err != nil {
		return nil, r.mapError(err)
	}
	return &room, nil
}

// FindByUserCode retrieves the room the user with the given auth code belongs to
func (r *GormRoomRepository) FindByUserCode(ctx context.Context, userCode string) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.room_id = rooms.id").
		Where("users.auth_code = ?", userCode).
		First(&room).Error
	if err != nil {
		return nil, r.mapError(err)
	}
	return &room, nil
}

// Update saves all room fields
func (r *GormRoomRepository) Update(ctx context.Context, room *domain.Room) error {
	if err := r.db.WithContext(ctx).Omit("Users").Save(room).Error; err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}
	return nil
}

// AutoMigrate runs database migrations for rooms and users
func (r *GormRoomRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Room{}, &domain.User{})
}

func (r *GormRoomRepository) mapError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrRoomNotFound
	}
	return fmt.Errorf("failed to find room: %w", err)
}
