package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/gift-rooms/internal/room/domain"
)

// GormUserRepository implements domain.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user into the database
func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// FindByCode retrieves a user by auth code
func (r *GormUserRepository) FindByCode(ctx context.Context, code string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("auth_code = ?", code).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by code: %w", err)
	}
	return &user, nil
}

// FindByRoomID retrieves all users of a room, admin first
func (r *GormUserRepository) FindByRoomID(ctx context.Context, roomID uint) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("is_admin DESC").
		Order("id ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find users by room: %w", err)
	}
	return users, nil
}

// CountByRoomID returns the number of users in a room
func (r *GormUserRepository) CountByRoomID(ctx context.Context, roomID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Where("room_id = ?", roomID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users by room: %w", err)
	}
	return count, nil
}

// Delete permanently removes a user from the database
func (r *GormUserRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
