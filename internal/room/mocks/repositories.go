// Package mocks provides testify mocks of the room repositories and cache.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tair/gift-rooms/internal/room/domain"
)

// UserRepository is a mock of domain.UserRepository
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) FindByCode(ctx context.Context, code string) (*domain.User, error) {
	args := m.Called(ctx, code)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) FindByRoomID(ctx context.Context, roomID uint) ([]domain.User, error) {
	args := m.Called(ctx, roomID)
	if users, ok := args.Get(0).([]domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) CountByRoomID(ctx context.Context, roomID uint) (int64, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// RoomRepository is a mock of domain.RoomRepository
type RoomRepository struct {
	mock.Mock
}

func (m *RoomRepository) Create(ctx context.Context, room *domain.Room, admin *domain.User) error {
	args := m.Called(ctx, room, admin)
	return args.Error(0)
}

func (m *RoomRepository) FindByID(ctx context.Context, id uint) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if room, ok := args.Get(0).(*domain.Room); ok {
		return room, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RoomRepository) FindByInvitationCode(ctx context.Context, code string) (*domain.Room, error) {
	args := m.Called(ctx, code)
	if room, ok := args.Get(0).(*domain.Room); ok {
		return room, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RoomRepository) FindByUserCode(ctx context.Context, userCode string) (*domain.Room, error) {
	args := m.Called(ctx, userCode)
	if room, ok := args.Get(0).(*domain.Room); ok {
		return room, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

// ParticipantCache is a mock of domain.ParticipantCache
type ParticipantCache struct {
	mock.Mock
}

func (m *ParticipantCache) Get(ctx context.Context, roomID uint) ([]domain.User, int64, error) {
	args := m.Called(ctx, roomID)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *ParticipantCache) Set(ctx context.Context, roomID uint, version int64, users []domain.User) error {
	args := m.Called(ctx, roomID, version, users)
	return args.Error(0)
}

func (m *ParticipantCache) Invalidate(ctx context.Context, roomID uint) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}
