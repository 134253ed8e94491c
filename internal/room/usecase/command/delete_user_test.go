package command_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tair/gift-rooms/internal/room/domain"
	"github.com/tair/gift-rooms/internal/room/mocks"
	"github.com/tair/gift-rooms/internal/room/usecase/command"
)

const adminCode = "adminCode"

type deleteFixture struct {
	users   *mocks.UserRepository
	rooms   *mocks.RoomRepository
	handler *command.DeleteUserHandler
}

func newDeleteFixture() *deleteFixture {
	users := new(mocks.UserRepository)
	rooms := new(mocks.RoomRepository)
	return &deleteFixture{
		users:   users,
		rooms:   rooms,
		handler: command.NewDeleteUserHandler(users, rooms),
	}
}

func (f *deleteFixture) assertExpectations(t *testing.T) {
	f.users.AssertExpectations(t)
	f.rooms.AssertExpectations(t)
}

func TestDeleteUser_Success(t *testing.T) {
	f := newDeleteFixture()
	admin := &domain.User{ID: 1, RoomID: 10, IsAdmin: true}
	target := &domain.User{ID: 2, RoomID: 10}
	f.users.On("FindByID", mock.Anything, uint(2)).Return(target, nil).Once()
	f.users.On("FindByCode", mock.Anything, adminCode).Return(admin, nil).Once()
	f.rooms.On("FindByID", mock.Anything, uint(10)).Return(&domain.Room{ID: 10}, nil).Once()
	f.users.On("Delete", mock.Anything, uint(2)).Return(nil).Once()

	result, err := f.handler.Handle(context.Background(), command.DeleteUserCommand{UserID: 2, AdminUserCode: adminCode})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, result.ErrorCode)
	assert.Empty(t, result.ErrorMessage)
	assert.Equal(t, uint(10), result.RoomID)
	assert.Equal(t, uint(1), result.AdminID)
	f.assertExpectations(t)
}

func TestDeleteUser_UserNotFound(t *testing.T) {
	f := newDeleteFixture()
	f.users.On("FindByID", mock.Anything, uint(2)).Return(nil, domain.ErrUserNotFound).Once()

	result, err := f.handler.Handle(context.Background(), command.DeleteUserCommand{UserID: 2, AdminUserCode: adminCode})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, command.ErrorCodeUserNotFound, result.ErrorCode)
	assert.Equal(t, "User with id not found.", result.ErrorMessage)
	f.users.AssertNotCalled(t, "FindByCode", mock.Anything, mock.Anything)
	f.users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestDeleteUser_AdminNotFound(t *testing.T) {
	f := newDeleteFixture()
	f.users.On("FindByID", mock.Anything, uint(2)).Return(&domain.User{ID: 2, RoomID: 10}, nil).Once()
	f.users.On("FindByCode", mock.Anything, adminCode).Return(nil, domain.ErrUserNotFound).Once()

	result, err := f.handler.Handle(context.Background(), command.DeleteUserCommand{UserID: 2, AdminUserCode: adminCode})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, command.ErrorCodeAdminNotFound, result.ErrorCode)
	f.users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

// The first failing check decides the code, whatever else is wrong with the input.
func TestDeleteUser_CheckOrder(t *testing.T) {
	closedOn := time.Now().UTC()

	tests := []struct {
		name    string
		admin   *domain.User
		target  *domain.User
		room    *domain.Room
		roomErr error
		want    command.ErrorCode
	}{
		{
			name:   "not admin wins over different rooms and same user",
			admin:  &domain.User{ID: 2, RoomID: 11, IsAdmin: false},
			target: &domain.User{ID: 2, RoomID: 10},
			want:   command.ErrorCodeNotAdmin,
		},
		{
			name:   "not admin in same room",
			admin:  &domain.User{ID: 1, RoomID: 10, IsAdmin: false},
			target: &domain.User{ID: 2, RoomID: 10},
			want:   command.ErrorCodeNotAdmin,
		},
		{
			name:   "different rooms",
			admin:  &domain.User{ID: 1, RoomID: 11, IsAdmin: true},
			target: &domain.User{ID: 2, RoomID: 10},
			want:   command.ErrorCodeDifferentRooms,
		},
		{
			name:   "same user in same room",
			admin:  &domain.User{ID: 2, RoomID: 10, IsAdmin: true},
			target: &domain.User{ID: 2, RoomID: 10},
			want:   command.ErrorCodeSameUser,
		},
		{
			name:    "room not found",
			admin:   &domain.User{ID: 1, RoomID: 10, IsAdmin: true},
			target:  &domain.User{ID: 2, RoomID: 10},
			roomErr: domain.ErrRoomNotFound,
			want:    command.ErrorCodeRoomNotFound,
		},
		{
			name:   "room closed",
			admin:  &domain.User{ID: 1, RoomID: 10, IsAdmin: true},
			target: &domain.User{ID: 2, RoomID: 10},
			room:   &domain.Room{ID: 10, ClosedOn: &closedOn},
			want:   command.ErrorCodeRoomClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDeleteFixture()
			f.users.On("FindByID", mock.Anything, tt.target.ID).Return(tt.target, nil).Once()
			f.users.On("FindByCode", mock.Anything, adminCode).Return(tt.admin, nil).Once()
			if tt.room != nil || tt.roomErr != nil {
				f.rooms.On("FindByID", mock.Anything, tt.admin.RoomID).Return(tt.room, tt.roomErr).Once()
			}

			result, err := f.handler.Handle(context.Background(), command.DeleteUserCommand{
				UserID:        tt.target.ID,
				AdminUserCode: adminCode,
			})

			require.NoError(t, err)
			assert.False(t, result.Success)
			assert.Equal(t, tt.want, result.ErrorCode)
			assert.NotEmpty(t, result.ErrorMessage)
			f.users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			f.assertExpectations(t)
		})
	}
}

func TestDeleteUser_RoomClosedMessage(t *testing.T) {
	f := newDeleteFixture()
	closedOn := time.Now().UTC()
	f.users.On("FindByID", mock.Anything, uint(2)).Return(&domain.User{ID: 2, RoomID: 10}, nil).Once()
	f.users.On("FindByCode", mock.Anything, adminCode).Return(&domain.User{ID: 1, RoomID: 10, IsAdmin: true}, nil).Once()
	f.rooms.On("FindByID", mock.Anything, uint(10)).Return(&domain.Room{ID: 10, ClosedOn: &closedOn}, nil).Once()

	result, err := f.handler.Handle(context.Background(), command.DeleteUserCommand{UserID: 2, AdminUserCode: adminCode})

	require.NoError(t, err)
	assert.Equal(t, command.DeleteUserResult{
		Success:      false,
		ErrorCode:    command.ErrorCodeRoomClosed,
		ErrorMessage: "Room is already closed.",
	}, result)
	f.assertExpectations(t)
}

func TestDeleteUser_DeleteFailedCarriesMessage(t *testing.T) {
	f := newDeleteFixture()
	f.users.On("FindByID", mock.Anything, uint(2)).Return(&domain.User{ID: 2, RoomID: 10}, nil).Once()
	f.users.On("FindByCode", mock.Anything, adminCode).Return(&domain.User{ID: 1, RoomID: 10, IsAdmin: true}, nil).Once()
	f.rooms.On("FindByID", mock.Anything, uint(10)).Return(&domain.Room{ID: 10}, nil).Once()
	f.users.On("Delete", mock.Anything, uint(2)).Return(errors.New("Delete failed.")).Once()

	result, err := f.handler.Handle(context.Background(), command.DeleteUserCommand{UserID: 2, AdminUserCode: adminCode})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, command.ErrorCodeDeleteFailed, result.ErrorCode)
	assert.Equal(t, "Delete failed.", result.ErrorMessage)
	f.users.AssertNumberOfCalls(t, "Delete", 1)
	f.assertExpectations(t)
}

func TestDeleteUser_StorageErrorPropagates(t *testing.T) {
	f := newDeleteFixture()
	dbErr := errors.New("connection refused")
	f.users.On("FindByID", mock.Anything, uint(2)).Return(nil, dbErr).Once()

	_, err := f.handler.Handle(context.Background(), command.DeleteUserCommand{UserID: 2, AdminUserCode: adminCode})

	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	f.assertExpectations(t)
}

func TestDeleteUser_InvalidCommand(t *testing.T) {
	f := newDeleteFixture()

	_, err := f.handler.Handle(context.Background(), command.DeleteUserCommand{UserID: 0, AdminUserCode: adminCode})
	assert.ErrorIs(t, err, command.ErrInvalidCommand)

	_, err = f.handler.Handle(context.Background(), command.DeleteUserCommand{UserID: 2, AdminUserCode: "  "})
	assert.ErrorIs(t, err, command.ErrInvalidCommand)

	f.users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestDeleteUser_CancelledBeforeDelete(t *testing.T) {
	f := newDeleteFixture()
	ctx, cancel := context.WithCancel(context.Background())
	f.users.On("FindByID", mock.Anything, uint(2)).Return(&domain.User{ID: 2, RoomID: 10}, nil).Once()
	f.users.On("FindByCode", mock.Anything, adminCode).Return(&domain.User{ID: 1, RoomID: 10, IsAdmin: true}, nil).Once()
	f.rooms.On("FindByID", mock.Anything, uint(10)).
		Run(func(mock.Arguments) { cancel() }).
		Return(&domain.Room{ID: 10}, nil).Once()

	_, err := f.handler.Handle(ctx, command.DeleteUserCommand{UserID: 2, AdminUserCode: adminCode})

	assert.ErrorIs(t, err, context.Canceled)
	f.users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

// memoryUsers is a minimal in-memory UserRepository used to observe the
// effect of a successful deletion.
type memoryUsers struct {
	mu    sync.Mutex
	users map[uint]domain.User
}

func (m *memoryUsers) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = *user
	return nil
}

func (m *memoryUsers) FindByID(_ context.Context, id uint) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (m *memoryUsers) FindByCode(_ context.Context, code string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.AuthCode == code {
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memoryUsers) FindByRoomID(_ context.Context, roomID uint) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var users []domain.User
	for _, user := range m.users {
		if user.RoomID == roomID {
			users = append(users, user)
		}
	}
	return users, nil
}

func (m *memoryUsers) CountByRoomID(ctx context.Context, roomID uint) (int64, error) {
	users, _ := m.FindByRoomID(ctx, roomID)
	return int64(len(users)), nil
}

func (m *memoryUsers) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func TestDeleteUser_UserIsGoneAfterSuccess(t *testing.T) {
	ctx := context.Background()
	users := &memoryUsers{users: map[uint]domain.User{
		1: {ID: 1, RoomID: 10, AuthCode: adminCode, IsAdmin: true},
		2: {ID: 2, RoomID: 10, AuthCode: "guest"},
	}}
	rooms := new(mocks.RoomRepository)
	rooms.On("FindByID", mock.Anything, uint(10)).Return(&domain.Room{ID: 10}, nil)
	handler := command.NewDeleteUserHandler(users, rooms)

	result, err := handler.Handle(ctx, command.DeleteUserCommand{UserID: 2, AdminUserCode: adminCode})
	require.NoError(t, err)
	require.True(t, result.Success)

	_, err = users.FindByID(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	again, err := handler.Handle(ctx, command.DeleteUserCommand{UserID: 2, AdminUserCode: adminCode})
	require.NoError(t, err)
	assert.Equal(t, command.ErrorCodeUserNotFound, again.ErrorCode)
}
