package room

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tair/gift-rooms/internal/config"
	"github.com/tair/gift-rooms/internal/room/cache"
	"github.com/tair/gift-rooms/internal/room/delivery/http"
	"github.com/tair/gift-rooms/internal/room/domain"
	"github.com/tair/gift-rooms/internal/room/repository"
	"github.com/tair/gift-rooms/internal/room/usecase/command"
	"github.com/tair/gift-rooms/internal/room/usecase/query"
)

// ProvideUserRepository provides the traced user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewTracingUserRepository(repository.NewGormUserRepository(db))
}

// ProvideRoomRepository provides the traced room repository
func ProvideRoomRepository(db *gorm.DB) domain.RoomRepository {
	return repository.NewTracingRoomRepository(repository.NewGormRoomRepository(db))
}

// ProvideParticipantCache provides the Redis participants cache
func ProvideParticipantCache(client *redis.Client, cfg *config.Config) domain.ParticipantCache {
	return cache.NewRedisParticipantCache(client, cfg.ParticipantsCacheTTL)
}

// ProvideRateLimiter provides the rate limiter for mutating routes. A
// non-positive request budget disables it.
func ProvideRateLimiter(client *redis.Client, cfg *config.Config) *http.RateLimiter {
	if cfg.RateLimitRequests <= 0 {
		return nil
	}
	return http.NewRateLimiter(client, cfg.RateLimitRequests, cfg.RateLimitWindow, cfg.TrustedProxies)
}

// Command Handlers Providers
func ProvideCreateRoomHandler(rooms domain.RoomRepository) *command.CreateRoomHandler {
	return command.NewCreateRoomHandler(rooms)
}

func ProvideJoinRoomHandler(users domain.UserRepository, rooms domain.RoomRepository, cfg *config.Config) *command.JoinRoomHandler {
	return command.NewJoinRoomHandler(users, rooms, cfg.MaxParticipants)
}

func ProvideCloseRoomHandler(users domain.UserRepository, rooms domain.RoomRepository) *command.CloseRoomHandler {
	return command.NewCloseRoomHandler(users, rooms)
}

func ProvideDeleteUserHandler(users domain.UserRepository, rooms domain.RoomRepository) *command.DeleteUserHandler {
	return command.NewDeleteUserHandler(users, rooms)
}

// Query Handlers Providers
func ProvideGetUsersHandler(users domain.UserRepository, participants domain.ParticipantCache) *query.GetUsersHandler {
	return query.NewGetUsersHandler(users, participants)
}

func ProvideGetUserHandler(users domain.UserRepository) *query.GetUserHandler {
	return query.NewGetUserHandler(users)
}

func ProvideGetRoomHandler(rooms domain.RoomRepository) *query.GetRoomHandler {
	return query.NewGetRoomHandler(rooms)
}

// ProvideCommands provides all command handlers
func ProvideCommands(
	createRoom *command.CreateRoomHandler,
	joinRoom *command.JoinRoomHandler,
	closeRoom *command.CloseRoomHandler,
	deleteUser *command.DeleteUserHandler,
) *http.Commands {
	return &http.Commands{
		CreateRoom: createRoom,
		JoinRoom:   joinRoom,
		CloseRoom:  closeRoom,
		DeleteUser: deleteUser,
	}
}

// ProvideQueries provides all query handlers
func ProvideQueries(
	getUsers *query.GetUsersHandler,
	getUser *query.GetUserHandler,
	getRoom *query.GetRoomHandler,
) *http.Queries {
	return &http.Queries{
		GetUsers: getUsers,
		GetUser:  getUser,
		GetRoom:  getRoom,
	}
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
	ProvideRoomRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCreateRoomHandler,
	ProvideJoinRoomHandler,
	ProvideCloseRoomHandler,
	ProvideDeleteUserHandler,
	ProvideCommands,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetUsersHandler,
	ProvideGetUserHandler,
	ProvideGetRoomHandler,
	ProvideQueries,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)
