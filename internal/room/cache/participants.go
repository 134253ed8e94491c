package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/gift-rooms/internal/room/domain"
)

// DefaultParticipantsTTL bounds how stale a cached participant list can get
// if an invalidation is lost.
const DefaultParticipantsTTL = 5 * time.Minute

// RedisParticipantCache implements domain.ParticipantCache with Redis
type RedisParticipantCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisParticipantCache creates a new Redis participant cache
func NewRedisParticipantCache(client *redis.Client, ttl time.Duration) *RedisParticipantCache {
	if ttl <= 0 {
		ttl = DefaultParticipantsTTL
	}
	return &RedisParticipantCache{client: client, ttl: ttl}
}

func generationKey(roomID uint) string {
	return fmt.Sprintf("room:%d:gen", roomID)
}

func participantsKey(roomID uint, version int64) string {
	return fmt.Sprintf("room:%d:participants:v%d", roomID, version)
}

// version returns the current generation of a room, 0 if never invalidated
func (c *RedisParticipantCache) version(ctx context.Context, roomID uint) (int64, error) {
	version, err := c.client.Get(ctx, generationKey(roomID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read participants generation: %w", err)
	}
	return version, nil
}

// Get returns the cached participants of a room and the version they were
// read under. A miss returns domain.ErrCacheMiss with the current version.
func (c *RedisParticipantCache) Get(ctx context.Context, roomID uint) ([]domain.User, int64, error) {
	version, err := c.version(ctx, roomID)
	if err != nil {
		return nil, 0, err
	}

	data, err := c.client.Get(ctx, participantsKey(roomID, version)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, version, domain.ErrCacheMiss
		}
		return nil, 0, fmt.Errorf("failed to read participants cache: %w", err)
	}

	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, 0, fmt.Errorf("failed to decode participants cache: %w", err)
	}
	return users, version, nil
}

// Set stores the participants of a room under the given version
func (c *RedisParticipantCache) Set(ctx context.Context, roomID uint, version int64, users []domain.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode participants: %w", err)
	}
	if err := c.client.Set(ctx, participantsKey(roomID, version), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write participants cache: %w", err)
	}
	return nil
}

// Invalidate moves the room to a new version. Entries written under older
// versions are never read again and expire with their TTL.
func (c *RedisParticipantCache) Invalidate(ctx context.Context, roomID uint) error {
	if err := c.client.Incr(ctx, generationKey(roomID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate participants cache: %w", err)
	}
	return nil
}
