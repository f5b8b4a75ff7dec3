package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/calcly/calculator-api/internal/api/metrics"
	"github.com/calcly/calculator-api/internal/core/domain"
	"github.com/calcly/calculator-api/internal/core/ports"
)

const userCacheTTL = time.Minute

// UserCache is a short-TTL cache of authenticated-user lookups backed by
// Redis. Entries are the JSON form of domain.User, which excludes the
// password hash, so the hash never reaches Redis.
// Key format: user:<uuid>
type UserCache struct {
	client *redis.Client
}

// NewUserCache creates a UserCache wrapping the given Redis client.
func NewUserCache(client *redis.Client) *UserCache {
	return &UserCache{client: client}
}

// Get returns the cached user, or false when absent. Redis errors read as a
// cache miss so authentication never depends on cache availability.
func (c *UserCache) Get(ctx context.Context, id uuid.UUID) (*domain.User, bool) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, false
	}
	return &user, true
}

// Set stores the user for userCacheTTL.
func (c *UserCache) Set(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode cached user: %w", err)
	}
	return c.client.Set(ctx, c.key(user.ID), raw, userCacheTTL).Err()
}

func (c *UserCache) key(id uuid.UUID) string {
	return "user:" + id.String()
}

// UserLookup resolves users by id through the cache, falling back to the
// store on a miss. It satisfies the access middleware's user source.
type UserLookup struct {
	cache *UserCache
	repo  ports.UserRepository
}

func NewUserLookup(cache *UserCache, repo ports.UserRepository) *UserLookup {
	return &UserLookup{cache: cache, repo: repo}
}

func (l *UserLookup) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if user, ok := l.cache.Get(ctx, id); ok {
		metrics.UserCacheTotal.WithLabelValues("hit").Inc()
		return user, nil
	}
	metrics.UserCacheTotal.WithLabelValues("miss").Inc()

	user, err := l.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = l.cache.Set(ctx, user)
	return user, nil
}
