package db

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/techagentng/dutyreport/config"
)

const blacklistKeyPrefix = "dutyreport:blacklist:"

type redisBlacklist struct {
	client *redis.Client
	logger *logrus.Logger
}

// NewRedisBlacklist keeps revoked tokens in redis with the token's remaining
// lifetime as TTL.
func NewRedisBlacklist(client *redis.Client, logger *logrus.Logger) TokenBlacklist {
	return &redisBlacklist{client: client, logger: logger}
}

// NewRedisClient connects to addr and pings it once.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrapf(err, "connecting to redis at %s", addr)
	}
	return client, nil
}

func (r *redisBlacklist) key(token string) string {
	sum := sha256.Sum256([]byte(normalizeToken(token)))
	return blacklistKeyPrefix + hex.EncodeToString(sum[:])
}

func (r *redisBlacklist) AddToBlackList(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return errors.Wrap(r.client.Set(ctx, r.key(token), 1, ttl).Err(), "blacklisting token")
}

func (r *redisBlacklist) IsTokenInBlacklist(ctx context.Context, token string) bool {
	n, err := r.client.Exists(ctx, r.key(token)).Result()
	if err != nil {
		// Lookups fail open: a redis outage must not lock every user out.
		config.LogError(r.logger, "db", "IsTokenInBlacklist", "checking token", nil, err)
		return false
	}
	return n > 0
}
