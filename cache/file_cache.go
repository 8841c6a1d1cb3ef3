package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"askcaira/backend/models"
)

// FileCache holds file records for the chat path so repeated turns on the
// same file skip the store. A miss returns nil, nil.
type FileCache interface {
	Get(ctx context.Context, userID, fileID string) (*models.FileRecord, error)
	Set(ctx context.Context, f *models.FileRecord) error
	Delete(ctx context.Context, userID, fileID string) error
}

type RedisFileCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisFileCache connects and pings. A zero ttl means 10 minutes.
func NewRedisFileCache(ctx context.Context, addr string, ttl time.Duration) (*RedisFileCache, error) {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisFileCache{rdb: rdb, ttl: ttl}, nil
}

func key(userID, fileID string) string {
	return "askcaira:file:" + userID + ":" + fileID
}

func (c *RedisFileCache) Get(ctx context.Context, userID, fileID string) (*models.FileRecord, error) {
	b, err := c.rdb.Get(ctx, key(userID, fileID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var f models.FileRecord
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (c *RedisFileCache) Set(ctx context.Context, f *models.FileRecord) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key(f.UserID, f.ID), b, c.ttl).Err()
}

func (c *RedisFileCache) Delete(ctx context.Context, userID, fileID string) error {
	return c.rdb.Del(ctx, key(userID, fileID)).Err()
}

func (c *RedisFileCache) Close() error {
	return c.rdb.Close()
}

// NopFileCache is used when REDIS_ADDR is empty.
type NopFileCache struct{}

func (NopFileCache) Get(context.Context, string, string) (*models.FileRecord, error) { return nil, nil }
func (NopFileCache) Set(context.Context, *models.FileRecord) error                   { return nil }
func (NopFileCache) Delete(context.Context, string, string) error                    { return nil }
