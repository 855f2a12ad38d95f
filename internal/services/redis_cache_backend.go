package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCacheBackend implements CacheBackend using Redis. Every key is
// stored under prefix so Flush only touches this application's keys.
type RedisCacheBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisClient connects to addr and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// NewRedisCacheBackend creates a new Redis cache backend
func NewRedisCacheBackend(client *redis.Client, prefix string) *RedisCacheBackend {
	return &RedisCacheBackend{client: client, prefix: prefix}
}

func (r *RedisCacheBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+key, value, ttl).Err()
}

func (r *RedisCacheBackend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cacheMiss()
	}
	return data, err
}

func (r *RedisCacheBackend) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}

// DeletePattern walks matching keys with SCAN rather than KEYS so large
// keyspaces do not block the server.
func (r *RedisCacheBackend) DeletePattern(ctx context.Context, pattern string) error {
	iter := r.client.Scan(ctx, 0, r.prefix+pattern, 200).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 200 {
			if err := r.client.Unlink(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return r.client.Unlink(ctx, batch...).Err()
	}
	return nil
}

func (r *RedisCacheBackend) Exists(ctx context.Context, key string) bool {
	count, err := r.client.Exists(ctx, r.prefix+key).Result()
	return err == nil && count > 0
}

func (r *RedisCacheBackend) Flush(ctx context.Context) error {
	return r.DeletePattern(ctx, "*")
}

func (r *RedisCacheBackend) Stats(ctx context.Context) (*BackendStats, error) {
	stats := &BackendStats{
		Metadata: map[string]interface{}{
			"backend": "redis",
			"prefix":  r.prefix,
		},
	}
	if err := r.client.Ping(ctx).Err(); err != nil {
		return stats, err
	}
	stats.Connected = true

	iter := r.client.Scan(ctx, 0, r.prefix+"*", 500).Iterator()
	for iter.Next(ctx) {
		stats.Keys++
	}
	if err := iter.Err(); err != nil {
		return stats, err
	}

	info, err := r.client.Info(ctx, "memory").Result()
	if err == nil {
		stats.Memory = usedMemory(info)
	}
	return stats, nil
}

// usedMemory reads used_memory from an INFO memory reply.
func usedMemory(info string) int64 {
	for _, line := range strings.Split(info, "\n") {
		value, ok := strings.CutPrefix(strings.TrimSpace(line), "used_memory:")
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return n
		}
	}
	return 0
}
