package lockout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	failuresKeyPrefix = "biolock:failures:"
	lockKeyPrefix     = "biolock:until:"
)

// RedisStore shares lockout state between instances. Failure counters expire
// with their window; locks expire when they end.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Record, error) {
	pipe := s.client.Pipeline()
	failures := pipe.Get(ctx, failuresKeyPrefix+key)
	until := pipe.Get(ctx, lockKeyPrefix+key)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get lockout: %w", err)
	}

	rec := &Record{Key: key}
	found := false
	if n, err := failures.Int(); err == nil {
		rec.Failures = n
		found = true
	}
	if v, err := until.Int64(); err == nil {
		t := time.Unix(0, v).UTC()
		rec.LockedUntil = &t
		found = true
	}
	if !found {
		return nil, nil
	}
	return rec, nil
}

// RecordFailure increments the window counter atomically. The window starts
// with the first failure and the key expires when it ends.
func (s *RedisStore) RecordFailure(ctx context.Context, key string, now time.Time, window time.Duration) (*Record, error) {
	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, failuresKeyPrefix+key)
		pipe.ExpireNX(ctx, failuresKeyPrefix+key, window)
		ttl = pipe.PTTL(ctx, failuresKeyPrefix+key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record lockout failure: %w", err)
	}

	remaining := ttl.Val()
	if remaining < 0 {
		remaining = window
	}
	return &Record{
		Key:         key,
		Failures:    int(incr.Val()),
		WindowStart: now.Add(remaining - window),
	}, nil
}

func (s *RedisStore) Lock(ctx context.Context, key string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, lockKeyPrefix+key, strconv.FormatInt(until.UnixNano(), 10), ttl).Err(); err != nil {
		return fmt.Errorf("set lockout: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, failuresKeyPrefix+key, lockKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("clear lockout: %w", err)
	}
	return nil
}
