package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/contas/internal/report"
)

// Redis keeps reports under a generation number. Invalidate bumps the generation so stale
// keys are never read again and expire on their own.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedis(client *redis.Client, prefix string, ttl time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, ttl: ttl}
}

// Connect opens a client for addr and checks it answers.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return client, nil
}

func (r *Redis) versionKey() string {
	return r.prefix + ":version"
}

func (r *Redis) generation(ctx context.Context) (int64, error) {
	v, err := r.client.Get(ctx, r.versionKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("reading report generation: %w", err)
	}

	return v, nil
}

func (r *Redis) key(gen int64, name string) string {
	return fmt.Sprintf("%s:%d:%s", r.prefix, gen, name)
}

// Get reads name under the current generation. The generation is returned with a miss
// so the caller can store what it builds under the generation it started from.
func (r *Redis) Get(ctx context.Context, name string) ([]byte, int64, error) {
	gen, err := r.generation(ctx)
	if err != nil {
		return nil, 0, err
	}

	raw, err := r.client.Get(ctx, r.key(gen, name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, report.ErrCacheMiss
	}

	if err != nil {
		return nil, 0, fmt.Errorf("reading cached report: %w", err)
	}

	return raw, gen, nil
}

// Set stores value under gen. A value from an invalidated generation lands on a key no
// reader looks up and expires with the TTL.
func (r *Redis) Set(ctx context.Context, name string, gen int64, value []byte) error {
	if err := r.client.Set(ctx, r.key(gen, name), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("writing cached report: %w", err)
	}

	return nil
}

func (r *Redis) Invalidate(ctx context.Context) error {
	if err := r.client.Incr(ctx, r.versionKey()).Err(); err != nil {
		return fmt.Errorf("bumping report generation: %w", err)
	}

	return nil
}
