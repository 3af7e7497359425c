package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultSignatureKey = "items:signatures"
	defaultSignatureTTL = 24 * time.Hour
	redisOpTimeout      = 5 * time.Second
)

// RedisStoreConfig configures the Redis-backed signature set.
type RedisStoreConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	Key      string        // redis key holding the set; default items:signatures
	TTL      time.Duration // sliding expiry, reset on each add; default 24h
}

// RedisStore is a Redis-backed SignatureStore shared across processes. The
// key carries a sliding TTL so the filter stays alive for TTL after the most
// recent insertion and then ages out wholesale.
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisStore creates the store and verifies connectivity.
func NewRedisStore(cfg RedisStoreConfig) (*RedisStore, error) {
	if cfg.Key == "" {
		cfg.Key = defaultSignatureKey
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultSignatureTTL
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return &RedisStore{client: client, key: cfg.Key, ttl: cfg.TTL}, nil
}

func (r *RedisStore) Seen(ctx context.Context, hash string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	return r.client.SIsMember(ctx, r.key, hash).Result()
}

func (r *RedisStore) Add(ctx context.Context, hash string) error {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	if err := r.client.SAdd(ctx, r.key, hash).Err(); err != nil {
		return err
	}
	// Sliding window: reset expiry on each add.
	return r.client.Expire(ctx, r.key, r.ttl).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
