package pipeline

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"tradewire/types"
)

const redisCacheOpTimeout = 5 * time.Second

// ResultCache is the optional query→result cache shared across aggregate
// calls. Implementations report misses rather than errors; a broken cache
// must never fail a run.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]*types.EnrichedItem, bool)
	Set(ctx context.Context, key string, items []*types.EnrichedItem)
}

// MemoryCache is an in-process ResultCache with per-entry TTL, safe for
// concurrent aggregate calls sharing one pipeline instance.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryCacheEntry
}

type memoryCacheEntry struct {
	items     []*types.EnrichedItem
	expiresAt time.Time
}

// NewMemoryCache creates a cache with the given TTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, entries: make(map[string]memoryCacheEntry)}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]*types.EnrichedItem, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.items, true
}

func (m *MemoryCache) Set(_ context.Context, key string, items []*types.EnrichedItem) {
	m.mu.Lock()
	m.entries[key] = memoryCacheEntry{items: items, expiresAt: time.Now().Add(m.ttl)}
	m.mu.Unlock()
}

// RedisCache is a Redis-backed ResultCache storing JSON-encoded result sets
// with a TTL. Redis failures are logged and reported as misses.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisCache creates the cache and verifies connectivity.
func NewRedisCache(cfg RedisCacheConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisCacheOpTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "results:"
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisCache{client: client, ttl: ttl, prefix: prefix}, nil
}

// RedisCacheConfig configures the Redis result cache.
type RedisCacheConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]*types.EnrichedItem, bool) {
	ctx, cancel := context.WithTimeout(ctx, redisCacheOpTimeout)
	defer cancel()

	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Warning: result cache get failed: %v", err)
		}
		return nil, false
	}

	var items []*types.EnrichedItem
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("Warning: result cache entry corrupt: %v", err)
		return nil, false
	}
	return items, true
}

func (r *RedisCache) Set(ctx context.Context, key string, items []*types.EnrichedItem) {
	ctx, cancel := context.WithTimeout(ctx, redisCacheOpTimeout)
	defer cancel()

	raw, err := json.Marshal(items)
	if err != nil {
		log.Printf("Warning: result cache encode failed: %v", err)
		return
	}
	if err := r.client.Set(ctx, r.prefix+key, raw, r.ttl).Err(); err != nil {
		log.Printf("Warning: result cache set failed: %v", err)
	}
}

// Close closes the underlying Redis client.
func (r *RedisCache) Close() error { return r.client.Close() }
