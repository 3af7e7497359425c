package dedup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// SignatureStore is the optional "globally seen" signature set consulted
// across pipeline runs. Keys are signature hashes, not raw signatures.
type SignatureStore interface {
	Seen(ctx context.Context, hash string) (bool, error)
	Add(ctx context.Context, hash string) error
	Close() error
}

// HashSignature returns the SHA-256 hex digest of a signature, the key format
// shared by all store implementations.
func HashSignature(sig string) string {
	h := sha256.Sum256([]byte(sig))
	return hex.EncodeToString(h[:])
}

// MemoryStore is an in-process SignatureStore, safe for concurrent use by
// multiple aggregate calls sharing one pipeline instance.
type MemoryStore struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewMemoryStore creates an empty in-memory signature store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{seen: make(map[string]struct{})}
}

func (m *MemoryStore) Seen(_ context.Context, hash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.seen[hash]
	return ok, nil
}

func (m *MemoryStore) Add(_ context.Context, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen[hash] = struct{}{}
	return nil
}

func (m *MemoryStore) Close() error { return nil }
