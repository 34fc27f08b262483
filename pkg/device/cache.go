package device

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Snapshot is a device's cached full-configuration tree. Opaque to this
// package; created lazily on first read, replaced wholesale on refresh,
// removed on any successful commit. Never partially patched.
type Snapshot struct {
	Device    string          `json:"device"`
	Config    json.RawMessage `json:"config"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// Store is the snapshot cache, keyed by device identity. Writes must be
// atomic per key so no reader observes a half-updated snapshot.
type Store interface {
	Get(ctx context.Context, device string) (*Snapshot, bool, error)
	Put(ctx context.Context, device string, snap *Snapshot) error
	Invalidate(ctx context.Context, device string) error
}

// MemoryStore is the in-process store. Safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[string]*Snapshot
}

// NewMemoryStore creates an empty in-process snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[string]*Snapshot)}
}

func (s *MemoryStore) Get(_ context.Context, device string) (*Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snaps[device]
	return snap, ok, nil
}

func (s *MemoryStore) Put(_ context.Context, device string, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[device] = snap
	return nil
}

func (s *MemoryStore) Invalidate(_ context.Context, device string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snaps, device)
	return nil
}

// RedisStore keeps snapshots in Redis so multiple vygate instances share
// one cache. Per-key atomicity comes from Redis's single-key command
// semantics.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects to Redis at addr/db. A zero ttl means snapshots
// live until invalidated.
func NewRedisStore(addr string, db int, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr, DB: db}),
		prefix: "vygate:config:",
		ttl:    ttl,
	}
}

func (s *RedisStore) key(device string) string {
	return s.prefix + device
}

func (s *RedisStore) Get(ctx context.Context, device string) (*Snapshot, bool, error) {
	data, err := s.client.Get(ctx, s.key(device)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", device, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false, fmt.Errorf("cache decode %s: %w", device, err)
	}
	return &snap, true, nil
}

func (s *RedisStore) Put(ctx context.Context, device string, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", device, err)
	}
	if err := s.client.Set(ctx, s.key(device), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("cache put %s: %w", device, err)
	}
	return nil
}

func (s *RedisStore) Invalidate(ctx context.Context, device string) error {
	if err := s.client.Del(ctx, s.key(device)).Err(); err != nil {
		return fmt.Errorf("cache invalidate %s: %w", device, err)
	}
	return nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
