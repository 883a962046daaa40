package cache

import (
	"context"
	"hash/fnv"
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt int64 // Unix nanoseconds; zero = no expire
}

type bucket[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
}

// MemoryCache is an in-process sharded cache with a background janitor
// sweeping expired entries.
type MemoryCache[V any] struct {
	buckets []*bucket[V]
	quit    chan struct{}
	once    sync.Once
}

// NewMemoryCache creates a cache with 64 shards and a 1s janitor.
func NewMemoryCache[V any]() *MemoryCache[V] {
	return NewMemoryCacheWithOptions[V](64, time.Second)
}

// NewMemoryCacheWithOptions allows customizing shard count and janitor interval.
func NewMemoryCacheWithOptions[V any](shards int, sweepEvery time.Duration) *MemoryCache[V] {
	mc := &MemoryCache[V]{
		buckets: make([]*bucket[V], shards),
		quit:    make(chan struct{}),
	}
	for i := range mc.buckets {
		mc.buckets[i] = &bucket[V]{entries: make(map[string]entry[V])}
	}
	go mc.sweep(sweepEvery)
	return mc
}

// Stop terminates the janitor goroutine. Safe to call more than once.
func (mc *MemoryCache[V]) Stop() {
	mc.once.Do(func() { close(mc.quit) })
}

func (mc *MemoryCache[V]) bucketFor(key string) *bucket[V] {
	h := fnv.New32a()
	h.Write([]byte(key))
	return mc.buckets[int(h.Sum32())%len(mc.buckets)]
}

func (mc *MemoryCache[V]) Get(_ context.Context, key string) (V, error) {
	var zero V
	b := mc.bucketFor(key)

	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[key]
	if !ok {
		return zero, ErrCacheMiss
	}
	if e.expiresAt > 0 && time.Now().UnixNano() > e.expiresAt {
		delete(b.entries, key)
		return zero, ErrCacheMiss
	}
	return e.value, nil
}

func (mc *MemoryCache[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl).UnixNano()
	}

	b := mc.bucketFor(key)
	b.mu.Lock()
	b.entries[key] = entry[V]{value: value, expiresAt: expiresAt}
	b.mu.Unlock()
	return nil
}

func (mc *MemoryCache[V]) Delete(_ context.Context, key string) error {
	b := mc.bucketFor(key)
	b.mu.Lock()
	delete(b.entries, key)
	b.mu.Unlock()
	return nil
}

func (mc *MemoryCache[V]) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-mc.quit:
			return
		case <-ticker.C:
			now := time.Now().UnixNano()
			for _, b := range mc.buckets {
				b.mu.Lock()
				for k, e := range b.entries {
					if e.expiresAt > 0 && now > e.expiresAt {
						delete(b.entries, k)
					}
				}
				b.mu.Unlock()
			}
		}
	}
}
