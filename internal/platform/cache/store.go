package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is a process-local TTL cache for computed read models such as
// standings tables. Concurrent misses on one key share a single load.
//
// Every invalidation bumps a generation. A load that started under an older
// generation returns its value to the caller but does not store it.
type Store struct {
	mu         sync.RWMutex
	entries    map[string]entry
	generation uint64
	marks      map[string]int64
	ttl        time.Duration
	now        func() time.Time
	flight     singleflight.Group
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		marks:   make(map[string]int64),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Key joins parts into a cache key, e.g. Key("standings", 4, "Norte").
func Key(parts ...any) string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, fmt.Sprint(part))
	}
	return strings.Join(out, ":")
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if s == nil || key == "" {
		return nil, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && !e.expiresAt.After(s.now()) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if s == nil || key == "" {
		return
	}

	s.mu.Lock()
	s.entries[key] = s.newEntry(value)
	s.mu.Unlock()
}

// setIfCurrent stores value only when no invalidation happened since
// generation was read.
func (s *Store) setIfCurrent(key string, value any, generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		return false
	}
	s.entries[key] = s.newEntry(value)
	return true
}

func (s *Store) newEntry(value any) entry {
	e := entry{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	return e
}

func (s *Store) DeletePrefix(_ context.Context, prefix string) int {
	if s == nil || prefix == "" {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deletePrefixLocked(prefix)
}

func (s *Store) deletePrefixLocked(prefix string) int {
	s.generation++
	removed := 0
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Advance records mark as the data version behind prefix and drops the
// prefix when it differs from the previously recorded mark. Processes that
// share a database use it to notice writes made elsewhere.
func (s *Store) Advance(_ context.Context, prefix string, mark int64) (int, bool) {
	if s == nil || prefix == "" {
		return 0, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if last, ok := s.marks[prefix]; ok && last == mark {
		return 0, false
	}
	s.marks[prefix] = mark
	return s.deletePrefixLocked(prefix), true
}

func (s *Store) currentGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) getOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	generation := s.currentGeneration()
	flightKey := key + "#" + strconv.FormatUint(generation, 10)
	value, err, _ := s.flight.Do(flightKey, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.setIfCurrent(key, loaded, generation)
		return loaded, nil
	})
	return value, err
}

// GetOrLoad returns the cached value for key or runs loader once. A nil store
// or empty key bypasses caching.
func GetOrLoad[T any](ctx context.Context, s *Store, key string, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if s == nil || key == "" {
		return loader(ctx)
	}

	value, err := s.getOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("cache key %q holds %T", key, value)
	}
	return typed, nil
}
