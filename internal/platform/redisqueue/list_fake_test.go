package redisqueue

import (
	"context"
	"sync"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// memoryLists backs the list commands the queue and consumer use. Like a
// real connection, commands fail once their context is done.
type memoryLists struct {
	redis.Cmdable

	mu    sync.Mutex
	lists map[string][]string
}

func newMemoryLists() *memoryLists {
	return &memoryLists{lists: make(map[string][]string)}
}

func (m *memoryLists) LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	if err := ctx.Err(); err != nil {
		return redis.NewIntResult(0, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range values {
		var s string
		switch val := v.(type) {
		case []byte:
			s = string(val)
		case string:
			s = val
		}
		m.lists[key] = append([]string{s}, m.lists[key]...)
	}
	return redis.NewIntResult(int64(len(m.lists[key])), nil)
}

func (m *memoryLists) BRPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd {
	deadline := time.Now().Add(timeout)
	for {
		if err := ctx.Err(); err != nil {
			return redis.NewStringSliceResult(nil, err)
		}
		if key, val, ok := m.popRight(keys); ok {
			return redis.NewStringSliceResult([]string{key, val}, nil)
		}
		if time.Now().After(deadline) {
			return redis.NewStringSliceResult(nil, redis.Nil)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func (m *memoryLists) popRight(keys []string) (string, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		if l := m.lists[key]; len(l) > 0 {
			m.lists[key] = l[:len(l)-1]
			return key, l[len(l)-1], true
		}
	}
	return "", "", false
}

func (m *memoryLists) items(key string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.lists[key]...)
}
