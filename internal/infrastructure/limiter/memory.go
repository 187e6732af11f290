// Package limiter holds the in-process login limiter used when no shared
// store is configured.
package limiter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/sirpyerre/pantry-api/internal/core/ports"
)

// Memory keeps a token bucket per key. Every failed login spends a token; the
// bucket refills at maxAttempts per window. Buckets that have refilled carry no
// state and are swept at most once per window, so the map only holds keys that
// failed recently.
type Memory struct {
	mu          sync.Mutex
	buckets     map[string]*rate.Limiter
	maxAttempts int
	every       rate.Limit
	window      time.Duration
	lastSweep   time.Time
	now         func() time.Time
}

var _ ports.LoginLimiter = (*Memory)(nil)

func NewMemory(maxAttempts int, window time.Duration) *Memory {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &Memory{
		buckets:     make(map[string]*rate.Limiter),
		maxAttempts: maxAttempts,
		every:       rate.Every(window / time.Duration(maxAttempts)),
		window:      window,
		now:         time.Now,
	}
}

func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.buckets[key]
	if !ok {
		return true, nil
	}
	return b.TokensAt(m.now()) >= 1, nil
}

func (m *Memory) Fail(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)

	b, ok := m.buckets[key]
	if !ok {
		b = rate.NewLimiter(m.every, m.maxAttempts)
		m.buckets[key] = b
	}
	b.AllowN(now, 1)
	return nil
}

func (m *Memory) Reset(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.buckets, key)
	return nil
}

// sweep drops full buckets. Callers hold mu.
func (m *Memory) sweep(now time.Time) {
	if now.Sub(m.lastSweep) < m.window {
		return
	}
	m.lastSweep = now

	full := float64(m.maxAttempts)
	for key, b := range m.buckets {
		if b.TokensAt(now) >= full {
			delete(m.buckets, key)
		}
	}
}
