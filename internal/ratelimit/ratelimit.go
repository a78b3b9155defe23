// Package ratelimit limits how often a caller identified by a key may act.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(key string) bool
}

// Memory is a per-key token bucket kept in process memory. It suits a
// single instance; deployments with several instances need a shared store
// behind the same interface.
type Memory struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	ttl     time.Duration
	now     func() time.Time
	buckets map[string]*bucket
	sweptAt time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewMemory allows perSecond events per key with bursts of up to burst.
// Keys idle for longer than ttl are forgotten.
func NewMemory(perSecond float64, burst int, ttl time.Duration) *Memory {
	return &Memory{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		ttl:     ttl,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

func (m *Memory) Allow(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)

	b, ok := m.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.buckets[key] = b
	}

	b.lastSeen = now

	return b.limiter.AllowN(now, 1)
}

// Len returns the number of tracked keys.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.buckets)
}

func (m *Memory) sweep(now time.Time) {
	if m.ttl <= 0 || now.Sub(m.sweptAt) < m.ttl {
		return
	}

	for key, b := range m.buckets {
		if now.Sub(b.lastSeen) > m.ttl {
			delete(m.buckets, key)
		}
	}

	m.sweptAt = now
}
