package ratelimiter

import (
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// FixedWindowLimiter counts requests per key inside aligned windows of
// length window. Expired entries are dropped lazily on access.
type FixedWindowLimiter struct {
	sync.Mutex
	clients map[string]*window
	limit   int
	window  time.Duration
	now     func() time.Time
}

func NewFixedWindowLimiter(limit int, windowLen time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		window:  windowLen,
		now:     time.Now,
	}
}

// Allow reports whether key may proceed and, when it may not, how long
// until its window resets.
func (l *FixedWindowLimiter) Allow(key string) (bool, time.Duration) {
	l.Lock()
	defer l.Unlock()

	now := l.now()

	w, ok := l.clients[key]
	if !ok || !now.Before(w.resetAt) {
		l.evictExpired(now)
		l.clients[key] = &window{count: 1, resetAt: now.Add(l.window)}
		return true, 0
	}

	if w.count < l.limit {
		w.count++
		return true, 0
	}

	return false, w.resetAt.Sub(now)
}

func (l *FixedWindowLimiter) evictExpired(now time.Time) {
	for key, w := range l.clients {
		if !now.Before(w.resetAt) {
			delete(l.clients, key)
		}
	}
}
