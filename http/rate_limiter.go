package http

import (
	"sync"
	"time"
)

const (
	idleBucketTTL       = 1 * time.Hour
	bucketSweepInterval = 30 * time.Minute
)

type bucket struct {
	remaining   int
	windowStart time.Time
	lastSeen    time.Time
}

// RateLimiter gives every client a fixed number of requests per window. The
// window restarts on the first request after the previous one expired.
type RateLimiter struct {
	mu       sync.Mutex
	capacity int
	window   time.Duration
	buckets  map[string]*bucket
	now      func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		capacity: capacity,
		window:   window,
		buckets:  make(map[string]*bucket),
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(bucketSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.done:
			return
		}
	}
}

// cleanup forgets clients idle for longer than idleBucketTTL.
func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for client, b := range rl.buckets {
		if now.Sub(b.lastSeen) > idleBucketTTL {
			delete(rl.buckets, client)
		}
	}
}

// Stop ends the sweeper goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

// Allow consumes one request for client. When none is left it reports false
// and how long until the client's window restarts.
func (rl *RateLimiter) Allow(client string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[client]
	if !ok || now.Sub(b.windowStart) >= rl.window {
		if !ok {
			b = &bucket{}
			rl.buckets[client] = b
		}
		b.remaining = rl.capacity
		b.windowStart = now
	}
	b.lastSeen = now

	if b.remaining <= 0 {
		return false, b.windowStart.Add(rl.window).Sub(now)
	}
	b.remaining--
	return true, 0
}

func (rl *RateLimiter) clientCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}
