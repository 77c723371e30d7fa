package worker

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter throttles hash operations per volume root. Evidence trees often
// live on synced network drives; an unthrottled recheck can saturate the
// sync client's IO. Each top-level directory gets its own token bucket.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a limiter allowing opsPerSecond hash operations per
// volume. A non-positive rate disables limiting.
func NewLimiter(opsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	limit := rate.Limit(opsPerSecond)
	if opsPerSecond <= 0 {
		limit = rate.Inf
	}
	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  limit,
		defaultBurst: burst,
	}
}

// Wait blocks until the volume holding path has capacity
func (l *Limiter) Wait(ctx context.Context, path string) error {
	return l.getLimiter(volumeRoot(path)).Wait(ctx)
}

// Allow reports whether an operation on path may proceed without waiting
func (l *Limiter) Allow(path string) bool {
	return l.getLimiter(volumeRoot(path)).Allow()
}

func (l *Limiter) getLimiter(root string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[root]
	l.mu.RUnlock()
	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if limiter, exists := l.limiters[root]; exists {
		return limiter
	}
	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[root] = limiter
	return limiter
}

// volumeRoot returns the first path component, the bucket key for limiting
func volumeRoot(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	parts := strings.SplitN(strings.TrimPrefix(abs, string(filepath.Separator)), string(filepath.Separator), 2)
	return parts[0]
}
