package bot

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// replyLimiter throttles outbound replies per chat
type replyLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// newReplyLimiter allows perSecond replies per chat. A non-positive rate disables throttling.
func newReplyLimiter(perSecond float64) *replyLimiter {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &replyLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    1,
	}
}

// limiterFor returns the chat's limiter, creating it on first use
func (l *replyLimiter) limiterFor(chatID string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[chatID]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[chatID] = limiter
	}
	return limiter
}

// Wait blocks until the chat may send another reply
func (l *replyLimiter) Wait(ctx context.Context, chatID string) error {
	return l.limiterFor(chatID).Wait(ctx)
}
