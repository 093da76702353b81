package rate

import (
	"context"
	"fmt"
	"time"
)

const orderWindow = time.Minute

// WindowStore counts events in fixed expiring windows.
type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Limiter throttles order creation per client. Purchases are anonymous, so
// the client IP is the only stable key available.
type Limiter struct {
	store     WindowStore
	perMinute int
}

func NewLimiter(store WindowStore, perMinute int) *Limiter {
	if perMinute < 0 {
		perMinute = 0
	}
	return &Limiter{store: store, perMinute: perMinute}
}

// AllowOrder reports whether another create-order attempt is allowed for the
// client, and if not, how long to wait.
func (l *Limiter) AllowOrder(ctx context.Context, clientIP string) (int64, bool, error) {
	if clientIP == "" {
		return 0, false, fmt.Errorf("empty client key")
	}
	if l.store == nil {
		return 0, false, fmt.Errorf("rate limiter store is nil")
	}
	if l.perMinute == 0 {
		return 0, true, nil
	}

	count, ttl, err := l.store.IncrementWindow(ctx, minuteKey(clientIP), orderWindow)
	if err != nil {
		return 0, false, err
	}
	if count > int64(l.perMinute) {
		return ceilSeconds(ttl), false, nil
	}
	return 0, true, nil
}

func minuteKey(clientIP string) string {
	return "rate:order:min:" + clientIP
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 1
	}
	secs := int64(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	if secs < 1 {
		secs = 1
	}
	return secs
}
