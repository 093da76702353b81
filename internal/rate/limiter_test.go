package rate

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, perMinute int) *Limiter {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLimiter(NewRedisWindowStore(client), perMinute)
}

func TestAllowOrderWithinLimit(t *testing.T) {
	l := newTestLimiter(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		retryAfter, allowed, err := l.AllowOrder(ctx, "10.0.0.1")
		if err != nil {
			t.Fatalf("attempt %d: %v", i+1, err)
		}
		if !allowed {
			t.Fatalf("attempt %d blocked, retry after %d", i+1, retryAfter)
		}
	}
}

func TestAllowOrderBlocksOverLimit(t *testing.T) {
	l := newTestLimiter(t, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, allowed, _ := l.AllowOrder(ctx, "10.0.0.1"); !allowed {
			t.Fatalf("attempt %d blocked prematurely", i+1)
		}
	}

	retryAfter, allowed, err := l.AllowOrder(ctx, "10.0.0.1")
	if err != nil {
		t.Fatal(err)
	}
	if allowed {
		t.Fatal("third attempt allowed over limit")
	}
	if retryAfter < 1 {
		t.Fatalf("retry_after = %d, want >= 1", retryAfter)
	}
}

func TestAllowOrderIsolatesClients(t *testing.T) {
	l := newTestLimiter(t, 1)
	ctx := context.Background()

	if _, allowed, _ := l.AllowOrder(ctx, "10.0.0.1"); !allowed {
		t.Fatal("first client blocked")
	}
	if _, allowed, _ := l.AllowOrder(ctx, "10.0.0.2"); !allowed {
		t.Fatal("second client throttled by first client's window")
	}
}

func TestAllowOrderZeroLimitDisables(t *testing.T) {
	l := newTestLimiter(t, 0)

	if _, allowed, err := l.AllowOrder(context.Background(), "10.0.0.1"); err != nil || !allowed {
		t.Fatalf("zero limit should disable throttling: allowed=%v err=%v", allowed, err)
	}
}

func TestAllowOrderRejectsEmptyKey(t *testing.T) {
	l := newTestLimiter(t, 5)

	if _, _, err := l.AllowOrder(context.Background(), ""); err == nil {
		t.Fatal("empty client key accepted")
	}
}
