package ncep

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRateLimiterSpacesRequests(t *testing.T) {
	limiter := NewRateLimiter(20)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := limiter.WaitTurn(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if elapsed := time.Since(start); elapsed < 90*time.Millisecond {
		t.Fatalf("elapsed=%s", elapsed)
	}
}

func TestRateLimiterHonoursCancel(t *testing.T) {
	limiter := NewRateLimiter(1)
	if err := limiter.WaitTurn(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := limiter.WaitTurn(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v", err)
	}
}
