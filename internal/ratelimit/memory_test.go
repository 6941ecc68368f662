package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiter_EnforcesLimitWithinWindow(t *testing.T) {
	limiter := NewMemoryLimiter(time.Minute)
	now := time.Unix(1700000000, 0)

	for i := 0; i < 3; i++ {
		res, err := limiter.Allow(context.Background(), "ip:1.2.3.4", 3, now)
		if err != nil {
			t.Fatalf("allow: %v", err)
		}
		if !res.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	res, err := limiter.Allow(context.Background(), "ip:1.2.3.4", 3, now.Add(time.Second))
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if res.Allowed {
		t.Fatalf("expected fourth request in window to be denied")
	}
}

func TestMemoryLimiter_ResetsNextWindow(t *testing.T) {
	limiter := NewMemoryLimiter(time.Minute)
	now := time.Unix(1700000000, 0)

	if _, err := limiter.Allow(context.Background(), "ip:1.2.3.4", 1, now); err != nil {
		t.Fatalf("allow: %v", err)
	}
	res, err := limiter.Allow(context.Background(), "ip:1.2.3.4", 1, now.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !res.Allowed {
		t.Fatalf("expected request in next window to be allowed")
	}
}

func TestMemoryLimiter_ZeroLimitAllowsEverything(t *testing.T) {
	limiter := NewMemoryLimiter(time.Minute)
	res, err := limiter.Allow(context.Background(), "ip:1.2.3.4", 0, time.Now())
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !res.Allowed {
		t.Fatalf("expected zero limit to disable limiting")
	}
}

func TestKeyForIP(t *testing.T) {
	if got := KeyForIP(""); got != "" {
		t.Fatalf("expected empty key for empty ip, got %q", got)
	}
	if got := KeyForIP("1.2.3.4"); got != "ip:1.2.3.4" {
		t.Fatalf("unexpected key %q", got)
	}
}
