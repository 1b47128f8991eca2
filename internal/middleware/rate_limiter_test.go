package middleware

import (
	"testing"
	"time"
)

func TestIPRateLimiterEnforcesBurst(t *testing.T) {
	limiter := NewIPRateLimiter(1, time.Hour, 2, time.Hour)

	if !limiter.Allow("10.0.0.1") {
		t.Fatal("first request should pass")
	}
	if !limiter.Allow("10.0.0.1") {
		t.Fatal("second request should fit in the burst")
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatal("third request should be rejected")
	}
	if !limiter.Allow("10.0.0.2") {
		t.Fatal("other keys keep their own budget")
	}
}

func TestIPRateLimiterEvictsIdleKeys(t *testing.T) {
	raw := NewIPRateLimiter(1, time.Hour, 1, time.Minute)
	limiter, ok := raw.(*ipRateLimiter)
	if !ok {
		t.Fatalf("unexpected limiter type %T", raw)
	}

	current := time.Now()
	limiter.WithNowFunc(func() time.Time { return current })

	if !limiter.Allow("10.0.0.1") {
		t.Fatal("first request should pass")
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatal("budget should be exhausted")
	}

	// Past the idle ttl the key is dropped and its bucket refilled.
	current = current.Add(2 * time.Minute)
	if !limiter.Allow("10.0.0.1") {
		t.Fatal("evicted key should start fresh")
	}
	if _, ok := limiter.clients["10.0.0.2"]; ok {
		t.Fatal("unseen key should not exist")
	}
}
