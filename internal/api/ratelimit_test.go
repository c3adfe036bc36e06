package api

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("anon_a") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("anon_a") {
		t.Error("request over the limit should be rejected")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(1, time.Minute)

	if !rl.Allow("anon_a") {
		t.Fatal("first request for anon_a should be allowed")
	}
	if !rl.Allow("anon_b") {
		t.Error("anon_b must not be throttled by anon_a's requests")
	}
	if rl.Allow("anon_a") {
		t.Error("anon_a should be throttled")
	}
}

func TestRateLimiterWindowSlides(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(1, 50*time.Millisecond)

	if !rl.Allow("anon_a") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("anon_a") {
		t.Fatal("second request inside the window should be rejected")
	}

	time.Sleep(60 * time.Millisecond)
	if !rl.Allow("anon_a") {
		t.Error("request after the window slides should be allowed")
	}
}
