package http

import (
	"testing"
	"time"
)

func TestRateLimiter_Exhaustion(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	if !rl.Allow("1.2.3.4") || !rl.Allow("1.2.3.4") {
		t.Fatal("first two requests should pass")
	}
	if rl.Allow("1.2.3.4") {
		t.Error("third request within the window should be denied")
	}

	// Other clients have their own bucket.
	if !rl.Allow("5.6.7.8") {
		t.Error("a fresh client should pass")
	}
}

func TestRateLimiter_ContinuousRefill(t *testing.T) {
	rl := NewRateLimiter(2, 40*time.Millisecond)
	defer rl.Stop()

	rl.Allow("1.2.3.4")
	rl.Allow("1.2.3.4")
	if rl.Allow("1.2.3.4") {
		t.Fatal("bucket should be empty")
	}

	// A full window restores the whole quota.
	time.Sleep(50 * time.Millisecond)
	if !rl.Allow("1.2.3.4") || !rl.Allow("1.2.3.4") {
		t.Error("quota should be restored after a full window")
	}
}
