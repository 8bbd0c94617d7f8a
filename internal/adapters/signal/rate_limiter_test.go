package signal

import "testing"

func TestRateLimiterPerConnection(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("burst not honored")
	}
	if rl.Allow("a") {
		t.Error("third request within burst window allowed")
	}
	if !rl.Allow("b") {
		t.Error("other connection throttled by a's bucket")
	}
	if rl.Tracked() != 2 {
		t.Errorf("Tracked = %d, want 2", rl.Tracked())
	}

	rl.Forget("a")
	if rl.Tracked() != 1 {
		t.Errorf("Tracked after Forget = %d, want 1", rl.Tracked())
	}
	if !rl.Allow("a") {
		t.Error("forgotten connection starts with an empty bucket")
	}
}

func TestNilRateLimiterAllows(t *testing.T) {
	var rl *RateLimiter
	if !rl.Allow("a") {
		t.Error("nil limiter rejected")
	}
	rl.Forget("a")
}
