package ratelimit

import "testing"

func TestAllow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		calls    int
		wantPass int
	}{
		{name: "burst allows initial requests", rps: 1, burst: 3, calls: 3, wantPass: 3},
		{name: "exceeding burst blocks", rps: 1, burst: 2, calls: 5, wantPass: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := New(tt.rps, tt.burst)

			passed := 0
			for i := 0; i < tt.calls; i++ {
				if rl.Allow("10.0.0.1") {
					passed++
				}
			}
			if passed != tt.wantPass {
				t.Errorf("Allow() passed %d, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeysIndependent(t *testing.T) {
	rl := New(1, 1)

	if !rl.Allow("a") {
		t.Fatal("first request for key a should pass")
	}
	if rl.Allow("a") {
		t.Error("second request for key a should be limited")
	}
	if !rl.Allow("b") {
		t.Error("first request for key b should pass")
	}
}
