package ratelimit

import (
	"testing"
	"time"
)

func TestLimiter_UnlimitedNeverWaits(t *testing.T) {
	l := New(Unlimited)
	if wait := l.Acquire(10 << 20); wait != 0 {
		t.Errorf("Acquire() on unlimited limiter returned wait %v, want 0", wait)
	}
}

func TestLimiter_ChildBoundedByParent(t *testing.T) {
	parent := New(100)
	child := parent.Child(1000)

	// Child's own budget is far larger than parent's, so the parent's
	// remaining budget is the binding constraint.
	if wait := child.Acquire(100); wait != 0 {
		t.Errorf("first Acquire() wait = %v, want 0 (budget available)", wait)
	}
	if wait := child.Acquire(100); wait <= 0 {
		t.Errorf("second Acquire() wait = %v, want > 0 (parent exhausted)", wait)
	}
}

func TestTighten(t *testing.T) {
	tests := []struct {
		name        string
		limit       int64
		other       int64
		wantResult  int64
		description string
	}{
		{"unlimited limit takes other", Unlimited, 500, 500, "unlimited sentinel never tightens"},
		{"unlimited other keeps limit", 500, Unlimited, 500, "unlimited sentinel never tightens"},
		{"smaller other wins", 1000, 500, 500, "smaller number wins"},
		{"smaller limit kept", 500, 1000, 500, "smaller number wins"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Tighten(tc.limit, tc.other); got != tc.wantResult {
				t.Errorf("Tighten(%d, %d) = %d, want %d (%s)", tc.limit, tc.other, got, tc.wantResult, tc.description)
			}
		})
	}
}

func TestLimiter_Refill(t *testing.T) {
	l := New(1000)
	l.Acquire(1000)
	if wait := l.Acquire(1); wait <= 0 {
		t.Fatalf("expected to be rate limited after exhausting bucket")
	}
	time.Sleep(5 * time.Millisecond)
	if wait := l.Acquire(1); wait != 0 {
		t.Fatalf("Acquire(1) after refill wait = %v, want 0", wait)
	}
	l.SetLimit(1000)
}
