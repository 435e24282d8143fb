package clock

import (
	"testing"
	"time"
)

func TestFake_AdvanceAndSet(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f := NewFake(start)

	if got := f.Now(); !got.Equal(start) {
		t.Fatalf("Now() = %v, want %v", got, start)
	}

	f.Advance(5*time.Minute + time.Second)
	if got := f.Now().Sub(start); got != 5*time.Minute+time.Second {
		t.Fatalf("elapsed = %v, want 5m1s", got)
	}

	later := start.Add(time.Hour)
	f.Set(later)
	if got := f.Now(); !got.Equal(later) {
		t.Fatalf("Now() after Set = %v, want %v", got, later)
	}
}

func TestSystem_IsCloseToTimeNow(t *testing.T) {
	got := System{}.Now()
	if d := time.Since(got); d < 0 || d > time.Second {
		t.Fatalf("System.Now drifted by %v", d)
	}
}
