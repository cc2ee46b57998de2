package jitter

import (
	"testing"
	"time"
)

func TestExponentialBackoffBounds(t *testing.T) {
	base, max := 100*time.Millisecond, time.Second

	for attempt := 0; attempt < 10; attempt++ {
		got := ExponentialBackoff(base, max, attempt, DefaultJitter)

		want := base << attempt
		if want > max || want <= 0 {
			want = max
		}
		upper := want + time.Duration(float64(want)*DefaultJitter)

		if got < want || got > upper {
			t.Fatalf("attempt %d: want in [%v, %v], got %v", attempt, want, upper, got)
		}
	}
}

func TestDurationWithoutJitter(t *testing.T) {
	if got := Duration(time.Second, 0); got != time.Second {
		t.Fatalf("want 1s, got %v", got)
	}
}

func TestSleepStopsOnDone(t *testing.T) {
	done := make(chan struct{})
	close(done)

	if Sleep(done, time.Hour) {
		t.Fatal("want false on closed done channel")
	}
}
