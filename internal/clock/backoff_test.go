package clock

import (
	"testing"
	"time"
)

func TestBackoff(t *testing.T) {
	b := NewBackoff(100*time.Millisecond, 400*time.Millisecond)

	for i, want := range []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		400 * time.Millisecond,
	} {
		if got := b.Next(); got != want {
			t.Errorf("Next() call %d = %v, want %v", i, got, want)
		}
	}

	b.Reset()
	if got := b.Next(); got != 100*time.Millisecond {
		t.Errorf("after Reset, Next() = %v, want 100ms", got)
	}
}
