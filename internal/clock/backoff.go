package clock

import "time"

// Backoff doubles from min up to max on each Next call. Reset restores the
// starting delay. Not safe for concurrent use.
type Backoff struct {
	min, max time.Duration
	next     time.Duration
}

// NewBackoff builds a Backoff over [min, max].
func NewBackoff(min, max time.Duration) *Backoff {
	return &Backoff{min: min, max: max, next: min}
}

// Next returns the current delay and advances.
func (b *Backoff) Next() time.Duration {
	d := b.next
	b.next *= 2
	if b.next > b.max {
		b.next = b.max
	}
	return d
}

// Reset restores the starting delay.
func (b *Backoff) Reset() {
	b.next = b.min
}
