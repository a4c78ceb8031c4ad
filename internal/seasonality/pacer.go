package seasonality

import (
	"context"
	"sync"
	"time"
)

// Pacer spaces warehouse requests at a fixed interval so the sync loop
// never bursts the tabular warehouse, retries included. Slots are handed
// out in call order.
type Pacer struct {
	mu            sync.Mutex
	nextAllowedAt time.Time
	interval      time.Duration
}

func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	return &Pacer{interval: interval}
}

// Wait blocks until the caller's slot comes up, or until ctx is done.
// A cancelled wait gives the slot back to nobody; the schedule simply
// moves on.
func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	now := time.Now()
	scheduled := now
	if p.nextAllowedAt.After(now) {
		scheduled = p.nextAllowedAt
	}
	p.nextAllowedAt = scheduled.Add(p.interval)
	p.mu.Unlock()

	sleep := time.Until(scheduled)
	if sleep <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(sleep)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
