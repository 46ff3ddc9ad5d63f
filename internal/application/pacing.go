package application

import (
	"context"
	"math/rand/v2"
	"time"
)

// pace is a human-like pause range between two portal interactions.
type pace struct {
	min, max time.Duration
}

var (
	paceAfterAction = pace{1 * time.Second, 2 * time.Second}
	paceAfterPhone  = pace{2 * time.Second, 5 * time.Second}
	paceBeforeForm  = pace{1500 * time.Millisecond, 3 * time.Second}
	paceBeforeSave  = pace{1 * time.Second, 2500 * time.Millisecond}
	paceAfterSave   = pace{3 * time.Second, 5 * time.Second}
	paceAfterTools  = pace{150 * time.Millisecond, 400 * time.Millisecond}
)

// duration draws a random duration in [min, max).
func (p pace) duration() time.Duration {
	if p.max <= p.min {
		return p.min
	}
	return p.min + rand.N(p.max-p.min)
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
