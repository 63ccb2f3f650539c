// Package governor enforces a call budget against external, quota-limited
// resources such as model inference endpoints. It sits in addition to, not in
// place of, provider-side limits.
package governor

import (
	"fmt"
	"math"
	"sync"
	"time"

	"feedwatch/errors"
)

// Governor grants at most the effective budget of calls per sliding window.
// The effective budget subtracts a safety buffer fraction from the provider's
// advertised limit so bursts never graze the real quota. Acquire never
// blocks; callers that are denied skip the gated analyzer.
type Governor struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	stamps []time.Time
	now    func() time.Time
}

func New(providerLimit int, bufferFraction float64, window time.Duration) (*Governor, error) {
	if providerLimit <= 0 {
		return nil, fmt.Errorf("%w: provider limit must be positive, got %d", errors.ErrInvalidRateConfig, providerLimit)
	}
	if bufferFraction < 0 || bufferFraction >= 1 {
		return nil, fmt.Errorf("%w: buffer fraction must be in [0,1), got %g", errors.ErrInvalidRateConfig, bufferFraction)
	}
	if window <= 0 {
		return nil, fmt.Errorf("%w: window must be positive, got %s", errors.ErrInvalidRateConfig, window)
	}

	limit := providerLimit - int(math.Ceil(float64(providerLimit)*bufferFraction))
	if limit < 1 {
		limit = 1
	}
	return &Governor{
		limit:  limit,
		window: window,
		now:    time.Now,
	}, nil
}

// Limit returns the effective per-window budget.
func (g *Governor) Limit() int {
	return g.limit
}

// Acquire reserves one call slot. Safe under concurrent use; the window
// accounting is the single synchronized resource of a batch run.
func (g *Governor) Acquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.prune(now)
	if len(g.stamps) >= g.limit {
		return false
	}
	g.stamps = append(g.stamps, now)
	return true
}

// Remaining reports how many slots the current window still holds.
func (g *Governor) Remaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prune(g.now())
	return g.limit - len(g.stamps)
}

func (g *Governor) prune(now time.Time) {
	cutoff := now.Add(-g.window)
	kept := g.stamps[:0]
	for _, s := range g.stamps {
		if s.After(cutoff) {
			kept = append(kept, s)
		}
	}
	g.stamps = kept
}
