package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kdx-labs/mintdeck/business/mint/domain"
)

// SaleClock owns the active tier view and the one-second countdown
// tick. At most one tick loop is live at any time: the loop is started
// when a resolvable view needs it and cancelled before any replacement,
// so a tier transition can never double-fire.
type SaleClock struct {
	notify   func(domain.ActiveTier, domain.Countdown)
	interval time.Duration
	now      func() time.Time

	mu         sync.Mutex
	tiers      []domain.Tier
	view       domain.ActiveTier
	countdown  domain.Countdown
	cancel     context.CancelFunc
	generation uint64
	stopped    bool

	running atomic.Int32
}

// NewSaleClock creates a clock that reports state changes through
// notify. The clock is idle until the first SetTiers call.
func NewSaleClock(notify func(domain.ActiveTier, domain.Countdown)) *SaleClock {
	return &SaleClock{
		notify:   notify,
		interval: time.Second,
		now:      time.Now,
	}
}

// SetTiers installs a new tier list and re-resolves immediately,
// independent of the tick.
func (c *SaleClock) SetTiers(tiers []domain.Tier) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.tiers = append([]domain.Tier(nil), tiers...)
	c.resolveLocked()
	view, countdown := c.view, c.countdown
	c.mu.Unlock()

	c.notify(view, countdown)
}

// Active returns the current view and countdown.
func (c *SaleClock) Active() (domain.ActiveTier, domain.Countdown) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view, c.countdown
}

// Stop cancels the tick loop permanently.
func (c *SaleClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	c.cancelLocked()
}

// resolveLocked recomputes the view from the tier list and manages the
// tick loop: a final sale needs no further resolution, everything else
// keeps exactly one loop alive.
func (c *SaleClock) resolveLocked() {
	now := c.now()
	c.view = domain.ResolveTier(c.tiers, now)
	c.countdown = domain.FormatCountdown(c.view.End, now)

	if c.view.Status == domain.SaleFinal {
		c.cancelLocked()
		return
	}
	c.ensureTickingLocked()
}

// ensureTickingLocked starts the tick loop if none is live.
func (c *SaleClock) ensureTickingLocked() {
	if c.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.generation++

	go c.run(ctx, c.generation)
}

// cancelLocked tears down the live tick loop, if any.
func (c *SaleClock) cancelLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *SaleClock) run(ctx context.Context, generation uint64) {
	c.running.Add(1)
	defer c.running.Add(-1)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.stopped || generation != c.generation {
				c.mu.Unlock()
				return
			}

			now := c.now()
			if now.After(c.view.End) {
				c.resolveLocked()
			} else {
				c.countdown = domain.FormatCountdown(c.view.End, now)
			}

			view, countdown := c.view, c.countdown
			halted := c.cancel == nil
			c.mu.Unlock()

			c.notify(view, countdown)

			if halted {
				return
			}
		}
	}
}
