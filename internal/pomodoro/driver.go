package pomodoro

import (
	"context"
	"time"
)

// Ticker is a cancellable source of ticks.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewTicker wraps time.Ticker.
func NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// Driver owns the single tick source of a clock while it runs.
type Driver struct {
	clock     *Clock
	interval  time.Duration
	newTicker func(time.Duration) Ticker

	// OnTick, when set, is called after each tick that leaves the phase
	// running. The tick that ends the phase is reported by Run instead.
	OnTick func(State)
}

func NewDriver(c *Clock) *Driver {
	return &Driver{clock: c, interval: time.Second, newTicker: NewTicker}
}

// WithInterval changes the tick period. Non-positive values are ignored.
func (d *Driver) WithInterval(interval time.Duration) *Driver {
	if interval > 0 {
		d.interval = interval
	}
	return d
}

// Run starts the clock and ticks it once per interval until the phase ends
// or ctx is cancelled. The ticker is stopped on every exit path, and the
// clock is paused if ctx ends first.
func (d *Driver) Run(ctx context.Context) (Transition, error) {
	d.clock.Start()
	t := d.newTicker(d.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			d.clock.Pause()
			return Transition{}, ctx.Err()
		case <-t.C():
			tr, crossed := d.clock.Tick()
			if crossed {
				return tr, nil
			}
			if d.OnTick != nil {
				d.OnTick(d.clock.State())
			}
		}
	}
}
