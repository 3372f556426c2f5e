// Package pomodoro implements the focus/break countdown. The clock itself is
// a plain state machine advanced by Tick; something else owns the ticking.
package pomodoro

import "fmt"

// Default phase lengths in seconds.
const (
	FocusDuration = 25 * 60
	BreakDuration = 5 * 60
)

type Phase int

const (
	Focus Phase = iota
	Break
)

func (p Phase) String() string {
	switch p {
	case Focus:
		return "FOCUS"
	case Break:
		return "BREAK"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Key is the lower-case name used when recording finished phases.
func (p Phase) Key() string {
	switch p {
	case Focus:
		return "focus"
	case Break:
		return "break"
	default:
		return fmt.Sprintf("phase%d", int(p))
	}
}

// Next returns the phase that follows p.
func (p Phase) Next() Phase {
	if p == Focus {
		return Break
	}
	return Focus
}

type State struct {
	Phase     Phase
	Remaining int // seconds
	Running   bool
}

// Transition describes a phase boundary crossed by a tick.
type Transition struct {
	From Phase
	To   Phase
	// Completed is the length in seconds of the phase that just ended.
	Completed int
}

type Clock struct {
	state         State
	focusDuration int
	breakDuration int
}

// NewClock builds a stopped clock at the start of a focus phase. Non-positive
// durations fall back to the defaults.
func NewClock(focusSecs, breakSecs int) *Clock {
	if focusSecs <= 0 {
		focusSecs = FocusDuration
	}
	if breakSecs <= 0 {
		breakSecs = BreakDuration
	}
	c := &Clock{focusDuration: focusSecs, breakDuration: breakSecs}
	c.Reset()
	return c
}

// NewDefaultClock uses the 25/5 minute split.
func NewDefaultClock() *Clock {
	return NewClock(FocusDuration, BreakDuration)
}

func (c *Clock) State() State       { return c.state }
func (c *Clock) Phase() Phase       { return c.state.Phase }
func (c *Clock) Remaining() int     { return c.state.Remaining }
func (c *Clock) Running() bool      { return c.state.Running }
func (c *Clock) FocusDuration() int { return c.focusDuration }
func (c *Clock) BreakDuration() int { return c.breakDuration }

// Duration returns the configured length of p in seconds.
func (c *Clock) Duration(p Phase) int {
	if p == Break {
		return c.breakDuration
	}
	return c.focusDuration
}

// Start resumes counting. It reports false if the clock was already running.
func (c *Clock) Start() bool {
	if c.state.Running {
		return false
	}
	c.state.Running = true
	return true
}

func (c *Clock) Pause() {
	c.state.Running = false
}

func (c *Clock) Reset() {
	c.state = State{Phase: Focus, Remaining: c.focusDuration, Running: false}
}

// Toggle starts a stopped clock and pauses a running one.
func (c *Clock) Toggle() {
	if c.state.Running {
		c.Pause()
		return
	}
	c.Start()
}

// Tick advances a running clock by one second. The tick that brings the
// countdown to zero, or arrives while it is already zero, flips the phase,
// loads the new phase's duration and stops the clock. Ticks on a stopped
// clock are ignored.
func (c *Clock) Tick() (Transition, bool) {
	if !c.state.Running {
		return Transition{}, false
	}
	if c.state.Remaining > 0 {
		c.state.Remaining--
	}
	if c.state.Remaining > 0 {
		return Transition{}, false
	}

	from := c.state.Phase
	to := from.Next()
	c.state = State{Phase: to, Remaining: c.Duration(to), Running: false}
	return Transition{From: from, To: to, Completed: c.Duration(from)}, true
}

// Format renders seconds as zero-padded MM:SS. Negative input shows 00:00.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Progress is the fraction of the current phase already elapsed, in [0, 1].
func (c *Clock) Progress() float64 {
	total := c.Duration(c.state.Phase)
	if total <= 0 {
		return 0
	}
	return float64(total-c.state.Remaining) / float64(total)
}
