package widget

import (
	"fmt"
	"time"
)

// Countdown is the runtime state of the countdown widget. The preset lives in
// the configuration; the remaining time and run state live here and are
// lost when the display exits.
type Countdown struct {
	remaining time.Duration
	running   bool
	expired   bool
}

// Remaining is the time left on the clock.
func (c *Countdown) Remaining() time.Duration { return c.remaining }

// Running reports whether the countdown is ticking.
func (c *Countdown) Running() bool { return c.running }

// Finished reports whether the last run reached zero.
func (c *Countdown) Finished() bool { return c.expired && !c.running && c.remaining == 0 }

// Idle reports whether the countdown is stopped at zero and waiting for a
// preset.
func (c *Countdown) Idle() bool { return c.remaining == 0 && !c.running }

// Set stops the countdown and loads d.
func (c *Countdown) Set(d time.Duration) {
	c.running = false
	c.expired = false
	c.remaining = max(d, 0)
}

// Start resumes the countdown. From zero it loads preset first. It returns
// false when there is nothing to count down.
func (c *Countdown) Start(preset time.Duration) bool {
	if c.remaining == 0 {
		c.remaining = max(preset, 0)
	}
	if c.remaining == 0 {
		return false
	}
	c.running = true
	c.expired = false
	return true
}

// Pause stops the countdown without clearing it.
func (c *Countdown) Pause() { c.running = false }

// Toggle starts a stopped countdown or pauses a running one.
func (c *Countdown) Toggle(preset time.Duration) bool {
	if c.running {
		c.Pause()
		return false
	}
	return c.Start(preset)
}

// Reset stops the countdown at zero.
func (c *Countdown) Reset() {
	c.running = false
	c.expired = false
	c.remaining = 0
}

// Tick advances a running countdown by elapsed and reports whether it
// reached zero on this tick.
func (c *Countdown) Tick(elapsed time.Duration) bool {
	if !c.running || elapsed <= 0 {
		return false
	}
	if elapsed < c.remaining {
		c.remaining -= elapsed
		return false
	}
	c.remaining = 0
	c.running = false
	c.expired = true
	return true
}

// FormatRemaining renders d as MM:SS, rounding partial seconds up so a
// running countdown never shows 00:00 early.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// FormatCompact renders d as 4m05s style text.
func FormatCompact(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%dm%02ds", secs/60, secs%60)
}
