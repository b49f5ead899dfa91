// Package timer provides the delay and sound timers. Both
// timers count down towards zero once per tick, saturating
// at zero. How often a tick occurs depends on the Mode of the
// Controller.
package timer

import (
	"time"

	"github.com/thelolagemann/gochip8/internal/types"
)

// Rate is the real-time period of a single timer tick.
const Rate = time.Second / 60

// Mode determines what drives the timers.
type Mode uint8

const (
	// PerStep ticks both timers once for every executed instruction.
	PerStep Mode = iota
	// Decoupled never ticks the timers on instruction execution,
	// the host is expected to call Tick every Rate instead.
	Decoupled
)

func (m Mode) String() string {
	switch m {
	case PerStep:
		return "step"
	case Decoupled:
		return "decoupled"
	}
	return "unknown"
}

// Controller holds the delay and sound timers.
type Controller struct {
	delay uint8
	sound uint8

	mode Mode
}

// NewController returns a new timer controller.
func NewController(mode Mode) *Controller {
	return &Controller{mode: mode}
}

// Tick decrements both timers, saturating at zero.
func (c *Controller) Tick() {
	if c.delay > 0 {
		c.delay--
	}
	if c.sound > 0 {
		c.sound--
	}
}

// Cycle is called once for every executed instruction, and
// ticks the timers when running in PerStep mode.
func (c *Controller) Cycle() {
	if c.mode == PerStep {
		c.Tick()
	}
}

func (c *Controller) Delay() uint8 { return c.delay }
func (c *Controller) Sound() uint8 { return c.sound }

func (c *Controller) SetDelay(v uint8) { c.delay = v }
func (c *Controller) SetSound(v uint8) { c.sound = v }

// SoundActive reports whether the sound timer is exactly 1,
// i.e. it is about to expire on the next tick.
func (c *Controller) SoundActive() bool {
	return c.sound == 1
}

// Mode returns the current Mode of the controller.
func (c *Controller) Mode() Mode {
	return c.mode
}

// SetMode changes the Mode of the controller.
func (c *Controller) SetMode(mode Mode) {
	c.mode = mode
}

// Reset zeroes both timers. The mode is left unchanged.
func (c *Controller) Reset() {
	c.delay = 0
	c.sound = 0
}

var _ types.Stater = (*Controller)(nil)

// Load loads the state of the controller.
func (c *Controller) Load(s *types.State) {
	c.delay = s.Read8()
	c.sound = s.Read8()
}

// Save saves the state of the controller.
func (c *Controller) Save(s *types.State) {
	s.Write8(c.delay)
	s.Write8(c.sound)
}
