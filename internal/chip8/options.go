package chip8

import (
	"github.com/thelolagemann/gochip8/internal/cpu"
	"github.com/thelolagemann/gochip8/internal/framebuffer"
	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/timer"
	"github.com/thelolagemann/gochip8/pkg/log"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

// Opt is a function that modifies a VM instance.
type Opt func(v *VM)

// Debug logs every executed instruction at debug level.
func Debug() Opt {
	return func(v *VM) {
		v.CPU.Debug = true
	}
}

func WithLogger(log log.Logger) Opt {
	return func(v *VM) {
		v.Logger = log
	}
}

// WithQuirks sets the behaviour of instructions that differ
// between interpreters.
func WithQuirks(q cpu.Quirks) Opt {
	return func(v *VM) {
		v.CPU.Quirks = q
	}
}

// WithWrapMode sets how sprites wrap around the edges of the
// framebuffer.
func WithWrapMode(wrap framebuffer.WrapMode) Opt {
	return func(v *VM) {
		v.Framebuffer.SetWrapMode(wrap)
	}
}

// WithKeyPolicy sets whether testing a key consumes it.
func WithKeyPolicy(policy keypad.Policy) Opt {
	return func(v *VM) {
		v.Keypad.SetPolicy(policy)
	}
}

// WithTimerMode sets what drives the delay and sound timers.
func WithTimerMode(mode timer.Mode) Opt {
	return func(v *VM) {
		v.Timers.SetMode(mode)
	}
}

// WithRandom replaces the source of random bytes.
func WithRandom(random func() uint8) Opt {
	return func(v *VM) {
		v.CPU.Random = random
	}
}

// Speed sets the number of instructions executed per second
// by Start.
func Speed(speed float64) Opt {
	return func(v *VM) {
		v.speed = utils.Clamp(MinSpeed, speed, MaxSpeed)
	}
}

// WithProgram loads program into the VM.
func WithProgram(program []byte) Opt {
	return func(v *VM) {
		if err := v.load(program); err != nil {
			v.Logger.Errorf("unable to load program: %s", err)
		}
	}
}

// WithState restores the VM from a save state.
func WithState(b []byte) Opt {
	return func(v *VM) {
		if err := v.restore(b); err != nil {
			v.Logger.Errorf("unable to restore state: %s", err)
		}
	}
}
