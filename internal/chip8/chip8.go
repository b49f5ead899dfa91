// Package chip8 provides the interpreter as a whole. A VM ties
// the processor to its memory, framebuffer, timers and keypad,
// and exposes the interface a host drives it through: load a
// program, step it, poll the framebuffer and feed it keys.
package chip8

import (
	"errors"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/thelolagemann/gochip8/internal/cpu"
	"github.com/thelolagemann/gochip8/internal/disasm"
	"github.com/thelolagemann/gochip8/internal/framebuffer"
	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/memory"
	"github.com/thelolagemann/gochip8/internal/timer"
	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/emulator"
	"github.com/thelolagemann/gochip8/pkg/log"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

const (
	// DefaultSpeed is the default number of instructions
	// executed per second by Start.
	DefaultSpeed = 600
	// MinSpeed and MaxSpeed bound the speed of the VM.
	MinSpeed = 1
	MaxSpeed = 100000
)

// ErrNotLoaded is returned by Step until a program has been
// loaded successfully.
var ErrNotLoaded = errors.New("chip8: no program loaded")

// VM represents the interpreter. It contains all the components
// of the machine, and is the main entry point for a host.
type VM struct {
	CPU         *cpu.CPU
	Memory      *memory.Memory
	Framebuffer *framebuffer.Framebuffer
	Timers      *timer.Controller
	Keypad      *keypad.State

	log.Logger

	program []byte
	loaded  bool
	fault   error

	speed          float64
	paused         bool
	executed       uint64
	unknownOpcodes uint64
	closed         chan struct{}
	closeOnce      sync.Once

	mu sync.Mutex
}

// New returns a new VM with no program loaded.
func New(opts ...Opt) *VM {
	mem := memory.New()
	fb := framebuffer.New(framebuffer.WrapLinear)
	timers := timer.NewController(timer.PerStep)
	keys := keypad.New(keypad.LevelTriggered)

	v := &VM{
		CPU:         cpu.NewCPU(mem, fb, timers, keys),
		Memory:      mem,
		Framebuffer: fb,
		Timers:      timers,
		Keypad:      keys,
		Logger:      log.New(),
		speed:       DefaultSpeed,
		closed:      make(chan struct{}),
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	v.CPU.Random = func() uint8 {
		return uint8(r.Intn(256))
	}
	v.CPU.Trace = func(pc uint16, op cpu.Opcode) {
		v.Logger.Debugf("%03X: %04X  %s", pc, op.Word, disasm.FormatOpcode(op))
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Load resets the machine and loads program at memory.ProgramStart.
// If the program does not fit, a *memory.LoadError is returned
// and the VM is left unloaded.
func (v *VM) Load(program []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.load(program)
}

// LoadFrom is like Load, but reads the program from r.
func (v *VM) LoadFrom(r io.Reader) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.powerOn()
	if err := v.Memory.LoadProgramFrom(r); err != nil {
		v.loaded = false
		return err
	}

	// keep the whole program region, reloading it on reset
	// is equivalent to reloading the original image
	region, _ := v.Memory.Slice(memory.ProgramStart, memory.MaxProgramSize)
	v.program = append([]byte(nil), region...)
	v.loaded = true
	return nil
}

// LoadROM loads the program stored in the file at path.
func (v *VM) LoadROM(path string) error {
	program, err := utils.LoadFile(path)
	if err != nil {
		return &memory.LoadError{Err: err}
	}

	return v.Load(program)
}

func (v *VM) load(program []byte) error {
	v.powerOn()
	if err := v.Memory.LoadProgram(program); err != nil {
		v.loaded = false
		return err
	}

	v.program = append([]byte(nil), program...)
	v.loaded = true
	return nil
}

// component is a part of the machine.
type component interface {
	types.Resettable
	types.Stater
}

// components returns the parts of the machine, in the order
// they are stored in save states.
func (v *VM) components() []component {
	return []component{v.CPU, v.Memory, v.Framebuffer, v.Timers, v.Keypad}
}

// powerOn returns every component to its power-on state.
func (v *VM) powerOn() {
	for _, c := range v.components() {
		c.Reset()
	}

	v.fault = nil
	v.executed = 0
	v.unknownOpcodes = 0
}

// Reset restores the power-on state, and reloads the last
// successfully loaded program.
func (v *VM) Reset() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.program == nil {
		v.powerOn()
		return ErrNotLoaded
	}
	return v.load(v.program)
}

// Step executes a single instruction. In timer.PerStep mode
// both timers are also decremented once.
//
// Unknown instructions are logged and skipped, and do not
// return an error. Any other error is fatal: it is returned
// from this and every subsequent Step until the VM is loaded
// or reset again.
func (v *VM) Step() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.step()
}

func (v *VM) step() error {
	if !v.loaded {
		return ErrNotLoaded
	}
	if v.fault != nil {
		return v.fault
	}

	if err := v.CPU.Step(); err != nil {
		var unknown *cpu.UnknownOpcodeError
		if !errors.As(err, &unknown) {
			v.fault = err
			v.Logger.Errorf("%s", err)
			return err
		}

		v.unknownOpcodes++
		v.Logger.Errorf("unknown opcode %04X at %03X (%s)", unknown.Opcode, unknown.PC, disasm.Format(unknown.Opcode))
	}

	v.Timers.Cycle()
	v.executed++
	return nil
}

// PollFramebuffer returns the pixels of the framebuffer, row
// major, if they changed since the last call.
func (v *VM) PollFramebuffer() ([]bool, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.Framebuffer.Poll()
}

// SetKey presses or releases key k.
func (v *VM) SetKey(k keypad.Key, pressed bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.Keypad.Set(k, pressed)
}

// SoundActive reports whether the buzzer should sound, which
// is when the sound timer is exactly 1.
func (v *VM) SoundActive() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.Timers.SoundActive()
}

// TickTimers decrements both timers once. Hosts running the
// timers in timer.Decoupled mode call this every timer.Rate.
func (v *VM) TickTimers() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.Timers.Tick()
}

// Loaded reports whether a program has been loaded.
func (v *VM) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.loaded
}

// Initialised is an alias of Loaded, satisfying emulator.Controller.
func (v *VM) Initialised() bool {
	return v.Loaded()
}

// Fault returns the error that stopped the VM, if any.
func (v *VM) Fault() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.fault
}

// UnknownOpcodes returns the number of unknown instructions
// skipped since the program was loaded.
func (v *VM) UnknownOpcodes() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.unknownOpcodes
}

// Executed returns the number of instructions executed since
// the program was loaded.
func (v *VM) Executed() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.executed
}

// Status returns the status of the VM.
func (v *VM) Status() emulator.Status {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch {
	case v.fault != nil:
		return emulator.Errored
	case !v.loaded:
		return emulator.Halted
	case v.paused:
		return emulator.Paused
	}
	return emulator.Running
}

// Pause stops Start from executing instructions.
func (v *VM) Pause() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.paused = true
}

// Resume undoes Pause.
func (v *VM) Resume() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.paused = false
}

func (v *VM) Paused() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.paused
}

// Speed returns the number of instructions Start executes per second.
func (v *VM) Speed() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.speed
}

// SetSpeed sets the number of instructions executed per
// second, clamped to [MinSpeed, MaxSpeed].
func (v *VM) SetSpeed(speed float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.speed = utils.Clamp(MinSpeed, speed, MaxSpeed)
}

// Close stops Start. It is safe to call more than once.
func (v *VM) Close() {
	v.closeOnce.Do(func() {
		close(v.closed)
	})
}
