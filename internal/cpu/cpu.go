// Package cpu provides the processor of the interpreter. It
// owns the register file, the index register, the program
// counter and the call stack, and executes one instruction at
// a time against the memory, screen, timers and keypad it is
// attached to.
package cpu

import (
	"errors"

	"github.com/thelolagemann/gochip8/internal/memory"
	"github.com/thelolagemann/gochip8/internal/types"
)

const (
	// FlagRegister is the index of VF, which doubles as the
	// carry, borrow and collision flag.
	FlagRegister = 0xF
	// StackSize is the maximum call depth.
	StackSize = 16
)

// Bus is the memory the CPU fetches instructions from and
// reads and writes data through. Every access is bounds checked.
type Bus interface {
	Read(addr uint16) (uint8, error)
	Write(addr uint16, value uint8) error
	ReadWord(addr uint16) (uint16, error)
	Slice(addr uint16, n int) ([]uint8, error)
}

// Screen is the framebuffer sprites are drawn onto.
type Screen interface {
	Clear()
	DrawSprite(x, y uint8, rows []uint8) bool
}

// Timers are the delay and sound timers.
type Timers interface {
	Delay() uint8
	SetDelay(v uint8)
	SetSound(v uint8)
}

// Keys is the keypad state as seen by the processor.
type Keys interface {
	IsDown(k uint8) (bool, error)
	FirstDown() (uint8, bool)
	Consume(k uint8)
}

// Quirks toggles behaviour that differs between interpreters.
type Quirks struct {
	// IndexOverflowFlag sets VF when FX1E overflows the 16 bit
	// index register, and clears it otherwise. When false, VF
	// is left untouched.
	IndexOverflowFlag bool
}

// CPU represents the processor. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// I is the index register.
	I uint16
	// SP is the stack pointer, it points to the next free slot of the Stack.
	SP uint8
	// V holds the 16 general purpose registers V0-VF.
	V [16]uint8
	// Stack holds the return addresses of active subroutine calls.
	Stack [StackSize]uint16

	Quirks Quirks

	// Debug enables Trace, which is called with every decoded
	// instruction before it is executed.
	Debug bool
	Trace func(pc uint16, op Opcode)

	// Random is the source of random bytes for CXNN.
	Random func() uint8

	bus    Bus
	screen Screen
	timers Timers
	keys   Keys
}

// NewCPU creates a new CPU instance attached to the given
// components. The returned CPU is in its power-on state.
func NewCPU(bus Bus, screen Screen, timers Timers, keys Keys) *CPU {
	c := &CPU{
		bus:    bus,
		screen: screen,
		timers: timers,
		keys:   keys,
		Random: func() uint8 { return 0 },
	}
	c.Reset()

	return c
}

// Reset restores the registers, the stack and the program
// counter to their power-on state.
func (c *CPU) Reset() {
	c.PC = memory.ProgramStart
	c.I = 0
	c.SP = 0
	c.V = [16]uint8{}
	c.Stack = [StackSize]uint16{}
}

// Step fetches, decodes and executes a single instruction.
//
// An unknown instruction is skipped, and reported with an
// *UnknownOpcodeError. Any other error is a *Fault, after
// which the processor state should be considered invalid.
func (c *CPU) Step() error {
	pc := c.PC
	word, err := c.bus.ReadWord(pc)
	if err != nil {
		return &Fault{PC: pc, Err: err}
	}

	op := Decode(word)
	if op.Op == OpUnknown {
		c.PC += 2
		return &UnknownOpcodeError{PC: pc, Opcode: word}
	}

	if c.Debug && c.Trace != nil {
		c.Trace(pc, op)
	}

	if err := InstructionSet[op.Op].fn(c, op); err != nil {
		return &Fault{PC: pc, Opcode: word, Err: err}
	}

	return nil
}

// next advances the program counter past the current instruction.
func (c *CPU) next() {
	c.PC += 2
}

// skipIf advances the program counter past the next
// instruction when cond holds, and past the current one otherwise.
func (c *CPU) skipIf(cond bool) {
	if cond {
		c.PC += 4
	} else {
		c.PC += 2
	}
}

// setFlag sets VF to 1 if cond holds, 0 otherwise.
func (c *CPU) setFlag(cond bool) {
	if cond {
		c.V[FlagRegister] = 1
	} else {
		c.V[FlagRegister] = 0
	}
}

// IsFault reports whether err is fatal to the processor, as
// opposed to a skipped unknown instruction.
func IsFault(err error) bool {
	var f *Fault
	return errors.As(err, &f)
}

var _ types.Stater = (*CPU)(nil)

func (c *CPU) Load(s *types.State) {
	c.PC = s.Read16()
	c.I = s.Read16()
	c.SP = s.Read8()
	for i := range c.V {
		c.V[i] = s.Read8()
	}
	for i := range c.Stack {
		c.Stack[i] = s.Read16()
	}
}

func (c *CPU) Save(s *types.State) {
	s.Write16(c.PC)
	s.Write16(c.I)
	s.Write8(c.SP)
	for _, v := range c.V {
		s.Write8(v)
	}
	for _, addr := range c.Stack {
		s.Write16(addr)
	}
}
