package cpu

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/gochip8/internal/types"
)

var (
	// ErrStackOverflow is returned when a call is made with a full stack.
	ErrStackOverflow = fmt.Errorf("cpu: stack overflow: %w", types.ErrOutOfBounds)
	// ErrStackUnderflow is returned when returning with an empty stack.
	ErrStackUnderflow = fmt.Errorf("cpu: stack underflow: %w", types.ErrOutOfBounds)
)

// ErrUnknownOpcode is matched by every *UnknownOpcodeError.
var ErrUnknownOpcode = errors.New("cpu: unknown opcode")

// UnknownOpcodeError is returned by Step when the fetched word
// does not decode to an instruction. The program counter has
// already been advanced past it.
type UnknownOpcodeError struct {
	PC     uint16
	Opcode uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("cpu: unknown opcode 0x%04X at 0x%03X", e.Opcode, e.PC)
}

func (e *UnknownOpcodeError) Is(target error) bool {
	return target == ErrUnknownOpcode
}

// Fault is returned by Step when an instruction could not be
// completed.
type Fault struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("cpu: fault executing 0x%04X at 0x%03X: %v", f.Opcode, f.PC, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
