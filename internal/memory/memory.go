// Package memory provides the 4 KiB address space of the
// interpreter. The first 80 bytes hold the built-in hexadecimal
// glyph set, and programs are loaded from ProgramStart onwards.
// Every access is bounds checked, faulting with an
// OutOfBoundsError rather than touching memory outside the
// address space.
package memory

import (
	"errors"
	"fmt"
	"io"

	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

const (
	// Size is the number of addressable bytes.
	Size = 0x1000
	// ProgramStart is the address programs are loaded at, and
	// where execution begins.
	ProgramStart = 0x200
	// MaxProgramSize is the largest program image that fits
	// between ProgramStart and the end of memory.
	MaxProgramSize = Size - ProgramStart

	// GlyphBase is the address of the glyph for digit 0.
	GlyphBase = 0x000
	// GlyphStride is the size of a single glyph in bytes.
	GlyphStride = 5
)

// glyphs is the built-in 4x5 font for the digits 0-F.
var glyphs = [16 * GlyphStride]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// ErrProgramTooLarge is wrapped by a LoadError when a program
// image does not fit in the program region.
var ErrProgramTooLarge = errors.New("program exceeds 3584 bytes")

// OutOfBoundsError is returned when an access falls outside
// of the address space.
type OutOfBoundsError struct {
	Addr int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("memory: address 0x%04X out of bounds", e.Addr)
}

// Is allows errors.Is(err, types.ErrOutOfBounds) to match.
func (e *OutOfBoundsError) Is(target error) bool {
	return target == types.ErrOutOfBounds
}

// LoadError is returned when a program could not be loaded.
type LoadError struct {
	Size int
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("memory: unable to load program (%d bytes): %v", e.Size, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Memory is the interpreter's address space.
type Memory struct {
	data [Size]uint8
}

// New returns a zeroed Memory with the glyph set
// preloaded at GlyphBase.
func New() *Memory {
	m := &Memory{}
	m.Reset()
	return m
}

// Reset zeroes the address space and restores the glyph set.
func (m *Memory) Reset() {
	m.data = [Size]uint8{}
	copy(m.data[GlyphBase:], glyphs[:])
}

// LoadProgram copies program into memory at ProgramStart. Programs
// larger than MaxProgramSize are rejected without touching
// memory. Any bytes left over from a previous, longer program
// are zeroed.
func (m *Memory) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return &LoadError{Size: len(program), Err: ErrProgramTooLarge}
	}

	n := copy(m.data[ProgramStart:], program)
	clear(m.data[ProgramStart+n:])

	return nil
}

// LoadProgramFrom reads a program image from r and loads it.
func (m *Memory) LoadProgramFrom(r io.Reader) error {
	// read one byte past the limit so oversized images are detected
	program, err := io.ReadAll(io.LimitReader(r, MaxProgramSize+1))
	if err != nil {
		return &LoadError{Size: len(program), Err: err}
	}

	return m.LoadProgram(program)
}

// Read returns the byte at addr.
func (m *Memory) Read(addr uint16) (uint8, error) {
	if int(addr) >= Size {
		return 0, &OutOfBoundsError{Addr: int(addr)}
	}
	return m.data[addr], nil
}

// Write stores value at addr.
func (m *Memory) Write(addr uint16, value uint8) error {
	if int(addr) >= Size {
		return &OutOfBoundsError{Addr: int(addr)}
	}
	m.data[addr] = value
	return nil
}

// ReadWord returns the big-endian 16-bit word at addr.
func (m *Memory) ReadWord(addr uint16) (uint16, error) {
	if int(addr)+1 >= Size {
		return 0, &OutOfBoundsError{Addr: int(addr) + 1}
	}
	return utils.BytesToUint16(m.data[addr], m.data[addr+1]), nil
}

// Slice returns a view of n bytes starting at addr. The view
// aliases memory and must not be retained across writes.
func (m *Memory) Slice(addr uint16, n int) ([]uint8, error) {
	if int(addr)+n > Size {
		return nil, &OutOfBoundsError{Addr: int(addr) + n - 1}
	}
	return m.data[int(addr) : int(addr)+n], nil
}

// Glyph returns the address of the glyph for the low
// nibble of digit.
func Glyph(digit uint8) uint16 {
	return GlyphBase + uint16(digit&0xF)*GlyphStride
}

var _ types.Stater = (*Memory)(nil)

func (m *Memory) Load(st *types.State) {
	st.ReadData(m.data[:])
}

func (m *Memory) Save(st *types.State) {
	st.WriteData(m.data[:])
}
