package cpu

import (
	"errors"
	"testing"

	"github.com/thelolagemann/gochip8/internal/framebuffer"
	"github.com/thelolagemann/gochip8/internal/memory"
	"github.com/thelolagemann/gochip8/internal/types"
)

func TestInstruction_Draw(t *testing.T) {
	// 0xDXYN - DRW Vx, Vy, nibble
	testInstruction(t, "DRW", 0xDAB5, func(t *testing.T, m *machine, opcode uint16) {
		m.I = memory.Glyph(0x0)
		m.V[0xA], m.V[0xB] = 10, 12
		before := m.screen.Bytes()

		m.mustExec(t, opcode)
		m.expectV(t, FlagRegister, 0)
		if !m.screen.Pixel(10, 12) || !m.screen.Pixel(13, 16) {
			t.Errorf("expected glyph to be drawn at (10, 12)")
		}

		m.PC = 0x200
		m.mustExec(t, opcode)
		m.expectV(t, FlagRegister, 1)

		after := m.screen.Bytes()
		for i := range before {
			if before[i] != after[i] {
				t.Fatalf("expected second draw to restore pixel %d", i)
			}
		}
		if !m.screen.Dirty() {
			t.Errorf("expected framebuffer to be dirty")
		}
	})
	testInstruction(t, "DRW (zero rows)", 0xDAB0, func(t *testing.T, m *machine, opcode uint16) {
		m.screen.Poll()
		m.V[FlagRegister] = 1
		m.mustExec(t, opcode)
		m.expectV(t, FlagRegister, 0)
		if !m.screen.Dirty() {
			t.Errorf("expected framebuffer to be dirty")
		}
	})
	testInstruction(t, "DRW (linear wrap)", 0xDAB1, func(t *testing.T, m *machine, opcode uint16) {
		_ = m.mem.Write(0x300, 0xFF)
		m.I = 0x300
		m.V[0xA], m.V[0xB] = 60, 0
		m.mustExec(t, opcode)
		if !m.screen.Pixel(0, 1) || m.screen.Pixel(0, 0) {
			t.Errorf("expected sprite to continue on the next row")
		}
	})
	testInstruction(t, "DRW (axis wrap)", 0xDAB1, func(t *testing.T, m *machine, opcode uint16) {
		m.screen.SetWrapMode(framebuffer.WrapAxis)
		_ = m.mem.Write(0x300, 0xFF)
		m.I = 0x300
		m.V[0xA], m.V[0xB] = 60, 0
		m.mustExec(t, opcode)
		if !m.screen.Pixel(0, 0) || m.screen.Pixel(0, 1) {
			t.Errorf("expected sprite to wrap on the same row")
		}
	})
	testInstruction(t, "DRW (out of bounds)", 0xDAB5, func(t *testing.T, m *machine, opcode uint16) {
		m.I = memory.Size - 2
		err := m.exec(t, opcode)
		if !errors.Is(err, types.ErrOutOfBounds) {
			t.Fatalf("expected out of bounds, got %v", err)
		}
	})
}
