package cpu

import (
	"errors"
	"testing"

	"github.com/thelolagemann/gochip8/internal/types"
)

func TestInstruction_Control(t *testing.T) {
	// 0x00E0 - CLS
	testInstruction(t, "CLS", 0x00E0, func(t *testing.T, m *machine, opcode uint16) {
		m.screen.DrawSprite(0, 0, []uint8{0xFF})
		m.screen.Poll()

		m.mustExec(t, opcode)

		pixels, dirty := m.screen.Poll()
		if !dirty {
			t.Fatalf("expected framebuffer to be dirty")
		}
		for i, on := range pixels {
			if on {
				t.Fatalf("expected pixel %d to be cleared", i)
			}
		}
		m.expectPC(t, 0x202)
	})
	// 0x0NNN - SYS addr
	testInstruction(t, "SYS", 0x0123, func(t *testing.T, m *machine, opcode uint16) {
		m.mustExec(t, opcode)
		m.expectPC(t, 0x202)
	})
	// 0x1NNN - JP addr
	testInstruction(t, "JP", 0x1ABC, func(t *testing.T, m *machine, opcode uint16) {
		m.mustExec(t, opcode)
		m.expectPC(t, 0xABC)
	})
	// 0x2NNN + 0x00EE - CALL addr, RET
	testInstruction(t, "CALL/RET", 0x2B0B, func(t *testing.T, m *machine, opcode uint16) {
		m.mustExec(t, opcode)
		m.expectPC(t, 0xB0B)
		if m.SP != 1 {
			t.Errorf("expected SP to be 1, got %d", m.SP)
		}
		if m.Stack[0] != 0x200 {
			t.Errorf("expected stack to hold 0x200, got 0x%03X", m.Stack[0])
		}

		m.mustExec(t, 0x00EE)
		m.expectPC(t, 0x202)
		if m.SP != 0 {
			t.Errorf("expected SP to be 0, got %d", m.SP)
		}
		// return leaves the stack contents alone
		if m.Stack[0] != 0x200 {
			t.Errorf("expected stack to still hold 0x200, got 0x%03X", m.Stack[0])
		}
	})
	// 0x00EE - RET with an empty stack
	testInstruction(t, "RET underflow", 0x00EE, func(t *testing.T, m *machine, opcode uint16) {
		err := m.exec(t, opcode)
		if !errors.Is(err, ErrStackUnderflow) {
			t.Fatalf("expected ErrStackUnderflow, got %v", err)
		}
		if !errors.Is(err, types.ErrOutOfBounds) || !IsFault(err) {
			t.Errorf("expected out of bounds fault, got %v", err)
		}
		if m.SP != 0 {
			t.Errorf("expected SP to be unchanged, got %d", m.SP)
		}
	})
	// 0x2NNN - CALL with a full stack
	testInstruction(t, "CALL overflow", 0x2300, func(t *testing.T, m *machine, opcode uint16) {
		// each call jumps to the next free word, nesting 16 deep
		for i := 0; i < StackSize; i++ {
			m.mustExec(t, 0x2000|(m.PC+2))
		}
		if m.SP != StackSize {
			t.Fatalf("expected SP to be %d, got %d", StackSize, m.SP)
		}

		err := m.exec(t, opcode)
		if !errors.Is(err, ErrStackOverflow) {
			t.Fatalf("expected ErrStackOverflow, got %v", err)
		}
		var fault *Fault
		if !errors.As(err, &fault) || fault.Opcode != opcode {
			t.Errorf("expected fault for 0x%04X, got %v", opcode, err)
		}
	})
	// 0xBNNN - JP V0, addr
	testInstruction(t, "JP V0", 0xB777, func(t *testing.T, m *machine, opcode uint16) {
		m.V[0] = 0x11
		m.mustExec(t, opcode)
		m.expectPC(t, 0x788)
	})
}

func TestInstruction_Skip(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		vx, vy uint8
		skip   bool
	}{
		{"SE Vx, byte (equal)", 0x3A05, 0x05, 0, true},
		{"SE Vx, byte (not equal)", 0x3A05, 0x06, 0, false},
		{"SNE Vx, byte (equal)", 0x4A05, 0x05, 0, false},
		{"SNE Vx, byte (not equal)", 0x4A05, 0x06, 0, true},
		{"SE Vx, Vy (equal)", 0x5AB0, 0x42, 0x42, true},
		{"SE Vx, Vy (not equal)", 0x5AB0, 0x42, 0x43, false},
		{"SNE Vx, Vy (equal)", 0x9AB0, 0x42, 0x42, false},
		{"SNE Vx, Vy (not equal)", 0x9AB0, 0x42, 0x43, true},
	}
	for _, tt := range tests {
		testInstruction(t, tt.name, tt.opcode, func(t *testing.T, m *machine, opcode uint16) {
			m.V[0xA], m.V[0xB] = tt.vx, tt.vy
			m.mustExec(t, opcode)
			if tt.skip {
				m.expectPC(t, 0x204)
			} else {
				m.expectPC(t, 0x202)
			}
		})
	}
}
