package cpu

import (
	"errors"
	"testing"

	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/types"
)

func TestInstruction_Input(t *testing.T) {
	// 0xEX9E - SKP Vx
	testInstruction(t, "SKP Vx (down)", 0xEA9E, func(t *testing.T, m *machine, opcode uint16) {
		m.V[0xA] = 0x5
		_ = m.keys.Press(0x5)
		m.mustExec(t, opcode)
		m.expectPC(t, 0x204)

		// level triggered keys stay down
		if down, _ := m.keys.IsDown(0x5); !down {
			t.Errorf("expected key to still be down")
		}
	})
	testInstruction(t, "SKP Vx (up)", 0xEA9E, func(t *testing.T, m *machine, opcode uint16) {
		m.V[0xA] = 0x5
		m.mustExec(t, opcode)
		m.expectPC(t, 0x202)
	})
	// 0xEXA1 - SKNP Vx
	testInstruction(t, "SKNP Vx (down)", 0xEAA1, func(t *testing.T, m *machine, opcode uint16) {
		m.V[0xA] = 0x5
		_ = m.keys.Press(0x5)
		m.mustExec(t, opcode)
		m.expectPC(t, 0x202)
	})
	testInstruction(t, "SKNP Vx (up)", 0xEAA1, func(t *testing.T, m *machine, opcode uint16) {
		m.V[0xA] = 0x5
		m.mustExec(t, opcode)
		m.expectPC(t, 0x204)
	})
	testInstruction(t, "SKP Vx (edge triggered)", 0xEA9E, func(t *testing.T, m *machine, opcode uint16) {
		m.keys.SetPolicy(keypad.EdgeTriggered)
		m.V[0xA] = 0x5
		_ = m.keys.Press(0x5)
		m.mustExec(t, opcode)
		m.expectPC(t, 0x204)

		m.PC = 0x200
		m.mustExec(t, opcode)
		m.expectPC(t, 0x202)
	})
	testInstruction(t, "SKP Vx (invalid key)", 0xEA9E, func(t *testing.T, m *machine, opcode uint16) {
		m.V[0xA] = 0x10
		err := m.exec(t, opcode)
		if !errors.Is(err, types.ErrOutOfBounds) || !IsFault(err) {
			t.Fatalf("expected out of bounds fault, got %v", err)
		}
		m.expectPC(t, 0x200)
	})
	// 0xFX0A - LD Vx, K
	testInstruction(t, "LD Vx, K", 0xFA0A, func(t *testing.T, m *machine, opcode uint16) {
		// without a key the instruction is retried
		m.mustExec(t, opcode)
		m.expectPC(t, 0x200)
		m.mustExec(t, opcode)
		m.expectPC(t, 0x200)

		_ = m.keys.Press(0xC)
		_ = m.keys.Press(0x7)
		m.mustExec(t, opcode)
		m.expectV(t, 0xA, 0x7)
		m.expectPC(t, 0x202)
	})
	testInstruction(t, "LD Vx, K (edge triggered)", 0xFA0A, func(t *testing.T, m *machine, opcode uint16) {
		m.keys.SetPolicy(keypad.EdgeTriggered)
		_ = m.keys.Press(0x3)
		m.mustExec(t, opcode)
		m.expectV(t, 0xA, 0x3)
		if down, _ := m.keys.IsDown(0x3); down {
			t.Errorf("expected key to be consumed")
		}
	})
}

func TestInstruction_Timers(t *testing.T) {
	// 0xFX07 - LD Vx, DT
	testInstruction(t, "LD Vx, DT", 0xFA07, func(t *testing.T, m *machine, opcode uint16) {
		m.timers.SetDelay(0x42)
		m.mustExec(t, opcode)
		m.expectV(t, 0xA, 0x42)
		m.expectPC(t, 0x202)
	})
	// 0xFX15 - LD DT, Vx
	testInstruction(t, "LD DT, Vx", 0xFA15, func(t *testing.T, m *machine, opcode uint16) {
		m.V[0xA] = 0x33
		m.mustExec(t, opcode)
		if m.timers.Delay() != 0x33 {
			t.Errorf("expected delay to be 0x33, got 0x%02X", m.timers.Delay())
		}
	})
	// 0xFX18 - LD ST, Vx
	testInstruction(t, "LD ST, Vx", 0xFA18, func(t *testing.T, m *machine, opcode uint16) {
		m.V[0xA] = 0x01
		m.mustExec(t, opcode)
		if !m.timers.SoundActive() {
			t.Errorf("expected sound to be active")
		}
	})
}
