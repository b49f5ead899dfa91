package cpu

import (
	"github.com/thelolagemann/gochip8/internal/memory"
)

// ANNN - LD I, addr
func (c *CPU) loadIndex(op Opcode) error {
	c.I = op.NNN
	c.next()
	return nil
}

// addIndex adds Vx to I, wrapping at 16 bits.
//
//	FX1E - ADD I, Vx
//
// Flags affected:
//
//	VF - With Quirks.IndexOverflowFlag, set if the addition
//	     overflowed 16 bits and reset otherwise. Not affected
//	     by default.
func (c *CPU) addIndex(op Opcode) error {
	sum := uint32(c.I) + uint32(c.V[op.X])
	c.I = uint16(sum)
	if c.Quirks.IndexOverflowFlag {
		c.setFlag(sum > 0xFFFF)
	}
	c.next()
	return nil
}

// loadGlyph points I at the built-in glyph for the low
// nibble of Vx.
//
//	FX29 - LD F, Vx
func (c *CPU) loadGlyph(op Opcode) error {
	c.I = memory.Glyph(c.V[op.X])
	c.next()
	return nil
}

// storeBCD stores the hundreds, tens and ones digits of Vx
// at I, I+1 and I+2.
//
//	FX33 - LD B, Vx
func (c *CPU) storeBCD(op Opcode) error {
	dst, err := c.bus.Slice(c.I, 3)
	if err != nil {
		return err
	}
	v := c.V[op.X]
	dst[0] = v / 100
	dst[1] = v / 10 % 10
	dst[2] = v % 10
	c.next()
	return nil
}

// storeRegisters copies V0 through Vx into memory starting at
// I. I is left unchanged.
//
//	FX55 - LD [I], Vx
func (c *CPU) storeRegisters(op Opcode) error {
	dst, err := c.bus.Slice(c.I, int(op.X)+1)
	if err != nil {
		return err
	}
	copy(dst, c.V[:op.X+1])
	c.next()
	return nil
}

// loadRegisters fills V0 through Vx from memory starting at
// I. I is left unchanged.
//
//	FX65 - LD Vx, [I]
func (c *CPU) loadRegisters(op Opcode) error {
	src, err := c.bus.Slice(c.I, int(op.X)+1)
	if err != nil {
		return err
	}
	copy(c.V[:op.X+1], src)
	c.next()
	return nil
}
