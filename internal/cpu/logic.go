package cpu

// 8XY1 - OR Vx, Vy
func (c *CPU) or(op Opcode) error {
	c.V[op.X] |= c.V[op.Y]
	c.next()
	return nil
}

// 8XY2 - AND Vx, Vy
func (c *CPU) and(op Opcode) error {
	c.V[op.X] &= c.V[op.Y]
	c.next()
	return nil
}

// 8XY3 - XOR Vx, Vy
func (c *CPU) xor(op Opcode) error {
	c.V[op.X] ^= c.V[op.Y]
	c.next()
	return nil
}

// shiftRight shifts Vx right by one.
//
//	8XY6 - SHR Vx
//
// Flags affected:
//
//	VF - Bit 0 of Vx before the shift.
func (c *CPU) shiftRight(op Opcode) error {
	v := c.V[op.X]
	c.V[op.X] = v >> 1
	c.V[FlagRegister] = v & 0x1
	c.next()
	return nil
}

// shiftLeft shifts Vx left by one.
//
//	8XYE - SHL Vx
//
// Flags affected:
//
//	VF - Bit 7 of Vx before the shift.
func (c *CPU) shiftLeft(op Opcode) error {
	v := c.V[op.X]
	c.V[op.X] = v << 1
	c.V[FlagRegister] = v >> 7
	c.next()
	return nil
}
