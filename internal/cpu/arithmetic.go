package cpu

// 6XNN - LD Vx, byte
func (c *CPU) loadImm(op Opcode) error {
	c.V[op.X] = op.NN
	c.next()
	return nil
}

// addImm adds NN to Vx, without affecting VF.
//
//	7XNN - ADD Vx, byte
func (c *CPU) addImm(op Opcode) error {
	c.V[op.X] += op.NN
	c.next()
	return nil
}

// 8XY0 - LD Vx, Vy
func (c *CPU) loadReg(op Opcode) error {
	c.V[op.X] = c.V[op.Y]
	c.next()
	return nil
}

// addReg adds Vy to Vx.
//
//	8XY4 - ADD Vx, Vy
//
// Flags affected:
//
//	VF - Set if the result overflowed 8 bits, reset otherwise.
func (c *CPU) addReg(op Opcode) error {
	sum := uint16(c.V[op.X]) + uint16(c.V[op.Y])
	c.V[op.X] = uint8(sum)
	c.setFlag(sum > 0xFF)
	c.next()
	return nil
}

// sub subtracts Vy from Vx.
//
//	8XY5 - SUB Vx, Vy
//
// Flags affected:
//
//	VF - Set if no borrow occurred (Vx >= Vy), reset otherwise.
func (c *CPU) sub(op Opcode) error {
	x, y := c.V[op.X], c.V[op.Y]
	c.V[op.X] = x - y
	c.setFlag(x >= y)
	c.next()
	return nil
}

// subN sets Vx to Vy minus Vx.
//
//	8XY7 - SUBN Vx, Vy
//
// Flags affected:
//
//	VF - Set if no borrow occurred (Vy >= Vx), reset otherwise.
func (c *CPU) subN(op Opcode) error {
	x, y := c.V[op.X], c.V[op.Y]
	c.V[op.X] = y - x
	c.setFlag(y >= x)
	c.next()
	return nil
}

// random sets Vx to a random byte masked with NN.
//
//	CXNN - RND Vx, byte
func (c *CPU) random(op Opcode) error {
	c.V[op.X] = c.Random() & op.NN
	c.next()
	return nil
}
