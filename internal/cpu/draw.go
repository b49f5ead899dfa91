package cpu

// draw XORs an N row sprite read from I onto the screen at
// (Vx, Vy).
//
//	DXYN - DRW Vx, Vy, nibble
//
// Flags affected:
//
//	VF - Set if any pixel was turned off, reset otherwise.
func (c *CPU) draw(op Opcode) error {
	rows, err := c.bus.Slice(c.I, int(op.N))
	if err != nil {
		return err
	}
	collision := c.screen.DrawSprite(c.V[op.X], c.V[op.Y], rows)
	c.setFlag(collision)
	c.next()
	return nil
}
