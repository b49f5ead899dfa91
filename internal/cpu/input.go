package cpu

// skipKey skips the next instruction if the key in Vx is down.
//
//	EX9E - SKP Vx
func (c *CPU) skipKey(op Opcode) error {
	k := c.V[op.X]
	down, err := c.keys.IsDown(k)
	if err != nil {
		return err
	}
	if down {
		c.keys.Consume(k)
	}
	c.skipIf(down)
	return nil
}

// skipNotKey skips the next instruction if the key in Vx is up.
//
//	EXA1 - SKNP Vx
func (c *CPU) skipNotKey(op Opcode) error {
	k := c.V[op.X]
	down, err := c.keys.IsDown(k)
	if err != nil {
		return err
	}
	if down {
		c.keys.Consume(k)
	}
	c.skipIf(!down)
	return nil
}

// FX07 - LD Vx, DT
func (c *CPU) loadDelay(op Opcode) error {
	c.V[op.X] = c.timers.Delay()
	c.next()
	return nil
}

// waitKey stores the lowest key that is down in Vx. If no key
// is down the program counter is left alone, so the
// instruction runs again on the next step.
//
//	FX0A - LD Vx, K
func (c *CPU) waitKey(op Opcode) error {
	k, ok := c.keys.FirstDown()
	if !ok {
		return nil
	}
	c.keys.Consume(k)
	c.V[op.X] = k
	c.next()
	return nil
}

// FX15 - LD DT, Vx
func (c *CPU) setDelay(op Opcode) error {
	c.timers.SetDelay(c.V[op.X])
	c.next()
	return nil
}

// FX18 - LD ST, Vx
func (c *CPU) setSound(op Opcode) error {
	c.timers.SetSound(c.V[op.X])
	c.next()
	return nil
}
