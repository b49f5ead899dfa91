package cpu

// clearScreen clears the framebuffer.
//
//	00E0 - CLS
func (c *CPU) clearScreen(Opcode) error {
	c.screen.Clear()
	c.next()
	return nil
}

// ret returns from a subroutine. The popped return address
// is left on the stack.
//
//	00EE - RET
func (c *CPU) ret(Opcode) error {
	if c.SP == 0 {
		return ErrStackUnderflow
	}
	c.SP--
	c.PC = c.Stack[c.SP]
	c.next()
	return nil
}

// sys would call a native routine on the original hardware,
// and is ignored.
//
//	0NNN - SYS addr
func (c *CPU) sys(Opcode) error {
	c.next()
	return nil
}

// jump sets the program counter to NNN.
//
//	1NNN - JP addr
func (c *CPU) jump(op Opcode) error {
	c.PC = op.NNN
	return nil
}

// call pushes the program counter onto the stack and jumps
// to NNN. The pushed address is that of the call itself, ret
// skips over it.
//
//	2NNN - CALL addr
func (c *CPU) call(op Opcode) error {
	if int(c.SP) >= StackSize {
		return ErrStackOverflow
	}
	c.Stack[c.SP] = c.PC
	c.SP++
	c.PC = op.NNN
	return nil
}

// 3XNN - SE Vx, byte
func (c *CPU) skipEqualImm(op Opcode) error {
	c.skipIf(c.V[op.X] == op.NN)
	return nil
}

// 4XNN - SNE Vx, byte
func (c *CPU) skipNotEqualImm(op Opcode) error {
	c.skipIf(c.V[op.X] != op.NN)
	return nil
}

// 5XY0 - SE Vx, Vy
func (c *CPU) skipEqualReg(op Opcode) error {
	c.skipIf(c.V[op.X] == c.V[op.Y])
	return nil
}

// 9XY0 - SNE Vx, Vy
func (c *CPU) skipNotEqualReg(op Opcode) error {
	c.skipIf(c.V[op.X] != c.V[op.Y])
	return nil
}

// jumpOffset jumps to NNN plus V0.
//
//	BNNN - JP V0, addr
func (c *CPU) jumpOffset(op Opcode) error {
	c.PC = op.NNN + uint16(c.V[0])
	return nil
}
