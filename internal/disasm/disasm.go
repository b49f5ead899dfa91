// Package disasm formats instruction words as assembly, using
// the conventional mnemonics. It is used for trace logging,
// unknown instruction reports and program listings.
package disasm

import (
	"fmt"

	"github.com/thelolagemann/gochip8/internal/cpu"
)

// Format returns the assembly for a single instruction word.
// Words that do not decode are formatted as data.
func Format(word uint16) string {
	return FormatOpcode(cpu.Decode(word))
}

// FormatOpcode returns the assembly for a decoded instruction.
func FormatOpcode(op cpu.Opcode) string {
	switch op.Op {
	case cpu.OpClear:
		return "CLS"
	case cpu.OpReturn:
		return "RET"
	case cpu.OpSys:
		return fmt.Sprintf("SYS $%03X", op.NNN)
	case cpu.OpJump:
		return fmt.Sprintf("JP $%03X", op.NNN)
	case cpu.OpCall:
		return fmt.Sprintf("CALL $%03X", op.NNN)
	case cpu.OpSkipEqualImm:
		return fmt.Sprintf("SE V%X, $%02X", op.X, op.NN)
	case cpu.OpSkipNotEqualImm:
		return fmt.Sprintf("SNE V%X, $%02X", op.X, op.NN)
	case cpu.OpSkipEqualReg:
		return fmt.Sprintf("SE V%X, V%X", op.X, op.Y)
	case cpu.OpSkipNotEqualReg:
		return fmt.Sprintf("SNE V%X, V%X", op.X, op.Y)
	case cpu.OpLoadImm:
		return fmt.Sprintf("LD V%X, $%02X", op.X, op.NN)
	case cpu.OpAddImm:
		return fmt.Sprintf("ADD V%X, $%02X", op.X, op.NN)
	case cpu.OpLoadReg:
		return registers("LD", op)
	case cpu.OpOr:
		return registers("OR", op)
	case cpu.OpAnd:
		return registers("AND", op)
	case cpu.OpXor:
		return registers("XOR", op)
	case cpu.OpAddReg:
		return registers("ADD", op)
	case cpu.OpSub:
		return registers("SUB", op)
	case cpu.OpSubN:
		return registers("SUBN", op)
	case cpu.OpShiftRight:
		return fmt.Sprintf("SHR V%X", op.X)
	case cpu.OpShiftLeft:
		return fmt.Sprintf("SHL V%X", op.X)
	case cpu.OpLoadIndex:
		return fmt.Sprintf("LD I, $%03X", op.NNN)
	case cpu.OpJumpOffset:
		return fmt.Sprintf("JP V0, $%03X", op.NNN)
	case cpu.OpRandom:
		return fmt.Sprintf("RND V%X, $%02X", op.X, op.NN)
	case cpu.OpDraw:
		return fmt.Sprintf("DRW V%X, V%X, $%X", op.X, op.Y, op.N)
	case cpu.OpSkipKey:
		return fmt.Sprintf("SKP V%X", op.X)
	case cpu.OpSkipNotKey:
		return fmt.Sprintf("SKNP V%X", op.X)
	case cpu.OpLoadDelay:
		return fmt.Sprintf("LD V%X, DT", op.X)
	case cpu.OpWaitKey:
		return fmt.Sprintf("LD V%X, K", op.X)
	case cpu.OpSetDelay:
		return fmt.Sprintf("LD DT, V%X", op.X)
	case cpu.OpSetSound:
		return fmt.Sprintf("LD ST, V%X", op.X)
	case cpu.OpAddIndex:
		return fmt.Sprintf("ADD I, V%X", op.X)
	case cpu.OpLoadGlyph:
		return fmt.Sprintf("LD F, V%X", op.X)
	case cpu.OpStoreBCD:
		return fmt.Sprintf("LD B, V%X", op.X)
	case cpu.OpStoreRegisters:
		return fmt.Sprintf("LD [I], V%X", op.X)
	case cpu.OpLoadRegisters:
		return fmt.Sprintf("LD V%X, [I]", op.X)
	}

	return fmt.Sprintf(".word $%04X", op.Word)
}

func registers(mnemonic string, op cpu.Opcode) string {
	return fmt.Sprintf("%s V%X, V%X", mnemonic, op.X, op.Y)
}

// Line is a single disassembled instruction.
type Line struct {
	Addr uint16
	Word uint16
	Text string
}

func (l Line) String() string {
	return fmt.Sprintf("%03X: %04X  %s", l.Addr, l.Word, l.Text)
}

// Program disassembles mem as consecutive instruction words,
// with the first word located at start. A trailing odd byte
// is listed as data.
func Program(mem []byte, start uint16) []Line {
	lines := make([]Line, 0, (len(mem)+1)/2)
	for i := 0; i+1 < len(mem); i += 2 {
		word := uint16(mem[i])<<8 | uint16(mem[i+1])
		lines = append(lines, Line{
			Addr: start + uint16(i),
			Word: word,
			Text: Format(word),
		})
	}
	if len(mem)%2 == 1 {
		last := mem[len(mem)-1]
		lines = append(lines, Line{
			Addr: start + uint16(len(mem)-1),
			Word: uint16(last),
			Text: fmt.Sprintf(".byte $%02X", last),
		})
	}

	return lines
}
