package cpu

// Op identifies one of the 35 instructions.
type Op uint8

const (
	OpUnknown Op = iota

	OpClear           // 00E0
	OpReturn          // 00EE
	OpSys             // 0NNN
	OpJump            // 1NNN
	OpCall            // 2NNN
	OpSkipEqualImm    // 3XNN
	OpSkipNotEqualImm // 4XNN
	OpSkipEqualReg    // 5XY0
	OpLoadImm         // 6XNN
	OpAddImm          // 7XNN
	OpLoadReg         // 8XY0
	OpOr              // 8XY1
	OpAnd             // 8XY2
	OpXor             // 8XY3
	OpAddReg          // 8XY4
	OpSub             // 8XY5
	OpShiftRight      // 8XY6
	OpSubN            // 8XY7
	OpShiftLeft       // 8XYE
	OpSkipNotEqualReg // 9XY0
	OpLoadIndex       // ANNN
	OpJumpOffset      // BNNN
	OpRandom          // CXNN
	OpDraw            // DXYN
	OpSkipKey         // EX9E
	OpSkipNotKey      // EXA1
	OpLoadDelay       // FX07
	OpWaitKey         // FX0A
	OpSetDelay        // FX15
	OpSetSound        // FX18
	OpAddIndex        // FX1E
	OpLoadGlyph       // FX29
	OpStoreBCD        // FX33
	OpStoreRegisters  // FX55
	OpLoadRegisters   // FX65

	opCount
)

// Instruction is a named execution routine.
type Instruction struct {
	name string
	fn   func(*CPU, Opcode) error
}

// Name returns the name of the instruction, in the form of
// the opcode pattern that selects it.
func (i Instruction) Name() string {
	return i.name
}

// InstructionSet holds the execution routine of every Op.
var InstructionSet [opCount]Instruction

// pattern matches an instruction word against a mask, where
// the bits outside the mask are operand fields.
type pattern struct {
	mask, value uint16
	op          Op
}

var (
	patterns    []pattern
	decodeTable [0x10000]Op
)

// defineInstruction defines op in the InstructionSet, and
// registers the pattern that decodes to it. Patterns are
// matched in the order they are defined.
func defineInstruction(mask, value uint16, op Op, name string, fn func(*CPU, Opcode) error) {
	InstructionSet[op] = Instruction{
		name: name,
		fn:   fn,
	}

	patterns = append(patterns, pattern{mask: mask, value: value, op: op})
}

func init() {
	InstructionSet[OpUnknown] = Instruction{name: "????"}

	// control flow, most specific first so 00E0 and 00EE are
	// not swallowed by 0NNN
	defineInstruction(0xFFFF, 0x00E0, OpClear, "00E0", (*CPU).clearScreen)
	defineInstruction(0xFFFF, 0x00EE, OpReturn, "00EE", (*CPU).ret)
	defineInstruction(0xF000, 0x0000, OpSys, "0NNN", (*CPU).sys)
	defineInstruction(0xF000, 0x1000, OpJump, "1NNN", (*CPU).jump)
	defineInstruction(0xF000, 0x2000, OpCall, "2NNN", (*CPU).call)
	defineInstruction(0xF000, 0x3000, OpSkipEqualImm, "3XNN", (*CPU).skipEqualImm)
	defineInstruction(0xF000, 0x4000, OpSkipNotEqualImm, "4XNN", (*CPU).skipNotEqualImm)
	defineInstruction(0xF00F, 0x5000, OpSkipEqualReg, "5XY0", (*CPU).skipEqualReg)
	defineInstruction(0xF00F, 0x9000, OpSkipNotEqualReg, "9XY0", (*CPU).skipNotEqualReg)
	defineInstruction(0xF000, 0xB000, OpJumpOffset, "BNNN", (*CPU).jumpOffset)

	// register and immediate
	defineInstruction(0xF000, 0x6000, OpLoadImm, "6XNN", (*CPU).loadImm)
	defineInstruction(0xF000, 0x7000, OpAddImm, "7XNN", (*CPU).addImm)
	defineInstruction(0xF00F, 0x8000, OpLoadReg, "8XY0", (*CPU).loadReg)
	defineInstruction(0xF00F, 0x8001, OpOr, "8XY1", (*CPU).or)
	defineInstruction(0xF00F, 0x8002, OpAnd, "8XY2", (*CPU).and)
	defineInstruction(0xF00F, 0x8003, OpXor, "8XY3", (*CPU).xor)
	defineInstruction(0xF00F, 0x8004, OpAddReg, "8XY4", (*CPU).addReg)
	defineInstruction(0xF00F, 0x8005, OpSub, "8XY5", (*CPU).sub)
	defineInstruction(0xF00F, 0x8006, OpShiftRight, "8XY6", (*CPU).shiftRight)
	defineInstruction(0xF00F, 0x8007, OpSubN, "8XY7", (*CPU).subN)
	defineInstruction(0xF00F, 0x800E, OpShiftLeft, "8XYE", (*CPU).shiftLeft)
	defineInstruction(0xF000, 0xC000, OpRandom, "CXNN", (*CPU).random)

	// memory and index
	defineInstruction(0xF000, 0xA000, OpLoadIndex, "ANNN", (*CPU).loadIndex)
	defineInstruction(0xF0FF, 0xF01E, OpAddIndex, "FX1E", (*CPU).addIndex)
	defineInstruction(0xF0FF, 0xF029, OpLoadGlyph, "FX29", (*CPU).loadGlyph)
	defineInstruction(0xF0FF, 0xF033, OpStoreBCD, "FX33", (*CPU).storeBCD)
	defineInstruction(0xF0FF, 0xF055, OpStoreRegisters, "FX55", (*CPU).storeRegisters)
	defineInstruction(0xF0FF, 0xF065, OpLoadRegisters, "FX65", (*CPU).loadRegisters)

	// drawing
	defineInstruction(0xF000, 0xD000, OpDraw, "DXYN", (*CPU).draw)

	// input and timers
	defineInstruction(0xF0FF, 0xE09E, OpSkipKey, "EX9E", (*CPU).skipKey)
	defineInstruction(0xF0FF, 0xE0A1, OpSkipNotKey, "EXA1", (*CPU).skipNotKey)
	defineInstruction(0xF0FF, 0xF007, OpLoadDelay, "FX07", (*CPU).loadDelay)
	defineInstruction(0xF0FF, 0xF00A, OpWaitKey, "FX0A", (*CPU).waitKey)
	defineInstruction(0xF0FF, 0xF015, OpSetDelay, "FX15", (*CPU).setDelay)
	defineInstruction(0xF0FF, 0xF018, OpSetSound, "FX18", (*CPU).setSound)

	buildDecodeTable()
}

// buildDecodeTable resolves every possible instruction word
// to its Op ahead of time, leaving words that match no
// pattern as OpUnknown.
func buildDecodeTable() {
	for word := range decodeTable {
		for _, p := range patterns {
			if uint16(word)&p.mask == p.value {
				decodeTable[word] = p.op
				break
			}
		}
	}
}

// Opcode is a decoded instruction word with its operand
// fields extracted.
type Opcode struct {
	Word uint16
	Op   Op

	X   uint8  // register index in the second nibble
	Y   uint8  // register index in the third nibble
	N   uint8  // 4 bit immediate
	NN  uint8  // 8 bit immediate
	NNN uint16 // 12 bit address
}

// Decode decodes an instruction word.
func Decode(word uint16) Opcode {
	return Opcode{
		Word: word,
		Op:   decodeTable[word],
		X:    uint8(word>>8) & 0xF,
		Y:    uint8(word>>4) & 0xF,
		N:    uint8(word) & 0xF,
		NN:   uint8(word),
		NNN:  word & 0xFFF,
	}
}

// Name returns the name of the decoded instruction.
func (o Opcode) Name() string {
	return InstructionSet[o.Op].name
}
