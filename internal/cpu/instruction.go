package cpu

// Instruction pairs an opcode's mnemonic with its handler.
type Instruction struct {
	name string
	fn   func(*CPU)
}

// Name returns the instruction's mnemonic.
func (i Instruction) Name() string {
	return i.name
}

// InstructionSet maps every opcode byte to its Instruction. It is
// populated by the DefineInstruction calls spread across the files of
// this package; every one of the 256 slots is filled, the twelve
// undocumented opcodes behaving as duplicates of NOP, JMP, CALL and
// RET.
var InstructionSet [256]Instruction

// DefineInstruction defines the instruction for the provided opcode
// in the InstructionSet.
func DefineInstruction(opcode uint8, name string, fn func(*CPU)) {
	InstructionSet[opcode] = Instruction{
		name: name,
		fn:   fn,
	}
}

// BranchCycles is the additional cost of a conditional CALL or RET
// that takes its branch.
const BranchCycles = 6

// OpCycles holds the base cycle cost of every opcode. Conditional
// CALL and RET charge BranchCycles on top when taken.
var OpCycles = [256]uint8{
	4, 10, 7, 5, 5, 5, 7, 4, 4, 10, 7, 5, 5, 5, 7, 4, // 0x00
	4, 10, 7, 5, 5, 5, 7, 4, 4, 10, 7, 5, 5, 5, 7, 4, // 0x10
	4, 10, 16, 5, 5, 5, 7, 4, 4, 10, 16, 5, 5, 5, 7, 4, // 0x20
	4, 10, 13, 5, 10, 10, 10, 4, 4, 10, 13, 5, 5, 5, 7, 4, // 0x30
	5, 5, 5, 5, 5, 5, 7, 5, 5, 5, 5, 5, 5, 5, 7, 5, // 0x40
	5, 5, 5, 5, 5, 5, 7, 5, 5, 5, 5, 5, 5, 5, 7, 5, // 0x50
	5, 5, 5, 5, 5, 5, 7, 5, 5, 5, 5, 5, 5, 5, 7, 5, // 0x60
	7, 7, 7, 7, 7, 7, 7, 7, 5, 5, 5, 5, 5, 5, 7, 5, // 0x70
	4, 4, 4, 4, 4, 4, 7, 4, 4, 4, 4, 4, 4, 4, 7, 4, // 0x80
	4, 4, 4, 4, 4, 4, 7, 4, 4, 4, 4, 4, 4, 4, 7, 4, // 0x90
	4, 4, 4, 4, 4, 4, 7, 4, 4, 4, 4, 4, 4, 4, 7, 4, // 0xA0
	4, 4, 4, 4, 4, 4, 7, 4, 4, 4, 4, 4, 4, 4, 7, 4, // 0xB0
	5, 10, 10, 10, 11, 11, 7, 11, 5, 10, 10, 10, 11, 17, 7, 11, // 0xC0
	5, 10, 10, 10, 11, 11, 7, 11, 5, 10, 10, 10, 11, 17, 7, 11, // 0xD0
	5, 10, 10, 18, 11, 11, 7, 11, 5, 5, 10, 4, 11, 17, 7, 11, // 0xE0
	5, 10, 10, 4, 11, 11, 7, 11, 5, 5, 10, 4, 11, 17, 7, 11, // 0xF0
}

func init() {
	// 0x00 and its seven undocumented aliases all behave as NOP.
	for _, opcode := range []uint8{0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38} {
		DefineInstruction(opcode, "NOP", func(c *CPU) {})
	}
	DefineInstruction(0x27, "DAA", func(c *CPU) { c.decimalAdjust() })
	DefineInstruction(0x2F, "CMA", func(c *CPU) { c.A = ^c.A })
	DefineInstruction(0x37, "STC", func(c *CPU) { c.setFlag(FlagCarry) })
	DefineInstruction(0x3F, "CMC", func(c *CPU) { c.setFlagTo(FlagCarry, !c.isFlagSet(FlagCarry)) })
	DefineInstruction(0x76, "HLT", func(c *CPU) { c.halted = true })
	DefineInstruction(0xF3, "DI", func(c *CPU) { c.intEnabled = false })
	DefineInstruction(0xFB, "EI", func(c *CPU) { c.intEnabled = true })
}
