package cpu

import (
	"fmt"
)

// conditionNames maps the condition encoding of bits 3-5 of the
// conditional jump, call and return opcodes to Intel assembly names.
var conditionNames = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}

// condition evaluates the flag condition with the given encoding.
func (c *CPU) condition(index uint8) bool {
	switch index {
	case 0:
		return !c.isFlagSet(FlagZero)
	case 1:
		return c.isFlagSet(FlagZero)
	case 2:
		return !c.isFlagSet(FlagCarry)
	case 3:
		return c.isFlagSet(FlagCarry)
	case 4:
		return !c.isFlagSet(FlagParity)
	case 5:
		return c.isFlagSet(FlagParity)
	case 6:
		return !c.isFlagSet(FlagSign)
	default:
		return c.isFlagSet(FlagSign)
	}
}

// ConditionMet evaluates the flag condition encoded in bits 3-5 of a
// conditional jump, call or return opcode against the current flags.
func (c *CPU) ConditionMet(opcode uint8) bool {
	return c.condition(opcode >> 3 & 0x07)
}

// jump sets the PC to the given address.
//
//	JMP a16 / PCHL
func (c *CPU) jump(address uint16) {
	c.PC = address
}

// call pushes the address of the next instruction onto the stack and
// jumps to the given address.
//
//	CALL a16 / RST n
func (c *CPU) call(address uint16) {
	c.pushWord(c.PC)
	c.PC = address
}

// ret pops the top two bytes off the stack and jumps to that address.
//
//	RET
func (c *CPU) ret() {
	c.PC = c.popWord()
}

func init() {
	// JMP and its undocumented alias.
	for _, opcode := range []uint8{0xC3, 0xCB} {
		DefineInstruction(opcode, "JMP a16", func(c *CPU) { c.jump(c.readOperandWord()) })
	}
	// RET and its undocumented alias.
	for _, opcode := range []uint8{0xC9, 0xD9} {
		DefineInstruction(opcode, "RET", func(c *CPU) { c.ret() })
	}
	// CALL and its three undocumented aliases.
	for _, opcode := range []uint8{0xCD, 0xDD, 0xED, 0xFD} {
		DefineInstruction(opcode, "CALL a16", func(c *CPU) { c.call(c.readOperandWord()) })
	}

	// The conditional jump, call and return families, and RST.
	// Conditional calls and returns that take their branch cost
	// BranchCycles on top of the base cycle count.
	for i := uint8(0); i < 8; i++ {
		cond := i
		DefineInstruction(0xC2+i<<3, fmt.Sprintf("J%s a16", conditionNames[i]), func(c *CPU) {
			address := c.readOperandWord()
			if c.condition(cond) {
				c.jump(address)
			}
		})
		DefineInstruction(0xC4+i<<3, fmt.Sprintf("C%s a16", conditionNames[i]), func(c *CPU) {
			address := c.readOperandWord()
			if c.condition(cond) {
				c.call(address)
				c.Cycles -= BranchCycles
			}
		})
		DefineInstruction(0xC0+i<<3, fmt.Sprintf("R%s", conditionNames[i]), func(c *CPU) {
			if c.condition(cond) {
				c.ret()
				c.Cycles -= BranchCycles
			}
		})

		address := uint16(i) << 3
		DefineInstruction(0xC7+i<<3, fmt.Sprintf("RST %d", i), func(c *CPU) {
			c.call(address)
		})
	}

	DefineInstruction(0xE9, "PCHL", func(c *CPU) { c.jump(c.HL.Uint16()) })
}
