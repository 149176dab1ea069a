package cpu

import (
	"fmt"
)

func init() {
	// ANA/XRA/ORA/CMP r, 0xA0..0xBF
	for i := uint8(0); i < 8; i++ {
		src := i
		DefineInstruction(0xA0+i, fmt.Sprintf("ANA %s", registerOperandNames[i]), func(c *CPU) {
			c.and(c.aluOperand(src))
		})
		DefineInstruction(0xA8+i, fmt.Sprintf("XRA %s", registerOperandNames[i]), func(c *CPU) {
			c.xor(c.aluOperand(src))
		})
		DefineInstruction(0xB0+i, fmt.Sprintf("ORA %s", registerOperandNames[i]), func(c *CPU) {
			c.or(c.aluOperand(src))
		})
		DefineInstruction(0xB8+i, fmt.Sprintf("CMP %s", registerOperandNames[i]), func(c *CPU) {
			c.compare(c.aluOperand(src))
		})
	}

	DefineInstruction(0xE6, "ANI d8", func(c *CPU) { c.and(c.readOperand()) })
	DefineInstruction(0xEE, "XRI d8", func(c *CPU) { c.xor(c.readOperand()) })
	DefineInstruction(0xF6, "ORI d8", func(c *CPU) { c.or(c.readOperand()) })
	DefineInstruction(0xFE, "CPI d8", func(c *CPU) { c.compare(c.readOperand()) })
}
