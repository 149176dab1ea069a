package cpu

import (
	"fmt"
)

// carryIn returns 1 when the carry flag is set, for the ADC and SBB
// families.
func (c *CPU) carryIn() uint8 {
	if c.isFlagSet(FlagCarry) {
		return 1
	}
	return 0
}

// aluOperand returns the value of the 8080 operand slot: a register,
// or the byte at (HL) for slot 6.
func (c *CPU) aluOperand(index uint8) uint8 {
	if index == 6 {
		return c.readByte(c.memoryReference())
	}
	return *c.registerIndex(index)
}

func init() {
	// ADD/ADC/SUB/SBB r, 0x80..0x9F
	for i := uint8(0); i < 8; i++ {
		src := i
		DefineInstruction(0x80+i, fmt.Sprintf("ADD %s", registerOperandNames[i]), func(c *CPU) {
			c.add(c.aluOperand(src), 0)
		})
		DefineInstruction(0x88+i, fmt.Sprintf("ADC %s", registerOperandNames[i]), func(c *CPU) {
			c.add(c.aluOperand(src), c.carryIn())
		})
		DefineInstruction(0x90+i, fmt.Sprintf("SUB %s", registerOperandNames[i]), func(c *CPU) {
			c.A = c.subtract(c.aluOperand(src), 0)
		})
		DefineInstruction(0x98+i, fmt.Sprintf("SBB %s", registerOperandNames[i]), func(c *CPU) {
			c.A = c.subtract(c.aluOperand(src), c.carryIn())
		})
	}

	DefineInstruction(0xC6, "ADI d8", func(c *CPU) { c.add(c.readOperand(), 0) })
	DefineInstruction(0xCE, "ACI d8", func(c *CPU) { c.add(c.readOperand(), c.carryIn()) })
	DefineInstruction(0xD6, "SUI d8", func(c *CPU) { c.A = c.subtract(c.readOperand(), 0) })
	DefineInstruction(0xDE, "SBI d8", func(c *CPU) { c.A = c.subtract(c.readOperand(), c.carryIn()) })

	// INR r / DCR r, 0x04..0x3D step 8
	for i := uint8(0); i < 8; i++ {
		name := registerOperandNames[i]
		if i == 6 {
			DefineInstruction(0x04+i<<3, "INR M", func(c *CPU) {
				c.writeByte(c.memoryReference(), c.increment(c.readByte(c.memoryReference())))
			})
			DefineInstruction(0x05+i<<3, "DCR M", func(c *CPU) {
				c.writeByte(c.memoryReference(), c.decrement(c.readByte(c.memoryReference())))
			})
			continue
		}
		reg := i
		DefineInstruction(0x04+i<<3, fmt.Sprintf("INR %s", name), func(c *CPU) {
			*c.registerIndex(reg) = c.increment(*c.registerIndex(reg))
		})
		DefineInstruction(0x05+i<<3, fmt.Sprintf("DCR %s", name), func(c *CPU) {
			*c.registerIndex(reg) = c.decrement(*c.registerIndex(reg))
		})
	}

	// INX/DCX do not touch the flags.
	DefineInstruction(0x03, "INX B", func(c *CPU) { c.BC.SetUint16(c.BC.Uint16() + 1) })
	DefineInstruction(0x13, "INX D", func(c *CPU) { c.DE.SetUint16(c.DE.Uint16() + 1) })
	DefineInstruction(0x23, "INX H", func(c *CPU) { c.HL.SetUint16(c.HL.Uint16() + 1) })
	DefineInstruction(0x33, "INX SP", func(c *CPU) { c.SP++ })
	DefineInstruction(0x0B, "DCX B", func(c *CPU) { c.BC.SetUint16(c.BC.Uint16() - 1) })
	DefineInstruction(0x1B, "DCX D", func(c *CPU) { c.DE.SetUint16(c.DE.Uint16() - 1) })
	DefineInstruction(0x2B, "DCX H", func(c *CPU) { c.HL.SetUint16(c.HL.Uint16() - 1) })
	DefineInstruction(0x3B, "DCX SP", func(c *CPU) { c.SP-- })

	DefineInstruction(0x09, "DAD B", func(c *CPU) { c.addHL(c.BC.Uint16()) })
	DefineInstruction(0x19, "DAD D", func(c *CPU) { c.addHL(c.DE.Uint16()) })
	DefineInstruction(0x29, "DAD H", func(c *CPU) { c.addHL(c.HL.Uint16()) })
	DefineInstruction(0x39, "DAD SP", func(c *CPU) { c.addHL(c.SP) })
}
