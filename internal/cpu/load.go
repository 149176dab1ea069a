package cpu

import (
	"fmt"
)

func init() {
	// The MOV grid: 0x40..0x7F moves between the eight operand slots,
	// with slot 6 referencing memory through HL. 0x76 would be
	// MOV M, M and is taken by HLT instead.
	for i := uint8(0); i < 64; i++ {
		opcode := 0x40 + i
		if opcode == 0x76 {
			continue
		}
		dst, src := i>>3, i&0x07
		name := fmt.Sprintf("MOV %s, %s", registerOperandNames[dst], registerOperandNames[src])
		switch {
		case dst == 6:
			src := src
			DefineInstruction(opcode, name, func(c *CPU) {
				c.writeByte(c.memoryReference(), *c.registerIndex(src))
			})
		case src == 6:
			dst := dst
			DefineInstruction(opcode, name, func(c *CPU) {
				*c.registerIndex(dst) = c.readByte(c.memoryReference())
			})
		default:
			dst, src := dst, src
			DefineInstruction(opcode, name, func(c *CPU) {
				*c.registerIndex(dst) = *c.registerIndex(src)
			})
		}
	}

	// MVI r, d8 / MVI M, d8
	for i := uint8(0); i < 8; i++ {
		opcode := 0x06 + i<<3
		name := fmt.Sprintf("MVI %s, d8", registerOperandNames[i])
		if i == 6 {
			DefineInstruction(opcode, name, func(c *CPU) {
				c.writeByte(c.memoryReference(), c.readOperand())
			})
			continue
		}
		dst := i
		DefineInstruction(opcode, name, func(c *CPU) {
			*c.registerIndex(dst) = c.readOperand()
		})
	}

	DefineInstruction(0x01, "LXI B, d16", func(c *CPU) { c.BC.SetUint16(c.readOperandWord()) })
	DefineInstruction(0x11, "LXI D, d16", func(c *CPU) { c.DE.SetUint16(c.readOperandWord()) })
	DefineInstruction(0x21, "LXI H, d16", func(c *CPU) { c.HL.SetUint16(c.readOperandWord()) })
	DefineInstruction(0x31, "LXI SP, d16", func(c *CPU) { c.SP = c.readOperandWord() })

	DefineInstruction(0x02, "STAX B", func(c *CPU) { c.writeByte(c.BC.Uint16(), c.A) })
	DefineInstruction(0x12, "STAX D", func(c *CPU) { c.writeByte(c.DE.Uint16(), c.A) })
	DefineInstruction(0x0A, "LDAX B", func(c *CPU) { c.A = c.readByte(c.BC.Uint16()) })
	DefineInstruction(0x1A, "LDAX D", func(c *CPU) { c.A = c.readByte(c.DE.Uint16()) })

	DefineInstruction(0x22, "SHLD a16", func(c *CPU) {
		address := c.readOperandWord()
		c.writeByte(address, c.L)
		c.writeByte(address+1, c.H)
	})
	DefineInstruction(0x2A, "LHLD a16", func(c *CPU) {
		address := c.readOperandWord()
		c.L = c.readByte(address)
		c.H = c.readByte(address + 1)
	})
	DefineInstruction(0x32, "STA a16", func(c *CPU) { c.writeByte(c.readOperandWord(), c.A) })
	DefineInstruction(0x3A, "LDA a16", func(c *CPU) { c.A = c.readByte(c.readOperandWord()) })

	DefineInstruction(0xEB, "XCHG", func(c *CPU) {
		c.H, c.D = c.D, c.H
		c.L, c.E = c.E, c.L
	})
}
