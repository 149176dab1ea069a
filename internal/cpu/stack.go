package cpu

// pushByte decrements SP and stores the given value at the new top of
// the stack.
func (c *CPU) pushByte(value uint8) {
	c.SP--
	c.writeByte(c.SP, value)
}

// popByte returns the byte at the top of the stack and increments SP.
func (c *CPU) popByte() uint8 {
	value := c.readByte(c.SP)
	c.SP++
	return value
}

// pushWord pushes a 16 bit value onto the stack, high byte first, so
// that the high byte ends up at the higher address.
func (c *CPU) pushWord(value uint16) {
	c.pushByte(uint8(value >> 8))
	c.pushByte(uint8(value))
}

// popWord pops a 16 bit value off the stack, low byte first.
func (c *CPU) popWord() uint16 {
	low := uint16(c.popByte())
	high := uint16(c.popByte())
	return high<<8 | low
}

func init() {
	DefineInstruction(0xC5, "PUSH B", func(c *CPU) { c.pushWord(c.BC.Uint16()) })
	DefineInstruction(0xD5, "PUSH D", func(c *CPU) { c.pushWord(c.DE.Uint16()) })
	DefineInstruction(0xE5, "PUSH H", func(c *CPU) { c.pushWord(c.HL.Uint16()) })
	DefineInstruction(0xF5, "PUSH PSW", func(c *CPU) {
		c.pushWord(uint16(c.A)<<8 | uint16(c.F&flagMask|flagAlwaysSet))
	})

	DefineInstruction(0xC1, "POP B", func(c *CPU) { c.BC.SetUint16(c.popWord()) })
	DefineInstruction(0xD1, "POP D", func(c *CPU) { c.DE.SetUint16(c.popWord()) })
	DefineInstruction(0xE1, "POP H", func(c *CPU) { c.HL.SetUint16(c.popWord()) })
	DefineInstruction(0xF1, "POP PSW", func(c *CPU) {
		value := c.popWord()
		c.A = uint8(value >> 8)
		c.setF(uint8(value))
	})

	DefineInstruction(0xE3, "XTHL", func(c *CPU) {
		value := c.mmu.ReadWord(c.SP)
		c.mmu.WriteWord(c.SP, c.HL.Uint16())
		c.HL.SetUint16(value)
	})
	DefineInstruction(0xF9, "SPHL", func(c *CPU) { c.SP = c.HL.Uint16() })
}
