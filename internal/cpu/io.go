package cpu

func init() {
	// The port number is the operand byte; ports are natural 0..255
	// indices, directly addressable by the opcode immediate.
	DefineInstruction(0xDB, "IN d8", func(c *CPU) { c.A = c.mmu.ReadIO(c.readOperand()) })
	DefineInstruction(0xD3, "OUT d8", func(c *CPU) { c.mmu.WriteIO(c.readOperand(), c.A) })
}
