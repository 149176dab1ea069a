package cpu

import (
	"github.com/thelolagemann/go-8080/internal/types"
)

// rotateLeft rotates the A register left by one bit. Bit 7 is copied
// both into the carry flag and into bit 0.
//
//	RLC
func (c *CPU) rotateLeft() {
	carry := c.A >> 7
	c.A = c.A<<1 | carry
	c.setFlagTo(FlagCarry, carry == 1)
}

// rotateRight rotates the A register right by one bit. Bit 0 is
// copied both into the carry flag and into bit 7.
//
//	RRC
func (c *CPU) rotateRight() {
	carry := c.A & types.Bit0
	c.A = c.A>>1 | carry<<7
	c.setFlagTo(FlagCarry, carry == 1)
}

// rotateLeftThroughCarry rotates the A register left by one bit
// through the carry flag: the carry moves into bit 0 and bit 7 into
// the carry.
//
//	RAL
func (c *CPU) rotateLeftThroughCarry() {
	carry := c.carryIn()
	c.setFlagTo(FlagCarry, c.A&types.Bit7 != 0)
	c.A = c.A<<1 | carry
}

// rotateRightThroughCarry rotates the A register right by one bit
// through the carry flag: the carry moves into bit 7 and bit 0 into
// the carry.
//
//	RAR
func (c *CPU) rotateRightThroughCarry() {
	carry := c.carryIn()
	c.setFlagTo(FlagCarry, c.A&types.Bit0 != 0)
	c.A = c.A>>1 | carry<<7
}

func init() {
	DefineInstruction(0x07, "RLC", func(c *CPU) { c.rotateLeft() })
	DefineInstruction(0x0F, "RRC", func(c *CPU) { c.rotateRight() })
	DefineInstruction(0x17, "RAL", func(c *CPU) { c.rotateLeftThroughCarry() })
	DefineInstruction(0x1F, "RAR", func(c *CPU) { c.rotateRightThroughCarry() })
}
