package cpu

import (
	"math/bits"

	"github.com/thelolagemann/go-8080/internal/types"
)

// Flag is a mask into the F register. Masks may be combined to
// address several flags at once.
type Flag = uint8

const (
	// FlagCarry is set on a carry out of bit 7, or the shifted out
	// bit of a rotate.
	FlagCarry Flag = types.Bit0
	// FlagParity is set when the result byte has even parity.
	FlagParity Flag = types.Bit2
	// FlagAuxCarry is set on a carry out of bit 3.
	FlagAuxCarry Flag = types.Bit4
	// FlagZero is set when the result byte is zero.
	FlagZero Flag = types.Bit6
	// FlagSign is set to bit 7 of the result byte.
	FlagSign Flag = types.Bit7

	// flagAlwaysSet is bit 1 of F, which reads as 1 on the 8080.
	flagAlwaysSet = types.Bit1
	// flagMask covers the five meaningful flag bits. Writes to F
	// through POP PSW are masked with it so that the reserved bits
	// keep their fixed values.
	flagMask = FlagCarry | FlagParity | FlagAuxCarry | FlagZero | FlagSign
)

// setFlag sets all flags in the given mask.
func (c *CPU) setFlag(flag Flag) {
	c.F |= flag
}

// clearFlag clears all flags in the given mask.
func (c *CPU) clearFlag(flag Flag) {
	c.F &^= flag
}

// setFlagTo sets or clears all flags in the given mask.
func (c *CPU) setFlagTo(flag Flag, value bool) {
	if value {
		c.F |= flag
	} else {
		c.F &^= flag
	}
}

// isFlagSet returns true if every flag in the given mask is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.F&flag == flag
}

// TestFlags returns true if every flag in the given mask is set. It is
// the exported counterpart of isFlagSet for embedders and the
// disassembler's branch annotations.
func (c *CPU) TestFlags(flag Flag) bool {
	return c.isFlagSet(flag)
}

// SetFlags sets all flags in the given mask.
func (c *CPU) SetFlags(flag Flag) {
	c.setFlag(flag)
}

// ClearFlags clears all flags in the given mask.
func (c *CPU) ClearFlags(flag Flag) {
	c.clearFlag(flag)
}

// setResultFlags sets the sign, zero and parity flags from the given
// result byte.
func (c *CPU) setResultFlags(result uint8) {
	c.setFlagTo(FlagSign, result&types.Bit7 != 0)
	c.setFlagTo(FlagZero, result == 0)
	c.setFlagTo(FlagParity, bits.OnesCount8(result)%2 == 0)
}

// setF restores the F register from a byte popped off the stack,
// keeping the reserved bits at their fixed values.
func (c *CPU) setF(value uint8) {
	c.F = value&flagMask | flagAlwaysSet
}
