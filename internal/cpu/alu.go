package cpu

import (
	"github.com/thelolagemann/go-8080/internal/types"
)

// add adds n and the carry-in to the A register. The sum is computed
// in 9 bits so that the carry flag reflects the full A + n + carry
// result even when n is 0xFF and the carry is set.
//
//	ADD n / ADC n
//	n = d8, B, C, D, E, H, L, M, A
//
// Flags affected:
//
//	S, Z, P - Set from the result.
//	AC - Set on a carry out of bit 3.
//	C - Set on a carry out of bit 7.
func (c *CPU) add(n, carry uint8) {
	result := uint16(c.A) + uint16(n) + uint16(carry)
	c.setFlagTo(FlagAuxCarry, (c.A&0x0F)+(n&0x0F)+carry > 0x0F)
	c.setFlagTo(FlagCarry, result > 0xFF)
	c.A = uint8(result)
	c.setResultFlags(c.A)
}

// subtract subtracts n and the borrow-in from the A register and
// returns the result without writing it back. The subtraction is
// performed as A + ^n + (1 - borrow), which yields the auxiliary
// carry the hardware produces for the two's-complement addition.
//
//	SUB n / SBB n / CMP n
//	n = d8, B, C, D, E, H, L, M, A
//
// Flags affected:
//
//	S, Z, P - Set from the result.
//	AC - Set on a carry out of bit 3 of the complement addition.
//	C - Set on a borrow.
func (c *CPU) subtract(n, borrow uint8) uint8 {
	result := uint16(c.A) + uint16(^n) + uint16(1-borrow)
	c.setFlagTo(FlagAuxCarry, (c.A&0x0F)+(^n&0x0F)+(1-borrow) > 0x0F)
	c.setFlagTo(FlagCarry, result <= 0xFF)
	c.setResultFlags(uint8(result))
	return uint8(result)
}

// and performs a bitwise AND operation on n and the A register.
//
//	ANA n / ANI d8
//
// Flags affected:
//
//	S, Z, P - Set from the result.
//	AC - Set to bit 3 of A OR n, per the 8080/8085 assembly manual.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.setFlagTo(FlagAuxCarry, (c.A|n)&types.Bit3 != 0)
	c.A &= n
	c.clearFlag(FlagCarry)
	c.setResultFlags(c.A)
}

// or performs a bitwise OR operation on n and the A register.
//
//	ORA n / ORI d8
//
// Flags affected:
//
//	S, Z, P - Set from the result.
//	AC, C - Reset.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.clearFlag(FlagCarry | FlagAuxCarry)
	c.setResultFlags(c.A)
}

// xor performs a bitwise XOR operation on n and the A register.
//
//	XRA n / XRI d8
//
// Flags affected:
//
//	S, Z, P - Set from the result.
//	AC, C - Reset.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.clearFlag(FlagCarry | FlagAuxCarry)
	c.setResultFlags(c.A)
}

// compare subtracts n from the A register for its flag effects and
// discards the result.
//
//	CMP n / CPI d8
func (c *CPU) compare(n uint8) {
	c.subtract(n, 0)
}

// increment increments n by 1. The carry flag is not affected.
//
//	INR n
//
// Flags affected:
//
//	S, Z, P - Set from the result.
//	AC - Set when the low nibble wraps.
func (c *CPU) increment(n uint8) uint8 {
	result := n + 1
	c.setFlagTo(FlagAuxCarry, n&0x0F == 0x0F)
	c.setResultFlags(result)
	return result
}

// decrement decrements n by 1. The carry flag is not affected.
//
//	DCR n
//
// Flags affected:
//
//	S, Z, P - Set from the result.
//	AC - Set when the low nibble does not borrow.
func (c *CPU) decrement(n uint8) uint8 {
	result := n - 1
	c.setFlagTo(FlagAuxCarry, n&0x0F != 0)
	c.setResultFlags(result)
	return result
}

// addHL adds the given word to HL.
//
//	DAD rp
//	rp = BC, DE, HL, SP
//
// Flags affected:
//
//	C - Set on a carry out of bit 15. S, Z, P and AC are untouched.
func (c *CPU) addHL(value uint16) {
	result := uint32(c.HL.Uint16()) + uint32(value)
	c.HL.SetUint16(uint16(result))
	c.setFlagTo(FlagCarry, result > 0xFFFF)
}

// decimalAdjust adjusts the A register after a binary addition of
// packed BCD operands. The low nibble is corrected first, then the
// high nibble; the carry flag is sticky across the adjustment.
//
//	DAA
func (c *CPU) decimalAdjust() {
	carry := c.isFlagSet(FlagCarry)
	adjust := uint8(0)
	if c.A&0x0F > 0x09 || c.isFlagSet(FlagAuxCarry) {
		adjust |= 0x06
	}
	if c.A>>4 > 0x09 || carry || (c.A>>4 == 0x09 && c.A&0x0F > 0x09) {
		adjust |= 0x60
		carry = true
	}
	c.add(adjust, 0)
	c.setFlagTo(FlagCarry, carry)
}
