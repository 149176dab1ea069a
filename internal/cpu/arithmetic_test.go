package cpu

import (
	"testing"
)

func TestALU_Add(t *testing.T) {
	c := newTestCPU()

	// the full add surface: result, carry and auxiliary carry for
	// every pair of operands
	for a := 0; a < 256; a++ {
		for n := 0; n < 256; n++ {
			c.A = uint8(a)
			c.add(uint8(n), 0)

			if c.A != uint8(a+n) {
				t.Fatalf("ADD 0x%02X + 0x%02X: expected 0x%02X, got 0x%02X", a, n, uint8(a+n), c.A)
			}
			if c.isFlagSet(FlagCarry) != (a+n > 0xFF) {
				t.Fatalf("ADD 0x%02X + 0x%02X: expected carry %t", a, n, a+n > 0xFF)
			}
			if c.isFlagSet(FlagAuxCarry) != (a&0x0F+n&0x0F > 0x0F) {
				t.Fatalf("ADD 0x%02X + 0x%02X: expected aux carry %t", a, n, a&0x0F+n&0x0F > 0x0F)
			}
		}
	}
}

func TestALU_AddCarryPropagation(t *testing.T) {
	c := newTestCPU()

	// the 9-bit edge: adding 0xFF with the carry in must still carry
	// out even though the 8-bit operand sum wraps to zero
	c.A = 0x01
	c.setFlag(FlagCarry)
	c.add(0xFF, c.carryIn())

	if c.A != 0x01 {
		t.Errorf("Expected A to be 0x01, got 0x%02X", c.A)
	}
	if !c.isFlagSet(FlagCarry) {
		t.Error("Expected carry out of the full 8+8+1 sum")
	}
	if !c.isFlagSet(FlagAuxCarry) {
		t.Error("Expected aux carry out of the full nibble sum")
	}
}

func TestALU_Subtract(t *testing.T) {
	c := newTestCPU()

	for a := 0; a < 256; a++ {
		for n := 0; n < 256; n++ {
			c.A = uint8(a)
			c.A = c.subtract(uint8(n), 0)

			if c.A != uint8(a-n) {
				t.Fatalf("SUB 0x%02X - 0x%02X: expected 0x%02X, got 0x%02X", a, n, uint8(a-n), c.A)
			}
			// the carry flag is a borrow
			if c.isFlagSet(FlagCarry) != (n > a) {
				t.Fatalf("SUB 0x%02X - 0x%02X: expected borrow %t", a, n, n > a)
			}
		}
	}
}

func TestALU_SubtractBorrowPropagation(t *testing.T) {
	c := newTestCPU()

	// the 9-bit edge on the subtract side: A - 0xFF - 1 always borrows
	c.A = 0x00
	c.setFlag(FlagCarry)
	c.A = c.subtract(0xFF, c.carryIn())

	if c.A != 0x00 {
		t.Errorf("Expected A to be 0x00, got 0x%02X", c.A)
	}
	if !c.isFlagSet(FlagCarry) {
		t.Error("Expected borrow from the full subtraction")
	}
}

func TestALU_Compare(t *testing.T) {
	c := newTestCPU()

	c.A = 0x3E
	c.compare(0x3E)
	if c.A != 0x3E {
		t.Errorf("Expected A to be unchanged, got 0x%02X", c.A)
	}
	if !c.isFlagSet(FlagZero) {
		t.Error("Expected zero comparing equal values")
	}

	c.compare(0x40)
	if !c.isFlagSet(FlagCarry) {
		t.Error("Expected borrow comparing against a larger value")
	}
}

func TestALU_And(t *testing.T) {
	c := newTestCPU()

	c.A = 0xFC
	c.setFlag(FlagCarry)
	c.and(0x0F)

	if c.A != 0x0C {
		t.Errorf("Expected A to be 0x0C, got 0x%02X", c.A)
	}
	if c.isFlagSet(FlagCarry) {
		t.Error("Expected carry to be reset")
	}
	// AC follows bit 3 of A OR n
	if !c.isFlagSet(FlagAuxCarry) {
		t.Error("Expected aux carry from bit 3 of the operands")
	}
}

func TestALU_OrXor(t *testing.T) {
	c := newTestCPU()

	c.A = 0x0F
	c.setFlag(FlagCarry | FlagAuxCarry)
	c.or(0xF0)
	if c.A != 0xFF {
		t.Errorf("Expected A to be 0xFF, got 0x%02X", c.A)
	}
	if c.isFlagSet(FlagCarry) || c.isFlagSet(FlagAuxCarry) {
		t.Error("Expected carry and aux carry to be reset")
	}

	c.setFlag(FlagCarry)
	c.xor(0xFF)
	if c.A != 0x00 {
		t.Errorf("Expected A to be 0x00, got 0x%02X", c.A)
	}
	if !c.isFlagSet(FlagZero) || c.isFlagSet(FlagCarry) {
		t.Errorf("Expected zero set and carry reset, F is 0x%02X", c.F)
	}
}

func TestALU_IncrementDecrement(t *testing.T) {
	c := newTestCPU()

	// INR and DCR leave the carry flag alone
	c.setFlag(FlagCarry)
	if got := c.increment(0x0F); got != 0x10 {
		t.Errorf("Expected 0x10, got 0x%02X", got)
	}
	if !c.isFlagSet(FlagAuxCarry) {
		t.Error("Expected aux carry when the low nibble wraps")
	}
	if !c.isFlagSet(FlagCarry) {
		t.Error("Expected carry to be untouched")
	}

	if got := c.decrement(0x00); got != 0xFF {
		t.Errorf("Expected 0xFF, got 0x%02X", got)
	}
	if c.isFlagSet(FlagAuxCarry) {
		t.Error("Expected aux carry clear when the low nibble borrows")
	}
	if !c.isFlagSet(FlagSign) {
		t.Error("Expected sign from 0xFF")
	}
}

func TestALU_DecimalAdjust(t *testing.T) {
	c := newTestCPU()

	// 0x09 + 0x08 = 0x11 binary, 17 decimal
	c.A = 0x09
	c.add(0x08, 0)
	c.decimalAdjust()
	if c.A != 0x17 {
		t.Errorf("Expected A to be 0x17, got 0x%02X", c.A)
	}
	if c.isFlagSet(FlagCarry) {
		t.Error("Expected no decimal carry")
	}

	// 0x99 + 0x01 = 0x9A binary, 100 decimal: wraps with carry
	c.A = 0x99
	c.add(0x01, 0)
	c.decimalAdjust()
	if c.A != 0x00 {
		t.Errorf("Expected A to be 0x00, got 0x%02X", c.A)
	}
	if !c.isFlagSet(FlagCarry) {
		t.Error("Expected decimal carry")
	}
	if !c.isFlagSet(FlagZero) {
		t.Error("Expected zero")
	}
}

func TestALU_AddHL(t *testing.T) {
	c := newTestCPU()

	c.HL.SetUint16(0x339F)
	c.addHL(0x339F)
	if c.HL.Uint16() != 0x673E {
		t.Errorf("Expected HL to be 0x673E, got 0x%04X", c.HL.Uint16())
	}
	if c.isFlagSet(FlagCarry) {
		t.Error("Expected no carry")
	}

	c.HL.SetUint16(0xFFFF)
	c.addHL(0x0001)
	if c.HL.Uint16() != 0x0000 {
		t.Errorf("Expected HL to wrap to 0x0000, got 0x%04X", c.HL.Uint16())
	}
	if !c.isFlagSet(FlagCarry) {
		t.Error("Expected carry out of bit 15")
	}
}
