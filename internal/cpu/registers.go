package cpu

import (
	"fmt"

	"github.com/thelolagemann/go-8080/internal/types"
)

// Registers represents the 8080 CPU registers.
type Registers struct {
	A types.Register
	F types.Register
	B types.Register
	C types.Register
	D types.Register
	E types.Register
	H types.Register
	L types.Register

	AF *types.RegisterPair
	BC *types.RegisterPair
	DE *types.RegisterPair
	HL *types.RegisterPair
}

// registerIndex returns a Register pointer for the given index, using
// the 8080 encoding order B, C, D, E, H, L, M, A. Index 6 is the
// memory operand and has no backing register.
func (c *CPU) registerIndex(index uint8) *types.Register {
	switch index {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	case 4:
		return &c.H
	case 5:
		return &c.L
	case 7:
		return &c.A
	}
	panic(fmt.Sprintf("invalid register index: %d", index))
}

// registerOperandNames maps the 8080 encoding order to Intel assembly
// operand names. Index 6 is the memory reference through HL.
var registerOperandNames = [8]string{"B", "C", "D", "E", "H", "L", "M", "A"}
