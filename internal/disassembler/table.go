package disassembler

import (
	"fmt"
)

// entry describes how to decode one opcode: a fmt template for the
// mnemonic and the total instruction length in bytes. Undocumented
// opcodes keep an empty template and decode to an empty mnemonic.
type entry struct {
	format string
	length uint8
}

// table maps every opcode byte to its decode entry.
var table [256]entry

func define(opcode uint8, format string, length uint8) {
	table[opcode] = entry{format: format, length: length}
}

// operandNames maps the 8080 encoding order to Intel assembly operand
// names.
var operandNames = [8]string{"B", "C", "D", "E", "H", "L", "M", "A"}

// conditionNames maps the condition encoding of bits 3-5 to Intel
// assembly condition suffixes.
var conditionNames = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}

func init() {
	// every slot defaults to an undocumented single-byte opcode; the
	// documented instructions overwrite theirs below
	for i := range table {
		table[i] = entry{length: 1}
	}

	define(0x00, "NOP", 1)
	define(0x01, "LXI B, $%04X", 3)
	define(0x02, "STAX B", 1)
	define(0x07, "RLC", 1)
	define(0x09, "DAD B", 1)
	define(0x0A, "LDAX B", 1)
	define(0x0F, "RRC", 1)
	define(0x11, "LXI D, $%04X", 3)
	define(0x12, "STAX D", 1)
	define(0x17, "RAL", 1)
	define(0x19, "DAD D", 1)
	define(0x1A, "LDAX D", 1)
	define(0x1F, "RAR", 1)
	define(0x21, "LXI H, $%04X", 3)
	define(0x22, "SHLD $%04X", 3)
	define(0x27, "DAA", 1)
	define(0x29, "DAD H", 1)
	define(0x2A, "LHLD $%04X", 3)
	define(0x2F, "CMA", 1)
	define(0x31, "LXI SP, $%04X", 3)
	define(0x32, "STA $%04X", 3)
	define(0x37, "STC", 1)
	define(0x39, "DAD SP", 1)
	define(0x3A, "LDA $%04X", 3)
	define(0x3F, "CMC", 1)

	for i := uint8(0); i < 4; i++ {
		define(0x03+i<<4, fmt.Sprintf("INX %s", pairNames(i)), 1)
		define(0x0B+i<<4, fmt.Sprintf("DCX %s", pairNames(i)), 1)
	}
	for i := uint8(0); i < 8; i++ {
		define(0x04+i<<3, fmt.Sprintf("INR %s", operandNames[i]), 1)
		define(0x05+i<<3, fmt.Sprintf("DCR %s", operandNames[i]), 1)
		define(0x06+i<<3, fmt.Sprintf("MVI %s, $%%02X", operandNames[i]), 2)
	}

	// the MOV grid, with HLT in the MOV M, M slot
	for i := uint8(0); i < 64; i++ {
		opcode := 0x40 + i
		if opcode == 0x76 {
			define(opcode, "HLT", 1)
			continue
		}
		define(opcode, fmt.Sprintf("MOV %s, %s", operandNames[i>>3], operandNames[i&0x07]), 1)
	}

	// the arithmetic and logic grids
	for i := uint8(0); i < 8; i++ {
		define(0x80+i, fmt.Sprintf("ADD %s", operandNames[i]), 1)
		define(0x88+i, fmt.Sprintf("ADC %s", operandNames[i]), 1)
		define(0x90+i, fmt.Sprintf("SUB %s", operandNames[i]), 1)
		define(0x98+i, fmt.Sprintf("SBB %s", operandNames[i]), 1)
		define(0xA0+i, fmt.Sprintf("ANA %s", operandNames[i]), 1)
		define(0xA8+i, fmt.Sprintf("XRA %s", operandNames[i]), 1)
		define(0xB0+i, fmt.Sprintf("ORA %s", operandNames[i]), 1)
		define(0xB8+i, fmt.Sprintf("CMP %s", operandNames[i]), 1)
	}

	// the conditional jump, call and return families, and RST
	for i := uint8(0); i < 8; i++ {
		define(0xC0+i<<3, fmt.Sprintf("R%s", conditionNames[i]), 1)
		define(0xC2+i<<3, fmt.Sprintf("J%s $%%04X", conditionNames[i]), 3)
		define(0xC4+i<<3, fmt.Sprintf("C%s $%%04X", conditionNames[i]), 3)
		define(0xC7+i<<3, fmt.Sprintf("RST %d", i), 1)
	}

	define(0xC1, "POP B", 1)
	define(0xC3, "JMP $%04X", 3)
	define(0xC5, "PUSH B", 1)
	define(0xC6, "ADI $%02X", 2)
	define(0xC9, "RET", 1)
	define(0xCD, "CALL $%04X", 3)
	define(0xCE, "ACI $%02X", 2)
	define(0xD1, "POP D", 1)
	define(0xD3, "OUT $%02X", 2)
	define(0xD5, "PUSH D", 1)
	define(0xD6, "SUI $%02X", 2)
	define(0xDB, "IN $%02X", 2)
	define(0xDE, "SBI $%02X", 2)
	define(0xE1, "POP H", 1)
	define(0xE3, "XTHL", 1)
	define(0xE5, "PUSH H", 1)
	define(0xE6, "ANI $%02X", 2)
	define(0xE9, "PCHL", 1)
	define(0xEB, "XCHG", 1)
	define(0xEE, "XRI $%02X", 2)
	define(0xF1, "POP PSW", 1)
	define(0xF3, "DI", 1)
	define(0xF5, "PUSH PSW", 1)
	define(0xF6, "ORI $%02X", 2)
	define(0xF9, "SPHL", 1)
	define(0xFB, "EI", 1)
	define(0xFE, "CPI $%02X", 2)
}

// pairNames returns the Intel assembly name of the register pair with
// the given encoding in bits 4-5 of the INX, DCX, DAD and LXI groups.
func pairNames(index uint8) string {
	switch index & 0x03 {
	case 0:
		return "B"
	case 1:
		return "D"
	case 2:
		return "H"
	default:
		return "SP"
	}
}
