// Package disassembler decodes 8080 machine code into textual
// records. It reads the same byte stream the CPU executes but never
// mutates it, so it can be pointed at arbitrary addresses or follow a
// running CPU for tracing.
package disassembler

import (
	"fmt"
	"strings"

	"github.com/thelolagemann/go-8080/internal/cpu"
	"github.com/thelolagemann/go-8080/internal/mmu"
)

// Record is one decoded instruction.
type Record struct {
	// Address the instruction was decoded at.
	Address uint16
	// Bytes holds the raw instruction bytes, 1 to 3 of them.
	Bytes []uint8
	// Mnemonic is the Intel assembly rendering of the instruction.
	// It is empty for undocumented opcodes.
	Mnemonic string
	// Cycles is the instruction's cycle cost. When the disassembler
	// is attached to a CPU, conditional calls and returns report the
	// cost the branch would have with the current flags.
	Cycles uint8
}

// String renders the record in listing format: address, raw bytes and
// mnemonic.
func (r Record) String() string {
	raw := make([]string, len(r.Bytes))
	for i, b := range r.Bytes {
		raw[i] = fmt.Sprintf("%02X", b)
	}
	return fmt.Sprintf("%04X  %-8s  %s", r.Address, strings.Join(raw, " "), r.Mnemonic)
}

// Disassembler decodes instructions from memory, advancing a cursor
// by each instruction's length.
type Disassembler struct {
	mmu *mmu.MMU
	cpu *cpu.CPU

	addr uint16
}

// New returns a Disassembler reading from the given MMU, with the
// cursor at address 0.
func New(m *mmu.MMU) *Disassembler {
	return &Disassembler{mmu: m}
}

// Attach attaches a CPU, enabling the conditional-branch cycle
// annotation of Next.
func (d *Disassembler) Attach(c *cpu.CPU) {
	d.cpu = c
}

// SetAddress moves the cursor to the given address.
func (d *Disassembler) SetAddress(addr uint16) {
	d.addr = addr
}

// Address returns the current cursor address.
func (d *Disassembler) Address() uint16 {
	return d.addr
}

// Next decodes the instruction at the cursor and advances the cursor
// past it.
func (d *Disassembler) Next() Record {
	opcode := d.mmu.Read(d.addr)
	decode := table[opcode]

	record := Record{
		Address: d.addr,
		Bytes:   make([]uint8, decode.length),
		Cycles:  cpu.OpCycles[opcode],
	}
	for i := range record.Bytes {
		record.Bytes[i] = d.mmu.Read(d.addr + uint16(i))
	}

	switch decode.length {
	case 2:
		record.Mnemonic = fmt.Sprintf(decode.format, record.Bytes[1])
	case 3:
		record.Mnemonic = fmt.Sprintf(decode.format, uint16(record.Bytes[2])<<8|uint16(record.Bytes[1]))
	default:
		record.Mnemonic = decode.format
	}

	// annotate conditional calls and returns with the cost they would
	// have against the live flags
	if d.cpu != nil && (opcode&0xC7 == 0xC4 || opcode&0xC7 == 0xC0) && d.cpu.ConditionMet(opcode) {
		record.Cycles += cpu.BranchCycles
	}

	d.addr += uint16(decode.length)
	return record
}
