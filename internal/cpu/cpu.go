// Package cpu implements an instruction accurate interpreter for the
// Intel 8080. It is responsible for fetching, dispatching and executing
// instructions against the memory and I/O spaces owned by the MMU.
package cpu

import (
	"github.com/thelolagemann/go-8080/internal/mmu"
	"github.com/thelolagemann/go-8080/internal/types"
)

const (
	// ClockSpeed is the clock speed of the CPU in Hz.
	ClockSpeed = 2_000_000
	// DefaultIntFrequency is the interrupt frequency assumed until the
	// host configures one with SetIntPeriod.
	DefaultIntFrequency = 60
)

// CPU represents the 8080 CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	mmu *mmu.MMU

	// Cycles counts down to the next interrupt deadline. Exec surrenders
	// control to the host each time it crosses zero.
	Cycles    int64
	intPeriod int64

	intEnabled bool
	halted     bool

	origin   uint16
	fileSize uint16

	// OnCycleBudget is invoked from Exec whenever the cycle budget
	// expires, before the budget is replenished. The callback must not
	// reenter Exec or Run.
	OnCycleBudget func()
}

// NewCPU creates a new CPU instance with the given MMU.
// The MMU is used to read and write to the memory and I/O spaces.
func NewCPU(mmu *mmu.MMU) *CPU {
	c := &CPU{
		Registers: Registers{},
		mmu:       mmu,
		intPeriod: ClockSpeed / DefaultIntFrequency,
	}
	// create register pairs
	c.AF = &types.RegisterPair{High: &c.A, Low: &c.F}
	c.BC = &types.RegisterPair{High: &c.B, Low: &c.C}
	c.DE = &types.RegisterPair{High: &c.D, Low: &c.E}
	c.HL = &types.RegisterPair{High: &c.H, Low: &c.L}

	c.F = flagAlwaysSet
	c.Cycles = c.intPeriod

	return c
}

// LoadProgram copies the program into memory at the configured origin
// and records its size, which Run uses as a termination bound.
func (c *CPU) LoadProgram(program []uint8) {
	c.mmu.WriteBytes(c.origin, program)
	c.fileSize = uint16(len(program))
}

// Reset returns the CPU to its power-on state: registers and flags
// zeroed, PC at the configured origin and the cycle counter at one
// full interrupt period. Memory is left untouched.
func (c *CPU) Reset() {
	c.A, c.B, c.C, c.D, c.E, c.H, c.L = 0, 0, 0, 0, 0, 0, 0
	c.F = flagAlwaysSet
	c.SP = 0
	c.PC = c.origin
	c.intEnabled = false
	c.halted = false
	c.Cycles = c.intPeriod
}

// SetOrigin configures the address programs are loaded at and the PC
// is reset to.
func (c *CPU) SetOrigin(origin uint16) {
	c.origin = origin
}

// Origin returns the configured program origin.
func (c *CPU) Origin() uint16 {
	return c.origin
}

// SetIntPeriod derives the interrupt period from the desired interrupt
// frequency in Hz at the 2 MHz clock.
func (c *CPU) SetIntPeriod(freq int64) {
	c.intPeriod = ClockSpeed / freq
	c.Cycles = c.intPeriod
}

// IntPeriod returns the configured interrupt period in cycles.
func (c *CPU) IntPeriod() int64 {
	return c.intPeriod
}

// Halted reports whether the CPU has executed HLT and is waiting for
// an interrupt.
func (c *CPU) Halted() bool {
	return c.halted
}

// InterruptsEnabled reports the state of the interrupt-enable latch.
func (c *CPU) InterruptsEnabled() bool {
	return c.intEnabled
}

// readInstruction reads the next instruction from memory.
func (c *CPU) readInstruction() uint8 {
	value := c.mmu.Read(c.PC)
	c.PC++
	return value
}

// readOperand reads the next operand byte from memory.
func (c *CPU) readOperand() uint8 {
	value := c.mmu.Read(c.PC)
	c.PC++
	return value
}

// readOperandWord reads the next operand word from memory, low byte first.
func (c *CPU) readOperandWord() uint16 {
	low := c.readOperand()
	high := c.readOperand()
	return uint16(high)<<8 | uint16(low)
}

// readByte reads a byte from memory.
func (c *CPU) readByte(addr uint16) uint8 {
	return c.mmu.Read(addr)
}

// writeByte writes the given value to the given address.
func (c *CPU) writeByte(addr uint16, val uint8) {
	c.mmu.Write(addr, val)
}

// memoryReference returns the address held in HL, the implicit "M"
// operand of the MOV and arithmetic groups.
func (c *CPU) memoryReference() uint16 {
	return c.HL.Uint16()
}

// Step executes a single instruction and charges its base cycle cost.
// A halted CPU idles at NOP cost so that Exec still drains its budget
// while waiting for an interrupt.
func (c *CPU) Step() {
	if c.halted {
		c.Cycles -= int64(OpCycles[0x00])
		return
	}
	opcode := c.readInstruction()
	c.Cycles -= int64(OpCycles[opcode])
	InstructionSet[opcode].fn(c)
}

// PastProgram reports whether the PC has run beyond the loaded
// program image.
func (c *CPU) PastProgram() bool {
	return c.fileSize > 0 && c.PC >= c.origin+c.fileSize
}

// Run iterates Step until the CPU halts, the PC wraps to zero or the
// PC runs past the loaded program. The termination bounds are a
// diagnostic convenience; embedders wanting finer control should
// drive Step or Exec directly.
func (c *CPU) Run() {
	for !c.halted {
		c.Step()
		if c.PC == 0 || c.PastProgram() {
			return
		}
	}
}

// Exec iterates Step until the cycle budget crosses zero, then fires
// the host callback and replenishes the budget. The host typically
// injects an interrupt opcode from the callback or right after Exec
// returns.
func (c *CPU) Exec() {
	for c.Cycles > 0 {
		c.Step()
	}
	if c.OnCycleBudget != nil {
		c.OnCycleBudget()
	}
	c.Cycles += c.intPeriod
}

// Interrupt executes the given opcode as if it had been fetched,
// without advancing the PC past it. It is a no-op unless the
// interrupt-enable latch is set; accepting an interrupt clears the
// latch and wakes a halted CPU.
func (c *CPU) Interrupt(opcode uint8) {
	if !c.intEnabled {
		return
	}
	c.intEnabled = false
	c.halted = false
	c.Cycles -= int64(OpCycles[opcode])
	InstructionSet[opcode].fn(c)
}

var _ types.Stater = (*CPU)(nil)

func (c *CPU) Load(s *types.State) {
	c.A = s.Read8()
	c.F = s.Read8()
	c.B = s.Read8()
	c.C = s.Read8()
	c.D = s.Read8()
	c.E = s.Read8()
	c.H = s.Read8()
	c.L = s.Read8()
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.intEnabled = s.ReadBool()
	c.halted = s.ReadBool()
	c.Cycles = int64(int32(s.Read32()))
}

func (c *CPU) Save(s *types.State) {
	s.Write8(c.A)
	s.Write8(c.F)
	s.Write8(c.B)
	s.Write8(c.C)
	s.Write8(c.D)
	s.Write8(c.E)
	s.Write8(c.H)
	s.Write8(c.L)
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.WriteBool(c.intEnabled)
	s.WriteBool(c.halted)
	s.Write32(uint32(c.Cycles))
}
