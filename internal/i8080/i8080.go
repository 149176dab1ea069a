// Package i8080 provides an emulation of an Intel 8080 machine.
//
// It ties the CPU, the memory and I/O spaces and the optional CP/M
// overlay together, and is the main entry point for embedders.
package i8080

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/thelolagemann/go-8080/internal/cpm"
	"github.com/thelolagemann/go-8080/internal/cpu"
	"github.com/thelolagemann/go-8080/internal/disassembler"
	"github.com/thelolagemann/go-8080/internal/mmu"
	"github.com/thelolagemann/go-8080/internal/types"
	"github.com/thelolagemann/go-8080/pkg/log"
)

// ClockSpeed is the clock speed of the emulated machine.
const ClockSpeed = cpu.ClockSpeed

// Machine represents an 8080 machine. It contains all the components
// of the emulated system and is the main entry point for the emulator.
type Machine struct {
	CPU  *cpu.CPU
	MMU  *mmu.MMU
	BDOS *cpm.BDOS

	log.Logger

	dis     *disassembler.Disassembler
	debug   bool
	w       io.Writer
	program []uint8
}

// Opt configures a Machine.
type Opt func(m *Machine)

// Debug attaches a disassembler that traces each instruction, with
// its register context, before it executes.
func Debug() Opt {
	return func(m *Machine) {
		m.debug = true
	}
}

// WithOrigin sets the address programs are loaded at and the PC is
// reset to.
func WithOrigin(origin uint16) Opt {
	return func(m *Machine) {
		m.CPU.SetOrigin(origin)
	}
}

// WithIntFrequency sets the interrupt frequency in Hz, from which the
// CPU derives its cycle budget per Exec slice.
func WithIntFrequency(freq int64) Opt {
	return func(m *Machine) {
		m.CPU.SetIntPeriod(freq)
	}
}

// WithLogger attaches a logger to the machine. The CP/M overlay is not
// affected; it takes its own logger through cpm.WithLogger.
func WithLogger(l log.Logger) Opt {
	return func(m *Machine) {
		m.Logger = l
	}
}

// WithDebugWriter redirects the debug trace, which defaults to stdout.
func WithDebugWriter(w io.Writer) Opt {
	return func(m *Machine) {
		m.w = w
	}
}

// CPM attaches the CP/M overlay and moves the origin to the CP/M
// transient program area.
func CPM(opts ...cpm.Opt) Opt {
	return func(m *Machine) {
		m.BDOS = cpm.New(m.CPU, m.MMU, opts...)
		m.CPU.SetOrigin(cpm.DefaultOrigin)
	}
}

// New returns a new Machine.
func New(opts ...Opt) *Machine {
	bus := mmu.NewMMU()
	m := &Machine{
		CPU:    cpu.NewCPU(bus),
		MMU:    bus,
		Logger: log.NewNullLogger(),
		w:      os.Stdout,
	}
	m.dis = disassembler.New(bus)
	m.dis.Attach(m.CPU)

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Load copies the program image into memory at the configured origin.
func (m *Machine) Load(program []uint8) {
	m.program = program
	m.CPU.LoadProgram(program)
}

// Reset returns the machine to its power-on state and reloads the
// program image, if one has been loaded.
func (m *Machine) Reset() {
	m.MMU.Reset()
	m.CPU.Reset()
	if m.program != nil {
		m.CPU.LoadProgram(m.program)
	}
}

// Step executes a single instruction, tracing it first in debug mode,
// and runs the overlay intercept afterwards.
func (m *Machine) Step() error {
	if m.debug {
		m.trace()
	}
	m.CPU.Step()
	if m.BDOS != nil {
		if _, err := m.BDOS.Intercept(); err != nil {
			return err
		}
	}
	return nil
}

// Run iterates Step until the CPU halts, the guest terminates through
// the overlay, or the PC runs out of the loaded program.
func (m *Machine) Run() error {
	for !m.CPU.Halted() {
		if err := m.Step(); err != nil {
			return err
		}
		if (m.CPU.PC == 0 && m.BDOS == nil) || m.CPU.PastProgram() {
			return nil
		}
	}
	return nil
}

// Exec executes instructions until the CPU's cycle budget for the
// current interrupt period is exhausted, then returns control to the
// host. The host may deliver an interrupt opcode before the next
// slice.
func (m *Machine) Exec() error {
	for m.CPU.Cycles > 0 {
		if err := m.Step(); err != nil {
			return err
		}
	}
	m.CPU.Exec() // fires the cycle-budget callback and replenishes
	return nil
}

// Interrupt injects the given opcode into the CPU, typically an RST.
func (m *Machine) Interrupt(opcode uint8) {
	m.CPU.Interrupt(opcode)
}

// OnCycleBudget registers the host callback fired whenever an Exec
// slice exhausts its cycle budget.
func (m *Machine) OnCycleBudget(fn func()) {
	m.CPU.OnCycleBudget = fn
}

// SaveState snapshots the machine into a fresh state buffer.
func (m *Machine) SaveState() *types.State {
	s := types.NewState()
	m.CPU.Save(s)
	m.MMU.Save(s)
	return s
}

// LoadState restores the machine from the given state buffer.
func (m *Machine) LoadState(s *types.State) {
	s.ResetPosition()
	m.CPU.Load(s)
	m.MMU.Load(s)
}

// DisassembleContext renders the next few instructions at the PC,
// one per line, for debug front-ends.
func (m *Machine) DisassembleContext() []byte {
	var buf bytes.Buffer
	m.dis.SetAddress(m.CPU.PC)
	for i := 0; i < 8; i++ {
		fmt.Fprintln(&buf, m.dis.Next())
	}
	return buf.Bytes()
}

// trace prints the instruction at the PC along with the register
// context it executes in.
func (m *Machine) trace() {
	m.dis.SetAddress(m.CPU.PC)
	record := m.dis.Next()
	c := m.CPU
	fmt.Fprintf(m.w, "%s\tA: %02X F: %02X B: %02X C: %02X D: %02X E: %02X H: %02X L: %02X SP: %04X\n",
		record, c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L, c.SP)
}
