// Package mmu provides the two address spaces of the 8080: a 64 KiB
// linear memory and a 256-port I/O space. All multi-byte quantities
// are little-endian, and all addressing wraps modulo the size of the
// address space.
package mmu

import (
	"github.com/thelolagemann/go-8080/internal/types"
	"github.com/thelolagemann/go-8080/pkg/bits"
)

const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x10000
	// PortCount is the number of I/O ports.
	PortCount = 0x100
)

// MMU is the memory management unit. It owns the memory and I/O
// port arrays and is the sole component the CPU reads and writes
// through.
type MMU struct {
	memory [MemorySize]uint8
	io     [PortCount]uint8
}

// NewMMU returns a new MMU with zeroed memory and ports.
func NewMMU() *MMU {
	return &MMU{}
}

// Read returns the byte at the given address.
func (m *MMU) Read(addr uint16) uint8 {
	return m.memory[addr]
}

// Write writes the given value to the given address.
func (m *MMU) Write(addr uint16, value uint8) {
	m.memory[addr] = value
}

// ReadWord returns the little-endian word at the given address. The
// high byte is read from addr+1, wrapping at the top of memory.
func (m *MMU) ReadWord(addr uint16) uint16 {
	return uint16(m.memory[addr]) | uint16(m.memory[addr+1])<<8
}

// WriteWord writes the given word to the given address, low byte
// first.
func (m *MMU) WriteWord(addr uint16, value uint16) {
	m.memory[addr] = uint8(value)
	m.memory[addr+1] = uint8(value >> 8)
}

// WriteBytes copies data into memory starting at the given address,
// wrapping at the top of memory.
func (m *MMU) WriteBytes(addr uint16, data []uint8) {
	for i, b := range data {
		m.memory[addr+uint16(i)] = b
	}
}

// ReadIO returns the byte held by the given I/O port.
func (m *MMU) ReadIO(port uint8) uint8 {
	return m.io[port]
}

// WriteIO writes the given value to the given I/O port.
func (m *MMU) WriteIO(port uint8, value uint8) {
	m.io[port] = value
}

// SetIOBit sets the given bit on the given I/O port.
func (m *MMU) SetIOBit(port uint8, bit uint8) {
	m.io[port] = bits.Set(m.io[port], bit)
}

// ClearIOBit clears the given bit on the given I/O port.
func (m *MMU) ClearIOBit(port uint8, bit uint8) {
	m.io[port] = bits.Reset(m.io[port], bit)
}

// Reset zeroes memory and all I/O ports.
func (m *MMU) Reset() {
	m.memory = [MemorySize]uint8{}
	m.io = [PortCount]uint8{}
}

var _ types.Stater = (*MMU)(nil)

func (m *MMU) Load(s *types.State) {
	s.ReadData(m.memory[:])
	s.ReadData(m.io[:])
}

func (m *MMU) Save(s *types.State) {
	s.WriteData(m.memory[:])
	s.WriteData(m.io[:])
}
