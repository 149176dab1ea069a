package cpm

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/thelolagemann/go-8080/internal/cpu"
	"github.com/thelolagemann/go-8080/internal/mmu"
)

// newTestBDOS returns an overlay whose console is backed by the given
// input string and the returned output buffer.
func newTestBDOS(input string) (*BDOS, *cpu.CPU, *mmu.MMU, *bytes.Buffer) {
	bus := mmu.NewMMU()
	c := cpu.NewCPU(bus)
	out := &bytes.Buffer{}
	b := New(c, bus, WithConsole(strings.NewReader(input), out))

	// a plausible caller: return address on the stack
	c.SP = 0x2400 - 2
	bus.WriteWord(c.SP, 0x0103)
	return b, c, bus, out
}

func TestBDOS_WarmBoot(t *testing.T) {
	b, c, _, _ := newTestBDOS("")
	c.PC = EntryWarmBoot

	handled, err := b.Intercept()
	if !handled {
		t.Fatal("Expected the warm-boot vector to be intercepted")
	}
	if !errors.Is(err, ErrExit) {
		t.Errorf("Expected ErrExit, got %v", err)
	}
}

func TestBDOS_NotIntercepted(t *testing.T) {
	b, c, _, _ := newTestBDOS("")
	c.PC = 0x0100

	handled, err := b.Intercept()
	if handled || err != nil {
		t.Errorf("Expected ordinary addresses to pass through, got %t %v", handled, err)
	}
}

func TestBDOS_Terminate(t *testing.T) {
	b, c, _, _ := newTestBDOS("")
	c.PC = EntryBDOS
	c.C = 0

	handled, err := b.Intercept()
	if !handled {
		t.Fatal("Expected the BDOS vector to be intercepted")
	}
	if !errors.Is(err, ErrExit) {
		t.Errorf("Expected ErrExit, got %v", err)
	}
}

func TestBDOS_ConsoleWrite(t *testing.T) {
	b, c, _, out := newTestBDOS("")
	c.PC = EntryBDOS
	c.C = 2
	c.E = 'A'

	if _, err := b.Intercept(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "A" {
		t.Errorf("Expected output %q, got %q", "A", out.String())
	}
	// the call returns to the caller
	if c.PC != 0x0103 {
		t.Errorf("Expected PC back at the caller, got 0x%04X", c.PC)
	}
	if c.SP != 0x2400 {
		t.Errorf("Expected the return address popped, SP is 0x%04X", c.SP)
	}
}

func TestBDOS_ConsoleRead(t *testing.T) {
	b, c, _, out := newTestBDOS("x")
	c.PC = EntryBDOS
	c.C = 1

	if _, err := b.Intercept(); err != nil {
		t.Fatal(err)
	}
	if c.A != 'x' {
		t.Errorf("Expected A to hold the character, got 0x%02X", c.A)
	}
	if out.String() != "x" {
		t.Errorf("Expected the character echoed, got %q", out.String())
	}
}

func TestBDOS_WriteString(t *testing.T) {
	b, c, bus, out := newTestBDOS("")
	bus.WriteBytes(0x0200, []byte("HELLO, WORLD$junk"))
	c.PC = EntryBDOS
	c.C = 9
	c.DE.SetUint16(0x0200)

	if _, err := b.Intercept(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "HELLO, WORLD" {
		t.Errorf("Expected the string up to the delimiter, got %q", out.String())
	}
}

func TestBDOS_WriteStringDelimiter(t *testing.T) {
	bus := mmu.NewMMU()
	c := cpu.NewCPU(bus)
	out := &bytes.Buffer{}
	b := New(c, bus, WithConsole(strings.NewReader(""), out), WithDelimiter(0x00))

	c.SP = 0x2400 - 2
	bus.WriteWord(c.SP, 0x0103)
	bus.WriteBytes(0x0200, []byte("A$B\x00junk"))
	c.PC = EntryBDOS
	c.C = 9
	c.DE.SetUint16(0x0200)

	if _, err := b.Intercept(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "A$B" {
		t.Errorf("Expected the string up to the configured delimiter, got %q", out.String())
	}
}

func TestBDOS_ReadString(t *testing.T) {
	b, c, bus, _ := newTestBDOS("hello\n")
	bus.Write(0x0300, 0x20) // buffer capacity
	c.PC = EntryBDOS
	c.C = 10
	c.DE.SetUint16(0x0300)

	if _, err := b.Intercept(); err != nil {
		t.Fatal(err)
	}
	if got := bus.Read(0x0301); got != 5 {
		t.Errorf("Expected length 5, got %d", got)
	}
	if got := string([]byte{bus.Read(0x0302), bus.Read(0x0303), bus.Read(0x0304), bus.Read(0x0305), bus.Read(0x0306)}); got != "hello" {
		t.Errorf("Expected %q in the buffer, got %q", "hello", got)
	}
}

func TestBDOS_ReadStringTruncation(t *testing.T) {
	b, c, bus, _ := newTestBDOS("overflowing\n")
	bus.Write(0x0300, 0x04)
	c.PC = EntryBDOS
	c.C = 10
	c.DE.SetUint16(0x0300)

	if _, err := b.Intercept(); err != nil {
		t.Fatal(err)
	}
	if got := bus.Read(0x0301); got != 4 {
		t.Errorf("Expected the line truncated to the capacity, got length %d", got)
	}
}

func TestBDOS_Version(t *testing.T) {
	b, c, _, _ := newTestBDOS("")
	c.PC = EntryBDOS
	c.C = 12

	if _, err := b.Intercept(); err != nil {
		t.Fatal(err)
	}
	if c.HL.Uint16() != 0x0022 {
		t.Errorf("Expected HL to report CP/M 2.2, got 0x%04X", c.HL.Uint16())
	}
}

func TestBDOS_Unimplemented(t *testing.T) {
	b, c, _, _ := newTestBDOS("")
	c.PC = EntryBDOS
	c.C = 77

	handled, err := b.Intercept()
	if !handled {
		t.Fatal("Expected the BDOS vector to be intercepted")
	}
	if !errors.Is(err, ErrUnimplemented) {
		t.Errorf("Expected ErrUnimplemented, got %v", err)
	}
	// the CPU is left at the fault point
	if c.PC != EntryBDOS {
		t.Errorf("Expected PC left at the fault point, got 0x%04X", c.PC)
	}
}
