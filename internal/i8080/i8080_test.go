package i8080

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/thelolagemann/go-8080/internal/cpm"
)

func TestMachine_RunProgram(t *testing.T) {
	m := New()
	// LXI H, 0x3CF4; MVI A, 0xFF; MOV M, A; HLT
	m.Load([]uint8{0x21, 0xF4, 0x3C, 0x3E, 0xFF, 0x77, 0x76})
	m.Reset()

	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if got := m.MMU.Read(0x3CF4); got != 0xFF {
		t.Errorf("Expected memory at 0x3CF4 to be 0xFF, got 0x%02X", got)
	}
	if !m.CPU.Halted() {
		t.Error("Expected the CPU to halt")
	}
}

func TestMachine_WithOrigin(t *testing.T) {
	m := New(WithOrigin(0x0200))
	m.Load([]uint8{0x3E, 0x42, 0x76}) // MVI A, 0x42; HLT
	m.Reset()

	if m.CPU.PC != 0x0200 {
		t.Fatalf("Expected the PC reset to the origin, got 0x%04X", m.CPU.PC)
	}
	if got := m.MMU.Read(0x0200); got != 0x3E {
		t.Fatalf("Expected the program at the origin, got 0x%02X", got)
	}

	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if m.CPU.A != 0x42 {
		t.Errorf("Expected A to be 0x42, got 0x%02X", m.CPU.A)
	}
}

func TestMachine_ResetReloadsProgram(t *testing.T) {
	m := New()
	// MVI A, 0xFF; STA 0x0000; HLT — the store tramples the program
	m.Load([]uint8{0x3E, 0xFF, 0x32, 0x00, 0x00, 0x76})
	m.Reset()
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if m.MMU.Read(0x0000) != 0xFF {
		t.Fatal("Expected the store to reach memory")
	}

	m.Reset()
	if m.MMU.Read(0x0000) != 0x3E {
		t.Error("Expected reset to reload the program image")
	}
	if m.CPU.A != 0 || m.CPU.Halted() {
		t.Error("Expected reset to clear the CPU")
	}
}

func TestMachine_CPMHelloWorld(t *testing.T) {
	out := &bytes.Buffer{}
	m := New(CPM(cpm.WithConsole(strings.NewReader(""), out)))

	// MVI C, 9; LXI D, message; CALL 5; HLT
	program := []uint8{
		0x0E, 0x09, // MVI C, 9
		0x11, 0x09, 0x01, // LXI D, 0x0109
		0xCD, 0x05, 0x00, // CALL 0x0005
		0x76, // HLT
		'H', 'E', 'L', 'L', 'O', '$',
	}
	m.Load(program)
	m.Reset()

	if m.CPU.PC != cpm.DefaultOrigin {
		t.Fatalf("Expected the CP/M origin, got 0x%04X", m.CPU.PC)
	}
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "HELLO" {
		t.Errorf("Expected %q on the console, got %q", "HELLO", out.String())
	}
}

func TestMachine_CPMWarmBoot(t *testing.T) {
	out := &bytes.Buffer{}
	m := New(CPM(cpm.WithConsole(strings.NewReader(""), out)))

	// JMP 0 terminates through the warm-boot vector
	m.Load([]uint8{0xC3, 0x00, 0x00})
	m.Reset()

	err := m.Run()
	if !errors.Is(err, cpm.ErrExit) {
		t.Errorf("Expected ErrExit from the warm-boot vector, got %v", err)
	}
}

func TestMachine_Debug(t *testing.T) {
	trace := &bytes.Buffer{}
	m := New(Debug(), WithDebugWriter(trace))
	m.Load([]uint8{0x3E, 0x42, 0x76}) // MVI A, 0x42; HLT
	m.Reset()

	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(trace.String(), "MVI A, $42") {
		t.Errorf("Expected the trace to contain the decoded instruction, got %q", trace.String())
	}
	if !strings.Contains(trace.String(), "HLT") {
		t.Errorf("Expected the trace to contain the halt, got %q", trace.String())
	}
}

func TestMachine_StateRoundTrip(t *testing.T) {
	m := New()
	m.Load([]uint8{0x3E, 0x42, 0x06, 0x07, 0x76}) // MVI A, 0x42; MVI B, 0x07; HLT
	m.Reset()

	if err := m.Step(); err != nil { // MVI A
		t.Fatal(err)
	}
	snapshot := m.SaveState()

	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if m.CPU.B != 0x07 {
		t.Fatal("Expected the run to continue past the snapshot")
	}

	m.LoadState(snapshot)
	if m.CPU.A != 0x42 || m.CPU.B != 0x00 {
		t.Errorf("Expected the snapshot registers, got A=0x%02X B=0x%02X", m.CPU.A, m.CPU.B)
	}
	if m.CPU.PC != 0x0002 {
		t.Errorf("Expected the snapshot PC, got 0x%04X", m.CPU.PC)
	}
	if m.CPU.Halted() {
		t.Error("Expected the snapshot to restore the running state")
	}
}

func TestMachine_ExecInterrupt(t *testing.T) {
	m := New(WithIntFrequency(100_000)) // 20 cycles per slice
	// EI; JMP 0x0001 — spin with interrupts enabled
	m.Load([]uint8{0xFB, 0xC3, 0x01, 0x00})
	m.Reset()

	fired := false
	m.OnCycleBudget(func() { fired = true })

	if err := m.Exec(); err != nil {
		t.Fatal(err)
	}
	if !fired {
		t.Fatal("Expected the cycle-budget callback")
	}

	m.Interrupt(0xCF) // RST 1
	if m.CPU.PC != 0x0008 {
		t.Errorf("Expected PC at the RST 1 vector, got 0x%04X", m.CPU.PC)
	}
}
