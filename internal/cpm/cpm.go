// Package cpm overlays a minimal CP/M host environment onto the CPU.
// It intercepts calls to the warm-boot and BDOS entry points and
// emulates a documented subset of the BDOS console services, so that
// CP/M transient programs (and the classic CPU diagnostic images) run
// without an operating system in memory.
package cpm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/thelolagemann/go-8080/internal/cpu"
	"github.com/thelolagemann/go-8080/internal/mmu"
	"github.com/thelolagemann/go-8080/pkg/log"
)

const (
	// EntryWarmBoot is the warm-boot vector. A program jumping or
	// calling here has terminated.
	EntryWarmBoot = 0x0000
	// EntryBDOS is the BDOS dispatch vector. The function code is
	// passed in register C.
	EntryBDOS = 0x0005
	// DefaultOrigin is the load address of CP/M transient programs.
	DefaultOrigin = 0x0100

	// DefaultDelimiter terminates C_WRITESTRING output.
	DefaultDelimiter = '$'
)

var (
	// ErrExit is returned when the guest terminates itself, either
	// through the warm-boot vector or BDOS function 0.
	//
	// It should be handled and expected by callers.
	ErrExit = errors.New("EXIT")

	// ErrUnimplemented is returned when the guest invokes a BDOS
	// function that is not emulated. The CPU is left at the fault
	// point.
	//
	// It should be handled and expected by callers.
	ErrUnimplemented = errors.New("UNIMPLEMENTED")
)

// HandlerFunc is the signature of a BDOS function implementation.
type HandlerFunc func(b *BDOS) error

// Handler contains details of a specific BDOS function we implement.
type Handler struct {
	// Desc contains the canonical CP/M name of the function.
	Desc string

	// Handler contains the function invoked for this BDOS call.
	Handler HandlerFunc
}

// BDOS emulates the CP/M system-call dispatcher on top of the CPU.
type BDOS struct {
	// Syscalls contains the BDOS functions we know how to emulate,
	// keyed by function code.
	Syscalls map[uint8]Handler

	cpu *cpu.CPU
	mmu *mmu.MMU

	reader    *bufio.Reader
	writer    io.Writer
	delimiter byte

	log.Logger
}

// Opt configures a BDOS.
type Opt func(*BDOS)

// WithConsole redirects console input and output, which default to
// stdin and stdout.
func WithConsole(r io.Reader, w io.Writer) Opt {
	return func(b *BDOS) {
		b.reader = bufio.NewReader(r)
		b.writer = w
	}
}

// WithDelimiter overrides the C_WRITESTRING terminator, which
// defaults to '$'.
func WithDelimiter(delim byte) Opt {
	return func(b *BDOS) {
		b.delimiter = delim
	}
}

// WithLogger attaches a logger for per-call tracing.
func WithLogger(l log.Logger) Opt {
	return func(b *BDOS) {
		b.Logger = l
	}
}

// New returns a BDOS overlay bound to the given CPU and MMU.
func New(c *cpu.CPU, m *mmu.MMU, opts ...Opt) *BDOS {
	b := &BDOS{
		cpu:       c,
		mmu:       m,
		reader:    bufio.NewReader(os.Stdin),
		writer:    os.Stdout,
		delimiter: DefaultDelimiter,
		Logger:    log.NewNullLogger(),
	}
	b.Syscalls = map[uint8]Handler{
		0:  {Desc: "P_TERMCPM", Handler: terminate},
		1:  {Desc: "C_READ", Handler: consoleRead},
		2:  {Desc: "C_WRITE", Handler: consoleWrite},
		6:  {Desc: "C_RAWIO", Handler: consoleRawIO},
		9:  {Desc: "C_WRITESTRING", Handler: writeString},
		10: {Desc: "C_READSTRING", Handler: readString},
		11: {Desc: "C_STAT", Handler: consoleStatus},
		12: {Desc: "S_BDOSVER", Handler: bdosVersion},
	}

	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Intercept inspects the PC after an instruction has executed and
// emulates the entry point it landed on, if any. It reports whether
// the PC was intercepted. A landing on the warm-boot vector returns
// ErrExit; an unknown BDOS function returns ErrUnimplemented with the
// CPU left at the fault point.
func (b *BDOS) Intercept() (bool, error) {
	switch b.cpu.PC {
	case EntryWarmBoot:
		b.Infof("guest reached warm boot")
		return true, ErrExit
	case EntryBDOS:
		code := b.cpu.C
		handler, exists := b.Syscalls[code]
		if !exists {
			b.Errorf("unimplemented BDOS function %d", code)
			return true, fmt.Errorf("BDOS function %02d: %w", code, ErrUnimplemented)
		}

		b.Debugf("BDOS %s (function %d)", handler.Desc, code)
		if err := handler.Handler(b); err != nil {
			return true, err
		}

		// return to the caller as the real BDOS would
		b.cpu.PC = b.mmu.ReadWord(b.cpu.SP)
		b.cpu.SP += 2
		return true, nil
	}
	return false, nil
}

// terminate implements P_TERMCPM: end the calling program.
func terminate(b *BDOS) error {
	return ErrExit
}

// consoleRead implements C_READ: read one character into A and echo
// it.
func consoleRead(b *BDOS) error {
	ch, err := b.reader.ReadByte()
	if err != nil {
		return err
	}
	b.cpu.A = ch
	_, err = b.writer.Write([]byte{ch})
	return err
}

// consoleWrite implements C_WRITE: write the character in E.
func consoleWrite(b *BDOS) error {
	_, err := b.writer.Write([]byte{b.cpu.E})
	return err
}

// consoleRawIO implements C_RAWIO: E = 0xFF reads a character into A
// without echo, any other value of E is written.
func consoleRawIO(b *BDOS) error {
	if b.cpu.E == 0xFF {
		ch, err := b.reader.ReadByte()
		if err != nil {
			return err
		}
		b.cpu.A = ch
		return nil
	}
	_, err := b.writer.Write([]byte{b.cpu.E})
	return err
}

// writeString implements C_WRITESTRING: write the delimiter-terminated
// string addressed by DE.
func writeString(b *BDOS) error {
	addr := b.cpu.DE.Uint16()
	var out []byte
	for {
		ch := b.mmu.Read(addr)
		if ch == b.delimiter {
			break
		}
		out = append(out, ch)
		addr++
	}
	_, err := b.writer.Write(out)
	return err
}

// readString implements C_READSTRING: read a line into the buffer
// addressed by DE. The first byte of the buffer holds its capacity;
// the consumed length is stored in the second byte and the characters
// follow.
func readString(b *BDOS) error {
	addr := b.cpu.DE.Uint16()
	max := b.mmu.Read(addr)

	line, err := b.reader.ReadString('\n')
	if err != nil && len(line) == 0 {
		return err
	}
	// strip the line ending
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	if len(line) > int(max) {
		line = line[:max]
	}

	b.mmu.Write(addr+1, uint8(len(line)))
	b.mmu.WriteBytes(addr+2, []byte(line))
	return nil
}

// consoleStatus implements C_STAT: report no character waiting.
func consoleStatus(b *BDOS) error {
	b.cpu.A = 0
	return nil
}

// bdosVersion implements S_BDOSVER: report CP/M 2.2.
func bdosVersion(b *BDOS) error {
	b.cpu.HL.SetUint16(0x0022)
	b.cpu.A = 0x22
	return nil
}
