// Package conformance runs CP/M-style .COM binaries (ZEXALL, 8080EX1,
// CPUTEST, and similar classic exerciser suites) against a CPU under a
// minimal BDOS intercept, so the instruction-level properties those suites
// check can be verified mechanically without a real CP/M BIOS.
package conformance

import (
	"fmt"
	"strings"

	"github.com/8bitlab/z8080/arch/cpu/z80"
)

// entryPoint is where CP/M .COM images are conventionally loaded and
// started; the first 0x100 bytes are reserved for the zero page.
const entryPoint = 0x100

// bdosVector is the CP/M BDOS entry point. Exerciser suites call it for
// console output only; this harness recognizes just the two functions
// that matter for capturing their pass/fail text.
const bdosVector = 0x0005

const (
	bdosConsoleWrite    = 2 // C_WRITE: character in E
	bdosConsoleWriteStr = 9 // C_WRITE_STR: '$'-terminated string at DE
)

// Result carries the captured console output and execution statistics of
// one run, sufficient to grep for a suite's own "tests OK"/"ERROR" text.
type Result struct {
	Output     string
	Cycles     uint64
	Terminated bool // true if the program returned to address 0 (warm boot)
}

// Run loads image at entryPoint into a fresh PlainMachine, starts cpu at
// entryPoint, and steps it until it executes a RET back to address 0 or
// maxCycles is exceeded, intercepting BDOS functions 2 and 9 along the way.
func Run(cpu *z80.CPU, image []byte, maxCycles uint64) Result {
	m := z80.NewPlainMachine()
	m.LoadMemoryAt(entryPoint, image)

	// A bare RET at the BDOS vector and at address 0 lets CALL 5 and the
	// final "jump to 0" warm-boot convention both resolve to something a
	// real CP/M loader would otherwise provide.
	m.LoadMemoryAt(bdosVector, []byte{0xC9})
	m.LoadMemoryAt(0x0000, []byte{0xC9})

	cpu.Registers().SetPC(entryPoint)

	var out strings.Builder
	var res Result

	for {
		cpu.Execute(m)

		pc := cpu.Registers().PC()
		if pc == 0x0000 {
			res.Terminated = true
			break
		}

		if pc == bdosVector {
			handleBDOS(cpu, m, &out)
		}

		if cpu.CycleCount() >= maxCycles {
			break
		}
	}

	res.Output = out.String()
	res.Cycles = cpu.CycleCount()
	return res
}

func handleBDOS(cpu *z80.CPU, m *z80.PlainMachine, out *strings.Builder) {
	r := cpu.Registers()
	switch r.Get8(z80.RegC) {
	case bdosConsoleWrite:
		out.WriteByte(r.Get8(z80.RegE))
	case bdosConsoleWriteStr:
		addr := r.Get16(z80.RegDE)
		for {
			ch := m.Peek(addr)
			addr++
			if ch == '$' {
				break
			}
			out.WriteByte(ch)
		}
	default:
		panic(fmt.Sprintf("conformance: unimplemented BDOS function %d", r.Get8(z80.RegC)))
	}
}
