package z80

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// serializedLen is the fixed byte length of Serialize's output (§6):
// 16 primary + 16 shadow + 2 PC + 1 IFF1 + 1 IFF2 + 1 IM + 8 cycle +
// 6 latch booleans + 1 index tag + 1 displacement.
const serializedLen = 16 + 16 + 2 + 1 + 1 + 1 + 8 + 6 + 1 + 1

// CPU is the outward-facing entity combining State with a decoder. A
// single instance serves either the Z80 or the 8080, selected at
// construction; the two share the same State and Environment machinery
// and differ only in their decode tables and Registers.mode8080.
type CPU struct {
	state    *State
	z80      *z80Tables
	table8080 *[256]Opcode
	mode8080 bool

	traceEnabled bool
	lastTrace    string

	// intBusByte is the byte an IM 2 vector fetch reads off the data bus;
	// by convention (§4.6 IM 0 handling) this core always supplies 0xFF,
	// the idle-bus value most real peripherals float to.
	intBusByte uint8
}

// NewZ80 returns a CPU configured for Zilog Z80 semantics.
func NewZ80() *CPU {
	return &CPU{
		state:      NewState(),
		z80:        newZ80Tables(),
		intBusByte: 0xFF,
	}
}

// New8080 returns a CPU configured for Intel 8080 semantics.
func New8080() *CPU {
	c := &CPU{
		state:      NewState(),
		table8080:  newI8080Table(),
		mode8080:   true,
		intBusByte: 0xFF,
	}
	c.state.Reg.set8080()
	return c
}

// Registers returns the register/flag/PC API of §4.1.
func (c *CPU) Registers() *Registers {
	return c.state.Reg
}

// IsHalted reports whether the CPU is in the Halted state.
func (c *CPU) IsHalted() bool {
	return c.state.Halted
}

// CycleCount returns the free-running cycle accumulator.
func (c *CPU) CycleCount() uint64 {
	return c.state.Cycle
}

// SetTrace enables or disables the one-line-per-instruction trace. When
// enabled, Trace returns the line produced by the most recent Execute
// call; the core itself performs no I/O.
func (c *CPU) SetTrace(enabled bool) {
	c.traceEnabled = enabled
}

// Trace returns the trace line produced by the most recent Execute call,
// or "" if tracing is disabled.
func (c *CPU) Trace() string {
	return c.lastTrace
}

// SignalNMI latches a non-maskable interrupt request, serviced at the
// start of the next Execute call.
func (c *CPU) SignalNMI() {
	c.state.NMIPending = true
}

// SignalReset latches a reset request, serviced at the start of the next
// Execute call.
func (c *CPU) SignalReset() {
	c.state.ResetPending = true
}

// SignalInterrupt sets or clears the maskable interrupt request line.
func (c *CPU) SignalInterrupt(level bool) {
	c.state.IntSignaled = level
}

// Execute runs the CPU's single step operation against machine: reset and
// NMI handling, halt-gating, interrupt acceptance, or decode+execute,
// exactly as §4.6 describes.
func (c *CPU) Execute(m Machine) {
	s := c.state

	switch {
	case s.ResetPending:
		c.stepReset()
	case s.NMIPending:
		c.stepNMI(m)
	case s.IntSignaled && s.Reg.IFF1() && !s.IntJustEnabled:
		// A serviced maskable interrupt clears Halted too: HALT's own
		// doc comment (opcode_misc.go's actionHALT) and §3's field doc
		// both name this as one of the ways out of the halted state, so
		// this case must be checked before the halted no-op below.
		c.stepInterrupt(m)
	case s.Halted:
		// step 3: remain halted; the cycle counter is not advanced here —
		// an external real-time loop is responsible for that (§9(d)).
	default:
		c.stepDecodeExecute(m)
	}
}

func (c *CPU) stepReset() {
	s := c.state
	s.ResetPending = false
	s.NMIPending = false
	s.IntSignaled = false
	s.Reg.SetPC(0)
	s.Reg.Set8(RegI, 0)
	s.Reg.Set8(RegR, 0)
	s.Reg.SetInterruptMode(0)
	s.Reg.SetInterrupts(false)
	s.Halted = false
	s.IntJustEnabled = false
	c.lastTrace = ""
}

func (c *CPU) stepNMI(m Machine) {
	s := c.state
	s.Halted = false
	s.Reg.StartNMI()
	e := newEnvironment(s, m)
	e.Push(s.Reg.PC())
	s.Reg.SetPC(0x0066)
	s.NMIPending = false
	s.IntJustEnabled = false
	c.lastTrace = ""
}

func (c *CPU) stepInterrupt(m Machine) {
	s := c.state
	s.Halted = false
	e := newEnvironment(s, m)

	_, im := s.Reg.InterruptMode()
	switch im {
	case 0:
		e.SubroutineCall(0x0038)
	case 1:
		e.SubroutineCall(0x0038)
		s.Cycle += 13
	default: // 2
		vectorAddr := uint16(s.Reg.Get8(RegI))<<8 | uint16(c.intBusByte)
		e.SubroutineCall(Peek16(m, vectorAddr))
		s.Cycle += 19
	}

	s.Reg.SetInterrupts(false)
	s.IntSignaled = false
	s.IntJustEnabled = false
	c.lastTrace = ""
}

func (c *CPU) stepDecodeExecute(m Machine) {
	s := c.state
	e := newEnvironment(s, m)

	// Cleared here, before decode+execute, rather than at the end of this
	// same call: EI sets the latch during its own step so the Execute
	// switch sees it true on the very next call and defers interrupt
	// acceptance for exactly that one instruction (§4.6).
	s.IntJustEnabled = false

	pc := s.Reg.PC()
	var op Opcode
	var extraCyc uint8
	if c.mode8080 {
		op = decode8080(e, c.table8080)
	} else {
		var extra extraCycles
		op, extra = decodeZ80(e, c.z80)
		extraCyc = extra.cycles()
	}

	op.Exec(e)

	taken := s.BranchTaken
	s.Cycle += uint64(op.Cycles(taken)) + uint64(extraCyc)

	if c.traceEnabled {
		c.lastTrace = c.formatTrace(pc, op)
	}

	e.ClearIndex()
	s.Displacement = 0
	s.BranchTaken = false
}

func (c *CPU) formatTrace(pc uint16, op Opcode) string {
	r := c.state.Reg
	return fmt.Sprintf(
		"%04X  %-20s AF=%04X BC=%04X DE=%04X HL=%04X IX=%04X IY=%04X SP=%04X",
		pc, op.Mnemonic,
		r.Get16(RegAF), r.Get16(RegBC), r.Get16(RegDE), r.Get16(RegHL16),
		r.Get16(RegIX), r.Get16(RegIY), r.Get16(RegSP),
	)
}

// DisasmInstruction decodes, but does not execute, the instruction at
// machine's PC, advancing PC past it and returning its resolved mnemonic.
func (c *CPU) DisasmInstruction(m Machine) string {
	s := c.state
	e := newEnvironment(s, m)

	var op Opcode
	if c.mode8080 {
		op = decode8080(e, c.table8080)
	} else {
		op, _ = decodeZ80(e, c.z80)
	}

	// The decoder consumes prefixes, opcode bytes and any displacement; the
	// immediate operands named by the mnemonic follow at PC.
	operandAt := s.Reg.PC()
	imm8 := m.Peek(operandAt)
	imm16 := Peek16(m, operandAt)
	switch {
	case strings.Contains(op.Mnemonic, "{nn}"):
		s.Reg.SetPC(operandAt + 2)
	case strings.Contains(op.Mnemonic, "{n}"), strings.Contains(op.Mnemonic, "{d}"):
		s.Reg.SetPC(operandAt + 1)
	}
	disp := s.Displacement
	if strings.Contains(op.Mnemonic, "{d}") {
		// JR/DJNZ carry their relative displacement as the operand byte.
		disp = int8(imm8)
	}
	text := disassemble(op.Mnemonic, imm8, imm16, disp, e.IndexDescription())
	e.ClearIndex()
	s.Displacement = 0
	return text
}

// Serialize encodes the full CPU state into the fixed-length blob format
// of §6.
func (c *CPU) Serialize() []byte {
	buf := make([]byte, 0, serializedLen)
	r := c.state.Reg

	for i := Reg8(0); i < regCount8; i++ {
		buf = append(buf, r.data[i])
	}
	for i := 0; i < regCount8; i++ {
		buf = append(buf, r.shadow[i])
	}

	pcBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(pcBytes, r.pc)
	buf = append(buf, pcBytes...)

	buf = append(buf, boolByte(r.iff1), boolByte(r.iff2), r.im)

	cycleBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(cycleBytes, c.state.Cycle)
	buf = append(buf, cycleBytes...)

	buf = append(buf,
		boolByte(c.state.Halted),
		boolByte(c.state.BranchTaken),
		boolByte(c.state.NMIPending),
		boolByte(c.state.ResetPending),
		boolByte(c.state.IntSignaled),
		boolByte(c.state.IntJustEnabled),
	)

	buf = append(buf, indexTag(c.state.Index), byte(c.state.Displacement))

	return buf
}

// Deserialize restores the CPU's full state from a blob previously
// produced by Serialize. It fails cleanly (§7) when the input is shorter
// than the fixed length or carries an invalid index tag, leaving the CPU
// unmodified.
func (c *CPU) Deserialize(data []byte) error {
	if len(data) < serializedLen {
		return ErrShortInput
	}

	indexByte := data[16+16+2+1+1+1+8+6]
	var index Reg16
	switch indexByte {
	case 0:
		index = RegHL16
	case 1:
		index = RegIX
	case 2:
		index = RegIY
	default:
		return ErrInvalidIndexTag
	}

	r := c.state.Reg
	off := 0
	copy(r.data[:], data[off:off+regCount8])
	off += regCount8
	copy(r.shadow[:], data[off:off+regCount8])
	off += regCount8

	r.pc = binary.LittleEndian.Uint16(data[off : off+2])
	off += 2
	r.iff1 = data[off] != 0
	off++
	r.iff2 = data[off] != 0
	off++
	r.im = data[off]
	off++

	c.state.Cycle = binary.LittleEndian.Uint64(data[off : off+8])
	off += 8

	c.state.Halted = data[off] != 0
	off++
	c.state.BranchTaken = data[off] != 0
	off++
	c.state.NMIPending = data[off] != 0
	off++
	c.state.ResetPending = data[off] != 0
	off++
	c.state.IntSignaled = data[off] != 0
	off++
	c.state.IntJustEnabled = data[off] != 0
	off++

	c.state.Index = index
	off++
	c.state.Displacement = int8(data[off])

	return nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func indexTag(rr Reg16) byte {
	switch rr {
	case RegIX:
		return 1
	case RegIY:
		return 2
	default:
		return 0
	}
}
