package z80

import "fmt"

// Environment is a short-lived façade binding a mutable State to a mutable
// Machine for the execution of exactly one instruction. It centralizes PC
// advance, stack push/pop, subroutine call/return, displacement loading, and
// the index-aware register accessors that make IX/IY-prefixed instructions
// reuse the same opcode actions as their HL counterparts.
//
// The critical design rule: an Environment never outlives the Step call
// that created it.
type Environment struct {
	state *State
	sys   Machine
}

// newEnvironment binds state and sys for the duration of one Step.
func newEnvironment(state *State, sys Machine) *Environment {
	return &Environment{state: state, sys: sys}
}

// PeekPC returns the byte at PC without advancing it.
func (e *Environment) PeekPC() uint8 {
	return e.sys.Peek(e.state.Reg.PC())
}

// AdvancePC returns the byte at PC and advances PC by one, wrapping at
// 0xFFFF.
func (e *Environment) AdvancePC() uint8 {
	pc := e.state.Reg.PC()
	value := e.sys.Peek(pc)
	e.state.Reg.SetPC(pc + 1)
	return value
}

// Peek16PC returns the little-endian word at PC without advancing it.
func (e *Environment) Peek16PC() uint16 {
	return Peek16(e.sys, e.state.Reg.PC())
}

// AdvanceImmediate16 reads a little-endian 16-bit immediate at PC and
// advances PC by two.
func (e *Environment) AdvanceImmediate16() uint16 {
	lo := uint16(e.AdvancePC())
	hi := uint16(e.AdvancePC())
	return lo | hi<<8
}

// Push decrements SP and writes value: high byte first (at the now-higher
// address), then low byte (at the now-lower address) — the order a real
// stack push performs the two writes in.
func (e *Environment) Push(value uint16) {
	sp := e.state.Reg.Get16(RegSP)

	hi := uint8(value >> 8)
	lo := uint8(value)

	sp--
	e.sys.Poke(sp, hi)

	sp--
	e.sys.Poke(sp, lo)

	e.state.Reg.Set16(RegSP, sp)
}

// Pop reads a 16-bit value off the stack and advances SP past it.
func (e *Environment) Pop() uint16 {
	sp := e.state.Reg.Get16(RegSP)

	lo := e.sys.Peek(sp)
	sp++

	hi := e.sys.Peek(sp)
	sp++

	e.state.Reg.Set16(RegSP, sp)
	return uint16(lo) | uint16(hi)<<8
}

// SubroutineCall pushes PC and jumps to address, as CALL/RST do.
func (e *Environment) SubroutineCall(address uint16) {
	e.Push(e.state.Reg.PC())
	e.state.Reg.SetPC(address)
}

// SubroutineReturn pops PC, as RET/RETI/RETN do.
func (e *Environment) SubroutineReturn() {
	e.state.Reg.SetPC(e.Pop())
}

// SetIndex activates the given index register for the rest of the current
// instruction's decode/execute.
func (e *Environment) SetIndex(index Reg16) {
	e.state.Index = index
}

// ClearIndex resets the active index to HL. Called by the decoder on
// entering ED dispatch, and by Step after every instruction.
func (e *Environment) ClearIndex() {
	e.state.Index = RegHL16
}

// IsAltIndex reports whether IX or IY, rather than HL, is the active index.
func (e *Environment) IsAltIndex() bool {
	return e.state.Index != RegHL16
}

// LoadDisplacement reads the next byte at PC as a signed 8-bit displacement
// for (IX+d)/(IY+d) addressing.
func (e *Environment) LoadDisplacement() {
	e.state.Displacement = int8(e.AdvancePC())
}

// IndexValue returns the value of the active index register (HL, IX or IY).
func (e *Environment) IndexValue() uint16 {
	return e.state.Reg.Get16(e.state.Index)
}

// IndexAddress returns the effective address for the pseudo-operand (HL),
// (IX+d) or (IY+d): the active index register, plus the loaded displacement
// when an alternate index is active.
func (e *Environment) IndexAddress() uint16 {
	address := e.IndexValue()
	if e.IsAltIndex() {
		return uint16(int16(address) + int16(e.state.Displacement))
	}
	return address
}

// IndexDescription renders the active operand for disassembly: "HL",
// "IX+5", "IY-3", and so on.
func (e *Environment) IndexDescription() string {
	if e.state.Index == RegHL16 {
		return "HL"
	}
	name := "IX"
	if e.state.Index == RegIY {
		name = "IY"
	}
	return fmt.Sprintf("%s%+d", name, e.state.Displacement)
}

// translateReg maps H/L onto IXH/IXL or IYH/IYL when an alternate index is
// active; every other register tag passes through unchanged.
func (e *Environment) translateReg(reg Reg8) Reg8 {
	switch e.state.Index {
	case RegIX:
		switch reg {
		case RegH:
			return RegIXH
		case RegL:
			return RegIXL
		}
	case RegIY:
		switch reg {
		case RegH:
			return RegIYH
		case RegL:
			return RegIYL
		}
	}
	return reg
}

// Reg8Ext reads an 8-bit operand with index translation applied: RegHL
// reads memory at IndexAddress, everything else reads the (possibly
// translated) register.
func (e *Environment) Reg8Ext(reg Reg8) uint8 {
	if reg == RegHL {
		return e.sys.Peek(e.IndexAddress())
	}
	return e.state.Reg.Get8(e.translateReg(reg))
}

// SetReg writes an 8-bit operand with index translation applied, mirroring
// Reg8Ext.
func (e *Environment) SetReg(reg Reg8, value uint8) {
	if reg == RegHL {
		e.sys.Poke(e.IndexAddress(), value)
		return
	}
	e.state.Reg.Set8(e.translateReg(reg), value)
}

// Reg16Ext reads a 16-bit operand with index translation applied: RegHL16
// reads the active index register, everything else (BC, DE, SP) passes
// through unchanged.
func (e *Environment) Reg16Ext(rr Reg16) uint16 {
	if rr == RegHL16 {
		return e.state.Reg.Get16(e.state.Index)
	}
	return e.state.Reg.Get16(rr)
}

// SetReg16 writes a 16-bit operand with index translation applied,
// mirroring Reg16Ext.
func (e *Environment) SetReg16(rr Reg16, value uint16) {
	if rr == RegHL16 {
		e.state.Reg.Set16(e.state.Index, value)
		return
	}
	e.state.Reg.Set16(rr, value)
}

// PortIn reads a byte from the given I/O port.
func (e *Environment) PortIn(addr uint16) uint8 {
	return e.sys.PortIn(addr)
}

// PortOut writes a byte to the given I/O port.
func (e *Environment) PortOut(addr uint16, value uint8) {
	e.sys.PortOut(addr, value)
}

// SetBranchTaken marks the current conditional opcode as having taken its
// branch, selecting the "taken" cycle count when Step accounts cycles.
func (e *Environment) SetBranchTaken() {
	e.state.BranchTaken = true
}

// Reg returns the bound Registers, for opcode actions that need direct
// access beyond the index-aware accessors (flag tests, PC, SP, shadow bank).
func (e *Environment) Reg() *Registers {
	return e.state.Reg
}

// State returns the bound State, for opcode actions that need the transient
// bookkeeping fields directly (HALT, DI/EI, IM).
func (e *Environment) State() *State {
	return e.state
}
