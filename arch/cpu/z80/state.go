package z80

// State aggregates the Registers with the bookkeeping that only lives for
// the duration of one instruction (or, for the pending-interrupt latches,
// until the next Step consumes them).
type State struct {
	Reg *Registers

	// Cycle is the free-running cycle accumulator.
	Cycle uint64

	// Halted is raised by HALT, cleared by a pending NMI/reset or by a
	// serviced maskable interrupt.
	Halted bool

	// BranchTaken is set by a conditional opcode that took the branch, and
	// consumed when accounting cycles at the end of Step.
	BranchTaken bool

	// NMIPending, ResetPending and IntSignaled are externally-raised edges,
	// latched until the next Step consumes them.
	NMIPending   bool
	ResetPending bool
	IntSignaled  bool

	// IntJustEnabled is set by EI and cleared after the next instruction,
	// deferring interrupt acceptance by exactly one instruction.
	IntJustEnabled bool

	// Index is the active index register set by a DD/FD prefix, reset to
	// RegHL16 after each instruction.
	Index Reg16

	// Displacement is the signed 8-bit offset loaded lazily when the active
	// instruction addresses (IX+d) or (IY+d).
	Displacement int8
}

// NewState returns a State with fresh Registers and the index defaulted to
// HL (no active prefix).
func NewState() *State {
	return &State{
		Reg:   NewRegisters(),
		Index: RegHL16,
	}
}
