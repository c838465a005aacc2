package z80

// actionJPNN implements JP nn, index-agnostic (plain JP ignores any active
// index prefix — only JP (HL)/(IX)/(IY) is index-aware).
func actionJPNN(e *Environment) {
	addr := e.AdvanceImmediate16()
	e.Reg().SetPC(addr)
}

// buildJPCond builds JP cc,nn.
func buildJPCond(y uint8) Action {
	return func(e *Environment) {
		addr := e.AdvanceImmediate16()
		if testCondition(e, y) {
			e.Reg().SetPC(addr)
			e.SetBranchTaken()
		}
	}
}

// actionJPHL implements JP (HL)/(IX)/(IY): jumps to the index register's
// value, never dereferencing memory.
func actionJPHL(e *Environment) {
	e.Reg().SetPC(e.IndexValue())
}

// actionJR implements unconditional JR d.
func actionJR(e *Environment) {
	d := int8(e.AdvancePC())
	e.Reg().SetPC(uint16(int32(e.Reg().PC()) + int32(d)))
}

// buildJRCond builds JR cc,d for cc in {NZ,Z,NC,C} (y offset by 4 from the
// full condition table, per the opcode layout).
func buildJRCond(y uint8) Action {
	return func(e *Environment) {
		d := int8(e.AdvancePC())
		if testCondition(e, y) {
			e.Reg().SetPC(uint16(int32(e.Reg().PC()) + int32(d)))
			e.SetBranchTaken()
		}
	}
}

// actionDJNZ implements DJNZ d: decrement B, branch if nonzero.
func actionDJNZ(e *Environment) {
	b := e.Reg().IncDec8(RegB, false)
	d := int8(e.AdvancePC())
	if b != 0 {
		e.Reg().SetPC(uint16(int32(e.Reg().PC()) + int32(d)))
		e.SetBranchTaken()
	}
}

// actionCALLNN implements unconditional CALL nn.
func actionCALLNN(e *Environment) {
	addr := e.AdvanceImmediate16()
	e.SubroutineCall(addr)
}

// buildCALLCond builds CALL cc,nn.
func buildCALLCond(y uint8) Action {
	return func(e *Environment) {
		addr := e.AdvanceImmediate16()
		if testCondition(e, y) {
			e.SubroutineCall(addr)
			e.SetBranchTaken()
		}
	}
}

// actionRET implements unconditional RET.
func actionRET(e *Environment) {
	e.SubroutineReturn()
}

// buildRETCond builds RET cc.
func buildRETCond(y uint8) Action {
	return func(e *Environment) {
		if testCondition(e, y) {
			e.SubroutineReturn()
			e.SetBranchTaken()
		}
	}
}

// actionRETI implements RETI: identical effect to RET, distinct only in
// that it signals an external interrupt controller daisy-chain — which
// this core, with no peripheral modeling, does not otherwise observe.
func actionRETI(e *Environment) {
	e.SubroutineReturn()
}

// actionRETN implements RETN: pop PC, restore IFF1 from IFF2.
func actionRETN(e *Environment) {
	e.SubroutineReturn()
	e.Reg().EndNMI()
}

// buildRST builds RST y*8.
func buildRST(addr uint16) Action {
	return func(e *Environment) {
		e.SubroutineCall(addr)
	}
}
