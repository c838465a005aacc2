package z80

// actionNOP does nothing.
func actionNOP(e *Environment) {}

// actionHALT raises the halted latch; the CPU step loop stops decoding
// until a reset, NMI, or accepted interrupt clears it.
func actionHALT(e *Environment) {
	e.state.Halted = true
}

// actionDI clears both interrupt flip-flops.
func actionDI(e *Environment) {
	e.Reg().SetInterrupts(false)
}

// actionEI sets both interrupt flip-flops and the one-instruction
// acceptance delay latch (§4.6).
func actionEI(e *Environment) {
	e.Reg().SetInterrupts(true)
	e.state.IntJustEnabled = true
}

// buildIM builds IM 0/1/2.
func buildIM(mode uint8) Action {
	return func(e *Environment) {
		e.Reg().SetInterruptMode(mode)
	}
}

// actionLDIFromA / actionLDRFromA implement LD I,A / LD R,A.
func actionLDIFromA(e *Environment) {
	e.Reg().Set8(RegI, e.Reg().Get8(RegA))
}

func actionLDRFromA(e *Environment) {
	e.Reg().Set8(RegR, e.Reg().Get8(RegA))
}

// actionLDAFromI / actionLDAFromR implement LD A,I / LD A,R: P/V is loaded
// from IFF2, S/Z/_5/_3 from the value, H and N cleared.
func actionLDAFromI(e *Environment) {
	r := e.Reg()
	v := r.Get8(RegI)
	r.Set8(RegA, v)
	r.updateSZ53(v)
	r.PutFlag(FlagP, r.IFF2())
	r.updateHN(false, false)
}

func actionLDAFromR(e *Environment) {
	r := e.Reg()
	v := r.Get8(RegR)
	r.Set8(RegA, v)
	r.updateSZ53(v)
	r.PutFlag(FlagP, r.IFF2())
	r.updateHN(false, false)
}

// actionNONI is the undocumented ED-prefixed NOP used by every ED slot
// with no defined operation: behaves as NOP (the decoder's own one-
// instruction interrupt delay is orthogonal and lives in the CPU step
// loop, not here).
func actionNONI(e *Environment) {}
