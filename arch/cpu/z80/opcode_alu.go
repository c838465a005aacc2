package z80

// buildALU8 builds `alu[y] r[z]` (x=2) and `alu[y] n` (x=3,z=6 via CALLER
// using immediate fetch): op applied between A and the operand, result
// stored to A except for CP which discards it (operatorCp already does).
func buildALU8(op Operator, readOperand func(e *Environment) uint8) Action {
	return func(e *Environment) {
		a := e.Reg().Get8(RegA)
		b := readOperand(e)
		v := op(e, a, b)
		e.Reg().Set8(RegA, v)
	}
}

func regReader(reg Reg8) func(e *Environment) uint8 {
	return func(e *Environment) uint8 { return e.Reg8Ext(reg) }
}

func immediateReader() func(e *Environment) uint8 {
	return func(e *Environment) uint8 { return e.AdvancePC() }
}

// buildINC8/buildDEC8 build INC r[y] / DEC r[y] (x=0, z=4/5).
func buildINC8(reg Reg8) Action {
	return func(e *Environment) {
		v := e.Reg8Ext(reg)
		e.SetReg(reg, operatorInc(e, v))
	}
}

func buildDEC8(reg Reg8) Action {
	return func(e *Environment) {
		v := e.Reg8Ext(reg)
		e.SetReg(reg, operatorDec(e, v))
	}
}

// buildADD16/buildADC16/buildSBC16 build the 16-bit arithmetic family
// (ADD HL,rp / ADC HL,rp / SBC HL,rp), index-translated so ADD IX,rr works.
func buildADD16(rr Reg16) Action {
	return func(e *Environment) {
		a := e.Reg16Ext(RegHL16)
		b := e.Reg16Ext(rr)
		e.SetReg16(RegHL16, operatorAdd16(e, a, b))
	}
}

func buildADC16(rr Reg16) Action {
	return func(e *Environment) {
		a := e.Reg().Get16(RegHL16)
		b := e.Reg().Get16(rr)
		e.Reg().Set16(RegHL16, operatorAdc16(e, a, b))
	}
}

func buildSBC16(rr Reg16) Action {
	return func(e *Environment) {
		a := e.Reg().Get16(RegHL16)
		b := e.Reg().Get16(rr)
		e.Reg().Set16(RegHL16, operatorSbc16(e, a, b))
	}
}

// actionDAA implements §4.3's DAA for both CPU modes.
func actionDAA(e *Environment) {
	r := e.Reg()
	a := r.Get8(RegA)
	hi := a >> 4
	lo := a & 0x0F
	h := r.GetFlag(FlagH)
	c := r.GetFlag(FlagC)
	n := r.GetFlag(FlagN) && !r.Is8080()

	lo6 := h || lo > 9
	hi6 := c || hi > 9 || (hi == 9 && lo > 9)
	diff := uint8(0)
	if lo6 {
		diff += 6
	}
	if hi6 {
		diff += 0x60
	}

	var newA uint8
	var newH bool
	if n {
		newA = a - diff
		newH = h && lo < 6
	} else {
		newA = a + diff
		newH = lo > 9
	}

	var newC bool
	if r.Is8080() {
		newC = c || hi6
	} else {
		newC = hi6
	}

	r.Set8(RegA, newA)
	r.updateDAAFlags(newA, newH, newC)
}

// actionCPL implements CPL: complement A; H and N set, other flags, _3/_5
// from the new value of A.
func actionCPL(e *Environment) {
	r := e.Reg()
	a := r.Get8(RegA) ^ 0xFF
	r.Set8(RegA, a)
	r.updateHN(true, true)
	r.updateUndocumented(a)
}

// actionSCF sets the carry flag; H and N cleared; _3/_5 from A.
func actionSCF(e *Environment) {
	r := e.Reg()
	r.SetFlag(FlagC)
	r.updateHN(false, false)
	r.updateUndocumented(r.Get8(RegA))
}

// actionCCF complements the carry flag; H takes the old carry value, N
// cleared; _3/_5 from A.
func actionCCF(e *Environment) {
	r := e.Reg()
	old := r.GetFlag(FlagC)
	r.PutFlag(FlagC, !old)
	r.updateHN(old, false)
	r.updateUndocumented(r.Get8(RegA))
}

// The "fast" accumulator rotates RLCA/RRCA/RLA/RRA: only C, H=0, N=0 and
// _3/_5 from the new A are updated; S/Z/P are left untouched (§4.3).
func buildFastRotate(kind uint8) Action {
	return func(e *Environment) {
		r := e.Reg()
		a := r.Get8(RegA)
		result, carryOut := rotateShift(kind, a, r.GetFlag(FlagC))
		r.Set8(RegA, result)
		r.PutFlag(FlagC, carryOut)
		r.updateHN(false, false)
		r.updateUndocumented(result)
	}
}

// buildCBRotate builds a CB-prefixed rotate/shift: full S/Z/P update, via
// readOperand/writeOperand so the same builder serves plain and
// indexed dispatch.
func buildCBRotate(kind uint8, readOperand func(e *Environment) uint8, writeOperand func(e *Environment, v uint8)) Action {
	return func(e *Environment) {
		r := e.Reg()
		v := readOperand(e)
		result, carryOut := rotateShift(kind, v, r.GetFlag(FlagC))
		writeOperand(e, result)
		r.PutFlag(FlagC, carryOut)
		r.updateHN(false, false)
		r.updateBitsInFlags(result)
	}
}

// buildBIT builds BIT n,r[z]/(\__index). addrHighByte, when non-nil, supplies
// the high byte of the effective address for the undocumented _3/_5 source
// used only when the operand is (HL)/(IX+d)/(IY+d) (spec Open Question (c),
// resolved as written).
func buildBIT(bit uint8, readOperand func(e *Environment) uint8, addrHighByte func(e *Environment) (uint8, bool)) Action {
	return func(e *Environment) {
		r := e.Reg()
		v := readOperand(e)
		set := v&(1<<bit) != 0
		r.PutFlag(FlagZ, !set)
		r.PutFlag(FlagP, !set)
		r.PutFlag(FlagS, bit == 7 && set)
		r.SetFlag(FlagH)
		r.ClearFlag(FlagN)
		if addrHighByte != nil {
			if hi, ok := addrHighByte(e); ok {
				r.updateUndocumented(hi)
				return
			}
		}
		r.updateUndocumented(v)
	}
}

func buildSET(bit uint8, readOperand func(e *Environment) uint8, writeOperand func(e *Environment, v uint8)) Action {
	return func(e *Environment) {
		v := readOperand(e) | 1<<bit
		writeOperand(e, v)
	}
}

func buildRES(bit uint8, readOperand func(e *Environment) uint8, writeOperand func(e *Environment, v uint8)) Action {
	return func(e *Environment) {
		v := readOperand(e) &^ (1 << bit)
		writeOperand(e, v)
	}
}

// actionRLD/actionRRD implement the BCD digit rotate through (HL) and A.
func actionRLD(e *Environment) {
	r := e.Reg()
	addr := e.IndexAddress()
	mem := e.sys.Peek(addr)
	a := r.Get8(RegA)

	newMem := mem<<4 | a&0x0F
	newA := a&0xF0 | mem>>4

	e.sys.Poke(addr, newMem)
	r.Set8(RegA, newA)
	r.updateBitsInFlags(newA)
}

func actionRRD(e *Environment) {
	r := e.Reg()
	addr := e.IndexAddress()
	mem := e.sys.Peek(addr)
	a := r.Get8(RegA)

	newMem := a<<4 | mem>>4
	newA := a&0xF0 | mem&0x0F

	e.sys.Poke(addr, newMem)
	r.Set8(RegA, newA)
	r.updateBitsInFlags(newA)
}
