package z80

// buildLD8 builds the general register/memory 8-bit move LD r[y],r[z].
func buildLD8(dst, src Reg8) Action {
	return func(e *Environment) {
		e.SetReg(dst, e.Reg8Ext(src))
	}
}

// buildLD8Imm builds LD r[y],n.
func buildLD8Imm(dst Reg8) Action {
	return func(e *Environment) {
		e.SetReg(dst, e.AdvancePC())
	}
}

// buildLD16Imm builds LD rp[p],nn.
func buildLD16Imm(rr Reg16) Action {
	return func(e *Environment) {
		e.SetReg16(rr, e.AdvanceImmediate16())
	}
}

// actionLDIndBCFromA / actionLDIndDEFromA implement LD (BC),A / LD (DE),A.
func actionLDIndBCFromA(e *Environment) {
	e.sys.Poke(e.Reg().Get16(RegBC), e.Reg().Get8(RegA))
}

func actionLDIndDEFromA(e *Environment) {
	e.sys.Poke(e.Reg().Get16(RegDE), e.Reg().Get8(RegA))
}

func actionLDAFromIndBC(e *Environment) {
	e.Reg().Set8(RegA, e.sys.Peek(e.Reg().Get16(RegBC)))
}

func actionLDAFromIndDE(e *Environment) {
	e.Reg().Set8(RegA, e.sys.Peek(e.Reg().Get16(RegDE)))
}

// actionLDIndNNFromHL / actionLDHLFromIndNN implement LD (nn),HL and its
// inverse, index-translated so LD (nn),IX / LD IX,(nn) reuse this body.
func actionLDIndNNFromHL(e *Environment) {
	addr := e.AdvanceImmediate16()
	Poke16(e.sys, addr, e.Reg16Ext(RegHL16))
}

func actionLDHLFromIndNN(e *Environment) {
	addr := e.AdvanceImmediate16()
	e.SetReg16(RegHL16, Peek16(e.sys, addr))
}

func actionLDIndNNFromA(e *Environment) {
	addr := e.AdvanceImmediate16()
	e.sys.Poke(addr, e.Reg().Get8(RegA))
}

func actionLDAFromIndNN(e *Environment) {
	addr := e.AdvanceImmediate16()
	e.Reg().Set8(RegA, e.sys.Peek(addr))
}

// buildLDIndNNFromPair / buildLDPairFromIndNN implement the ED-prefixed
// LD (nn),rp / LD rp,(nn) forms for BC/DE/SP (HL has its own unprefixed
// opcode already covered above, but ED 6B/63 etc. also reach HL).
func buildLDIndNNFromPair(rr Reg16) Action {
	return func(e *Environment) {
		addr := e.AdvanceImmediate16()
		Poke16(e.sys, addr, e.Reg().Get16(rr))
	}
}

func buildLDPairFromIndNN(rr Reg16) Action {
	return func(e *Environment) {
		addr := e.AdvanceImmediate16()
		e.Reg().Set16(rr, Peek16(e.sys, addr))
	}
}

// actionLDSPFromHL implements LD SP,HL (index-translated).
func actionLDSPFromHL(e *Environment) {
	e.Reg().Set16(RegSP, e.Reg16Ext(RegHL16))
}

// buildPUSH / buildPOP.
func buildPUSH(rr Reg16) Action {
	return func(e *Environment) {
		e.Push(e.Reg16Ext(rr))
	}
}

func buildPOP(rr Reg16) Action {
	return func(e *Environment) {
		e.SetReg16(rr, e.Pop())
	}
}

// actionEXDEHL implements EX DE,HL (never index-translated).
func actionEXDEHL(e *Environment) {
	r := e.Reg()
	de := r.Get16(RegDE)
	hl := r.Get16(RegHL16)
	r.Set16(RegDE, hl)
	r.Set16(RegHL16, de)
}

// actionEXAFAF implements EX AF,AF'.
func actionEXAFAF(e *Environment) {
	e.Reg().Swap(RegAF)
}

// actionEXX implements EXX: swaps BC, DE and HL with their shadow copies.
func actionEXX(e *Environment) {
	r := e.Reg()
	r.Swap(RegBC)
	r.Swap(RegDE)
	r.Swap(RegHL16)
}

// actionEXIndSPHL implements EX (SP),HL, index-translated so EX (SP),IX
// works too.
func actionEXIndSPHL(e *Environment) {
	sp := e.Reg().Get16(RegSP)
	mem := Peek16(e.sys, sp)
	hl := e.Reg16Ext(RegHL16)
	Poke16(e.sys, sp, hl)
	e.SetReg16(RegHL16, mem)
}

// blockStep selects increment (inc) or decrement of the pointers, and
// whether the instruction repeats, for the block load/compare/IO families.
type blockStep struct {
	inc    bool
	repeat bool
}

// buildBlockLD builds LDI/LDD/LDIR/LDDR.
func buildBlockLD(step blockStep) Action {
	return func(e *Environment) {
		r := e.Reg()
		hl := r.Get16(RegHL16)
		de := r.Get16(RegDE)
		value := e.sys.Peek(hl)
		e.sys.Poke(de, value)

		if step.inc {
			r.Set16(RegHL16, hl+1)
			r.Set16(RegDE, de+1)
		} else {
			r.Set16(RegHL16, hl-1)
			r.Set16(RegDE, de-1)
		}
		bc := r.IncDec16(RegBC, false)

		n := value + r.Get8(RegA)
		r.updateUndocumentedBlock(n)
		r.updateHN(false, false)
		r.PutFlag(FlagP, bc != 0)

		if step.repeat && bc != 0 {
			r.SetPC(r.PC() - 2)
			e.SetBranchTaken()
		}
	}
}

// buildBlockCP builds CPI/CPD/CPIR/CPDR.
func buildBlockCP(step blockStep) Action {
	return func(e *Environment) {
		r := e.Reg()
		hl := r.Get16(RegHL16)
		value := e.sys.Peek(hl)
		a := r.Get8(RegA)

		carry := r.GetFlag(FlagC)
		operatorCp(e, a, value)
		r.PutFlag(FlagC, carry)
		r.SetFlag(FlagN)

		borrow := uint8(0)
		if r.GetFlag(FlagH) {
			borrow = 1
		}
		n := a - value - borrow

		if step.inc {
			r.Set16(RegHL16, hl+1)
		} else {
			r.Set16(RegHL16, hl-1)
		}
		bc := r.IncDec16(RegBC, false)

		r.updateUndocumentedBlock(n)
		r.PutFlag(FlagP, bc != 0)

		if step.repeat && bc != 0 && a != value {
			r.SetPC(r.PC() - 2)
			e.SetBranchTaken()
		}
	}
}
