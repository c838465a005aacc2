package z80

// actionINAFromN implements IN A,(n): port address is A in the high byte,
// n in the low byte.
func actionINAFromN(e *Environment) {
	n := e.AdvancePC()
	a := e.Reg().Get8(RegA)
	addr := uint16(a)<<8 | uint16(n)
	e.Reg().Set8(RegA, e.PortIn(addr))
}

// actionOUTNFromA implements OUT (n),A.
func actionOUTNFromA(e *Environment) {
	n := e.AdvancePC()
	a := e.Reg().Get8(RegA)
	addr := uint16(a)<<8 | uint16(n)
	e.PortOut(addr, a)
}

// buildINReg builds IN r,(C); flagsOnly == true selects the y==6 form
// IN (C) that updates flags and discards the read byte.
func buildINReg(reg Reg8, flagsOnly bool) Action {
	return func(e *Environment) {
		r := e.Reg()
		addr := r.Get16(RegBC)
		v := e.PortIn(addr)
		if !flagsOnly {
			r.Set8(reg, v)
		}
		r.updateSZ53(v)
		r.updateP(v)
		r.ClearFlag(FlagH)
		r.ClearFlag(FlagN)
	}
}

// buildOUTReg builds OUT (C),r; zero==true selects the undocumented
// OUT (C),0 form.
func buildOUTReg(reg Reg8, zero bool) Action {
	return func(e *Environment) {
		r := e.Reg()
		addr := r.Get16(RegBC)
		v := uint8(0)
		if !zero {
			v = r.Get8(reg)
		}
		e.PortOut(addr, v)
	}
}

// buildBlockIN builds INI/IND/INIR/INDR: B is decremented *before* the
// BC-addressed port read (TUZD-4.4; §4.5), unlike buildBlockOUT where BC
// is read before B is decremented.
func buildBlockIN(step blockStep) Action {
	return func(e *Environment) {
		r := e.Reg()
		b := r.IncDec8(RegB, false)
		bc := r.Get16(RegBC)
		value := e.PortIn(bc)
		hl := r.Get16(RegHL16)
		e.sys.Poke(hl, value)

		if step.inc {
			r.Set16(RegHL16, hl+1)
		} else {
			r.Set16(RegHL16, hl-1)
		}

		c := uint8(bc)
		var cAdj uint8
		if step.inc {
			cAdj = c + 1
		} else {
			cAdj = c - 1
		}
		k := uint16(value) + uint16(cAdj)
		r.updateBlockFlags(value, k, b)

		if step.repeat && b != 0 {
			r.SetPC(r.PC() - 2)
			e.SetBranchTaken()
		}
	}
}

// buildBlockOUT builds OUTI/OUTD/OTIR/OTDR: BC is read before B is
// decremented (§4.3).
func buildBlockOUT(step blockStep) Action {
	return func(e *Environment) {
		r := e.Reg()
		hl := r.Get16(RegHL16)
		value := e.sys.Peek(hl)

		if step.inc {
			r.Set16(RegHL16, hl+1)
		} else {
			r.Set16(RegHL16, hl-1)
		}

		bc := r.Get16(RegBC)
		e.PortOut(bc, value)
		b := r.IncDec8(RegB, false)

		l := r.Get8(RegL)
		k := uint16(value) + uint16(l)
		r.updateBlockFlags(value, k, b)

		if step.repeat && b != 0 {
			r.SetPC(r.PC() - 2)
			e.SetBranchTaken()
		}
	}
}
