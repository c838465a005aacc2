package z80

// Operator is a pure derivation over (a, b) that returns a result and
// updates flags through the bound Environment's Registers. Every opcode
// builder composes an Operator with an operand-access pattern (register,
// immediate, indirect, indexed, block).
type Operator func(e *Environment, a, b uint8) uint8

// operatorAdd computes a+b, always with carry-in cleared.
func operatorAdd(e *Environment, a, b uint8) uint8 {
	e.Reg().ClearFlag(FlagC)
	return operatorAdc(e, a, b)
}

// operatorAdc computes a+b+C.
func operatorAdc(e *Environment, a, b uint8) uint8 {
	aa := uint16(a)
	bb := uint16(b)
	vv := aa + bb
	if e.Reg().GetFlag(FlagC) {
		vv++
	}
	e.Reg().updateArithmeticFlags(aa, bb, vv, false, true)
	return uint8(vv)
}

// operatorAdd16 computes aa+bb for ADD HL,rr (and the IX/IY equivalents).
func operatorAdd16(e *Environment, aa, bb uint16) uint16 {
	aaaa := uint32(aa)
	bbbb := uint32(bb)
	vvvv := aaaa + bbbb
	e.Reg().updateAdd16Flags(aaaa, bbbb, vvvv)
	return uint16(vvvv)
}

// operatorAdc16 computes aa+bb+C for ADC HL,rr.
func operatorAdc16(e *Environment, aa, bb uint16) uint16 {
	aaaa := uint32(aa)
	bbbb := uint32(bb)
	vvvv := aaaa + bbbb
	if e.Reg().GetFlag(FlagC) {
		vvvv++
	}
	vv := uint16(vvvv)

	e.Reg().updateArithmetic16Flags(aaaa, bbbb, vvvv, false)
	e.Reg().PutFlag(FlagZ, vv == 0)
	return vv
}

// operatorSbc16 computes aa-bb-C for SBC HL,rr.
func operatorSbc16(e *Environment, aa, bb uint16) uint16 {
	aaaa := uint32(aa)
	bbbb := uint32(bb)
	vvvv := aaaa - bbbb
	if e.Reg().GetFlag(FlagC) {
		vvvv--
	}
	vv := uint16(vvvv)

	e.Reg().updateArithmetic16Flags(aaaa, bbbb, vvvv, true)
	e.Reg().PutFlag(FlagZ, vv == 0)
	return vv
}

// operatorInc computes a+1. Carry is preserved (updateCarry=false).
func operatorInc(e *Environment, a uint8) uint8 {
	aa := uint16(a)
	vv := aa + 1
	e.Reg().updateArithmeticFlags(aa, 0, vv, false, false)
	return uint8(vv)
}

// operatorSub computes a-b, always with borrow-in cleared.
func operatorSub(e *Environment, a, b uint8) uint8 {
	e.Reg().ClearFlag(FlagC)
	return operatorSbc(e, a, b)
}

// operatorSbc computes a-b-C.
func operatorSbc(e *Environment, a, b uint8) uint8 {
	aa := uint16(a)
	bb := uint16(b)
	vv := aa - bb
	if e.Reg().GetFlag(FlagC) {
		vv--
	}
	e.Reg().updateArithmeticFlags(aa, bb, vv, true, true)
	return uint8(vv)
}

// operatorDec computes a-1. Carry is preserved (updateCarry=false).
func operatorDec(e *Environment, a uint8) uint8 {
	aa := uint16(a)
	vv := aa - 1
	e.Reg().updateArithmeticFlags(aa, 0, vv, true, false)
	return uint8(vv)
}

// operatorAnd computes a&b.
func operatorAnd(e *Environment, a, b uint8) uint8 {
	v := a & b
	e.Reg().updateLogicFlags(a, b, v, true)
	return v
}

// operatorXor computes a^b.
func operatorXor(e *Environment, a, b uint8) uint8 {
	v := a ^ b
	e.Reg().updateLogicFlags(a, b, v, false)
	return v
}

// operatorOr computes a|b.
func operatorOr(e *Environment, a, b uint8) uint8 {
	v := a | b
	e.Reg().updateLogicFlags(a, b, v, false)
	return v
}

// operatorCp computes the flags of a-b without updating the accumulator.
// The undocumented _5/_3 bits are sourced from b rather than from the
// subtraction result (TUZD-8.4).
func operatorCp(e *Environment, a, b uint8) uint8 {
	operatorSub(e, a, b)
	e.Reg().updateUndocumented(b)
	return a
}

// operatorNeg computes 0-a, i.e. two's complement negation, via operatorSub.
func operatorNeg(e *Environment, a uint8) uint8 {
	return operatorSub(e, 0, a)
}
