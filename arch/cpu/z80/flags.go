package z80

// Flag-derivation helpers shared by every Operator. Routing through one
// small family of helpers, each checking mode8080 once, avoids scattering
// the 8080/Z80 divergence across every opcode body (see DESIGN.md for the
// two-parallel-helper-sets alternative the conformance suites did not end up
// requiring).

// updateHN sets H and N together, a no-op on the 8080 which has neither bit
// meaningfully tracked by this path (ADD16 on 8080 only ever touches C).
func (r *Registers) updateHN(h, n bool) {
	if r.mode8080 {
		return
	}
	r.PutFlag(FlagH, h)
	r.PutFlag(FlagN, n)
}

// updateP sets P/V from the even parity of reference.
func (r *Registers) updateP(reference uint8) {
	bits := popcount(reference)
	r.PutFlag(FlagP, bits%2 == 0)
}

// updateUndocumented copies bits 5 and 3 of reference into _5/_3. A no-op on
// the 8080, which has neither bit.
func (r *Registers) updateUndocumented(reference uint8) {
	if r.mode8080 {
		return
	}
	r.PutFlag(Flag5, reference&(1<<5) != 0)
	r.PutFlag(Flag3, reference&(1<<3) != 0)
}

// updateUndocumentedBlock sources _5/_3 from bits 1 and 3 of reference, the
// distinct rule used by the LDI/LDD/CPI/CPD family (TUZD-4.2).
func (r *Registers) updateUndocumentedBlock(reference uint8) {
	if r.mode8080 {
		return
	}
	r.PutFlag(Flag5, reference&(1<<1) != 0)
	r.PutFlag(Flag3, reference&(1<<3) != 0)
}

// updateSZ53 sets S, Z and the undocumented _5/_3 bits from reference.
func (r *Registers) updateSZ53(reference uint8) {
	r.updateUndocumented(reference)
	r.PutFlag(FlagZ, reference == 0)
	r.PutFlag(FlagS, reference&(1<<7) != 0)
}

// updateAdd16Flags updates the flags for ADD HL,rr (and ADD IX/IY,rr): on
// the Z80 only C, H, N and the undocumented bits are affected, derived from
// the carries into the high byte; S/Z/P/V are left untouched. On the 8080
// only C is affected.
func (r *Registers) updateAdd16Flags(a, b, v uint32) {
	if r.mode8080 {
		r.PutFlag(FlagC, v&0x10000 != 0)
		return
	}
	xor := uint16((a ^ b ^ v) >> 8)
	r.updateUndocumented(uint8(v >> 8))
	r.PutFlag(FlagC, xor>>8&1 != 0)
	r.PutFlag(FlagH, xor>>4&1 != 0)
	r.ClearFlag(FlagN)
}

// updateArithmetic16Flags updates the flags for ADC/SBC HL,rr by running the
// 8-bit arithmetic derivation over the high bytes; Z is overwritten by the
// caller from the full 16-bit result since update_sz53 alone only sees the
// high byte.
func (r *Registers) updateArithmetic16Flags(a, b, reference uint32, neg bool) {
	r.updateArithmeticFlags(uint16(a>>8), uint16(b>>8), uint16(reference>>8), neg, true)
}

// updateArithmeticFlags is the core 8-bit ALU flag derivation shared by
// ADD/ADC/SUB/SBC/INC/DEC/CP (and, on the high byte, by the 16-bit forms).
// a, b and reference are widened to 16 bits purely so the carry-out of bit 7
// can be read back from bit 8 of the xor.
func (r *Registers) updateArithmeticFlags(a, b, reference uint16, neg, updateCarry bool) {
	r.updateSZ53(uint8(reference))

	xor := a ^ b ^ reference
	carryBit := xor&0x100 != 0
	if updateCarry {
		r.PutFlag(FlagC, carryBit)
	}

	halfBit := xor&0x10 != 0
	r.PutFlag(FlagH, halfBit)

	if r.mode8080 {
		r.updateP(uint8(reference))
		if neg {
			aB3 := a&0x08 != 0
			bB3 := b&0x08 != 0
			rB3 := reference&0x08 != 0
			negHalfBit := (!aB3 && !bB3 && !rB3) || (aB3 && !(bB3 && rB3))
			r.PutFlag(FlagH, negHalfBit)
		}
		return
	}

	topXor := xor&0x80 != 0
	r.PutFlag(FlagP, carryBit != topXor) // overflow
	r.PutFlag(FlagN, neg)
}

// updateLogicFlags updates the flags for AND/OR/XOR. is_and selects the
// distinct half-carry rule the 8080 applies only to AND.
func (r *Registers) updateLogicFlags(a, b, reference uint8, isAnd bool) {
	r.updateSZ53(reference)
	r.updateP(reference)
	r.ClearFlag(FlagC)

	if r.mode8080 {
		r.PutFlag(FlagH, isAnd && (a|b)&0x08 != 0)
		return
	}
	r.ClearFlag(FlagN)
	r.PutFlag(FlagH, isAnd)
}

// updateBlockFlags updates the flags for the block I/O family (TUZD-4.3).
// reference is the transferred byte, k is the instruction-specific
// intermediate sum, counter is B after decrement.
func (r *Registers) updateBlockFlags(reference uint8, k uint16, counter uint8) {
	r.updateSZ53(counter)
	r.PutFlag(FlagH, k > 255)
	if !r.mode8080 {
		r.updateP(uint8(k)&0x07 ^ counter)
		r.PutFlag(FlagN, reference&0x80 != 0)
	}
	r.PutFlag(FlagC, k > 255)
}

// updateBitsInFlags updates the flags for BIT/SET/RES/RLD/RRD and the
// rotate/shift CB forms: S/Z/_5/_3 from reference, H cleared, and on the Z80
// only, parity and N cleared.
func (r *Registers) updateBitsInFlags(reference uint8) {
	r.updateSZ53(reference)
	r.ClearFlag(FlagH)
	if !r.mode8080 {
		r.updateP(reference)
		r.ClearFlag(FlagN)
	}
}

// updateDAAFlags applies the DAA result: S/Z/_5/_3/parity from newA, H and C
// from the correction computation, N left unchanged.
func (r *Registers) updateDAAFlags(newA uint8, newH, newC bool) {
	r.updateSZ53(newA)
	r.updateP(newA)
	r.PutFlag(FlagH, newH)
	r.PutFlag(FlagC, newC)
}

func popcount(v uint8) int {
	n := 0
	for v != 0 {
		n += int(v & 1)
		v >>= 1
	}
	return n
}
