package z80

import "fmt"

// z80PrimaryOpcode decodes one primary-table slot by the x/y/z/p/q
// decomposition (§4.5). The same table serves plain and index-prefixed
// dispatch: every operand access goes through Environment's index-aware
// accessors, so a displacement fetched by the caller (when the slot is
// displacement-bearing and an index is active) is transparently honored.
func z80PrimaryOpcode(opcode byte) Opcode {
	x, y, z, p, q := splitOpcode(opcode)

	switch x {
	case 0:
		switch z {
		case 0:
			switch {
			case y == 0:
				return Opcode{"NOP", 4, 4, actionNOP}
			case y == 1:
				return Opcode{"EX AF,AF'", 4, 4, actionEXAFAF}
			case y == 2:
				return Opcode{"DJNZ {d}", 13, 8, actionDJNZ}
			case y == 3:
				return Opcode{"JR {d}", 12, 12, actionJR}
			default:
				return Opcode{"JR " + condName[y-4] + ",{d}", 12, 7, buildJRCond(y - 4)}
			}
		case 1:
			if q == 0 {
				return Opcode{"LD " + pairName[p] + ",{nn}", 10, 10, buildLD16Imm(pairTable[p])}
			}
			return Opcode{"ADD __index," + pairName[p], 11, 11, buildADD16(pairTable[p])}
		case 2:
			switch {
			case q == 0 && p == 0:
				return Opcode{"LD (BC),A", 7, 7, actionLDIndBCFromA}
			case q == 0 && p == 1:
				return Opcode{"LD (DE),A", 7, 7, actionLDIndDEFromA}
			case q == 0 && p == 2:
				return Opcode{"LD ({nn}),__index", 16, 16, actionLDIndNNFromHL}
			case q == 0 && p == 3:
				return Opcode{"LD ({nn}),A", 13, 13, actionLDIndNNFromA}
			case q == 1 && p == 0:
				return Opcode{"LD A,(BC)", 7, 7, actionLDAFromIndBC}
			case q == 1 && p == 1:
				return Opcode{"LD A,(DE)", 7, 7, actionLDAFromIndDE}
			case q == 1 && p == 2:
				return Opcode{"LD __index,({nn})", 16, 16, actionLDHLFromIndNN}
			default:
				return Opcode{"LD A,({nn})", 13, 13, actionLDAFromIndNN}
			}
		case 3:
			if q == 0 {
				return Opcode{"INC " + pairName[p], 6, 6, func(e *Environment) { e.SetReg16(pairTable[p], e.Reg16Ext(pairTable[p])+1) }}
			}
			return Opcode{"DEC " + pairName[p], 6, 6, func(e *Environment) { e.SetReg16(pairTable[p], e.Reg16Ext(pairTable[p])-1) }}
		case 4:
			cyc := uint8(4)
			if y == 6 {
				cyc = 11
			}
			return Opcode{"INC " + regName[y], cyc, cyc, buildINC8(regTable[y])}
		case 5:
			cyc := uint8(4)
			if y == 6 {
				cyc = 11
			}
			return Opcode{"DEC " + regName[y], cyc, cyc, buildDEC8(regTable[y])}
		case 6:
			cyc := uint8(7)
			if y == 6 {
				cyc = 10
			}
			return Opcode{"LD " + regName[y] + ",{n}", cyc, cyc, buildLD8Imm(regTable[y])}
		default: // z==7
			switch y {
			case 0:
				return Opcode{"RLCA", 4, 4, buildFastRotate(0)}
			case 1:
				return Opcode{"RRCA", 4, 4, buildFastRotate(1)}
			case 2:
				return Opcode{"RLA", 4, 4, buildFastRotate(2)}
			case 3:
				return Opcode{"RRA", 4, 4, buildFastRotate(3)}
			case 4:
				return Opcode{"DAA", 4, 4, actionDAA}
			case 5:
				return Opcode{"CPL", 4, 4, actionCPL}
			case 6:
				return Opcode{"SCF", 4, 4, actionSCF}
			default:
				return Opcode{"CCF", 4, 4, actionCCF}
			}
		}
	case 1:
		if z == 6 && y == 6 {
			return Opcode{"HALT", 4, 4, actionHALT}
		}
		cyc := uint8(4)
		if z == 6 || y == 6 {
			cyc = 7
		}
		return Opcode{"LD " + regName[y] + "," + regName[z], cyc, cyc, buildLD8(regTable[y], regTable[z])}
	case 2:
		cyc := uint8(4)
		if z == 6 {
			cyc = 7
		}
		return Opcode{aluName[y] + regName[z], cyc, cyc, buildALU8(aluTable[y], regReader(regTable[z]))}
	default: // x==3
		switch z {
		case 0:
			return Opcode{"RET " + condName[y], 11, 5, buildRETCond(y)}
		case 1:
			switch {
			case q == 0:
				return Opcode{"POP " + pair2Name[p], 10, 10, buildPOP(pair2Table[p])}
			case p == 0:
				return Opcode{"RET", 10, 10, actionRET}
			case p == 1:
				return Opcode{"EXX", 4, 4, actionEXX}
			case p == 2:
				return Opcode{"JP (__index)", 4, 4, actionJPHL}
			default:
				return Opcode{"LD SP,__index", 6, 6, actionLDSPFromHL}
			}
		case 2:
			return Opcode{"JP " + condName[y] + ",{nn}", 10, 10, buildJPCond(y)}
		case 3:
			switch y {
			case 0:
				return Opcode{"JP {nn}", 10, 10, actionJPNN}
			case 1:
				return Opcode{"(CB prefix)", 0, 0, actionNOP}
			case 2:
				return Opcode{"OUT ({n}),A", 11, 11, actionOUTNFromA}
			case 3:
				return Opcode{"IN A,({n})", 11, 11, actionINAFromN}
			case 4:
				return Opcode{"EX (SP),__index", 19, 19, actionEXIndSPHL}
			case 5:
				return Opcode{"EX DE,HL", 4, 4, actionEXDEHL}
			case 6:
				return Opcode{"DI", 4, 4, actionDI}
			default:
				return Opcode{"EI", 4, 4, actionEI}
			}
		case 4:
			return Opcode{"CALL " + condName[y] + ",{nn}", 17, 10, buildCALLCond(y)}
		case 5:
			switch {
			case q == 0:
				return Opcode{"PUSH " + pair2Name[p], 11, 11, buildPUSH(pair2Table[p])}
			case p == 0:
				return Opcode{"CALL {nn}", 17, 17, actionCALLNN}
			case p == 1:
				return Opcode{"(DD prefix)", 0, 0, actionNOP}
			case p == 2:
				return Opcode{"(ED prefix)", 0, 0, actionNOP}
			default:
				return Opcode{"(FD prefix)", 0, 0, actionNOP}
			}
		case 6:
			return Opcode{aluName[y] + "{n}", 7, 7, buildALU8(aluTable[y], immediateReader())}
		default: // z==7
			addr := uint16(y) * 8
			return Opcode{fmt.Sprintf("RST %02Xh", addr), 11, 11, buildRST(addr)}
		}
	}
}

// cbOperand returns the read/write pair for the plain (unprefixed) CB
// table: register or (HL), index-aware through Environment exactly like
// the primary table.
func cbOperand(z uint8) (read func(e *Environment) uint8, write func(e *Environment, v uint8)) {
	reg := regTable[z]
	return regReader(reg), func(e *Environment, v uint8) { e.SetReg(reg, v) }
}

func z80CBOpcode(opcode byte) Opcode {
	x, y, z, _, _ := splitOpcode(opcode)
	read, write := cbOperand(z)
	cyc := uint8(8)
	if z == 6 {
		if x == 1 {
			cyc = 12 // BIT (HL)
		} else {
			cyc = 15 // RLC/RRC/RL/RR/SLA/SRA/SLL/SRL/RES/SET (HL)
		}
	}

	switch x {
	case 0:
		return Opcode{rotName[y] + " " + regName[z], cyc, cyc, buildCBRotate(y, read, write)}
	case 1:
		return Opcode{fmt.Sprintf("BIT %d,%s", y, regName[z]), cyc, cyc, buildBIT(y, read, nil)}
	case 2:
		return Opcode{fmt.Sprintf("RES %d,%s", y, regName[z]), cyc, cyc, buildRES(y, read, write)}
	default:
		return Opcode{fmt.Sprintf("SET %d,%s", y, regName[z]), cyc, cyc, buildSET(y, read, write)}
	}
}

// copyRegTable maps the CB z field (excluding 6, (HL)) onto the literal,
// untranslated register the DD CB/FD CB undocumented forms also copy
// their result into.
var copyRegTable = [8]Reg8{RegB, RegC, RegD, RegE, RegH, RegL, 0xFF, RegA}

func z80CBIndexedOpcode(opcode byte) Opcode {
	x, y, z, _, _ := splitOpcode(opcode)

	read := func(e *Environment) uint8 { return e.sys.Peek(e.IndexAddress()) }
	write := func(e *Environment, v uint8) {
		e.sys.Poke(e.IndexAddress(), v)
		if z != 6 {
			e.Reg().Set8(copyRegTable[z], v)
		}
	}

	cyc := uint8(23)
	if x == 1 {
		cyc = 20
	}

	switch x {
	case 0:
		return Opcode{rotName[y] + " (__index)", cyc, cyc, buildCBRotate(y, read, write)}
	case 1:
		addrHigh := func(e *Environment) (uint8, bool) { return uint8(e.IndexAddress() >> 8), true }
		return Opcode{fmt.Sprintf("BIT %d,(__index)", y), cyc, cyc, buildBIT(y, read, addrHigh)}
	case 2:
		return Opcode{fmt.Sprintf("RES %d,(__index)", y), cyc, cyc, buildRES(y, read, write)}
	default:
		return Opcode{fmt.Sprintf("SET %d,(__index)", y), cyc, cyc, buildSET(y, read, write)}
	}
}

func z80EDOpcode(opcode byte) Opcode {
	x, y, z, p, q := splitOpcode(opcode)

	if x == 1 {
		switch z {
		case 0:
			if y == 6 {
				return Opcode{"IN (C)", 12, 12, buildINReg(RegA, true)}
			}
			return Opcode{"IN " + regName[y] + ",(C)", 12, 12, buildINReg(regTable[y], false)}
		case 1:
			if y == 6 {
				return Opcode{"OUT (C),0", 12, 12, buildOUTReg(RegA, true)}
			}
			return Opcode{"OUT (C)," + regName[y], 12, 12, buildOUTReg(regTable[y], false)}
		case 2:
			if q == 0 {
				return Opcode{"SBC HL," + pairName[p], 15, 15, buildSBC16(pairTable[p])}
			}
			return Opcode{"ADC HL," + pairName[p], 15, 15, buildADC16(pairTable[p])}
		case 3:
			if q == 0 {
				return Opcode{"LD ({nn})," + pairName[p], 20, 20, buildLDIndNNFromPair(pairTable[p])}
			}
			return Opcode{"LD " + pairName[p] + ",({nn})", 20, 20, buildLDPairFromIndNN(pairTable[p])}
		case 4:
			return Opcode{"NEG", 8, 8, func(e *Environment) { e.Reg().Set8(RegA, operatorNeg(e, e.Reg().Get8(RegA))) }}
		case 5:
			if y == 1 {
				return Opcode{"RETI", 14, 14, actionRETI}
			}
			return Opcode{"RETN", 14, 14, actionRETN}
		case 6:
			modes := [8]uint8{0, 0, 1, 2, 0, 0, 1, 2}
			return Opcode{fmt.Sprintf("IM %d", modes[y]), 8, 8, buildIM(modes[y])}
		default: // z==7
			switch y {
			case 0:
				return Opcode{"LD I,A", 9, 9, actionLDIFromA}
			case 1:
				return Opcode{"LD R,A", 9, 9, actionLDRFromA}
			case 2:
				return Opcode{"LD A,I", 9, 9, actionLDAFromI}
			case 3:
				return Opcode{"LD A,R", 9, 9, actionLDAFromR}
			case 4:
				return Opcode{"RRD", 18, 18, actionRRD}
			case 5:
				return Opcode{"RLD", 18, 18, actionRLD}
			default:
				return Opcode{"NOP (NONI)", 8, 8, actionNONI}
			}
		}
	}

	if x == 2 && z <= 3 && y >= 4 {
		inc := y == 4 || y == 6
		repeat := isBlockRepeat(opcode)
		step := blockStep{inc: inc, repeat: repeat}
		cyc := uint8(16)
		if repeat {
			cyc = 21
		}
		switch z {
		case 0:
			return Opcode{blockMnemonic("LD", inc, repeat), cyc, 16, buildBlockLD(step)}
		case 1:
			return Opcode{blockMnemonic("CP", inc, repeat), cyc, 16, buildBlockCP(step)}
		case 2:
			return Opcode{blockMnemonic("IN", inc, repeat), cyc, 16, buildBlockIN(step)}
		default:
			return Opcode{blockMnemonic("OUT", inc, repeat), cyc, 16, buildBlockOUT(step)}
		}
	}

	return Opcode{"NOP (NONI)", 8, 8, actionNONI}
}

func blockMnemonic(base string, inc, repeat bool) string {
	s := base
	if inc {
		s += "I"
	} else {
		s += "D"
	}
	if repeat {
		s += "R"
	}
	return s
}

// z80Tables holds the four eagerly-materialized dispatch tables a Z80
// decoder needs (§4.5): primary, CB, CB-indexed, ED.
type z80Tables struct {
	primary    [256]Opcode
	cb         [256]Opcode
	cbIndexed  [256]Opcode
	ed         [256]Opcode
}

func newZ80Tables() *z80Tables {
	t := &z80Tables{}
	for i := 0; i < 256; i++ {
		op := byte(i)
		t.primary[i] = z80PrimaryOpcode(op)
		t.cb[i] = z80CBOpcode(op)
		t.cbIndexed[i] = z80CBIndexedOpcode(op)
		t.ed[i] = z80EDOpcode(op)
	}
	return t
}

// decodeZ80 implements the Z80 prefix state machine of §4.5: DD/FD loop
// (last prefix wins), then ED (clearing index) or CB (indexed or plain)
// or the primary table, fetching a displacement whenever required.
// extraCycles folds the DD/FD prefix-loop and displacement overhead into a
// cycle adjustment added on top of an Opcode's own published count. The
// CB-indexed and ED tables already price in one prefix byte's worth of
// overhead (their published totals assume the single, common case); only
// redundant extra prefix bytes (§8: "each prefix costing 4 cycles") need
// adding on top of those two tables. The primary table's published counts
// are the plain, unprefixed cost, so a primary-table dispatch under an
// active index needs the full prefix and displacement overhead added.
type extraCycles struct {
	prefixBytes int
	displaced   bool
	viaIndexedTable bool
}

func (x extraCycles) cycles() uint8 {
	if x.viaIndexedTable {
		if x.prefixBytes > 1 {
			return uint8(4 * (x.prefixBytes - 1))
		}
		return 0
	}
	n := uint8(4 * x.prefixBytes)
	if x.displaced {
		n += 8
	}
	return n
}

func decodeZ80(e *Environment, t *z80Tables) (op Opcode, extra extraCycles) {
	e.ClearIndex()

	b := e.AdvancePC()
	for b == 0xDD || b == 0xFD {
		if b == 0xDD {
			e.SetIndex(RegIX)
		} else {
			e.SetIndex(RegIY)
		}
		extra.prefixBytes++
		b = e.AdvancePC()
	}

	switch {
	case b == 0xED:
		e.ClearIndex()
		opcodeByte := e.AdvancePC()
		extra.viaIndexedTable = extra.prefixBytes > 0
		return t.ed[opcodeByte], extra
	case b == 0xCB:
		if e.IsAltIndex() {
			e.LoadDisplacement()
			opcodeByte := e.AdvancePC()
			extra.viaIndexedTable = true
			return t.cbIndexed[opcodeByte], extra
		}
		opcodeByte := e.AdvancePC()
		return t.cb[opcodeByte], extra
	default:
		if isDisplacementBearing(b) && e.IsAltIndex() {
			e.LoadDisplacement()
			extra.displaced = true
		}
		return t.primary[b], extra
	}
}
