package z80

// absent8080 is the relative-jump family (x=0,z=0,y>=1): genuinely
// undefined NOPs on real 8080 silicon, where the Z80 repurposes these
// slots for EX AF,AF'/DJNZ/JR/JR cc (§4.5).
var absent8080 = [...]byte{0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38}

// aliased8080 maps the bytes the Z80 spends on CB/DD/ED/FD prefixing and
// the EXX instruction to the real-silicon 8080 opcode they alias: the
// 8080's decode PLA doesn't fully distinguish these bit patterns from
// a sibling slot (y==0 for 0xCB, q==1,p==0 for the others), so
// 0xCB/0xD9/0xDD/0xED/0xFD execute as
// plain JP nn/RET/CALL nn rather than anything prefix- or EXX-shaped
// (_examples/original_source/src/decoder_8080.rs: `build_ret()` taken for
// p==0 and p==1 alike; `build_call()` taken for any p when q==1; `build_
// jp_unconditional()` taken for y==0 and y==1 alike).
var aliased8080 = map[byte]byte{
	0xCB: 0xC3, // JP nn
	0xD9: 0xC9, // RET
	0xDD: 0xCD, // CALL nn
	0xED: 0xCD, // CALL nn
	0xFD: 0xCD, // CALL nn
}

// newI8080Table builds the single 256-entry 8080 dispatch table by reusing
// the shared primary-table decode (ADD/LD/ALU/INC/DEC/PUSH/POP/CALL/RET/
// JP/RST semantics are identical on both chips; only flag derivation
// differs, and that is handled by Registers.mode8080, not by the
// decoder) and then patching in the 8080-specific divergences.
func newI8080Table() *[256]Opcode {
	table := &[256]Opcode{}
	for i := 0; i < 256; i++ {
		table[i] = z80PrimaryOpcode(byte(i))
	}

	nop := Opcode{"NOP", 4, 4, actionNOP}
	for _, b := range absent8080 {
		table[b] = nop
	}

	for b, alias := range aliased8080 {
		table[b] = table[alias]
	}

	// CALL cc,nn differs: not-taken costs 11 cycles on 8080, not 10.
	for y := uint8(0); y < 8; y++ {
		opcode := byte(0xC4 | y<<3)
		op := table[opcode]
		op.CyclesNo = 11
		table[opcode] = op
	}

	return table
}

// decode8080 has no prefix state machine: one byte, one table lookup.
func decode8080(e *Environment, table *[256]Opcode) Opcode {
	b := e.AdvancePC()
	return table[b]
}
