package z80

import "github.com/8bitlab/z8080/set"

// displacementBearing is the set of primary opcode bytes whose operand
// pattern involves (HL), and which therefore require a displacement byte
// fetch before dispatch when an index prefix (DD/FD) is active (§4.5).
var displacementBearing = set.NewFromSlice([]byte{
	0x34, 0x35, 0x36,
	0x46, 0x4E,
	0x56, 0x5E,
	0x66, 0x6E,
	0x70, 0x71, 0x72, 0x73, 0x74, 0x75, 0x77,
	0x7E,
	0x86, 0x8E, 0x96, 0x9E, 0xA6, 0xAE, 0xB6, 0xBE,
})

// isDisplacementBearing reports whether opcode requires a displacement
// byte fetch when an alternate index is active.
func isDisplacementBearing(opcode byte) bool {
	return displacementBearing.Contains(opcode)
}

// blockRepeat is the set of secondary (ED-prefixed) opcode bytes that
// implement a repeating block instruction (the *IR/*DR family): LDIR,
// LDDR, CPIR, CPDR, INIR, INDR, OTIR, OTDR.
var blockRepeat = set.NewFromSlice([]byte{
	0xB0, 0xB8, // LDIR, LDDR
	0xB1, 0xB9, // CPIR, CPDR
	0xB2, 0xBA, // INIR, INDR
	0xB3, 0xBB, // OTIR, OTDR
})

// isBlockRepeat reports whether the ED-prefixed opcode repeats until its
// counter reaches zero.
func isBlockRepeat(opcode byte) bool {
	return blockRepeat.Contains(opcode)
}
