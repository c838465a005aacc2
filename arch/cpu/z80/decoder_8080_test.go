package z80

import (
	"testing"

	"github.com/8bitlab/z8080/assert"
)

func TestNewI8080Table_AbsentOpcodesAreNOP(t *testing.T) {
	table := newI8080Table()
	for _, b := range absent8080 {
		assert.Equal(t, "NOP", table[b].Mnemonic)
	}
}

func TestNewI8080Table_AliasedOpcodesMatchRealSilicon(t *testing.T) {
	table := newI8080Table()
	for b, alias := range aliased8080 {
		assert.Equal(t, table[alias].Mnemonic, table[b].Mnemonic)
		assert.Equal(t, table[alias].CyclesGo, table[b].CyclesGo)
		assert.Equal(t, table[alias].CyclesNo, table[b].CyclesNo)
	}
}

func TestNewI8080Table_CBAliasesJPnn(t *testing.T) {
	table := newI8080Table()
	assert.Equal(t, "JP {nn}", table[0xCB].Mnemonic)
}

func TestNewI8080Table_D9AliasesRET(t *testing.T) {
	table := newI8080Table()
	assert.Equal(t, "RET", table[0xD9].Mnemonic)
}

func TestNewI8080Table_DDAliasesCallNN(t *testing.T) {
	table := newI8080Table()
	assert.Equal(t, "CALL {nn}", table[0xDD].Mnemonic)
}

func TestNewI8080Table_EDAliasesCallNN(t *testing.T) {
	table := newI8080Table()
	assert.Equal(t, "CALL {nn}", table[0xED].Mnemonic)
}

func TestNewI8080Table_FDAliasesCallNN(t *testing.T) {
	table := newI8080Table()
	assert.Equal(t, "CALL {nn}", table[0xFD].Mnemonic)
}

func TestNewI8080Table_CallCondNotTakenIs11Cycles(t *testing.T) {
	table := newI8080Table()
	op := table[0xC4] // CALL NZ,nn
	assert.Equal(t, uint8(11), op.CyclesNo)
	assert.Equal(t, uint8(17), op.CyclesGo)
}

func TestNewI8080Table_SharesPrimaryOpcodesForCommonInstructions(t *testing.T) {
	table := newI8080Table()
	op := table[0x3E] // LD A,n
	assert.Equal(t, "LD A,{n}", op.Mnemonic)
}

func TestDecode8080_SingleByteLookup(t *testing.T) {
	table := newI8080Table()
	e, m := newTestEnv()
	m.Poke(0, 0x3E)
	op := decode8080(e, table)
	assert.Equal(t, "LD A,{n}", op.Mnemonic)
	assert.Equal(t, uint16(1), e.Reg().PC())
}
