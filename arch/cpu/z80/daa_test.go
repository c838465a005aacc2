package z80

import (
	"testing"

	"github.com/8bitlab/z8080/assert"
)

// After ADD A,A with A=0x4D (giving the raw binary sum 0x9A before
// correction), DAA should roll it over to the BCD result 0x00 with carry.
func TestActionDAA_AdditionCorrectionWraps(t *testing.T) {
	e, _ := newTestEnv()
	e.Reg().Set8(RegF, 0)
	e.Reg().Set8(RegA, 0x9A)
	actionDAA(e)
	assert.Equal(t, uint8(0x00), e.Reg().Get8(RegA))
	assert.True(t, e.Reg().GetFlag(FlagC))
	assert.True(t, e.Reg().GetFlag(FlagH))
	assert.True(t, e.Reg().GetFlag(FlagZ))
}

// After a subtraction leaving H set (low-nibble borrow) and no carry, DAA
// applies only the low-nibble -6 correction.
func TestActionDAA_SubtractionCorrectionLowNibbleOnly(t *testing.T) {
	e, _ := newTestEnv()
	e.Reg().Set8(RegF, 0)
	e.Reg().Set8(RegA, 0x0F)
	e.Reg().SetFlag(FlagN)
	e.Reg().SetFlag(FlagH)
	actionDAA(e)
	assert.Equal(t, uint8(0x09), e.Reg().Get8(RegA))
	assert.False(t, e.Reg().GetFlag(FlagH))
	assert.False(t, e.Reg().GetFlag(FlagC))
}

// A value already in valid BCD range with no flags set is left unchanged.
func TestActionDAA_NoCorrectionNeeded(t *testing.T) {
	e, _ := newTestEnv()
	e.Reg().Set8(RegF, 0)
	e.Reg().Set8(RegA, 0x45)
	actionDAA(e)
	assert.Equal(t, uint8(0x45), e.Reg().Get8(RegA))
	assert.False(t, e.Reg().GetFlag(FlagC))
}

func TestActionCPL_ComplementsAAndSetsHN(t *testing.T) {
	e, _ := newTestEnv()
	e.Reg().Set8(RegA, 0x0F)
	actionCPL(e)
	assert.Equal(t, uint8(0xF0), e.Reg().Get8(RegA))
	assert.True(t, e.Reg().GetFlag(FlagH))
	assert.True(t, e.Reg().GetFlag(FlagN))
}

func TestActionSCF_SetsCarryClearsHN(t *testing.T) {
	e, _ := newTestEnv()
	e.Reg().SetFlag(FlagH)
	e.Reg().SetFlag(FlagN)
	actionSCF(e)
	assert.True(t, e.Reg().GetFlag(FlagC))
	assert.False(t, e.Reg().GetFlag(FlagH))
	assert.False(t, e.Reg().GetFlag(FlagN))
}

func TestActionCCF_TogglesCarryHTakesOldCarry(t *testing.T) {
	e, _ := newTestEnv()
	e.Reg().SetFlag(FlagC)
	actionCCF(e)
	assert.False(t, e.Reg().GetFlag(FlagC))
	assert.True(t, e.Reg().GetFlag(FlagH)) // H takes the old carry value (1)
	assert.False(t, e.Reg().GetFlag(FlagN))
}

func TestActionRLD(t *testing.T) {
	e, m := newTestEnv()
	e.Reg().Set8(RegA, 0xAB)
	e.Reg().Set16(RegHL16, 0x1000)
	m.Poke(0x1000, 0xCD)
	actionRLD(e)
	assert.Equal(t, uint8(0xAC), e.Reg().Get8(RegA))
	assert.Equal(t, uint8(0xDB), m.Peek(0x1000))
}

func TestActionRRD(t *testing.T) {
	e, m := newTestEnv()
	e.Reg().Set8(RegA, 0x84)
	e.Reg().Set16(RegHL16, 0x1000)
	m.Poke(0x1000, 0x20)
	actionRRD(e)
	assert.Equal(t, uint8(0x80), e.Reg().Get8(RegA))
	assert.Equal(t, uint8(0x42), m.Peek(0x1000))
}
