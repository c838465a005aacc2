package z80

import (
	"testing"

	"github.com/8bitlab/z8080/assert"
)

// Scenario 1: LD B,n; LD A,B.
func TestExecute_LoadImmediateThenRegister(t *testing.T) {
	cpu := NewZ80()
	m := NewPlainMachine()
	m.LoadMemory([]byte{0x06, 0x34, 0x78})

	cpu.Execute(m)
	assert.Equal(t, uint8(0x34), cpu.Registers().Get8(RegB))
	assert.Equal(t, uint16(2), cpu.Registers().PC())

	cpu.Execute(m)
	assert.Equal(t, uint8(0x34), cpu.Registers().Get8(RegA))
	assert.Equal(t, uint16(3), cpu.Registers().PC())
}

// Scenario 2: CALL $2000 then RET.
func TestExecute_CallAndReturn(t *testing.T) {
	cpu := NewZ80()
	m := NewPlainMachine()
	m.LoadMemory([]byte{0xCD, 0x00, 0x20})
	m.Poke(0x2000, 0xC9)
	cpu.Registers().SetPC(0)
	cpu.Registers().Set16(RegSP, 0x1000)

	cpu.Execute(m)
	assert.Equal(t, uint16(0x2000), cpu.Registers().PC())
	assert.Equal(t, uint16(0x0FFE), cpu.Registers().Get16(RegSP))
	assert.Equal(t, uint8(0x03), m.Peek(0x0FFE))
	assert.Equal(t, uint8(0x00), m.Peek(0x0FFF))

	cpu.Execute(m)
	assert.Equal(t, uint16(0x0003), cpu.Registers().PC())
	assert.Equal(t, uint16(0x1000), cpu.Registers().Get16(RegSP))
}

// Scenario 3: CP 01h in 8080 mode does not borrow from bit 4 when it
// shouldn't.
func TestExecute_CP8080NoHalfCarry(t *testing.T) {
	cpu := New8080()
	m := NewPlainMachine()
	m.LoadMemory([]byte{0xFE, 0x01})
	cpu.Registers().Set8(RegA, 0x10)
	cpu.Registers().Set8(RegH, 0)

	cpu.Execute(m)
	assert.False(t, cpu.Registers().GetFlag(FlagH), "H flag should be clear")
	assert.Equal(t, uint8(0x10), cpu.Registers().Get8(RegA))
}

// Scenario 4: RLD.
func TestExecute_RLD(t *testing.T) {
	cpu := NewZ80()
	m := NewPlainMachine()
	m.LoadMemory([]byte{0xED, 0x6F})
	cpu.Registers().Set8(RegA, 0xAB)
	cpu.Registers().Set16(RegHL16, 0xCCDD)
	m.Poke(0xCCDD, 0xCD)

	cpu.Execute(m)
	assert.Equal(t, uint8(0xAC), cpu.Registers().Get8(RegA))
	assert.Equal(t, uint8(0xDB), m.Peek(0xCCDD))
}

// Scenario 5: EI delays interrupt acceptance by exactly one instruction.
func TestExecute_EIDelaysInterrupt(t *testing.T) {
	cpu := NewZ80()
	m := NewPlainMachine()
	m.LoadMemory([]byte{0xFB, 0xED, 0x56, 0x00, 0x00}) // EI; IM 1; NOP; NOP
	cpu.Registers().Set16(RegSP, 0x1000)

	cpu.Execute(m) // EI
	assert.True(t, cpu.Registers().IFF1())

	cpu.SignalInterrupt(true)

	cpu.Execute(m) // IM 1 — must fully execute, not be preempted
	_, im := cpu.Registers().InterruptMode()
	assert.Equal(t, uint8(1), im)
	assert.Equal(t, uint16(3), cpu.Registers().PC())

	cpu.Execute(m) // interrupt now accepted before the NOP at 3 executes
	assert.Equal(t, uint16(0x0038), cpu.Registers().PC())
	assert.Equal(t, uint16(3), Peek16(m, cpu.Registers().Get16(RegSP)))
	assert.False(t, cpu.Registers().IFF1())
}

// Scenario 6: RRCA.
func TestExecute_RRCA(t *testing.T) {
	cpu := NewZ80()
	m := NewPlainMachine()
	m.LoadMemory([]byte{0x0F})
	cpu.Registers().Set8(RegA, 0x93)
	cpu.Registers().SetFlag(FlagC)

	cpu.Execute(m)
	assert.Equal(t, uint8(0xC9), cpu.Registers().Get8(RegA))
	assert.True(t, cpu.Registers().GetFlag(FlagC))
	assert.False(t, cpu.Registers().GetFlag(FlagH))
	assert.False(t, cpu.Registers().GetFlag(FlagN))
}

func TestExecute_StackWrapsAroundZero(t *testing.T) {
	cpu := NewZ80()
	m := NewPlainMachine()
	cpu.Registers().Set16(RegSP, 0x0001)
	cpu.Registers().SetPC(0x4000)
	m.Poke(0x4000, 0xCD) // CALL nn
	m.Poke(0x4001, 0x00)
	m.Poke(0x4002, 0x20)

	cpu.Execute(m)
	assert.Equal(t, uint8(0x40), m.Peek(0x0000)) // high byte
	assert.Equal(t, uint8(0x03), m.Peek(0xFFFF)) // low byte
}

func TestExecute_PCWrapsAround(t *testing.T) {
	cpu := NewZ80()
	m := NewPlainMachine()
	cpu.Registers().SetPC(0xFFFF)
	m.Poke(0xFFFF, 0x06) // LD B,n
	m.Poke(0x0000, 0x77) // operand wraps to address 0
	m.Poke(0x0001, 0x00)

	cpu.Execute(m)
	assert.Equal(t, uint8(0x77), cpu.Registers().Get8(RegB))
	assert.Equal(t, uint16(0x0001), cpu.Registers().PC())
}

func TestExecute_HaltedStateHoldsRegistersSteady(t *testing.T) {
	cpu := NewZ80()
	m := NewPlainMachine()
	m.LoadMemory([]byte{0x76}) // HALT

	cpu.Execute(m)
	assert.True(t, cpu.IsHalted())

	pc := cpu.Registers().PC()
	af := cpu.Registers().Get16(RegAF)
	cpu.Execute(m)
	assert.True(t, cpu.IsHalted())
	assert.Equal(t, pc, cpu.Registers().PC())
	assert.Equal(t, af, cpu.Registers().Get16(RegAF))
}

func TestExecute_SignaledInterruptWakesHaltedCPU(t *testing.T) {
	cpu := NewZ80()
	m := NewPlainMachine()
	m.LoadMemory([]byte{0x76}) // HALT
	cpu.Registers().SetInterrupts(true)
	cpu.Registers().SetInterruptMode(1)

	cpu.Execute(m)
	assert.True(t, cpu.IsHalted())

	cpu.SignalInterrupt(true)
	cpu.Execute(m)

	assert.False(t, cpu.IsHalted())
	assert.Equal(t, uint16(0x0038), cpu.Registers().PC())
}

func TestExecute_PostStepBookkeepingCleared(t *testing.T) {
	cpu := NewZ80()
	m := NewPlainMachine()
	m.LoadMemory([]byte{0xDD, 0x7E, 0x05, 0x00, 0x00, 0x42}) // LD A,(IX+5)
	cpu.Registers().Set16(RegIX, 0)

	cpu.Execute(m)
	assert.Equal(t, uint8(0x42), cpu.Registers().Get8(RegA))
	assert.Equal(t, RegHL16, cpu.state.Index)
	assert.Equal(t, int8(0), cpu.state.Displacement)
	assert.False(t, cpu.state.BranchTaken)
}

func TestExecute_RepeatedPrefixLastOneWins(t *testing.T) {
	cpu := NewZ80()
	m := NewPlainMachine()
	// DD DD DD FD 21 00 10  -> LD IY,0x1000 ; last prefix (FD) wins.
	m.LoadMemory([]byte{0xDD, 0xDD, 0xDD, 0xFD, 0x21, 0x00, 0x10})

	before := cpu.CycleCount()
	cpu.Execute(m)
	assert.Equal(t, uint16(0x1000), cpu.Registers().Get16(RegIY))
	// base LD rr,nn cost (10) plus 4 cycles for each of the 4 prefix bytes
	// consumed (the 3 redundant ones plus the FD that was actually used).
	assert.Equal(t, before+10+16, cpu.CycleCount())
}

func TestSerializeDeserialize_RoundTrip(t *testing.T) {
	cpu := NewZ80()
	m := NewPlainMachine()
	m.LoadMemory([]byte{0x3E, 0x42, 0xED, 0x44}) // LD A,42h; NEG
	cpu.Execute(m)
	cpu.Execute(m)
	cpu.SignalNMI()

	blob := cpu.Serialize()
	assert.Equal(t, serializedLen, len(blob))

	restored := NewZ80()
	err := restored.Deserialize(blob)
	assert.NoError(t, err)

	assert.Equal(t, cpu.Registers().Get16(RegAF), restored.Registers().Get16(RegAF))
	assert.Equal(t, cpu.Registers().PC(), restored.Registers().PC())
	assert.Equal(t, cpu.CycleCount(), restored.CycleCount())
	assert.Equal(t, cpu.state.NMIPending, restored.state.NMIPending)
}

func TestDeserialize_ShortInput(t *testing.T) {
	cpu := NewZ80()
	err := cpu.Deserialize(make([]byte, 10))
	assert.ErrorIs(t, err, ErrShortInput)
}

func TestDeserialize_InvalidIndexTag(t *testing.T) {
	cpu := NewZ80()
	blob := cpu.Serialize()
	blob[16+16+2+1+1+1+8+6] = 0xFF
	err := cpu.Deserialize(blob)
	assert.ErrorIs(t, err, ErrInvalidIndexTag)
}

func TestDisasmInstruction_DoesNotExecute(t *testing.T) {
	cpu := NewZ80()
	m := NewPlainMachine()
	m.LoadMemory([]byte{0x3E, 0x42}) // LD A,42h
	cpu.Registers().Set8(RegA, 0)

	text := cpu.DisasmInstruction(m)
	assert.Contains(t, text, "42h")
	assert.Equal(t, uint8(0), cpu.Registers().Get8(RegA))
	assert.Equal(t, uint16(2), cpu.Registers().PC())
}
