// Package z80 provides a cycle-accurate emulator core for the Zilog Z80 and
// its ancestor the Intel 8080.
//
// Both processors share the same register file, the same operand-access
// abstraction (Environment) and the same catalog of operator closures; only
// the opcode decoder and a handful of flag-derivation rules differ between
// the two. A CPU instance is fixed to one variant at construction time via
// NewZ80 or New8080.
//
// The core is intentionally synchronous and single-threaded: Execute owns
// exclusive access to the register file and to the Machine for the duration
// of one instruction. Interrupt and reset requests are latched by
// SignalNMI/SignalReset/SignalInterrupt and consumed at the start of the next
// Execute call.
//
// Example usage:
//
//	mem := z80.NewPlainMachine()
//	cpu := z80.NewZ80()
//
//	for !cpu.IsHalted() {
//	    cpu.Execute(mem)
//	}
package z80
