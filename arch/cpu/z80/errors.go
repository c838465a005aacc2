package z80

import "errors"

// Sentinel errors returned by the recoverable-failure paths of this
// package. Every other contract violation (pseudo-register access, an
// uninitialized decoder slot) is a panic, not an error: a real chip has
// no way to fail and these are true programmer mistakes.
var (
	// ErrShortInput is returned by Deserialize when the input is shorter
	// than the fixed serialization length.
	ErrShortInput = errors.New("z80: serialized state shorter than expected")

	// ErrInvalidIndexTag is returned by Deserialize when the index tag
	// byte is not 0 (HL), 1 (IX) or 2 (IY).
	ErrInvalidIndexTag = errors.New("z80: invalid index tag in serialized state")
)
