package main

import (
	"bufio"
	"io"

	"github.com/8bitlab/z8080/arch/cpu/z80"
)

// Console I/O port convention for the Tiny-BASIC ROM binding: port 0 is a
// status byte (bit 0 set when a key is waiting, bit 1 set when the output
// side is ready to accept a byte), port 1 is the data byte itself.
const (
	portStatus = 0x00
	portData   = 0x01

	statusInputReady  = 0x01
	statusOutputReady = 0x02
)

// consoleMachine adapts PlainMachine's flat port space to a line-buffered
// terminal: reads on portData drain a byte at a time from stdin, writes on
// portData go straight to stdout.
type consoleMachine struct {
	*z80.PlainMachine
	in  *bufio.Reader
	out io.Writer
}

func newConsoleMachine(in io.Reader, out io.Writer) *consoleMachine {
	return &consoleMachine{
		PlainMachine: z80.NewPlainMachine(),
		in:           bufio.NewReader(in),
		out:          out,
	}
}

func (c *consoleMachine) PortIn(addr uint16) uint8 {
	switch addr & 0xFF {
	case portStatus:
		status := uint8(statusOutputReady)
		if c.in.Buffered() > 0 {
			status |= statusInputReady
		}
		return status
	case portData:
		b, err := c.in.ReadByte()
		if err != nil {
			return 0
		}
		return b
	default:
		return c.PlainMachine.PortIn(addr)
	}
}

func (c *consoleMachine) PortOut(addr uint16, value uint8) {
	switch addr & 0xFF {
	case portData:
		_, _ = c.out.Write([]byte{value})
	default:
		c.PlainMachine.PortOut(addr, value)
	}
}
