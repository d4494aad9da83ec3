package cpu

import (
	"github.com/eastgate/dotmatrix/internal/types"
)

// Register represents one of the CPU's 8-bit registers.
type Register = types.Register

// RegisterPair represents one of the CPU's 16-bit register pairs.
type RegisterPair = types.RegisterPair

// Registers represents the GB CPU registers.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	F Register
	H Register
	L Register

	AF *RegisterPair
	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
}

// registerIndex returns a Register pointer for the given 3-bit
// operand index of the opcode byte.
func (c *CPU) registerIndex(index uint8) *Register {
	switch index {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	case 4:
		return &c.H
	case 5:
		return &c.L
	case 7:
		return &c.A
	}
	panic("cpu: invalid register index")
}
