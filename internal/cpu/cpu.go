// Package cpu provides the Sharp LR35902 (SM83) instruction
// interpreter: the fetch/execute loop, interrupt servicing, and the
// 256 primary plus 256 0xCB-prefixed instructions.
package cpu

import (
	"github.com/eastgate/dotmatrix/internal/interrupts"
	"github.com/eastgate/dotmatrix/internal/mmu"
	"github.com/eastgate/dotmatrix/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the CPU in T-cycles.
	ClockSpeed = 4194304
)

// Status represents the execution state of the CPU.
type Status uint8

const (
	// Running is the normal fetch/execute state.
	Running Status = iota
	// Halted is entered by the HALT instruction and left when any
	// interrupt becomes pending.
	Halted
	// Stopped is entered by the STOP instruction and only left by an
	// external reset, which is not modelled.
	Stopped
	// Errored is entered on an unassigned opcode. The CPU freezes.
	Errored
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Stopped:
		return "stopped"
	case Errored:
		return "errored"
	}
	return "unknown"
}

// CPU represents the Game Boy CPU. It is responsible for executing
// instructions and driving the PPU through the bus by the declared
// machine-cycle cost of each one.
type CPU struct {
	// PC is the program counter; it points to the next instruction to
	// be executed.
	PC uint16
	// SP is the stack pointer; it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit
	// register pairs.
	Registers

	// Status is the execution state of the CPU.
	Status Status

	b   *mmu.MMU
	irq *interrupts.Service
	log log.Logger

	// ticks is the machine-cycle cost of the instruction currently
	// executing. Handlers for conditional jumps add their taken
	// penalty on top of the table value.
	ticks uint8
}

// NewCPU creates a new CPU instance over the given bus, in the
// post-boot DMG register state.
func NewCPU(b *mmu.MMU, irq *interrupts.Service, l log.Logger) *CPU {
	c := &CPU{
		b:   b,
		irq: irq,
		log: l,
	}
	c.AF = &RegisterPair{&c.A, &c.F}
	c.BC = &RegisterPair{&c.B, &c.C}
	c.DE = &RegisterPair{&c.D, &c.E}
	c.HL = &RegisterPair{&c.H, &c.L}

	c.Reset()

	return c
}

// Reset returns the CPU to the post-boot DMG state.
func (c *CPU) Reset() {
	c.AF.SetUint16(0x01B0)
	c.BC.SetUint16(0x0013)
	c.DE.SetUint16(0x00D8)
	c.HL.SetUint16(0x014D)
	c.SP = 0xFFFE
	c.PC = 0x0100
	c.irq.IME = false
	c.irq.Enabling = false
	c.Status = Running
}

// Step executes one instruction (or services one interrupt) and
// advances the PPU by its machine-cycle cost. It returns the number
// of machine cycles consumed.
func (c *CPU) Step() uint8 {
	if c.Status == Stopped || c.Status == Errored {
		return 0
	}

	// EI takes effect one instruction late; promote the latch before
	// anything else observes IME
	if c.irq.Enabling {
		c.irq.Enabling = false
		c.irq.IME = true
	}

	if c.irq.Pending() {
		// any pending interrupt releases HALT, even with IME cleared
		if c.Status == Halted {
			c.Status = Running
		}
		if c.irq.IME {
			c.ticks = 5
			c.serviceInterrupt()
			c.b.TickPPU(c.ticks)
			return c.ticks
		}
	}

	if c.Status == Halted {
		// the clock keeps running while halted
		c.b.TickPPU(1)
		return 1
	}

	opcode := c.readOperand()

	var ins Instruction
	if opcode == 0xCB {
		ins = InstructionSetCB[c.readOperand()]
	} else {
		ins = InstructionSet[opcode]
	}

	c.ticks = ins.cycles
	ins.fn(c)

	c.b.TickPPU(c.ticks)
	return c.ticks
}

// serviceInterrupt pushes PC and jumps to the vector of the
// lowest-numbered pending interrupt, clearing its request bit and the
// master enable.
func (c *CPU) serviceInterrupt() {
	vector := c.irq.Vector()
	c.irq.IME = false

	c.SP--
	c.b.Write(c.SP, uint8(c.PC>>8))
	c.SP--
	c.b.Write(c.SP, uint8(c.PC))
	c.PC = vector

	c.log.Tracef("cpu: servicing interrupt, vector %04X", vector)
}

// readOperand reads the byte at PC and increments PC.
func (c *CPU) readOperand() uint8 {
	value := c.b.Read(c.PC)
	c.PC++
	return value
}

// readOperand16 reads the little-endian word at PC and advances PC
// past it.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	high := c.readOperand()
	return uint16(high)<<8 | uint16(low)
}

// readByte reads a byte from memory.
func (c *CPU) readByte(addr uint16) uint8 {
	return c.b.Read(addr)
}

// writeByte writes the given value to the given address.
func (c *CPU) writeByte(addr uint16, value uint8) {
	c.b.Write(addr, value)
}

// FrameReady reports whether the PPU has a completed frame waiting.
func (c *CPU) FrameReady() bool {
	return c.b.PPU.FrameReady()
}

// Framebuffer returns the PPU framebuffer, clearing the frame-ready
// latch.
func (c *CPU) Framebuffer() []uint8 {
	return c.b.PPU.Framebuffer()
}
