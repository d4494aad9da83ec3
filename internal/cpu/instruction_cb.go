package cpu

import (
	"fmt"
)

// InstructionSetCB holds the 256 0xCB-prefixed instructions. The
// whole prefix table is regular over the operand field, so it is
// generated rather than spelled out; the cycle counts include the
// prefix fetch.
var InstructionSetCB = [256]Instruction{}

// generateRotateInstructionsCB defines the rotate block of the
// prefix table (0x00-0x1F): RLC, RRC, RL and RR over each register
// operand.
func generateRotateInstructionsCB() {
	ops := []struct {
		name string
		fn   func(cpu *CPU, value uint8) uint8
	}{
		{"RLC", func(cpu *CPU, value uint8) uint8 { return cpu.rotateLeft(value) }},
		{"RRC", func(cpu *CPU, value uint8) uint8 { return cpu.rotateRight(value) }},
		{"RL", func(cpu *CPU, value uint8) uint8 { return cpu.rotateLeftThroughCarry(value) }},
		{"RR", func(cpu *CPU, value uint8) uint8 { return cpu.rotateRightThroughCarry(value) }},
	}

	for i, op := range ops {
		defineMutatingInstructionsCB(uint8(i)<<3, op.name, op.fn)
	}
}

// generateShiftInstructionsCB defines the shift and swap block of
// the prefix table (0x20-0x3F): SLA, SRA, SWAP and SRL over each
// register operand.
func generateShiftInstructionsCB() {
	ops := []struct {
		name string
		fn   func(cpu *CPU, value uint8) uint8
	}{
		{"SLA", func(cpu *CPU, value uint8) uint8 { return cpu.shiftLeftArithmetic(value) }},
		{"SRA", func(cpu *CPU, value uint8) uint8 { return cpu.shiftRightArithmetic(value) }},
		{"SWAP", func(cpu *CPU, value uint8) uint8 { return cpu.swap(value) }},
		{"SRL", func(cpu *CPU, value uint8) uint8 { return cpu.shiftRightLogical(value) }},
	}

	for i, op := range ops {
		defineMutatingInstructionsCB(0x20+uint8(i)<<3, op.name, op.fn)
	}
}

// generateBitInstructionsCB defines the bit blocks of the prefix
// table: BIT (0x40-0x7F), RES (0x80-0xBF) and SET (0xC0-0xFF) for
// each bit of each register operand.
func generateBitInstructionsCB() {
	for bit := uint8(0); bit < 8; bit++ {
		bit := bit

		// BIT only reads its operand, so the (HL) form is a cycle
		// cheaper than the mutating ones
		base := 0x40 + bit<<3
		for src := uint8(0); src < 8; src++ {
			src := src
			if src == 6 {
				InstructionSetCB[base+src] = Instruction{
					fmt.Sprintf("BIT %d, (HL)", bit), 3,
					func(cpu *CPU) { cpu.testBit(cpu.readByte(cpu.HL.Uint16()), bit) },
				}
				continue
			}
			InstructionSetCB[base+src] = Instruction{
				fmt.Sprintf("BIT %d, %s", bit, operandNames[src]), 2,
				func(cpu *CPU) { cpu.testBit(*cpu.registerIndex(src), bit) },
			}
		}

		defineMutatingInstructionsCB(0x80+bit<<3, fmt.Sprintf("RES %d,", bit),
			func(cpu *CPU, value uint8) uint8 { return cpu.clearBit(value, bit) })
		defineMutatingInstructionsCB(0xC0+bit<<3, fmt.Sprintf("SET %d,", bit),
			func(cpu *CPU, value uint8) uint8 { return cpu.setBit(value, bit) })
	}
}

// defineMutatingInstructionsCB defines one row of the prefix table:
// the given read-modify-write operation applied to each of the eight
// register operands starting at the given opcode.
func defineMutatingInstructionsCB(base uint8, name string, fn func(cpu *CPU, value uint8) uint8) {
	for src := uint8(0); src < 8; src++ {
		src := src
		if src == 6 {
			InstructionSetCB[base+src] = Instruction{
				fmt.Sprintf("%s (HL)", name), 4,
				func(cpu *CPU) {
					cpu.writeByte(cpu.HL.Uint16(), fn(cpu, cpu.readByte(cpu.HL.Uint16())))
				},
			}
			continue
		}
		InstructionSetCB[base+src] = Instruction{
			fmt.Sprintf("%s %s", name, operandNames[src]), 2,
			func(cpu *CPU) {
				reg := cpu.registerIndex(src)
				*reg = fn(cpu, *reg)
			},
		}
	}
}
