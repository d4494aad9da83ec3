package cpu

import (
	"fmt"
)

// Instruction represents a single instruction of the CPU. The cycles
// field is the machine-cycle cost of the instruction; handlers for
// conditional jumps, calls and returns add the taken penalty on top.
type Instruction struct {
	name   string
	cycles uint8
	fn     func(*CPU)
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.name
}

// disallowedOpcode creates an instruction for one of the unassigned
// opcodes. Executing one freezes the CPU.
func disallowedOpcode(opcode uint8) Instruction {
	return Instruction{
		name:   fmt.Sprintf("ILLEGAL(%02X)", opcode),
		cycles: 1,
		fn: func(c *CPU) {
			c.log.Errorf("cpu: disallowed opcode %02X at %04X", opcode, c.PC-1)
			c.Status = Errored
		},
	}
}

// InstructionSet holds the 256 primary instructions.
var InstructionSet = [256]Instruction{
	0x00: {"NOP", 1, func(c *CPU) {}},
	0x01: {"LD BC, d16", 3, func(c *CPU) { c.loadRegister16(c.BC) }},
	0x02: {"LD (BC), A", 2, func(c *CPU) { c.loadRegisterToMemory(c.A, c.BC.Uint16()) }},
	0x03: {"INC BC", 2, func(c *CPU) { c.incrementNN(c.BC) }},
	0x04: {"INC B", 1, func(c *CPU) { c.B = c.increment(c.B) }},
	0x05: {"DEC B", 1, func(c *CPU) { c.B = c.decrement(c.B) }},
	0x06: {"LD B, d8", 2, func(c *CPU) { c.loadRegister8(&c.B) }},
	0x07: {"RLCA", 1, func(c *CPU) { c.rotateLeftCarryAccumulator() }},
	0x08: {"LD (a16), SP", 5, func(c *CPU) {
		address := c.readOperand16()
		c.writeByte(address, uint8(c.SP))
		c.writeByte(address+1, uint8(c.SP>>8))
	}},
	0x09: {"ADD HL, BC", 2, func(c *CPU) { c.addHL(c.BC.Uint16()) }},
	0x0A: {"LD A, (BC)", 2, func(c *CPU) { c.loadMemoryToRegister(&c.A, c.BC.Uint16()) }},
	0x0B: {"DEC BC", 2, func(c *CPU) { c.decrementNN(c.BC) }},
	0x0C: {"INC C", 1, func(c *CPU) { c.C = c.increment(c.C) }},
	0x0D: {"DEC C", 1, func(c *CPU) { c.C = c.decrement(c.C) }},
	0x0E: {"LD C, d8", 2, func(c *CPU) { c.loadRegister8(&c.C) }},
	0x0F: {"RRCA", 1, func(c *CPU) { c.rotateRightAccumulator() }},
	0x10: {"STOP", 1, func(c *CPU) {
		c.readOperand()
		c.Status = Stopped
	}},
	0x11: {"LD DE, d16", 3, func(c *CPU) { c.loadRegister16(c.DE) }},
	0x12: {"LD (DE), A", 2, func(c *CPU) { c.loadRegisterToMemory(c.A, c.DE.Uint16()) }},
	0x13: {"INC DE", 2, func(c *CPU) { c.incrementNN(c.DE) }},
	0x14: {"INC D", 1, func(c *CPU) { c.D = c.increment(c.D) }},
	0x15: {"DEC D", 1, func(c *CPU) { c.D = c.decrement(c.D) }},
	0x16: {"LD D, d8", 2, func(c *CPU) { c.loadRegister8(&c.D) }},
	0x17: {"RLA", 1, func(c *CPU) { c.rotateLeftAccumulatorThroughCarry() }},
	0x18: {"JR r8", 2, func(c *CPU) { c.jumpRelative(true) }},
	0x19: {"ADD HL, DE", 2, func(c *CPU) { c.addHL(c.DE.Uint16()) }},
	0x1A: {"LD A, (DE)", 2, func(c *CPU) { c.loadMemoryToRegister(&c.A, c.DE.Uint16()) }},
	0x1B: {"DEC DE", 2, func(c *CPU) { c.decrementNN(c.DE) }},
	0x1C: {"INC E", 1, func(c *CPU) { c.E = c.increment(c.E) }},
	0x1D: {"DEC E", 1, func(c *CPU) { c.E = c.decrement(c.E) }},
	0x1E: {"LD E, d8", 2, func(c *CPU) { c.loadRegister8(&c.E) }},
	0x1F: {"RRA", 1, func(c *CPU) { c.rotateRightAccumulatorThroughCarry() }},
	0x20: {"JR NZ, r8", 2, func(c *CPU) { c.jumpRelative(!c.isFlagSet(flagZero)) }},
	0x21: {"LD HL, d16", 3, func(c *CPU) { c.loadRegister16(c.HL) }},
	0x22: {"LD (HL+), A", 2, func(c *CPU) {
		c.loadRegisterToMemory(c.A, c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() + 1)
	}},
	0x23: {"INC HL", 2, func(c *CPU) { c.incrementNN(c.HL) }},
	0x24: {"INC H", 1, func(c *CPU) { c.H = c.increment(c.H) }},
	0x25: {"DEC H", 1, func(c *CPU) { c.H = c.decrement(c.H) }},
	0x26: {"LD H, d8", 2, func(c *CPU) { c.loadRegister8(&c.H) }},
	0x27: {"DAA", 1, func(c *CPU) { c.decimalAdjust() }},
	0x28: {"JR Z, r8", 2, func(c *CPU) { c.jumpRelative(c.isFlagSet(flagZero)) }},
	0x29: {"ADD HL, HL", 2, func(c *CPU) { c.addHL(c.HL.Uint16()) }},
	0x2A: {"LD A, (HL+)", 2, func(c *CPU) {
		c.loadMemoryToRegister(&c.A, c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() + 1)
	}},
	0x2B: {"DEC HL", 2, func(c *CPU) { c.decrementNN(c.HL) }},
	0x2C: {"INC L", 1, func(c *CPU) { c.L = c.increment(c.L) }},
	0x2D: {"DEC L", 1, func(c *CPU) { c.L = c.decrement(c.L) }},
	0x2E: {"LD L, d8", 2, func(c *CPU) { c.loadRegister8(&c.L) }},
	0x2F: {"CPL", 1, func(c *CPU) { c.complement() }},
	0x30: {"JR NC, r8", 2, func(c *CPU) { c.jumpRelative(!c.isFlagSet(flagCarry)) }},
	0x31: {"LD SP, d16", 3, func(c *CPU) { c.SP = c.readOperand16() }},
	0x32: {"LD (HL-), A", 2, func(c *CPU) {
		c.loadRegisterToMemory(c.A, c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() - 1)
	}},
	0x33: {"INC SP", 2, func(c *CPU) { c.SP++ }},
	0x34: {"INC (HL)", 3, func(c *CPU) {
		c.writeByte(c.HL.Uint16(), c.increment(c.readByte(c.HL.Uint16())))
	}},
	0x35: {"DEC (HL)", 3, func(c *CPU) {
		c.writeByte(c.HL.Uint16(), c.decrement(c.readByte(c.HL.Uint16())))
	}},
	0x36: {"LD (HL), d8", 3, func(c *CPU) { c.writeByte(c.HL.Uint16(), c.readOperand()) }},
	0x37: {"SCF", 1, func(c *CPU) { c.setCarryFlag() }},
	0x38: {"JR C, r8", 2, func(c *CPU) { c.jumpRelative(c.isFlagSet(flagCarry)) }},
	0x39: {"ADD HL, SP", 2, func(c *CPU) { c.addHL(c.SP) }},
	0x3A: {"LD A, (HL-)", 2, func(c *CPU) {
		c.loadMemoryToRegister(&c.A, c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() - 1)
	}},
	0x3B: {"DEC SP", 2, func(c *CPU) { c.SP-- }},
	0x3C: {"INC A", 1, func(c *CPU) { c.A = c.increment(c.A) }},
	0x3D: {"DEC A", 1, func(c *CPU) { c.A = c.decrement(c.A) }},
	0x3E: {"LD A, d8", 2, func(c *CPU) { c.loadRegister8(&c.A) }},
	0x3F: {"CCF", 1, func(c *CPU) { c.complementCarryFlag() }},
	0x76: {"HALT", 1, func(c *CPU) { c.Status = Halted }},
	0xC0: {"RET NZ", 2, func(c *CPU) { c.retConditional(!c.isFlagSet(flagZero)) }},
	0xC1: {"POP BC", 3, func(c *CPU) { c.pop(c.BC) }},
	0xC2: {"JP NZ, a16", 3, func(c *CPU) { c.jumpAbsolute(!c.isFlagSet(flagZero)) }},
	0xC3: {"JP a16", 3, func(c *CPU) { c.jumpAbsolute(true) }},
	0xC4: {"CALL NZ, a16", 3, func(c *CPU) { c.call(!c.isFlagSet(flagZero)) }},
	0xC5: {"PUSH BC", 4, func(c *CPU) { c.push(c.BC.Uint16()) }},
	0xC6: {"ADD A, d8", 2, func(c *CPU) { c.add(c.readOperand(), false) }},
	0xC7: {"RST 00H", 4, func(c *CPU) { c.rst(0x00) }},
	0xC8: {"RET Z", 2, func(c *CPU) { c.retConditional(c.isFlagSet(flagZero)) }},
	0xC9: {"RET", 4, func(c *CPU) { c.ret() }},
	0xCA: {"JP Z, a16", 3, func(c *CPU) { c.jumpAbsolute(c.isFlagSet(flagZero)) }},
	// 0xCB is the prefix byte; the step loop dispatches into
	// InstructionSetCB before this table is consulted
	0xCB: {"PREFIX CB", 1, func(c *CPU) {}},
	0xCC: {"CALL Z, a16", 3, func(c *CPU) { c.call(c.isFlagSet(flagZero)) }},
	0xCD: {"CALL a16", 3, func(c *CPU) { c.call(true) }},
	0xCE: {"ADC A, d8", 2, func(c *CPU) { c.add(c.readOperand(), true) }},
	0xCF: {"RST 08H", 4, func(c *CPU) { c.rst(0x08) }},
	0xD0: {"RET NC", 2, func(c *CPU) { c.retConditional(!c.isFlagSet(flagCarry)) }},
	0xD1: {"POP DE", 3, func(c *CPU) { c.pop(c.DE) }},
	0xD2: {"JP NC, a16", 3, func(c *CPU) { c.jumpAbsolute(!c.isFlagSet(flagCarry)) }},
	0xD4: {"CALL NC, a16", 3, func(c *CPU) { c.call(!c.isFlagSet(flagCarry)) }},
	0xD5: {"PUSH DE", 4, func(c *CPU) { c.push(c.DE.Uint16()) }},
	0xD6: {"SUB d8", 2, func(c *CPU) { c.subtract(c.readOperand(), false) }},
	0xD7: {"RST 10H", 4, func(c *CPU) { c.rst(0x10) }},
	0xD8: {"RET C", 2, func(c *CPU) { c.retConditional(c.isFlagSet(flagCarry)) }},
	0xD9: {"RETI", 4, func(c *CPU) {
		c.ret()
		c.irq.IME = true
	}},
	0xDA: {"JP C, a16", 3, func(c *CPU) { c.jumpAbsolute(c.isFlagSet(flagCarry)) }},
	0xDC: {"CALL C, a16", 3, func(c *CPU) { c.call(c.isFlagSet(flagCarry)) }},
	0xDE: {"SBC A, d8", 2, func(c *CPU) { c.subtract(c.readOperand(), true) }},
	0xDF: {"RST 18H", 4, func(c *CPU) { c.rst(0x18) }},
	0xE0: {"LDH (a8), A", 3, func(c *CPU) {
		c.writeByte(0xFF00+uint16(c.readOperand()), c.A)
	}},
	0xE1: {"POP HL", 3, func(c *CPU) { c.pop(c.HL) }},
	0xE2: {"LD (C), A", 2, func(c *CPU) { c.writeByte(0xFF00+uint16(c.C), c.A) }},
	0xE5: {"PUSH HL", 4, func(c *CPU) { c.push(c.HL.Uint16()) }},
	0xE6: {"AND d8", 2, func(c *CPU) { c.and(c.readOperand()) }},
	0xE7: {"RST 20H", 4, func(c *CPU) { c.rst(0x20) }},
	0xE8: {"ADD SP, r8", 4, func(c *CPU) { c.SP = c.addSPSigned() }},
	0xE9: {"JP HL", 1, func(c *CPU) { c.PC = c.HL.Uint16() }},
	0xEA: {"LD (a16), A", 4, func(c *CPU) { c.writeByte(c.readOperand16(), c.A) }},
	0xEE: {"XOR d8", 2, func(c *CPU) { c.xor(c.readOperand()) }},
	0xEF: {"RST 28H", 4, func(c *CPU) { c.rst(0x28) }},
	0xF0: {"LDH A, (a8)", 3, func(c *CPU) {
		c.A = c.readByte(0xFF00 + uint16(c.readOperand()))
	}},
	0xF1: {"POP AF", 3, func(c *CPU) { c.pop(c.AF) }},
	0xF2: {"LD A, (C)", 2, func(c *CPU) { c.A = c.readByte(0xFF00 + uint16(c.C)) }},
	0xF3: {"DI", 1, func(c *CPU) {
		c.irq.IME = false
		c.irq.Enabling = false
	}},
	0xF5: {"PUSH AF", 4, func(c *CPU) { c.push(c.AF.Uint16()) }},
	0xF6: {"OR d8", 2, func(c *CPU) { c.or(c.readOperand()) }},
	0xF7: {"RST 30H", 4, func(c *CPU) { c.rst(0x30) }},
	0xF8: {"LD HL, SP+r8", 3, func(c *CPU) { c.HL.SetUint16(c.addSPSigned()) }},
	0xF9: {"LD SP, HL", 2, func(c *CPU) { c.SP = c.HL.Uint16() }},
	0xFA: {"LD A, (a16)", 4, func(c *CPU) { c.A = c.readByte(c.readOperand16()) }},
	0xFB: {"EI", 1, func(c *CPU) { c.irq.Enabling = true }},
	0xFE: {"CP d8", 2, func(c *CPU) { c.compare(c.readOperand()) }},
	0xFF: {"RST 38H", 4, func(c *CPU) { c.rst(0x38) }},
}

// operandNames names the eight source/destination encodings of the
// opcode byte's 3-bit operand fields.
var operandNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// init fills in the regular regions of the instruction set: the
// 0x40-0x7F load block, the 0x80-0xBF ALU block and the unassigned
// opcodes. The opcode byte partitions near-regularly over its
// (destination, source) fields, so the blocks are generated in loops
// over the register index rather than spelled out entry by entry.
// The tables are package globals, so the generated closures capture
// operand indices and resolve them against the executing CPU.
func init() {
	generateLoadInstructions()
	generateALUInstructions()

	for _, opcode := range []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD} {
		InstructionSet[opcode] = disallowedOpcode(opcode)
	}

	generateRotateInstructionsCB()
	generateShiftInstructionsCB()
	generateBitInstructionsCB()
}

// generateLoadInstructions defines the LD r, r' block (0x40-0x7F).
// Opcode 0x76 would be LD (HL), (HL) and is HALT instead; it is
// defined in the table above.
func generateLoadInstructions() {
	for dst := uint8(0); dst < 8; dst++ {
		dst := dst
		for src := uint8(0); src < 8; src++ {
			src := src
			opcode := 0x40 + dst<<3 + src
			if opcode == 0x76 {
				continue
			}

			name := fmt.Sprintf("LD %s, %s", operandNames[dst], operandNames[src])
			switch {
			case dst == 6:
				InstructionSet[opcode] = Instruction{name, 2, func(cpu *CPU) {
					cpu.loadRegisterToMemory(*cpu.registerIndex(src), cpu.HL.Uint16())
				}}
			case src == 6:
				InstructionSet[opcode] = Instruction{name, 2, func(cpu *CPU) {
					cpu.loadMemoryToRegister(cpu.registerIndex(dst), cpu.HL.Uint16())
				}}
			default:
				InstructionSet[opcode] = Instruction{name, 1, func(cpu *CPU) {
					cpu.loadRegisterToRegister(cpu.registerIndex(dst), cpu.registerIndex(src))
				}}
			}
		}
	}
}

// generateALUInstructions defines the arithmetic/logic block
// (0x80-0xBF): ADD, ADC, SUB, SBC, AND, XOR, OR and CP over each
// register operand.
func generateALUInstructions() {
	ops := []struct {
		name string
		fn   func(cpu *CPU, value uint8)
	}{
		{"ADD A,", func(cpu *CPU, value uint8) { cpu.add(value, false) }},
		{"ADC A,", func(cpu *CPU, value uint8) { cpu.add(value, true) }},
		{"SUB", func(cpu *CPU, value uint8) { cpu.subtract(value, false) }},
		{"SBC A,", func(cpu *CPU, value uint8) { cpu.subtract(value, true) }},
		{"AND", func(cpu *CPU, value uint8) { cpu.and(value) }},
		{"XOR", func(cpu *CPU, value uint8) { cpu.xor(value) }},
		{"OR", func(cpu *CPU, value uint8) { cpu.or(value) }},
		{"CP", func(cpu *CPU, value uint8) { cpu.compare(value) }},
	}

	for i, op := range ops {
		op := op
		for src := uint8(0); src < 8; src++ {
			src := src
			opcode := 0x80 + uint8(i)<<3 + src

			if src == 6 {
				InstructionSet[opcode] = Instruction{
					fmt.Sprintf("%s (HL)", op.name), 2,
					func(cpu *CPU) { op.fn(cpu, cpu.readByte(cpu.HL.Uint16())) },
				}
				continue
			}

			InstructionSet[opcode] = Instruction{
				fmt.Sprintf("%s %s", op.name, operandNames[src]), 1,
				func(cpu *CPU) { op.fn(cpu, *cpu.registerIndex(src)) },
			}
		}
	}
}
