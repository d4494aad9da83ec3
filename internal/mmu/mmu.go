// Package mmu provides the memory bus of the Game Boy. The MMU is the
// single address decoder for the full 16-bit space: it routes every
// access to the cartridge, the PPU's VRAM/OAM and registers, work RAM,
// high RAM, the IO registers and the interrupt registers. The decoder
// is total; a bus access never fails.
package mmu

import (
	"github.com/eastgate/dotmatrix/internal/cartridge"
	"github.com/eastgate/dotmatrix/internal/interrupts"
	"github.com/eastgate/dotmatrix/internal/ppu"
	"github.com/eastgate/dotmatrix/internal/ram"
	"github.com/eastgate/dotmatrix/internal/types"
	"github.com/eastgate/dotmatrix/pkg/log"
)

// MMU represents the memory management unit of the Game Boy.
type MMU struct {
	// Cart fulfils 0x0000-0x7FFF and 0xA000-0xBFFF.
	Cart *cartridge.Cartridge
	// PPU fulfils 0x8000-0x9FFF, 0xFE00-0xFE9F and 0xFF40-0xFF4B.
	PPU *ppu.PPU
	// IRQ fulfils IF (0xFF0F) and IE (0xFFFF).
	IRQ *interrupts.Service

	// wRAM holds the two 4 KiB work RAM banks at 0xC000-0xDFFF. Only
	// the DMG banks exist; the CGB switchable banks are not modelled.
	wRAM [2]*ram.RAM
	// zRAM is the 127 bytes of high RAM at 0xFF80-0xFFFE.
	zRAM *ram.RAM

	// io backs the IO registers not owned by the PPU or the interrupt
	// service (0xFF00-0xFF3F, 0xFF4C-0xFF7F). The timer and sound
	// registers live here as plain bytes; they are addressable but
	// not advanced.
	io [0x80]uint8

	log log.Logger
}

// NewMMU returns a new MMU over the given cartridge, PPU and
// interrupt service.
func NewMMU(cart *cartridge.Cartridge, p *ppu.PPU, irq *interrupts.Service, l log.Logger) *MMU {
	return &MMU{
		Cart: cart,
		PPU:  p,
		IRQ:  irq,
		wRAM: [2]*ram.RAM{ram.NewRAM(0x1000), ram.NewRAM(0x1000)},
		zRAM: ram.NewRAM(0x7F),
		log:  l,
	}
}

// TickPPU advances the PPU by the given number of machine cycles.
// The CPU reports the cost of every instruction here.
func (m *MMU) TickPPU(cycles uint8) {
	m.PPU.Step(cycles)
}

// Read returns the byte at the given address.
func (m *MMU) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		v, _ := m.Cart.Read(address)
		return v
	case address < 0xA000:
		return m.PPU.ReadVRAM(address - 0x8000)
	case address < 0xC000:
		v, _ := m.Cart.Read(address)
		return v
	case address < 0xD000:
		return m.wRAM[0].Read(address - 0xC000)
	case address < 0xE000:
		return m.wRAM[1].Read(address - 0xD000)
	case address < 0xFE00:
		// echo RAM mirrors 0xC000-0xDDFF
		return m.Read(address - 0x2000)
	case address < 0xFEA0:
		return m.PPU.ReadOAM(address - 0xFE00)
	case address < 0xFF00:
		// unusable region
		return 0xFF
	case address == types.IF:
		return m.IRQ.ReadFlag()
	case address >= types.LCDC && address <= types.WX:
		if address == types.DMA {
			return m.io[address-0xFF00]
		}
		return m.PPU.Read(address)
	case address < 0xFF80:
		return m.readIO(address)
	case address < 0xFFFF:
		return m.zRAM.Read(address - 0xFF80)
	default:
		return m.IRQ.Enable
	}
}

// Write writes the given value to the given address.
func (m *MMU) Write(address uint16, value uint8) {
	switch {
	case address < 0x8000:
		m.Cart.Write(address, value)
	case address < 0xA000:
		m.PPU.WriteVRAM(address-0x8000, value)
	case address < 0xC000:
		m.Cart.Write(address, value)
	case address < 0xD000:
		m.wRAM[0].Write(address-0xC000, value)
	case address < 0xE000:
		m.wRAM[1].Write(address-0xD000, value)
	case address < 0xFE00:
		m.Write(address-0x2000, value)
	case address < 0xFEA0:
		m.PPU.WriteOAM(address-0xFE00, value)
	case address < 0xFF00:
		// writes to the unusable region are dropped
	case address == types.IF:
		m.IRQ.WriteFlag(value)
	case address >= types.LCDC && address <= types.WX:
		if address == types.DMA {
			m.io[address-0xFF00] = value
			m.dmaTransfer(value)
			return
		}
		m.PPU.Write(address, value)
	case address < 0xFF80:
		// 0xFF50 disables the boot ROM on real hardware; no boot ROM
		// is ever mapped here, so the write only lands in the IO
		// array
		m.io[address-0xFF00] = value
	case address < 0xFFFF:
		m.zRAM.Write(address-0xFF80, value)
	default:
		m.IRQ.Enable = value
	}
}

// readIO returns the value of a plain IO register.
func (m *MMU) readIO(address uint16) uint8 {
	if address == types.P1 {
		// no joypad matrix is attached; an idle DMG pad reads 0xCF
		return 0xCF
	}
	return m.io[address-0xFF00]
}

// SetIO seeds an IO register with its post-boot value without going
// through the write decoder.
func (m *MMU) SetIO(address uint16, value uint8) {
	m.io[address-0xFF00] = value
}

// dmaTransfer performs the OAM DMA: the 160 bytes at XX00-XX9F are
// copied into OAM, bypassing the PPU's access gating.
func (m *MMU) dmaTransfer(value uint8) {
	source := uint16(value) << 8
	for i := uint16(0); i < 0xA0; i++ {
		m.PPU.WriteOAMDirect(i, m.Read(source+i))
	}
	m.log.Tracef("mmu: OAM DMA from %04X", source)
}
