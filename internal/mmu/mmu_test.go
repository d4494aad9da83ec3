package mmu

import (
	"testing"

	"github.com/eastgate/dotmatrix/internal/cartridge"
	"github.com/eastgate/dotmatrix/internal/interrupts"
	"github.com/eastgate/dotmatrix/internal/ppu"
	"github.com/eastgate/dotmatrix/internal/types"
	"github.com/eastgate/dotmatrix/pkg/log"
)

var nintendoLogo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B,
	0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E,
	0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC,
	0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// testMMU builds an MMU over a blank 32 KiB ROM cartridge.
func testMMU(t *testing.T) *MMU {
	t.Helper()

	rom := make([]byte, 32*1024)
	copy(rom[0x0104:], nintendoLogo[:])
	var checksum uint8
	for i := 0x0134; i <= 0x014C; i++ {
		checksum = checksum - rom[i] - 1
	}
	rom[0x014D] = checksum

	cart, err := cartridge.New(rom)
	if err != nil {
		t.Fatal(err)
	}

	irq := interrupts.NewService()
	return NewMMU(cart, ppu.New(irq), irq, log.NewNullLogger())
}

func TestWRAMRoundTrip(t *testing.T) {
	m := testMMU(t)

	for _, addr := range []uint16{0xC000, 0xCFFF, 0xD000, 0xDFFF} {
		m.Write(addr, 0x42)
		if v := m.Read(addr); v != 0x42 {
			t.Errorf("address %04X: expected 0x42, got %02X", addr, v)
		}
	}
}

func TestHRAMRoundTrip(t *testing.T) {
	m := testMMU(t)

	for _, addr := range []uint16{0xFF80, 0xFFC0, 0xFFFE} {
		m.Write(addr, 0x42)
		if v := m.Read(addr); v != 0x42 {
			t.Errorf("address %04X: expected 0x42, got %02X", addr, v)
		}
	}
}

func TestEchoRAM(t *testing.T) {
	m := testMMU(t)

	m.Write(0xC123, 0xAB)
	if v := m.Read(0xE123); v != 0xAB {
		t.Errorf("expected echo read of 0xAB, got %02X", v)
	}

	m.Write(0xE456, 0xCD)
	if v := m.Read(0xC456); v != 0xCD {
		t.Errorf("expected echo write to land in WRAM, got %02X", v)
	}
}

func TestUnusableRegion(t *testing.T) {
	m := testMMU(t)

	for _, addr := range []uint16{0xFEA0, 0xFEC0, 0xFEFF} {
		m.Write(addr, 0x42)
		if v := m.Read(addr); v != 0xFF {
			t.Errorf("address %04X: expected 0xFF, got %02X", addr, v)
		}
	}
}

func TestInterruptRegisters(t *testing.T) {
	m := testMMU(t)

	m.Write(types.IF, 0x05)
	if v := m.Read(types.IF); v != 0xE5 {
		t.Errorf("expected IF to read 0xE5, got %02X", v)
	}

	m.Write(types.IE, 0x1F)
	if v := m.Read(types.IE); v != 0x1F {
		t.Errorf("expected IE to read 0x1F, got %02X", v)
	}
}

func TestIORegisters(t *testing.T) {
	m := testMMU(t)

	t.Run("sound registers are plain bytes", func(t *testing.T) {
		m.Write(0xFF26, 0xF1)
		if v := m.Read(0xFF26); v != 0xF1 {
			t.Errorf("expected 0xF1, got %02X", v)
		}
	})
	t.Run("boot ROM disable is inert", func(t *testing.T) {
		m.Write(types.BDIS, 0x01)
		// nothing to observe beyond the write landing; the CPU keeps
		// running and the register reads back
		if v := m.Read(types.BDIS); v != 0x01 {
			t.Errorf("expected 0x01, got %02X", v)
		}
	})
	t.Run("idle joypad", func(t *testing.T) {
		if v := m.Read(types.P1); v != 0xCF {
			t.Errorf("expected 0xCF, got %02X", v)
		}
	})
}

func TestPPURegisterRouting(t *testing.T) {
	m := testMMU(t)

	m.Write(types.SCY, 0x17)
	if m.PPU.ScrollY != 0x17 {
		t.Error("expected SCY write to reach the PPU")
	}
	if v := m.Read(types.SCY); v != 0x17 {
		t.Errorf("expected SCY to read back, got %02X", v)
	}
}

func TestVRAMRouting(t *testing.T) {
	m := testMMU(t)

	// the LCD is disabled, so VRAM is freely accessible
	m.Write(0x8000, 0x42)
	if v := m.Read(0x8000); v != 0x42 {
		t.Errorf("expected 0x42, got %02X", v)
	}

	m.Write(0xFE00, 0x24)
	if v := m.Read(0xFE00); v != 0x24 {
		t.Errorf("expected 0x24, got %02X", v)
	}
}

func TestOAMDMA(t *testing.T) {
	m := testMMU(t)

	for i := uint16(0); i < 0xA0; i++ {
		m.Write(0xC000+i, uint8(i))
	}

	m.Write(types.DMA, 0xC0)

	for i := uint16(0); i < 0xA0; i++ {
		if v := m.Read(0xFE00 + i); v != uint8(i) {
			t.Fatalf("OAM byte %d: expected %02X, got %02X", i, uint8(i), v)
		}
	}

	if v := m.Read(types.DMA); v != 0xC0 {
		t.Errorf("expected DMA register to read back 0xC0, got %02X", v)
	}
}
