package gameboy

import (
	"testing"

	"github.com/eastgate/dotmatrix/internal/cpu"
	"github.com/eastgate/dotmatrix/internal/ppu/lcd"
	"github.com/eastgate/dotmatrix/internal/types"
)

var nintendoLogo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B,
	0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E,
	0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC,
	0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// testGameBoy builds a machine whose ROM jumps over the header into
// a tight loop, so the CPU can step indefinitely.
func testGameBoy(t *testing.T) *GameBoy {
	t.Helper()

	rom := make([]byte, 32*1024)
	copy(rom[0x0104:], nintendoLogo[:])

	// JP 0x0150; JR -2
	rom[0x0100] = 0xC3
	rom[0x0101] = 0x50
	rom[0x0102] = 0x01
	rom[0x0150] = 0x18
	rom[0x0151] = 0xFE

	var checksum uint8
	for i := 0x0134; i <= 0x014C; i++ {
		checksum = checksum - rom[i] - 1
	}
	rom[0x014D] = checksum

	gb, err := NewGameBoy(rom)
	if err != nil {
		t.Fatal(err)
	}
	return gb
}

func TestPostBootIO(t *testing.T) {
	gb := testGameBoy(t)

	checks := []struct {
		address uint16
		value   uint8
	}{
		{0xFF11, 0xBF}, {0xFF24, 0x77}, {0xFF26, 0xF1},
		{types.LCDC, 0x91}, {types.BGP, 0xFC},
		{types.OBP0, 0xFF}, {types.OBP1, 0xFF},
		{types.IE, 0x00},
	}
	for _, check := range checks {
		if v := gb.MMU.Read(check.address); v != check.value {
			t.Errorf("register %04X: expected %02X, got %02X", check.address, check.value, v)
		}
	}
}

func TestVBlankScenario(t *testing.T) {
	gb := testGameBoy(t)

	cycles := 0
	for cycles < 144*114 {
		cycles += int(gb.CPU.Step())
	}

	if gb.PPU.CurrentScanline < 144 {
		t.Errorf("expected LY at least 144, got %d", gb.PPU.CurrentScanline)
	}
	if gb.PPU.Mode != lcd.VBlank {
		t.Errorf("expected VBlank, got mode %d", gb.PPU.Mode)
	}
	if !gb.PPU.FrameReady() {
		t.Error("expected frame ready")
	}
	if gb.IRQ.Flag&0x01 == 0 {
		t.Error("expected VBlank interrupt requested")
	}
}

func TestFrame(t *testing.T) {
	gb := testGameBoy(t)

	fb := gb.Frame()
	if len(fb) != 160*144*4 {
		t.Fatalf("expected full RGBA frame, got %d bytes", len(fb))
	}
	if gb.PPU.FrameReady() {
		t.Error("expected frame latch cleared after Frame")
	}

	// the blank ROM draws tile 0 everywhere; BGP 0xFC maps colour 0
	// to the lightest shade
	if fb[0] != 0x9B || fb[1] != 0xBC || fb[2] != 0x0F || fb[3] != 0xFF {
		t.Errorf("unexpected first pixel %v", fb[:4])
	}
}

func TestLYCInterruptScenario(t *testing.T) {
	gb := testGameBoy(t)

	gb.MMU.Write(types.STAT, 0x40)
	gb.MMU.Write(types.LYC, 10)
	gb.MMU.Write(types.IE, 0x02)
	gb.IRQ.IME = true

	for gb.PPU.CurrentScanline < 10 {
		gb.CPU.Step()
	}

	// the LCD interrupt was latched when LY reached LYC; the next
	// step services it
	gb.CPU.Step()

	if gb.CPU.PC != 0x0048 {
		t.Errorf("expected PC at the LCD vector, got %04X", gb.CPU.PC)
	}
	if gb.MMU.Read(types.STAT)&0x04 == 0 {
		t.Error("expected coincidence flag set")
	}
}

func TestVBlankInterruptServicing(t *testing.T) {
	gb := testGameBoy(t)

	gb.MMU.Write(types.IE, 0x01)
	gb.IRQ.IME = true

	for gb.PPU.Mode != lcd.VBlank {
		gb.CPU.Step()
	}
	gb.CPU.Step()

	if gb.CPU.PC != 0x0040 {
		t.Errorf("expected PC at the VBlank vector, got %04X", gb.CPU.PC)
	}
}

func TestReset(t *testing.T) {
	gb := testGameBoy(t)

	// run for a while and disturb some state
	for i := 0; i < 5000; i++ {
		gb.CPU.Step()
	}
	gb.MMU.Write(types.SCY, 0x55)
	gb.MMU.Write(types.BGP, 0x1B)

	gb.Reset()

	if gb.CPU.AF.Uint16() != 0x01B0 || gb.CPU.PC != 0x0100 {
		t.Error("expected post-boot CPU state after reset")
	}
	if gb.PPU.CurrentScanline != 0 {
		t.Errorf("expected LY 0 after reset, got %d", gb.PPU.CurrentScanline)
	}
	if v := gb.MMU.Read(types.SCY); v != 0x00 {
		t.Errorf("expected SCY reset, got %02X", v)
	}
	if v := gb.MMU.Read(types.BGP); v != 0xFC {
		t.Errorf("expected BGP reset, got %02X", v)
	}
	if gb.PPU.FrameReady() {
		t.Error("expected frame latch cleared after reset")
	}
	if gb.CPU.Status != cpu.Running {
		t.Errorf("expected running status, got %s", gb.CPU.Status)
	}
}

func TestStoppedCPUEndsFrame(t *testing.T) {
	rom := make([]byte, 32*1024)
	copy(rom[0x0104:], nintendoLogo[:])
	rom[0x0100] = 0x10 // STOP
	var checksum uint8
	for i := 0x0134; i <= 0x014C; i++ {
		checksum = checksum - rom[i] - 1
	}
	rom[0x014D] = checksum

	gb, err := NewGameBoy(rom)
	if err != nil {
		t.Fatal(err)
	}

	// Frame must return even though the PPU never reaches VBlank
	gb.Frame()
	if gb.CPU.Status != cpu.Stopped {
		t.Errorf("expected stopped CPU, got %s", gb.CPU.Status)
	}
}
