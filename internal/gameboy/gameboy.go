// Package gameboy provides the assembled DMG: the CPU driving the bus
// and PPU, constructed from a cartridge and stepped a frame at a time
// by the host.
package gameboy

import (
	"time"

	"github.com/eastgate/dotmatrix/internal/cartridge"
	"github.com/eastgate/dotmatrix/internal/cpu"
	"github.com/eastgate/dotmatrix/internal/interrupts"
	"github.com/eastgate/dotmatrix/internal/mmu"
	"github.com/eastgate/dotmatrix/internal/ppu"
	"github.com/eastgate/dotmatrix/internal/types"
	"github.com/eastgate/dotmatrix/pkg/log"
)

const (
	// FrameRate is the refresh rate of the DMG display.
	FrameRate = float64(cpu.ClockSpeed) / (ppu.ScanlinesPerFrame * ppu.DotsPerScanline)
)

// GameBoy represents the assembled machine. Ownership is a strict
// tree: the CPU holds the bus, the bus holds the cartridge and PPU.
type GameBoy struct {
	CPU  *cpu.CPU
	MMU  *mmu.MMU
	PPU  *ppu.PPU
	Cart *cartridge.Cartridge
	IRQ  *interrupts.Service

	log log.Logger
}

// NewGameBoy returns a new GameBoy running the given ROM image. The
// cartridge header is validated before anything is constructed.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	o := &options{
		logger: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}

	var cartOpts []cartridge.Option
	if o.strict {
		cartOpts = append(cartOpts, cartridge.Strict())
	}
	cart, err := cartridge.New(rom, cartOpts...)
	if err != nil {
		return nil, err
	}

	irq := interrupts.NewService()
	p := ppu.New(irq)
	m := mmu.NewMMU(cart, p, irq, o.logger)
	c := cpu.NewCPU(m, irq, o.logger)

	gb := &GameBoy{
		CPU:  c,
		MMU:  m,
		PPU:  p,
		Cart: cart,
		IRQ:  irq,
		log:  o.logger,
	}
	gb.seedIO()

	o.logger.Infof("gameboy: loaded %s", cart.Header())

	return gb, nil
}

// bootIO holds the post-boot values of the memory-mapped registers
// the DMG boot ROM leaves behind.
var bootIO = []struct {
	address uint16
	value   uint8
}{
	{0xFF05, 0x00}, {0xFF06, 0x00}, {0xFF07, 0x00},
	{0xFF10, 0x80}, {0xFF11, 0xBF}, {0xFF12, 0xF3}, {0xFF14, 0xBF},
	{0xFF16, 0x3F}, {0xFF17, 0x00}, {0xFF19, 0xBF}, {0xFF1A, 0x7F},
	{0xFF1B, 0xFF}, {0xFF1C, 0x9F}, {0xFF1E, 0xBF}, {0xFF20, 0xFF},
	{0xFF21, 0x00}, {0xFF22, 0x00}, {0xFF23, 0xBF}, {0xFF24, 0x77},
	{0xFF25, 0xF3}, {0xFF26, 0xF1},
}

// seedIO applies the post-boot register state.
func (g *GameBoy) seedIO() {
	for _, io := range bootIO {
		g.MMU.SetIO(io.address, io.value)
	}

	g.MMU.Write(types.LCDC, 0x91)
	g.MMU.Write(types.SCY, 0x00)
	g.MMU.Write(types.SCX, 0x00)
	g.MMU.Write(types.LYC, 0x00)
	g.MMU.Write(types.BGP, 0xFC)
	g.MMU.Write(types.OBP0, 0xFF)
	g.MMU.Write(types.OBP1, 0xFF)
	g.MMU.Write(types.WY, 0x00)
	g.MMU.Write(types.WX, 0x00)
	g.MMU.Write(types.IE, 0x00)
}

// Reset returns the machine to the post-boot state regardless of
// prior execution.
func (g *GameBoy) Reset() {
	// disabling the LCD resets the scan position before the boot
	// state re-enables it
	g.MMU.Write(types.LCDC, 0x00)
	g.PPU.Framebuffer()
	g.IRQ.Flag = 0
	g.CPU.Reset()
	g.seedIO()
}

// Frame steps the CPU until the PPU completes a frame, and returns
// the framebuffer. If the CPU freezes the partial frame is returned
// as-is.
func (g *GameBoy) Frame() []uint8 {
	for !g.PPU.FrameReady() {
		if g.CPU.Step() == 0 {
			break
		}
	}
	return g.CPU.Framebuffer()
}

// Run drives the machine at the DMG refresh rate, sending a copy of
// each completed frame to the given channel until the stop channel
// closes; a frame is dropped when the channel is full. The channel is
// closed on return.
func (g *GameBoy) Run(frames chan<- []byte, stop <-chan struct{}) {
	defer close(frames)

	ticker := time.NewTicker(time.Duration(float64(time.Second) / FrameRate))
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			fb := g.Frame()

			frame := make([]byte, len(fb))
			copy(frame, fb)

			select {
			case frames <- frame:
			default:
				// the sink is behind; drop the frame rather than
				// stalling emulation
			}
		}

		if g.CPU.Status == cpu.Stopped || g.CPU.Status == cpu.Errored {
			g.log.Warnf("gameboy: CPU %s, stopping", g.CPU.Status)
			return
		}
	}
}
