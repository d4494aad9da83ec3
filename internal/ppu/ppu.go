// Package ppu provides the pixel processing unit for the DMG. The PPU
// is a dot-driven state machine over the four LCD modes; it owns VRAM,
// OAM and the LCD registers, rasterises one scanline at a time into an
// RGBA framebuffer, and requests the VBlank and LCD STAT interrupts.
package ppu

import (
	"fmt"
	"sort"

	"github.com/eastgate/dotmatrix/internal/interrupts"
	"github.com/eastgate/dotmatrix/internal/ppu/lcd"
	"github.com/eastgate/dotmatrix/internal/ppu/palette"
	"github.com/eastgate/dotmatrix/internal/types"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144
	// FrameSize is the size of one RGBA frame in bytes.
	FrameSize = ScreenWidth * ScreenHeight * 4

	// ScanlinesPerFrame is the number of scanlines in one frame,
	// including the ten VBlank lines.
	ScanlinesPerFrame = 154
	// DotsPerScanline is the number of dots in one scanline.
	DotsPerScanline = 456

	// oamScanDots is the length of the OAM scan mode.
	oamScanDots = 80
	// drawingDots is the length of the drawing mode. Real hardware
	// stretches this with SCX, window and sprite penalties; those are
	// not modelled.
	drawingDots = 172
	// hblankDots is the remainder of the scanline.
	hblankDots = DotsPerScanline - oamScanDots - drawingDots

	// maxSpritesPerLine is the hardware limit of sprites drawn on one
	// scanline.
	maxSpritesPerLine = 10
)

// PPU is the pixel processing unit.
type PPU struct {
	*lcd.Controller
	*lcd.Status

	// CurrentScanline is the scanline being scanned or drawn, exposed
	// through the LY register.
	CurrentScanline uint8
	// LYCompare is the value of the LYC register.
	LYCompare uint8

	ScrollY uint8
	ScrollX uint8
	WindowY uint8
	WindowX uint8

	BackgroundPalette palette.Palette
	SpritePalettes    [2]palette.Palette

	vRAM [0x2000]uint8
	oam  [0xA0]uint8

	// dots accumulated in the current mode.
	dots uint32

	// windowInternal is the window's internal line counter. The
	// window keeps its own notion of how many of its lines have been
	// drawn; it is reset at the start of every frame.
	windowInternal uint8

	// sprites selected by the OAM scan for the current line, sorted
	// by X ascending.
	lineSprites []Sprite

	lineBuffer     [ScreenWidth]uint8 // colour IDs before palette translation
	spriteBuffer   [ScreenWidth]uint8 // palette-translated sprite shades
	spritePresence [ScreenWidth]bool  // sprite pixel already placed

	frame      [FrameSize]uint8
	frameReady bool

	irq *interrupts.Service
}

// New returns a new PPU requesting interrupts through the given
// service.
func New(irq *interrupts.Service) *PPU {
	p := &PPU{
		Controller:  lcd.NewController(),
		Status:      lcd.NewStatus(),
		lineSprites: make([]Sprite, 0, maxSpritesPerLine),
		irq:         irq,
	}
	p.Mode = lcd.OAM
	return p
}

// Step advances the PPU by the given number of machine cycles. One
// machine cycle is four dots.
func (p *PPU) Step(cycles uint8) {
	if !p.Enabled {
		return
	}

	p.dots += uint32(cycles) * 4

	for {
		switch p.Mode {
		case lcd.OAM:
			if p.dots < oamScanDots {
				return
			}
			p.dots -= oamScanDots
			p.scanOAM()
			p.Mode = lcd.VRAM
		case lcd.VRAM:
			if p.dots < drawingDots {
				return
			}
			p.dots -= drawingDots
			p.renderScanline()
			p.Mode = lcd.HBlank
			if p.HBlankInterrupt {
				p.irq.Request(interrupts.LCDFlag)
			}
		case lcd.HBlank:
			if p.dots < hblankDots {
				return
			}
			p.dots -= hblankDots
			p.CurrentScanline++
			p.checkLYC()
			if p.CurrentScanline < ScreenHeight {
				p.enterOAMScan()
			} else {
				p.Mode = lcd.VBlank
				p.frameReady = true
				p.irq.Request(interrupts.VBlankFlag)
				if p.VBlankInterrupt {
					p.irq.Request(interrupts.LCDFlag)
				}
			}
		case lcd.VBlank:
			if p.dots < DotsPerScanline {
				return
			}
			p.dots -= DotsPerScanline
			p.CurrentScanline++
			if p.CurrentScanline >= ScanlinesPerFrame {
				p.CurrentScanline = 0
				p.windowInternal = 0
				p.enterOAMScan()
			}
			p.checkLYC()
		}
	}
}

// enterOAMScan transitions into the OAM scan mode, requesting the LCD
// interrupt if the mode 2 enable is set.
func (p *PPU) enterOAMScan() {
	p.Mode = lcd.OAM
	if p.OAMInterrupt {
		p.irq.Request(interrupts.LCDFlag)
	}
}

// checkLYC re-evaluates the coincidence flag against the current
// scanline, requesting the LCD interrupt on a rising edge when the
// coincidence interrupt is enabled.
func (p *PPU) checkLYC() {
	was := p.Coincidence
	p.Coincidence = p.CurrentScanline == p.LYCompare
	if p.Coincidence && !was && p.CoincidenceInterrupt {
		p.irq.Request(interrupts.LCDFlag)
	}
}

// scanOAM selects the sprites visible on the current scanline: the
// first ten by OAM index, sorted by X ascending.
func (p *PPU) scanOAM() {
	p.lineSprites = p.lineSprites[:0]
	line := int(p.CurrentScanline) + 16
	height := int(p.SpriteSize)

	for i := uint8(0); i < 40 && len(p.lineSprites) < maxSpritesPerLine; i++ {
		s := p.spriteAt(i)
		if line >= int(s.Y) && line < int(s.Y)+height {
			p.lineSprites = append(p.lineSprites, s)
		}
	}

	sort.SliceStable(p.lineSprites, func(i, j int) bool {
		return p.lineSprites[i].X < p.lineSprites[j].X
	})
}

// FrameReady reports whether a complete frame is waiting to be taken.
func (p *PPU) FrameReady() bool {
	return p.frameReady
}

// Framebuffer returns the 160x144 RGBA framebuffer and clears the
// frame-ready latch. The returned slice is owned by the PPU and only
// valid to read between steps.
func (p *PPU) Framebuffer() []uint8 {
	p.frameReady = false
	return p.frame[:]
}

// ReadVRAM returns the byte at the given VRAM-local offset. During
// the drawing mode VRAM is held by the PPU and reads return 0xFF.
func (p *PPU) ReadVRAM(offset uint16) uint8 {
	if p.Enabled && p.Mode == lcd.VRAM {
		return 0xFF
	}
	return p.vRAM[offset]
}

// WriteVRAM writes the byte at the given VRAM-local offset. Writes
// during the drawing mode are ignored.
func (p *PPU) WriteVRAM(offset uint16, value uint8) {
	if p.Enabled && p.Mode == lcd.VRAM {
		return
	}
	p.vRAM[offset] = value
}

// ReadOAM returns the byte at the given OAM-local offset. During the
// OAM scan and drawing modes OAM is held by the PPU and reads return
// 0xFF.
func (p *PPU) ReadOAM(offset uint16) uint8 {
	if p.Enabled && (p.Mode == lcd.OAM || p.Mode == lcd.VRAM) {
		return 0xFF
	}
	return p.oam[offset]
}

// WriteOAM writes the byte at the given OAM-local offset. Writes
// during the OAM scan and drawing modes are ignored.
func (p *PPU) WriteOAM(offset uint16, value uint8) {
	if p.Enabled && (p.Mode == lcd.OAM || p.Mode == lcd.VRAM) {
		return
	}
	p.oam[offset] = value
}

// WriteOAMDirect writes OAM without mode gating. OAM DMA uses this;
// the transfer proceeds regardless of the LCD mode because the CPU,
// not the PPU, is locked out during a real transfer.
func (p *PPU) WriteOAMDirect(offset uint16, value uint8) {
	p.oam[offset] = value
}

// Read returns the value of the LCD register at the given address.
func (p *PPU) Read(address uint16) uint8 {
	switch address {
	case types.LCDC:
		return p.Controller.Read()
	case types.STAT:
		if !p.Enabled {
			// with the LCD disabled the mode and coincidence bits
			// read back as zero
			return p.Status.Read() & 0xF8
		}
		return p.Status.Read()
	case types.SCY:
		return p.ScrollY
	case types.SCX:
		return p.ScrollX
	case types.LY:
		if !p.Enabled {
			return 0
		}
		return p.CurrentScanline
	case types.LYC:
		return p.LYCompare
	case types.BGP:
		return p.BackgroundPalette.Byte()
	case types.OBP0:
		return p.SpritePalettes[0].Byte()
	case types.OBP1:
		return p.SpritePalettes[1].Byte()
	case types.WY:
		return p.WindowY
	case types.WX:
		return p.WindowX
	}
	panic(fmt.Sprintf("ppu: illegal read from address %04X", address))
}

// Write writes the given value to the LCD register at the given
// address.
func (p *PPU) Write(address uint16, value uint8) {
	switch address {
	case types.LCDC:
		wasEnabled := p.Enabled
		p.Controller.Write(value)
		if wasEnabled && !p.Enabled {
			// turning the LCD off resets the scan position
			p.CurrentScanline = 0
			p.dots = 0
			p.windowInternal = 0
			p.Mode = lcd.HBlank
		} else if !wasEnabled && p.Enabled {
			p.Mode = lcd.OAM
			p.checkLYC()
		}
	case types.STAT:
		p.Status.Write(value)
	case types.SCY:
		p.ScrollY = value
	case types.SCX:
		p.ScrollX = value
	case types.LY:
		// LY is read-only
	case types.LYC:
		p.LYCompare = value
		if p.Enabled {
			p.checkLYC()
		}
	case types.BGP:
		p.BackgroundPalette = palette.Palette(value)
	case types.OBP0:
		p.SpritePalettes[0] = palette.Palette(value)
	case types.OBP1:
		p.SpritePalettes[1] = palette.Palette(value)
	case types.WY:
		p.WindowY = value
	case types.WX:
		p.WindowX = value
	default:
		panic(fmt.Sprintf("ppu: illegal write to address %04X", address))
	}
}
