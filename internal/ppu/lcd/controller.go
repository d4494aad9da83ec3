package lcd

import (
	"github.com/eastgate/dotmatrix/internal/types"
)

// Controller is the LCD controller. It is responsible for controlling
// various aspects of the LCD, such as enabling the background and
// window display.
//
// Its value is stored in the LCD Control register (0xFF40) as follows:
//
//	Bit 7 - LCD Enable             (0=Off, 1=On)
//	Bit 6 - Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 5 - Window Display Enable          (0=Off, 1=On)
//	Bit 4 - BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
//	Bit 3 - BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 2 - OBJ (Sprite) Size              (0=8x8, 1=8x16)
//	Bit 1 - OBJ (Sprite) Display Enable    (0=Off, 1=On)
//	Bit 0 - BG/Window Display              (0=Off, 1=On)
type Controller struct {
	// Enabled is the LCD Enable bit. When cleared the PPU is inert.
	Enabled bool
	// WindowTileMapOffset is the VRAM-local offset of the window tile
	// map, 0x1800 or 0x1C00 per bit 6.
	WindowTileMapOffset uint16
	// WindowEnabled is the Window Display Enable bit.
	WindowEnabled bool
	// UnsignedTileData selects the tile data addressing mode for the
	// background and window. When set, tile indices address from
	// VRAM-local 0x0000 unsigned; otherwise from 0x1000 with a signed
	// index.
	UnsignedTileData bool
	// BackgroundTileMapOffset is the VRAM-local offset of the
	// background tile map, 0x1800 or 0x1C00 per bit 3.
	BackgroundTileMapOffset uint16
	// SpriteSize is the sprite height in pixels, 8 or 16.
	SpriteSize uint8
	// SpriteEnabled is the OBJ Display Enable bit.
	SpriteEnabled bool
	// BackgroundEnabled is the BG/Window Display bit.
	BackgroundEnabled bool

	raw uint8
}

// NewController returns a new LCD controller with every bit cleared.
func NewController() *Controller {
	c := &Controller{}
	c.Write(0x00)
	return c
}

// Write decodes the given value into the controller. LCDC is
// free-write; every bit is writable.
func (c *Controller) Write(value uint8) {
	c.raw = value
	c.Enabled = types.TestBit(value, types.Bit7)
	if types.TestBit(value, types.Bit6) {
		c.WindowTileMapOffset = 0x1C00
	} else {
		c.WindowTileMapOffset = 0x1800
	}
	c.WindowEnabled = types.TestBit(value, types.Bit5)
	c.UnsignedTileData = types.TestBit(value, types.Bit4)
	if types.TestBit(value, types.Bit3) {
		c.BackgroundTileMapOffset = 0x1C00
	} else {
		c.BackgroundTileMapOffset = 0x1800
	}
	if types.TestBit(value, types.Bit2) {
		c.SpriteSize = 16
	} else {
		c.SpriteSize = 8
	}
	c.SpriteEnabled = types.TestBit(value, types.Bit1)
	c.BackgroundEnabled = types.TestBit(value, types.Bit0)
}

// Read returns the value of the controller.
func (c *Controller) Read() uint8 {
	return c.raw
}
