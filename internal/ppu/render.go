package ppu

import (
	"github.com/eastgate/dotmatrix/internal/ppu/palette"
)

// renderScanline rasterises the current scanline into the
// framebuffer: background, then window, then the sprites selected by
// the OAM scan, composited through the palette registers.
func (p *PPU) renderScanline() {
	if p.CurrentScanline >= ScreenHeight {
		return
	}

	for x := range p.lineBuffer {
		p.lineBuffer[x] = 0
		p.spriteBuffer[x] = 0
		p.spritePresence[x] = false
	}

	if p.BackgroundEnabled {
		p.renderBackground()
		if p.WindowEnabled {
			p.renderWindow()
		}
	}
	if p.SpriteEnabled {
		p.renderSprites()
	}

	// composite the line into the framebuffer
	offset := int(p.CurrentScanline) * ScreenWidth * 4
	for x := 0; x < ScreenWidth; x++ {
		shade := p.BackgroundPalette.Shade(p.lineBuffer[x])
		if p.spriteBuffer[x] != 0 {
			shade = p.spriteBuffer[x]
		}
		copy(p.frame[offset+x*4:offset+x*4+4], palette.Shades[shade][:])
	}
}

// renderBackground fills the line buffer with the background colour
// IDs under the scroll registers.
func (p *PPU) renderBackground() {
	bgY := p.ScrollY + p.CurrentScanline

	for x := 0; x < ScreenWidth; x++ {
		bgX := p.ScrollX + uint8(x)
		p.lineBuffer[x] = p.tilePixel(p.BackgroundTileMapOffset, bgX, bgY)
	}
}

// renderWindow overlays the window from WX-7 onwards once the
// scanline has reached WY. The window fetches rows through its
// internal line counter rather than the scroll registers.
func (p *PPU) renderWindow() {
	if p.CurrentScanline < p.WindowY || p.WindowX >= ScreenWidth+7 {
		return
	}

	start := 0
	if int(p.WindowX) > 7 {
		start = int(p.WindowX) - 7
	}

	drew := false
	for x := start; x < ScreenWidth; x++ {
		winX := uint8(x - (int(p.WindowX) - 7))
		p.lineBuffer[x] = p.tilePixel(p.WindowTileMapOffset, winX, p.windowInternal)
		drew = true
	}

	// the internal counter only advances on lines the window
	// actually produced pixels for
	if drew {
		p.windowInternal++
	}
}

// tilePixel resolves the colour ID of the pixel (x, y) within the
// 256x256 plane described by the given tile map, honouring the
// LCDC tile data addressing mode.
func (p *PPU) tilePixel(mapOffset uint16, x, y uint8) uint8 {
	tileIndex := p.vRAM[mapOffset+uint16(y/8)*32+uint16(x/8)]

	var tileAddr uint16
	if p.UnsignedTileData {
		tileAddr = uint16(tileIndex) * 16
	} else {
		tileAddr = uint16(0x1000 + int(int8(tileIndex))*16)
	}

	low := p.vRAM[tileAddr+uint16(y%8)*2]
	high := p.vRAM[tileAddr+uint16(y%8)*2+1]

	bit := 7 - (x % 8)
	return ((high>>bit)&1)<<1 | (low>>bit)&1
}

// renderSprites draws this line's sprites into the sprite buffer.
// The OAM scan sorted them by X ascending; drawing walks them in
// reverse with already-placed pixels skipped, so where two sprites
// overlap the one with the higher X keeps its pixels.
func (p *PPU) renderSprites() {
	height := p.SpriteSize

	for i := len(p.lineSprites) - 1; i >= 0; i-- {
		s := p.lineSprites[i]

		row := p.CurrentScanline - (s.Y - 16)
		if s.FlipY() {
			row = height - 1 - row
		}

		// 8x16 sprites span two tiles; the hardware ignores the low
		// bit of the index
		tile := s.TileID
		if height == 16 {
			if row < 8 {
				tile &= 0xFE
			} else {
				tile |= 0x01
				row -= 8
			}
		}

		// sprite tiles always use unsigned addressing
		tileAddr := uint16(tile)*16 + uint16(row)*2
		low := p.vRAM[tileAddr]
		high := p.vRAM[tileAddr+1]

		for px := uint8(0); px < 8; px++ {
			screenX := int(s.X) - 8 + int(px)
			if screenX < 0 || screenX >= ScreenWidth {
				continue
			}
			if p.spritePresence[screenX] {
				continue
			}

			col := px
			if s.FlipX() {
				col = 7 - px
			}
			bit := 7 - col
			colour := ((high>>bit)&1)<<1 | (low>>bit)&1

			// colour 0 is transparent
			if colour == 0 {
				continue
			}

			// a sprite behind the background only shows through
			// background colour 0
			if s.BehindBackground() && p.lineBuffer[screenX] != 0 {
				continue
			}

			p.spriteBuffer[screenX] = p.SpritePalettes[s.PaletteNumber()].Shade(colour)
			p.spritePresence[screenX] = true
		}
	}
}
