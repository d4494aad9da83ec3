package ppu

import (
	"github.com/eastgate/dotmatrix/internal/types"
)

// Sprite represents a single entry of the object attribute memory.
// Each entry is 4 bytes:
//
//	Byte 0 - Y position on screen + 16
//	Byte 1 - X position on screen + 8
//	Byte 2 - Tile index
//	Byte 3 - Attributes
type Sprite struct {
	Y          uint8
	X          uint8
	TileID     uint8
	Attributes uint8
}

// spriteAt decodes the OAM entry with the given index.
func (p *PPU) spriteAt(index uint8) Sprite {
	offset := index * 4
	return Sprite{
		Y:          p.oam[offset],
		X:          p.oam[offset+1],
		TileID:     p.oam[offset+2],
		Attributes: p.oam[offset+3],
	}
}

// BehindBackground reports whether the sprite is drawn behind
// non-zero background pixels. (Attribute bit 7)
func (s Sprite) BehindBackground() bool {
	return types.TestBit(s.Attributes, types.Bit7)
}

// FlipY reports whether the sprite is flipped vertically.
// (Attribute bit 6)
func (s Sprite) FlipY() bool {
	return types.TestBit(s.Attributes, types.Bit6)
}

// FlipX reports whether the sprite is flipped horizontally.
// (Attribute bit 5)
func (s Sprite) FlipX() bool {
	return types.TestBit(s.Attributes, types.Bit5)
}

// PaletteNumber returns the sprite palette to translate colour IDs
// through, 0 for OBP0 and 1 for OBP1. (Attribute bit 4)
func (s Sprite) PaletteNumber() uint8 {
	if types.TestBit(s.Attributes, types.Bit4) {
		return 1
	}
	return 0
}
