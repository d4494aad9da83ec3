// Package palette provides the DMG palette registers and the fixed
// green shades the original hardware displayed them with.
package palette

// Palette is a DMG palette register (BGP, OBP0 or OBP1). Each of the
// four 2-bit fields maps a colour ID to one of the four shades:
//
//	Bit 7-6 - Shade for colour ID 3
//	Bit 5-4 - Shade for colour ID 2
//	Bit 3-2 - Shade for colour ID 1
//	Bit 1-0 - Shade for colour ID 0
type Palette uint8

// Shade translates the given 2-bit colour ID through the palette.
func (p Palette) Shade(index uint8) uint8 {
	return uint8(p>>(index*2)) & 0x03
}

// Byte returns the raw register value.
func (p Palette) Byte() uint8 {
	return uint8(p)
}

// Shades holds the RGBA values of the four DMG shades, from lightest
// to darkest, as rendered by the original dot-matrix display.
var Shades = [4][4]uint8{
	{0x9B, 0xBC, 0x0F, 0xFF},
	{0x8B, 0xAC, 0x0F, 0xFF},
	{0x30, 0x62, 0x30, 0xFF},
	{0x0F, 0x38, 0x0F, 0xFF},
}
