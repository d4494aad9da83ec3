package cartridge

import (
	"bytes"
	"fmt"
	"strings"
)

// logo is the Nintendo logo bitmap found at 0x0104-0x0133 of every
// licensed cartridge. The DMG boot ROM refuses to start a cartridge
// whose logo does not match.
var logo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B,
	0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E,
	0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC,
	0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// ramSizes maps the RAM size code at 0x0149 to a size in bytes. Code
// 0x01 was never used by a licensed cartridge and is rejected.
var ramSizes = map[uint8]uint32{
	0x00: 0,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Type represents the cartridge type byte at 0x0147, naming the
// mapper and any extra hardware on the cartridge.
type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2              Type = 0x05
	MBC2BATT          Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MMM01             Type = 0x0B
	MMM01RAM          Type = 0x0C
	MMM01RAMBATT      Type = 0x0D
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
	POCKETCAMERA      Type = 0x1F
	BANDAITAMA5       Type = 0xFD
	HUDSONHUC3        Type = 0xFE
	HUDSONHUC1        Type = 0xFF
)

func (t Type) String() string {
	switch t {
	case ROM:
		return "ROM"
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return "MBC1"
	case MBC2, MBC2BATT:
		return "MBC2"
	case MBC3, MBC3RAM, MBC3RAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT:
		return "MBC3"
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		return "MBC5"
	case MMM01, MMM01RAM, MMM01RAMBATT:
		return "MMM01"
	case POCKETCAMERA:
		return "POCKET CAMERA"
	case BANDAITAMA5:
		return "BANDAI TAMA5"
	case HUDSONHUC3:
		return "HuC3"
	case HUDSONHUC1:
		return "HuC1"
	default:
		return "UNKNOWN"
	}
}

// Header represents the header of a cartridge, located at the address
// space 0x0100-0x014F. The header contains information about the
// cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0143 - Title of the game, NUL padded.
	Title string

	// 0x0143 - CGB flag. Set when the high bit of the last title
	// byte is set.
	ColourSupport bool

	// 0x0144-0x0145 - NewLicenseeCode of the game, used when the old
	// licensee code defers to it with 0x33.
	NewLicenseeCode string

	// 0x0146 - SGB flag (0x03 = SGB supported).
	SGBSupport bool

	// 0x0147 - cartridge type byte selecting the mapper variant.
	CartridgeType Type

	// 0x0148 - ROM size in bytes, 32 KiB << code.
	ROMSize uint32

	// 0x0149 - external RAM size in bytes.
	RAMSize uint32

	// 0x014A - destination (0 = Japan, 1 = overseas).
	DestinationCode uint8

	// 0x014B - old licensee code. 0x33 defers to the new licensee
	// bytes.
	OldLicenseeCode uint8

	// 0x014C - mask ROM version.
	ROMVersion uint8

	// 0x014D - header checksum.
	HeaderChecksum uint8

	// 0x014E-0x014F - global checksum over the whole ROM.
	GlobalChecksum uint16
}

// parseHeader parses and validates the header of the given ROM. The
// slice passed in is the full ROM image, of at least 0x150 bytes.
func parseHeader(rom []byte) (*Header, error) {
	if !bytes.Equal(rom[0x0104:0x0134], logo[:]) {
		return nil, ErrInvalidLogo
	}

	// the header checksum is an 8-bit wrapping sum over the bytes
	// 0x0134..0x014C: x = x - rom[i] - 1
	var computed uint8
	for i := 0x0134; i <= 0x014C; i++ {
		computed = computed - rom[i] - 1
	}
	if computed != rom[0x014D] {
		return nil, HeaderChecksumError{Computed: computed, Expected: rom[0x014D]}
	}

	h := &Header{}

	h.ColourSupport = rom[0x0143]&0x80 != 0
	if h.ColourSupport {
		h.Title = strings.TrimRight(string(rom[0x0134:0x0143]), "\x00")
	} else {
		h.Title = strings.TrimRight(string(rom[0x0134:0x0144]), "\x00")
	}

	h.NewLicenseeCode = string(rom[0x0144:0x0146])
	h.SGBSupport = rom[0x0146] == 0x03
	h.CartridgeType = Type(rom[0x0147])

	if rom[0x0148] > 0x08 {
		return nil, InvalidROMSizeError{Code: rom[0x0148]}
	}
	h.ROMSize = (32 * 1024) << rom[0x0148]

	ramSize, ok := ramSizes[rom[0x0149]]
	if !ok {
		return nil, InvalidRAMSizeError{Code: rom[0x0149]}
	}
	h.RAMSize = ramSize

	h.DestinationCode = rom[0x014A]
	h.OldLicenseeCode = rom[0x014B]
	h.ROMVersion = rom[0x014C]
	h.HeaderChecksum = rom[0x014D]
	h.GlobalChecksum = uint16(rom[0x014E])<<8 | uint16(rom[0x014F])

	return h, nil
}

// verifyGlobalChecksum computes the 16-bit sum over every ROM byte
// except the two checksum bytes themselves, and compares it against
// the header value.
func (h *Header) verifyGlobalChecksum(rom []byte) error {
	var computed uint16
	for i, b := range rom {
		if i == 0x014E || i == 0x014F {
			continue
		}
		computed += uint16(b)
	}
	if computed != h.GlobalChecksum {
		return GlobalChecksumError{Computed: computed, Expected: h.GlobalChecksum}
	}
	return nil
}

// Licensee returns the licensee code to attribute the cartridge to.
func (h *Header) Licensee() string {
	if h.OldLicenseeCode == 0x33 {
		return h.NewLicenseeCode
	}
	return fmt.Sprintf("%02X", h.OldLicenseeCode)
}

func (h *Header) String() string {
	dest := "Japan"
	if h.DestinationCode != 0 {
		dest = "Overseas"
	}
	return fmt.Sprintf("%s | %s | ROM: %dkB | RAM: %dkB | %s | v%d",
		h.Title, h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024, dest, h.ROMVersion)
}
