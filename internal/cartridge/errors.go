package cartridge

import (
	"errors"
	"fmt"
)

// ErrInvalidLogo is returned when the Nintendo logo at 0x0104-0x0133
// does not match the expected constant.
var ErrInvalidLogo = errors.New("cartridge: invalid logo")

// HeaderChecksumError is returned when the checksum over the header
// bytes 0x0134-0x014C does not match the byte at 0x014D.
type HeaderChecksumError struct {
	Computed uint8
	Expected uint8
}

func (e HeaderChecksumError) Error() string {
	return fmt.Sprintf("cartridge: header checksum mismatch (computed %d, expected %d)", e.Computed, e.Expected)
}

// GlobalChecksumError is returned when strict loading is requested and
// the 16-bit checksum over the whole ROM does not match the header.
type GlobalChecksumError struct {
	Computed uint16
	Expected uint16
}

func (e GlobalChecksumError) Error() string {
	return fmt.Sprintf("cartridge: global checksum mismatch (computed %04X, expected %04X)", e.Computed, e.Expected)
}

// InvalidROMSizeError is returned when the ROM size code at 0x0148 is
// outside the documented 0x00..0x08 range.
type InvalidROMSizeError struct {
	Code uint8
}

func (e InvalidROMSizeError) Error() string {
	return fmt.Sprintf("cartridge: invalid ROM size code %02X", e.Code)
}

// InvalidRAMSizeError is returned when the RAM size code at 0x0149 is
// not one of the documented values.
type InvalidRAMSizeError struct {
	Code uint8
}

func (e InvalidRAMSizeError) Error() string {
	return fmt.Sprintf("cartridge: invalid RAM size code %02X", e.Code)
}

// UnsupportedMapperError is returned when the cartridge type byte at
// 0x0147 names a mapper this emulator does not implement.
type UnsupportedMapperError struct {
	Kind Type
}

func (e UnsupportedMapperError) Error() string {
	return fmt.Sprintf("cartridge: unsupported mapper %s (%02X)", e.Kind, uint8(e.Kind))
}
