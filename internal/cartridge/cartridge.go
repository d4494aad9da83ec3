// Package cartridge provides the Game Boy cartridge: the ROM image,
// any external RAM, and the memory bank controller that maps both
// into the address space.
package cartridge

import (
	"fmt"
)

// Cartridge represents a Game Boy cartridge constructed from a ROM
// image whose header validated successfully.
type Cartridge struct {
	MemoryBankController
	header *Header
}

// Option configures cartridge construction.
type Option func(*options)

type options struct {
	strict bool
}

// Strict enables global checksum verification. Real hardware never
// checks it, so it is off by default.
func Strict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// New constructs a Cartridge from the given ROM image. The header is
// validated before the mapper is selected; any validation failure is
// returned as one of the typed errors of this package.
func New(rom []byte, opts ...Option) (*Cartridge, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if len(rom) < 0x150 {
		return nil, fmt.Errorf("cartridge: ROM image too small (%d bytes)", len(rom))
	}

	header, err := parseHeader(rom)
	if err != nil {
		return nil, err
	}

	if o.strict {
		if err := header.verifyGlobalChecksum(rom); err != nil {
			return nil, err
		}
	}

	cart := &Cartridge{header: header}
	switch header.CartridgeType {
	case ROM:
		cart.MemoryBankController = NewROMCartridge(rom)
	case MBC1, MBC1RAM, MBC1RAMBATT:
		cart.MemoryBankController = NewMemoryBankedCartridge1(rom, header)
	default:
		return nil, UnsupportedMapperError{Kind: header.CartridgeType}
	}

	return cart, nil
}

// Header returns the parsed cartridge header.
func (c *Cartridge) Header() *Header {
	return c.header
}

// Title returns the cartridge title.
func (c *Cartridge) Title() string {
	return c.header.Title
}
