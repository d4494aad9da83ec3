package lcd

import (
	"github.com/eastgate/dotmatrix/internal/types"
)

// Status represents the LCD status register. It contains information
// about the current state of the LCD controller. Its value is stored
// in the STAT register (0xFF41) as follows:
//
//	Bit 6 - LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
//	Bit 5 - Mode 2 OAM Interrupt         (1=Enable) (Read/Write)
//	Bit 4 - Mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 3 - Mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 2 - Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
//	Bit 1-0 - Mode Flag       (Mode 0-3)            (Read Only)
//
// Bit 7 is unimplemented and always reads 1.
type Status struct {
	// CoincidenceInterrupt is set when the LYC=LY coincidence
	// interrupt is enabled.
	CoincidenceInterrupt bool
	// OAMInterrupt is set when the OAM interrupt is enabled.
	OAMInterrupt bool
	// VBlankInterrupt is set when the V-Blank interrupt is enabled.
	VBlankInterrupt bool
	// HBlankInterrupt is set when the H-Blank interrupt is enabled.
	HBlankInterrupt bool
	// Coincidence is set when LY equals LYC.
	Coincidence bool
	// Mode is the current mode of the LCD controller.
	Mode Mode
}

// NewStatus returns a new Status.
func NewStatus() *Status {
	return &Status{}
}

// Write writes the value to the status register. Only the four
// interrupt enable bits are writable.
func (s *Status) Write(value uint8) {
	s.CoincidenceInterrupt = types.TestBit(value, types.Bit6)
	s.OAMInterrupt = types.TestBit(value, types.Bit5)
	s.VBlankInterrupt = types.TestBit(value, types.Bit4)
	s.HBlankInterrupt = types.TestBit(value, types.Bit3)
}

// Read returns the value of the status register.
func (s *Status) Read() uint8 {
	value := uint8(0x80)
	if s.CoincidenceInterrupt {
		value |= types.Bit6
	}
	if s.OAMInterrupt {
		value |= types.Bit5
	}
	if s.VBlankInterrupt {
		value |= types.Bit4
	}
	if s.HBlankInterrupt {
		value |= types.Bit3
	}
	if s.Coincidence {
		value |= types.Bit2
	}
	value |= s.Mode & 0x03
	return value
}
