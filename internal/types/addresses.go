package types

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware IO registers are
// mapped to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 is the address of the P1 hardware register, used to
	// select and read the input keys. No joypad matrix is
	// attached here, so it reads as an idle pad.
	P1 HardwareAddress = 0xFF00
	// SB is the address of the serial transfer data register.
	SB HardwareAddress = 0xFF01
	// SC is the address of the serial transfer control register.
	SC HardwareAddress = 0xFF02
	// DIV is the address of the divider register. The divider is
	// addressable but is not advanced.
	DIV HardwareAddress = 0xFF04
	// TIMA is the address of the timer counter register.
	TIMA HardwareAddress = 0xFF05
	// TMA is the address of the timer modulo register.
	TMA HardwareAddress = 0xFF06
	// TAC is the address of the timer control register.
	TAC HardwareAddress = 0xFF07
	// IF is the address of the interrupt flag register.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// LCDC is the address of the LCD control register.
	//
	//  Bit 7: LCD Enable                     (0=Off, 1=On)
	//  Bit 6: Window Tile Map Select         (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 5: Window Display Enable          (0=Off, 1=On)
	//  Bit 4: BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
	//  Bit 3: BG Tile Map Select             (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 2: OBJ (Sprite) Size              (0=8x8, 1=8x16)
	//  Bit 1: OBJ (Sprite) Display Enable    (0=Off, 1=On)
	//  Bit 0: BG/Window Display              (0=Off, 1=On)
	LCDC HardwareAddress = 0xFF40
	// STAT is the address of the LCD status register.
	//
	//  Bit 6: LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
	//  Bit 5: Mode 2 OAM Interrupt         (1=Enable) (Read/Write)
	//  Bit 4: Mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
	//  Bit 3: Mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
	//  Bit 2: Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
	//  Bit 1-0: Mode Flag       (Mode 0-3)            (Read Only)
	STAT HardwareAddress = 0xFF41
	// SCY is the address of the background vertical scroll register.
	SCY HardwareAddress = 0xFF42
	// SCX is the address of the background horizontal scroll register.
	SCX HardwareAddress = 0xFF43
	// LY is the address of the current scanline register. (Read Only)
	LY HardwareAddress = 0xFF44
	// LYC is the address of the scanline compare register. When LY
	// and LYC are equal the coincidence flag of STAT is set, and an
	// LCD interrupt is requested if enabled.
	LYC HardwareAddress = 0xFF45
	// DMA is the address of the OAM DMA transfer register. Writing
	// XX copies the 160 bytes at XX00-XX9F into OAM.
	DMA HardwareAddress = 0xFF46
	// BGP is the address of the background palette register.
	BGP HardwareAddress = 0xFF47
	// OBP0 is the address of the first sprite palette register.
	OBP0 HardwareAddress = 0xFF48
	// OBP1 is the address of the second sprite palette register.
	OBP1 HardwareAddress = 0xFF49
	// WY is the address of the window Y position register.
	WY HardwareAddress = 0xFF4A
	// WX is the address of the window X position register. The
	// window is drawn from WX-7 onwards.
	WX HardwareAddress = 0xFF4B
	// BDIS is the address of the boot ROM disable register. The boot
	// ROM is never mapped in, so writes here are inert.
	BDIS HardwareAddress = 0xFF50
	// IE is the address of the interrupt enable register.
	IE HardwareAddress = 0xFFFF
)
