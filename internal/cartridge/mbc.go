package cartridge

// MemoryBankController is the two-method contract every mapper
// fulfils. Read reports false when the address falls outside the
// cartridge's windows (0x0000-0x7FFF and 0xA000-0xBFFF); the bus then
// resolves the access itself. Write decodes mapper control writes and
// external RAM writes; anything else is ignored.
type MemoryBankController interface {
	Read(address uint16) (uint8, bool)
	Write(address uint16, value uint8)
}

// RAMController is implemented by mappers that carry external RAM
// which a host may persist between runs.
type RAMController interface {
	LoadRAM([]byte)
	SaveRAM() []byte
}
