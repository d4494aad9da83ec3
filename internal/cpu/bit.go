package cpu

// testBit tests the given bit of the given value.
//
//	BIT b, n
//
// Flags affected:
//
//	Z - Set if the bit is not set.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(value uint8, bit uint8) {
	c.setFlags(value&(1<<bit) == 0, false, true, c.isFlagSet(flagCarry))
}

// setBit returns the given value with the given bit set. No flags are
// affected.
//
//	SET b, n
func (c *CPU) setBit(value uint8, bit uint8) uint8 {
	return value | 1<<bit
}

// clearBit returns the given value with the given bit cleared. No
// flags are affected.
//
//	RES b, n
func (c *CPU) clearBit(value uint8, bit uint8) uint8 {
	return value &^ (1 << bit)
}
