package cartridge

// romOnly is a cartridge without a controller. Bank 0 and bank 1 are
// fixed, and RAM, when present, is always accessible.
type romOnly struct {
	*banks
}

func newROMOnly(b *banks) *romOnly {
	b.ramEnabled = true
	return &romOnly{banks: b}
}

// Write is a no-op, there are no registers to write.
func (m *romOnly) Write(uint16, uint8) {}
