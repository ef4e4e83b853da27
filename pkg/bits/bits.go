// Package bits provides small helpers for manipulating individual bits
// and bytes of 8 and 16-bit values.
package bits

// Val returns the value (0 or 1) of the bit at the given index.
func Val(b uint8, i uint8) uint8 {
	return (b >> i) & 1
}

// Reset clears the bit at the given index.
func Reset(b, i uint8) uint8 {
	return b &^ (1 << i)
}

// Set sets the bit at the given index.
func Set(b, i uint8) uint8 {
	return b | (1 << i)
}

// Test reports whether the bit at the given index is set.
func Test(b, i uint8) bool {
	return (b>>i)&1 != 0
}

// Join16 combines a high and low byte into a 16-bit value.
func Join16(high, low uint8) uint16 {
	return uint16(high)<<8 | uint16(low)
}

// Split16 splits a 16-bit value into its high and low bytes.
func Split16(v uint16) (high, low uint8) {
	return uint8(v >> 8), uint8(v)
}

// Normalize returns 1 for any nonzero value, and 0 otherwise.
func Normalize(v uint8) uint8 {
	if v != 0 {
		return 1
	}
	return 0
}
