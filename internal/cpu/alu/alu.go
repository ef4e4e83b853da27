// Package alu implements the arithmetic-logic unit of the SM83. Every
// operation is a pure function returning the computed value together with
// the flags that the operation defines. Flags an operation leaves alone are
// absent from Result.Affected, and Result.Apply preserves them.
package alu

import (
	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/pkg/bits"
)

// Flag masks, laid out as in the F register.
const (
	FlagZero      = types.Bit7
	FlagSubtract  = types.Bit6
	FlagHalfCarry = types.Bit5
	FlagCarry     = types.Bit4

	allFlags = FlagZero | FlagSubtract | FlagHalfCarry | FlagCarry
)

// Result is the outcome of an ALU operation.
type Result struct {
	// Value is the computed value. 8-bit operations only use the low byte.
	Value uint16
	// Flags holds the value of each flag in Affected, in F register layout.
	Flags uint8
	// Affected is the mask of flags the operation defines.
	Affected uint8
}

// Byte returns the low byte of the result.
func (r Result) Byte() uint8 {
	return uint8(r.Value)
}

// Apply merges the flags defined by the operation into f, leaving the
// other flags as they were.
func (r Result) Apply(f uint8) uint8 {
	return (f &^ r.Affected) | (r.Flags & r.Affected)
}

// Is reports whether the given flag is set in the result.
func (r Result) Is(flag uint8) bool {
	return r.Flags&flag != 0
}

func flags(z, n, h, c bool) uint8 {
	var f uint8
	if z {
		f |= FlagZero
	}
	if n {
		f |= FlagSubtract
	}
	if h {
		f |= FlagHalfCarry
	}
	if c {
		f |= FlagCarry
	}
	return f
}

// IncByte increments n by 1.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func IncByte(n uint8) Result {
	v := n + 1
	return Result{
		Value:    uint16(v),
		Flags:    flags(v == 0, false, n&0x0F == 0x0F, false),
		Affected: FlagZero | FlagSubtract | FlagHalfCarry,
	}
}

// DecByte decrements n by 1.
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func DecByte(n uint8) Result {
	v := n - 1
	return Result{
		Value:    uint16(v),
		Flags:    flags(v == 0, true, n&0x0F == 0x00, false),
		Affected: FlagZero | FlagSubtract | FlagHalfCarry,
	}
}

// IncWord increments nn by 1, wrapping at 0xFFFF. No flags are affected.
func IncWord(nn uint16) Result {
	return Result{Value: nn + 1}
}

// DecWord decrements nn by 1, wrapping at 0x0000. No flags are affected.
func DecWord(nn uint16) Result {
	return Result{Value: nn - 1}
}

// AddBytes adds b to a.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func AddBytes(a, b uint8) Result {
	return Adc(a, b, false)
}

// Adc adds b and the incoming carry to a.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func Adc(a, b uint8, carry bool) Result {
	var cy uint16
	if carry {
		cy = 1
	}
	sum := uint16(a) + uint16(b) + cy
	half := uint16(a&0x0F) + uint16(b&0x0F) + cy
	return Result{
		Value:    sum & 0xFF,
		Flags:    flags(sum&0xFF == 0, false, half > 0x0F, sum > 0xFF),
		Affected: allFlags,
	}
}

// AddWords adds b to a.
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func AddWords(a, b uint16) Result {
	sum := uint32(a) + uint32(b)
	return Result{
		Value:    uint16(sum),
		Flags:    flags(false, false, (a&0x0FFF)+(b&0x0FFF) > 0x0FFF, sum > 0xFFFF),
		Affected: FlagSubtract | FlagHalfCarry | FlagCarry,
	}
}

// AddSPSigned adds the signed 8-bit offset e to sp. The carries are
// computed on the low byte as an unsigned addition.
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func AddSPSigned(sp uint16, e uint8) Result {
	result := uint16(int32(sp) + int32(int8(e)))
	carries := sp ^ uint16(int8(e)) ^ result
	return Result{
		Value:    result,
		Flags:    flags(false, false, carries&0x10 != 0, carries&0x100 != 0),
		Affected: allFlags,
	}
}

// Sub subtracts b from a.
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func Sub(a, b uint8) Result {
	return Sbc(a, b, false)
}

// Sbc subtracts b and the incoming carry from a.
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func Sbc(a, b uint8, carry bool) Result {
	var cy int16
	if carry {
		cy = 1
	}
	diff := int16(a) - int16(b) - cy
	half := int16(a&0x0F) - int16(b&0x0F) - cy
	return Result{
		Value:    uint16(uint8(diff)),
		Flags:    flags(uint8(diff) == 0, true, half < 0, diff < 0),
		Affected: allFlags,
	}
}

// Cp compares b with a. The flags are those of Sub, the value is a.
func Cp(a, b uint8) Result {
	r := Sub(a, b)
	r.Value = uint16(a)
	return r
}

// And performs a bitwise AND of a and b.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func And(a, b uint8) Result {
	v := a & b
	return Result{Value: uint16(v), Flags: flags(v == 0, false, true, false), Affected: allFlags}
}

// Or performs a bitwise OR of a and b.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func Or(a, b uint8) Result {
	v := a | b
	return Result{Value: uint16(v), Flags: flags(v == 0, false, false, false), Affected: allFlags}
}

// Xor performs a bitwise XOR of a and b.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func Xor(a, b uint8) Result {
	v := a ^ b
	return Result{Value: uint16(v), Flags: flags(v == 0, false, false, false), Affected: allFlags}
}

// Daa adjusts a into binary coded decimal after an addition (n unset) or
// subtraction (n set), using the half-carry and carry of that operation.
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set if the correction carried out of the high digit.
func Daa(a uint8, n, h, c bool) Result {
	if !n {
		if c || a > 0x99 {
			a += 0x60
			c = true
		}
		if h || a&0x0F > 0x09 {
			a += 0x06
		}
	} else {
		if c {
			a -= 0x60
		}
		if h {
			a -= 0x06
		}
	}
	return Result{
		Value:    uint16(a),
		Flags:    flags(a == 0, false, false, c),
		Affected: FlagZero | FlagHalfCarry | FlagCarry,
	}
}

func shifted(v uint8, carry bool) Result {
	return Result{Value: uint16(v), Flags: flags(v == 0, false, false, carry), Affected: allFlags}
}

// Rlc rotates n left. Bit 7 goes to both the carry and bit 0.
func Rlc(n uint8) Result {
	return shifted(n<<1|n>>7, n&types.Bit7 != 0)
}

// Rrc rotates n right. Bit 0 goes to both the carry and bit 7.
func Rrc(n uint8) Result {
	return shifted(n>>1|n<<7, n&types.Bit0 != 0)
}

// Rl rotates n left through the carry. The incoming carry enters bit 0
// and bit 7 leaves into the carry.
func Rl(n uint8, carry bool) Result {
	v := n << 1
	if carry {
		v |= types.Bit0
	}
	return shifted(v, n&types.Bit7 != 0)
}

// Rr rotates n right through the carry. The incoming carry enters bit 7
// and bit 0 leaves into the carry.
func Rr(n uint8, carry bool) Result {
	v := n >> 1
	if carry {
		v |= types.Bit7
	}
	return shifted(v, n&types.Bit0 != 0)
}

// Sla shifts n left into the carry. Bit 0 is reset.
func Sla(n uint8) Result {
	return shifted(n<<1, n&types.Bit7 != 0)
}

// Sra shifts n right into the carry. Bit 7 keeps its value.
func Sra(n uint8) Result {
	return shifted(n>>1|n&types.Bit7, n&types.Bit0 != 0)
}

// Srl shifts n right into the carry. Bit 7 is reset.
func Srl(n uint8) Result {
	return shifted(n>>1, n&types.Bit0 != 0)
}

// Swap exchanges the upper and lower nibbles of n.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func Swap(n uint8) Result {
	return shifted(n<<4|n>>4, false)
}

// Bit tests bit b of n. The value is n, unchanged.
//
//	Z - Set if bit b of n is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func Bit(b, n uint8) Result {
	return Result{
		Value:    uint16(n),
		Flags:    flags(!bits.Test(n, b), false, true, false),
		Affected: FlagZero | FlagSubtract | FlagHalfCarry,
	}
}

// Res resets bit b of n. No flags are affected.
func Res(b, n uint8) Result {
	return Result{Value: uint16(bits.Reset(n, b))}
}

// Set sets bit b of n. No flags are affected.
func Set(b, n uint8) Result {
	return Result{Value: uint16(bits.Set(n, b))}
}
