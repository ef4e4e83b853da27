package cpu

import (
	"github.com/thelolagemann/gomeboy-core/internal/cpu/alu"
	"github.com/thelolagemann/gomeboy-core/pkg/bits"
)

// Registers is the SM83 register file. The flag register F is only
// reachable through F and SetF, which keep its low nibble at zero.
type Registers struct {
	A, B, C, D, E, H, L uint8
	SP, PC              uint16

	f uint8
}

// F returns the flag register.
func (r *Registers) F() uint8 { return r.f }

// SetF sets the flag register. The low nibble is always discarded.
func (r *Registers) SetF(v uint8) { r.f = v & 0xF0 }

func (r *Registers) AF() uint16 { return bits.Join16(r.A, r.f) }
func (r *Registers) BC() uint16 { return bits.Join16(r.B, r.C) }
func (r *Registers) DE() uint16 { return bits.Join16(r.D, r.E) }
func (r *Registers) HL() uint16 { return bits.Join16(r.H, r.L) }

func (r *Registers) SetAF(v uint16) {
	var f uint8
	r.A, f = bits.Split16(v)
	r.SetF(f)
}
func (r *Registers) SetBC(v uint16) { r.B, r.C = bits.Split16(v) }
func (r *Registers) SetDE(v uint16) { r.D, r.E = bits.Split16(v) }
func (r *Registers) SetHL(v uint16) { r.H, r.L = bits.Split16(v) }

// ZF returns the zero flag as 0 or 1.
func (r *Registers) ZF() uint8 { return r.flagBit(alu.FlagZero) }

// NF returns the subtract flag as 0 or 1.
func (r *Registers) NF() uint8 { return r.flagBit(alu.FlagSubtract) }

// HF returns the half carry flag as 0 or 1.
func (r *Registers) HF() uint8 { return r.flagBit(alu.FlagHalfCarry) }

// CF returns the carry flag as 0 or 1.
func (r *Registers) CF() uint8 { return r.flagBit(alu.FlagCarry) }

// SetZF sets the zero flag. Any nonzero value sets the flag.
func (r *Registers) SetZF(v uint8) { r.setFlag(alu.FlagZero, v != 0) }

// SetNF sets the subtract flag. Any nonzero value sets the flag.
func (r *Registers) SetNF(v uint8) { r.setFlag(alu.FlagSubtract, v != 0) }

// SetHF sets the half carry flag. Any nonzero value sets the flag.
func (r *Registers) SetHF(v uint8) { r.setFlag(alu.FlagHalfCarry, v != 0) }

// SetCF sets the carry flag. Any nonzero value sets the flag.
func (r *Registers) SetCF(v uint8) { r.setFlag(alu.FlagCarry, v != 0) }

// Reset zeroes every register.
func (r *Registers) Reset() {
	*r = Registers{}
}

func (r *Registers) flagBit(mask uint8) uint8 {
	if r.f&mask != 0 {
		return 1
	}
	return 0
}

func (r *Registers) isFlagSet(mask uint8) bool {
	return r.f&mask != 0
}

func (r *Registers) setFlag(mask uint8, v bool) {
	if v {
		r.f |= mask
	} else {
		r.f &^= mask
	}
}

// apply merges the flags defined by an ALU result into F.
func (r *Registers) apply(res alu.Result) {
	r.f = res.Apply(r.f) & 0xF0
}

// pair returns the 16-bit register pair selected by bits 4-5 of an
// opcode, with SP in the last slot.
func (r *Registers) pair(i uint8) uint16 {
	switch i & 3 {
	case 0:
		return r.BC()
	case 1:
		return r.DE()
	case 2:
		return r.HL()
	}
	return r.SP
}

func (r *Registers) setPair(i uint8, v uint16) {
	switch i & 3 {
	case 0:
		r.SetBC(v)
	case 1:
		r.SetDE(v)
	case 2:
		r.SetHL(v)
	default:
		r.SP = v
	}
}

// stackPair is pair with AF in the last slot, as used by PUSH and POP.
func (r *Registers) stackPair(i uint8) uint16 {
	if i&3 == 3 {
		return r.AF()
	}
	return r.pair(i)
}

func (r *Registers) setStackPair(i uint8, v uint16) {
	if i&3 == 3 {
		r.SetAF(v)
		return
	}
	r.setPair(i, v)
}
