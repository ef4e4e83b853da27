package cpu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-core/internal/cpu/alu"
)

// accumulatorOp is an 8-bit ALU operation applied to A and an operand.
type accumulatorOp struct {
	name string
	fn   func(r *Registers, n uint8) alu.Result
	// discard is set for CP, which only updates the flags.
	discard bool
}

// accumulatorOps is ordered by bits 3-5 of the opcode, as used by both the
// 0x80-0xBF block and the 0xC6-0xFE immediate forms.
var accumulatorOps = [8]accumulatorOp{
	{name: "ADD", fn: func(r *Registers, n uint8) alu.Result { return alu.AddBytes(r.A, n) }},
	{name: "ADC", fn: func(r *Registers, n uint8) alu.Result { return alu.Adc(r.A, n, r.isFlagSet(FlagCarry)) }},
	{name: "SUB", fn: func(r *Registers, n uint8) alu.Result { return alu.Sub(r.A, n) }},
	{name: "SBC", fn: func(r *Registers, n uint8) alu.Result { return alu.Sbc(r.A, n, r.isFlagSet(FlagCarry)) }},
	{name: "AND", fn: func(r *Registers, n uint8) alu.Result { return alu.And(r.A, n) }},
	{name: "XOR", fn: func(r *Registers, n uint8) alu.Result { return alu.Xor(r.A, n) }},
	{name: "OR", fn: func(r *Registers, n uint8) alu.Result { return alu.Or(r.A, n) }},
	{name: "CP", fn: func(r *Registers, n uint8) alu.Result { return alu.Cp(r.A, n) }, discard: true},
}

func (op accumulatorOp) run(r *Registers, n uint8) {
	res := op.fn(r, n)
	if !op.discard {
		r.A = res.Byte()
	}
	r.apply(res)
}

// generateAccumulatorInstructions defines the 8-bit ALU instructions.
//
//	OP A, r
//	OP A, d8
//	OP = ADD, ADC, SUB, SBC, AND, XOR, OR, CP
//	r = B, C, D, E, H, L, (HL), A
func generateAccumulatorInstructions() {
	for k := uint8(0); k < 8; k++ {
		op := accumulatorOps[k]
		for i := uint8(0); i < 8; i++ {
			src := i
			cycles := uint8(1)
			if src == indirectHL {
				cycles = 2
			}
			DefineInstruction(0x80|k<<3|src, fmt.Sprintf("%s A, %s", op.name, registerNames[src]),
				func(r *Registers, b Bus, _ Control) uint8 {
					op.run(r, readRegister(r, b, src))
					return cycles
				})
		}
		DefineInstruction(0xC6|k<<3, fmt.Sprintf("%s A, d8", op.name),
			func(r *Registers, b Bus, _ Control) uint8 {
				op.run(r, fetch(r, b))
				return 2
			})
	}
}

// generateIncrementInstructions defines the 8 and 16-bit INC and DEC
// instructions, and ADD HL, rr.
//
//	INC r / DEC r
//	INC rr / DEC rr
//	ADD HL, rr
func generateIncrementInstructions() {
	for i := uint8(0); i < 8; i++ {
		reg := i
		cycles := uint8(1)
		if reg == indirectHL {
			cycles = 3
		}
		DefineInstruction(0x04|reg<<3, fmt.Sprintf("INC %s", registerNames[reg]),
			func(r *Registers, b Bus, _ Control) uint8 {
				res := alu.IncByte(readRegister(r, b, reg))
				writeRegister(r, b, reg, res.Byte())
				r.apply(res)
				return cycles
			})
		DefineInstruction(0x05|reg<<3, fmt.Sprintf("DEC %s", registerNames[reg]),
			func(r *Registers, b Bus, _ Control) uint8 {
				res := alu.DecByte(readRegister(r, b, reg))
				writeRegister(r, b, reg, res.Byte())
				r.apply(res)
				return cycles
			})
	}
	for i := uint8(0); i < 4; i++ {
		pair := i
		DefineInstruction(0x03|pair<<4, fmt.Sprintf("INC %s", pairNames[pair]),
			func(r *Registers, _ Bus, _ Control) uint8 {
				r.setPair(pair, alu.IncWord(r.pair(pair)).Value)
				return 2
			})
		DefineInstruction(0x0B|pair<<4, fmt.Sprintf("DEC %s", pairNames[pair]),
			func(r *Registers, _ Bus, _ Control) uint8 {
				r.setPair(pair, alu.DecWord(r.pair(pair)).Value)
				return 2
			})
		DefineInstruction(0x09|pair<<4, fmt.Sprintf("ADD HL, %s", pairNames[pair]),
			func(r *Registers, _ Bus, _ Control) uint8 {
				res := alu.AddWords(r.HL(), r.pair(pair))
				r.SetHL(res.Value)
				r.apply(res)
				return 2
			})
	}
}

func init() {
	generateAccumulatorInstructions()
	generateIncrementInstructions()

	DefineInstruction(0xE8, "ADD SP, e8", func(r *Registers, b Bus, _ Control) uint8 {
		res := alu.AddSPSigned(r.SP, fetch(r, b))
		r.SP = res.Value
		r.apply(res)
		return 4
	})
	DefineInstruction(0x27, "DAA", func(r *Registers, _ Bus, _ Control) uint8 {
		res := alu.Daa(r.A, r.isFlagSet(FlagSubtract), r.isFlagSet(FlagHalfCarry), r.isFlagSet(FlagCarry))
		r.A = res.Byte()
		r.apply(res)
		return 1
	})
	DefineInstruction(0x2F, "CPL", func(r *Registers, _ Bus, _ Control) uint8 {
		r.A = ^r.A
		r.setFlag(FlagSubtract, true)
		r.setFlag(FlagHalfCarry, true)
		return 1
	})
	DefineInstruction(0x37, "SCF", func(r *Registers, _ Bus, _ Control) uint8 {
		r.setFlag(FlagSubtract, false)
		r.setFlag(FlagHalfCarry, false)
		r.setFlag(FlagCarry, true)
		return 1
	})
	DefineInstruction(0x3F, "CCF", func(r *Registers, _ Bus, _ Control) uint8 {
		r.setFlag(FlagSubtract, false)
		r.setFlag(FlagHalfCarry, false)
		r.setFlag(FlagCarry, !r.isFlagSet(FlagCarry))
		return 1
	})
}
