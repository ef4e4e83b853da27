package cpu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-core/internal/cpu/alu"
)

// shiftOps is ordered by bits 3-5 of the CB page opcodes 0x00-0x3F.
var shiftOps = [8]struct {
	name string
	fn   func(r *Registers, n uint8) alu.Result
}{
	{"RLC", func(_ *Registers, n uint8) alu.Result { return alu.Rlc(n) }},
	{"RRC", func(_ *Registers, n uint8) alu.Result { return alu.Rrc(n) }},
	{"RL", func(r *Registers, n uint8) alu.Result { return alu.Rl(n, r.isFlagSet(FlagCarry)) }},
	{"RR", func(r *Registers, n uint8) alu.Result { return alu.Rr(n, r.isFlagSet(FlagCarry)) }},
	{"SLA", func(_ *Registers, n uint8) alu.Result { return alu.Sla(n) }},
	{"SRA", func(_ *Registers, n uint8) alu.Result { return alu.Sra(n) }},
	{"SWAP", func(_ *Registers, n uint8) alu.Result { return alu.Swap(n) }},
	{"SRL", func(_ *Registers, n uint8) alu.Result { return alu.Srl(n) }},
}

// generateShiftInstructions defines the rotate, shift and swap
// instructions of the CB page.
//
//	OP r
//	OP = RLC, RRC, RL, RR, SLA, SRA, SWAP, SRL
//	r = B, C, D, E, H, L, (HL), A
func generateShiftInstructions() {
	for k := uint8(0); k < 8; k++ {
		op := shiftOps[k]
		for i := uint8(0); i < 8; i++ {
			reg := i
			cycles := uint8(2)
			if reg == indirectHL {
				cycles = 4
			}
			DefineInstructionCB(k<<3|reg, fmt.Sprintf("%s %s", op.name, registerNames[reg]),
				func(r *Registers, b Bus, _ Control) uint8 {
					res := op.fn(r, readRegister(r, b, reg))
					writeRegister(r, b, reg, res.Byte())
					r.apply(res)
					return cycles
				})
		}
	}
}

// rotateAccumulator wraps a rotate for the base page forms, which always
// reset the zero flag.
func rotateAccumulator(fn func(r *Registers, n uint8) alu.Result) func(*Registers, Bus, Control) uint8 {
	return func(r *Registers, _ Bus, _ Control) uint8 {
		res := fn(r, r.A)
		r.A = res.Byte()
		r.apply(res)
		r.setFlag(FlagZero, false)
		return 1
	}
}

func init() {
	generateShiftInstructions()

	DefineInstruction(0x07, "RLCA", rotateAccumulator(shiftOps[0].fn))
	DefineInstruction(0x0F, "RRCA", rotateAccumulator(shiftOps[1].fn))
	DefineInstruction(0x17, "RLA", rotateAccumulator(shiftOps[2].fn))
	DefineInstruction(0x1F, "RRA", rotateAccumulator(shiftOps[3].fn))
}
