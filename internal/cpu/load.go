package cpu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-core/internal/cpu/alu"
)

// generateLoadRegisterInstructions defines LD r, r' for 0x40-0x7F, except
// 0x76 which is HALT.
//
//	LD r, r'
//	r, r' = B, C, D, E, H, L, (HL), A
func generateLoadRegisterInstructions() {
	for op := 0x40; op < 0x80; op++ {
		if op == 0x76 {
			continue
		}
		dst, src := uint8(op>>3)&7, uint8(op)&7

		cycles := uint8(1)
		if dst == indirectHL || src == indirectHL {
			cycles = 2
		}
		DefineInstruction(uint8(op), fmt.Sprintf("LD %s, %s", registerNames[dst], registerNames[src]),
			func(r *Registers, b Bus, _ Control) uint8 {
				writeRegister(r, b, dst, readRegister(r, b, src))
				return cycles
			})
	}
}

// generateLoadImmediateInstructions defines the immediate loads.
//
//	LD r, d8
//	LD rr, d16
func generateLoadImmediateInstructions() {
	for i := uint8(0); i < 8; i++ {
		reg := i
		cycles := uint8(2)
		if reg == indirectHL {
			cycles = 3
		}
		DefineInstruction(reg<<3|0x06, fmt.Sprintf("LD %s, d8", registerNames[reg]),
			func(r *Registers, b Bus, _ Control) uint8 {
				writeRegister(r, b, reg, fetch(r, b))
				return cycles
			})
	}
	for i := uint8(0); i < 4; i++ {
		pair := i
		DefineInstruction(pair<<4|0x01, fmt.Sprintf("LD %s, d16", pairNames[pair]),
			func(r *Registers, b Bus, _ Control) uint8 {
				r.setPair(pair, fetch16(r, b))
				return 3
			})
	}
}

// generateStackInstructions defines PUSH and POP. POP AF goes through
// SetAF, so the low nibble of F is dropped.
//
//	PUSH rr
//	POP rr
//	rr = BC, DE, HL, AF
func generateStackInstructions() {
	for i := uint8(0); i < 4; i++ {
		pair := i
		DefineInstruction(0xC5|pair<<4, fmt.Sprintf("PUSH %s", stackPairNames[pair]),
			func(r *Registers, b Bus, _ Control) uint8 {
				push(r, b, r.stackPair(pair))
				return 4
			})
		DefineInstruction(0xC1|pair<<4, fmt.Sprintf("POP %s", stackPairNames[pair]),
			func(r *Registers, b Bus, _ Control) uint8 {
				r.setStackPair(pair, pop(r, b))
				return 3
			})
	}
}

func init() {
	generateLoadRegisterInstructions()
	generateLoadImmediateInstructions()
	generateStackInstructions()

	DefineInstruction(0x02, "LD (BC), A", func(r *Registers, b Bus, _ Control) uint8 {
		b.Write(r.BC(), r.A)
		return 2
	})
	DefineInstruction(0x12, "LD (DE), A", func(r *Registers, b Bus, _ Control) uint8 {
		b.Write(r.DE(), r.A)
		return 2
	})
	DefineInstruction(0x22, "LD (HL+), A", func(r *Registers, b Bus, _ Control) uint8 {
		b.Write(r.HL(), r.A)
		r.SetHL(r.HL() + 1)
		return 2
	})
	DefineInstruction(0x32, "LD (HL-), A", func(r *Registers, b Bus, _ Control) uint8 {
		b.Write(r.HL(), r.A)
		r.SetHL(r.HL() - 1)
		return 2
	})
	DefineInstruction(0x0A, "LD A, (BC)", func(r *Registers, b Bus, _ Control) uint8 {
		r.A = b.Read(r.BC())
		return 2
	})
	DefineInstruction(0x1A, "LD A, (DE)", func(r *Registers, b Bus, _ Control) uint8 {
		r.A = b.Read(r.DE())
		return 2
	})
	DefineInstruction(0x2A, "LD A, (HL+)", func(r *Registers, b Bus, _ Control) uint8 {
		r.A = b.Read(r.HL())
		r.SetHL(r.HL() + 1)
		return 2
	})
	DefineInstruction(0x3A, "LD A, (HL-)", func(r *Registers, b Bus, _ Control) uint8 {
		r.A = b.Read(r.HL())
		r.SetHL(r.HL() - 1)
		return 2
	})
	DefineInstruction(0x08, "LD (a16), SP", func(r *Registers, b Bus, _ Control) uint8 {
		b.Write16(fetch16(r, b), r.SP)
		return 5
	})
	DefineInstruction(0xE0, "LDH (a8), A", func(r *Registers, b Bus, _ Control) uint8 {
		b.Write(0xFF00+uint16(fetch(r, b)), r.A)
		return 3
	})
	DefineInstruction(0xF0, "LDH A, (a8)", func(r *Registers, b Bus, _ Control) uint8 {
		r.A = b.Read(0xFF00 + uint16(fetch(r, b)))
		return 3
	})
	DefineInstruction(0xE2, "LD (C), A", func(r *Registers, b Bus, _ Control) uint8 {
		b.Write(0xFF00+uint16(r.C), r.A)
		return 2
	})
	DefineInstruction(0xF2, "LD A, (C)", func(r *Registers, b Bus, _ Control) uint8 {
		r.A = b.Read(0xFF00 + uint16(r.C))
		return 2
	})
	DefineInstruction(0xEA, "LD (a16), A", func(r *Registers, b Bus, _ Control) uint8 {
		b.Write(fetch16(r, b), r.A)
		return 4
	})
	DefineInstruction(0xFA, "LD A, (a16)", func(r *Registers, b Bus, _ Control) uint8 {
		r.A = b.Read(fetch16(r, b))
		return 4
	})
	DefineInstruction(0xF8, "LD HL, SP+e8", func(r *Registers, b Bus, _ Control) uint8 {
		res := alu.AddSPSigned(r.SP, fetch(r, b))
		r.SetHL(res.Value)
		r.apply(res)
		return 3
	})
	DefineInstruction(0xF9, "LD SP, HL", func(r *Registers, _ Bus, _ Control) uint8 {
		r.SP = r.HL()
		return 2
	})
}
