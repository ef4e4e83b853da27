package cpu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-core/internal/cpu/alu"
)

// generateBitInstructions defines BIT, RES and SET for every bit and
// register of the CB page.
//
//	BIT b, r  0x40-0x7F
//	RES b, r  0x80-0xBF
//	SET b, r  0xC0-0xFF
func generateBitInstructions() {
	for bit := uint8(0); bit < 8; bit++ {
		for i := uint8(0); i < 8; i++ {
			b, reg := bit, i

			// BIT only reads (HL), RES and SET read and write it back
			testCycles, writeCycles := uint8(2), uint8(2)
			if reg == indirectHL {
				testCycles, writeCycles = 3, 4
			}

			DefineInstructionCB(0x40|b<<3|reg, fmt.Sprintf("BIT %d, %s", b, registerNames[reg]),
				func(r *Registers, bus Bus, _ Control) uint8 {
					r.apply(alu.Bit(b, readRegister(r, bus, reg)))
					return testCycles
				})
			DefineInstructionCB(0x80|b<<3|reg, fmt.Sprintf("RES %d, %s", b, registerNames[reg]),
				func(r *Registers, bus Bus, _ Control) uint8 {
					writeRegister(r, bus, reg, alu.Res(b, readRegister(r, bus, reg)).Byte())
					return writeCycles
				})
			DefineInstructionCB(0xC0|b<<3|reg, fmt.Sprintf("SET %d, %s", b, registerNames[reg]),
				func(r *Registers, bus Bus, _ Control) uint8 {
					writeRegister(r, bus, reg, alu.Set(b, readRegister(r, bus, reg)).Byte())
					return writeCycles
				})
		}
	}
}

func init() {
	generateBitInstructions()
}
