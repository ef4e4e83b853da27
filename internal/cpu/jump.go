package cpu

import (
	"fmt"
)

// jumpRelative adds the signed offset to PC.
func jumpRelative(r *Registers, offset uint8) {
	r.PC = uint16(int32(r.PC) + int32(int8(offset)))
}

// call pushes the address of the next instruction onto the stack and
// jumps to address.
func call(r *Registers, b Bus, address uint16) {
	push(r, b, r.PC)
	r.PC = address
}

func init() {
	DefineInstruction(0x18, "JR e8", func(r *Registers, b Bus, _ Control) uint8 {
		jumpRelative(r, fetch(r, b))
		return 3
	})
	DefineInstruction(0xC3, "JP a16", func(r *Registers, b Bus, _ Control) uint8 {
		r.PC = fetch16(r, b)
		return 4
	})
	DefineInstruction(0xE9, "JP HL", func(r *Registers, _ Bus, _ Control) uint8 {
		r.PC = r.HL()
		return 1
	})
	DefineInstruction(0xCD, "CALL a16", func(r *Registers, b Bus, _ Control) uint8 {
		call(r, b, fetch16(r, b))
		return 6
	})
	DefineInstruction(0xC9, "RET", func(r *Registers, b Bus, _ Control) uint8 {
		r.PC = pop(r, b)
		return 4
	})
	DefineInstruction(0xD9, "RETI", func(r *Registers, b Bus, ctl Control) uint8 {
		r.PC = pop(r, b)
		if ctl != nil {
			ctl.EnableInterrupts()
		}
		return 4
	})

	// conditional forms
	//
	//	JR cc, e8   2 / 3
	//	JP cc, a16  3 / 4
	//	CALL cc, a16 3 / 6
	//	RET cc      2 / 5
	for i := uint8(0); i < 4; i++ {
		cc := i
		DefineInstruction(0x20|cc<<3, fmt.Sprintf("JR %s, e8", conditionNames[cc]),
			func(r *Registers, b Bus, _ Control) uint8 {
				offset := fetch(r, b)
				if !condition(r, cc) {
					return 2
				}
				jumpRelative(r, offset)
				return 3
			})
		DefineInstruction(0xC2|cc<<3, fmt.Sprintf("JP %s, a16", conditionNames[cc]),
			func(r *Registers, b Bus, _ Control) uint8 {
				address := fetch16(r, b)
				if !condition(r, cc) {
					return 3
				}
				r.PC = address
				return 4
			})
		DefineInstruction(0xC4|cc<<3, fmt.Sprintf("CALL %s, a16", conditionNames[cc]),
			func(r *Registers, b Bus, _ Control) uint8 {
				address := fetch16(r, b)
				if !condition(r, cc) {
					return 3
				}
				call(r, b, address)
				return 6
			})
		DefineInstruction(0xC0|cc<<3, fmt.Sprintf("RET %s", conditionNames[cc]),
			func(r *Registers, b Bus, _ Control) uint8 {
				if !condition(r, cc) {
					return 2
				}
				r.PC = pop(r, b)
				return 5
			})
	}

	// RST n pushes PC and jumps to one of the eight fixed vectors.
	for i := uint8(0); i < 8; i++ {
		vector := uint16(i) << 3
		DefineInstruction(0xC7|i<<3, fmt.Sprintf("RST %02XH", vector),
			func(r *Registers, b Bus, _ Control) uint8 {
				call(r, b, vector)
				return 4
			})
	}
}
