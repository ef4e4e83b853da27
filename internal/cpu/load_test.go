package cpu

import "testing"

func TestInstruction_LoadRegister(t *testing.T) {
	// every LD r, r' copies the source into the destination
	for op := 0x40; op < 0x80; op++ {
		opcode := uint8(op)
		if opcode == 0x76 {
			continue
		}
		dst, src := (opcode>>3)&7, opcode&7
		testInstruction(t, InstructionSet[opcode].Name(), opcode, func(t *testing.T, inst Instruction) {
			regs.SetHL(0xD000)
			want := uint8(0x5A)
			if src == indirectHL {
				bus.mem[0xD000] = want
			} else if src == 4 || src == 5 {
				// H and L are the address, so load what they hold
				want = readRegister(regs, bus, src)
			} else {
				writeRegister(regs, bus, src, want)
			}

			execute(t, inst)

			if got := readRegister(regs, bus, dst); got != want {
				t.Errorf("expected 0x%02X, got 0x%02X", want, got)
			}
		})
	}
}

func TestInstruction_LoadImmediate(t *testing.T) {
	testInstruction(t, "LD A, d8", 0x3E, func(t *testing.T, inst Instruction) {
		execute(t, inst, 0x42)
		if regs.A != 0x42 || regs.PC != 0xC001 {
			t.Errorf("expected A=0x42 PC=0xC001, got A=0x%02X PC=0x%04X", regs.A, regs.PC)
		}
	})
	testInstruction(t, "LD (HL), d8", 0x36, func(t *testing.T, inst Instruction) {
		regs.SetHL(0xD123)
		execute(t, inst, 0x99)
		if bus.mem[0xD123] != 0x99 {
			t.Errorf("expected 0x99 at 0xD123, got 0x%02X", bus.mem[0xD123])
		}
	})
	testInstruction(t, "LD SP, d16", 0x31, func(t *testing.T, inst Instruction) {
		execute(t, inst, 0x34, 0x12)
		if regs.SP != 0x1234 || regs.PC != 0xC002 {
			t.Errorf("expected SP=0x1234 PC=0xC002, got SP=0x%04X PC=0x%04X", regs.SP, regs.PC)
		}
	})
}

func TestInstruction_LoadIndirect(t *testing.T) {
	testInstruction(t, "LD (HL+), A", 0x22, func(t *testing.T, inst Instruction) {
		regs.A = 0x11
		regs.SetHL(0xD0FF)
		execute(t, inst)
		if bus.mem[0xD0FF] != 0x11 || regs.HL() != 0xD100 {
			t.Errorf("expected write then increment, got HL=0x%04X", regs.HL())
		}
	})
	testInstruction(t, "LD A, (HL-)", 0x3A, func(t *testing.T, inst Instruction) {
		bus.mem[0xD000] = 0x22
		regs.SetHL(0xD000)
		execute(t, inst)
		if regs.A != 0x22 || regs.HL() != 0xCFFF {
			t.Errorf("expected read then decrement, got A=0x%02X HL=0x%04X", regs.A, regs.HL())
		}
	})
	testInstruction(t, "LDH (a8), A", 0xE0, func(t *testing.T, inst Instruction) {
		regs.A = 0x80
		execute(t, inst, 0x44)
		if bus.mem[0xFF44] != 0x80 {
			t.Errorf("expected 0x80 at 0xFF44")
		}
	})
	testInstruction(t, "LD A, (C)", 0xF2, func(t *testing.T, inst Instruction) {
		regs.C = 0x80
		bus.mem[0xFF80] = 0x77
		execute(t, inst)
		if regs.A != 0x77 {
			t.Errorf("expected A=0x77, got 0x%02X", regs.A)
		}
	})
	testInstruction(t, "LD (a16), SP", 0x08, func(t *testing.T, inst Instruction) {
		regs.SP = 0xBEEF
		execute(t, inst, 0x00, 0xD0)
		if bus.mem[0xD000] != 0xEF || bus.mem[0xD001] != 0xBE {
			t.Errorf("expected SP stored little-endian")
		}
	})
}

func TestInstruction_LoadHLSPOffset(t *testing.T) {
	testInstruction(t, "LD HL, SP+e8", 0xF8, func(t *testing.T, inst Instruction) {
		regs.SP = 0xFFF8
		regs.SetZF(1)
		execute(t, inst, 0x08)
		if regs.HL() != 0x0000 {
			t.Errorf("expected HL=0x0000, got 0x%04X", regs.HL())
		}
		if regs.ZF() != 0 || regs.NF() != 0 || regs.HF() != 1 || regs.CF() != 1 {
			t.Errorf("unexpected flags %08b", regs.F())
		}
		if regs.SP != 0xFFF8 {
			t.Errorf("expected SP to be unchanged")
		}
	})
}

func TestInstruction_Stack(t *testing.T) {
	testInstruction(t, "PUSH BC", 0xC5, func(t *testing.T, inst Instruction) {
		regs.SetBC(0x1234)
		execute(t, inst)
		if regs.SP != 0xFFFC || bus.mem[0xFFFD] != 0x12 || bus.mem[0xFFFC] != 0x34 {
			t.Errorf("unexpected stack after push, SP=0x%04X", regs.SP)
		}
	})
	testInstruction(t, "POP DE", 0xD1, func(t *testing.T, inst Instruction) {
		regs.SP = 0xFFFC
		bus.mem[0xFFFC] = 0x78
		bus.mem[0xFFFD] = 0x56
		execute(t, inst)
		if regs.DE() != 0x5678 || regs.SP != 0xFFFE {
			t.Errorf("expected DE=0x5678 SP=0xFFFE, got DE=0x%04X SP=0x%04X", regs.DE(), regs.SP)
		}
	})
	testInstruction(t, "POP AF", 0xF1, func(t *testing.T, inst Instruction) {
		regs.SP = 0xFFFC
		bus.mem[0xFFFC] = 0xFF
		bus.mem[0xFFFD] = 0x12
		execute(t, inst)
		if regs.A != 0x12 || regs.F() != 0xF0 {
			t.Errorf("expected A=0x12 F=0xF0, got A=0x%02X F=0x%02X", regs.A, regs.F())
		}
	})
	testInstruction(t, "PUSH AF", 0xF5, func(t *testing.T, inst Instruction) {
		regs.SetAF(0xABFF)
		execute(t, inst)
		if bus.mem[0xFFFD] != 0xAB || bus.mem[0xFFFC] != 0xF0 {
			t.Errorf("expected AF pushed as 0xABF0")
		}
	})
}
