package cpu

import "testing"

func TestInstruction_Jumps(t *testing.T) {
	// 0x18 - JR e8
	testInstruction(t, "JR e8", 0x18, func(t *testing.T, inst Instruction) {
		execute(t, inst, 0x03)
		if regs.PC != 0xC004 {
			t.Errorf("expected PC to be 0xC004, got 0x%04X", regs.PC)
		}

		// as the instruction takes a signed byte, ensure that negative values jump backwards
		regs.PC = 0xC500
		execute(t, inst, 0xFE)
		if regs.PC != 0xC4FF {
			t.Errorf("expected PC to be 0xC4FF, got 0x%04X", regs.PC)
		}
	})
	// 0x20 - JR NZ, e8
	testInstruction(t, "JR NZ, e8", 0x20, func(t *testing.T, inst Instruction) {
		regs.SetZF(1)
		execute(t, inst, 0x10)
		if regs.PC != 0xC001 {
			t.Errorf("expected PC to skip the operand, got 0x%04X", regs.PC)
		}

		regs.SetZF(0)
		execute(t, inst, 0x10)
		if regs.PC != 0xC012 {
			t.Errorf("expected PC to be 0xC012, got 0x%04X", regs.PC)
		}
	})
	// 0xC3 - JP a16
	testInstruction(t, "JP a16", 0xC3, func(t *testing.T, inst Instruction) {
		execute(t, inst, 0x34, 0x12)
		if regs.PC != 0x1234 {
			t.Errorf("expected PC to be 0x1234, got 0x%04X", regs.PC)
		}
	})
	// 0xDA - JP C, a16
	testInstruction(t, "JP C, a16", 0xDA, func(t *testing.T, inst Instruction) {
		execute(t, inst, 0x34, 0x12)
		if regs.PC != 0xC002 {
			t.Errorf("expected PC to skip the operand, got 0x%04X", regs.PC)
		}
		regs.SetCF(1)
		execute(t, inst, 0x34, 0x12)
		if regs.PC != 0x1234 {
			t.Errorf("expected PC to be 0x1234, got 0x%04X", regs.PC)
		}
	})
	// 0xE9 - JP HL
	testInstruction(t, "JP HL", 0xE9, func(t *testing.T, inst Instruction) {
		regs.SetHL(0x4000)
		execute(t, inst)
		if regs.PC != 0x4000 {
			t.Errorf("expected PC to be 0x4000, got 0x%04X", regs.PC)
		}
	})
}

func TestInstruction_Calls(t *testing.T) {
	// 0xCD - CALL a16
	testInstruction(t, "CALL a16", 0xCD, func(t *testing.T, inst Instruction) {
		execute(t, inst, 0x42, 0x42)

		if regs.PC != 0x4242 {
			t.Errorf("expected PC to be 0x4242, got 0x%04X", regs.PC)
		}
		if regs.SP != 0xFFFC {
			t.Errorf("expected SP to be 0xFFFC, got 0x%04X", regs.SP)
		}
		// the return address is the byte after the operand
		if bus.Read16(0xFFFC) != 0xC002 {
			t.Errorf("expected 0xC002 on the stack, got 0x%04X", bus.Read16(0xFFFC))
		}
	})
	// 0xC4 - CALL NZ, a16
	testInstruction(t, "CALL NZ, a16", 0xC4, func(t *testing.T, inst Instruction) {
		regs.SetZF(1)
		execute(t, inst, 0x42, 0x42)
		if regs.PC != 0xC002 || regs.SP != 0xFFFE {
			t.Errorf("expected the call to be skipped")
		}
	})
	// 0xC9 - RET
	testInstruction(t, "RET", 0xC9, func(t *testing.T, inst Instruction) {
		regs.SP = 0xFFFC
		bus.Write16(0xFFFC, 0x1234)
		execute(t, inst)
		if regs.PC != 0x1234 || regs.SP != 0xFFFE {
			t.Errorf("expected PC=0x1234 SP=0xFFFE, got PC=0x%04X SP=0x%04X", regs.PC, regs.SP)
		}
	})
	// 0xD8 - RET C
	testInstruction(t, "RET C", 0xD8, func(t *testing.T, inst Instruction) {
		regs.SP = 0xFFFC
		bus.Write16(0xFFFC, 0x1234)
		execute(t, inst)
		if regs.PC != 0xC000 || regs.SP != 0xFFFC {
			t.Errorf("expected the return to be skipped")
		}
		regs.SetCF(1)
		execute(t, inst)
		if regs.PC != 0x1234 {
			t.Errorf("expected PC to be 0x1234, got 0x%04X", regs.PC)
		}
	})
	// 0xD9 - RETI
	testInstruction(t, "RETI", 0xD9, func(t *testing.T, inst Instruction) {
		regs.SP = 0xFFFC
		bus.Write16(0xFFFC, 0x0150)
		execute(t, inst)
		if regs.PC != 0x0150 {
			t.Errorf("expected PC to be 0x0150, got 0x%04X", regs.PC)
		}
		if ctl.ei != 1 || ctl.total() != 1 {
			t.Errorf("expected a single EnableInterrupts, got %+v", *ctl)
		}
	})

	t.Run("call then return", func(t *testing.T) {
		resetState()
		execute(t, InstructionSet[0xCD], 0x00, 0xD0)
		execute(t, InstructionSet[0xC9])
		if regs.PC != 0xC002 || regs.SP != 0xFFFE {
			t.Errorf("expected to return after the call, got PC=0x%04X SP=0x%04X", regs.PC, regs.SP)
		}
	})
}

func TestInstruction_Restarts(t *testing.T) {
	for i := uint8(0); i < 8; i++ {
		opcode := 0xC7 | i<<3
		vector := uint16(i) * 8
		testInstruction(t, InstructionSet[opcode].Name(), opcode, func(t *testing.T, inst Instruction) {
			execute(t, inst)
			if regs.PC != vector {
				t.Errorf("expected PC to be 0x%04X, got 0x%04X", vector, regs.PC)
			}
			if bus.Read16(regs.SP) != 0xC000 {
				t.Errorf("expected 0xC000 on the stack, got 0x%04X", bus.Read16(regs.SP))
			}
		})
	}
}
