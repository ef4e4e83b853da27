package cpu

func init() {
	DefineInstruction(0x00, "NOP", func(*Registers, Bus, Control) uint8 { return 1 })
	// STOP is encoded with a trailing byte on hardware, but the byte is not
	// consumed here. Entering low power mode is up to the control.
	DefineInstruction(0x10, "STOP", func(_ *Registers, _ Bus, ctl Control) uint8 {
		if ctl != nil {
			ctl.Stop()
		}
		return 1
	})
	DefineInstruction(0x76, "HALT", func(_ *Registers, _ Bus, ctl Control) uint8 {
		if ctl != nil {
			ctl.Halt()
		}
		return 1
	})
	DefineInstruction(0xF3, "DI", func(_ *Registers, _ Bus, ctl Control) uint8 {
		if ctl != nil {
			ctl.DisableInterrupts()
		}
		return 1
	})
	DefineInstruction(0xFB, "EI", func(_ *Registers, _ Bus, ctl Control) uint8 {
		if ctl != nil {
			ctl.EnableInterrupts()
		}
		return 1
	})
}
