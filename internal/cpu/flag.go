package cpu

import "github.com/thelolagemann/gomeboy-core/internal/cpu/alu"

// Flag masks of the F register.
const (
	FlagZero      = alu.FlagZero
	FlagSubtract  = alu.FlagSubtract
	FlagHalfCarry = alu.FlagHalfCarry
	FlagCarry     = alu.FlagCarry
)
