package cpu

import (
	"errors"
	"fmt"
)

// ErrIllegalOpcode is returned when executing an opcode that does not
// exist on the SM83.
var ErrIllegalOpcode = errors.New("cpu: illegal opcode")

// IllegalOpcodeError describes an attempt to execute an illegal opcode.
type IllegalOpcodeError struct {
	Opcode uint8
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("cpu: illegal opcode 0x%02X", e.Opcode)
}

func (e *IllegalOpcodeError) Unwrap() error {
	return ErrIllegalOpcode
}

// Bus is the address space as seen by the CPU. 16-bit accesses are
// little-endian.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
	Read16(addr uint16) uint16
	Write16(addr uint16, value uint16)
}

// Control is the set of callbacks invoked by the STOP, HALT, DI and EI
// instructions (and RETI). The surrounding loop decides what they mean.
type Control interface {
	Stop()
	Halt()
	EnableInterrupts()
	DisableInterrupts()
}

// Instruction is a single entry of a dispatch table. The instruction
// expects PC to point just past its opcode, reads its own operands and
// returns its cost in machine cycles, including the opcode fetch.
type Instruction struct {
	name    string
	opcode  uint8
	illegal bool
	fn      func(r *Registers, b Bus, ctl Control) uint8
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string { return i.name }

// Opcode returns the opcode of the instruction within its page.
func (i Instruction) Opcode() uint8 { return i.opcode }

// Illegal reports whether the opcode does not exist on the SM83.
func (i Instruction) Illegal() bool { return i.illegal }

// Execute runs the instruction. ctl may be nil. Executing an illegal
// instruction changes nothing and returns an *IllegalOpcodeError.
func (i Instruction) Execute(r *Registers, b Bus, ctl Control) (uint8, error) {
	if i.illegal || i.fn == nil {
		return 0, &IllegalOpcodeError{Opcode: i.opcode}
	}
	return i.fn(r, b, ctl), nil
}

func (i Instruction) String() string { return i.name }

var (
	// InstructionSet holds the base page, indexed by opcode.
	InstructionSet [256]Instruction
	// InstructionSetCB holds the page reached through the 0xCB prefix.
	InstructionSetCB [256]Instruction
)

// illegalOpcodes lists the base page opcodes that have no instruction.
// 0xCB is the prefix escape and is only reached through Decode.
var illegalOpcodes = []uint8{
	0xCB, 0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

// DefineInstruction defines the instruction for opcode in InstructionSet.
func DefineInstruction(opcode uint8, name string, fn func(*Registers, Bus, Control) uint8) {
	InstructionSet[opcode] = Instruction{name: name, opcode: opcode, fn: fn}
}

// DefineInstructionCB defines the instruction for opcode in InstructionSetCB.
func DefineInstructionCB(opcode uint8, name string, fn func(*Registers, Bus, Control) uint8) {
	InstructionSetCB[opcode] = Instruction{name: name, opcode: opcode, fn: fn}
}

func init() {
	for _, op := range illegalOpcodes {
		InstructionSet[op] = Instruction{name: fmt.Sprintf("ILLEGAL 0x%02X", op), opcode: op, illegal: true}
	}
}

// Decode returns the instruction starting at pc, following the 0xCB
// prefix when present, and the address of its first operand.
func Decode(b Bus, pc uint16) (Instruction, uint16) {
	op := b.Read(pc)
	if op == 0xCB {
		return InstructionSetCB[b.Read(pc+1)], pc + 2
	}
	return InstructionSet[op], pc + 1
}

// fetch reads the byte at PC and advances PC.
func fetch(r *Registers, b Bus) uint8 {
	v := b.Read(r.PC)
	r.PC++
	return v
}

// fetch16 reads the little-endian word at PC and advances PC.
func fetch16(r *Registers, b Bus) uint16 {
	v := b.Read16(r.PC)
	r.PC += 2
	return v
}

// push pushes a 16-bit value onto the stack, high byte first.
func push(r *Registers, b Bus, v uint16) {
	r.SP--
	b.Write(r.SP, uint8(v>>8))
	r.SP--
	b.Write(r.SP, uint8(v))
}

// pop pops a 16-bit value off the stack.
func pop(r *Registers, b Bus) uint16 {
	v := b.Read16(r.SP)
	r.SP += 2
	return v
}

// registerNames indexes the 3-bit register field of an opcode.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

const indirectHL = 6

// readRegister returns the operand selected by a 3-bit register field,
// going through the bus for (HL).
func readRegister(r *Registers, b Bus, i uint8) uint8 {
	switch i & 7 {
	case 0:
		return r.B
	case 1:
		return r.C
	case 2:
		return r.D
	case 3:
		return r.E
	case 4:
		return r.H
	case 5:
		return r.L
	case indirectHL:
		return b.Read(r.HL())
	}
	return r.A
}

func writeRegister(r *Registers, b Bus, i uint8, v uint8) {
	switch i & 7 {
	case 0:
		r.B = v
	case 1:
		r.C = v
	case 2:
		r.D = v
	case 3:
		r.E = v
	case 4:
		r.H = v
	case 5:
		r.L = v
	case indirectHL:
		b.Write(r.HL(), v)
	default:
		r.A = v
	}
}

var (
	pairNames      = [4]string{"BC", "DE", "HL", "SP"}
	stackPairNames = [4]string{"BC", "DE", "HL", "AF"}
	conditionNames = [4]string{"NZ", "Z", "NC", "C"}
)

// condition evaluates the 2-bit condition field of a conditional jump,
// call or return.
func condition(r *Registers, cc uint8) bool {
	switch cc & 3 {
	case 0:
		return !r.isFlagSet(FlagZero)
	case 1:
		return r.isFlagSet(FlagZero)
	case 2:
		return !r.isFlagSet(FlagCarry)
	}
	return r.isFlagSet(FlagCarry)
}
