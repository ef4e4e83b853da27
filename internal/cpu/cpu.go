package cpu

import (
	"errors"

	"github.com/thelolagemann/gomeboy-core/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the CPU in ticks per second.
	ClockSpeed = 4194304
	// TicksPerCycle is the number of clock ticks in a machine cycle.
	TicksPerCycle = 4
)

type mode = uint8

const (
	// ModeNormal is the normal CPU mode.
	ModeNormal mode = iota
	// ModeHalt is entered by HALT and left by Resume.
	ModeHalt
	// ModeStop is entered by STOP and left by Resume.
	ModeStop
)

// CPU drives the dispatch tables: it fetches the opcode at PC, executes
// the matching instruction and keeps count of the elapsed machine cycles.
// Unless another Control is given, the CPU is its own control and keeps
// track of the halt, stop and interrupt master enable state. Servicing
// interrupts is left to the caller.
type CPU struct {
	// Registers contains the 8-bit registers, SP and PC.
	Registers

	// Debug enables the LD B, B software breakpoint.
	Debug bool
	// DebugBreakpoint is set when a breakpoint was hit.
	DebugBreakpoint bool

	bus    Bus
	ctl    Control
	log    log.Logger
	cycles uint64

	mode     mode
	ime      bool
	imeDelay bool
}

// Opt configures a CPU.
type Opt func(c *CPU)

// WithControl replaces the CPU's own control callbacks.
func WithControl(ctl Control) Opt {
	return func(c *CPU) {
		c.ctl = ctl
	}
}

// WithLogger sets the logger used to report illegal opcodes.
func WithLogger(l log.Logger) Opt {
	return func(c *CPU) {
		c.log = l
	}
}

// WithRegisters sets the initial register values.
func WithRegisters(r Registers) Opt {
	return func(c *CPU) {
		c.Registers = r
	}
}

// NewCPU returns a CPU reading and writing through bus.
func NewCPU(bus Bus, opts ...Opt) *CPU {
	c := &CPU{
		bus: bus,
		log: log.NewNullLogger(),
	}
	c.ctl = c
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Step executes a single instruction and returns its cost in machine
// cycles. A halted or stopped CPU idles for one cycle. An illegal opcode
// leaves PC on the opcode and returns an error wrapping ErrIllegalOpcode.
func (c *CPU) Step() (uint8, error) {
	if c.mode != ModeNormal {
		c.cycles++
		return 1, nil
	}

	enableIME := c.imeDelay
	pc := c.PC

	inst, next := Decode(c.bus, c.PC)
	c.PC = next
	cycles, err := inst.Execute(&c.Registers, c.bus, c.ctl)
	if err != nil {
		c.PC = pc
		var illegal *IllegalOpcodeError
		if errors.As(err, &illegal) {
			c.log.Errorf("illegal opcode 0x%02X at 0x%04X", illegal.Opcode, pc)
		}
		return 0, err
	}

	// EI takes effect after the instruction following it
	if enableIME && c.imeDelay {
		c.ime = true
		c.imeDelay = false
	}
	if c.Debug && inst.Opcode() == 0x40 && next == pc+1 {
		c.DebugBreakpoint = true
	}

	c.cycles += uint64(cycles)
	return cycles, nil
}

// Cycles returns the number of machine cycles executed so far.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// Ticks returns the number of clock ticks executed so far.
func (c *CPU) Ticks() uint64 {
	return c.cycles * TicksPerCycle
}

// Mode returns the current CPU mode.
func (c *CPU) Mode() uint8 {
	return c.mode
}

// IME reports whether interrupts are enabled.
func (c *CPU) IME() bool {
	return c.ime
}

// Resume leaves the halt or stop mode.
func (c *CPU) Resume() {
	c.mode = ModeNormal
}

// Stop implements Control.
func (c *CPU) Stop() {
	c.mode = ModeStop
}

// Halt implements Control.
func (c *CPU) Halt() {
	c.mode = ModeHalt
}

// EnableInterrupts implements Control. The interrupt master enable is
// set once the next instruction has executed.
func (c *CPU) EnableInterrupts() {
	if !c.ime {
		c.imeDelay = true
	}
}

// DisableInterrupts implements Control.
func (c *CPU) DisableInterrupts() {
	c.ime = false
	c.imeDelay = false
}

// Reset zeroes the registers and leaves the CPU running with interrupts
// disabled.
func (c *CPU) Reset() {
	c.Registers.Reset()
	c.mode = ModeNormal
	c.ime = false
	c.imeDelay = false
	c.cycles = 0
	c.DebugBreakpoint = false
}
