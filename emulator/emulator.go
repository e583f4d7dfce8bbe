package emulator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
)

// Chip8 is the virtual machine: memory, registers, timers, screen and keypad
// plus the fetch-decode-execute cycle that ties them together.
type Chip8 struct {
	Memory    Memory
	Registers Registers
	Timers    Timers
	Screen    Screen
	Keypad    Keypad

	quirks     Quirks
	log        *slog.Logger
	randomByte func() byte

	wait   keyWait
	cycles uint64
}

// Option configures a Chip8 in New.
type Option func(*Chip8)

// WithQuirks selects interpreter dialect behaviour.
func WithQuirks(q Quirks) Option {
	return func(c8 *Chip8) { c8.quirks = q }
}

// WithLogger sets the logger used for load messages and, at debug level, an
// execution trace.
func WithLogger(l *slog.Logger) Option {
	return func(c8 *Chip8) { c8.log = l }
}

// WithRand sets the source for the RND instruction.
func WithRand(r *rand.Rand) Option {
	return func(c8 *Chip8) {
		c8.randomByte = func() byte { return byte(r.IntN(256)) }
	}
}

// New returns a machine that has been Reset and is ready for LoadProgram.
func New(opts ...Option) *Chip8 {
	c8 := &Chip8{
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		randomByte: randomByte,
	}
	for _, opt := range opts {
		opt(c8)
	}
	c8.Reset()
	return c8
}

// Reset zeroes memory and registers, stops the timers, clears the screen,
// copies the font set into low memory and points PC at the program start.
// The keypad reflects the host and is left alone.
func (c8 *Chip8) Reset() {
	c8.Memory.reset()
	if err := c8.Memory.Load(fontset[:], FONTSET_START_ADDRESS); err != nil {
		panic(err)
	}
	c8.Registers.reset()
	c8.Timers.reset()
	c8.Screen.Clear()
	c8.wait = keyWait{}
	c8.cycles = 0
}

// LoadProgram copies a ROM image into memory at 0x200.
func (c8 *Chip8) LoadProgram(rom []byte) error {
	if err := c8.Memory.Load(rom, StartAddress); err != nil {
		return fmt.Errorf("load program: %w", err)
	}
	c8.log.Info("ROM loaded", "bytes", len(rom), "origin", fmt.Sprintf("%#03x", StartAddress))
	return nil
}

// Quirks returns the dialect the machine was configured with.
func (c8 *Chip8) Quirks() Quirks {
	return c8.quirks
}

// Cycles is the number of instructions completed since Reset. A key wait that
// has not yet seen a key press still counts as a cycle each time it runs.
func (c8 *Chip8) Cycles() uint64 {
	return c8.cycles
}

// WaitingForKey reports whether the machine is parked on an Fx0A instruction.
func (c8 *Chip8) WaitingForKey() bool {
	return c8.wait.active
}

// Current decodes the instruction at PC without executing it.
func (c8 *Chip8) Current() Instruction {
	return Decode(c8.Memory.ReadWord(c8.Registers.PC))
}

/*
Step runs one cycle of this primitive CPU:
- Fetch the next instruction in the form of an opcode
- Decode the instruction to determine what operation needs to occur
- Execute the instruction

PC is advanced by 2 before the instruction executes, so jumps simply assign PC and skips add another 2.

An opcode that decodes to nothing is reported before anything is touched. Any other failure puts PC back on the
failing instruction and leaves the rest of the machine as it was. The error is always an *Error; what to do about it
is up to the caller.
*/
func (c8 *Chip8) Step() error {
	pc := c8.Registers.PC
	in := Decode(c8.Memory.ReadWord(pc))

	if in.Op == OpUnknown || (in.Op == OpSYS && !c8.quirks.SysIsNop) {
		return attribute(&Error{Kind: KindUnknownOpcode}, pc, in.Raw)
	}

	if c8.log.Enabled(context.Background(), slog.LevelDebug) {
		c8.log.Debug(
			"exec",
			"pc", fmt.Sprintf("0x%03x", pc),
			"opcode", fmt.Sprintf("0x%04x", in.Raw),
			"instr", in.String(),
		)
	}

	c8.Registers.PC = (pc + 2) & AddressMask

	if err := c8.execute(in); err != nil {
		c8.Registers.PC = pc
		return attribute(err, pc, in.Raw)
	}

	c8.cycles++
	return nil
}

func (c8 *Chip8) execute(in Instruction) error {
	switch in.Op {
	case OpCLS:
		c8.op00E0()
	case OpRET:
		return c8.op00EE()
	case OpSYS:
		// only reached when SysIsNop is set
	case OpJP:
		c8.op1nnn(in)
	case OpCALL:
		return c8.op2nnn(in)
	case OpSEImm:
		c8.op3xkk(in)
	case OpSNEImm:
		c8.op4xkk(in)
	case OpSEReg:
		c8.op5xy0(in)
	case OpLDImm:
		c8.op6xkk(in)
	case OpADDImm:
		c8.op7xkk(in)
	case OpLDReg:
		c8.op8xy0(in)
	case OpOR:
		c8.op8xy1(in)
	case OpAND:
		c8.op8xy2(in)
	case OpXOR:
		c8.op8xy3(in)
	case OpADDReg:
		c8.op8xy4(in)
	case OpSUB:
		c8.op8xy5(in)
	case OpSHR:
		c8.op8xy6(in)
	case OpSUBN:
		c8.op8xy7(in)
	case OpSHL:
		c8.op8xyE(in)
	case OpSNEReg:
		c8.op9xy0(in)
	case OpLDI:
		c8.opAnnn(in)
	case OpJPV0:
		c8.opBnnn(in)
	case OpRND:
		c8.opCxkk(in)
	case OpDRW:
		c8.opDxyn(in)
	case OpSKP:
		c8.opEx9E(in)
	case OpSKNP:
		c8.opExA1(in)
	case OpLDVxDT:
		c8.opFx07(in)
	case OpLDVxK:
		c8.opFx0A(in)
	case OpLDDTVx:
		c8.opFx15(in)
	case OpLDSTVx:
		c8.opFx18(in)
	case OpADDI:
		c8.opFx1E(in)
	case OpLDF:
		c8.opFx29(in)
	case OpLDB:
		return c8.opFx33(in)
	case OpLDIVx:
		return c8.opFx55(in)
	case OpLDVxI:
		c8.opFx65(in)
	default:
		return &Error{Kind: KindUnknownOpcode}
	}
	return nil
}

func randomByte() byte {
	return byte(rand.IntN(256))
}
