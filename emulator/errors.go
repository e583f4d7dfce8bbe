package emulator

import (
	"errors"
	"fmt"
)

// Kind classifies the conditions the interpreter can report.
type Kind int

const (
	KindOutOfBounds Kind = iota + 1
	KindStackOverflow
	KindStackUnderflow
	KindUnknownOpcode
	KindLoadTooLarge
)

func (k Kind) String() string {
	switch k {
	case KindOutOfBounds:
		return "out of bounds"
	case KindStackOverflow:
		return "stack overflow"
	case KindStackUnderflow:
		return "stack underflow"
	case KindUnknownOpcode:
		return "unknown opcode"
	case KindLoadTooLarge:
		return "load too large"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinels for use with errors.Is.
var (
	ErrOutOfBounds    = &Error{Kind: KindOutOfBounds}
	ErrStackOverflow  = &Error{Kind: KindStackOverflow}
	ErrStackUnderflow = &Error{Kind: KindStackUnderflow}
	ErrUnknownOpcode  = &Error{Kind: KindUnknownOpcode}
	ErrLoadTooLarge   = &Error{Kind: KindLoadTooLarge}
)

// Error is returned by every failing operation of the machine. PC and Opcode
// are filled in when the failure happened inside an instruction cycle.
type Error struct {
	Kind   Kind
	PC     uint16
	Opcode uint16
	Addr   uint16

	// set once the error has been attributed to an instruction
	inCycle bool
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindOutOfBounds:
		if e.inCycle {
			return fmt.Sprintf("chip8: %v: address %#03x (opcode %04X at %#03x)", e.Kind, e.Addr, e.Opcode, e.PC)
		}
		return fmt.Sprintf("chip8: %v: address %#03x", e.Kind, e.Addr)
	case KindLoadTooLarge:
		return fmt.Sprintf("chip8: %v: image ends past %#03x (origin %#03x)", e.Kind, MemorySize-1, e.Addr)
	}
	if e.inCycle {
		return fmt.Sprintf("chip8: %v: opcode %04X at %#03x", e.Kind, e.Opcode, e.PC)
	}
	return fmt.Sprintf("chip8: %v", e.Kind)
}

// Is matches any *Error of the same Kind, so the sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// attribute stamps the failing instruction onto err if it is an *Error.
func attribute(err error, pc, opcode uint16) error {
	var e *Error
	if errors.As(err, &e) {
		e.PC = pc
		e.Opcode = opcode
		e.inCycle = true
	}
	return err
}
