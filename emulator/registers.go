package emulator

const StackDepth = 16

// Registers is the CPU register file. The two timers live in Timers so that
// the 60Hz clock can share them without touching anything else.
type Registers struct {
	// Chip8 has 16 8-bit registers. VF doubles as the flag register for
	// carry, borrow, shifted-out bits and sprite collision.
	V [16]byte

	// The Index Register is a special register used to store memory addresses for use in operations.
	// It's a 16-bit register because the maximum memory address (0xFFF) is too big for an 8-bit register
	I uint16

	// The Program Counter (PC) is a special register that holds the address of the next instruction to execute
	PC uint16

	// 16-level stack used to hold return addresses, SP is the number of
	// entries currently in use
	stack [StackDepth]uint16
	sp    byte
}

// Push places addr on the call stack.
func (r *Registers) Push(addr uint16) error {
	if int(r.sp) >= StackDepth {
		return &Error{Kind: KindStackOverflow}
	}
	r.stack[r.sp] = addr
	r.sp++
	return nil
}

// Pop removes and returns the most recently pushed address.
func (r *Registers) Pop() (uint16, error) {
	if r.sp == 0 {
		return 0, &Error{Kind: KindStackUnderflow}
	}
	r.sp--
	return r.stack[r.sp], nil
}

// Depth is the number of return addresses on the stack.
func (r *Registers) Depth() int {
	return int(r.sp)
}

// Stack returns the live portion of the call stack, oldest first.
func (r *Registers) Stack() []uint16 {
	return append([]uint16(nil), r.stack[:r.sp]...)
}

func (r *Registers) reset() {
	*r = Registers{PC: StartAddress}
}
