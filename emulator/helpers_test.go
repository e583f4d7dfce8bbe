package emulator

import (
	"math/rand/v2"
	"testing"

	"github.com/adrichey/chip8vm/internal/test"
)

func newTestChip8(opts ...Option) *Chip8 {
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(1, 2)))}, opts...)
	return New(opts...)
}

// exec places each opcode at the current PC and steps once per opcode.
func exec(t *testing.T, c8 *Chip8, opcodes ...uint16) {
	t.Helper()
	for _, op := range opcodes {
		err := c8.Memory.Load([]byte{byte(op >> 8), byte(op)}, c8.Registers.PC)
		test.DemandSuccess(t, err)
		test.DemandSuccess(t, c8.Step(), Decode(op))
	}
}

// execErr is exec for a single opcode that is expected to fail.
func execErr(t *testing.T, c8 *Chip8, op uint16) error {
	t.Helper()
	err := c8.Memory.Load([]byte{byte(op >> 8), byte(op)}, c8.Registers.PC)
	test.DemandSuccess(t, err)
	return c8.Step()
}
