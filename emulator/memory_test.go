package emulator

import (
	"errors"
	"testing"

	"github.com/adrichey/chip8vm/internal/test"
)

func TestMemoryMasksAddresses(t *testing.T) {
	var m Memory

	test.DemandSuccess(t, m.WriteByte(0x300, 0xAB))
	test.ExpectEquality(t, m.ReadByte(0x300), byte(0xAB))
	test.ExpectEquality(t, m.ReadByte(0x1300), byte(0xAB))

	test.DemandSuccess(t, m.WriteByte(0x1FFF, 0x12))
	test.ExpectEquality(t, m.ReadByte(0xFFF), byte(0x12))
}

func TestMemoryReadWord(t *testing.T) {
	var m Memory
	test.DemandSuccess(t, m.Load([]byte{0x12, 0x34}, 0x200))
	test.ExpectEquality(t, m.ReadWord(0x200), uint16(0x1234))

	// the low byte of a word at the top of memory comes from 0x000
	test.DemandSuccess(t, m.Load([]byte{0xAA}, 0xFFF))
	test.DemandSuccess(t, m.Load([]byte{0xBB}, 0x000))
	test.ExpectEquality(t, m.ReadWord(0xFFF), uint16(0xAABB))
}

func TestMemoryReservedAreaIsReadOnly(t *testing.T) {
	var m Memory
	err := m.WriteByte(0x1FF, 1)
	test.ExpectError(t, err, ErrOutOfBounds)

	var e *Error
	if errors.As(err, &e) {
		test.ExpectEquality(t, e.Addr, uint16(0x1FF))
	}
	test.ExpectEquality(t, m.ReadByte(0x1FF), byte(0))

	// load is allowed to write there
	test.ExpectSuccess(t, m.Load([]byte{1, 2, 3}, 0x000))
	test.ExpectEquality(t, m.ReadByte(0x002), byte(3))
}

func TestMemoryLoadTooLarge(t *testing.T) {
	var m Memory

	test.ExpectSuccess(t, m.Load(make([]byte, MemorySize-StartAddress), StartAddress))
	test.ExpectError(t, m.Load(make([]byte, MemorySize-StartAddress+1), StartAddress), ErrLoadTooLarge)
	test.ExpectError(t, m.Load([]byte{1}, MemorySize), ErrLoadTooLarge)
	test.ExpectSuccess(t, m.Load(nil, MemorySize))
}

func TestMemorySliceWraps(t *testing.T) {
	var m Memory
	test.DemandSuccess(t, m.Load([]byte{1, 2}, 0xFFE))
	test.DemandSuccess(t, m.Load([]byte{3}, 0x000))

	s := m.Slice(0xFFE, 3)
	test.DemandEquality(t, len(s), 3)
	test.ExpectEquality(t, s[0], byte(1))
	test.ExpectEquality(t, s[1], byte(2))
	test.ExpectEquality(t, s[2], byte(3))
}
