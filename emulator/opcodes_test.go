package emulator

import (
	"errors"
	"testing"

	"github.com/adrichey/chip8vm/internal/test"
)

func TestOpcodeCLS(t *testing.T) {
	c8 := newTestChip8()
	c8.Screen.DrawSprite(0, 0, []byte{0xFF})
	exec(t, c8, 0x00E0)

	frame, _ := c8.Screen.Snapshot()
	test.ExpectEquality(t, frame, Frame{})
	test.ExpectEquality(t, c8.Registers.PC, uint16(0x202))
}

func TestOpcodeJP(t *testing.T) {
	c8 := newTestChip8()
	exec(t, c8, 0x1A2A)
	test.ExpectEquality(t, c8.Registers.PC, uint16(0xA2A))
}

func TestOpcodeCallRet(t *testing.T) {
	c8 := newTestChip8()
	exec(t, c8, 0x2ABC)
	test.ExpectEquality(t, c8.Registers.PC, uint16(0xABC))
	test.ExpectEquality(t, c8.Registers.Depth(), 1)
	test.ExpectEquality(t, c8.Registers.Stack()[0], uint16(0x202))

	exec(t, c8, 0x00EE)
	test.ExpectEquality(t, c8.Registers.PC, uint16(0x202))
	test.ExpectEquality(t, c8.Registers.Depth(), 0)
}

func TestOpcodeCallOverflow(t *testing.T) {
	c8 := newTestChip8()

	// a subroutine that calls itself
	test.DemandSuccess(t, c8.LoadProgram([]byte{0x22, 0x00}))
	for i := 0; i < StackDepth; i++ {
		test.DemandSuccess(t, c8.Step(), i)
	}

	err := c8.Step()
	test.ExpectError(t, err, ErrStackOverflow)
	test.ExpectEquality(t, c8.Registers.PC, uint16(0x200))
	test.ExpectEquality(t, c8.Registers.Depth(), 16)

	var e *Error
	if test.ExpectSuccess(t, errors.As(err, &e)) {
		test.ExpectEquality(t, e.PC, uint16(0x200))
		test.ExpectEquality(t, e.Opcode, uint16(0x2200))
	}
}

func TestOpcodeRetUnderflow(t *testing.T) {
	c8 := newTestChip8()
	err := execErr(t, c8, 0x00EE)
	test.ExpectError(t, err, ErrStackUnderflow)
	test.ExpectEquality(t, c8.Registers.PC, uint16(0x200))
}

func TestOpcodeSkips(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		skip   bool
	}{
		{"SE Vx, byte equal", 0x31FE, true},
		{"SE Vx, byte differ", 0x31FA, false},
		{"SNE Vx, byte equal", 0x41FE, false},
		{"SNE Vx, byte differ", 0x41FA, true},
		{"SE Vx, Vy equal", 0x5120, true},
		{"SE Vx, Vy differ", 0x5130, false},
		{"SNE Vx, Vy equal", 0x9120, false},
		{"SNE Vx, Vy differ", 0x9130, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c8 := newTestChip8()
			c8.Registers.V[1] = 0xFE
			c8.Registers.V[2] = 0xFE
			c8.Registers.V[3] = 0x01
			exec(t, c8, tt.opcode)

			want := uint16(0x202)
			if tt.skip {
				want = 0x204
			}
			test.ExpectEquality(t, c8.Registers.PC, want)
		})
	}
}

func TestOpcodeLoadAdd(t *testing.T) {
	c8 := newTestChip8()
	exec(t, c8, 0x61AA, 0x621A, 0x6A15)
	test.ExpectEquality(t, c8.Registers.V[1], byte(0xAA))
	test.ExpectEquality(t, c8.Registers.V[2], byte(0x1A))
	test.ExpectEquality(t, c8.Registers.V[10], byte(0x15))
	test.ExpectEquality(t, c8.Registers.PC, uint16(0x206))

	// 7xkk wraps and does not touch VF
	c8.Registers.V[0xF] = 7
	exec(t, c8, 0x7160)
	test.ExpectEquality(t, c8.Registers.V[1], byte(0x0A))
	test.ExpectEquality(t, c8.Registers.V[0xF], byte(7))

	exec(t, c8, 0x8010)
	test.ExpectEquality(t, c8.Registers.V[0], byte(0x0A))
}

func TestOpcodeBitwise(t *testing.T) {
	tests := []struct {
		opcode uint16
		want   byte
	}{
		{0x8231, 0b11101110},
		{0x8232, 0b01001100},
		{0x8233, 0b10100010},
	}

	for _, tt := range tests {
		c8 := newTestChip8()
		c8.Registers.V[2] = 0b01101100
		c8.Registers.V[3] = 0b11001110
		exec(t, c8, tt.opcode)
		test.ExpectEquality(t, c8.Registers.V[2], tt.want, Decode(tt.opcode))
	}
}

func TestOpcodeArithmetic(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		vx, vy byte
		want   byte
		flag   byte
	}{
		{"ADD no carry", 0x8124, 10, 100, 110, 0},
		{"ADD carry", 0x8124, 110, 250, 0x68, 1},
		{"ADD exact 256", 0x8124, 128, 128, 0, 1},
		{"SUB no borrow", 0x8125, 10, 3, 7, 1},
		{"SUB equal", 0x8125, 5, 5, 0, 1},
		{"SUB borrow", 0x8125, 3, 10, 249, 0},
		{"SUBN no borrow", 0x8127, 3, 10, 7, 1},
		{"SUBN borrow", 0x8127, 10, 3, 249, 0},
		{"SHR odd", 0x8126, 0b00000101, 0xFF, 0b00000010, 1},
		{"SHR even", 0x8126, 0b00000100, 0xFF, 0b00000010, 0},
		{"SHL high", 0x812E, 0b10000001, 0x00, 0b00000010, 1},
		{"SHL low", 0x812E, 0b01000001, 0xFF, 0b10000010, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c8 := newTestChip8()
			c8.Registers.V[1] = tt.vx
			c8.Registers.V[2] = tt.vy
			exec(t, c8, tt.opcode)
			test.ExpectEquality(t, c8.Registers.V[1], tt.want)
			test.ExpectEquality(t, c8.Registers.V[0xF], tt.flag)
			test.ExpectEquality(t, c8.Registers.V[2], tt.vy)
		})
	}
}

func TestOpcodeFlagWinsOverResult(t *testing.T) {
	c8 := newTestChip8()
	c8.Registers.V[0xF] = 200
	c8.Registers.V[1] = 100
	exec(t, c8, 0x8F14)
	test.ExpectEquality(t, c8.Registers.V[0xF], byte(1))
}

func TestOpcodeShiftQuirk(t *testing.T) {
	c8 := newTestChip8(WithQuirks(Quirks{ShiftUsesVy: true}))
	c8.Registers.V[1] = 0
	c8.Registers.V[2] = 0b00000011
	exec(t, c8, 0x8126)
	test.ExpectEquality(t, c8.Registers.V[1], byte(1))
	test.ExpectEquality(t, c8.Registers.V[0xF], byte(1))

	c8.Registers.V[2] = 0b10000000
	exec(t, c8, 0x812E)
	test.ExpectEquality(t, c8.Registers.V[1], byte(0))
	test.ExpectEquality(t, c8.Registers.V[0xF], byte(1))
}

func TestOpcodeIndex(t *testing.T) {
	c8 := newTestChip8()
	exec(t, c8, 0xAFAF)
	test.ExpectEquality(t, c8.Registers.I, uint16(0xFAF))
	test.ExpectEquality(t, c8.Registers.PC, uint16(0x202))

	c8.Registers.V[5] = 0x10
	exec(t, c8, 0xF51E)
	test.ExpectEquality(t, c8.Registers.I, uint16(0xFBF))
}

func TestOpcodeJumpOffset(t *testing.T) {
	c8 := newTestChip8()
	c8.Registers.V[0] = 0x10
	c8.Registers.V[3] = 0x20
	exec(t, c8, 0xB300)
	test.ExpectEquality(t, c8.Registers.PC, uint16(0x310))

	c8 = newTestChip8(WithQuirks(Quirks{JumpUsesVx: true}))
	c8.Registers.V[0] = 0x10
	c8.Registers.V[3] = 0x20
	exec(t, c8, 0xB300)
	test.ExpectEquality(t, c8.Registers.PC, uint16(0x320))

	// the target stays inside the address space
	c8 = newTestChip8()
	c8.Registers.V[0] = 0xFF
	exec(t, c8, 0xBFFF)
	test.ExpectEquality(t, c8.Registers.PC, uint16(0x0FE))
}

func TestOpcodeRND(t *testing.T) {
	c8 := newTestChip8()
	for i := 0; i < 50; i++ {
		exec(t, c8, 0xC30F)
		if c8.Registers.V[3]&0xF0 != 0 {
			t.Fatalf("random value %02x escaped mask", c8.Registers.V[3])
		}
	}

	exec(t, c8, 0xC300)
	test.ExpectEquality(t, c8.Registers.V[3], byte(0))
}

func TestOpcodeDRW(t *testing.T) {
	c8 := newTestChip8()
	c8.Registers.V[0] = 2
	c8.Registers.V[1] = 3
	c8.Registers.I = 0x300
	test.DemandSuccess(t, c8.Memory.Load([]byte{0xC0, 0x40}, 0x300))

	exec(t, c8, 0xD012)
	test.ExpectEquality(t, c8.Registers.V[0xF], byte(0))
	test.ExpectSuccess(t, c8.Screen.Pixel(2, 3))
	test.ExpectSuccess(t, c8.Screen.Pixel(3, 3))
	test.ExpectFailure(t, c8.Screen.Pixel(2, 4))
	test.ExpectSuccess(t, c8.Screen.Pixel(3, 4))

	exec(t, c8, 0xD012)
	test.ExpectEquality(t, c8.Registers.V[0xF], byte(1))
	test.ExpectFailure(t, c8.Screen.Pixel(3, 4))

	// a zero height sprite draws nothing and clears the flag
	exec(t, c8, 0xD010)
	test.ExpectEquality(t, c8.Registers.V[0xF], byte(0))
}

func TestOpcodeKeySkips(t *testing.T) {
	c8 := newTestChip8()
	c8.Registers.V[4] = 0xB

	exec(t, c8, 0xE49E)
	test.ExpectEquality(t, c8.Registers.PC, uint16(0x202))
	exec(t, c8, 0xE4A1)
	test.ExpectEquality(t, c8.Registers.PC, uint16(0x206))

	c8.Keypad.SetPressed(0xB, true)
	exec(t, c8, 0xE49E)
	test.ExpectEquality(t, c8.Registers.PC, uint16(0x20A))
	exec(t, c8, 0xE4A1)
	test.ExpectEquality(t, c8.Registers.PC, uint16(0x20C))
}

func TestOpcodeTimers(t *testing.T) {
	c8 := newTestChip8()
	c8.Registers.V[5] = 30
	c8.Registers.V[6] = 4

	exec(t, c8, 0xF515, 0xF618)
	test.ExpectEquality(t, c8.Timers.Delay(), byte(30))
	test.ExpectEquality(t, c8.Timers.Sound(), byte(4))
	test.ExpectSuccess(t, c8.Timers.ToneActive())

	c8.Timers.Tick()
	exec(t, c8, 0xF707)
	test.ExpectEquality(t, c8.Registers.V[7], byte(29))
}

func TestOpcodeWaitForKey(t *testing.T) {
	c8 := newTestChip8()

	// a key held down before the wait does not count
	c8.Keypad.SetPressed(0x3, true)
	exec(t, c8, 0xF50A)
	test.ExpectEquality(t, c8.Registers.PC, uint16(0x200))
	test.ExpectSuccess(t, c8.WaitingForKey())

	for i := 0; i < 5; i++ {
		test.DemandSuccess(t, c8.Step())
		test.ExpectEquality(t, c8.Registers.PC, uint16(0x200))
	}
	test.ExpectEquality(t, c8.Registers.V[5], byte(0))

	c8.Keypad.SetPressed(0xE, true)
	test.DemandSuccess(t, c8.Step())
	test.ExpectEquality(t, c8.Registers.V[5], byte(0xE))
	test.ExpectEquality(t, c8.Registers.PC, uint16(0x202))
	test.ExpectFailure(t, c8.WaitingForKey())
}

func TestOpcodeFontDigit(t *testing.T) {
	c8 := newTestChip8()
	c8.Registers.V[2] = 0xA
	exec(t, c8, 0xF229)
	test.ExpectEquality(t, c8.Registers.I, uint16(50))
	test.ExpectEquality(t, c8.Memory.ReadByte(c8.Registers.I), byte(0xF0))
	test.ExpectEquality(t, c8.Memory.ReadByte(c8.Registers.I+4), byte(0x90))
}

func TestOpcodeBCD(t *testing.T) {
	c8 := newTestChip8()
	c8.Registers.I = 0x300
	c8.Registers.V[2] = 234
	exec(t, c8, 0xF233)
	test.ExpectEquality(t, c8.Memory.ReadByte(0x300), byte(2))
	test.ExpectEquality(t, c8.Memory.ReadByte(0x301), byte(3))
	test.ExpectEquality(t, c8.Memory.ReadByte(0x302), byte(4))

	c8.Registers.V[2] = 7
	exec(t, c8, 0xF233)
	test.ExpectEquality(t, c8.Memory.ReadByte(0x300), byte(0))
	test.ExpectEquality(t, c8.Memory.ReadByte(0x301), byte(0))
	test.ExpectEquality(t, c8.Memory.ReadByte(0x302), byte(7))
}

func TestOpcodeBCDReserved(t *testing.T) {
	c8 := newTestChip8()
	c8.Registers.I = 0x1FE
	c8.Registers.V[2] = 123

	err := execErr(t, c8, 0xF233)
	test.ExpectError(t, err, ErrOutOfBounds)
	test.ExpectEquality(t, c8.Registers.PC, uint16(0x200))
	test.ExpectEquality(t, c8.Memory.ReadByte(0x200), byte(0xF2))
}

func TestOpcodeStoreLoadRegisters(t *testing.T) {
	c8 := newTestChip8()
	c8.Registers.V = [16]byte{5, 4, 3, 2, 1}
	c8.Registers.I = 0x300

	exec(t, c8, 0xF255)
	test.ExpectEquality(t, c8.Memory.ReadByte(0x300), byte(5))
	test.ExpectEquality(t, c8.Memory.ReadByte(0x301), byte(4))
	test.ExpectEquality(t, c8.Memory.ReadByte(0x302), byte(3))
	test.ExpectEquality(t, c8.Memory.ReadByte(0x303), byte(0))
	test.ExpectEquality(t, c8.Registers.I, uint16(0x300))
}

func TestRegisterDumpRoundTrip(t *testing.T) {
	c8 := newTestChip8()
	want := [4]byte{0x11, 0xFE, 0x00, 0x7C}
	copy(c8.Registers.V[:], want[:])
	c8.Registers.I = 0x400

	exec(t, c8, 0xF355)
	c8.Registers.V = [16]byte{}
	exec(t, c8, 0xF365)

	var got [4]byte
	copy(got[:], c8.Registers.V[:4])
	test.ExpectEquality(t, got, want)
	test.ExpectEquality(t, c8.Registers.V[4], byte(0))
}

func TestOpcodeSYS(t *testing.T) {
	c8 := newTestChip8()
	err := execErr(t, c8, 0x0123)
	test.ExpectError(t, err, ErrUnknownOpcode)
	test.ExpectEquality(t, c8.Registers.PC, uint16(0x200))

	c8 = newTestChip8(WithQuirks(Quirks{SysIsNop: true}))
	exec(t, c8, 0x0123)
	test.ExpectEquality(t, c8.Registers.PC, uint16(0x202))
}
