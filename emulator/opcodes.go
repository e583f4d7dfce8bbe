package emulator

/*
INSTRUCTIONS IMPLEMENTATION

The following section is a set of all instruction operations allowed to us in Chip8.
See this documentation for more details:
https://github.com/mattmikolay/chip-8/wiki/Mastering-CHIP%E2%80%908
https://github.com/mattmikolay/chip-8/wiki/CHIP%E2%80%908-Instruction-Set

By the time a handler runs the PC already points at the next instruction.
*/

/*
00E0: CLS
Clear the display
*/
func (c8 *Chip8) op00E0() {
	c8.Screen.Clear()
}

/*
00EE: RET
Return from a subroutine
*/
func (c8 *Chip8) op00EE() error {
	addr, err := c8.Registers.Pop()
	if err != nil {
		return err
	}
	c8.Registers.PC = addr
	return nil
}

/*
1nnn: JP addr
Jump to location nnn.
A jump doesn't remember its origin, so no stack interaction required.
*/
func (c8 *Chip8) op1nnn(in Instruction) {
	c8.Registers.PC = in.NNN
}

/*
2nnn - CALL addr
Call subroutine at nnn.
The return address pushed is the instruction after the call.
*/
func (c8 *Chip8) op2nnn(in Instruction) error {
	if err := c8.Registers.Push(c8.Registers.PC); err != nil {
		return err
	}
	c8.Registers.PC = in.NNN
	return nil
}

func (c8 *Chip8) skip() {
	c8.Registers.PC = (c8.Registers.PC + 2) & AddressMask
}

/*
3xkk - SE Vx, byte
Skip next instruction if Vx = kk.
*/
func (c8 *Chip8) op3xkk(in Instruction) {
	if c8.Registers.V[in.X] == in.KK {
		c8.skip()
	}
}

/*
4xkk - SNE Vx, byte
Skip next instruction if Vx != kk.
*/
func (c8 *Chip8) op4xkk(in Instruction) {
	if c8.Registers.V[in.X] != in.KK {
		c8.skip()
	}
}

/*
5xy0 - SE Vx, Vy
Skip next instruction if Vx = Vy.
*/
func (c8 *Chip8) op5xy0(in Instruction) {
	if c8.Registers.V[in.X] == c8.Registers.V[in.Y] {
		c8.skip()
	}
}

/*
6xkk - LD Vx, byte
Set Vx = kk.
*/
func (c8 *Chip8) op6xkk(in Instruction) {
	c8.Registers.V[in.X] = in.KK
}

/*
7xkk - ADD Vx, byte
Set Vx = Vx + kk. Wraps; VF is not touched.
*/
func (c8 *Chip8) op7xkk(in Instruction) {
	c8.Registers.V[in.X] += in.KK
}

/*
8xy0 - LD Vx, Vy
Set Vx = Vy.
*/
func (c8 *Chip8) op8xy0(in Instruction) {
	c8.Registers.V[in.X] = c8.Registers.V[in.Y]
}

/*
8xy1 - OR Vx, Vy
Set Vx = Vx OR Vy.
*/
func (c8 *Chip8) op8xy1(in Instruction) {
	c8.Registers.V[in.X] |= c8.Registers.V[in.Y]
}

/*
8xy2 - AND Vx, Vy
Set Vx = Vx AND Vy.
*/
func (c8 *Chip8) op8xy2(in Instruction) {
	c8.Registers.V[in.X] &= c8.Registers.V[in.Y]
}

/*
8xy3 - XOR Vx, Vy
Set Vx = Vx XOR Vy.
*/
func (c8 *Chip8) op8xy3(in Instruction) {
	c8.Registers.V[in.X] ^= c8.Registers.V[in.Y]
}

/*
8xy4 - ADD Vx, Vy
Set Vx = Vx + Vy, set VF = carry.
Only the lowest 8 bits of the result are kept. The flag is written last so that it survives when x is F.
*/
func (c8 *Chip8) op8xy4(in Instruction) {
	sum := uint16(c8.Registers.V[in.X]) + uint16(c8.Registers.V[in.Y])

	c8.Registers.V[in.X] = byte(sum & 0xFF)
	c8.Registers.V[0xF] = byte(sum >> 8)
}

/*
8xy5 - SUB Vx, Vy
Set Vx = Vx - Vy, set VF = NOT borrow.
VF is 1 when Vx >= Vy, i.e. when the subtraction does not need to borrow.
*/
func (c8 *Chip8) op8xy5(in Instruction) {
	vx, vy := c8.Registers.V[in.X], c8.Registers.V[in.Y]

	c8.Registers.V[in.X] = vx - vy
	c8.Registers.V[0xF] = notBorrow(vx, vy)
}

/*
8xy6 - SHR Vx {, Vy}
Set Vx = Vx SHR 1 (or Vy SHR 1 with the ShiftUsesVy quirk).
The least significant bit is shifted out into VF.
*/
func (c8 *Chip8) op8xy6(in Instruction) {
	src := c8.shiftSource(in)

	c8.Registers.V[in.X] = src >> 1
	c8.Registers.V[0xF] = src & 0x1
}

/*
8xy7 - SUBN Vx, Vy
Set Vx = Vy - Vx, set VF = NOT borrow.
*/
func (c8 *Chip8) op8xy7(in Instruction) {
	vx, vy := c8.Registers.V[in.X], c8.Registers.V[in.Y]

	c8.Registers.V[in.X] = vy - vx
	c8.Registers.V[0xF] = notBorrow(vy, vx)
}

/*
8xyE - SHL Vx {, Vy}
Set Vx = Vx SHL 1 (or Vy SHL 1 with the ShiftUsesVy quirk).
The most significant bit is shifted out into VF.
*/
func (c8 *Chip8) op8xyE(in Instruction) {
	src := c8.shiftSource(in)

	c8.Registers.V[in.X] = src << 1
	c8.Registers.V[0xF] = src >> 7
}

func (c8 *Chip8) shiftSource(in Instruction) byte {
	if c8.quirks.ShiftUsesVy {
		return c8.Registers.V[in.Y]
	}
	return c8.Registers.V[in.X]
}

func notBorrow(a, b byte) byte {
	if a >= b {
		return 1
	}
	return 0
}

/*
9xy0 - SNE Vx, Vy
Skip next instruction if Vx != Vy.
*/
func (c8 *Chip8) op9xy0(in Instruction) {
	if c8.Registers.V[in.X] != c8.Registers.V[in.Y] {
		c8.skip()
	}
}

/*
Annn - LD I, addr
Set I = nnn.
*/
func (c8 *Chip8) opAnnn(in Instruction) {
	c8.Registers.I = in.NNN
}

/*
Bnnn - JP V0, addr
Jump to location nnn + V0. With the JumpUsesVx quirk the instruction reads as Bxnn and the offset comes from Vx.
*/
func (c8 *Chip8) opBnnn(in Instruction) {
	offset := c8.Registers.V[0]
	if c8.quirks.JumpUsesVx {
		offset = c8.Registers.V[in.X]
	}
	c8.Registers.PC = (in.NNN + uint16(offset)) & AddressMask
}

/*
Cxkk - RND Vx, byte
Set Vx = random byte AND kk.
*/
func (c8 *Chip8) opCxkk(in Instruction) {
	c8.Registers.V[in.X] = c8.randomByte() & in.KK
}

/*
Dxyn - DRW Vx, Vy, nibble
Display n-byte sprite starting at memory location I at (Vx, Vy), set VF = collision.
The sprite is read from memory and handed to the screen, which does the XOR and wraparound and tells us whether
any lit pixel was erased.
*/
func (c8 *Chip8) opDxyn(in Instruction) {
	sprite := c8.Memory.Slice(c8.Registers.I, int(in.N))
	collision := c8.Screen.DrawSprite(c8.Registers.V[in.X], c8.Registers.V[in.Y], sprite)

	if collision {
		c8.Registers.V[0xF] = 1
	} else {
		c8.Registers.V[0xF] = 0
	}
}

/*
Ex9E - SKP Vx
Skip next instruction if key with the value of Vx is pressed.
*/
func (c8 *Chip8) opEx9E(in Instruction) {
	if c8.Keypad.IsPressed(c8.Registers.V[in.X]) {
		c8.skip()
	}
}

/*
ExA1 - SKNP Vx
Skip next instruction if key with the value of Vx is not pressed.
*/
func (c8 *Chip8) opExA1(in Instruction) {
	if !c8.Keypad.IsPressed(c8.Registers.V[in.X]) {
		c8.skip()
	}
}

/*
Fx07 - LD Vx, DT
Set Vx = delay timer value.
*/
func (c8 *Chip8) opFx07(in Instruction) {
	c8.Registers.V[in.X] = c8.Timers.Delay()
}

/*
Fx0A - LD Vx, K
Wait for a key press, store the value of the key in Vx.
The easiest way to "wait" is to move the PC back by 2 until a key goes down. This has the effect of running the same
instruction repeatedly, so the timers and the host loop keep going while we wait.
*/
func (c8 *Chip8) opFx0A(in Instruction) {
	key, ok := c8.wait.poll(c8.Keypad.Pressed())
	if !ok {
		c8.Registers.PC = (c8.Registers.PC - 2) & AddressMask
		return
	}
	c8.Registers.V[in.X] = key
}

/*
Fx15 - LD DT, Vx
Set delay timer = Vx.
*/
func (c8 *Chip8) opFx15(in Instruction) {
	c8.Timers.SetDelay(c8.Registers.V[in.X])
}

/*
Fx18 - LD ST, Vx
Set sound timer = Vx.
*/
func (c8 *Chip8) opFx18(in Instruction) {
	c8.Timers.SetSound(c8.Registers.V[in.X])
}

/*
Fx1E - ADD I, Vx
Set I = I + Vx.
*/
func (c8 *Chip8) opFx1E(in Instruction) {
	c8.Registers.I += uint16(c8.Registers.V[in.X])
}

/*
Fx29 - LD F, Vx
Set I = location of sprite for digit Vx.
The font characters are five bytes each, so the address of any character is an offset from the font start.
*/
func (c8 *Chip8) opFx29(in Instruction) {
	digit := uint16(c8.Registers.V[in.X] & 0xF)
	c8.Registers.I = FONTSET_START_ADDRESS + glyphSize*digit
}

/*
Fx33 - LD B, Vx
Store BCD representation of Vx in memory locations I, I+1, and I+2.
The hundreds digit goes in memory at location I, the tens digit at location I+1, and the ones digit at location I+2.
*/
func (c8 *Chip8) opFx33(in Instruction) error {
	value := c8.Registers.V[in.X]
	digits := [3]byte{value / 100, (value / 10) % 10, value % 10}

	return c8.store(c8.Registers.I, digits[:])
}

/*
Fx55 - LD [I], Vx
Store registers V0 through Vx in memory starting at location I. I itself is left unchanged.
*/
func (c8 *Chip8) opFx55(in Instruction) error {
	return c8.store(c8.Registers.I, c8.Registers.V[:int(in.X)+1])
}

/*
Fx65 - LD Vx, [I]
Read registers V0 through Vx from memory starting at location I. I itself is left unchanged.
*/
func (c8 *Chip8) opFx65(in Instruction) {
	for i := 0; i <= int(in.X); i++ {
		c8.Registers.V[i] = c8.Memory.ReadByte(c8.Registers.I + uint16(i))
	}
}

// store writes data at addr, all or nothing.
func (c8 *Chip8) store(addr uint16, data []byte) error {
	for i := range data {
		a := (addr + uint16(i)) & AddressMask
		if a < StartAddress {
			return &Error{Kind: KindOutOfBounds, Addr: a}
		}
	}
	for i, b := range data {
		if err := c8.Memory.WriteByte(addr+uint16(i), b); err != nil {
			return err
		}
	}
	return nil
}
