package emulator

/*
The CHIP-8 has 4096 bytes of memory, meaning the address space is from 0x000 to 0xFFF.
The address space is segmented into two sections:

	0x000-0x1FF: Originally reserved for the CHIP-8 interpreter. We keep the 16 built-in characters (0 through F)
	             at the very bottom (0x000-0x04F) and otherwise never let a program write here.
	0x200-0xFFF: Instructions from the ROM will be stored starting at 0x200, and anything left after the ROM's
	             space is free to use.

The address bus is 12 bits wide, so every address is masked with 0xFFF before use.
*/
const (
	MemorySize   = 4096
	AddressMask  = 0x0FFF
	StartAddress = 0x200
)

// Memory is the flat 4KB store shared by fonts, program and data.
type Memory struct {
	data [MemorySize]byte
}

// ReadByte returns the byte at addr. The address wraps at 0x1000.
func (m *Memory) ReadByte(addr uint16) byte {
	return m.data[addr&AddressMask]
}

// ReadWord returns the big-endian word at addr: high byte at addr, low byte
// at addr+1.
func (m *Memory) ReadWord(addr uint16) uint16 {
	return uint16(m.ReadByte(addr))<<8 | uint16(m.ReadByte(addr+1))
}

// WriteByte stores b at addr. The reserved interpreter area is read-only once
// the machine is running, writes there fail with ErrOutOfBounds.
func (m *Memory) WriteByte(addr uint16, b byte) error {
	addr &= AddressMask
	if addr < StartAddress {
		return &Error{Kind: KindOutOfBounds, Addr: addr}
	}
	m.data[addr] = b
	return nil
}

// Load copies data into memory starting at the given address. It is the only
// way to place bytes in the reserved area and is used for the font set and
// for the program image.
func (m *Memory) Load(data []byte, at uint16) error {
	if int(at)+len(data) > MemorySize {
		return &Error{Kind: KindLoadTooLarge, Addr: at}
	}
	copy(m.data[at:], data)
	return nil
}

// Slice returns a copy of n bytes starting at addr, wrapping at the top of
// memory.
func (m *Memory) Slice(addr uint16, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = m.ReadByte(addr + uint16(i))
	}
	return out
}

func (m *Memory) reset() {
	m.data = [MemorySize]byte{}
}
