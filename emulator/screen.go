package emulator

import (
	"strings"
	"sync"
)

const VIDEO_HEIGHT = 32
const VIDEO_WIDTH = 64

// Frame is a row-major copy of the display, true meaning the pixel is lit.
type Frame [VIDEO_HEIGHT][VIDEO_WIDTH]bool

// String renders the frame with '#' for lit pixels, one line per row.
func (f *Frame) String() string {
	var b strings.Builder
	for y := range f {
		for x := range f[y] {
			if f[y][x] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Screen is the monochrome framebuffer. The interpreter is the only writer,
// the frontend reads it with Snapshot.
type Screen struct {
	mu     sync.RWMutex
	pixels Frame
	dirty  bool
}

// Clear switches every pixel off.
func (s *Screen) Clear() {
	s.mu.Lock()
	s.pixels = Frame{}
	s.dirty = true
	s.mu.Unlock()
}

/*
DrawSprite XORs an 8 pixel wide sprite onto the screen at (x, y), one byte per row, most significant bit leftmost.
Pixels that fall off an edge wrap around to the other side individually; the sprite is never clipped as a whole.
It returns true if any lit pixel was switched off. Writing that into VF is the caller's job.
*/
func (s *Screen) DrawSprite(x, y byte, sprite []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	collision := false
	for row, bits := range sprite {
		py := (int(y) + row) % VIDEO_HEIGHT
		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}

			px := (int(x) + col) % VIDEO_WIDTH
			if s.pixels[py][px] {
				collision = true
			}
			s.pixels[py][px] = !s.pixels[py][px]
		}
	}

	s.dirty = true
	return collision
}

// Pixel reports whether the pixel at (x, y) is lit. Coordinates wrap.
func (s *Screen) Pixel(x, y int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pixels[y%VIDEO_HEIGHT][x%VIDEO_WIDTH]
}

// Snapshot returns a copy of the current frame and whether it changed since
// the previous snapshot.
func (s *Screen) Snapshot() (Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dirty := s.dirty
	s.dirty = false
	return s.pixels, dirty
}
