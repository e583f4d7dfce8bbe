package emulator

import (
	"testing"

	"github.com/adrichey/chip8vm/internal/test"
)

func TestDrawSprite(t *testing.T) {
	var s Screen

	collision := s.DrawSprite(0, 0, []byte{0b00110011, 0b11001010})
	test.ExpectFailure(t, collision)

	row0 := []bool{false, false, true, true, false, false, true, true}
	row1 := []bool{true, true, false, false, true, false, true, false}
	for x := 0; x < 8; x++ {
		test.ExpectEquality(t, s.Pixel(x, 0), row0[x], "row 0 col ", x)
		test.ExpectEquality(t, s.Pixel(x, 1), row1[x], "row 1 col ", x)
	}
}

func TestDrawSpriteCollision(t *testing.T) {
	var s Screen

	test.ExpectFailure(t, s.DrawSprite(0, 0, []byte{0b00110000}))
	test.ExpectFailure(t, s.DrawSprite(0, 0, []byte{0b00000011}))
	test.ExpectSuccess(t, s.DrawSprite(0, 0, []byte{0b00000001}))
	test.ExpectFailure(t, s.Pixel(7, 0))
}

func TestDrawSpriteTwiceRestores(t *testing.T) {
	var s Screen
	sprite := Glyph(0xA)

	test.ExpectFailure(t, s.DrawSprite(20, 10, sprite))
	test.ExpectSuccess(t, s.DrawSprite(20, 10, sprite))

	frame, _ := s.Snapshot()
	test.ExpectEquality(t, frame, Frame{})
}

func TestDrawSpriteWrapsPerPixel(t *testing.T) {
	var s Screen

	// a full row drawn four pixels from the right edge spills onto the left
	s.DrawSprite(60, 31, []byte{0xFF, 0x80})

	for x := 60; x < 64; x++ {
		test.ExpectSuccess(t, s.Pixel(x, 31), "x ", x)
	}
	for x := 0; x < 4; x++ {
		test.ExpectSuccess(t, s.Pixel(x, 31), "x ", x)
	}
	test.ExpectFailure(t, s.Pixel(4, 31))

	// second row wraps to the top
	test.ExpectSuccess(t, s.Pixel(60, 0))
	test.ExpectFailure(t, s.Pixel(61, 0))
}

func TestDrawSpriteStartWraps(t *testing.T) {
	var s Screen
	s.DrawSprite(64+3, 32+2, []byte{0x80})
	test.ExpectSuccess(t, s.Pixel(3, 2))
}

func TestClearAndSnapshot(t *testing.T) {
	var s Screen
	s.DrawSprite(1, 1, []byte{0xFF})

	frame, dirty := s.Snapshot()
	test.ExpectSuccess(t, dirty)
	test.ExpectSuccess(t, frame[1][1])

	_, dirty = s.Snapshot()
	test.ExpectFailure(t, dirty)

	s.Clear()
	frame, dirty = s.Snapshot()
	test.ExpectSuccess(t, dirty)
	test.ExpectEquality(t, frame, Frame{})
}
