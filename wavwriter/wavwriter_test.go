package wavwriter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrichey/chip8vm/buzzer"
	"github.com/adrichey/chip8vm/internal/test"
	"github.com/go-audio/wav"
)

func TestWavWriter(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "beep.wav")
	aw := New(filename)

	for i := 0; i < 30; i++ {
		aw.AddFrame(false)
	}
	for i := 0; i < 30; i++ {
		aw.AddFrame(true)
	}
	test.ExpectEquality(t, aw.Duration(), 1.0)
	test.DemandSuccess(t, aw.Close())

	f, err := os.Open(filename)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.DemandSuccess(t, dec.IsValidFile())
	test.ExpectEquality(t, dec.SampleRate, uint32(buzzer.SampleRate))
	test.ExpectEquality(t, dec.NumChans, uint16(1))
	test.ExpectEquality(t, dec.BitDepth, uint16(bitDepth))

	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(buf.Data), buzzer.SampleRate)

	// silent first half, tone in the second
	test.ExpectEquality(t, buf.Data[100], 0)
	test.ExpectSuccess(t, buf.Data[buzzer.SampleRate/2+10] != 0)
}
