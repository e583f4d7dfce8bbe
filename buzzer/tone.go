// Package buzzer generates the CHIP-8 tone.
package buzzer

import (
	"encoding/binary"
	"math"
	"sync/atomic"
)

const (
	SampleRate = 44100
	ToneFreq   = 440
	toneVolume = 0.2
)

/*
Tone is a square wave generator for the buzzer. The sound timer only says whether the tone is on, so there is nothing
to it but a fixed pitch that is either playing or silent.

The phase is owned by whoever pulls samples; only the on flag may be changed from another goroutine.
*/
type Tone struct {
	on    atomic.Bool
	phase float64
}

func (t *Tone) SetOn(on bool) {
	t.on.Store(on)
}

func (t *Tone) On() bool {
	return t.on.Load()
}

// Sample returns the next sample in the range -1 to 1.
func (t *Tone) Sample() float32 {
	if !t.on.Load() {
		t.phase = 0
		return 0
	}

	t.phase += ToneFreq / float64(SampleRate)
	if t.phase >= 1 {
		t.phase -= math.Floor(t.phase)
	}
	if t.phase < 0.5 {
		return toneVolume
	}
	return -toneVolume
}

// Read fills p with little endian float32 samples. It never fails, which is
// what an audio player pulling from it wants.
func (t *Tone) Read(p []byte) (int, error) {
	n := len(p) / 4
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(t.Sample()))
	}
	for i := n * 4; i < len(p); i++ {
		p[i] = 0
	}
	return len(p), nil
}

// FillS16 fills p with little endian signed 16 bit samples.
func (t *Tone) FillS16(p []byte) {
	for i := 0; i+1 < len(p); i += 2 {
		v := int16(t.Sample() * math.MaxInt16)
		binary.LittleEndian.PutUint16(p[i:], uint16(v))
	}
}
