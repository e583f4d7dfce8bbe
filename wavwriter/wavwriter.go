// Package wavwriter records the buzzer to a WAV file. Audio data is buffered
// in memory in its entirety and written to disk when the writer is closed, so
// it is meant for checking what a program sounds like rather than for long
// sessions.
package wavwriter

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/adrichey/chip8vm/buzzer"
	"github.com/adrichey/chip8vm/emulator"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const bitDepth = 16

// WavWriter implements the platform.Recorder interface.
type WavWriter struct {
	filename string
	tone     buzzer.Tone
	buffer   []int
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string) *WavWriter {
	return &WavWriter{
		filename: filename,
		buffer:   make([]int, 0, buzzer.SampleRate),
	}
}

// AddFrame implements the platform.Recorder interface. Each call adds one
// refresh period of audio.
func (aw *WavWriter) AddFrame(tone bool) {
	aw.tone.SetOn(tone)
	for i := 0; i < buzzer.SampleRate/emulator.TimerFrequency; i++ {
		aw.buffer = append(aw.buffer, int(aw.tone.Sample()*math.MaxInt16))
	}
}

// Duration is the length of the recording in seconds.
func (aw *WavWriter) Duration() float64 {
	return float64(len(aw.buffer)) / buzzer.SampleRate
}

// Encode writes the recording as a mono 16 bit WAV stream.
func (aw *WavWriter) Encode(w io.WriteSeeker) error {
	enc := wav.NewEncoder(w, buzzer.SampleRate, bitDepth, 1, 1)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: buzzer.SampleRate},
		Data:           aw.buffer,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	return nil
}

// Close writes the recording to the file named in New.
func (aw *WavWriter) Close() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("wavwriter: %w", err)
		}
	}()

	return aw.Encode(f)
}
