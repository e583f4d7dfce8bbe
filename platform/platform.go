// Package platform connects the emulator to a host: it shows the frame,
// plays the tone and turns host key events into keypad state.
package platform

import (
	"context"
	"time"

	"github.com/adrichey/chip8vm/emulator"
)

// RefreshRate is how many times a second the frontend is serviced.
const RefreshRate = 60

// Frontend is implemented by each host adapter. All methods are called from
// the goroutine running Loop, which for SDL must be the main thread.
type Frontend interface {
	// Present shows a frame. It is only called when the frame changed.
	Present(frame emulator.Frame)

	// Beep starts or continues the tone when on is true and silences it
	// otherwise. Called every refresh.
	Beep(on bool)

	// Poll applies pending host input to keys and reports whether the user
	// asked to quit.
	Poll(keys *emulator.Keypad) (quit bool)

	Close() error
}

// Recorder receives the tone state once per refresh.
type Recorder interface {
	AddFrame(tone bool)
}

// Loop services fe at RefreshRate until the user quits or ctx is cancelled.
// rec may be nil.
func Loop(ctx context.Context, fe Frontend, c8 *emulator.Chip8, rec Recorder) {
	tck := time.NewTicker(time.Second / RefreshRate)
	defer tck.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tck.C:
		}

		if fe.Poll(&c8.Keypad) {
			return
		}

		if frame, dirty := c8.Screen.Snapshot(); dirty {
			fe.Present(frame)
		}

		tone := c8.Timers.ToneActive()
		fe.Beep(tone)
		if rec != nil {
			rec.AddFrame(tone)
		}
	}
}
