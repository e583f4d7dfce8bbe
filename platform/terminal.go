package platform

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/adrichey/chip8vm/buzzer"
	"github.com/adrichey/chip8vm/emulator"
	"github.com/ebitengine/oto/v3"
	"golang.org/x/term"
)

// terminals only report key presses, so a key is held for this long after
// its last press (auto-repeat keeps it down while the key is held)
const keyHold = 150 * time.Millisecond

const (
	keyEscape = 0x1B
	keyCtrlC  = 0x03
)

/*
Terminal draws the display in a text terminal using half block characters, two pixel rows to a line, and reads the
keypad from stdin in raw mode. The tone goes through oto.
*/
type Terminal struct {
	fd       int
	oldState *term.State
	out      *bufio.Writer

	input    chan byte
	released map[byte]time.Time

	tone   buzzer.Tone
	player *oto.Player
}

// NewTerminal puts stdin into raw mode and clears the screen. With audio
// set the tone is played on the default output device.
func NewTerminal(out io.Writer, audio bool) (*Terminal, error) {
	t := &Terminal{
		fd:       int(os.Stdin.Fd()),
		out:      bufio.NewWriter(out),
		input:    make(chan byte, 64),
		released: make(map[byte]time.Time),
	}

	oldState, err := term.MakeRaw(t.fd)
	if err != nil {
		return nil, fmt.Errorf("terminal: failed to set raw mode: %w", err)
	}
	t.oldState = oldState

	if audio {
		if err := t.openAudio(); err != nil {
			_ = term.Restore(t.fd, t.oldState)
			return nil, err
		}
	}

	// the read blocks, so this goroutine lives until the process exits
	go func() {
		buf := make([]byte, 16)
		for {
			n, err := os.Stdin.Read(buf)
			for _, b := range buf[:n] {
				t.input <- b
			}
			if err != nil {
				close(t.input)
				return
			}
		}
	}()

	// clear, home, hide cursor
	fmt.Fprint(t.out, "\x1b[2J\x1b[H\x1b[?25l")
	t.Present(emulator.Frame{})
	return t, nil
}

func (t *Terminal) openAudio() error {
	op := &oto.NewContextOptions{
		SampleRate:   buzzer.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("terminal: audio: %w", err)
	}
	<-ready

	t.player = ctx.NewPlayer(&t.tone)
	t.player.Play()
	return nil
}

// Present implements the Frontend interface.
func (t *Terminal) Present(frame emulator.Frame) {
	fmt.Fprint(t.out, "\x1b[H")
	for y := 0; y < emulator.VIDEO_HEIGHT; y += 2 {
		for x := 0; x < emulator.VIDEO_WIDTH; x++ {
			t.out.WriteString(halfBlock(frame[y][x], frame[y+1][x]))
		}
		t.out.WriteString("\r\n")
	}
	_ = t.out.Flush()
}

func halfBlock(upper, lower bool) string {
	switch {
	case upper && lower:
		return "█"
	case upper:
		return "▀"
	case lower:
		return "▄"
	}
	return " "
}

// Beep implements the Frontend interface.
func (t *Terminal) Beep(on bool) {
	t.tone.SetOn(on)
}

// Poll implements the Frontend interface.
func (t *Terminal) Poll(keys *emulator.Keypad) bool {
	now := time.Now()

drain:
	for {
		select {
		case b, ok := <-t.input:
			if !ok || b == keyEscape || b == keyCtrlC {
				return true
			}
			if key, ok := KeyFor(rune(b)); ok {
				keys.SetPressed(key, true)
				t.released[key] = now.Add(keyHold)
			}
		default:
			break drain
		}
	}

	for key, at := range t.released {
		if now.After(at) {
			keys.SetPressed(key, false)
			delete(t.released, key)
		}
	}

	return false
}

// Close implements the Frontend interface.
func (t *Terminal) Close() error {
	if t.player != nil {
		_ = t.player.Close()
	}

	// show cursor and move below the display
	fmt.Fprintf(t.out, "\x1b[?25h\x1b[%d;1H", emulator.VIDEO_HEIGHT/2+1)
	_ = t.out.Flush()

	return term.Restore(t.fd, t.oldState)
}
