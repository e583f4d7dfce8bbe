package platform

import (
	"fmt"

	"github.com/adrichey/chip8vm/buzzer"
	"github.com/adrichey/chip8vm/emulator"
	"github.com/veandco/go-sdl2/sdl"
)

const WINDOW_TITLE = "Chip8 Emulator"

// the audio queue is topped up to this many refreshes worth of samples
const queuedFrames = 3

const samplesPerFrame = buzzer.SampleRate / RefreshRate

// SDL presents the emulator in an SDL window and plays the tone through the
// SDL audio queue. It must be created and used from the main thread.
type SDL struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	scale    int32

	audio  sdl.AudioDeviceID
	tone   buzzer.Tone
	buffer []byte

	// reused between Present calls
	rects []sdl.Rect
}

// NewSDL opens a window scale times the size of the CHIP-8 display. If no
// audio device can be opened the frontend runs silently.
func NewSDL(title string, scale int32) (*SDL, error) {
	if title == "" {
		title = WINDOW_TITLE
	}
	if scale <= 0 {
		scale = 10
	}

	err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	s := &SDL{
		scale:  scale,
		rects:  make([]sdl.Rect, 0, emulator.VIDEO_WIDTH*emulator.VIDEO_HEIGHT),
		buffer: make([]byte, samplesPerFrame*2),
	}

	var winWidth, winHeight int32 = emulator.VIDEO_WIDTH * scale, emulator.VIDEO_HEIGHT * scale

	s.window, err = sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, winWidth, winHeight, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	s.renderer, err = sdl.CreateRenderer(s.window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		s.window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	spec := &sdl.AudioSpec{
		Freq:     buzzer.SampleRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  uint16(samplesPerFrame),
	}
	var actualSpec sdl.AudioSpec
	s.audio, err = sdl.OpenAudioDevice("", false, spec, &actualSpec, 0)
	if err == nil {
		sdl.PauseAudioDevice(s.audio, false)
	} else {
		s.audio = 0
	}

	s.Present(emulator.Frame{})
	return s, nil
}

// Present implements the Frontend interface.
func (s *SDL) Present(frame emulator.Frame) {
	s.rects = s.rects[:0]
	for y := range frame {
		for x := range frame[y] {
			if frame[y][x] {
				s.rects = append(s.rects, sdl.Rect{X: int32(x) * s.scale, Y: int32(y) * s.scale, W: s.scale, H: s.scale})
			}
		}
	}

	_ = s.renderer.SetDrawColor(0, 0, 0, 255)
	_ = s.renderer.Clear()
	if len(s.rects) > 0 {
		_ = s.renderer.SetDrawColor(255, 255, 255, 255)
		_ = s.renderer.FillRects(s.rects)
	}
	s.renderer.Present()
}

// Beep implements the Frontend interface.
func (s *SDL) Beep(on bool) {
	if s.audio == 0 {
		return
	}

	if !on {
		if s.tone.On() {
			s.tone.SetOn(false)
			sdl.ClearQueuedAudio(s.audio)
		}
		return
	}

	s.tone.SetOn(true)
	for sdl.GetQueuedAudioSize(s.audio) < uint32(len(s.buffer)*queuedFrames) {
		s.tone.FillS16(s.buffer)
		if err := sdl.QueueAudio(s.audio, s.buffer); err != nil {
			return
		}
	}
}

// Poll implements the Frontend interface.
func (s *SDL) Poll(keys *emulator.Keypad) bool {
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.KeyboardEvent:
			down := t.Type == sdl.KEYDOWN

			if t.Keysym.Sym == sdl.K_ESCAPE {
				if down {
					quit = true
				}
				continue
			}

			if key, ok := KeyFor(rune(t.Keysym.Sym)); ok {
				keys.SetPressed(key, down)
			}
		}
	}

	return quit
}

// Close implements the Frontend interface.
func (s *SDL) Close() error {
	if s.audio != 0 {
		sdl.CloseAudioDevice(s.audio)
	}
	err := s.renderer.Destroy()
	if e := s.window.Destroy(); err == nil {
		err = e
	}
	sdl.Quit()
	return err
}
