package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"github.com/adrichey/chip8vm/emulator"
	"github.com/adrichey/chip8vm/platform"
	"github.com/adrichey/chip8vm/statsview"
	"github.com/adrichey/chip8vm/wavwriter"
	"golang.org/x/sync/errgroup"
)

// SDL wants all of its calls on the main thread
func init() {
	runtime.LockOSThread()
}

type options struct {
	speed     int
	scale     int
	frontend  string
	mute      bool
	wav       string
	statsview bool
	trace     bool
	quirks    emulator.Quirks
}

func main() {
	var opts options
	flag.IntVar(&opts.speed, "speed", emulator.DefaultClockSpeed, "instructions executed per second")
	flag.IntVar(&opts.scale, "scale", 10, "window pixels per CHIP-8 pixel (sdl frontend)")
	flag.StringVar(&opts.frontend, "frontend", "sdl", "display to use: sdl or term")
	flag.BoolVar(&opts.mute, "mute", false, "do not play the tone")
	flag.StringVar(&opts.wav, "wav", "", "record the tone to this WAV file")
	flag.BoolVar(&opts.statsview, "statsview", false, "serve runtime statistics on "+statsview.Address)
	flag.BoolVar(&opts.trace, "trace", false, "log every executed instruction")
	flag.BoolVar(&opts.quirks.ShiftUsesVy, "shift-vy", false, "8xy6/8xyE shift Vy into Vx")
	flag.BoolVar(&opts.quirks.JumpUsesVx, "jump-vx", false, "Bxnn jumps to xnn + Vx")
	flag.BoolVar(&opts.quirks.SysIsNop, "sys-nop", false, "ignore 0nnn instead of stopping")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <rom>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), opts); err != nil {
		log.Fatal(err)
	}
}

func run(romPath string, opts options) error {
	level := slog.LevelInfo
	if opts.trace {
		level = slog.LevelDebug
	}

	// the terminal frontend owns stdout
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	rom, err := os.ReadFile(romPath)
	if err != nil {
		return err
	}

	c8 := emulator.New(emulator.WithQuirks(opts.quirks), emulator.WithLogger(logger))
	if err := c8.LoadProgram(rom); err != nil {
		return err
	}

	if opts.statsview {
		stop := statsview.Launch(os.Stderr)
		defer stop()
	}

	var fe platform.Frontend
	switch opts.frontend {
	case "sdl":
		fe, err = platform.NewSDL(fmt.Sprintf("%s - %s", platform.WINDOW_TITLE, filepath.Base(romPath)), int32(opts.scale))
	case "term":
		fe, err = platform.NewTerminal(os.Stdout, !opts.mute)
	default:
		err = fmt.Errorf("unknown frontend %q", opts.frontend)
	}
	if err != nil {
		return err
	}
	if opts.mute {
		fe = muted{fe}
	}

	var wav *wavwriter.WavWriter
	var rec platform.Recorder
	if opts.wav != "" {
		wav = wavwriter.New(opts.wav)
		rec = wav
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c8.Run(gctx, opts.speed)
	})

	platform.Loop(gctx, fe, c8, rec)
	cancel()

	runErr := g.Wait()
	closeErr := fe.Close()

	if wav != nil {
		if err := wav.Close(); err != nil {
			logger.Error(err.Error())
		} else {
			logger.Info("tone recorded", "file", opts.wav, "seconds", wav.Duration())
		}
	}

	if runErr != nil {
		var e *emulator.Error
		if errors.As(runErr, &e) {
			logger.Error("halted", "kind", e.Kind, "pc", fmt.Sprintf("%#03x", e.PC), "instr", emulator.Decode(e.Opcode).String())
		}
		return runErr
	}

	return closeErr
}

// muted drops the tone but otherwise passes everything through.
type muted struct {
	platform.Frontend
}

func (muted) Beep(bool) {}
