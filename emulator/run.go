package emulator

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultClockSpeed is the number of instructions executed per second when
// Run is given a speed of zero or less.
const DefaultClockSpeed = 700

// how often the interpreter goroutine wakes up to run the instructions it owes
const batchPeriod = 2 * time.Millisecond

/*
Run executes the program until ctx is cancelled or an instruction fails. Two goroutines share the machine: the
interpreter, which runs speed instructions per second in small batches, and the Clock, which ticks the timers at 60Hz
no matter how fast or slow the interpreter is going. They only meet at the Timers, which carry their own lock.

A nil return means ctx was cancelled. Any instruction error stops both goroutines and is returned unchanged.
*/
func (c8 *Chip8) Run(ctx context.Context, speed int) error {
	if speed <= 0 {
		speed = DefaultClockSpeed
	}

	g, ctx := errgroup.WithContext(ctx)

	clock := NewClock(&c8.Timers)
	g.Go(func() error {
		return clock.Run(ctx)
	})

	g.Go(func() error {
		return c8.interpret(ctx, speed)
	})

	return g.Wait()
}

func (c8 *Chip8) interpret(ctx context.Context, speed int) error {
	tck := time.NewTicker(batchPeriod)
	defer tck.Stop()

	last := time.Now()
	var owed float64

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-tck.C:
			owed += now.Sub(last).Seconds() * float64(speed)
			last = now

			// never try to catch up more than a tenth of a second, the host
			// was probably suspended
			if limit := float64(speed) / 10; owed > limit {
				owed = limit
			}

			for ; owed >= 1; owed-- {
				if err := c8.Step(); err != nil {
					return err
				}
			}
		}
	}
}
