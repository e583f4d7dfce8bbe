package emulator

import (
	"context"
	"sync"
	"time"
)

// TimerFrequency is the fixed rate at which the delay and sound timers count
// down, regardless of how fast instructions execute.
const TimerFrequency = 60

const tickPeriod = time.Second / TimerFrequency

// Timers holds the delay and sound timers. The interpreter and the Clock both
// touch them so a single mutex guards the pair.
type Timers struct {
	mu    sync.Mutex
	delay byte
	sound byte
}

// Tick decrements each nonzero timer by one. Timers stay at zero.
func (t *Timers) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

func (t *Timers) Delay() byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.delay
}

func (t *Timers) SetDelay(v byte) {
	t.mu.Lock()
	t.delay = v
	t.mu.Unlock()
}

func (t *Timers) Sound() byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sound
}

func (t *Timers) SetSound(v byte) {
	t.mu.Lock()
	t.sound = v
	t.mu.Unlock()
}

// ToneActive reports whether a tone should currently be playing.
func (t *Timers) ToneActive() bool {
	return t.Sound() > 0
}

func (t *Timers) reset() {
	t.mu.Lock()
	t.delay, t.sound = 0, 0
	t.mu.Unlock()
}

// Clock drives a Timers value at TimerFrequency.
type Clock struct {
	timers *Timers
	last   time.Time
}

func NewClock(t *Timers) *Clock {
	return &Clock{timers: t}
}

// Run ticks the timers 60 times a second until ctx is cancelled.
func (c *Clock) Run(ctx context.Context) error {
	tck := time.NewTicker(tickPeriod)
	defer tck.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tck.C:
			c.timers.Tick()
		}
	}
}

// Catchup is for hosts that interleave instructions and timers on a single
// loop. It performs as many ticks as the wall time since the previous call
// demands and returns that number. The first call only sets the reference
// point.
func (c *Clock) Catchup(now time.Time) int {
	if c.last.IsZero() {
		c.last = now
		return 0
	}

	n := int(now.Sub(c.last) / tickPeriod)
	for i := 0; i < n; i++ {
		c.timers.Tick()
	}
	c.last = c.last.Add(time.Duration(n) * tickPeriod)
	return n
}
