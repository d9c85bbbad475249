package services

import (
	"context"
	"sync"
	"time"
)

const (
	// CountdownTicks is the number of ticks before an OTP can be resent.
	CountdownTicks       = 30
	defaultCountdownTick = time.Second
)

// Countdown is the OTP resend timer. At most one countdown runs at a
// time: Start cancels and waits for the previous one.
type Countdown struct {
	interval time.Duration

	startMu sync.Mutex // serializes Start and Stop

	mu        sync.Mutex
	remaining int
	canResend bool
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewCountdown(interval time.Duration) *Countdown {
	if interval <= 0 {
		interval = defaultCountdownTick
	}
	return &Countdown{interval: interval, remaining: CountdownTicks, canResend: true}
}

func (c *Countdown) Start() {
	c.startMu.Lock()
	defer c.startMu.Unlock()

	c.stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	c.mu.Lock()
	c.remaining = CountdownTicks
	c.canResend = false
	c.cancel = cancel
	c.done = done
	c.mu.Unlock()

	go c.run(ctx, cancel, done)
}

// Stop cancels a running countdown and waits for it to exit. The counter
// keeps its current value.
func (c *Countdown) Stop() {
	c.startMu.Lock()
	defer c.startMu.Unlock()
	c.stop()
}

func (c *Countdown) stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (c *Countdown) run(ctx context.Context, cancel context.CancelFunc, done chan struct{}) {
	defer close(done)
	defer cancel()

	t := time.NewTicker(c.interval)
	defer t.Stop()

	for i := 0; i < CountdownTicks; i++ {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		c.mu.Lock()
		c.remaining--
		if c.remaining <= 0 {
			c.canResend = true
		}
		c.mu.Unlock()
	}

	c.mu.Lock()
	c.canResend = true
	c.remaining = CountdownTicks
	if c.done == done {
		c.cancel, c.done = nil, nil
	}
	c.mu.Unlock()
}

func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

func (c *Countdown) CanResend() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canResend
}

// Running reports whether a countdown goroutine is active.
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done != nil
}
