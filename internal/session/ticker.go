package session

import (
	"context"
	"sync"
	"time"
)

// TickSource creates a periodic channel and its stop function.
type TickSource func(interval time.Duration) (<-chan time.Time, func())

func systemTicks(interval time.Duration) (<-chan time.Time, func()) {
	ticker := time.NewTicker(interval)
	return ticker.C, ticker.Stop
}

// Ticker runs at most one cancellable periodic loop. Each loop is tagged
// with a generation so receivers can drop ticks from a stopped loop.
type Ticker struct {
	interval time.Duration
	source   TickSource

	mu         sync.Mutex
	cancel     context.CancelFunc
	done       chan struct{}
	generation uint64
}

// NewTicker builds a ticker. A nil source uses time.NewTicker.
func NewTicker(interval time.Duration, source TickSource) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	if source == nil {
		source = systemTicks
	}
	return &Ticker{interval: interval, source: source}
}

// Start stops any running loop, then starts a new one that sends its
// generation to out on every tick. It returns the new generation.
func (t *Ticker) Start(ctx context.Context, out chan<- uint64) uint64 {
	t.Stop()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.generation++
	generation := t.generation
	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	t.cancel = cancel
	t.done = done

	ticks, stop := t.source(t.interval)
	go func() {
		defer close(done)
		defer stop()
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticks:
				select {
				case out <- generation:
				case <-loopCtx.Done():
					return
				}
			}
		}
	}()
	return generation
}

// Stop cancels the running loop and waits for it to exit.
func (t *Ticker) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Active reports whether a loop is running.
func (t *Ticker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

// Current reports whether generation belongs to the running loop.
func (t *Ticker) Current(generation uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil && t.generation == generation
}
