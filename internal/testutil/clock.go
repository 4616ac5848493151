package testutil

import (
	"sync"
	"time"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// FakeClock provides a controllable clock for tests.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock initializes a FakeClock at the provided start time.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the fake time forward.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// ManualTicker is a tick source fired explicitly by tests.
type ManualTicker struct {
	mu      sync.Mutex
	ch      chan time.Time
	stopped bool
	started int
}

// NewManualTicker returns a ManualTicker with a buffered channel.
func NewManualTicker() *ManualTicker {
	return &ManualTicker{ch: make(chan time.Time, 64)}
}

// Factory matches the tick source constructor used by periodic tasks.
func (m *ManualTicker) Factory(time.Duration) (<-chan time.Time, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started++
	m.stopped = false
	return m.ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.stopped = true
	}
}

// Fire delivers n ticks.
func (m *ManualTicker) Fire(n int) {
	for i := 0; i < n; i++ {
		m.ch <- time.Now()
	}
}

// Started reports how many times the source was created.
func (m *ManualTicker) Started() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

// Stopped reports whether the latest source was stopped.
func (m *ManualTicker) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}
