package session

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"quizdoc/internal/extract"
)

// ErrEngineStopped is returned by Send after Run has returned.
var ErrEngineStopped = errors.New("session engine stopped")

// Observer is called from the event loop after every applied event.
type Observer func(event Event, before, after State)

// EngineOptions configures an Engine.
type EngineOptions struct {
	// TickInterval is the countdown period. Zero means one second.
	TickInterval time.Duration
	// TickSource overrides time.NewTicker, mainly for tests.
	TickSource TickSource
}

// Engine owns one session and applies events one at a time. The countdown
// ticker runs only while the session is Playing.
type Engine struct {
	events    chan request
	ticks     chan uint64
	ticker    *Ticker
	done      chan struct{}
	observers []Observer

	mu    sync.RWMutex
	state State
}

type request struct {
	event Event
	reply chan State
}

// NewEngine constructs an engine starting from initial.
func NewEngine(initial State, opts EngineOptions) *Engine {
	return &Engine{
		events: make(chan request),
		ticks:  make(chan uint64),
		ticker: NewTicker(opts.TickInterval, opts.TickSource),
		done:   make(chan struct{}),
		state:  initial,
	}
}

// Observe registers fn for transition reports. Call before Run.
func (e *Engine) Observe(fn Observer) {
	if fn == nil {
		return
	}
	e.observers = append(e.observers, fn)
}

// State returns a snapshot of the current session state.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Send delivers event to the loop and returns the state it produced.
func (e *Engine) Send(ctx context.Context, event Event) (State, error) {
	req := request{event: event, reply: make(chan State, 1)}
	select {
	case e.events <- req:
	case <-e.done:
		return State{}, ErrEngineStopped
	case <-ctx.Done():
		return State{}, ctx.Err()
	}
	select {
	case state := <-req.reply:
		return state, nil
	case <-ctx.Done():
		return State{}, ctx.Err()
	}
}

// Run processes events until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.done)
	defer e.ticker.Stop()
	if e.State().Phase == PhasePlaying {
		e.ticker.Start(ctx, e.ticks)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-e.events:
			req.reply <- e.apply(ctx, req.event)
		case generation := <-e.ticks:
			if !e.ticker.Current(generation) {
				continue
			}
			e.apply(ctx, Tick())
		}
	}
}

// apply reduces one event and keeps the ticker tied to the Playing phase.
func (e *Engine) apply(ctx context.Context, event Event) State {
	before := e.State()
	after := Reduce(before, event)

	e.mu.Lock()
	e.state = after
	e.mu.Unlock()

	switch {
	case before.Phase != PhasePlaying && after.Phase == PhasePlaying:
		e.ticker.Start(ctx, e.ticks)
	case before.Phase == PhasePlaying && after.Phase != PhasePlaying:
		e.ticker.Stop()
	}
	for _, observer := range e.observers {
		observer(event, before, after)
	}
	return after
}

// ExtractEvent runs extractor over r and returns the single uploaded event
// carrying either the text or the extraction failure.
func ExtractEvent(ctx context.Context, extractor extract.Extractor, source string, r io.Reader) Event {
	if extractor == nil {
		return Uploaded(source, "", extract.ErrUnavailable)
	}
	text, err := extractor.Extract(ctx, r)
	return Uploaded(source, text, err)
}
