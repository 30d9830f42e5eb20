package renderer

import (
	"context"
	"time"

	"github.com/richinsley/nativetoy/graphics"
	"github.com/richinsley/nativetoy/host"
)

// How long Run sleeps per iteration while there is no surface to draw to.
const idleInterval = 10 * time.Millisecond

// Engine owns the whole render state: context, resources, clock, the render
// loop and the lifecycle state. It is driven from a single thread.
type Engine struct {
	ws     graphics.WindowSystem
	api    graphics.API
	source host.Source

	now             func() time.Time
	clockResolution time.Duration
	fixedFPS        int
	immediateDraw   bool
	sink            FrameSink

	ctx   *GraphicsContext
	res   *ResourceSet
	clock *FrameClock
	loop  *RenderLoop
	state State

	pointerX, pointerY float32
	frames             uint64
}

// Option configures an Engine in New.
type Option func(*Engine)

// WithClock replaces time.Now as the frame clock's time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithClockResolution truncates elapsed time to d.
func WithClockResolution(d time.Duration) Option {
	return func(e *Engine) { e.clockResolution = d }
}

// WithFixedStep makes shader time advance by exactly 1/fps per presented
// frame, independent of wall time.
func WithFixedStep(fps int) Option {
	return func(e *Engine) { e.fixedFPS = fps }
}

// WithFrameSink passes every drawn frame to sink before it is presented.
func WithFrameSink(sink FrameSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithImmediateDraw controls whether a frame is drawn inside the
// WindowAvailable handler, ahead of the next loop iteration. Default true.
func WithImmediateDraw(enabled bool) Option {
	return func(e *Engine) { e.immediateDraw = enabled }
}

// New creates an engine in the Uninitialized state and starts its clock.
func New(ws graphics.WindowSystem, api graphics.API, source host.Source, opts ...Option) *Engine {
	e := &Engine{
		ws:            ws,
		api:           api,
		source:        source,
		now:           time.Now,
		immediateDraw: true,
		state:         Uninitialized,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.fixedFPS > 0 {
		epoch, fps := e.now(), e.fixedFPS
		e.now = func() time.Time {
			return epoch.Add(time.Duration(float64(e.frames) / float64(fps) * float64(time.Second)))
		}
	}
	e.ctx = NewGraphicsContext(ws, api)
	e.loop = NewRenderLoop(api, e.sink)
	e.clock = StartClock(e.now(), e.clockResolution)
	return e
}

// Step runs one loop iteration: drain pending host events without blocking,
// then, unless terminated, advance the clock and draw one frame. It returns
// false once the engine has terminated.
func (e *Engine) Step() bool {
	if e.state == Terminated {
		return false
	}
	e.source.Drain(e.HandleEvent)
	if e.state == Terminated {
		return false
	}
	e.clock.Elapsed(e.now())
	e.draw()
	return true
}

// Run steps until a ShutdownRequested event arrives or ctx is cancelled.
// Cancellation is handled as a shutdown request.
func (e *Engine) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			e.HandleEvent(host.Event{Kind: host.ShutdownRequested})
			return ctx.Err()
		default:
		}
		if !e.Step() {
			return nil
		}
		if e.state != Running {
			time.Sleep(idleInterval)
		}
	}
}

func (e *Engine) draw() {
	if e.loop.Tick(e.ctx, e.res, e.clock) {
		e.frames++
	}
}

func (e *Engine) State() State { return e.state }

// Frames is the number of frames presented so far.
func (e *Engine) Frames() uint64 { return e.frames }

// Pointer returns the last pointer position reported by the host.
func (e *Engine) Pointer() (x, y float32) { return e.pointerX, e.pointerY }

func (e *Engine) Context() *GraphicsContext { return e.ctx }

func (e *Engine) Resources() *ResourceSet { return e.res }

func (e *Engine) Clock() *FrameClock { return e.clock }
