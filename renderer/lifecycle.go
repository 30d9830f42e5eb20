package renderer

import (
	"fmt"
	"log"

	"github.com/richinsley/nativetoy/graphics"
	"github.com/richinsley/nativetoy/host"
)

// State is the lifecycle state of the engine.
type State int

const (
	Uninitialized State = iota
	Running
	Suspended
	Terminated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Running:
		return "Running"
	case Suspended:
		return "Suspended"
	case Terminated:
		return "Terminated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// HandleEvent applies one host event to the lifecycle state machine. It
// returns false once the engine has terminated, which stops a drain.
func (e *Engine) HandleEvent(ev host.Event) bool {
	if e.state == Terminated {
		return false
	}

	switch ev.Kind {
	case host.ShutdownRequested:
		e.teardown()
		e.setState(Terminated, ev.Kind)
		return false

	case host.WindowAvailable:
		if ev.Window == 0 {
			log.Println("WindowAvailable without a native window, ignoring")
			return true
		}
		if e.state == Running {
			// The host replaced the window without destroying the old one.
			e.teardown()
			e.setState(Suspended, ev.Kind)
		}
		if err := e.bringUp(ev.Window); err != nil {
			log.Printf("Failed to initialize display: %v", err)
			return true
		}
		e.setState(Running, ev.Kind)
		if e.immediateDraw {
			e.draw()
		}

	case host.WindowDestroyed:
		if e.state == Running {
			e.teardown()
			e.setState(Suspended, ev.Kind)
		}

	case host.FocusLost:
		if e.state == Running {
			e.draw()
		}

	case host.SaveStateRequested:
		// Nothing is persisted.

	case host.PointerInput:
		e.pointerX, e.pointerY = ev.X, ev.Y
		log.Printf("x=%d\ty=%d", int32(ev.X), int32(ev.Y))

	default:
		log.Printf("Unhandled host event %s", ev.Kind)
	}
	return true
}

func (e *Engine) setState(next State, cause host.Kind) {
	if next == e.state {
		return
	}
	log.Printf("Lifecycle %s -> %s (%s)", e.state, next, cause)
	e.state = next
}

// bringUp acquires a context on window and builds this generation's
// resources. On failure the context is released again.
func (e *Engine) bringUp(window graphics.NativeWindow) error {
	if err := e.ctx.Acquire(window); err != nil {
		return err
	}
	rs, err := BuildResources(e.api, e.ctx)
	if err != nil {
		e.ctx.Release()
		return fmt.Errorf("failed to build resources: %w", err)
	}
	e.res = rs
	return nil
}

// teardown deletes GPU objects while the context is still current, then
// releases the context. Safe when nothing was ever acquired.
func (e *Engine) teardown() {
	if e.res.Valid(e.ctx) {
		e.res.Release(e.api)
	}
	e.res = nil
	e.ctx.Release()
}
