package host

import (
	"fmt"

	"github.com/richinsley/nativetoy/graphics"
)

// Kind tags a host lifecycle or input event.
type Kind int

const (
	WindowAvailable Kind = iota + 1
	WindowDestroyed
	FocusLost
	SaveStateRequested
	ShutdownRequested
	PointerInput
)

func (k Kind) String() string {
	switch k {
	case WindowAvailable:
		return "WindowAvailable"
	case WindowDestroyed:
		return "WindowDestroyed"
	case FocusLost:
		return "FocusLost"
	case SaveStateRequested:
		return "SaveStateRequested"
	case ShutdownRequested:
		return "ShutdownRequested"
	case PointerInput:
		return "PointerInput"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Event is one record of the host event stream. Window is only meaningful
// for WindowAvailable, X and Y only for PointerInput.
type Event struct {
	Kind   Kind
	Window graphics.NativeWindow
	X, Y   float32
}

// Source is a host event stream.
type Source interface {
	// Drain delivers every pending event to handle without blocking and
	// returns the number delivered. It stops early when handle returns false.
	Drain(handle func(Event) bool) int
}
