package glfwcontext

import (
	"fmt"
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/richinsley/nativetoy/graphics"
	"github.com/richinsley/nativetoy/host"
	options "github.com/richinsley/nativetoy/options"
)

// Context is a desktop host: a GLFW window without a client API whose
// callbacks are turned into host events. The rendering context itself is
// owned by the EGL window system bound to the native window.
type Context struct {
	window *glfw.Window
	native graphics.NativeWindow
	queue  *host.Queue
	// A map to store functions to be called on key presses.
	keyCallbacks map[glfw.Key]func()
}

// New creates the window and queues the initial WindowAvailable event.
func New(options *options.ShaderOptions) (*Context, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	win, err := glfw.CreateWindow(*options.Width, *options.Height, "nativetoy", nil, nil)
	if err != nil {
		return nil, err
	}

	native, err := nativeWindow(win)
	if err != nil {
		win.Destroy()
		return nil, err
	}

	c := &Context{
		window:       win,
		native:       native,
		queue:        host.NewQueue(0),
		keyCallbacks: make(map[glfw.Key]func()),
	}

	c.registerHostKeys()
	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetCloseCallback(func(w *glfw.Window) {
		c.queue.Emit(host.Event{Kind: host.ShutdownRequested})
	})
	win.SetFocusCallback(func(w *glfw.Window, focused bool) {
		if !focused {
			c.queue.Emit(host.Event{Kind: host.FocusLost})
		}
	})
	// Minimizing drops the surface the way a mobile host destroys its window.
	win.SetIconifyCallback(func(w *glfw.Window, iconified bool) {
		if iconified {
			c.queue.Emit(host.Event{Kind: host.WindowDestroyed})
		} else {
			c.queue.Emit(host.Event{Kind: host.WindowAvailable, Window: c.native})
		}
	})
	win.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		x, y := c.pointerPosition(xpos, ypos)
		c.queue.Emit(host.Event{Kind: host.PointerInput, X: x, Y: y})
	})

	c.queue.Emit(host.Event{Kind: host.WindowAvailable, Window: native})
	return c, nil
}

// RegisterKeyCallback allows the main application to register a function to be
// called when a specific key is pressed.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

// registerHostKeys maps Escape to ShutdownRequested and S to
// SaveStateRequested.
func (c *Context) registerHostKeys() {
	c.RegisterKeyCallback(glfw.KeyEscape, func() {
		c.queue.Emit(host.Event{Kind: host.ShutdownRequested})
	})
	c.RegisterKeyCallback(glfw.KeyS, func() {
		c.queue.Emit(host.Event{Kind: host.SaveStateRequested})
	})
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	if callback, ok := c.keyCallbacks[key]; ok {
		callback()
	}
}

// pointerPosition converts window coordinates to framebuffer pixels with the
// origin at the bottom left.
func (c *Context) pointerPosition(cursorX, cursorY float64) (float32, float32) {
	fbWidth, fbHeight := c.window.GetFramebufferSize()
	winWidth, winHeight := c.window.GetSize()
	var scaleX, scaleY float64 = 1.0, 1.0
	if winWidth > 0 && winHeight > 0 {
		scaleX = float64(fbWidth) / float64(winWidth)
		scaleY = float64(fbHeight) / float64(winHeight)
	}
	return float32(cursorX * scaleX), float32(fbHeight) - float32(cursorY*scaleY)
}

// Drain polls GLFW without blocking and delivers the resulting events.
func (c *Context) Drain(handle func(host.Event) bool) int {
	glfw.PollEvents()
	return c.queue.Drain(handle)
}

// Shutdown destroys the window. The EGL surface bound to it must already be
// released.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down GLFW. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}

var _ host.Source = (*Context)(nil)
