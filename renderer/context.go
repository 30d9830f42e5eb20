package renderer

import (
	"fmt"
	"log"

	"github.com/richinsley/nativetoy/graphics"
)

// clientVersion is the OpenGL ES major version requested for the context.
const clientVersion = 2

var surfaceAttribs = graphics.ConfigAttribs{
	RedSize:       8,
	GreenSize:     8,
	BlueSize:      8,
	DepthSize:     24,
	RenderableES2: true,
}

// GraphicsContext owns the display connection, drawing surface and rendering
// context. All handles are graphics.None while it is not acquired.
type GraphicsContext struct {
	ws  graphics.WindowSystem
	api graphics.API

	Display graphics.Handle
	Surface graphics.Handle
	Context graphics.Handle
	Width   int
	Height  int

	// Generation counts successful acquisitions.
	Generation uint64
}

// NewGraphicsContext returns an unacquired context.
func NewGraphicsContext(ws graphics.WindowSystem, api graphics.API) *GraphicsContext {
	return &GraphicsContext{ws: ws, api: api}
}

// Valid reports whether the context holds live handles.
func (c *GraphicsContext) Valid() bool {
	return c != nil && c.Display != graphics.None && c.Surface != graphics.None && c.Context != graphics.None
}

// Acquire binds window as the drawing surface and makes a new context
// current on the calling thread. On failure nothing stays installed.
// A context that is already valid is released first.
func (c *GraphicsContext) Acquire(window graphics.NativeWindow) error {
	if c.Valid() {
		c.Release()
	}

	display := c.ws.GetDisplay()
	if display == graphics.None {
		return &ContextError{Op: "get display", Err: ErrNoDisplay}
	}
	if err := c.ws.Initialize(display); err != nil {
		c.ws.Terminate(display)
		return &ContextError{Op: "initialize display", Err: fmt.Errorf("%w: %v", ErrNoDisplay, err)}
	}

	config, err := c.ws.ChooseConfig(display, surfaceAttribs)
	if err != nil || config == graphics.None {
		c.ws.Terminate(display)
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrNoConfig, err)
		} else {
			err = ErrNoConfig
		}
		return &ContextError{Op: "choose config", Err: err}
	}

	surface := c.ws.CreateWindowSurface(display, config, window)
	if surface == graphics.None {
		c.ws.Terminate(display)
		return &ContextError{Op: "create surface", Err: ErrNoSurface}
	}

	context := c.ws.CreateContext(display, config, clientVersion)
	if context == graphics.None {
		c.ws.DestroySurface(display, surface)
		c.ws.Terminate(display)
		return &ContextError{Op: "create context", Err: ErrNoContext}
	}

	if !c.ws.MakeCurrent(display, surface, context) {
		log.Println("Unable to make context current")
		c.ws.DestroyContext(display, context)
		c.ws.DestroySurface(display, surface)
		c.ws.Terminate(display)
		return &ContextError{Op: "make current", Err: ErrMakeCurrentFailed}
	}

	if err := c.api.Init(); err != nil {
		c.ws.MakeCurrent(display, graphics.None, graphics.None)
		c.ws.DestroyContext(display, context)
		c.ws.DestroySurface(display, surface)
		c.ws.Terminate(display)
		return &ContextError{Op: "load entry points", Err: err}
	}

	c.Display = display
	c.Surface = surface
	c.Context = context
	c.Width, c.Height = c.ws.QuerySurfaceSize(display, surface)
	c.Generation++

	c.api.Enable(graphics.CullFace)
	c.api.Disable(graphics.DepthTest)
	c.api.Viewport(0, 0, c.Width, c.Height)

	for _, name := range []graphics.StringName{
		graphics.Version,
		graphics.Vendor,
		graphics.Renderer,
		graphics.Extensions,
		graphics.ShadingLanguageVersion,
	} {
		log.Printf("GL %s = %s", name, c.api.GetString(name))
	}
	log.Printf("Context generation %d acquired (%dx%d)", c.Generation, c.Width, c.Height)
	return nil
}

// Release unbinds and destroys the context and surface, then terminates the
// display connection. It is a no-op when nothing was acquired.
func (c *GraphicsContext) Release() {
	if c.Display != graphics.None {
		c.ws.MakeCurrent(c.Display, graphics.None, graphics.None)
		if c.Context != graphics.None {
			c.ws.DestroyContext(c.Display, c.Context)
		}
		if c.Surface != graphics.None {
			c.ws.DestroySurface(c.Display, c.Surface)
		}
		c.ws.Terminate(c.Display)
	}
	c.Display = graphics.None
	c.Surface = graphics.None
	c.Context = graphics.None
}

// Present swaps the surface buffers.
func (c *GraphicsContext) Present() {
	c.ws.SwapBuffers(c.Display, c.Surface)
}
