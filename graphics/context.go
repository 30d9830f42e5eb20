package graphics

// Handle is an opaque window-system object (display, config, surface or
// context). The zero value is the "none" sentinel.
type Handle uintptr

// None is the sentinel for a handle that does not refer to anything.
const None Handle = 0

// NativeWindow is the platform drawable supplied by the host, e.g. an X11
// Window id or an ANativeWindow pointer.
type NativeWindow uintptr

// OffscreenWindow asks the window system for an offscreen (pbuffer) surface
// instead of binding a native window.
const OffscreenWindow NativeWindow = ^NativeWindow(0)

// ConfigAttribs is the surface configuration requested from ChooseConfig.
type ConfigAttribs struct {
	RedSize, GreenSize, BlueSize int
	DepthSize                    int
	// RenderableES2 requires an OpenGL ES 2 capable config.
	RenderableES2 bool
}

// WindowSystem defines the display connection, surface and rendering context
// capabilities (the EGL-shaped part of the driver).
type WindowSystem interface {
	GetDisplay() Handle
	Initialize(display Handle) error
	ChooseConfig(display Handle, attribs ConfigAttribs) (Handle, error)
	CreateWindowSurface(display, config Handle, window NativeWindow) Handle
	CreateContext(display, config Handle, clientVersion int) Handle
	// MakeCurrent binds the context; passing None for surface and context
	// unbinds whatever is current.
	MakeCurrent(display, surface, context Handle) bool
	QuerySurfaceSize(display, surface Handle) (width, height int)
	SwapBuffers(display, surface Handle)
	DestroyContext(display, context Handle)
	DestroySurface(display, surface Handle)
	Terminate(display Handle)
}
