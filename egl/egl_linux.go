//go:build linux

package egl

import (
	"fmt"
	"log"
	"strings"
	"unsafe"

	"github.com/richinsley/nativetoy/graphics"
)

/*
#cgo LDFLAGS: -lEGL
#include <stdint.h>
#include <stdlib.h>
#include <EGL/egl.h>
#include <EGL/eglext.h>

// Extension entry points are resolved at runtime; wrap the calls so Go can
// invoke them.
static PFNEGLQUERYDEVICESEXTPROC eglQueryDevicesEXT_ptr = NULL;
static PFNEGLGETPLATFORMDISPLAYEXTPROC eglGetPlatformDisplayEXT_ptr = NULL;

static void initialize_egl_extension_pointers() {
    eglQueryDevicesEXT_ptr = (PFNEGLQUERYDEVICESEXTPROC) eglGetProcAddress("eglQueryDevicesEXT");
    eglGetPlatformDisplayEXT_ptr = (PFNEGLGETPLATFORMDISPLAYEXTPROC) eglGetProcAddress("eglGetPlatformDisplayEXT");
}

static EGLDisplay get_platform_display(EGLenum platform, void *native_display, const EGLint *attrib_list) {
    if (eglGetPlatformDisplayEXT_ptr) {
        return eglGetPlatformDisplayEXT_ptr(platform, native_display, attrib_list);
    }
    return EGL_NO_DISPLAY;
}

static EGLBoolean query_devices(EGLint max_devices, EGLDeviceEXT *devices, EGLint *num_devices) {
    if (eglQueryDevicesEXT_ptr) {
        return eglQueryDevicesEXT_ptr(max_devices, devices, num_devices);
    }
    return EGL_FALSE;
}

static void *get_proc_address(const char *name) {
    return (void *) eglGetProcAddress(name);
}

static EGLNativeWindowType native_window(uintptr_t w) {
    return (EGLNativeWindowType) w;
}
*/
import "C"

// WindowSystem implements graphics.WindowSystem with EGL. In offscreen mode
// surfaces are pbuffers of a fixed size and the display is taken from the
// first usable EGL device, so no window server is required.
type WindowSystem struct {
	offscreen     bool
	width, height int
}

// New returns a window system that binds native windows from the default
// display.
func New() (graphics.WindowSystem, error) {
	return &WindowSystem{}, nil
}

// NewOffscreen returns a window system that renders into width x height
// pbuffers.
func NewOffscreen(width, height int) (graphics.WindowSystem, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid offscreen size %dx%d", width, height)
	}
	return &WindowSystem{offscreen: true, width: width, height: height}, nil
}

// GetProcAddress resolves a client API entry point through EGL, so GL
// loading needs neither GLX nor a window server.
func GetProcAddress(name string) unsafe.Pointer {
	cname := C.CString(strings.TrimSuffix(name, "\x00"))
	defer C.free(unsafe.Pointer(cname))
	return C.get_proc_address(cname)
}

func toDisplay(h graphics.Handle) C.EGLDisplay { return C.EGLDisplay(unsafe.Pointer(uintptr(h))) }
func toConfig(h graphics.Handle) C.EGLConfig   { return C.EGLConfig(unsafe.Pointer(uintptr(h))) }
func toSurface(h graphics.Handle) C.EGLSurface { return C.EGLSurface(unsafe.Pointer(uintptr(h))) }
func toContext(h graphics.Handle) C.EGLContext { return C.EGLContext(unsafe.Pointer(uintptr(h))) }

func handle(p unsafe.Pointer) graphics.Handle { return graphics.Handle(uintptr(p)) }

// deviceDisplay tries device enumeration first, falling back to the default
// display.
func deviceDisplay() C.EGLDisplay {
	C.initialize_egl_extension_pointers()

	var numDevices C.EGLint
	if C.query_devices(0, nil, &numDevices) == C.EGL_FALSE || numDevices == 0 {
		log.Println("Warning: EGL_EXT_device_query not supported or no devices found. Falling back to EGL_DEFAULT_DISPLAY.")
		return C.eglGetDisplay(C.EGLNativeDisplayType(C.EGL_DEFAULT_DISPLAY))
	}

	log.Printf("Found %d EGL device(s).", numDevices)
	devices := make([]C.EGLDeviceEXT, numDevices)
	if C.query_devices(numDevices, &devices[0], &numDevices) == C.EGL_FALSE {
		return C.eglGetDisplay(C.EGLNativeDisplayType(C.EGL_DEFAULT_DISPLAY))
	}
	for i := 0; i < int(numDevices); i++ {
		display := C.get_platform_display(C.EGL_PLATFORM_DEVICE_EXT, unsafe.Pointer(devices[i]), nil)
		if display != C.EGLDisplay(C.EGL_NO_DISPLAY) {
			log.Printf("Using EGL display from device %d.", i)
			return display
		}
	}
	return C.eglGetDisplay(C.EGLNativeDisplayType(C.EGL_DEFAULT_DISPLAY))
}

func (s *WindowSystem) GetDisplay() graphics.Handle {
	var display C.EGLDisplay
	if s.offscreen {
		display = deviceDisplay()
	} else {
		display = C.eglGetDisplay(C.EGLNativeDisplayType(C.EGL_DEFAULT_DISPLAY))
	}
	return handle(unsafe.Pointer(display))
}

func (s *WindowSystem) Initialize(display graphics.Handle) error {
	var major, minor C.EGLint
	if C.eglInitialize(toDisplay(display), &major, &minor) == C.EGL_FALSE {
		return fmt.Errorf("eglInitialize failed: 0x%x", int(C.eglGetError()))
	}
	log.Printf("EGL Initialized. Version: %d.%d", major, minor)
	if C.eglBindAPI(C.EGL_OPENGL_ES_API) == C.EGL_FALSE {
		return fmt.Errorf("eglBindAPI(EGL_OPENGL_ES_API) failed")
	}
	return nil
}

func (s *WindowSystem) ChooseConfig(display graphics.Handle, attribs graphics.ConfigAttribs) (graphics.Handle, error) {
	var surfaceType C.EGLint = C.EGL_WINDOW_BIT
	if s.offscreen {
		surfaceType = C.EGL_PBUFFER_BIT
	}
	configAttribs := []C.EGLint{
		C.EGL_SURFACE_TYPE, surfaceType,
		C.EGL_BLUE_SIZE, C.EGLint(attribs.BlueSize),
		C.EGL_GREEN_SIZE, C.EGLint(attribs.GreenSize),
		C.EGL_RED_SIZE, C.EGLint(attribs.RedSize),
		C.EGL_DEPTH_SIZE, C.EGLint(attribs.DepthSize),
	}
	if attribs.RenderableES2 {
		configAttribs = append(configAttribs, C.EGL_RENDERABLE_TYPE, C.EGL_OPENGL_ES2_BIT)
	}
	configAttribs = append(configAttribs, C.EGL_NONE)

	var config C.EGLConfig
	var numConfig C.EGLint
	if C.eglChooseConfig(toDisplay(display), &configAttribs[0], &config, 1, &numConfig) == C.EGL_FALSE || numConfig == 0 {
		return graphics.None, fmt.Errorf("failed to choose EGL config")
	}
	return handle(unsafe.Pointer(config)), nil
}

func (s *WindowSystem) CreateWindowSurface(display, config graphics.Handle, window graphics.NativeWindow) graphics.Handle {
	var surface C.EGLSurface
	// Offscreen systems ignore window.
	if s.offscreen {
		pbufferAttribs := []C.EGLint{
			C.EGL_WIDTH, C.EGLint(s.width),
			C.EGL_HEIGHT, C.EGLint(s.height),
			C.EGL_NONE,
		}
		surface = C.eglCreatePbufferSurface(toDisplay(display), toConfig(config), &pbufferAttribs[0])
	} else {
		surface = C.eglCreateWindowSurface(toDisplay(display), toConfig(config), C.native_window(C.uintptr_t(window)), nil)
	}
	if surface == C.EGLSurface(C.EGL_NO_SURFACE) {
		log.Printf("Failed to create EGL surface: 0x%x", int(C.eglGetError()))
		return graphics.None
	}
	return handle(unsafe.Pointer(surface))
}

func (s *WindowSystem) CreateContext(display, config graphics.Handle, clientVersion int) graphics.Handle {
	contextAttribs := []C.EGLint{
		C.EGL_CONTEXT_CLIENT_VERSION, C.EGLint(clientVersion),
		C.EGL_NONE,
	}
	context := C.eglCreateContext(toDisplay(display), toConfig(config), C.EGLContext(C.EGL_NO_CONTEXT), &contextAttribs[0])
	if context == C.EGLContext(C.EGL_NO_CONTEXT) {
		log.Printf("Failed to create EGL context: 0x%x", int(C.eglGetError()))
		return graphics.None
	}
	return handle(unsafe.Pointer(context))
}

func (s *WindowSystem) MakeCurrent(display, surface, context graphics.Handle) bool {
	return C.eglMakeCurrent(toDisplay(display), toSurface(surface), toSurface(surface), toContext(context)) != C.EGL_FALSE
}

func (s *WindowSystem) QuerySurfaceSize(display, surface graphics.Handle) (int, int) {
	var w, h C.EGLint
	C.eglQuerySurface(toDisplay(display), toSurface(surface), C.EGL_WIDTH, &w)
	C.eglQuerySurface(toDisplay(display), toSurface(surface), C.EGL_HEIGHT, &h)
	return int(w), int(h)
}

func (s *WindowSystem) SwapBuffers(display, surface graphics.Handle) {
	C.eglSwapBuffers(toDisplay(display), toSurface(surface))
}

func (s *WindowSystem) DestroyContext(display, context graphics.Handle) {
	C.eglDestroyContext(toDisplay(display), toContext(context))
}

func (s *WindowSystem) DestroySurface(display, surface graphics.Handle) {
	C.eglDestroySurface(toDisplay(display), toSurface(surface))
}

func (s *WindowSystem) Terminate(display graphics.Handle) {
	C.eglTerminate(toDisplay(display))
}
