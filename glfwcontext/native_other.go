//go:build !linux || wayland

package glfwcontext

import (
	"fmt"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/richinsley/nativetoy/graphics"
)

func nativeWindow(w *glfw.Window) (graphics.NativeWindow, error) {
	return 0, fmt.Errorf("native EGL windows are not supported on %s", runtime.GOOS)
}
