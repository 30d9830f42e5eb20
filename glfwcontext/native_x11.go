//go:build linux && !wayland

package glfwcontext

import (
	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/richinsley/nativetoy/graphics"
)

func nativeWindow(w *glfw.Window) (graphics.NativeWindow, error) {
	return graphics.NativeWindow(w.GetX11Window()), nil
}
