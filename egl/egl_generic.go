//go:build !linux

package egl

import (
	"fmt"
	"unsafe"

	"github.com/richinsley/nativetoy/graphics"
)

func New() (graphics.WindowSystem, error) {
	return nil, fmt.Errorf("egl is not supported on this platform")
}

func NewOffscreen(width, height int) (graphics.WindowSystem, error) {
	return nil, fmt.Errorf("egl offscreen rendering is not supported on this platform")
}

func GetProcAddress(name string) unsafe.Pointer {
	return nil
}
