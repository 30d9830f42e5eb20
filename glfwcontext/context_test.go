package glfwcontext

import (
	"testing"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"

	"github.com/richinsley/nativetoy/host"
)

// windowless builds a Context without calling into GLFW.
func windowless() *Context {
	c := &Context{
		queue:        host.NewQueue(8),
		keyCallbacks: make(map[glfw.Key]func()),
	}
	c.registerHostKeys()
	return c
}

func drained(c *Context) []host.Kind {
	var kinds []host.Kind
	c.queue.Drain(func(ev host.Event) bool {
		kinds = append(kinds, ev.Kind)
		return true
	})
	return kinds
}

func TestHostKeys(t *testing.T) {
	c := windowless()
	c.glfwKeyCallback(nil, glfw.KeyS, 0, glfw.Press, 0)
	c.glfwKeyCallback(nil, glfw.KeyEscape, 0, glfw.Press, 0)
	assert.Equal(t, []host.Kind{host.SaveStateRequested, host.ShutdownRequested}, drained(c))
}

func TestKeyReleaseIgnored(t *testing.T) {
	c := windowless()
	c.glfwKeyCallback(nil, glfw.KeyEscape, 0, glfw.Release, 0)
	c.glfwKeyCallback(nil, glfw.KeyS, 0, glfw.Repeat, 0)
	assert.Empty(t, drained(c))
}

func TestRegisterKeyCallbackOverrides(t *testing.T) {
	c := windowless()
	pressed := 0
	c.RegisterKeyCallback(glfw.KeyS, func() { pressed++ })
	c.RegisterKeyCallback(glfw.KeySpace, func() { pressed++ })

	c.glfwKeyCallback(nil, glfw.KeyS, 0, glfw.Press, 0)
	c.glfwKeyCallback(nil, glfw.KeySpace, 0, glfw.Press, 0)
	assert.Equal(t, 2, pressed)
	assert.Empty(t, drained(c))
}
