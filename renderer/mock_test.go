package renderer

import (
	"errors"
	"fmt"

	"github.com/richinsley/nativetoy/graphics"
	"github.com/richinsley/nativetoy/shader"
)

// mockDriver records every window-system and GL call. Window-system handles
// and GL object names are never reused, so stale handles are detectable.
type mockDriver struct {
	calls []string

	nextHandle graphics.Handle
	nextObject uint32
	live       map[graphics.Handle]string
	objects    map[uint32]string
	current    graphics.Handle

	width, height int

	failInitialize  bool
	failConfig      bool
	failMakeCurrent bool
	failLink        bool
	shaderLog       string
	programLog      string

	uniforms  map[int32][]float32
	uniformAt map[int32]string
	bufferLen map[graphics.BufferTarget]int
	attribs   map[uint32][2]int
	draws     int
	swaps     int
}

func newMockDriver() *mockDriver {
	return &mockDriver{
		live:      make(map[graphics.Handle]string),
		objects:   make(map[uint32]string),
		width:     640,
		height:    480,
		uniforms:  make(map[int32][]float32),
		uniformAt: make(map[int32]string),
		bufferLen: make(map[graphics.BufferTarget]int),
		attribs:   make(map[uint32][2]int),
	}
}

func (m *mockDriver) record(format string, args ...any) {
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

func (m *mockDriver) handle(kind string) graphics.Handle {
	m.nextHandle++
	m.live[m.nextHandle] = kind
	return m.nextHandle
}

func (m *mockDriver) object(kind string) uint32 {
	m.nextObject++
	m.objects[m.nextObject] = kind
	return m.nextObject
}

// uniform returns the last value uploaded to the named uniform.
func (m *mockDriver) uniform(name string) []float32 {
	for loc, n := range m.uniformAt {
		if n == name {
			return m.uniforms[loc]
		}
	}
	return nil
}

// ── graphics.WindowSystem ──

func (m *mockDriver) GetDisplay() graphics.Handle {
	m.record("GetDisplay")
	return m.handle("display")
}

func (m *mockDriver) Initialize(display graphics.Handle) error {
	m.record("Initialize")
	if m.failInitialize {
		return errors.New("initialize refused")
	}
	return nil
}

func (m *mockDriver) ChooseConfig(display graphics.Handle, attribs graphics.ConfigAttribs) (graphics.Handle, error) {
	m.record("ChooseConfig %d%d%d/%d es2=%t", attribs.RedSize, attribs.GreenSize, attribs.BlueSize, attribs.DepthSize, attribs.RenderableES2)
	if m.failConfig {
		return graphics.None, nil
	}
	return m.nextHandle + 1000, nil
}

func (m *mockDriver) CreateWindowSurface(display, config graphics.Handle, window graphics.NativeWindow) graphics.Handle {
	m.record("CreateWindowSurface")
	return m.handle("surface")
}

func (m *mockDriver) CreateContext(display, config graphics.Handle, clientVersion int) graphics.Handle {
	m.record("CreateContext v%d", clientVersion)
	return m.handle("context")
}

func (m *mockDriver) MakeCurrent(display, surface, context graphics.Handle) bool {
	if context == graphics.None {
		m.record("MakeCurrent none")
		m.current = graphics.None
		return true
	}
	m.record("MakeCurrent")
	if m.failMakeCurrent {
		return false
	}
	m.current = context
	return true
}

func (m *mockDriver) QuerySurfaceSize(display, surface graphics.Handle) (int, int) {
	return m.width, m.height
}

func (m *mockDriver) SwapBuffers(display, surface graphics.Handle) {
	m.record("SwapBuffers")
	m.swaps++
}

func (m *mockDriver) DestroyContext(display, context graphics.Handle) {
	m.record("DestroyContext")
	delete(m.live, context)
}

func (m *mockDriver) DestroySurface(display, surface graphics.Handle) {
	m.record("DestroySurface")
	delete(m.live, surface)
}

func (m *mockDriver) Terminate(display graphics.Handle) {
	m.record("Terminate")
	delete(m.live, display)
}

// ── graphics.API ──

func (m *mockDriver) Init() error { return nil }

func (m *mockDriver) GetString(name graphics.StringName) string { return "mock " + name.String() }

func (m *mockDriver) Enable(c graphics.Capability)  { m.record("Enable %d", c) }
func (m *mockDriver) Disable(c graphics.Capability) { m.record("Disable %d", c) }

func (m *mockDriver) Viewport(x, y, width, height int) {
	m.record("Viewport %d %d %d %d", x, y, width, height)
}

func (m *mockDriver) ClearColorBuffer() { m.record("Clear") }

func (m *mockDriver) CreateShader(kind graphics.ShaderKind, source string) uint32 {
	m.record("CreateShader %s", kind)
	return m.object("shader")
}

func (m *mockDriver) CompileShader(s uint32) bool { return true }

func (m *mockDriver) ShaderInfoLog(s uint32) string { return m.shaderLog }

func (m *mockDriver) DeleteShader(s uint32) { delete(m.objects, s) }

func (m *mockDriver) CreateProgram() uint32 { return m.object("program") }

func (m *mockDriver) AttachShader(program, s uint32) {}

func (m *mockDriver) LinkProgram(program uint32) bool { return !m.failLink }

func (m *mockDriver) ProgramInfoLog(program uint32) string { return m.programLog }

func (m *mockDriver) DeleteProgram(program uint32) { delete(m.objects, program) }

func (m *mockDriver) UseProgram(program uint32) { m.record("UseProgram %d", program) }

func (m *mockDriver) GetAttribLocation(program uint32, name string) int32 {
	if name == shader.PositionAttrib {
		return 0
	}
	return -1
}

func (m *mockDriver) GetUniformLocation(program uint32, name string) int32 {
	for i, u := range shader.Uniforms() {
		if u == name {
			loc := int32(i + 1)
			m.uniformAt[loc] = name
			return loc
		}
	}
	return -1
}

func (m *mockDriver) Uniform1f(loc int32, v float32) {
	m.record("Uniform1f")
	m.uniforms[loc] = []float32{v}
}

func (m *mockDriver) Uniform2f(loc int32, x, y float32) {
	m.record("Uniform2f")
	m.uniforms[loc] = []float32{x, y}
}

func (m *mockDriver) Uniform3f(loc int32, x, y, z float32) {
	m.record("Uniform3f")
	m.uniforms[loc] = []float32{x, y, z}
}

func (m *mockDriver) GenVertexArray() uint32 { return m.object("vao") }

func (m *mockDriver) BindVertexArray(vao uint32) { m.record("BindVertexArray %d", vao) }

func (m *mockDriver) DeleteVertexArray(vao uint32) { delete(m.objects, vao) }

func (m *mockDriver) GenBuffer() uint32 { return m.object("buffer") }

func (m *mockDriver) BindBuffer(target graphics.BufferTarget, buffer uint32) {}

func (m *mockDriver) BufferData(target graphics.BufferTarget, data []byte) {
	m.bufferLen[target] = len(data)
}

func (m *mockDriver) DeleteBuffer(buffer uint32) { delete(m.objects, buffer) }

func (m *mockDriver) EnableVertexAttribArray(loc uint32) {}

func (m *mockDriver) VertexAttribPointer(loc uint32, size, stride int) {
	m.attribs[loc] = [2]int{size, stride}
}

func (m *mockDriver) DrawElements(mode graphics.Primitive, count int, indexType graphics.IndexType) {
	m.record("DrawElements %d %d %d", mode, count, indexType)
	m.draws++
}

func (m *mockDriver) ReadPixels(width, height int, dst []byte) {
	m.record("ReadPixels")
	for i := range dst {
		dst[i] = 0xff
	}
}

// liveKinds counts live window-system handles by kind.
func (m *mockDriver) liveKinds() map[string]int {
	out := make(map[string]int)
	for _, k := range m.live {
		out[k]++
	}
	return out
}
