// Package gles implements graphics.API on top of OpenGL ES through go-gl.
package gles

import (
	"fmt"
	"strings"
	"sync"
	"unsafe"

	gl "github.com/go-gl/gl/v3.1/gles2"

	"github.com/richinsley/nativetoy/graphics"
)

// API is the go-gl backed graphics.API. The bindings target OpenGL ES 3.1,
// so Init fails on drivers that only expose ES 2 entry points.
type API struct {
	getProcAddr func(name string) unsafe.Pointer

	initOnce sync.Once
	initErr  error
}

// New returns an API that resolves entry points with go-gl's platform loader.
func New() *API {
	return &API{}
}

// NewWithLoader returns an API that resolves entry points with getProcAddr,
// typically egl.GetProcAddress.
func NewWithLoader(getProcAddr func(name string) unsafe.Pointer) *API {
	return &API{getProcAddr: getProcAddr}
}

// Init loads the entry points once, against the current context.
func (a *API) Init() error {
	a.initOnce.Do(func() {
		if a.getProcAddr != nil {
			a.initErr = gl.InitWithProcAddrFunc(a.getProcAddr)
		} else {
			a.initErr = gl.Init()
		}
	})
	if a.initErr != nil {
		return fmt.Errorf("failed to initialize OpenGL ES: %w", a.initErr)
	}
	return nil
}

func (a *API) GetString(name graphics.StringName) string {
	var e uint32
	switch name {
	case graphics.Vendor:
		e = gl.VENDOR
	case graphics.Renderer:
		e = gl.RENDERER
	case graphics.Version:
		e = gl.VERSION
	case graphics.ShadingLanguageVersion:
		e = gl.SHADING_LANGUAGE_VERSION
	case graphics.Extensions:
		e = gl.EXTENSIONS
	default:
		return ""
	}
	s := gl.GetString(e)
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}

func capability(c graphics.Capability) uint32 {
	switch c {
	case graphics.CullFace:
		return gl.CULL_FACE
	case graphics.DepthTest:
		return gl.DEPTH_TEST
	}
	panic(fmt.Sprintf("gles: unknown capability %d", c))
}

func (a *API) Enable(c graphics.Capability)  { gl.Enable(capability(c)) }
func (a *API) Disable(c graphics.Capability) { gl.Disable(capability(c)) }

func (a *API) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (a *API) ClearColorBuffer() { gl.Clear(gl.COLOR_BUFFER_BIT) }

func (a *API) CreateShader(kind graphics.ShaderKind, source string) uint32 {
	var t uint32 = gl.VERTEX_SHADER
	if kind == graphics.FragmentShader {
		t = gl.FRAGMENT_SHADER
	}
	shader := gl.CreateShader(t)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	return shader
}

func (a *API) CompileShader(shader uint32) bool {
	gl.CompileShader(shader)
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (a *API) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
	return logText
}

func (a *API) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (a *API) CreateProgram() uint32 { return gl.CreateProgram() }

func (a *API) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (a *API) LinkProgram(program uint32) bool {
	gl.LinkProgram(program)
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (a *API) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
	return logText
}

func (a *API) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (a *API) UseProgram(program uint32) { gl.UseProgram(program) }

func (a *API) GetAttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (a *API) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (a *API) Uniform1f(location int32, v float32) { gl.Uniform1f(location, v) }

func (a *API) Uniform2f(location int32, x, y float32) { gl.Uniform2f(location, x, y) }

func (a *API) Uniform3f(location int32, x, y, z float32) { gl.Uniform3f(location, x, y, z) }

func (a *API) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (a *API) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (a *API) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (a *API) GenBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func bufferTarget(t graphics.BufferTarget) uint32 {
	if t == graphics.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func (a *API) BindBuffer(target graphics.BufferTarget, buffer uint32) {
	gl.BindBuffer(bufferTarget(target), buffer)
}

func (a *API) BufferData(target graphics.BufferTarget, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.BufferData(bufferTarget(target), len(data), gl.Ptr(&data[0]), gl.STATIC_DRAW)
}

func (a *API) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (a *API) EnableVertexAttribArray(location uint32) { gl.EnableVertexAttribArray(location) }

func (a *API) VertexAttribPointer(location uint32, size, stride int) {
	gl.VertexAttribPointer(location, int32(size), gl.FLOAT, false, int32(stride), gl.PtrOffset(0))
}

func (a *API) DrawElements(mode graphics.Primitive, count int, indexType graphics.IndexType) {
	if mode != graphics.Triangles {
		panic(fmt.Sprintf("gles: unknown primitive %d", mode))
	}
	if indexType != graphics.UnsignedByte {
		panic(fmt.Sprintf("gles: unknown index type %d", indexType))
	}
	gl.DrawElements(gl.TRIANGLES, int32(count), gl.UNSIGNED_BYTE, gl.PtrOffset(0))
}

func (a *API) ReadPixels(width, height int, dst []byte) {
	if len(dst) == 0 || len(dst) < width*height*4 {
		return
	}
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&dst[0]))
}

var _ graphics.API = (*API)(nil)
