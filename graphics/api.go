package graphics

type Capability uint32

const (
	CullFace Capability = iota + 1
	DepthTest
)

type ShaderKind uint32

const (
	VertexShader ShaderKind = iota + 1
	FragmentShader
)

func (k ShaderKind) String() string {
	switch k {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	}
	return "unknown"
}

type BufferTarget uint32

const (
	ArrayBuffer BufferTarget = iota + 1
	ElementArrayBuffer
)

type Primitive uint32

const (
	Triangles Primitive = iota + 1
)

type IndexType uint32

const (
	UnsignedByte IndexType = iota + 1
)

// StringName selects a driver identification string.
type StringName uint32

const (
	Vendor StringName = iota + 1
	Renderer
	Version
	ShadingLanguageVersion
	Extensions
)

func (n StringName) String() string {
	switch n {
	case Vendor:
		return "Vendor"
	case Renderer:
		return "Renderer"
	case Version:
		return "Version"
	case ShadingLanguageVersion:
		return "GLSL"
	case Extensions:
		return "Extensions"
	}
	return "unknown"
}

// API is the subset of OpenGL ES 2 used by the renderer. All calls must be
// made on the thread that owns the current context.
type API interface {
	// Init loads driver entry points. It must be called with a context
	// current and is safe to call more than once.
	Init() error
	GetString(name StringName) string

	Enable(c Capability)
	Disable(c Capability)
	Viewport(x, y, width, height int)
	ClearColorBuffer()

	CreateShader(kind ShaderKind, source string) uint32
	CompileShader(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32) bool
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	// GetAttribLocation and GetUniformLocation return -1 when name is not
	// an active attribute or uniform.
	GetAttribLocation(program uint32, name string) int32
	GetUniformLocation(program uint32, name string) int32
	Uniform1f(location int32, v float32)
	Uniform2f(location int32, x, y float32)
	Uniform3f(location int32, x, y, z float32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	GenBuffer() uint32
	BindBuffer(target BufferTarget, buffer uint32)
	// BufferData uploads immutable (static draw) data to the bound buffer.
	BufferData(target BufferTarget, data []byte)
	DeleteBuffer(buffer uint32)
	EnableVertexAttribArray(location uint32)
	// VertexAttribPointer describes size float components per vertex,
	// non-normalized, starting at offset 0 of the bound array buffer.
	VertexAttribPointer(location uint32, size, stride int)

	DrawElements(mode Primitive, count int, indexType IndexType)
	// ReadPixels reads the color buffer as RGBA8 into dst, which must hold
	// width*height*4 bytes.
	ReadPixels(width, height int, dst []byte)
}
