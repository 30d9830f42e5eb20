package renderer

import (
	"fmt"
	"log"
	"strings"
	"unsafe"

	"github.com/richinsley/nativetoy/graphics"
	"github.com/richinsley/nativetoy/shader"
)

// Unit quad in clip space, two triangles.
var quadVertices = []float32{
	1.0, -1.0, 0.0,
	1.0, 1.0, 0.0,
	-1.0, 1.0, 0.0,
	-1.0, -1.0, 0.0,
}

var quadIndices = []uint8{
	0, 1, 2,
	2, 3, 0,
}

const floatsPerVertex = 3

// ResourceSet holds the GPU objects of one context generation.
type ResourceSet struct {
	VertexBuffer uint32
	IndexBuffer  uint32
	VertexArray  uint32
	Program      uint32

	PositionLoc        int32
	ResolutionLoc      int32
	TimeLoc            int32
	FragCoordOffsetLoc int32

	// Generation is the GraphicsContext generation these objects belong to.
	Generation uint64
	// Diagnostics holds every non-empty shader or program info log.
	Diagnostics []*BuildError
}

// BuildResources compiles and links the fixed shader pair, resolves its
// locations and uploads the quad. ctx must be valid and current.
func BuildResources(api graphics.API, ctx *GraphicsContext) (*ResourceSet, error) {
	if !ctx.Valid() {
		return nil, fmt.Errorf("build resources: %w", ErrNoContext)
	}
	rs := &ResourceSet{Generation: ctx.Generation}

	program, err := rs.newProgram(api, shader.GetVertexShader(), shader.GetFragmentShader())
	if err != nil {
		return nil, err
	}
	rs.Program = program

	rs.PositionLoc = api.GetAttribLocation(program, shader.PositionAttrib)
	rs.TimeLoc = api.GetUniformLocation(program, shader.GlobalTimeUniform)
	rs.ResolutionLoc = api.GetUniformLocation(program, shader.ResolutionUniform)
	rs.FragCoordOffsetLoc = api.GetUniformLocation(program, shader.FragCoordOffsetUniform)
	if rs.PositionLoc < 0 {
		log.Printf("Attribute %q is not active in the program", shader.PositionAttrib)
	}

	rs.VertexArray = api.GenVertexArray()
	api.BindVertexArray(rs.VertexArray)

	rs.VertexBuffer = api.GenBuffer()
	api.BindBuffer(graphics.ArrayBuffer, rs.VertexBuffer)
	api.BufferData(graphics.ArrayBuffer, float32Bytes(quadVertices))

	rs.IndexBuffer = api.GenBuffer()
	api.BindBuffer(graphics.ElementArrayBuffer, rs.IndexBuffer)
	api.BufferData(graphics.ElementArrayBuffer, quadIndices)

	if rs.PositionLoc >= 0 {
		api.EnableVertexAttribArray(uint32(rs.PositionLoc))
		api.VertexAttribPointer(uint32(rs.PositionLoc), floatsPerVertex, floatsPerVertex*4)
	}
	api.BindVertexArray(0)

	return rs, nil
}

// Valid reports whether the resources belong to ctx's current generation.
func (rs *ResourceSet) Valid(ctx *GraphicsContext) bool {
	return rs != nil && ctx.Valid() && rs.Generation == ctx.Generation && rs.Program != 0
}

// Release deletes the GPU objects. The owning context must still be current.
func (rs *ResourceSet) Release(api graphics.API) {
	if rs == nil {
		return
	}
	if rs.VertexArray != 0 {
		api.DeleteVertexArray(rs.VertexArray)
	}
	if rs.VertexBuffer != 0 {
		api.DeleteBuffer(rs.VertexBuffer)
	}
	if rs.IndexBuffer != 0 {
		api.DeleteBuffer(rs.IndexBuffer)
	}
	if rs.Program != 0 {
		api.DeleteProgram(rs.Program)
	}
	*rs = ResourceSet{}
}

func (rs *ResourceSet) diagnose(stage, text string) {
	text = strings.TrimRight(text, "\x00\n ")
	if text == "" {
		return
	}
	d := &BuildError{Stage: stage, Log: text}
	rs.Diagnostics = append(rs.Diagnostics, d)
	log.Println(d.Error())
}

func (rs *ResourceSet) newProgram(api graphics.API, vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := rs.compileShader(api, vertexSource, graphics.VertexShader)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := rs.compileShader(api, fragmentSource, graphics.FragmentShader)
	if err != nil {
		api.DeleteShader(vertexShader)
		return 0, err
	}

	program := api.CreateProgram()
	api.AttachShader(program, vertexShader)
	api.AttachShader(program, fragmentShader)
	linked := api.LinkProgram(program)
	rs.diagnose("program", api.ProgramInfoLog(program))

	api.DeleteShader(vertexShader)
	api.DeleteShader(fragmentShader)

	if !linked {
		api.DeleteProgram(program)
		return 0, ErrLinkFailed
	}
	return program, nil
}

func (rs *ResourceSet) compileShader(api graphics.API, source string, kind graphics.ShaderKind) (uint32, error) {
	s := api.CreateShader(kind, source)
	compiled := api.CompileShader(s)
	rs.diagnose(kind.String()+" shader", api.ShaderInfoLog(s))
	if !compiled {
		api.DeleteShader(s)
		return 0, fmt.Errorf("%s shader: %w", kind, ErrCompileFailed)
	}
	return s, nil
}

func float32Bytes(v []float32) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*4)
}
