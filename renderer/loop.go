package renderer

import (
	"log"

	"github.com/richinsley/nativetoy/graphics"
)

// fragCoordOffset is added to gl_FragCoord before mainImage is called.
var fragCoordOffset = [2]float32{1.0, 1.0}

// FrameSink receives the RGBA8 readback of every drawn frame, bottom row
// first, before the frame is presented.
type FrameSink interface {
	WriteFrame(pixels []byte, width, height int) error
}

// RenderLoop issues one frame per Tick. It performs no error recovery:
// driver failures inside draw or present are not inspected.
type RenderLoop struct {
	api    graphics.API
	sink   FrameSink
	pixels []byte
}

// NewRenderLoop returns a loop drawing through api. sink may be nil.
func NewRenderLoop(api graphics.API, sink FrameSink) *RenderLoop {
	return &RenderLoop{api: api, sink: sink}
}

// Tick draws and presents one frame. It does nothing and returns false when
// ctx is invalid or rs does not belong to ctx's generation.
func (l *RenderLoop) Tick(ctx *GraphicsContext, rs *ResourceSet, clock *FrameClock) bool {
	if !ctx.Valid() || !rs.Valid(ctx) {
		return false
	}
	api := l.api

	api.Viewport(0, 0, ctx.Width, ctx.Height)
	api.ClearColorBuffer()
	api.UseProgram(rs.Program)
	l.updateUniforms(ctx, rs, clock)
	api.BindVertexArray(rs.VertexArray)
	api.DrawElements(graphics.Triangles, len(quadIndices), graphics.UnsignedByte)

	if l.sink != nil {
		l.capture(ctx)
	}
	ctx.Present()
	return true
}

func (l *RenderLoop) updateUniforms(ctx *GraphicsContext, rs *ResourceSet, clock *FrameClock) {
	l.api.Uniform1f(rs.TimeLoc, float32(clock.Seconds()))
	l.api.Uniform3f(rs.ResolutionLoc, float32(ctx.Width), float32(ctx.Height), 1.0)
	l.api.Uniform2f(rs.FragCoordOffsetLoc, fragCoordOffset[0], fragCoordOffset[1])
}

func (l *RenderLoop) capture(ctx *GraphicsContext) {
	size := ctx.Width * ctx.Height * 4
	if cap(l.pixels) < size {
		l.pixels = make([]byte, size)
	}
	l.pixels = l.pixels[:size]
	l.api.ReadPixels(ctx.Width, ctx.Height, l.pixels)
	if err := l.sink.WriteFrame(l.pixels, ctx.Width, ctx.Height); err != nil {
		log.Printf("Frame sink failed, detaching: %v", err)
		l.sink = nil
	}
}
