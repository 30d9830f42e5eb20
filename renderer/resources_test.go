package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/nativetoy/graphics"
)

func acquired(t *testing.T, m *mockDriver) *GraphicsContext {
	t.Helper()
	c := NewGraphicsContext(m, m)
	require.NoError(t, c.Acquire(1))
	return c
}

func TestBuildResources(t *testing.T) {
	m := newMockDriver()
	c := acquired(t, m)

	rs, err := BuildResources(m, c)
	require.NoError(t, err)
	assert.True(t, rs.Valid(c))
	assert.Equal(t, c.Generation, rs.Generation)

	assert.Equal(t, int32(0), rs.PositionLoc)
	assert.Equal(t, int32(1), rs.TimeLoc)
	assert.Equal(t, int32(2), rs.ResolutionLoc)
	assert.Equal(t, int32(3), rs.FragCoordOffsetLoc)

	assert.Equal(t, 4*3*4, m.bufferLen[graphics.ArrayBuffer])
	assert.Equal(t, 6, m.bufferLen[graphics.ElementArrayBuffer])
	assert.Equal(t, [2]int{3, 12}, m.attribs[0])

	assert.Equal(t, "program", m.objects[rs.Program])
	assert.Equal(t, "vao", m.objects[rs.VertexArray])
	assert.Empty(t, rs.Diagnostics)
}

func TestBuildResourcesCapturesDiagnostics(t *testing.T) {
	m := newMockDriver()
	m.shaderLog = "WARNING: 0:1: extension enabled\n"
	m.programLog = "link ok\x00"
	c := acquired(t, m)

	rs, err := BuildResources(m, c)
	require.NoError(t, err, "info logs alone are not fatal")
	require.Len(t, rs.Diagnostics, 3)
	assert.Equal(t, "vertex shader", rs.Diagnostics[0].Stage)
	assert.Equal(t, "WARNING: 0:1: extension enabled", rs.Diagnostics[0].Log)
	assert.Equal(t, "fragment shader", rs.Diagnostics[1].Stage)
	assert.Equal(t, "program", rs.Diagnostics[2].Stage)
	assert.Equal(t, "link ok", rs.Diagnostics[2].Log)
}

func TestBuildResourcesLinkFailure(t *testing.T) {
	m := newMockDriver()
	m.failLink = true
	c := acquired(t, m)

	_, err := BuildResources(m, c)
	assert.ErrorIs(t, err, ErrLinkFailed)
	assert.Empty(t, m.objects, "shaders and program are deleted on failure")
}

func TestBuildResourcesRequiresContext(t *testing.T) {
	m := newMockDriver()
	_, err := BuildResources(m, NewGraphicsContext(m, m))
	assert.ErrorIs(t, err, ErrNoContext)
}

func TestResourcesTrackGeneration(t *testing.T) {
	m := newMockDriver()
	c := acquired(t, m)
	first, err := BuildResources(m, c)
	require.NoError(t, err)
	oldProgram := first.Program

	c.Release()
	assert.False(t, first.Valid(c))

	require.NoError(t, c.Acquire(2))
	assert.False(t, first.Valid(c), "resources from an earlier generation are stale")

	second, err := BuildResources(m, c)
	require.NoError(t, err)
	assert.True(t, second.Valid(c))
	assert.NotEqual(t, oldProgram, second.Program)
}

func TestReleaseResources(t *testing.T) {
	m := newMockDriver()
	c := acquired(t, m)
	rs, err := BuildResources(m, c)
	require.NoError(t, err)

	rs.Release(m)
	assert.Empty(t, m.objects)
	assert.Equal(t, ResourceSet{}, *rs)
	assert.False(t, rs.Valid(c))

	var none *ResourceSet
	assert.NotPanics(t, func() { none.Release(m) })
}
