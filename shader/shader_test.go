package shader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFragmentShaderDeclaresUniforms(t *testing.T) {
	src := GetFragmentShader()
	assert.True(t, strings.HasPrefix(src, "#extension GL_OES_standard_derivatives"))
	for _, name := range Uniforms() {
		assert.Contains(t, src, " "+name+";", "missing uniform %s", name)
	}
	assert.Contains(t, src, "void main()")
}

func TestVertexShaderDeclaresPosition(t *testing.T) {
	assert.Contains(t, GetVertexShader(), "attribute vec3 "+PositionAttrib+";")
}
