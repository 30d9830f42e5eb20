package shader

// Names the renderer resolves against the linked program.
const (
	PositionAttrib          = "position"
	GlobalTimeUniform       = "iGlobalTime"
	ResolutionUniform       = "iResolution"
	FragCoordOffsetUniform  = "ifFragCoordOffsetUniform"
	standardDerivativesExt  = "#extension GL_OES_standard_derivatives : enable\n"
	mediumPrecisionPreamble = "precision mediump float;\nprecision mediump int;\n"
)

// ────────────────────────────────── Vertex ──────────────────────────────────

// Pass-through: the quad is already in clip space.
const vertexShaderSource = mediumPrecisionPreamble + `attribute vec3 position;
void main() {
    gl_Position.xyz = position;
    gl_Position.w = 1.0;
}
`

// ───────────────────────────────── Fragment ─────────────────────────────────

const fragmentUniforms = `uniform vec3      iResolution;
uniform float     iGlobalTime;
uniform vec2      ifFragCoordOffsetUniform;
`

// Raymarched signed-distance scene: a unit sphere resting on a plane with a
// small sphere orbiting it, lit by one point light with ambient occlusion.
const sceneSource = `
float world(vec3 a) {
    return min(min(length(a) - 1., dot(a, vec3(0., 1., 0.)) + 1.),
               length(a - vec3(1.5 * cos(iGlobalTime), 0., 1.5 * sin(iGlobalTime))) - .2);
}

float trace(vec3 O, vec3 D) {
    float L = 0.;
    for (int i = 0; i < 128; ++i) {
        float d = world(O + D * L);
        L += d;
        if (d < .0001 * L) break;
    }
    return L;
}

vec3 wnormal(vec3 a) {
    vec2 e = vec2(.001, 0.);
    float w = world(a);
    return normalize(vec3(world(a + e.xyy) - w,
                          world(a + e.yxy) - w,
                          world(a + e.yyx) - w));
}

vec3 enlight(vec3 at, vec3 normal, vec3 diffuse, vec3 l_color, vec3 l_pos) {
    vec3 l_dir = l_pos - at;
    return diffuse * l_color * max(0., dot(normal, normalize(l_dir))) / dot(l_dir, l_dir);
}

float occlusion(vec3 at, vec3 normal) {
    float b = 0.;
    for (int i = 1; i <= 4; ++i) {
        float L = .06 * float(i);
        float d = world(at + normal * L);
        b += max(0., L - d);
    }
    return min(b, 1.);
}

void mainImage(out vec4 fragColor, in vec2 fragCoord) {
    vec2 uv = gl_FragCoord.xy / iResolution.xy * 2. - 1.;
    uv.x *= iResolution.x / iResolution.y;
    vec3 O = vec3(0., 0., 3.);
    vec3 D = normalize(vec3(uv, -2.));
    float path = trace(O, D);
    vec3 position = O + D * path;
    vec3 normal_pos = wnormal(position);
    vec3 color = vec3(.2) * (1. - occlusion(position, normal_pos));
    color += enlight(position, normal_pos, vec3(1.), vec3(1.), vec3(1., 1., 2.));
    color = mix(color, vec3(0.), smoothstep(0., 20., path));
    fragColor = vec4(color, 0.);
}
`

const fragmentMain = `
void main() {
    mainImage(gl_FragColor, gl_FragCoord.xy + ifFragCoordOffsetUniform);
    gl_FragColor.w = 1.;
}
`

// ─────────────────────────────────── Public API ───────────────────────────────

func GetVertexShader() string {
	return vertexShaderSource
}

// GetFragmentShader returns the complete GLSL ES 1.00 fragment shader.
func GetFragmentShader() string {
	return standardDerivativesExt + mediumPrecisionPreamble + fragmentUniforms + sceneSource + fragmentMain
}

// Uniforms lists the uniforms the renderer uploads every frame.
func Uniforms() []string {
	return []string{GlobalTimeUniform, ResolutionUniform, FragCoordOffsetUniform}
}
