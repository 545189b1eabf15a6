package graphics

// Terrain, particles and clouds share one vertex layout: pos.xyz, uv, shade.
const terrainVert = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aUV;
layout (location = 2) in float aShade;

uniform mat4 view;
uniform mat4 projection;
uniform vec3 offset;

out vec2 uv;
out float shade;
out float dist;

void main() {
	vec4 viewPos = view * vec4(aPos + offset, 1.0);
	gl_Position = projection * viewPos;
	uv = aUV;
	shade = aShade;
	dist = length(viewPos.xyz);
}
`

const terrainFrag = `#version 410 core
in vec2 uv;
in float shade;
in float dist;

uniform sampler2D atlas;
uniform int textured;
uniform vec3 fogColor;
uniform float fogEnd;
uniform float alphaCutoff;

out vec4 FragColor;

void main() {
	vec4 color = textured == 1 ? texture(atlas, uv) : vec4(1.0, 1.0, 1.0, 0.8);
	if (color.a < alphaCutoff) {
		discard;
	}
	float fog = clamp((fogEnd - dist) / (fogEnd * 0.4), 0.0, 1.0);
	FragColor = vec4(mix(fogColor, color.rgb * shade, fog), color.a);
}
`
