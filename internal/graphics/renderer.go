package graphics

import (
	"image"

	"crosscraft/internal/meshing"
	"crosscraft/internal/particle"
	"crosscraft/internal/profiling"
	"crosscraft/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

const floatSize = 4

var skyColor = mgl32.Vec3{0.53, 0.81, 0.92}

// chunkBuffers holds the uploaded layers of one chunk mesh.
type chunkBuffers struct {
	vao    [len(world.Layers)]uint32
	vbo    [len(world.Layers)]uint32
	counts [len(world.Layers)]int32
}

func (b *chunkBuffers) Release() {
	gl.DeleteVertexArrays(int32(len(b.vao)), &b.vao[0])
	gl.DeleteBuffers(int32(len(b.vbo)), &b.vbo[0])
}

// Renderer implements world.Renderer on OpenGL 4.1 core.
type Renderer struct {
	shader *Shader
	camera *Camera
	atlas  uint32
	fogEnd float32

	view mgl32.Mat4
	proj mgl32.Mat4

	// streamed geometry for particles and clouds
	streamVAO uint32
	streamVBO uint32
	scratch   []float32

	layer world.Layer
	log   logrus.FieldLogger
}

// NewRenderer compiles the shader and uploads the atlas. It must run on the
// thread owning the GL context.
func NewRenderer(atlas *image.RGBA, width, height int, fogEnd float32, log logrus.FieldLogger) (*Renderer, error) {
	shader, err := NewShader(terrainVert, terrainFrag)
	if err != nil {
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	r := &Renderer{
		shader: shader,
		camera: NewCamera(width, height),
		atlas:  UploadTexture(atlas),
		fogEnd: fogEnd,
		log:    log,
	}
	gl.GenVertexArrays(1, &r.streamVAO)
	gl.GenBuffers(1, &r.streamVBO)
	gl.BindVertexArray(r.streamVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.streamVBO)
	setVertexLayout()
	gl.BindVertexArray(0)

	log.WithField("gl", gl.GoStr(gl.GetString(gl.VERSION))).Info("renderer ready")
	return r, nil
}

// SetViewport resizes the GL viewport and the projection.
func (r *Renderer) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	r.camera.SetViewport(width, height)
}

// BeginFrame clears the target and loads the camera uniforms.
func (r *Renderer) BeginFrame(view mgl32.Mat4) {
	r.view = view
	r.proj = r.camera.ProjectionMatrix()

	gl.ClearColor(skyColor.X(), skyColor.Y(), skyColor.Z(), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.shader.Use()
	r.shader.SetMatrix4("view", &r.view[0])
	r.shader.SetMatrix4("projection", &r.proj[0])
	r.shader.SetVector3("fogColor", skyColor.X(), skyColor.Y(), skyColor.Z())
	r.shader.SetFloat("fogEnd", r.fogEnd)
	r.shader.SetVector3("offset", 0, 0, 0)
	r.shader.SetInt("atlas", 0)
	r.shader.SetInt("textured", 1)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.atlas)

	r.layer = -1
}

// DrawChunk implements world.Renderer. Meshes are uploaded on first draw and
// the upload is owned by the mesh, so eviction frees it.
func (r *Renderer) DrawChunk(c *world.Chunk, layer world.Layer) {
	mesh, ok := c.Resource().(*meshing.Mesh)
	if !ok || mesh == nil {
		return
	}
	bufs, _ := mesh.GPU().(*chunkBuffers)
	if bufs == nil {
		bufs = upload(mesh)
		mesh.AttachGPU(bufs)
	}
	if bufs.counts[layer] == 0 {
		return
	}
	r.setLayer(layer)
	gl.BindVertexArray(bufs.vao[layer])
	gl.DrawArrays(gl.TRIANGLES, 0, bufs.counts[layer])
}

// setLayer switches blend, depth and culling state when the pass changes.
func (r *Renderer) setLayer(layer world.Layer) {
	if r.layer == layer {
		return
	}
	r.layer = layer
	switch layer {
	case world.LayerOpaque:
		gl.Disable(gl.BLEND)
		gl.Enable(gl.CULL_FACE)
		gl.DepthMask(true)
		r.shader.SetFloat("alphaCutoff", 0.5)
	case world.LayerFlora:
		gl.Disable(gl.BLEND)
		gl.Disable(gl.CULL_FACE)
		gl.DepthMask(true)
		r.shader.SetFloat("alphaCutoff", 0.5)
	case world.LayerTransparent:
		gl.Enable(gl.BLEND)
		gl.Disable(gl.CULL_FACE)
		gl.DepthMask(false)
		r.shader.SetFloat("alphaCutoff", 0.01)
	}
}

func upload(m *meshing.Mesh) *chunkBuffers {
	defer profiling.Track("graphics.Upload")()
	b := &chunkBuffers{}
	gl.GenVertexArrays(int32(len(b.vao)), &b.vao[0])
	gl.GenBuffers(int32(len(b.vbo)), &b.vbo[0])
	for _, layer := range world.Layers {
		verts := m.Vertices(layer)
		b.counts[layer] = int32(m.VertexCount(layer))
		gl.BindVertexArray(b.vao[layer])
		gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo[layer])
		if len(verts) > 0 {
			gl.BufferData(gl.ARRAY_BUFFER, len(verts)*floatSize, gl.Ptr(verts), gl.STATIC_DRAW)
		}
		setVertexLayout()
	}
	gl.BindVertexArray(0)
	return b
}

func setVertexLayout() {
	stride := int32(meshing.VertexStride * floatSize)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*floatSize))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(2, 1, gl.FLOAT, false, stride, gl.PtrOffset(5*floatSize))
	gl.EnableVertexAttribArray(2)
}

// DrawClouds implements clouds.Drawer with an untextured translucent sheet
// scrolled along X.
func (r *Renderer) DrawClouds(offset, height float32) {
	const extent = 2048
	r.scratch = r.scratch[:0]
	corners := [4][2]float32{{-extent, -extent}, {extent, -extent}, {extent, extent}, {-extent, extent}}
	for _, i := range [6]int{0, 3, 2, 2, 1, 0} {
		r.scratch = append(r.scratch, corners[i][0]+offset, height, corners[i][1], 0, 0, 1)
	}
	r.layer = -1
	gl.Enable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)
	gl.DepthMask(false)
	r.shader.SetInt("textured", 0)
	r.shader.SetFloat("alphaCutoff", 0)
	r.drawStream()
	r.shader.SetInt("textured", 1)
}

// DrawParticles implements particle.Drawer as camera-facing quads.
func (r *Renderer) DrawParticles(ps []particle.Particle) {
	const size = 0.1
	right := mgl32.Vec3{r.view.At(0, 0), r.view.At(0, 1), r.view.At(0, 2)}.Mul(size)
	up := mgl32.Vec3{r.view.At(1, 0), r.view.At(1, 1), r.view.At(1, 2)}.Mul(size)

	r.scratch = r.scratch[:0]
	for _, p := range ps {
		corners := [4]mgl32.Vec3{
			p.Position.Sub(right).Sub(up),
			p.Position.Add(right).Sub(up),
			p.Position.Add(right).Add(up),
			p.Position.Sub(right).Add(up),
		}
		for _, i := range [6]int{0, 1, 2, 2, 3, 0} {
			c := corners[i]
			r.scratch = append(r.scratch, c.X(), c.Y(), c.Z(), p.UV[2*i], p.UV[2*i+1], 1)
		}
	}
	r.layer = -1
	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)
	gl.DepthMask(true)
	r.shader.SetFloat("alphaCutoff", 0.5)
	r.drawStream()
}

func (r *Renderer) drawStream() {
	if len(r.scratch) == 0 {
		return
	}
	gl.BindVertexArray(r.streamVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.streamVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.scratch)*floatSize, gl.Ptr(r.scratch), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.scratch)/meshing.VertexStride))
	gl.BindVertexArray(0)
}

// Dispose frees the GL objects owned by the renderer. Chunk buffers are freed
// by their meshes.
func (r *Renderer) Dispose() {
	gl.DeleteVertexArrays(1, &r.streamVAO)
	gl.DeleteBuffers(1, &r.streamVBO)
	gl.DeleteTextures(1, &r.atlas)
	r.shader.Delete()
}
