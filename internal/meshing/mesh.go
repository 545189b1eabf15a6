package meshing

import (
	"crosscraft/internal/world"
)

// VertexStride is the number of float32 per vertex (pos.xyz + uv + shade).
const VertexStride = 6

// Releaser frees GPU state uploaded from a mesh.
type Releaser interface {
	Release()
}

// Mesh is the per-layer vertex data of one chunk. It is the chunk's render
// resource; releasing it drops the vertex data and any uploaded GPU buffers.
type Mesh struct {
	Pos    world.ChunkPos
	layers [len(world.Layers)][]float32
	gpu    Releaser
}

// Vertices returns the interleaved triangle list of layer.
func (m *Mesh) Vertices(layer world.Layer) []float32 {
	return m.layers[layer]
}

// VertexCount returns the number of vertices in layer.
func (m *Mesh) VertexCount(layer world.Layer) int {
	return len(m.layers[layer]) / VertexStride
}

// Empty reports whether no layer has geometry.
func (m *Mesh) Empty() bool {
	for _, l := range m.layers {
		if len(l) > 0 {
			return false
		}
	}
	return true
}

// GPU returns the uploaded buffers, or nil if the mesh has not been uploaded.
func (m *Mesh) GPU() Releaser {
	return m.gpu
}

// AttachGPU records the buffers uploaded from this mesh.
func (m *Mesh) AttachGPU(r Releaser) {
	if m.gpu != nil {
		m.gpu.Release()
	}
	m.gpu = r
}

// Release implements world.Resource.
func (m *Mesh) Release() {
	if m.gpu != nil {
		m.gpu.Release()
		m.gpu = nil
	}
	for i := range m.layers {
		m.layers[i] = nil
	}
}
