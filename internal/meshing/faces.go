package meshing

import "crosscraft/internal/block"

type face struct {
	dx, dy, dz int
	corners    [4][3]float32 // counter-clockwise seen from outside
	kind       block.Face
	shade      float32
}

var faces = [6]face{
	{dx: 1, corners: [4][3]float32{{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}}, kind: block.FaceSide, shade: 0.8},
	{dx: -1, corners: [4][3]float32{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}, kind: block.FaceSide, shade: 0.8},
	{dy: 1, corners: [4][3]float32{{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}}, kind: block.FaceTop, shade: 1},
	{dy: -1, corners: [4][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}, kind: block.FaceBottom, shade: 0.5},
	{dz: 1, corners: [4][3]float32{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}, kind: block.FaceSide, shade: 0.6},
	{dz: -1, corners: [4][3]float32{{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}}, kind: block.FaceSide, shade: 0.6},
}

// crossed quads for flora, each spanning a diagonal of the cell.
var floraQuads = [2][4][3]float32{
	{{0, 0, 0}, {1, 0, 1}, {1, 1, 1}, {0, 1, 0}},
	{{1, 0, 0}, {0, 0, 1}, {0, 1, 1}, {1, 1, 0}},
}

// shadowFactor darkens faces whose neighbour cell is not sky-visible.
const shadowFactor = 0.6

// visible reports whether the face of id towards neighbour n must be drawn.
func visible(id, n block.ID) bool {
	if n == id {
		return false
	}
	return !n.Opaque()
}

// quad appends two triangles (v0,v1,v2) (v2,v3,v0) for the corners offset by origin.
func quad(dst []float32, ox, oy, oz float32, c [4][3]float32, u0, v0, u1, v1, shade float32) []float32 {
	uv := [4][2]float32{{u0, v1}, {u1, v1}, {u1, v0}, {u0, v0}}
	for _, i := range [6]int{0, 1, 2, 2, 3, 0} {
		dst = append(dst, ox+c[i][0], oy+c[i][1], oz+c[i][2], uv[i][0], uv[i][1], shade)
	}
	return dst
}
