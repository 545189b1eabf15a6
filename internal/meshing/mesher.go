package meshing

import (
	"runtime"
	"sync"

	"crosscraft/internal/block"
	"crosscraft/internal/profiling"
	"crosscraft/internal/world"
)

// Mesher builds face-culled chunk meshes. It implements world.BatchMesher:
// batches are split across worker goroutines, which only read the world.
type Mesher struct {
	workers int
}

// NewMesher returns a mesher using up to workers goroutines per batch.
// A non-positive count uses GOMAXPROCS.
func NewMesher(workers int) *Mesher {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Mesher{workers: workers}
}

// Build replaces the mesh of c.
func (m *Mesher) Build(c *world.Chunk, w *world.World) {
	c.SetResource(BuildChunk(w, c.Pos))
}

// BuildAll meshes cs concurrently, then attaches the results in order.
func (m *Mesher) BuildAll(cs []*world.Chunk, w *world.World) {
	defer profiling.Track("meshing.BuildAll")()
	meshes := make([]*Mesh, len(cs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range min(m.workers, len(cs)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				meshes[i] = BuildChunk(w, cs[i].Pos)
			}
		}()
	}
	for i := range cs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, c := range cs {
		c.SetResource(meshes[i])
	}
}

// BuildChunk meshes the 16-wide column at pos using world data, so faces on
// chunk borders are culled against the neighbouring chunk's voxels.
func BuildChunk(w *world.World, pos world.ChunkPos) *Mesh {
	mesh := &Mesh{Pos: pos}
	dims := w.Dims()
	ox, oz := pos.Origin()
	for x := ox; x < ox+world.ChunkSize; x++ {
		for z := oz; z < oz+world.ChunkSize; z++ {
			if !dims.ContainsColumn(x, z) {
				continue
			}
			for y := 0; y < dims.Height; y++ {
				id := w.Block(x, y, z)
				if id == block.Air {
					continue
				}
				layer := layerOf(id)
				if id.Flora() {
					mesh.layers[layer] = flora(mesh.layers[layer], w, id, x, y, z)
					continue
				}
				mesh.layers[layer] = cube(mesh.layers[layer], w, id, x, y, z)
			}
		}
	}
	return mesh
}

func layerOf(id block.ID) world.Layer {
	switch {
	case id.Flora():
		return world.LayerFlora
	case id.Transparent():
		return world.LayerTransparent
	default:
		return world.LayerOpaque
	}
}

func cube(dst []float32, w *world.World, id block.ID, x, y, z int) []float32 {
	fx, fy, fz := float32(x), float32(y), float32(z)
	for _, f := range faces {
		nx, ny, nz := x+f.dx, y+f.dy, z+f.dz
		if !visible(id, w.Block(nx, ny, nz)) {
			continue
		}
		shade := f.shade
		if !w.Lit(nx, ny, nz) {
			shade *= shadowFactor
		}
		u0, v0, u1, v1 := block.TileUV(id.Tile(f.kind))
		dst = quad(dst, fx, fy, fz, f.corners, u0, v0, u1, v1, shade)
	}
	return dst
}

func flora(dst []float32, w *world.World, id block.ID, x, y, z int) []float32 {
	shade := float32(1)
	if !w.Lit(x, y, z) {
		shade = shadowFactor
	}
	u0, v0, u1, v1 := block.TileUV(id.Tile(block.FaceSide))
	for _, q := range floraQuads {
		dst = quad(dst, float32(x), float32(y), float32(z), q, u0, v0, u1, v1, shade)
	}
	return dst
}
