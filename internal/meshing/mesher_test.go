package meshing

import (
	"io"
	"testing"

	"crosscraft/internal/block"
	"crosscraft/internal/config"
	"crosscraft/internal/world"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyWorld(t testing.TB) *world.World {
	t.Helper()
	cfg := config.Defaults()
	cfg.World.SizeChunks = 2
	log := logrus.New()
	log.SetOutput(io.Discard)
	w, err := world.New(cfg, world.Deps{Generator: world.GeneratorFunc(func(*world.Chunk, *world.World) {})}, log)
	require.NoError(t, err)
	return w
}

func shades(m *Mesh, layer world.Layer) []float32 {
	v := m.Vertices(layer)
	var out []float32
	for i := 5; i < len(v); i += VertexStride {
		out = append(out, v[i])
	}
	return out
}

func TestSingleBlockMesh(t *testing.T) {
	w := emptyWorld(t)
	w.SetBlock(3, 10, 3, block.Stone)
	m := BuildChunk(w, world.ChunkPos{})
	assert.Equal(t, 36, m.VertexCount(world.LayerOpaque))
	assert.Zero(t, m.VertexCount(world.LayerFlora))
	assert.Zero(t, m.VertexCount(world.LayerTransparent))
}

func TestTouchingBlocksCullSharedFaces(t *testing.T) {
	w := emptyWorld(t)
	w.SetBlock(3, 10, 3, block.Stone)
	w.SetBlock(4, 10, 3, block.Dirt)
	m := BuildChunk(w, world.ChunkPos{})
	assert.Equal(t, 60, m.VertexCount(world.LayerOpaque))
}

func TestCrossChunkFaceCulling(t *testing.T) {
	w := emptyWorld(t)
	w.SetBlock(world.ChunkSize-1, 10, 0, block.Stone)
	w.SetBlock(world.ChunkSize, 10, 0, block.Stone)
	assert.Equal(t, 30, BuildChunk(w, world.ChunkPos{}).VertexCount(world.LayerOpaque))
	assert.Equal(t, 30, BuildChunk(w, world.ChunkPos{X: 1}).VertexCount(world.LayerOpaque))
}

func TestWorldEdgeFacesAreEmitted(t *testing.T) {
	w := emptyWorld(t)
	w.SetBlock(0, 0, 0, block.Stone)
	assert.Equal(t, 36, BuildChunk(w, world.ChunkPos{}).VertexCount(world.LayerOpaque))
}

func TestTransparentBlocks(t *testing.T) {
	w := emptyWorld(t)
	w.SetBlock(5, 10, 5, block.Glass)
	w.SetBlock(6, 10, 5, block.Glass)
	w.SetBlock(5, 9, 5, block.Stone)
	m := BuildChunk(w, world.ChunkPos{})

	assert.Equal(t, 54, m.VertexCount(world.LayerTransparent), "glass pair minus the shared and the bottom face")
	assert.Equal(t, 36, m.VertexCount(world.LayerOpaque), "stone still shows its face under glass")
}

func TestFloraIsCrossedQuads(t *testing.T) {
	w := emptyWorld(t)
	w.SetBlock(2, 5, 2, block.Stone)
	w.SetBlock(2, 6, 2, block.Rose)
	m := BuildChunk(w, world.ChunkPos{})
	assert.Equal(t, 12, m.VertexCount(world.LayerFlora))
	assert.Equal(t, 36, m.VertexCount(world.LayerOpaque), "flora does not cull the block under it")
}

func TestShadeFollowsSkyVisibility(t *testing.T) {
	w := emptyWorld(t)
	w.SetBlock(8, 10, 8, block.Stone)
	m := BuildChunk(w, world.ChunkPos{})
	assert.Contains(t, shades(m, world.LayerOpaque), float32(1), "lit top face")

	w.SetBlock(8, 20, 8, block.Stone)
	m = BuildChunk(w, world.ChunkPos{})
	assert.Contains(t, shades(m, world.LayerOpaque), float32(shadowFactor), "top face under a roof")
}

type gpuStub struct{ released int }

func (g *gpuStub) Release() { g.released++ }

func TestMeshReleaseDropsGPU(t *testing.T) {
	w := emptyWorld(t)
	w.SetBlock(1, 1, 1, block.Stone)
	m := BuildChunk(w, world.ChunkPos{})
	first, second := &gpuStub{}, &gpuStub{}

	m.AttachGPU(first)
	m.AttachGPU(second)
	assert.Equal(t, 1, first.released)
	assert.Same(t, second, m.GPU())

	m.Release()
	assert.Equal(t, 1, second.released)
	assert.Nil(t, m.GPU())
	assert.True(t, m.Empty())
}

func TestBuildAllMatchesBuild(t *testing.T) {
	w := emptyWorld(t)
	for x := 0; x < 32; x += 3 {
		w.SetBlock(x, 4, x, block.Grass)
		w.SetBlock(x, 5, x, block.Dandelion)
		w.SetBlock(x, 4, 31-x, block.Water)
	}
	res := w.Reconcile([]world.ChunkPos{{X: 0, Z: 0}, {X: 1, Z: 0}, {X: 0, Z: 1}, {X: 1, Z: 1}})
	require.Len(t, res.Generated, 4)

	var cs []*world.Chunk
	for _, pos := range res.Generated {
		c, ok := w.Chunk(pos)
		require.True(t, ok)
		cs = append(cs, c)
	}
	NewMesher(3).BuildAll(cs, w)

	for _, c := range cs {
		got, ok := c.Resource().(*Mesh)
		require.True(t, ok)
		want := BuildChunk(w, c.Pos)
		for _, layer := range world.Layers {
			assert.Equal(t, want.Vertices(layer), got.Vertices(layer), "%s %s", c.Pos, layer)
		}
	}
}

func TestMesherIsWorldBatchMesher(t *testing.T) {
	var m world.Mesher = NewMesher(0)
	_, ok := m.(world.BatchMesher)
	assert.True(t, ok)
	assert.Positive(t, NewMesher(0).workers)
}

func BenchmarkBuildChunk(b *testing.B) {
	w := emptyWorld(b)
	for x := 0; x < world.ChunkSize; x++ {
		for z := 0; z < world.ChunkSize; z++ {
			w.FillColumn(x, z, 0, 32, block.Stone)
		}
	}
	w.RecomputeChunk(world.ChunkPos{})
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		_ = BuildChunk(w, world.ChunkPos{})
	}
}
