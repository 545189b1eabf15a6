package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryInsertRejects(t *testing.T) {
	r := NewRegistry(4)
	assert.True(t, r.Insert(newChunk(ChunkPos{1, 2}, 1)))
	assert.False(t, r.Insert(newChunk(ChunkPos{1, 2}, 2)), "duplicate")
	assert.False(t, r.Insert(newChunk(ChunkPos{4, 0}, 3)), "out of bounds")
	assert.False(t, r.Insert(newChunk(ChunkPos{0, -1}, 4)), "out of bounds")
	assert.False(t, r.Insert(nil))
	assert.Equal(t, 1, r.Len())

	c, ok := r.Get(ChunkPos{1, 2})
	require.True(t, ok)
	assert.Equal(t, uint64(1), c.Serial())
}

func TestRegistryEvictReleases(t *testing.T) {
	r := NewRegistry(4)
	c := newChunk(ChunkPos{0, 0}, 1)
	released := false
	c.SetResource(&fakeResource{onRelease: func() { released = true }})
	c.Enqueue(BlockPos{1, 1, 1})
	require.True(t, r.Insert(c))

	assert.True(t, r.Evict(ChunkPos{0, 0}))
	assert.True(t, released)
	assert.Nil(t, c.Resource())
	assert.Empty(t, c.Pending())
	assert.False(t, r.Evict(ChunkPos{0, 0}))
}

func TestRegistryReconcileSkipsInvalidAndDuplicates(t *testing.T) {
	r := NewRegistry(2)
	created := 0
	create := func(p ChunkPos) *Chunk {
		created++
		return newChunk(p, uint64(created))
	}

	res := r.Reconcile([]ChunkPos{{0, 0}, {0, 0}, {5, 5}, {-1, 0}, {1, 1}}, create)
	assert.Equal(t, 2, created)
	assert.Equal(t, []ChunkPos{{0, 0}, {1, 1}}, res.Generated)
	assert.Equal(t, []ChunkPos{{0, 0}, {1, 1}}, r.Positions())

	res = r.Reconcile(nil, create)
	assert.ElementsMatch(t, []ChunkPos{{0, 0}, {1, 1}}, res.Evicted)
	assert.Zero(t, r.Len())
}

func TestSetResourceReleasesPrevious(t *testing.T) {
	c := newChunk(ChunkPos{}, 1)
	first, second := 0, 0
	a := &fakeResource{onRelease: func() { first++ }}
	b := &fakeResource{onRelease: func() { second++ }}

	c.SetResource(a)
	c.SetResource(a)
	assert.Zero(t, first)
	c.SetResource(b)
	assert.Equal(t, 1, first)
	assert.Zero(t, second)
}

func TestChunkPosHelpers(t *testing.T) {
	assert.Equal(t, uint32(3<<16|7), ChunkPos{3, 7}.Key())
	assert.Equal(t, uint32(1<<16|0x34), ChunkPos{1, 0x1234}.Key(), "z keeps only its low byte")

	assert.Equal(t, ChunkPos{0, 0}, BlockPos{15, 3, 0}.Chunk())
	assert.Equal(t, ChunkPos{1, -1}, BlockPos{16, 3, -1}.Chunk())
	assert.Equal(t, ChunkPos{-1, -2}, BlockPos{-16, 0, -17}.Chunk())

	assert.Equal(t, ChunkPos{0, 0}, ChunkAt(mgl32.Vec3{0.5, 100, 15.99}))
	assert.Equal(t, ChunkPos{-1, 2}, ChunkAt(mgl32.Vec3{-0.5, 0, 32}))
	assert.Equal(t, BlockPos{-1, 4, 2}, BlockAt(mgl32.Vec3{-0.2, 4.9, 2}))

	c := newChunk(ChunkPos{2, 1}, 1)
	assert.True(t, c.Contains(32, 16))
	assert.True(t, c.Contains(47, 31))
	assert.False(t, c.Contains(48, 16))
	assert.False(t, c.Contains(32, 15))
}
