package world

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/samber/lo"
)

// Registry maps chunk coordinates inside the world bounds to resident chunks.
// Iteration follows insertion order.
type Registry struct {
	size   int // world edge in chunks
	chunks *orderedmap.OrderedMap[ChunkPos, *Chunk]
}

// ReconcileResult describes one reconcile pass.
type ReconcileResult struct {
	Retained  []ChunkPos
	Generated []ChunkPos
	Evicted   []ChunkPos
}

// NewRegistry creates an empty registry for a world of size x size chunks.
func NewRegistry(size int) *Registry {
	return &Registry{
		size:   size,
		chunks: orderedmap.NewOrderedMap[ChunkPos, *Chunk](),
	}
}

// InBounds reports whether pos is a valid chunk coordinate.
func (r *Registry) InBounds(pos ChunkPos) bool {
	return pos.X >= 0 && pos.X < r.size && pos.Z >= 0 && pos.Z < r.size
}

// Len returns the number of resident chunks.
func (r *Registry) Len() int {
	return r.chunks.Len()
}

// Get returns the chunk at pos.
func (r *Registry) Get(pos ChunkPos) (*Chunk, bool) {
	return r.chunks.Get(pos)
}

// Insert adds c under its coordinate. Out of bounds and duplicate coordinates are rejected.
func (r *Registry) Insert(c *Chunk) bool {
	if c == nil || !r.InBounds(c.Pos) {
		return false
	}
	if _, ok := r.chunks.Get(c.Pos); ok {
		return false
	}
	r.chunks.Set(c.Pos, c)
	return true
}

// Evict removes the chunk at pos and releases its resources.
func (r *Registry) Evict(pos ChunkPos) bool {
	c, ok := r.chunks.Get(pos)
	if !ok {
		return false
	}
	r.chunks.Delete(pos)
	c.release()
	return true
}

// Positions returns resident coordinates in iteration order.
func (r *Registry) Positions() []ChunkPos {
	return r.chunks.Keys()
}

// Chunks returns a snapshot of resident chunks in iteration order.
func (r *Registry) Chunks() []*Chunk {
	out := make([]*Chunk, 0, r.chunks.Len())
	for el := r.chunks.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Reconcile makes the resident set equal to needed. Chunks already resident are
// moved into a fresh map unchanged, the rest are released, and create is called
// once per net-new coordinate before the fresh map replaces the old one.
// Out of bounds and repeated coordinates in needed are ignored. A nil chunk
// returned by create is skipped.
func (r *Registry) Reconcile(needed []ChunkPos, create func(ChunkPos) *Chunk) ReconcileResult {
	var res ReconcileResult

	needed = lo.Uniq(lo.Filter(needed, func(p ChunkPos, _ int) bool {
		return r.InBounds(p)
	}))

	next := orderedmap.NewOrderedMap[ChunkPos, *Chunk]()
	var toGenerate []ChunkPos
	for _, pos := range needed {
		if c, ok := r.chunks.Get(pos); ok {
			next.Set(pos, c)
			r.chunks.Delete(pos)
			res.Retained = append(res.Retained, pos)
		} else {
			toGenerate = append(toGenerate, pos)
		}
	}

	// Whatever is left was not needed.
	for el := r.chunks.Front(); el != nil; el = el.Next() {
		el.Value.release()
		res.Evicted = append(res.Evicted, el.Key)
	}

	for _, pos := range toGenerate {
		c := create(pos)
		if c == nil {
			continue
		}
		c.Pos = pos
		next.Set(pos, c)
		res.Generated = append(res.Generated, pos)
	}

	r.chunks = next
	return res
}
