package world

import "crosscraft/internal/block"

// Resource is render state attached to a chunk. It is released when the chunk is evicted.
type Resource interface {
	Release()
}

// change is a block write staged during the update phase of a tick. A move
// carries from out of pos into dst and applies only while dst is still air.
type change struct {
	pos  BlockPos
	from block.ID
	to   block.ID
	move bool
	dst  BlockPos
}

// Chunk is a 16x16 column view over the world's voxel storage.
// The voxels themselves live in the World; the chunk holds streaming and tick state.
type Chunk struct {
	Pos ChunkPos

	serial   uint64
	pending  []BlockPos
	staged   []change
	rebuilds int
	dirty    bool
	resource Resource
}

func newChunk(pos ChunkPos, serial uint64) *Chunk {
	return &Chunk{Pos: pos, serial: serial, dirty: true}
}

// Serial is unique per constructed chunk. A chunk regenerated at the same
// coordinate gets a new serial.
func (c *Chunk) Serial() uint64 {
	return c.serial
}

// Origin returns the block coordinate of the chunk's minimum corner.
func (c *Chunk) Origin() (x, z int) {
	return c.Pos.Origin()
}

// Contains reports whether the block column (x, z) belongs to this chunk.
func (c *Chunk) Contains(x, z int) bool {
	ox, oz := c.Origin()
	return x >= ox && x < ox+ChunkSize && z >= oz && z < oz+ChunkSize
}

// Enqueue appends a block position to the pending update queue.
func (c *Chunk) Enqueue(p BlockPos) {
	c.pending = append(c.pending, p)
}

// Pending returns a copy of the queued block updates in arrival order.
func (c *Chunk) Pending() []BlockPos {
	out := make([]BlockPos, len(c.pending))
	copy(out, c.pending)
	return out
}

// Rebuilds counts mesher passes over this chunk.
func (c *Chunk) Rebuilds() int {
	return c.rebuilds
}

// Dirty reports whether the chunk changed since its last rebuild.
func (c *Chunk) Dirty() bool {
	return c.dirty
}

// MarkDirty schedules a rebuild at the end of the current tick or action.
func (c *Chunk) MarkDirty() {
	c.dirty = true
}

// Resource returns the attached render resource, if any.
func (c *Chunk) Resource() Resource {
	return c.resource
}

// SetResource attaches r, releasing any previous, different resource.
func (c *Chunk) SetResource(r Resource) {
	if c.resource != nil && c.resource != r {
		c.resource.Release()
	}
	c.resource = r
}

func (c *Chunk) release() {
	if c.resource != nil {
		c.resource.Release()
		c.resource = nil
	}
	c.pending = nil
	c.staged = nil
}
