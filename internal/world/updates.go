package world

import "crosscraft/internal/block"

// neighborhood lists a block and its six axis neighbours in notification order.
var neighborhood = [...]BlockPos{
	{0, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
	{-1, 0, 0},
	{1, 0, 0},
	{0, 0, 1},
	{0, 0, -1},
}

// NotifyBlockChanged queues pos on its owning chunk. Positions outside the
// world or inside chunks that are not resident are dropped.
func (w *World) NotifyBlockChanged(pos BlockPos) bool {
	if !w.InBounds(pos) {
		return false
	}
	c, ok := w.registry.Get(pos.Chunk())
	if !ok {
		return false
	}
	c.Enqueue(pos)
	return true
}

// NotifyNeighborhoodChanged notifies pos and its six axis neighbours.
// It returns how many notifications were queued.
func (w *World) NotifyNeighborhoodChanged(pos BlockPos) int {
	queued := 0
	for _, d := range neighborhood {
		if w.NotifyBlockChanged(pos.Add(d.X, d.Y, d.Z)) {
			queued++
		}
	}
	return queued
}

// RefreshChunkSeams rebuilds the chunks across the x and z chunk borders that
// column (x, z) touches. Each axis is handled on its own, so an edit in a
// chunk corner refreshes both lateral neighbours but never the diagonal one.
// Missing neighbours are skipped. It returns how many chunks were rebuilt.
func (w *World) RefreshChunkSeams(x, z int) int {
	seams := w.seamNeighbours(x, z)
	for _, c := range seams {
		w.rebuild(c)
	}
	return len(seams)
}

// seamNeighbours returns the resident chunks across the borders column (x, z)
// touches, at most one per axis.
func (w *World) seamNeighbours(x, z int) []*Chunk {
	if !w.dims.ContainsColumn(x, z) {
		return nil
	}
	home := BlockPos{X: x, Z: z}.Chunk()
	localX, localZ := mod(x, ChunkSize), mod(z, ChunkSize)

	var out []*Chunk
	if dx := seamOffset(localX); dx != 0 {
		if c, ok := w.registry.Get(home.Add(dx, 0)); ok {
			out = append(out, c)
		}
	}
	if dz := seamOffset(localZ); dz != 0 {
		if c, ok := w.registry.Get(home.Add(0, dz)); ok {
			out = append(out, c)
		}
	}
	return out
}

func seamOffset(local int) int {
	switch local {
	case 0:
		return -1
	case ChunkSize - 1:
		return 1
	default:
		return 0
	}
}

// edit writes a block through the full change path: light, neighbour
// notifications, then dirtying the owning chunk and the chunks across any
// border it touches. Callers flush once after a batch of edits.
func (w *World) edit(pos BlockPos, id block.ID) bool {
	old, ok := w.voxels.Set(pos.X, pos.Y, pos.Z, id)
	if !ok || old == id {
		return false
	}
	if old.TransmitsLight() != id.TransmitsLight() {
		w.RecomputeColumn(pos.X, pos.Z)
	}
	w.NotifyNeighborhoodChanged(pos)
	for _, c := range w.seamNeighbours(pos.X, pos.Z) {
		c.MarkDirty()
	}
	if c, ok := w.registry.Get(pos.Chunk()); ok {
		c.MarkDirty()
	}
	return true
}

// flushDirty rebuilds every resident chunk marked dirty.
func (w *World) flushDirty() {
	for _, c := range w.registry.Chunks() {
		if c.dirty {
			w.rebuild(c)
		}
	}
}
