package world

// RecomputeColumn rebuilds the sky visibility bits of column (x, z).
// Scanning down from the top, every light-transmitting cell is lit; the first
// opaque cell is lit as the surface and everything below it stays dark.
func (w *World) RecomputeColumn(x, z int) {
	col := w.voxels.Column(x, z)
	if col == nil {
		return
	}
	w.light.ClearColumn(x, z)
	for y := len(col) - 1; y >= 0; y-- {
		w.light.Mark(x, y, z)
		if col[y].Opaque() {
			break
		}
	}
}

// RecomputeChunk relights every column of the chunk at pos.
func (w *World) RecomputeChunk(pos ChunkPos) {
	ox, oz := pos.Origin()
	for x := ox; x < ox+ChunkSize; x++ {
		for z := oz; z < oz+ChunkSize; z++ {
			w.RecomputeColumn(x, z)
		}
	}
}

// SurfaceHeight returns the highest opaque level of column (x, z), or -1 when
// the column is open to the void.
func (w *World) SurfaceHeight(x, z int) int {
	col := w.voxels.Column(x, z)
	for y := len(col) - 1; y >= 0; y-- {
		if col[y].Opaque() {
			return y
		}
	}
	return -1
}
