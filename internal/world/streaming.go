package world

import (
	"crosscraft/internal/profiling"

	"github.com/sirupsen/logrus"
)

// NeededSet returns the chunks that should be resident around center: the
// diameter-wide square window, clipped to a size x size world, then to the
// inscribed disc (dx²+dz² <= (diameter/2)²). Coordinates are ordered by x, then z.
func NeededSet(center ChunkPos, diameter, size int) []ChunkPos {
	if diameter <= 0 {
		return nil
	}
	lo := -(diameter / 2)
	hi := lo + diameter
	radiusSq4 := diameter * diameter // (2r)², compared against 4(dx²+dz²)

	needed := make([]ChunkPos, 0, diameter*diameter)
	for dx := lo; dx < hi; dx++ {
		for dz := lo; dz < hi; dz++ {
			p := center.Add(dx, dz)
			if p.X < 0 || p.X >= size || p.Z < 0 || p.Z >= size {
				continue
			}
			if 4*(dx*dx+dz*dz) <= radiusSq4 {
				needed = append(needed, p)
			}
		}
	}
	return needed
}

// ObserverChunk returns the chunk the last streaming pass was centred on.
func (w *World) ObserverChunk() ChunkPos {
	return w.observerChunk
}

// RenderDiameter returns the streaming window diameter in chunks.
func (w *World) RenderDiameter() int {
	return w.renderDiameter
}

// NeededChunks returns the needed set for center in this world.
func (w *World) NeededChunks(center ChunkPos) []ChunkPos {
	return NeededSet(center, w.renderDiameter, w.sizeChunks)
}

// StreamTo reconciles the registry around center if it differs from the last
// observed chunk. It reports whether a streaming pass ran.
func (w *World) StreamTo(center ChunkPos) bool {
	if center == w.observerChunk {
		return false
	}
	w.observerChunk = center
	res := w.Reconcile(w.NeededChunks(center))

	w.log.WithFields(logrus.Fields{
		"center":    center.String(),
		"key":       center.Key(),
		"retained":  len(res.Retained),
		"generated": len(res.Generated),
		"evicted":   len(res.Evicted),
	}).Debug("streamed chunks")
	return true
}

// Reconcile makes the resident set equal to needed. Retained chunks keep their
// identity; only net-new coordinates are generated. Once every new chunk has
// voxels and light, new chunks are meshed and retained chunks bordering them
// are rebuilt so their seams match.
func (w *World) Reconcile(needed []ChunkPos) ReconcileResult {
	defer profiling.Track("world.Reconcile")()

	res := w.registry.Reconcile(needed, w.generateChunk)

	fresh := make(map[ChunkPos]struct{}, len(res.Generated))
	for _, pos := range res.Generated {
		fresh[pos] = struct{}{}
	}
	var build []*Chunk
	seams := make(map[ChunkPos]struct{})
	for _, pos := range res.Generated {
		if c, ok := w.registry.Get(pos); ok {
			build = append(build, c)
		}
		for _, n := range lateralNeighbors(pos) {
			if _, isNew := fresh[n]; !isNew {
				seams[n] = struct{}{}
			}
		}
	}
	// Iterate the registry, not the map, to keep rebuild order stable.
	for _, c := range w.registry.Chunks() {
		if _, ok := seams[c.Pos]; ok {
			build = append(build, c)
		}
	}
	w.rebuildAll(build)
	return res
}

// generateChunk constructs and populates a chunk. It does not mesh it.
func (w *World) generateChunk(pos ChunkPos) *Chunk {
	defer profiling.Track("world.GenerateChunk")()
	w.nextSerial++
	c := newChunk(pos, w.nextSerial)
	w.gen.Generate(c, w)
	w.RecomputeChunk(pos)
	return c
}

// rebuild runs the mesher over c and clears its dirty flag.
func (w *World) rebuild(c *Chunk) {
	w.mesher.Build(c, w)
	c.rebuilds++
	c.dirty = false
}

// rebuildAll meshes cs in order, handing the whole batch to the mesher when it
// supports building several chunks at once.
func (w *World) rebuildAll(cs []*Chunk) {
	if len(cs) == 0 {
		return
	}
	if bm, ok := w.mesher.(BatchMesher); ok {
		bm.BuildAll(cs, w)
		for _, c := range cs {
			c.rebuilds++
			c.dirty = false
		}
		return
	}
	for _, c := range cs {
		w.rebuild(c)
	}
}

func lateralNeighbors(p ChunkPos) [4]ChunkPos {
	return [4]ChunkPos{p.Add(-1, 0), p.Add(1, 0), p.Add(0, -1), p.Add(0, 1)}
}
