package world

import (
	"encoding/binary"

	"crosscraft/internal/block"
	"crosscraft/internal/profiling"

	"github.com/zeebo/xxh3"
)

// Tick runs one chunk tick over a snapshot of the resident chunks. Every chunk
// runs its random tick and update before any chunk runs its post-update, so
// no chunk sees another's changes from the same tick. Chunks left dirty are
// rebuilt afterwards.
func (w *World) Tick() {
	defer profiling.Track("world.Tick")()
	w.ticks++

	chunks := w.registry.Chunks()
	for _, c := range chunks {
		c.randomTick(w)
		c.update(w)
	}
	for _, c := range chunks {
		c.postUpdate(w)
	}
	w.flushDirty()
}

// Ticks returns how many chunk ticks have run.
func (w *World) Ticks() uint64 {
	return w.ticks
}

// roll returns a deterministic pseudo-random value for the i-th random tick
// of chunk pos in the current tick.
func (w *World) roll(pos ChunkPos, i int) uint64 {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(w.seed))
	binary.LittleEndian.PutUint64(buf[8:], w.ticks)
	binary.LittleEndian.PutUint32(buf[16:], uint32(pos.X))
	binary.LittleEndian.PutUint32(buf[20:], uint32(pos.Z))
	binary.LittleEndian.PutUint64(buf[24:], uint64(i))
	return xxh3.Hash(buf[:])
}

// randomTick samples a few cells of the chunk and stages ambient changes:
// covered grass turns to dirt, lit dirt next to grass turns to grass.
func (c *Chunk) randomTick(w *World) {
	ox, oz := c.Origin()
	height := w.dims.Height
	for i := range w.randomTicks {
		r := w.roll(c.Pos, i)
		pos := BlockPos{
			X: ox + int(r&0xF),
			Y: int((r >> 8) % uint64(height)),
			Z: oz + int((r>>4)&0xF),
		}
		switch w.Block(pos.X, pos.Y, pos.Z) {
		case block.Grass:
			if w.Block(pos.X, pos.Y+1, pos.Z).Opaque() {
				c.stage(pos, block.Grass, block.Dirt)
			}
		case block.Dirt:
			if w.Block(pos.X, pos.Y+1, pos.Z).TransmitsLight() && w.Lit(pos.X, pos.Y, pos.Z) && w.touchesGrass(pos) {
				c.stage(pos, block.Dirt, block.Grass)
			}
		}
	}
}

func (w *World) touchesGrass(pos BlockPos) bool {
	for _, d := range neighborhood[3:] {
		for dy := -1; dy <= 1; dy++ {
			if w.Block(pos.X+d.X, pos.Y+dy, pos.Z+d.Z) == block.Grass {
				return true
			}
		}
	}
	return false
}

// update drains the pending queue and stages reactive changes. It only reads
// world state.
func (c *Chunk) update(w *World) {
	pending := c.pending
	c.pending = nil

	seen := make(map[BlockPos]struct{}, len(pending))
	for _, pos := range pending {
		if _, dup := seen[pos]; dup {
			continue
		}
		seen[pos] = struct{}{}

		id := w.Block(pos.X, pos.Y, pos.Z)
		switch {
		case id.Falls():
			below := pos.Add(0, -1, 0)
			if w.InBounds(below) && w.Block(below.X, below.Y, below.Z) == block.Air {
				c.stageMove(pos, below, id)
			}
		case id.IsWater():
			c.spreadWater(w, pos)
		}
	}
}

// spreadWater stages flowing water into air below pos, and sideways when the
// water rests on something.
func (c *Chunk) spreadWater(w *World, pos BlockPos) {
	below := pos.Add(0, -1, 0)
	if w.InBounds(below) && w.Block(below.X, below.Y, below.Z) == block.Air {
		c.stage(below, block.Air, block.FlowingWater)
		return
	}
	for _, d := range neighborhood[3:] {
		n := pos.Add(d.X, d.Y, d.Z)
		if w.InBounds(n) && w.Block(n.X, n.Y, n.Z) == block.Air {
			c.stage(n, block.Air, block.FlowingWater)
		}
	}
}

func (c *Chunk) stage(pos BlockPos, from, to block.ID) {
	c.staged = append(c.staged, change{pos: pos, from: from, to: to})
}

// stageMove stages id leaving pos for dst as one change.
func (c *Chunk) stageMove(pos, dst BlockPos, id block.ID) {
	c.staged = append(c.staged, change{pos: pos, from: id, to: block.Air, move: true, dst: dst})
}

// postUpdate applies the changes staged this tick. A change whose cell no
// longer holds the expected block is skipped; a move is skipped whole when
// either end was taken, so the moving block is never lost.
func (c *Chunk) postUpdate(w *World) {
	staged := c.staged
	c.staged = nil
	for _, ch := range staged {
		if w.Block(ch.pos.X, ch.pos.Y, ch.pos.Z) != ch.from {
			continue
		}
		if ch.move {
			if w.Block(ch.dst.X, ch.dst.Y, ch.dst.Z) != block.Air {
				continue
			}
			w.edit(ch.pos, block.Air)
			w.edit(ch.dst, ch.from)
			continue
		}
		w.edit(ch.pos, ch.to)
	}
}
