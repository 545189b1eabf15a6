package world

import (
	"crosscraft/internal/block"
)

// PlaceBlock puts id at pos if the place cooldown has elapsed and the cell is
// air or fluid. It reports whether the block was placed.
func (w *World) PlaceBlock(pos BlockPos, id block.ID) bool {
	if w.placeCooldown > 0 || id == block.Air || !id.Known() || !w.InBounds(pos) {
		return false
	}
	cur := w.Block(pos.X, pos.Y, pos.Z)
	if cur != block.Air && !cur.Fluid() {
		return false
	}
	if !w.edit(pos, id) {
		return false
	}
	w.placeCooldown = w.placeDelay
	w.flushDirty()
	return true
}

// BreakBlock removes the block at pos if the break cooldown has elapsed. Air
// and bedrock cannot be broken. Breaking emits particles of the old block.
func (w *World) BreakBlock(pos BlockPos) bool {
	if w.breakCooldown > 0 || !w.InBounds(pos) {
		return false
	}
	old := w.Block(pos.X, pos.Y, pos.Z)
	if old == block.Air || old == block.Bedrock || old.Fluid() {
		return false
	}
	if !w.edit(pos, block.Air) {
		return false
	}
	w.breakCooldown = w.breakDelay
	w.particles.Emit(old, pos.Vec3())
	w.flushDirty()
	return true
}

// Cooldowns returns the remaining place and break cooldowns in seconds.
func (w *World) Cooldowns() (place, brk float64) {
	return max(w.placeCooldown, 0), max(w.breakCooldown, 0)
}
