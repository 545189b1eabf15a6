package physics

import (
	"crosscraft/internal/block"
	"crosscraft/internal/profiling"
	"crosscraft/internal/world"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 5.0
)

// BlockSource is the read side of the world used by queries here.
type BlockSource interface {
	Block(x, y, z int) block.ID
}

// RaycastResult stores the result of a raycast.
type RaycastResult struct {
	Hit      bool
	Block    world.BlockPos
	Adjacent world.BlockPos // last empty cell before Block
	Distance float32
}

// Targetable reports whether a ray stops on id. Air and fluids are passed through.
func Targetable(id block.ID) bool {
	return id != block.Air && !id.Fluid()
}

// Raycast walks the voxel grid along direction from start (Amanatides-Woo DDA)
// and reports the first targetable block entered between minDist and maxDist.
func Raycast(start, direction mgl32.Vec3, minDist, maxDist float32, w BlockSource) RaycastResult {
	defer profiling.Track("physics.Raycast")()
	if direction.Len() == 0 {
		return RaycastResult{}
	}
	dir := direction.Normalize()

	cell := [3]int{}
	step := [3]int{}
	var tMax, tDelta [3]float32
	for a := range 3 {
		p := start[a]
		cell[a] = int(math32.Floor(p))
		switch {
		case dir[a] > 0:
			step[a] = 1
			tDelta[a] = 1 / dir[a]
			tMax[a] = (float32(cell[a]+1) - p) / dir[a]
		case dir[a] < 0:
			step[a] = -1
			tDelta[a] = -1 / dir[a]
			tMax[a] = (p - float32(cell[a])) / -dir[a]
		default:
			tDelta[a] = math32.Inf(1)
			tMax[a] = math32.Inf(1)
		}
	}

	prev := cell
	t := float32(0)
	for t <= maxDist {
		if t >= minDist && Targetable(w.Block(cell[0], cell[1], cell[2])) {
			return RaycastResult{
				Hit:      true,
				Block:    world.BlockPos{X: cell[0], Y: cell[1], Z: cell[2]},
				Adjacent: world.BlockPos{X: prev[0], Y: prev[1], Z: prev[2]},
				Distance: t,
			}
		}
		prev = cell
		a := 0
		if tMax[1] < tMax[a] {
			a = 1
		}
		if tMax[2] < tMax[a] {
			a = 2
		}
		t = tMax[a]
		cell[a] += step[a]
		tMax[a] += tDelta[a]
	}
	return RaycastResult{}
}
