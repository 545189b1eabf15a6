package physics

import (
	"crosscraft/internal/block"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Solid reports whether id blocks movement.
func Solid(id block.ID) bool {
	return id != block.Air && !id.Fluid() && !id.Flora()
}

// Collides checks whether an upright box with the given half width and height,
// standing at pos, overlaps any solid block. Block (x, y, z) spans [x, x+1) on each axis.
func Collides(pos mgl32.Vec3, halfWidth, height float32, w BlockSource) bool {
	minX := int(math32.Floor(pos.X() - halfWidth))
	maxX := int(math32.Floor(pos.X() + halfWidth))
	minY := int(math32.Floor(pos.Y()))
	maxY := int(math32.Floor(pos.Y() + height))
	minZ := int(math32.Floor(pos.Z() - halfWidth))
	maxZ := int(math32.Floor(pos.Z() + halfWidth))

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				if !Solid(w.Block(x, y, z)) {
					continue
				}
				if pos.X()-halfWidth < float32(x+1) && pos.X()+halfWidth > float32(x) &&
					pos.Y() < float32(y+1) && pos.Y()+height > float32(y) &&
					pos.Z()-halfWidth < float32(z+1) && pos.Z()+halfWidth > float32(z) {
					return true
				}
			}
		}
	}
	return false
}
