package world

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ChunkSize is the lateral edge of a chunk in blocks.
const ChunkSize = 16

// ChunkPos is a chunk column coordinate. It is used directly as a map key.
type ChunkPos struct {
	X, Z int
}

// noChunk never matches a real observer position, so the first update always streams.
var noChunk = ChunkPos{X: math.MinInt32, Z: math.MinInt32}

// Key returns the legacy packed form (x<<16 | z&0xFF). It is only used for logging.
func (p ChunkPos) Key() uint32 {
	return uint32(uint16(p.X))<<16 | uint32(uint16(p.Z)&0x00FF)
}

// Origin returns the block coordinate of the chunk's minimum corner.
func (p ChunkPos) Origin() (x, z int) {
	return p.X * ChunkSize, p.Z * ChunkSize
}

// Add offsets the coordinate.
func (p ChunkPos) Add(dx, dz int) ChunkPos {
	return ChunkPos{X: p.X + dx, Z: p.Z + dz}
}

func (p ChunkPos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Z)
}

// BlockPos is a voxel coordinate in world space.
type BlockPos struct {
	X, Y, Z int
}

// Add offsets the coordinate.
func (p BlockPos) Add(dx, dy, dz int) BlockPos {
	return BlockPos{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
}

// Chunk returns the column containing the block.
func (p BlockPos) Chunk() ChunkPos {
	return ChunkPos{X: floorDiv(p.X, ChunkSize), Z: floorDiv(p.Z, ChunkSize)}
}

// Vec3 returns the block's minimum corner as a vector.
func (p BlockPos) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(p.X), float32(p.Y), float32(p.Z)}
}

func (p BlockPos) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Finite reports whether every component of pos is a finite number.
func Finite(pos mgl32.Vec3) bool {
	for _, v := range pos {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ChunkAt returns the chunk column containing a world-space position. pos must
// be Finite; the result is meaningless otherwise.
func ChunkAt(pos mgl32.Vec3) ChunkPos {
	return ChunkPos{
		X: int(math32.Floor(pos.X() / ChunkSize)),
		Z: int(math32.Floor(pos.Z() / ChunkSize)),
	}
}

// BlockAt returns the voxel containing a world-space position.
func BlockAt(pos mgl32.Vec3) BlockPos {
	return BlockPos{
		X: int(math32.Floor(pos.X())),
		Y: int(math32.Floor(pos.Y())),
		Z: int(math32.Floor(pos.Z())),
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
